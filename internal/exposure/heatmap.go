package exposure

import (
	"math"
	"sort"
)

// heatmapStrikeBandPct bounds the strike axis to ±30% of spot. If the band
// empties the set (far-from-the-money chains), the filter is skipped.
const heatmapStrikeBandPct = 0.30

// Heatmap is a strike × expiration exposure grid. Rows follow Strikes
// (descending), columns follow Expirations (ascending); missing cells are
// zero.
type Heatmap struct {
	Strikes     []float64   `json:"strikes"`
	Expirations []string    `json:"expirations"`
	Data        [][]float64 `json:"data"`
}

// buildHeatmaps produces the GEX, VEX and DEX grids from the same strike
// window so the three heatmaps stay aligned.
func (e *Engine) buildHeatmaps(aggs map[float64]*StrikeAggregate, spot float64) (gex, vex, dex *Heatmap) {
	rows := selectHeatmapRows(aggs, spot, e.cfg.HeatmapRows)
	if len(rows) == 0 {
		return nil, nil, nil
	}
	cols := selectHeatmapColumns(rows, e.cfg.HeatmapExpirations)

	gex = buildGrid(rows, cols, func(a *StrikeAggregate) map[string]float64 { return a.GEXByExpiry })
	vex = buildGrid(rows, cols, func(a *StrikeAggregate) map[string]float64 { return a.VEXByExpiry })
	dex = buildGrid(rows, cols, func(a *StrikeAggregate) map[string]float64 { return a.DEXByExpiry })
	return gex, vex, dex
}

// selectHeatmapRows filters strikes to ±30% of spot, sorts descending and
// picks maxRows centered on the strike nearest-but-not-above spot. The row
// nearest spot is always included.
func selectHeatmapRows(aggs map[float64]*StrikeAggregate, spot float64, maxRows int) []*StrikeAggregate {
	var filtered []*StrikeAggregate
	for _, agg := range aggs {
		if math.Abs(agg.Strike-spot)/spot <= heatmapStrikeBandPct {
			filtered = append(filtered, agg)
		}
	}
	if len(filtered) == 0 {
		for _, agg := range aggs {
			filtered = append(filtered, agg)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Strike > filtered[j].Strike })

	// Nearest strike at or below spot; if every strike sits above spot,
	// anchor on the lowest one.
	center := len(filtered) - 1
	for i, agg := range filtered {
		if agg.Strike <= spot {
			center = i
			break
		}
	}

	lo := center - maxRows/2
	hi := lo + maxRows
	if lo < 0 {
		lo = 0
		hi = min(maxRows, len(filtered))
	}
	if hi > len(filtered) {
		hi = len(filtered)
		lo = max(0, hi-maxRows)
	}
	return filtered[lo:hi]
}

// selectHeatmapColumns returns the earliest maxCols expiration keys present
// across the selected rows.
func selectHeatmapColumns(rows []*StrikeAggregate, maxCols int) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, agg := range rows {
		for key := range agg.GEXByExpiry {
			if !seen[key] {
				seen[key] = true
				cols = append(cols, key)
			}
		}
	}
	sort.Strings(cols)
	if len(cols) > maxCols {
		cols = cols[:maxCols]
	}
	return cols
}

func buildGrid(rows []*StrikeAggregate, cols []string, pick func(*StrikeAggregate) map[string]float64) *Heatmap {
	hm := &Heatmap{
		Strikes:     make([]float64, len(rows)),
		Expirations: cols,
		Data:        make([][]float64, len(rows)),
	}
	for i, agg := range rows {
		hm.Strikes[i] = agg.Strike
		row := make([]float64, len(cols))
		byExpiry := pick(agg)
		for j, key := range cols {
			row[j] = byExpiry[key]
		}
		hm.Data[i] = row
	}
	return hm
}
