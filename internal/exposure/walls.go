package exposure

import "math"

// WallLevel is one strike row of the put/call wall payload.
type WallLevel struct {
	Strike  float64 `json:"strike"`
	CallGEX float64 `json:"call_gex"`
	PutGEX  float64 `json:"put_gex"`
	NetGEX  float64 `json:"net_gex"`
	OI      int64   `json:"oi"`
}

// Walls is a fixed window of strikes around spot for charting, plus the
// dominant call and put wall strikes inside that window.
type Walls struct {
	Levels   []WallLevel `json:"levels"`
	CallWall float64     `json:"call_wall"`
	PutWall  float64     `json:"put_wall"`
}

// computeWalls centers a window of cfg.WallWindow strikes on each side of
// the strike nearest spot and emits per-strike GEX and OI. Returns nil for
// an empty chain.
func (e *Engine) computeWalls(aggs map[float64]*StrikeAggregate, spot float64) *Walls {
	sorted := sortedByStrike(aggs)
	if len(sorted) == 0 {
		return nil
	}

	center := 0
	bestDist := math.Inf(1)
	for i, agg := range sorted {
		if d := math.Abs(agg.Strike - spot); d < bestDist {
			bestDist = d
			center = i
		}
	}

	lo := center - e.cfg.WallWindow
	if lo < 0 {
		lo = 0
	}
	hi := center + e.cfg.WallWindow + 1
	if hi > len(sorted) {
		hi = len(sorted)
	}

	walls := &Walls{Levels: make([]WallLevel, 0, hi-lo)}
	maxCall, maxPut := 0.0, 0.0
	for _, agg := range sorted[lo:hi] {
		walls.Levels = append(walls.Levels, WallLevel{
			Strike:  agg.Strike,
			CallGEX: agg.CallGEX,
			PutGEX:  agg.PutGEX,
			NetGEX:  agg.NetGEX,
			OI:      agg.TotalOI,
		})
		if agg.CallGEX > maxCall {
			maxCall = agg.CallGEX
			walls.CallWall = agg.Strike
		}
		if math.Abs(agg.PutGEX) > maxPut {
			maxPut = math.Abs(agg.PutGEX)
			walls.PutWall = agg.Strike
		}
	}
	return walls
}
