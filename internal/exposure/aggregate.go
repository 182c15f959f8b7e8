package exposure

import (
	"sort"

	"github.com/dgnsrekt/gexray/internal/chain"
)

// expiryKeyLayout is the map key format for per-expiration breakdowns.
const expiryKeyLayout = "2006-01-02"

// StrikeAggregate is the summed exposure of every contract sharing a strike.
type StrikeAggregate struct {
	Strike float64 `json:"strike"`

	CallGEX float64 `json:"call_gex"`
	PutGEX  float64 `json:"put_gex"`
	NetGEX  float64 `json:"net_gex"`

	CallVEX float64 `json:"call_vex"`
	PutVEX  float64 `json:"put_vex"`
	NetVEX  float64 `json:"net_vex"`

	CallDEX float64 `json:"call_dex"`
	PutDEX  float64 `json:"put_dex"`
	NetDEX  float64 `json:"net_dex"`

	TotalOI    int64 `json:"total_oi"`
	CallVolume int64 `json:"call_volume"`
	PutVolume  int64 `json:"put_volume"`

	GEXByExpiry map[string]float64 `json:"gex_by_expiry"`
	VEXByExpiry map[string]float64 `json:"vex_by_expiry"`
	DEXByExpiry map[string]float64 `json:"dex_by_expiry"`
}

// Aggregator folds per-contract exposures into per-strike totals.
type Aggregator struct {
	model *ContractModel
}

// NewAggregator returns an Aggregator over the given contract model.
func NewAggregator(model *ContractModel) *Aggregator {
	return &Aggregator{model: model}
}

// Aggregate groups contracts by exact strike and accumulates exposures,
// open interest, volume and per-expiration sub-totals. Nothing is filtered
// here; thresholds apply downstream.
func (a *Aggregator) Aggregate(contracts []chain.OptionContract, spot float64) map[float64]*StrikeAggregate {
	out := make(map[float64]*StrikeAggregate)

	for _, c := range contracts {
		agg, ok := out[c.Strike]
		if !ok {
			agg = &StrikeAggregate{
				Strike:      c.Strike,
				GEXByExpiry: make(map[string]float64),
				VEXByExpiry: make(map[string]float64),
				DEXByExpiry: make(map[string]float64),
			}
			out[c.Strike] = agg
		}

		exp := a.model.Compute(c, spot)

		if c.IsCall() {
			agg.CallGEX += exp.GEX
			agg.CallVEX += exp.VEX
			agg.CallDEX += exp.DEX
			agg.CallVolume += c.Volume
		} else {
			agg.PutGEX += exp.GEX
			agg.PutVEX += exp.VEX
			agg.PutDEX += exp.DEX
			agg.PutVolume += c.Volume
		}
		agg.TotalOI += c.OpenInterest

		key := c.Expiration.Format(expiryKeyLayout)
		agg.GEXByExpiry[key] += exp.GEX
		agg.VEXByExpiry[key] += exp.VEX
		agg.DEXByExpiry[key] += exp.DEX
	}

	for _, agg := range out {
		agg.NetGEX = agg.CallGEX + agg.PutGEX
		agg.NetVEX = agg.CallVEX + agg.PutVEX
		agg.NetDEX = agg.CallDEX + agg.PutDEX
	}

	return out
}

// sortedByStrike returns the aggregates in ascending strike order.
func sortedByStrike(aggs map[float64]*StrikeAggregate) []*StrikeAggregate {
	out := make([]*StrikeAggregate, 0, len(aggs))
	for _, agg := range aggs {
		out = append(out, agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Strike < out[j].Strike })
	return out
}
