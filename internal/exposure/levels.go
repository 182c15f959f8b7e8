package exposure

import "math"

// ZeroGammaLevel locates the price where net GEX changes sign across
// adjacent strikes. Strikes are scanned ascending; the first sign-change
// pair is interpolated by magnitude, which places the level closer to the
// heavier strike. Returns nil when no sign change exists.
func ZeroGammaLevel(aggs map[float64]*StrikeAggregate) *float64 {
	sorted := sortedByStrike(aggs)
	for i := 0; i+1 < len(sorted); i++ {
		g1, g2 := sorted[i].NetGEX, sorted[i+1].NetGEX
		if g1*g2 >= 0 {
			continue
		}
		a1, a2 := math.Abs(g1), math.Abs(g2)
		level := (sorted[i].Strike*a1 + sorted[i+1].Strike*a2) / (a1 + a2)
		return &level
	}
	return nil
}

// GEXFlipLevel walks strikes ascending keeping a running net GEX sum and
// returns the price where the sum first turns non-negative, interpolated by
// how much of the flipping strike's GEX was needed. A sum that starts
// non-negative reports the flip at the lowest strike; a sum that never
// recovers reports nil.
func GEXFlipLevel(aggs map[float64]*StrikeAggregate) *float64 {
	sorted := sortedByStrike(aggs)
	if len(sorted) == 0 {
		return nil
	}

	cumulative := 0.0
	for i, agg := range sorted {
		next := cumulative + agg.NetGEX
		if i == 0 {
			if next >= 0 {
				level := agg.Strike
				return &level
			}
			cumulative = next
			continue
		}
		if cumulative < 0 && next >= 0 {
			needed := -cumulative
			fraction := needed / agg.NetGEX
			prev := sorted[i-1].Strike
			level := prev + (agg.Strike-prev)*fraction
			return &level
		}
		cumulative = next
	}
	return nil
}
