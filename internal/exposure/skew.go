package exposure

import (
	"math"
	"sort"
	"time"

	"github.com/dgnsrekt/gexray/internal/chain"
)

// Skew measurement bounds. Expiries inside a week are skipped: 0-DTE and
// weekly noise swamps the 25-delta surface.
const (
	skewMinDTE = 7
	skewMaxDTE = 45

	skewTargetDelta = 0.25
	atmBandPct      = 0.02
)

// IVSkew is the 25-delta put/call volatility ratio for the front usable
// expiry.
type IVSkew struct {
	Skew       float64 `json:"skew"`
	PutIV      float64 `json:"put_iv"`
	CallIV     float64 `json:"call_iv"`
	Expiration string  `json:"expiration"`
	Regime     string  `json:"regime"`
	Method     string  `json:"method"` // "delta25" or "atm_fallback"
}

// skewRegimes maps a skew ratio onto a qualitative label, highest threshold
// first.
var skewRegimes = []struct {
	min   float64
	label string
}{
	{1.25, "extreme_fear"},
	{1.10, "fear"},
	{0.95, "neutral"},
	{0.85, "greed"},
	{math.Inf(-1), "extreme_greed"},
}

func skewRegime(skew float64) string {
	for _, r := range skewRegimes {
		if skew >= r.min {
			return r.label
		}
	}
	return "neutral"
}

// computeIVSkew finds the nearest 7-45 DTE expiry and ratios the put and
// call IV nearest the 25-delta points. When either side has no contract
// within the delta tolerance it falls back to averaging IV within 2% of
// spot. Returns nil when the chain carries no usable IV at all.
func (e *Engine) computeIVSkew(contracts []chain.OptionContract, spot float64) *IVSkew {
	expiry, ok := e.nearestExpiryInWindow(contracts, skewMinDTE, skewMaxDTE)
	if !ok {
		return nil
	}

	var puts, calls []chain.OptionContract
	for _, c := range contracts {
		if !c.Expiration.Equal(expiry) || c.IV <= 0 {
			continue
		}
		if c.IsCall() {
			calls = append(calls, c)
		} else {
			puts = append(puts, c)
		}
	}

	putIV, putOK := e.ivNearestDelta(puts, spot, -skewTargetDelta)
	callIV, callOK := e.ivNearestDelta(calls, spot, skewTargetDelta)

	method := "delta25"
	if !putOK || !callOK {
		method = "atm_fallback"
		putIV = averageATMIV(puts, spot)
		callIV = averageATMIV(calls, spot)
	}
	if putIV <= 0 || callIV <= 0 {
		return nil
	}

	skew := putIV / callIV
	return &IVSkew{
		Skew:       skew,
		PutIV:      putIV,
		CallIV:     callIV,
		Expiration: expiry.Format(expiryKeyLayout),
		Regime:     skewRegime(skew),
		Method:     method,
	}
}

// nearestExpiryInWindow returns the earliest expiration whose DTE falls in
// [minDTE, maxDTE].
func (e *Engine) nearestExpiryInWindow(contracts []chain.OptionContract, minDTE, maxDTE int) (time.Time, bool) {
	seen := make(map[time.Time]bool)
	var candidates []time.Time
	for _, c := range contracts {
		if seen[c.Expiration] {
			continue
		}
		seen[c.Expiration] = true
		dte := e.clock.DaysUntil(c.Expiration)
		if dte >= minDTE && dte <= maxDTE {
			candidates = append(candidates, c.Expiration)
		}
	}
	if len(candidates) == 0 {
		return time.Time{}, false
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Before(candidates[j]) })
	return candidates[0], true
}

// ivNearestDelta returns the IV of the contract whose delta lands closest
// to target, within the configured tolerance. Contracts missing a supplied
// delta get one derived from their IV.
func (e *Engine) ivNearestDelta(contracts []chain.OptionContract, spot, target float64) (float64, bool) {
	bestIV := 0.0
	bestDist := e.cfg.DeltaTolerance
	found := false
	for _, c := range contracts {
		delta := c.Delta
		if delta == 0 {
			delta = e.greeks.Compute(spot, c.Strike, c.Expiration, c.IV, c.Type).Delta
		}
		dist := math.Abs(delta - target)
		if dist <= bestDist {
			bestDist = dist
			bestIV = c.IV
			found = true
		}
	}
	return bestIV, found
}

func averageATMIV(contracts []chain.OptionContract, spot float64) float64 {
	sum, n := 0.0, 0
	for _, c := range contracts {
		if math.Abs(c.Strike-spot)/spot <= atmBandPct {
			sum += c.IV
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
