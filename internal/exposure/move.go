package exposure

import (
	"math"
	"sort"

	"github.com/dgnsrekt/gexray/internal/chain"
)

// Near-ATM bands for expected-move IV selection: start tight, widen when a
// sparse chain leaves the tight band empty.
const (
	moveTightBandPct = 0.01
	moveWideBandPct  = 0.05
)

// ExpectedMove is the IV-implied one-day and one-week price band.
type ExpectedMove struct {
	Expiration string  `json:"expiration"`
	IV         float64 `json:"iv"`
	DailyMove  float64 `json:"daily_move"`
	DailyLow   float64 `json:"daily_low"`
	DailyHigh  float64 `json:"daily_high"`
	WeeklyMove float64 `json:"weekly_move"`
	WeeklyLow  float64 `json:"weekly_low"`
	WeeklyHigh float64 `json:"weekly_high"`
}

// computeExpectedMove derives the expected move from ATM IV at the nearest
// expiration carrying usable IV. Returns nil when no expiry qualifies.
func (e *Engine) computeExpectedMove(contracts []chain.OptionContract, spot float64) *ExpectedMove {
	byExpiry := make(map[string][]chain.OptionContract)
	for _, c := range contracts {
		if c.IV <= 0 {
			continue
		}
		byExpiry[c.Expiration.Format(expiryKeyLayout)] = append(byExpiry[c.Expiration.Format(expiryKeyLayout)], c)
	}

	keys := make([]string, 0, len(byExpiry))
	for k := range byExpiry {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		iv := atmIV(byExpiry[key], spot, moveTightBandPct)
		if iv <= 0 {
			iv = atmIV(byExpiry[key], spot, moveWideBandPct)
		}
		if iv <= 0 {
			continue
		}

		daily := spot * iv * math.Sqrt(1.0/365)
		weekly := spot * iv * math.Sqrt(7.0/365)
		return &ExpectedMove{
			Expiration: key,
			IV:         iv,
			DailyMove:  daily,
			DailyLow:   spot - daily,
			DailyHigh:  spot + daily,
			WeeklyMove: weekly,
			WeeklyLow:  spot - weekly,
			WeeklyHigh: spot + weekly,
		}
	}
	return nil
}

func atmIV(contracts []chain.OptionContract, spot, bandPct float64) float64 {
	sum, n := 0.0, 0
	for _, c := range contracts {
		if math.Abs(c.Strike-spot)/spot <= bandPct {
			sum += c.IV
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
