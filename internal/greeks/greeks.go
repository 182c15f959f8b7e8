package greeks

import (
	"math"
	"time"

	"github.com/dgnsrekt/gexray/internal/chain"
	"github.com/dgnsrekt/gexray/internal/marketclock"
)

// DefaultRiskFreeRate is used when the caller does not supply one.
const DefaultRiskFreeRate = 0.05

// minYearFraction floors T for dated expiries to avoid division by zero.
const minYearFraction = 0.0001

// minHoursToClose floors the intraday fraction for 0-DTE contracts.
const minHoursToClose = 0.5

// Greeks holds the full sensitivity set for one contract. Vega is per 1% IV
// move, theta per calendar day; the rest are unscaled.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Vanna float64 `json:"vanna"`
	Charm float64 `json:"charm"`
	Vomma float64 `json:"vomma"`
}

// Engine computes Black-Scholes Greeks. It is stateless apart from the
// injected rate and clock, so a single instance is safe to share across
// goroutines.
type Engine struct {
	rate  float64
	clock *marketclock.Clock
}

// NewEngine returns an Engine with the given risk-free rate and clock.
func NewEngine(rate float64, clock *marketclock.Clock) *Engine {
	return &Engine{rate: rate, clock: clock}
}

// Compute returns the Greeks for a single contract at the given spot.
// Degenerate inputs (iv, spot or strike not positive) return all zeros
// rather than an error; the exposure layer treats such contracts as inert.
func (e *Engine) Compute(spot, strike float64, expiration time.Time, iv float64, typ chain.OptionType) Greeks {
	if iv <= 0 || spot <= 0 || strike <= 0 {
		return Greeks{}
	}

	t := e.yearFraction(expiration)
	sqrtT := math.Sqrt(t)

	d1 := (math.Log(spot/strike) + (e.rate+0.5*iv*iv)*t) / (iv * sqrtT)
	d2 := d1 - iv*sqrtT
	nd1 := normPDF(d1)

	var g Greeks

	if typ == chain.Call {
		g.Delta = normCDF(d1)
	} else {
		g.Delta = normCDF(d1) - 1
	}

	g.Gamma = nd1 / (spot * iv * sqrtT)

	rawVega := spot * nd1 * sqrtT
	g.Vega = rawVega / 100 // per 1% IV move

	discounted := e.rate * strike * math.Exp(-e.rate*t)
	if typ == chain.Call {
		g.Theta = (-(spot*nd1*iv)/(2*sqrtT) - discounted*normCDF(d2)) / 365
	} else {
		g.Theta = (-(spot*nd1*iv)/(2*sqrtT) + discounted*normCDF(-d2)) / 365
	}

	// Vanna uses the unscaled vega; dividing the per-1% value back out here
	// would silently change the VEX scale downstream.
	g.Vanna = rawVega * (1 - d1/(iv*sqrtT)) / spot

	g.Charm = nd1 * (2*e.rate*t - d2*iv*sqrtT) / (2 * t * iv * sqrtT)
	if typ == chain.Put {
		g.Charm = -g.Charm
	}

	g.Vomma = g.Vega * d1 * d2 / iv

	return g
}

// yearFraction converts an expiration into years. Dated expiries use a
// 365-day calendar count. Same-day expiries switch to an intraday fraction
// of the trading year so gamma keeps accelerating into the close instead of
// collapsing to the daily floor.
func (e *Engine) yearFraction(expiration time.Time) float64 {
	if e.clock.SameMarketDay(expiration) {
		hours := e.clock.HoursToClose(minHoursToClose)
		return hours / (marketclock.TradingDaysPerYear * marketclock.SessionHours)
	}
	t := float64(e.clock.DaysUntil(expiration)) / 365
	if t < minYearFraction {
		return minYearFraction
	}
	return t
}

func normCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}
