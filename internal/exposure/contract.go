package exposure

import (
	"math"

	"github.com/dgnsrekt/gexray/internal/chain"
	"github.com/dgnsrekt/gexray/internal/greeks"
	"github.com/dgnsrekt/gexray/internal/marketclock"
)

// contractMultiplier is the equity option share multiplier.
const contractMultiplier = 100

const (
	// maxGammaBoost caps the additional 0-DTE multiplier for an ATM
	// contract at the close.
	maxGammaBoost = 3.0

	// moneynessScale controls how fast the 0-DTE boost fades as a strike
	// moves away from spot. 2% moneyness costs one e-fold.
	moneynessScale = 0.02

	// dteDecayDays is the e-fold horizon of the dated-contract weight.
	dteDecayDays = 30.0
)

// ContractModel converts one contract's Greeks into dollar exposures.
type ContractModel struct {
	greeks *greeks.Engine
	clock  *marketclock.Clock
	minOI  int64
}

// NewContractModel returns a model backed by the given Greeks engine for
// derived vanna.
func NewContractModel(g *greeks.Engine, clock *marketclock.Clock, minOpenInterest int64) *ContractModel {
	return &ContractModel{greeks: g, clock: clock, minOI: minOpenInterest}
}

// Exposure holds one contract's dollar exposures at a fixed spot.
type Exposure struct {
	GEX float64
	VEX float64
	DEX float64
}

// Compute returns the GEX/VEX/DEX contribution of a single contract.
// Contracts under the open-interest floor contribute nothing. Puts are
// negated across all three: dealers hedge short puts in the opposite
// direction.
func (m *ContractModel) Compute(c chain.OptionContract, spot float64) Exposure {
	if c.OpenInterest < m.minOI || spot <= 0 {
		return Exposure{}
	}

	vanna := c.Vanna
	if vanna == 0 && c.IV > 0 {
		vanna = m.greeks.Compute(spot, c.Strike, c.Expiration, c.IV, c.Type).Vanna
	}

	base := float64(c.OpenInterest) * contractMultiplier * spot
	exp := Exposure{
		GEX: c.Gamma * base,
		VEX: vanna * base,
		DEX: c.Delta * base,
	}
	if !c.IsCall() {
		exp.GEX = -exp.GEX
		exp.VEX = -exp.VEX
		exp.DEX = -exp.DEX
	}

	if m.clock.SameMarketDay(c.Expiration) {
		moneyness := math.Abs(c.Strike-spot) / spot
		exp.GEX *= ZeroDTEMultiplier(m.clock.HoursToClose(0.5), moneyness)
		return exp
	}

	weight := DTEWeight(m.clock.DaysUntil(c.Expiration))
	exp.GEX *= weight
	exp.VEX *= weight
	exp.DEX *= weight
	return exp
}

// ZeroDTEMultiplier models intraday gamma explosion for same-day expiries.
// It is 1 at the open and grows continuously as the close approaches and as
// the strike approaches spot; only GEX receives it.
func ZeroDTEMultiplier(hoursToClose, moneyness float64) float64 {
	if hoursToClose < 0.5 {
		hoursToClose = 0.5
	}
	if hoursToClose >= marketclock.SessionHours {
		return 1
	}
	timeFactor := 1 - hoursToClose/marketclock.SessionHours
	proximity := math.Exp(-moneyness / moneynessScale)
	return 1 + maxGammaBoost*timeFactor*proximity
}

// DTEWeight discounts dated contracts: dealer hedging pressure from
// far-dated gamma is proportionally weaker. Strictly decreasing in DTE,
// 1 at zero days.
func DTEWeight(dte int) float64 {
	if dte <= 0 {
		return 1
	}
	return math.Exp(-float64(dte) / dteDecayDays)
}
