package exposure

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dgnsrekt/gexray/internal/chain"
	"github.com/dgnsrekt/gexray/internal/greeks"
	"github.com/dgnsrekt/gexray/internal/marketclock"
)

// Totals are the chain-wide exposure sums across every strike.
type Totals struct {
	CallGEX float64 `json:"call_gex"`
	PutGEX  float64 `json:"put_gex"`
	NetGEX  float64 `json:"net_gex"`
	CallVEX float64 `json:"call_vex"`
	PutVEX  float64 `json:"put_vex"`
	NetVEX  float64 `json:"net_vex"`
	CallDEX float64 `json:"call_dex"`
	PutDEX  float64 `json:"put_dex"`
	NetDEX  float64 `json:"net_dex"`
}

// Snapshot is the full result of one calculation pass. It is immutable once
// returned; a refresh cycle always builds a new one from scratch.
type Snapshot struct {
	Symbol     string        `json:"symbol"`
	Spot       float64       `json:"spot_price"`
	Timestamp  time.Time     `json:"timestamp"`
	Zones      []Zone        `json:"zones"`
	King       *Zone         `json:"king"`
	Gatekeeper *Zone         `json:"gatekeeper"`
	ZeroGamma  *float64      `json:"zero_gamma"`
	GEXFlip    *float64      `json:"gex_flip"`
	Totals     Totals        `json:"totals"`
	GEXHeatmap *Heatmap      `json:"gex_heatmap"`
	VEXHeatmap *Heatmap      `json:"vex_heatmap"`
	DEXHeatmap *Heatmap      `json:"dex_heatmap"`
	IVSkew     *IVSkew       `json:"iv_skew"`
	Move       *ExpectedMove `json:"expected_move"`
	Walls      *Walls        `json:"walls"`
	ZeroDTE    ZeroDTEStatus `json:"zero_dte"`
}

// Engine composes the Greeks calculator, contract model, aggregator and
// classifiers into one calculation call. It holds no mutable state, so one
// instance can serve concurrent calculations across symbols.
type Engine struct {
	cfg        Config
	clock      *marketclock.Clock
	greeks     *greeks.Engine
	aggregator *Aggregator
	classifier *Classifier
	logger     *zap.Logger
}

// NewEngine wires an exposure engine from explicit dependencies. There are
// no package-level singletons; everything hangs off the returned value.
func NewEngine(cfg Config, clock *marketclock.Clock, logger *zap.Logger) *Engine {
	g := greeks.NewEngine(cfg.RiskFreeRate, clock)
	model := NewContractModel(g, clock, cfg.MinOpenInterest)
	return &Engine{
		cfg:        cfg,
		clock:      clock,
		greeks:     g,
		aggregator: NewAggregator(model),
		classifier: NewClassifier(cfg.MinGEX, cfg.MaxZones),
		logger:     logger,
	}
}

// Calculate runs one full pass over a chain snapshot. spot must be
// positive; an empty contract list degrades to an empty snapshot rather
// than an error.
func (e *Engine) Calculate(symbol string, spot float64, contracts []chain.OptionContract) (*Snapshot, error) {
	if spot <= 0 {
		return nil, fmt.Errorf("spot must be positive, got %v", spot)
	}

	snap := &Snapshot{
		Symbol:    symbol,
		Spot:      spot,
		Timestamp: e.clock.Now(),
		Zones:     []Zone{},
	}
	if len(contracts) == 0 {
		return snap, nil
	}

	aggs := e.aggregator.Aggregate(contracts, spot)

	snap.Zones, snap.King, snap.Gatekeeper = e.classifier.Classify(aggs, spot)
	if snap.Zones == nil {
		snap.Zones = []Zone{}
	}
	snap.ZeroGamma = ZeroGammaLevel(aggs)
	snap.GEXFlip = GEXFlipLevel(aggs)
	snap.Totals = sumTotals(aggs)
	snap.GEXHeatmap, snap.VEXHeatmap, snap.DEXHeatmap = e.buildHeatmaps(aggs, spot)
	snap.IVSkew = e.computeIVSkew(contracts, spot)
	snap.Move = e.computeExpectedMove(contracts, spot)
	snap.Walls = e.computeWalls(aggs, spot)
	snap.ZeroDTE = e.computeZeroDTEStatus(contracts)

	e.logger.Debug("exposure calculated",
		zap.String("symbol", symbol),
		zap.Float64("spot", spot),
		zap.Int("contracts", len(contracts)),
		zap.Int("strikes", len(aggs)),
		zap.Int("zones", len(snap.Zones)),
		zap.Float64("netGEX", snap.Totals.NetGEX),
	)
	return snap, nil
}

func sumTotals(aggs map[float64]*StrikeAggregate) Totals {
	var t Totals
	for _, agg := range aggs {
		t.CallGEX += agg.CallGEX
		t.PutGEX += agg.PutGEX
		t.CallVEX += agg.CallVEX
		t.PutVEX += agg.PutVEX
		t.CallDEX += agg.CallDEX
		t.PutDEX += agg.PutDEX
	}
	t.NetGEX = t.CallGEX + t.PutGEX
	t.NetVEX = t.CallVEX + t.PutVEX
	t.NetDEX = t.CallDEX + t.PutDEX
	return t
}
