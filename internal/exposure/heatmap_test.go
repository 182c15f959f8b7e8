package exposure

import (
	"testing"

	"github.com/dgnsrekt/gexray/internal/chain"
)

func TestHeatmapBounds(t *testing.T) {
	e := testEngine(t, testNow)

	var contracts []chain.OptionContract
	expiries := []int{3, 7, 14, 21, 28, 35, 42, 49, 56, 63}
	for strike := 300.0; strike <= 700; strike += 5 {
		for _, d := range expiries {
			contracts = append(contracts,
				contract(strike, chain.Call, 500, 0.02, 0.5, 0.2, testNow.AddDate(0, 0, d)))
		}
	}
	aggs := e.aggregator.Aggregate(contracts, 500)

	gex, vex, dex := e.buildHeatmaps(aggs, 500)
	if gex == nil || vex == nil || dex == nil {
		t.Fatal("expected all three grids")
	}

	if len(gex.Strikes) > e.cfg.HeatmapRows {
		t.Errorf("rows = %d, want <= %d", len(gex.Strikes), e.cfg.HeatmapRows)
	}
	if len(gex.Expirations) > e.cfg.HeatmapExpirations {
		t.Errorf("cols = %d, want <= %d", len(gex.Expirations), e.cfg.HeatmapExpirations)
	}
	if len(gex.Data) != len(gex.Strikes) {
		t.Fatalf("data rows = %d, strikes = %d", len(gex.Data), len(gex.Strikes))
	}
	for i, row := range gex.Data {
		if len(row) != len(gex.Expirations) {
			t.Fatalf("row %d has %d cells, want %d", i, len(row), len(gex.Expirations))
		}
	}

	// Strike axis descends and stays within ±30% of spot.
	for i, strike := range gex.Strikes {
		if i > 0 && strike >= gex.Strikes[i-1] {
			t.Fatal("strikes not descending")
		}
		if strike < 350 || strike > 650 {
			t.Errorf("strike %v outside the ±30%% band", strike)
		}
	}

	// Expiration axis ascends and starts at the earliest date.
	for i := 1; i < len(gex.Expirations); i++ {
		if gex.Expirations[i] <= gex.Expirations[i-1] {
			t.Fatal("expirations not ascending")
		}
	}

	// The three grids share axes.
	if len(vex.Strikes) != len(gex.Strikes) || len(dex.Strikes) != len(gex.Strikes) {
		t.Error("grids should share the strike axis")
	}
}

func TestHeatmapIncludesRowNearestSpot(t *testing.T) {
	e := testEngine(t, testNow)
	expiry := testNow.AddDate(0, 0, 7)

	var contracts []chain.OptionContract
	for strike := 400.0; strike <= 600; strike += 5 {
		contracts = append(contracts, contract(strike, chain.Call, 500, 0.02, 0.5, 0.2, expiry))
	}
	aggs := e.aggregator.Aggregate(contracts, 500)

	gex, _, _ := e.buildHeatmaps(aggs, 502)
	found := false
	for _, strike := range gex.Strikes {
		if strike == 500 {
			found = true
		}
	}
	if !found {
		t.Error("row nearest spot (500) missing from the grid")
	}
}

func TestHeatmapBandFallback(t *testing.T) {
	e := testEngine(t, testNow)
	expiry := testNow.AddDate(0, 0, 7)

	// Every strike sits far outside ±30% of spot; the filter must fall
	// back to the unfiltered set instead of emitting nothing.
	contracts := []chain.OptionContract{
		contract(100, chain.Call, 500, 0.02, 0.5, 0.2, expiry),
		contract(110, chain.Call, 500, 0.02, 0.5, 0.2, expiry),
	}
	aggs := e.aggregator.Aggregate(contracts, 500)

	gex, _, _ := e.buildHeatmaps(aggs, 500)
	if gex == nil || len(gex.Strikes) != 2 {
		t.Fatal("fallback should keep the out-of-band strikes")
	}
}

func TestHeatmapMissingCellsZero(t *testing.T) {
	e := testEngine(t, testNow)

	contracts := []chain.OptionContract{
		contract(500, chain.Call, 500, 0.02, 0.5, 0.2, testNow.AddDate(0, 0, 7)),
		contract(505, chain.Call, 500, 0.02, 0.5, 0.2, testNow.AddDate(0, 0, 14)),
	}
	aggs := e.aggregator.Aggregate(contracts, 500)

	gex, _, _ := e.buildHeatmaps(aggs, 500)
	if len(gex.Expirations) != 2 {
		t.Fatalf("cols = %d, want 2", len(gex.Expirations))
	}
	var zeros, nonZeros int
	for _, row := range gex.Data {
		for _, cell := range row {
			if cell == 0 {
				zeros++
			} else {
				nonZeros++
			}
		}
	}
	if zeros != 2 || nonZeros != 2 {
		t.Errorf("cells = %d zero / %d non-zero, want 2/2", zeros, nonZeros)
	}
}
