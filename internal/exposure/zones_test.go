package exposure

import (
	"math"
	"testing"
)

func aggWithGEX(strike, netGEX float64) *StrikeAggregate {
	return &StrikeAggregate{
		Strike:      strike,
		NetGEX:      netGEX,
		GEXByExpiry: map[string]float64{"2026-03-20": netGEX},
	}
}

func aggMap(aggs ...*StrikeAggregate) map[float64]*StrikeAggregate {
	out := make(map[float64]*StrikeAggregate)
	for _, a := range aggs {
		out[a.Strike] = a
	}
	return out
}

func TestKingHasMaxAbsoluteGEX(t *testing.T) {
	cl := NewClassifier(1, 20)
	zones, king, _ := cl.Classify(aggMap(
		aggWithGEX(490, -2e8),
		aggWithGEX(500, 5e8),
		aggWithGEX(510, 3e8),
	), 500)

	if king == nil {
		t.Fatal("expected a king")
	}
	if king.Strike != 500 {
		t.Errorf("king strike = %v, want 500", king.Strike)
	}
	if king.Strength != 1.0 {
		t.Errorf("king strength = %v, want 1.0", king.Strength)
	}
	for _, z := range zones {
		if math.Abs(z.NetGEX) > math.Abs(king.NetGEX) {
			t.Errorf("zone %v exceeds king |GEX|", z.Strike)
		}
		if z.Strength < 0 || z.Strength > 1 {
			t.Errorf("zone %v strength %v outside [0,1]", z.Strike, z.Strength)
		}
	}
}

func TestGatekeeperHasOppositePolarity(t *testing.T) {
	cl := NewClassifier(1, 20)
	_, king, gatekeeper := cl.Classify(aggMap(
		aggWithGEX(500, 5e8),
		aggWithGEX(495, -4e8),
		aggWithGEX(505, 3e8),
		aggWithGEX(490, -1e8),
	), 500)

	if gatekeeper == nil {
		t.Fatal("expected a gatekeeper")
	}
	if gatekeeper.Strike != 495 {
		t.Errorf("gatekeeper strike = %v, want the largest opposite-polarity strike 495", gatekeeper.Strike)
	}
	if gatekeeper.Polarity == king.Polarity {
		t.Error("gatekeeper polarity must differ from king")
	}
}

func TestNoGatekeeperWhenSinglePolarity(t *testing.T) {
	cl := NewClassifier(1, 20)
	_, king, gatekeeper := cl.Classify(aggMap(
		aggWithGEX(500, 5e8),
		aggWithGEX(505, 3e8),
	), 500)
	if king == nil {
		t.Fatal("expected a king")
	}
	if gatekeeper != nil {
		t.Errorf("gatekeeper = %+v, want nil", gatekeeper)
	}
}

func TestMinGEXFilter(t *testing.T) {
	cl := NewClassifier(1e6, 20)
	zones, king, _ := cl.Classify(aggMap(
		aggWithGEX(500, 5e8),
		aggWithGEX(505, 1e5), // under threshold
	), 500)
	if len(zones) != 1 {
		t.Fatalf("zones = %d, want 1", len(zones))
	}
	if king == nil || king.Strike != 500 {
		t.Error("king should survive the filter")
	}
}

func TestRoleAssignment(t *testing.T) {
	cl := NewClassifier(1, 20)
	zones, _, _ := cl.Classify(aggMap(
		aggWithGEX(520, 9e8),  // king
		aggWithGEX(515, -5e8), // gatekeeper
		aggWithGEX(510, 4e8),  // positive above spot: resistance
		aggWithGEX(495, 3e8),  // positive below spot: support
		aggWithGEX(490, -2e8), // negative: accelerator
	), 500)

	want := map[float64]Role{
		520: RoleKing,
		515: RoleGatekeeper,
		510: RoleResistance,
		495: RoleSupport,
		490: RoleAccelerator,
	}
	for _, z := range zones {
		if z.Role != want[z.Strike] {
			t.Errorf("strike %v role = %s, want %s", z.Strike, z.Role, want[z.Strike])
		}
	}
}

func TestMaxZonesKeepsGatekeeper(t *testing.T) {
	// Gatekeeper ranks below the cap; truncation must not orphan the
	// snapshot's gatekeeper reference.
	cl := NewClassifier(1, 3)
	zones, _, gatekeeper := cl.Classify(aggMap(
		aggWithGEX(500, 9e8),
		aggWithGEX(505, 8e8),
		aggWithGEX(510, 7e8),
		aggWithGEX(515, 6e8),
		aggWithGEX(495, -1e8),
	), 500)

	if len(zones) != 3 {
		t.Fatalf("zones = %d, want 3", len(zones))
	}
	if gatekeeper == nil {
		t.Fatal("gatekeeper dropped by truncation")
	}
	found := false
	for _, z := range zones {
		if z.Role == RoleGatekeeper {
			found = true
		}
	}
	if !found {
		t.Error("gatekeeper reference not present in zone list")
	}
}

func TestContextRuleChain(t *testing.T) {
	cases := []struct {
		name     string
		isKing   bool
		polarity Polarity
		strength float64
		strike   float64
		spot     float64
		want     Context
	}{
		{"king magnet", true, Positive, 1.0, 500, 500, ContextMagnet},
		{"negative near spot", false, Negative, 0.4, 505, 500, ContextAcceleration},
		{"strong positive at spot", false, Positive, 0.7, 502, 500, ContextAbsorption},
		{"weak positive at spot above", false, Positive, 0.2, 502, 500, ContextResistance},
		{"positive above spot", false, Positive, 0.6, 540, 500, ContextResistance},
		{"positive below spot", false, Positive, 0.6, 460, 500, ContextSupport},
		{"negative far from spot", false, Negative, 0.6, 460, 500, ContextAcceleration},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyContext(tc.isKing, tc.polarity, tc.strength, tc.strike, tc.spot)
			if got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestZonesSortedByStrikeDescending(t *testing.T) {
	cl := NewClassifier(1, 20)
	zones, _, _ := cl.Classify(aggMap(
		aggWithGEX(495, 3e8),
		aggWithGEX(510, 9e8),
		aggWithGEX(500, -5e8),
		aggWithGEX(505, 4e8),
	), 500)
	for i := 1; i < len(zones); i++ {
		if zones[i].Strike > zones[i-1].Strike {
			t.Fatalf("zones out of order at %d: %v after %v", i, zones[i].Strike, zones[i-1].Strike)
		}
	}
}
