package exposure

import (
	"math"
	"testing"
)

func TestZeroGammaBetweenBracketingStrikes(t *testing.T) {
	level := ZeroGammaLevel(aggMap(
		aggWithGEX(95, -500_000),
		aggWithGEX(105, 300_000),
	))
	if level == nil {
		t.Fatal("expected a zero-gamma level")
	}
	if *level <= 95 || *level >= 105 {
		t.Fatalf("level %v outside (95, 105)", *level)
	}
	// The heavier negative strike pulls the level toward itself:
	// (95*500k + 105*300k) / 800k = 98.75.
	if math.Abs(*level-98.75) > 1e-9 {
		t.Errorf("level = %v, want 98.75", *level)
	}
	if *level-95 >= 105-*level {
		t.Error("level should sit closer to the larger-|GEX| strike")
	}
}

func TestZeroGammaNilWithoutSignChange(t *testing.T) {
	if level := ZeroGammaLevel(aggMap(
		aggWithGEX(95, 100_000),
		aggWithGEX(100, 200_000),
		aggWithGEX(105, 50_000),
	)); level != nil {
		t.Errorf("level = %v, want nil", *level)
	}
	if level := ZeroGammaLevel(aggMap(aggWithGEX(100, 1))); level != nil {
		t.Errorf("single strike level = %v, want nil", *level)
	}
}

func TestZeroGammaUsesFirstSignChange(t *testing.T) {
	level := ZeroGammaLevel(aggMap(
		aggWithGEX(90, -100_000),
		aggWithGEX(95, 100_000), // first crossing: between 90 and 95
		aggWithGEX(100, -100_000),
		aggWithGEX(105, 100_000),
	))
	if level == nil {
		t.Fatal("expected a level")
	}
	if *level <= 90 || *level >= 95 {
		t.Errorf("level = %v, want inside the first crossing (90, 95)", *level)
	}
}

func TestGEXFlipInterpolation(t *testing.T) {
	aggs := aggMap(
		aggWithGEX(95, -400_000),
		aggWithGEX(100, 300_000),
		aggWithGEX(105, 300_000),
	)
	level := GEXFlipLevel(aggs)
	if level == nil {
		t.Fatal("expected a flip level")
	}
	// Cumulative: -400k at 95, -100k at 100; strike 105 contributes the
	// remaining 100k of its 300k a third of the way up.
	want := 100 + 5.0/3
	if math.Abs(*level-want) > 1e-9 {
		t.Errorf("level = %v, want %v", *level, want)
	}

	// Cumulative sum is strictly negative below the level and >= 0 at it.
	cum := -400_000.0 + 300_000
	if cum >= 0 {
		t.Fatal("test setup broken: cumulative should still be negative before the flip strike")
	}
}

func TestGEXFlipStartsNonNegative(t *testing.T) {
	level := GEXFlipLevel(aggMap(
		aggWithGEX(95, 100_000),
		aggWithGEX(100, 200_000),
	))
	if level == nil {
		t.Fatal("expected a flip level")
	}
	if *level != 95 {
		t.Errorf("level = %v, want the lowest strike 95", *level)
	}
}

func TestGEXFlipNeverRecovers(t *testing.T) {
	if level := GEXFlipLevel(aggMap(
		aggWithGEX(95, -100_000),
		aggWithGEX(100, -200_000),
		aggWithGEX(105, 50_000),
	)); level != nil {
		t.Errorf("level = %v, want nil", *level)
	}
}

func TestGEXFlipEmpty(t *testing.T) {
	if level := GEXFlipLevel(map[float64]*StrikeAggregate{}); level != nil {
		t.Errorf("level = %v, want nil", *level)
	}
}
