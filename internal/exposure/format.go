package exposure

import (
	"fmt"
	"math"
)

// FormatDollars renders an exposure value as a signed, abbreviated dollar
// string: +$1.2B, -$850.3M, +$12.5K. Values under a thousand render as
// whole dollars. This string ships to charting clients, so the shape is
// part of the output contract.
func FormatDollars(v float64) string {
	sign := "+"
	if v < 0 {
		sign = "-"
	}
	abs := math.Abs(v)

	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%s$%.1fB", sign, abs/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%s$%.1fM", sign, abs/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%s$%.1fK", sign, abs/1e3)
	case abs == 0:
		return "$0"
	default:
		return fmt.Sprintf("%s$%.0f", sign, abs)
	}
}

// toBillions rounds an exposure value to billions with two decimals for the
// compact levels payload.
func toBillions(v float64) float64 {
	return math.Round(v/1e9*100) / 100
}
