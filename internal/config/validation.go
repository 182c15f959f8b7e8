package config

import (
	"fmt"
	"regexp"
	"strings"
)

// symbolPattern matches index and equity tickers the upstream chain API
// accepts.
var symbolPattern = regexp.MustCompile(`^[A-Z][A-Z0-9.]{0,9}$`)

// ValidationErrors collects every problem found in one pass so the operator
// fixes the config once, not field by field.
type ValidationErrors struct {
	InvalidSymbols []string
	FieldErrors    []string
}

// HasErrors returns true if any validation errors exist
func (e *ValidationErrors) HasErrors() bool {
	return len(e.InvalidSymbols) > 0 || len(e.FieldErrors) > 0
}

// Error formats all validation errors into a clear message
func (e *ValidationErrors) Error() string {
	var sb strings.Builder
	sb.WriteString("configuration validation failed:\n")

	if len(e.InvalidSymbols) > 0 {
		sb.WriteString("\nInvalid symbols:\n")
		for _, s := range e.InvalidSymbols {
			sb.WriteString(fmt.Sprintf("  - %q\n", s))
		}
		sb.WriteString("\nSymbols must be upper-case tickers, e.g. SPX, SPY, QQQ\n")
	}

	for _, msg := range e.FieldErrors {
		sb.WriteString(fmt.Sprintf("\n%s\n", msg))
	}

	return sb.String()
}

// Validate checks symbols and the numeric knobs that would otherwise fail
// deep inside the engine or the refresher.
func (c *Config) Validate() error {
	errs := &ValidationErrors{}

	if len(c.Symbols) == 0 {
		errs.FieldErrors = append(errs.FieldErrors, "at least one symbol is required")
	}
	for _, s := range c.Symbols {
		if !symbolPattern.MatchString(s) {
			errs.InvalidSymbols = append(errs.InvalidSymbols, s)
		}
	}

	if c.Refresh.IntervalSec < 1 {
		errs.FieldErrors = append(errs.FieldErrors, "refresh.interval_sec must be >= 1")
	}
	if c.Refresh.Workers < 1 {
		errs.FieldErrors = append(errs.FieldErrors, "refresh.workers must be >= 1")
	}
	if c.Engine.MinOpenInterest < 0 {
		errs.FieldErrors = append(errs.FieldErrors, "engine.min_open_interest must be >= 0")
	}
	if c.Engine.MinGEX < 0 {
		errs.FieldErrors = append(errs.FieldErrors, "engine.min_gex must be >= 0")
	}
	if c.Engine.MaxZones < 1 {
		errs.FieldErrors = append(errs.FieldErrors, "engine.max_zones must be >= 1")
	}
	if c.Engine.HeatmapRows < 1 || c.Engine.HeatmapExpirations < 1 {
		errs.FieldErrors = append(errs.FieldErrors, "engine.heatmap_rows and engine.heatmap_expirations must be >= 1")
	}
	if c.Engine.DeltaTolerance <= 0 {
		errs.FieldErrors = append(errs.FieldErrors, "engine.delta_tolerance must be > 0")
	}
	if c.Provider.RatePerSecond < 1 {
		errs.FieldErrors = append(errs.FieldErrors, "provider.rate_per_second must be >= 1")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
