package exposure

// Config carries the tunable knobs of the exposure engine. The trading
// context thresholds are deliberately not here: they are fixed constants so
// the same chain always classifies the same way across deployments.
type Config struct {
	// RiskFreeRate feeds the Greeks engine when a contract needs a derived
	// vanna.
	RiskFreeRate float64 `mapstructure:"risk_free_rate"`

	// MinOpenInterest is the floor below which a contract contributes no
	// exposure.
	MinOpenInterest int64 `mapstructure:"min_open_interest"`

	// MinGEX filters strikes out of zone classification when |net GEX|
	// falls under it.
	MinGEX float64 `mapstructure:"min_gex"`

	// MaxZones caps how many classified zones a snapshot carries.
	MaxZones int `mapstructure:"max_zones"`

	// HeatmapRows bounds the strike axis of the heatmap grids.
	HeatmapRows int `mapstructure:"heatmap_rows"`

	// HeatmapExpirations bounds the expiration axis of the heatmap grids.
	HeatmapExpirations int `mapstructure:"heatmap_expirations"`

	// WallWindow is the number of strikes on each side of spot included in
	// the put/call wall payload.
	WallWindow int `mapstructure:"wall_window"`

	// DeltaTolerance is how far from the 0.25-delta target the skew
	// calculation will accept a contract.
	DeltaTolerance float64 `mapstructure:"delta_tolerance"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		RiskFreeRate:       0.05,
		MinOpenInterest:    10,
		MinGEX:             1_000_000,
		MaxZones:           20,
		HeatmapRows:        20,
		HeatmapExpirations: 8,
		WallWindow:         10,
		DeltaTolerance:     0.10,
	}
}
