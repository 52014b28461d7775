// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults, Load(ctx) to layer
//   file and environment overrides on top.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9090".
	Addr string `koanf:"addr"`

	// DatasetPath points at the indicator CSV to load at startup.
	DatasetPath string `koanf:"dataset_path"`

	// RowPolicy decides what a bad dataset row does: "reject" aborts the
	// whole load, "drop" skips and reports the row.
	RowPolicy string `koanf:"row_policy"`

	// MaxRankingLimit caps GET /ranking?limit.
	MaxRankingLimit int `koanf:"max_ranking_limit"`

	// LowThreshold and HighThreshold are the risk tier cut points.
	LowThreshold  float64 `koanf:"low_threshold"`
	HighThreshold float64 `koanf:"high_threshold"`

	// GDPTargetUSD is the per-capita GDP at which the economic gap closes.
	GDPTargetUSD float64 `koanf:"gdp_target_usd"`

	// PopulationCeilingMillions is the reference population treated as
	// maximal pressure.
	PopulationCeilingMillions float64 `koanf:"population_ceiling_millions"`

	// DefaultWeights optionally seeds the startup scenario; keys are pillar
	// names, values any non-negative scale. Empty means equal weights.
	DefaultWeights map[string]float64 `koanf:"default_weights"`
}

// New creates a Config holding the documented defaults.
func New() *Config {
	return &Config{
		LogLevel:                  "info",
		Addr:                      ":9090",
		DatasetPath:               "data/city_infrastructure.csv",
		RowPolicy:                 "reject",
		MaxRankingLimit:           100,
		LowThreshold:              0.33,
		HighThreshold:             0.66,
		GDPTargetUSD:              60_000,
		PopulationCeilingMillions: 40,
		DefaultWeights:            nil,
	}
}
