// Package config loads runtime settings for the printdraft CLI.
package config

import "time"

// Config holds runtime settings for the printdraft CLI.
//
// Fields:
//   - APIBaseURL: base URL of the order backend, e.g. http://127.0.0.1:8080.
//   - RequestTimeout: per-request deadline for control-plane API calls.
//     Uploads are not bounded by it; they run until done or cancelled.
//   - DatabaseDSN: SQLite DSN for the local wizard-progress store.
//   - DraftTTL: how long a persisted draft marker stays resumable.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	DatabaseDSN    string
	DraftTTL       time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 30 * time.Second
	c.DatabaseDSN = "printdraft.db"
	c.DraftTTL = 24 * time.Hour
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
