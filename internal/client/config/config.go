package config

import "github.com/dmitrijs2005/mymemory/internal/client/session"

// Config holds runtime settings for the mymemory client.
//
// Fields:
//   - DatabasePath: SQLite file holding the preferences table.
//   - LogLevel: debug, info, warn or error.
//   - FallbackImage: optional image file shown when no profile image is stored.
//   - MaxProfileDimension: stored profile images are scaled to fit this square.
type Config struct {
	DatabasePath        string
	LogLevel            string
	FallbackImage       string
	MaxProfileDimension int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "mymemory.db"
	c.LogLevel = "info"
	c.FallbackImage = ""
	c.MaxProfileDimension = session.DefaultMaxDimension
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
