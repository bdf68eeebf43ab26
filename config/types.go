package config

import (
	"strings"
	"time"
)

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	UI      UIConfig      `mapstructure:"ui"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Update  UpdateConfig  `mapstructure:"update"`
}

// APIConfig holds movie API connection details
type APIConfig struct {
	URL       string        `mapstructure:"url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	Tracing   bool          `mapstructure:"tracing"`
}

// UIConfig contains interaction settings
type UIConfig struct {
	ConfirmDelete bool `mapstructure:"confirm_delete"`
	ReapplySearch bool `mapstructure:"reapply_search"`
}

// FilterConfig contains named filter expressions
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// Preset returns the expression stored under name, ignoring case.
// Keys are lowercased when the config is read.
func (f FilterConfig) Preset(name string) (string, bool) {
	expression, ok := f.Presets[strings.ToLower(name)]
	return expression, ok
}

// ServerConfig configures the bundled reference server
type ServerConfig struct {
	Addr     string `mapstructure:"addr"`
	DBPath   string `mapstructure:"db_path"`
	SeedFile string `mapstructure:"seed_file"`

	// RateLimit is requests per second; 0 disables limiting
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// UpdateConfig controls self-update
type UpdateConfig struct {
	Repository string `mapstructure:"repository"`
}
