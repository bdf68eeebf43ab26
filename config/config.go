package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. CINELIST_API_URL
const EnvPrefix = "CINELIST"

// Load loads the configuration. An explicit configPath must exist; otherwise
// the standard locations are searched and a missing file means defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".cinelist"))
		}

		// Check /etc
		v.AddConfigPath("/etc/cinelist/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.url", "http://localhost:3000")
	v.SetDefault("api.timeout", "0s")
	v.SetDefault("api.user_agent", "cinelist")
	v.SetDefault("api.tracing", false)

	// UI defaults
	v.SetDefault("ui.confirm_delete", true)
	v.SetDefault("ui.reapply_search", false)

	v.SetDefault("filter.presets", map[string]string{})

	// Server defaults
	v.SetDefault("server.addr", ":3000")
	v.SetDefault("server.db_path", "cinelist.db")
	v.SetDefault("server.seed_file", "")
	v.SetDefault("server.rate_limit", 0)
	v.SetDefault("server.rate_burst", 4)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	v.SetDefault("update.repository", "s0up4200/cinelist")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.URL == "" {
		return fmt.Errorf("api.url is required")
	}

	u, err := url.Parse(cfg.API.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.url must be an absolute http(s) URL: %q", cfg.API.URL)
	}

	if cfg.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative: %s", cfg.API.Timeout)
	}

	presets := make(map[string]string, len(cfg.Filter.Presets))
	for name, expression := range cfg.Filter.Presets {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter.presets.%s is empty", name)
		}
		presets[strings.ToLower(name)] = expression
	}
	cfg.Filter.Presets = presets

	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}

	if cfg.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative")
	}

	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
