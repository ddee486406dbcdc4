// Package config loads and validates console config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds console configuration loaded from the environment.
type Config struct {
	// APIURL is the backend base URL, including the API prefix (e.g. http://localhost:3000/api/v1).
	APIURL string `mapstructure:"API_URL"`
	// SessionFile is the path of the durable session record; empty disables persistence.
	SessionFile string `mapstructure:"SESSION_FILE"`
	// HTTPTimeout is the per-request timeout for backend calls (e.g. "20s").
	HTTPTimeout string `mapstructure:"HTTP_TIMEOUT"`
	// OTLPEndpoint is the OTLP gRPC endpoint for traces and event logs; empty disables export.
	OTLPEndpoint string `mapstructure:"OTLP_ENDPOINT"`
	// OTLPInsecure forces plaintext OTLP even for https endpoints (standard OTEL_EXPORTER_OTLP_INSECURE behavior).
	OTLPInsecure bool `mapstructure:"OTLP_INSECURE"`
	// LokiURL is the Grafana Loki base URL for console event push (e.g. http://localhost:3100); empty disables it.
	LokiURL string `mapstructure:"LOKI_URL"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the
// environment via Viper. Missing .env is ignored. Env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("API_URL", "http://localhost:3000/api/v1")
	v.SetDefault("SESSION_FILE", defaultSessionFile())
	v.SetDefault("HTTP_TIMEOUT", "20s")
	v.SetDefault("OTLP_ENDPOINT", "")
	v.SetDefault("OTLP_INSECURE", false)
	v.SetDefault("LOKI_URL", "")
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.APIURL == "" {
		return nil, errors.New("config: API_URL must be set")
	}

	return &cfg, nil
}

// Timeout parses HTTPTimeout as a time.Duration. Returns 20s if unset or invalid.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil || d <= 0 {
		return 20 * time.Second
	}
	return d
}

// defaultSessionFile is $HOME/.config/ddg-console/session.json, or a
// relative fallback when the home directory cannot be resolved.
func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(home, ".config", "ddg-console", "session.json")
}
