package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds configuration for the seekplan server.
type ServerConfig struct {
	Addr           string  `yaml:"addr"`            // Listen address (default ":8080")
	LogLevel       string  `yaml:"log_level"`       // Log level: debug, info, warn, error
	LogFormat      string  `yaml:"log_format"`      // Log format: text, json
	DBPath         string  `yaml:"db_path"`         // SQLite database path (default ~/.seekplan/seekplan.db, ":memory:" for testing)
	RateLimit      float64 `yaml:"rate_limit"`      // API requests per second; 0 disables limiting
	RateBurst      int     `yaml:"rate_burst"`      // Burst size for the rate limiter
	MaxRequests    int     `yaml:"max_requests"`    // Largest request set accepted per call
	MetricsEnabled bool    `yaml:"metrics_enabled"` // Serve /metrics
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:           ":8080",
		LogLevel:       "info",
		LogFormat:      "text",
		RateLimit:      50,
		RateBurst:      100,
		MaxRequests:    10000,
		MetricsEnabled: true,
	}
}

// LoadFile overlays the YAML file at path onto cfg. Keys absent from the
// file keep their current values.
func LoadFile(path string, cfg *ServerConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.Validate()
}

// Validate rejects settings the server cannot run with.
func (c ServerConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must be >= 0, got %v", c.RateLimit)
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return fmt.Errorf("rate_burst must be >= 1 when rate_limit is set, got %d", c.RateBurst)
	}
	if c.MaxRequests < 1 {
		return fmt.Errorf("max_requests must be >= 1, got %d", c.MaxRequests)
	}
	return nil
}
