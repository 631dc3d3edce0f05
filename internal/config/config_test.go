package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultServerConfig(t *testing.T) {
	cfg := DefaultServerConfig()
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestLoadFile_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	doc := "addr: \":9090\"\nlog_format: json\nrate_limit: 5\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultServerConfig()
	if err := LoadFile(path, &cfg); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.LogFormat != "json" || cfg.RateLimit != 5 {
		t.Errorf("overlay not applied: %+v", cfg)
	}
	// Untouched keys keep their defaults.
	if cfg.MaxRequests != 10000 || cfg.LogLevel != "info" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultServerConfig()

	if err := LoadFile(filepath.Join(dir, "missing.yaml"), &cfg); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("max_requests: 0\n"), 0o644)
	err := LoadFile(bad, &cfg)
	if err == nil || !strings.Contains(err.Error(), "max_requests") {
		t.Errorf("err = %v, want max_requests validation error", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ServerConfig)
		ok     bool
	}{
		{"defaults", func(c *ServerConfig) {}, true},
		{"limiter off", func(c *ServerConfig) { c.RateLimit = 0; c.RateBurst = 0 }, true},
		{"empty addr", func(c *ServerConfig) { c.Addr = "" }, false},
		{"negative rate", func(c *ServerConfig) { c.RateLimit = -1 }, false},
		{"zero burst", func(c *ServerConfig) { c.RateBurst = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultServerConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}
