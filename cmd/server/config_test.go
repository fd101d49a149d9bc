package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_FileValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "8081"
database:
  url: /tmp/innohub-test.db
auth:
  jwt_secret: file-secret
  token_ttl: 2h
log:
  level: debug
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Address() != ":8081" {
		t.Errorf("address = %q", cfg.Address())
	}
	if ttl, _ := cfg.TokenTTL(); ttl != 2*time.Hour {
		t.Errorf("ttl = %v", ttl)
	}
	if cfg.Metrics.Address != ":9090" || !cfg.Metrics.Enabled {
		t.Errorf("metrics = %+v", cfg.Metrics)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "auth:\n  jwt_secret: file-secret\n")
	t.Setenv("PORT", "7000")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("GEMINI_API_KEY", "key")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Errorf("secret = %q, want env value", cfg.Auth.JWTSecret)
	}
	if cfg.Address() != ":7000" {
		t.Errorf("address = %q", cfg.Address())
	}
	if cfg.Database.URL != "mongodb://localhost:27017" || cfg.AI.APIKey != "key" {
		t.Errorf("config = %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing secret", func(c *Config) { c.Auth.JWTSecret = "" }, true},
		{"bad ttl", func(c *Config) { c.Auth.TokenTTL = "soon" }, true},
		{"negative ttl", func(c *Config) { c.Auth.TokenTTL = "-1h" }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"bad ai timeout", func(c *Config) { c.AI.Timeout = "x" }, true},
		{"missing ai key is fine", func(c *Config) { c.AI.APIKey = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Auth.JWTSecret = "secret"
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigAddress(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Address() != ":5000" {
		t.Errorf("default address = %q", cfg.Address())
	}
	cfg.Server.Port = "127.0.0.1:6000"
	if cfg.Address() != "127.0.0.1:6000" {
		t.Errorf("address = %q", cfg.Address())
	}
}
