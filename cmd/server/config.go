// Package main provides the innohub API server.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/good-yellow-bee/innohub/internal/logger"
)

// Config represents the server configuration. Values come from an optional
// YAML file and are then overridden by environment variables.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	AI       AIConfig       `yaml:"ai"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Log      LogConfig      `yaml:"log"`
	Verbose  bool           `yaml:"-"` // set via CLI flag
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	Port             string   `yaml:"port" env:"PORT"`
	CORSOrigins      []string `yaml:"cors_origins" env:"CORS_ORIGINS" env-separator:","`
	AIRateLimitPerIP int      `yaml:"ai_rate_limit_per_ip" env:"AI_RATE_LIMIT_PER_IP"`
}

// DatabaseConfig selects the storage backend.
type DatabaseConfig struct {
	URL  string `yaml:"url" env:"DATABASE_URL"`   // SQLite path or mongodb:// URI
	Name string `yaml:"name" env:"DATABASE_NAME"` // MongoDB database name
}

// AuthConfig contains token settings.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`
	Issuer    string `yaml:"issuer" env:"JWT_ISSUER"`
	TokenTTL  string `yaml:"token_ttl" env:"JWT_TOKEN_TTL"` // e.g. "120h"
}

// AIConfig configures the remote generative model. No key means templates.
type AIConfig struct {
	APIKey  string `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model   string `yaml:"model" env:"GEMINI_MODEL"`
	BaseURL string `yaml:"base_url" env:"GEMINI_BASE_URL"`
	Timeout string `yaml:"timeout" env:"GEMINI_TIMEOUT"`
}

// MetricsConfig contains the Prometheus listener settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
	Address string `yaml:"address" env:"METRICS_ADDRESS"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Pretty bool   `yaml:"pretty" env:"LOG_PRETTY"`
}

// LoadConfig reads the YAML file at path, if any, then applies environment
// overrides, defaults and validation.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{Metrics: MetricsConfig{Enabled: true}}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cleanenv.UpdateEnv(cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{Metrics: MetricsConfig{Enabled: true}}
	cfg.setDefaults()
	return cfg
}

// setDefaults sets default values for missing config fields.
func (c *Config) setDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "5000"
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}
	if c.Server.AIRateLimitPerIP == 0 {
		c.Server.AIRateLimitPerIP = 30
	}
	if c.Database.URL == "" {
		c.Database.URL = "./data/innohub.db"
	}
	if c.Database.Name == "" {
		c.Database.Name = "innohub"
	}
	if c.Auth.TokenTTL == "" {
		c.Auth.TokenTTL = "120h" // 5 days
	}
	if c.AI.Timeout == "" {
		c.AI.Timeout = "30s"
	}
	if c.Metrics.Address == "" {
		c.Metrics.Address = ":9090"
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("auth.jwt_secret (JWT_SECRET) is required")
	}
	if _, err := c.TokenTTL(); err != nil {
		return fmt.Errorf("invalid auth.token_ttl: %w", err)
	}
	if _, err := time.ParseDuration(c.AI.Timeout); err != nil {
		return fmt.Errorf("invalid ai.timeout: %w", err)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Server.AIRateLimitPerIP < 0 {
		return fmt.Errorf("server.ai_rate_limit_per_ip must not be negative")
	}
	return nil
}

// Address returns the HTTP listen address for the configured port.
func (c *Config) Address() string {
	if strings.Contains(c.Server.Port, ":") {
		return c.Server.Port
	}
	return ":" + c.Server.Port
}

// TokenTTL returns the parsed token lifetime.
func (c *Config) TokenTTL() (time.Duration, error) {
	ttl, err := time.ParseDuration(c.Auth.TokenTTL)
	if err != nil {
		return 0, err
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("must be positive")
	}
	return ttl, nil
}

// AITimeout returns the parsed remote call timeout.
func (c *Config) AITimeout() time.Duration {
	d, _ := time.ParseDuration(c.AI.Timeout)
	return d
}
