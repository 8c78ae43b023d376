package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "SPENDSHIP_"

type Config struct {
	Workspace WorkspaceConfig `koanf:"workspace"`
	Shipper   ShipperConfig   `koanf:"shipper"`
	Source    SourceConfig    `koanf:"source"`
	Collector CollectorConfig `koanf:"collector"`
}

// WorkspaceConfig identifies the target workspace. The key is the base64
// shared secret; it is validated for presence here and for shape by the
// client, and is never logged.
type WorkspaceConfig struct {
	ID  string `koanf:"id" validate:"required"`
	Key string `koanf:"key" validate:"required"`
}

type ShipperConfig struct {
	Domain   string `koanf:"domain"`
	Endpoint string `koanf:"endpoint"` // optional base URL override (local collector)
	LogType  string `koanf:"logtype"`
	Timeout  int    `koanf:"timeout"` // seconds
	Schedule string `koanf:"schedule"` // optional cron expression; empty = send once
}

type SourceConfig struct {
	Kind     string  `koanf:"kind"` // "static" or "http"
	Endpoint string  `koanf:"endpoint"`
	Budget   float64 `koanf:"budget"`
	Spend    float64 `koanf:"spend"`
}

type CollectorConfig struct {
	Port string `koanf:"port"`
	Skew int    `koanf:"skew"` // minutes
}

// Load reads configuration from SPENDSHIP_-prefixed environment variables
// using koanf. Underscores in variable names map to nesting, e.g.
// SPENDSHIP_WORKSPACE_ID → workspace.id.
func Load() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Shipper.Domain == "" {
		c.Shipper.Domain = "ods.opinsights.azure.com"
	}
	if c.Shipper.LogType == "" {
		c.Shipper.LogType = "Spend"
	}
	if c.Shipper.Timeout <= 0 {
		c.Shipper.Timeout = 30
	}
	if c.Source.Kind == "" {
		c.Source.Kind = "static"
	}
	if c.Collector.Port == "" {
		c.Collector.Port = "8086"
	}
	if c.Collector.Skew <= 0 {
		c.Collector.Skew = 15
	}
}

// HTTPTimeout returns the shipper timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.Shipper.Timeout) * time.Second
}

// MaxSkew returns the collector's tolerated clock skew as a duration.
func (c *Config) MaxSkew() time.Duration {
	return time.Duration(c.Collector.Skew) * time.Minute
}
