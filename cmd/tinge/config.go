package main

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level server configuration, loaded from YAML with env
// overrides applied in main.
type Config struct {
	Port    string        `yaml:"port"`
	AuditDB string        `yaml:"audit_db"`
	Engine  EngineConfig  `yaml:"engine"`
	Limits  LimitsConfig  `yaml:"limits"`
	Logging LoggingConfig `yaml:"logging"`
}

// EngineConfig tunes the extraction pipeline.
type EngineConfig struct {
	NavTimeout       time.Duration `yaml:"nav_timeout"`
	ViewportWidth    int           `yaml:"viewport_width"`
	ViewportHeight   int           `yaml:"viewport_height"`
	SaturationCutoff float64       `yaml:"saturation_cutoff"`
	MaxImageBytes    int64         `yaml:"max_image_bytes"`
}

// LimitsConfig tunes the serving layer.
type LimitsConfig struct {
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	RateMax        int           `yaml:"rate_max"`
	RateWindow     time.Duration `yaml:"rate_window"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	CacheSize      int           `yaml:"cache_size"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
}

// LoadConfig reads a YAML configuration file; an empty path yields pure
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Port == "" {
		c.Port = "8086"
	}
	if c.AuditDB == "" {
		c.AuditDB = "db/extraction_audit.db"
	}
	if c.Engine.NavTimeout <= 0 {
		c.Engine.NavTimeout = 15 * time.Second
	}
	if c.Engine.ViewportWidth <= 0 {
		c.Engine.ViewportWidth = 1440
	}
	if c.Engine.ViewportHeight <= 0 {
		c.Engine.ViewportHeight = 900
	}
	if c.Engine.MaxImageBytes <= 0 {
		c.Engine.MaxImageBytes = 10 << 20
	}
	if c.Limits.MaxBodyBytes <= 0 {
		// Base64 image uploads: raw image cap plus encoding overhead.
		c.Limits.MaxBodyBytes = 15 << 20
	}
	if c.Limits.RateMax <= 0 {
		c.Limits.RateMax = 10
	}
	if c.Limits.RateWindow <= 0 {
		c.Limits.RateWindow = time.Minute
	}
	if c.Limits.RequestTimeout <= 0 {
		c.Limits.RequestTimeout = 60 * time.Second
	}
	if c.Limits.CacheSize <= 0 {
		c.Limits.CacheSize = 256
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}
