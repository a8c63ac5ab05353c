package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration. Both binaries
// read the same file; the prediction section only matters to gatewayd and
// the model section only to predictiond.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Prediction PredictionConfig `yaml:"prediction"`
	Model      ModelConfig      `yaml:"model"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// PredictionConfig points the gateway at the prediction service.
type PredictionConfig struct {
	URL                  string        `yaml:"url"`
	TimeoutSeconds       int           `yaml:"timeout_seconds"`
	HealthTimeoutSeconds int           `yaml:"health_timeout_seconds"`
	Timeout              time.Duration `yaml:"-"` // Ignored by YAML parser
	HealthTimeout        time.Duration `yaml:"-"`
}

// ModelConfig holds the classifier persistence settings for predictiond.
type ModelConfig struct {
	Path string `yaml:"path"`
	Port int    `yaml:"port"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 30
	}

	if cfg.Prediction.URL == "" {
		cfg.Prediction.URL = "http://localhost:8001"
	}
	if cfg.Prediction.TimeoutSeconds <= 0 {
		cfg.Prediction.TimeoutSeconds = 30
	}
	if cfg.Prediction.HealthTimeoutSeconds <= 0 {
		cfg.Prediction.HealthTimeoutSeconds = 5
	}
	cfg.Prediction.Timeout = time.Duration(cfg.Prediction.TimeoutSeconds) * time.Second
	cfg.Prediction.HealthTimeout = time.Duration(cfg.Prediction.HealthTimeoutSeconds) * time.Second

	if cfg.Model.Path == "" {
		cfg.Model.Path = "./data/model.gob"
	}
	if cfg.Model.Port <= 0 {
		cfg.Model.Port = 8001
	}

	return &cfg, nil
}
