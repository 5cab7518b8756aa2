package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		File   string `yaml:"file"`
	} `yaml:"logging"`
	Catalog struct {
		Path       string `yaml:"path"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"catalog"`
	Quotes struct {
		Enabled     bool    `yaml:"enabled"`
		BaseURL     string  `yaml:"base_url"`
		Coin        string  `yaml:"coin"`
		TimeoutMs   int     `yaml:"timeout_ms"`
		RatePerSec  float64 `yaml:"rate_per_sec"`
		CacheTTLSec int     `yaml:"cache_ttl_sec"`
	} `yaml:"quotes"`
	Chart struct {
		Width          int `yaml:"width"`
		Height         int `yaml:"height"`
		SurfaceRetryMs int `yaml:"surface_retry_ms"`
	} `yaml:"chart"`
}

// Load reads a YAML config file and fills defaults for unset values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default. The bool
// reports whether the file was read.
func LoadOrDefault(path string) (*Config, bool, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

// Default is the config used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Quotes.BaseURL == "" {
		c.Quotes.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if c.Quotes.Coin == "" {
		c.Quotes.Coin = "bitcoin"
	}
	if c.Quotes.TimeoutMs == 0 {
		c.Quotes.TimeoutMs = 10000
	}
	if c.Quotes.RatePerSec == 0 {
		c.Quotes.RatePerSec = 0.5
	}
	if c.Quotes.CacheTTLSec == 0 {
		c.Quotes.CacheTTLSec = 60
	}
	if c.Chart.Width == 0 {
		c.Chart.Width = 640
	}
	if c.Chart.Height == 0 {
		c.Chart.Height = 320
	}
	if c.Chart.SurfaceRetryMs == 0 {
		c.Chart.SurfaceRetryMs = 100
	}
}

func (c *Config) QuoteTimeout() time.Duration {
	return time.Duration(c.Quotes.TimeoutMs) * time.Millisecond
}

func (c *Config) QuoteCacheTTL() time.Duration {
	return time.Duration(c.Quotes.CacheTTLSec) * time.Second
}

func (c *Config) SurfaceRetryDelay() time.Duration {
	return time.Duration(c.Chart.SurfaceRetryMs) * time.Millisecond
}
