// Package config loads session defaults from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"dirscope/internal/model"
)

type Config struct {
	MinSizeBytes     int64 `yaml:"min_size_bytes"`
	ShowAll          bool  `yaml:"show_all"`
	ShowHidden       bool  `yaml:"show_hidden"`
	SortBySize       bool  `yaml:"sort_by_size"`
	CacheTTLSeconds  int   `yaml:"cache_ttl_seconds"`
	AutoRefresh      bool  `yaml:"auto_refresh"`
	AutoRefreshSecs  int   `yaml:"auto_refresh_seconds"`
	DeleteConcurrent int   `yaml:"delete_concurrency"`
}

func DefaultConfig() *Config {
	return &Config{
		MinSizeBytes:     model.DefaultMinSize,
		SortBySize:       true,
		CacheTTLSeconds:  300,
		AutoRefreshSecs:  30,
		DeleteConcurrent: 1,
	}
}

// LoadConfig reads path, falling back to defaults when the file does not
// exist. Zero-valued numeric fields are filled in from the defaults so a
// partial file stays usable.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	def := DefaultConfig()
	if cfg.MinSizeBytes <= 0 {
		cfg.MinSizeBytes = def.MinSizeBytes
	}
	if cfg.CacheTTLSeconds <= 0 {
		cfg.CacheTTLSeconds = def.CacheTTLSeconds
	}
	if cfg.AutoRefreshSecs <= 0 {
		cfg.AutoRefreshSecs = def.AutoRefreshSecs
	}
	if cfg.DeleteConcurrent <= 0 {
		cfg.DeleteConcurrent = def.DeleteConcurrent
	}
	return cfg, nil
}

// Filter converts the file-level defaults into a session filter.
func (c *Config) Filter() model.FilterConfig {
	return model.FilterConfig{
		MinSize:    c.MinSizeBytes,
		ShowAll:    c.ShowAll,
		ShowHidden: c.ShowHidden,
		SortBySize: c.SortBySize,
	}
}

// CacheTTL returns the configured cache lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// RefreshInterval returns the auto-refresh period.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.AutoRefreshSecs) * time.Second
}
