package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds user preferences loaded from config.toml.
//
// Example file (~/.config/lewis/config.toml):
//
//	[render]
//	scale = 100.0
//	background = "white"
//	formats = ["svg", "png"]
//
//	[cache]
//	disabled = false
//
//	[server]
//	addr = ":8080"
//	redis = "localhost:6379"
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig holds default render settings.
type RenderConfig struct {
	Scale      float64  `toml:"scale"`
	Background string   `toml:"background"`
	Formats    []string `toml:"formats"`
}

// CacheConfig holds cache settings.
type CacheConfig struct {
	Disabled bool `toml:"disabled"`
}

// ServerConfig holds serve command settings.
type ServerConfig struct {
	Addr  string `toml:"addr"`
	Redis string `toml:"redis"`
}

// DefaultConfig returns the built-in defaults used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
	}
}

// LoadConfig reads a TOML config file, layering it over the defaults.
// A missing file is not an error; a malformed one is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
