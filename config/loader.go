package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPaths are searched in order when no explicit path is given.
var DefaultPaths = []string{"config.yml", filepath.Join("config", "config.yml")}

// ErrNoConfig is returned when none of the searched paths exists.
var ErrNoConfig = errors.New("config: no config.yml found")

// LoadAppConfig loads and validates configuration from the first readable
// path. With no arguments DefaultPaths is used.
func LoadAppConfig(paths ...string) (AppConfig, error) {
	if len(paths) == 0 {
		paths = DefaultPaths
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return AppConfig{}, fmt.Errorf("%w in %v", ErrNoConfig, paths)
		}
		return AppConfig{}, err
	}
	return Parse(data)
}

// Parse decodes, validates and completes a YAML document.
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	ApplyDefaults(&cfg)
	return cfg, nil
}

// Default returns an in-memory configuration with every default applied.
func Default() AppConfig {
	cfg := AppConfig{Storage: StorageConfig{InMemory: true}}
	ApplyDefaults(&cfg)
	return cfg
}

// ApplyDefaults fills zero values.
func ApplyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 16181
	}
	if cfg.Server.ReadHeaderTimeoutMS == 0 {
		cfg.Server.ReadHeaderTimeoutMS = 5000
	}
	if cfg.Server.ReadTimeoutMS == 0 {
		cfg.Server.ReadTimeoutMS = 10000
	}
	if cfg.Server.WriteTimeoutMS == 0 {
		cfg.Server.WriteTimeoutMS = 30000
	}
	if cfg.Server.IdleTimeoutMS == 0 {
		cfg.Server.IdleTimeoutMS = 60000
	}
	if cfg.Cache.Size == 0 {
		cfg.Cache.Size = 256
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.GTFS.ShapeDistUnit == "" {
		cfg.GTFS.ShapeDistUnit = "m"
	}
	if cfg.GTFSRT.TimeoutMS == 0 {
		cfg.GTFSRT.TimeoutMS = 5000
	}
}
