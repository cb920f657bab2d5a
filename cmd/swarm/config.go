package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// config is the driver configuration, loadable from a YAML file and
// overridable per-field with flags.
type config struct {
	Entities    int           `yaml:"entities"`
	Workers     int           `yaml:"workers"`
	MaxEntities int           `yaml:"max_entities"`
	Tick        time.Duration `yaml:"tick"`
	Seed        uint64        `yaml:"seed"`
	Render      bool          `yaml:"render"`
	LogLiving   bool          `yaml:"log_living"`
}

func defaultConfig() config {
	return config{
		Entities: 100_000,
		Workers:  3,
		Tick:     100 * time.Millisecond,
		Seed:     1,
		Render:   true,
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
