package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Load builds the configuration in layers:
//  1. Built-in defaults
//  2. YAML file (explicit path or CONFIG_FILE)
//  3. Environment variables
//  4. Validation
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	if configPath == "" {
		configPath = os.Getenv("CONFIG_FILE")
	}

	if configPath != "" {
		if err := loadYAMLFile(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// No envDefault tags: unset variables keep the value from the layers above.
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)

	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}
