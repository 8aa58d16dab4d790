package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"milaunch/internal/domain"

	"gopkg.in/yaml.v3"
)

// Config holds global launcher settings
type Config struct {
	ActiveImporter string              `yaml:"active_importer"`
	BackupsPath    string              `yaml:"backups_path"` // Empty: <data>/backups
	ThemesPath     string              `yaml:"themes_path"`  // Empty: <data>/themes
	LogLevel       string              `yaml:"log_level"`
	Migoto         domain.RuntimeFlags `yaml:"migoto"`
}

// Load reads configuration from the given directory
func Load(configDir string) (*Config, error) {
	cfg := &Config{
		LogLevel: "info",
	}

	configPath := filepath.Join(configDir, "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // Return defaults
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the given directory
func (c *Config) Save(configDir string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
