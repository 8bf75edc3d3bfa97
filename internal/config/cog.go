package config

import (
	"errors"
	"fmt"
	"strings"
)

const cogConfigFileName = "cog-config.yaml"

var defaultCogs = []string{"core", "help", "ping"}

// CogConfig selects which cogs are loaded and carries their per-cog settings.
type CogConfig struct {
	Enabled  []string                  `yaml:"enabled"`
	Disabled []string                  `yaml:"disabled"`
	Settings map[string]map[string]any `yaml:"settings"`
}

// DefaultCogConfigPath returns the platform default location of the cog config file.
func DefaultCogConfigPath() string {
	return defaultPath(cogConfigFileName)
}

// DefaultCog returns the cog configuration used when no cog config file exists.
func DefaultCog() CogConfig {
	enabled := make([]string, len(defaultCogs))
	copy(enabled, defaultCogs)
	return CogConfig{
		Enabled:  enabled,
		Settings: map[string]map[string]any{},
	}
}

// LoadCogFromPath reads a YAML cog config file. An omitted `enabled` list keeps
// the default cogs.
func LoadCogFromPath(path string) (CogConfig, error) {
	var raw CogConfig
	if err := readYAML(path, &raw); err != nil {
		return CogConfig{}, err
	}

	cfg := DefaultCog()
	if raw.Enabled != nil {
		cfg.Enabled = raw.Enabled
	}
	cfg.Disabled = raw.Disabled
	for name, settings := range raw.Settings {
		cfg.Settings[name] = settings
	}

	if err := validateCogConfig(cfg); err != nil {
		return CogConfig{}, fmt.Errorf("cog config %s: %w", path, err)
	}
	return cfg, nil
}

func validateCogConfig(cfg CogConfig) error {
	for _, name := range append(append([]string{}, cfg.Enabled...), cfg.Disabled...) {
		if strings.TrimSpace(name) == "" {
			return errors.New("cog names cannot be blank")
		}
	}
	return nil
}
