package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the search path.
const FileName = "shippu.yaml"

// SearchPaths lists the files LoadShippu tries when no path is given, in
// order: ~/.shippu/configs/shippu.yaml then ./configs/shippu.yaml.
func SearchPaths() []string {
	var paths []string
	if p := userConfigPath(FileName); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", FileName))
}

// LoadShippu loads the configuration from customPath, or else from the
// first readable and valid file in SearchPaths, or else from the embedded
// default. Files are decoded over the defaults, so a partial file only
// overrides the keys it names. Only an explicit customPath can fail.
func LoadShippu(customPath string) (ShippuConfig, error) {
	cfg, _, err := loadShippu(customPath)
	return cfg, err
}

// Source reports which file LoadShippu(customPath) would read, or
// "embedded" when none applies.
func Source(customPath string) string {
	_, src, _ := loadShippu(customPath)
	return src
}

func loadShippu(customPath string) (ShippuConfig, string, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return ShippuConfig{}, customPath, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseShippu(data)
		if err != nil {
			return ShippuConfig{}, customPath, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	for _, path := range SearchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := ParseShippu(data); err == nil {
			return cfg, path, nil
		}
	}

	cfg, err := ParseShippu(defaultShippuYAML)
	if err != nil {
		return DefaultShippuConfig(), "embedded", nil
	}
	return cfg, "embedded", nil
}

// ParseShippu decodes YAML over the default configuration and validates
// the result.
func ParseShippu(data []byte) (ShippuConfig, error) {
	cfg := DefaultShippuConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that the values are usable.
func (c ShippuConfig) Validate() error {
	var errs []error
	if c.Player.Stock < 1 {
		errs = append(errs, fmt.Errorf("player.stock must be at least 1, got %d", c.Player.Stock))
	}
	if c.Agent.Population < 1 {
		errs = append(errs, fmt.Errorf("agent.population must be at least 1, got %d", c.Agent.Population))
	}
	if c.Agent.TrainEpsilon < 0 || c.Agent.TrainEpsilon > 1 {
		errs = append(errs, fmt.Errorf("agent.train_epsilon must be in [0, 1], got %g", c.Agent.TrainEpsilon))
	}
	if c.Agent.ScoreEpsilon < 0 || c.Agent.ScoreEpsilon > 1 {
		errs = append(errs, fmt.Errorf("agent.score_epsilon must be in [0, 1], got %g", c.Agent.ScoreEpsilon))
	}
	if c.Agent.Discount < 0 || c.Agent.Discount > 1 {
		errs = append(errs, fmt.Errorf("agent.discount must be in [0, 1], got %g", c.Agent.Discount))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume must be in [0, 1], got %g", c.Audio.Volume))
	}
	if c.Pacing.TickRate < 1 {
		errs = append(errs, fmt.Errorf("pacing.tick_rate must be positive, got %d", c.Pacing.TickRate))
	}
	return errors.Join(errs...)
}

// Marshal encodes the configuration as YAML.
func (c ShippuConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// userConfigPath returns the path to user config file, or empty string if unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".shippu", "configs", filename)
}
