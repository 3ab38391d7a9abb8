// Package config loads fourier-wav settings from YAML files and provides
// default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	fourierseries "github.com/jbhersch/fast-fourier-series"
)

// Config represents the tool configuration loaded from YAML.
type Config struct {
	// Model construction parameters
	Fit struct {
		// Pad is the number of synthetic samples appended to each block
		Pad int `yaml:"pad"`

		// Threshold is the relative magnitude below which harmonics are dropped
		Threshold float64 `yaml:"threshold"`

		// Padding names the padding formula: "neville" or "blend"
		Padding string `yaml:"padding"`

		// Backend names the FFT implementation: "gonum" or "go-dsp"
		Backend string `yaml:"backend"`
	} `yaml:"fit"`

	// Series evaluation parameters
	Evaluate struct {
		// Order limits the number of terms; 0 keeps every harmonic
		Order int `yaml:"order"`

		// Derivative is 0 for the smoothed signal, 1 or 2 for derivatives
		Derivative int `yaml:"derivative"`
	} `yaml:"evaluate"`

	// Processing parameters
	Processing struct {
		// BlockSize is the number of frames fitted per model
		BlockSize int `yaml:"blockSize"`

		// Parallel fits channels concurrently
		Parallel bool `yaml:"parallel"`

		// Verbose enables per-block logging
		Verbose bool `yaml:"verbose"`
	} `yaml:"processing"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Fit.Pad = 64
	cfg.Fit.Threshold = 0
	cfg.Fit.Padding = fourierseries.PadNeville.String()
	cfg.Fit.Backend = string(fourierseries.BackendGonum)

	cfg.Evaluate.Order = fourierseries.OrderAll
	cfg.Evaluate.Derivative = int(fourierseries.Value)

	cfg.Processing.BlockSize = 4096
	cfg.Processing.Parallel = true
	cfg.Processing.Verbose = false

	return cfg
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// ModelConfig converts the fit section into a validated library Config.
func (c *Config) ModelConfig() (*fourierseries.Config, error) {
	strategy, err := fourierseries.ParsePadding(c.Fit.Padding)
	if err != nil {
		return nil, err
	}

	mc := &fourierseries.Config{
		Pad:            c.Fit.Pad,
		Threshold:      c.Fit.Threshold,
		Padding:        strategy,
		Backend:        fourierseries.Backend(c.Fit.Backend),
		EnableParallel: c.Processing.Parallel,
	}
	if err := mc.Validate(); err != nil {
		return nil, err
	}
	return mc, nil
}

// Validate checks the evaluation and processing sections. The fit section
// is checked by ModelConfig.
func (c *Config) Validate() error {
	if c.Evaluate.Order < 0 {
		return fmt.Errorf("order must be non-negative, got %d", c.Evaluate.Order)
	}
	if !fourierseries.Derivative(c.Evaluate.Derivative).Valid() {
		return fmt.Errorf("derivative must be 0, 1 or 2, got %d", c.Evaluate.Derivative)
	}
	if c.Processing.BlockSize < 2 {
		return fmt.Errorf("block size must be at least 2, got %d", c.Processing.BlockSize)
	}
	return nil
}
