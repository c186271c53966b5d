package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/bookseam/internal/deskew"
	"github.com/ivlev/bookseam/internal/fit"
	"github.com/ivlev/bookseam/internal/system"
)

type Config struct {
	InputPath  string `yaml:"input"`
	OutputDir  string `yaml:"output_dir"`
	ReportPath string `yaml:"report"`

	// Width of the band cleared on every edge of the right page
	Margin int `yaml:"margin"`
	// Dilation passes applied before the margin is searched
	DilateIterations int `yaml:"dilate_iterations"`
	// Half width of the edge point window, in standard deviations
	OutlierSpread float64 `yaml:"outlier_spread"`
	// Smallest accepted |slope| of the margin line
	MinMarginSlope float64 `yaml:"min_margin_slope"`

	Workers int  `yaml:"workers"`
	Verbose bool `yaml:"verbose"`
}

// Default returns the settings the pipeline was tuned with
func Default() *Config {
	return &Config{
		Margin:           10,
		DilateIterations: 7,
		OutlierSpread:    fit.DefaultSpread,
		MinMarginSlope:   deskew.DefaultMinSlope,
		Workers:          1,
	}
}

// Load reads a YAML config file on top of the defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Write stores the config as YAML
func (c *Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return system.WriteAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

func (c *Config) Validate() error {
	if c.Margin < 0 {
		return fmt.Errorf("margin must not be negative: %d", c.Margin)
	}
	if c.DilateIterations < 0 {
		return fmt.Errorf("dilate_iterations must not be negative: %d", c.DilateIterations)
	}
	if c.OutlierSpread <= 0 {
		return fmt.Errorf("outlier_spread must be positive: %g", c.OutlierSpread)
	}
	if c.MinMarginSlope < 0 {
		return fmt.Errorf("min_margin_slope must not be negative: %g", c.MinMarginSlope)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1: %d", c.Workers)
	}
	return nil
}
