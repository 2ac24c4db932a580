package config

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS       = 60
	DefaultWidth     = 120
	DefaultHeight    = 40
	DefaultEffect    = "ascii"
	DefaultRamp      = " .:-+*=%@#"
	DefaultTheme     = "retro"
	DefaultExportDir = "."
	DefaultDataDir   = ".asciikey"

	// MinWidth leaves each half of the split view at least one cell.
	MinWidth = 2
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	FPS       int    `yaml:"fps"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Effect    string `yaml:"effect"`
	Ramp      string `yaml:"ramp"`
	Invert    bool   `yaml:"invert"`
	Theme     string `yaml:"theme"`
	ExportDir string `yaml:"export_dir"`
	DataDir   string `yaml:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		FPS:       DefaultFPS,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Effect:    DefaultEffect,
		Ramp:      DefaultRamp,
		Theme:     DefaultTheme,
		ExportDir: DefaultExportDir,
		DataDir:   DefaultDataDir,
	}
}

// Load reads path on top of the defaults, so a partial file only overrides
// the keys it names.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.FPS)
	case c.Width < MinWidth || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.Effect != "ascii" && c.Effect != "braille":
		return fmt.Errorf("%w: effect %q", ErrInvalid, c.Effect)
	case utf8.RuneCountInString(c.Ramp) < 2:
		return fmt.Errorf("%w: ramp %q", ErrInvalid, c.Ramp)
	}
	return nil
}

// Clone returns a copy safe to modify.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
