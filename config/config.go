// Package config loads the optional YAML settings file. The global shortcut
// itself is fixed and not part of the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Window struct {
		Title       string `yaml:"title"`
		Width       int    `yaml:"width"`
		Height      int    `yaml:"height"`
		StartHidden bool   `yaml:"start_hidden"`
	} `yaml:"window"`
	Log struct {
		Path string `yaml:"path"`
	} `yaml:"log"`
	Tray struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"tray"`
	Prices struct {
		Path string `yaml:"path"`
	} `yaml:"prices"`
}

func Default() *Config {
	c := &Config{}
	c.Window.Title = "Path Trade Tools"
	c.Window.Width = 420
	c.Window.Height = 560
	c.Tray.Enabled = true
	return c
}

// ResolvePath picks the config file: -config flag, then TRADETOOLS_CONFIG,
// then <user config dir>/tradetools/config.yaml.
func ResolvePath(flagPath string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	if env := os.Getenv("TRADETOOLS_CONFIG"); env != "" {
		return env, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "tradetools", "config.yaml"), nil
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.Title == "" {
		return errors.New("window title must not be empty")
	}
	return nil
}

// Save writes c to path, creating the parent directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
