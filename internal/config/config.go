// Package config loads the yagobar configuration.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// Config represents the main configuration.
type Config struct {
	Output     string                 `yaml:"output"`
	Separator  *string                `yaml:"separator,omitempty"`
	Dzen2Click string                 `yaml:"dzen2_click,omitempty"`
	Variables  map[string]interface{} `yaml:"variables,omitempty"`
	Commands   map[string]string      `yaml:"commands,omitempty"`
	Widgets    []WidgetConfig         `yaml:"widgets"`
	File       string                 `yaml:"-"`
	WorkDir    string                 `yaml:"-"`
}

// SnippetConfig represents the snippet configuration.
type SnippetConfig struct {
	Variables map[string]interface{} `yaml:"variables"`
	Widgets   []WidgetConfig         `yaml:"widgets"`
}

// LoadFile loads and parses config from file.
func LoadFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	cfg, err := parse(data, filepath.Dir(filename), filepath.Base(filename))
	if err != nil {
		return nil, err
	}

	cfg.File = filename

	return cfg, nil
}

// Parse parses config.
func Parse(data []byte, source string) (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	cfg, err := parse(data, wd, source)
	if err != nil {
		return nil, err
	}

	cfg.File = source

	return cfg, nil
}

// Dump returns the parsed config as yaml.
func Dump(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
