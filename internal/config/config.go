// Package config loads the interpreter's YAML settings file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/log"
	"gopkg.in/yaml.v3"
)

const DefaultFilename = ".ylang.yml"

type Config struct {
	Prompt      string `yaml:"prompt"`
	Color       bool   `yaml:"color"`
	LogLevel    string `yaml:"log_level"`
	HistorySize int    `yaml:"history_size"`
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}

	return "config validation failed: " + strings.Join(e.Issues, "; ")
}

var logLevels = map[string]log.Level{
	"debug":   log.Debug,
	"verbose": log.Verbose,
	"info":    log.Info,
	"warning": log.Warning,
	"error":   log.Error,
}

func Default() *Config {
	return &Config{
		Prompt:      "> ",
		Color:       true,
		LogLevel:    "info",
		HistorySize: 100,
	}
}

// DefaultPath is $HOME/.ylang.yml, or empty if there is no home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, DefaultFilename)
}

// Load reads path over the defaults. If required is false a missing file
// yields the defaults.
func Load(path string, required bool) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			log.LogVf("no config at %s, using defaults", path)
			return Default(), nil
		}

		return nil, fmt.Errorf("opening config: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

func Decode(r io.Reader) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var issues []string
	if c.HistorySize < 0 {
		issues = append(issues, fmt.Sprintf("history_size must not be negative, got %d", c.HistorySize))
	}

	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
		issues = append(issues, fmt.Sprintf("unknown log_level %q", c.LogLevel))
	}

	if len(issues) != 0 {
		return &ValidationError{Issues: issues}
	}

	return nil
}

// Level is the fortio log level named by LogLevel. Validate must have passed.
func (c *Config) Level() log.Level {
	return logLevels[strings.ToLower(c.LogLevel)]
}
