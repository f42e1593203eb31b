// Package config loads the optional YAML settings file of the b39geo CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rawbytedev/b39geo/pkg/export"
	"github.com/rawbytedev/b39geo/pkg/quantize"
	"gopkg.in/yaml.v3"
)

// Config holds CLI settings. Zero values are the defaults.
type Config struct {
	// Wordlist is a newline-separated 2048-word file; empty means BIP-39 English.
	Wordlist string            `yaml:"wordlist"`
	Rounding quantize.Rounding `yaml:"rounding"`
	// Center selects the cell midpoint on decode. Defaults to true.
	Center   *bool         `yaml:"center"`
	Format   export.Format `yaml:"format"`
	LogLevel string        `yaml:"log_level"`
}

// LoadError reports a config file that could not be used.
type LoadError struct {
	File    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.File, e.Message, e.Cause)
	}
	return e.File + ": " + e.Message
}

func (e *LoadError) Unwrap() error { return e.Cause }

func Default() Config {
	return Config{LogLevel: "warn"}
}

// Parse decodes YAML on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads path; an empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, &LoadError{File: path, Message: "failed to parse YAML", Cause: err}
	}
	return cfg, nil
}

// UseCenter reports whether decode should return cell midpoints.
func (c Config) UseCenter() bool {
	return c.Center == nil || *c.Center
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
