// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/worldmodel/lib/payload"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "WORLDMODEL_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for interactive use on a workstation.
	Development Environment = "development"
	// Staging is for pre-production pipelines.
	Staging Environment = "staging"
	// Production is for unattended pipelines.
	Production Environment = "production"
)

// Config is the configuration of the worldmodel tool.
type Config struct {
	// Environment selects which override section applies.
	Environment Environment `yaml:"environment"`

	// Encoding configures how documents are written.
	Encoding EncodingConfig `yaml:"encoding"`

	// Logging configures the diagnostic logger.
	Logging LoggingConfig `yaml:"logging"`

	// Snapshots configures where snapshot files are written.
	Snapshots SnapshotConfig `yaml:"snapshots"`

	// Per-environment overrides, applied after the base config is
	// loaded.
	Development *Overrides `yaml:"development,omitempty"`
	Staging     *Overrides `yaml:"staging,omitempty"`
	Production  *Overrides `yaml:"production,omitempty"`
}

// Overrides contains the sections that can be overridden per
// environment.
type Overrides struct {
	Encoding  *EncodingConfig `yaml:"encoding,omitempty"`
	Logging   *LoggingConfig  `yaml:"logging,omitempty"`
	Snapshots *SnapshotConfig `yaml:"snapshots,omitempty"`
}

// EncodingConfig configures document output.
type EncodingConfig struct {
	// PayloadCompression is the compression applied to octomap
	// payloads: "none", "lz4", or "zstd".
	// Default: none
	PayloadCompression string `yaml:"payload_compression"`

	// Indent is the number of spaces per nesting level.
	// Default: 2
	Indent int `yaml:"indent"`
}

// LoggingConfig configures the diagnostic logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`

	// Format is "auto" (text on a terminal, JSON otherwise), "text",
	// or "json".
	// Default: auto
	Format string `yaml:"format"`
}

// SnapshotConfig configures snapshot output.
type SnapshotConfig struct {
	// Directory receives snapshots written without an explicit output
	// path. ${HOME} and ${VAR:-default} patterns are expanded.
	// Default: ${HOME}/.cache/worldmodel/snapshots
	Directory string `yaml:"directory"`
}

// Log formats accepted by [LoggingConfig].Format.
const (
	LogFormatAuto = "auto"
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Environment: Development,
		Encoding: EncodingConfig{
			PayloadCompression: payload.None.String(),
			Indent:             2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: LogFormatAuto,
		},
		Snapshots: SnapshotConfig{
			Directory: filepath.Join("${HOME}", ".cache", "worldmodel", "snapshots"),
		},
	}
}

// Load loads configuration from the file named by WORLDMODEL_CONFIG.
// There is no discovery: if the variable is unset, this fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of a worldmodel.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, applies the
// section for the configured environment, and validates the result.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve returns a validated configuration: the file at path when
// path is non-empty, the file named by WORLDMODEL_CONFIG when that is
// set, and [Default] otherwise.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	if os.Getenv(EnvironmentVariable) != "" {
		return Load()
	}
	cfg := Default()
	return cfg, cfg.Validate()
}

// loadFile merges a single configuration file into the current config.
// Unknown keys are rejected.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// applyEnvironmentOverrides applies the section matching Environment.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *Overrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		// Production defaults to JSON logs.
		if overrides == nil {
			overrides = &Overrides{
				Logging: &LoggingConfig{Format: LogFormatJSON},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Encoding != nil {
		if overrides.Encoding.PayloadCompression != "" {
			c.Encoding.PayloadCompression = overrides.Encoding.PayloadCompression
		}
		if overrides.Encoding.Indent != 0 {
			c.Encoding.Indent = overrides.Encoding.Indent
		}
	}

	if overrides.Logging != nil {
		if overrides.Logging.Level != "" {
			c.Logging.Level = overrides.Logging.Level
		}
		if overrides.Logging.Format != "" {
			c.Logging.Format = overrides.Logging.Format
		}
	}

	if overrides.Snapshots != nil && overrides.Snapshots.Directory != "" {
		c.Snapshots.Directory = overrides.Snapshots.Directory
	}
}

// SnapshotDirectory returns Snapshots.Directory with ${VAR} and
// ${VAR:-default} patterns expanded.
func (c *Config) SnapshotDirectory() string {
	home, _ := os.UserHomeDir()
	return expandVars(c.Snapshots.Directory, map[string]string{"HOME": home})
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default}, consulting vars before
// the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// PayloadCompression parses Encoding.PayloadCompression.
func (c *Config) PayloadCompression() (payload.Compression, error) {
	return payload.ParseCompression(c.Encoding.PayloadCompression)
}

// LogLevel parses Logging.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return 0, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}

// Validate checks the configuration for errors, reporting all of them.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if _, err := c.PayloadCompression(); err != nil {
		errs = append(errs, fmt.Errorf("encoding.payload_compression: %w", err))
	}

	if c.Encoding.Indent < 1 || c.Encoding.Indent > 8 {
		errs = append(errs, fmt.Errorf("encoding.indent must be between 1 and 8, got %d", c.Encoding.Indent))
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	formats := []string{LogFormatAuto, LogFormatText, LogFormatJSON}
	if !contains(formats, c.Logging.Format) {
		errs = append(errs, fmt.Errorf("logging.format must be one of: %s", strings.Join(formats, ", ")))
	}

	if c.Snapshots.Directory == "" {
		errs = append(errs, fmt.Errorf("snapshots.directory is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
