// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     config
// Description: TOML/YAML configuration for the glot tool
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	glerrors "github.com/msto63/glottony/pkg/core/errors"
	"github.com/msto63/glottony/pkg/core/logging"
	"github.com/msto63/glottony/pkg/glottony/parser"
)

// EnvPrefix prefixes all environment overrides, e.g. GLOTTONY_LOG_LEVEL
const EnvPrefix = "GLOTTONY"

// Format represents the configuration file format
type Format int

const (
	// FormatTOML represents TOML format (default)
	FormatTOML Format = iota

	// FormatYAML represents YAML format
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Parser  ParserConfig  `toml:"parser" yaml:"parser"`
	Output  OutputConfig  `toml:"output" yaml:"output"`
	Watch   WatchConfig   `toml:"watch" yaml:"watch"`
}

// GeneralConfig holds logging settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	LogFile   string `toml:"log_file" yaml:"log_file"`
}

// ParserConfig holds parser and source loading settings
type ParserConfig struct {
	Mode           string `toml:"mode" yaml:"mode"`
	MaxErrors      int    `toml:"max_errors" yaml:"max_errors"`
	MaxInputLength int    `toml:"max_input_length" yaml:"max_input_length"`
	Workers        int    `toml:"workers" yaml:"workers"`
}

// OutputConfig holds rendering settings
type OutputConfig struct {
	Format  string `toml:"format" yaml:"format"`
	NoColor bool   `toml:"no_color" yaml:"no_color"`
}

// WatchConfig holds file watcher settings
type WatchConfig struct {
	Debounce   Duration `toml:"debounce" yaml:"debounce"`
	Extensions []string `toml:"extensions" yaml:"extensions"`
}

// Duration is a time.Duration that reads and writes "500ms" style text
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file. The format follows
// the file extension; unknown extensions are read as TOML.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, glerrors.Newf("config file not found: %s", path).
				WithCode(glerrors.CodeConfigError).
				WithOperation("config.Load")
		}
		return nil, glerrors.Wrap(err, "failed to read config").
			WithCode(glerrors.CodeIOError).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg, err := LoadFromString(string(content), detectFormat(path))
	if err != nil {
		return nil, glerrors.Wrap(err, "failed to load config").
			WithOperation("config.Load").
			WithDetail("path", path)
	}
	return cfg, nil
}

// LoadFromString loads configuration from a string with the given format
func LoadFromString(content string, format Format) (*Config, error) {
	var cfg Config

	switch format {
	case FormatTOML:
		if _, err := toml.Decode(content, &cfg); err != nil {
			return nil, glerrors.Wrap(err, "TOML parse error").
				WithCode(glerrors.CodeConfigError).
				WithOperation("config.LoadFromString")
		}
	case FormatYAML:
		if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
			return nil, glerrors.Wrap(err, "YAML parse error").
				WithCode(glerrors.CodeConfigError).
				WithOperation("config.LoadFromString")
		}
	default:
		return nil, glerrors.Newf("unsupported format: %s", format).
			WithCode(glerrors.CodeConfigError).
			WithOperation("config.LoadFromString")
	}

	cfg.expandEnvVars()
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from GLOTTONY_CONFIG or the first file
// found in the default locations. Without any file the defaults are used.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvPrefix + "_CONFIG"); path != "" {
		return Load(path)
	}

	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	cfg := &Config{}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, cfg.Validate()
}

// DefaultPaths lists the locations searched by LoadFromEnv
func DefaultPaths() []string {
	return []string{
		"./glottony.toml",
		"./glottony.yaml",
		filepath.Join(os.Getenv("HOME"), ".config/glottony/config.toml"),
	}
}

// detectFormat determines the configuration format from file extension
func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Parser
	if c.Parser.Mode == "" {
		c.Parser.Mode = parser.RecoverErrors.String()
	}
	if c.Parser.MaxErrors == 0 {
		c.Parser.MaxErrors = parser.DefaultMaxErrors
	}
	if c.Parser.MaxInputLength == 0 {
		c.Parser.MaxInputLength = parser.DefaultMaxInputLength
	}
	if c.Parser.Workers == 0 {
		c.Parser.Workers = 4
	}

	// Output
	if c.Output.Format == "" {
		c.Output.Format = "tree"
	}

	// Watch
	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 200 * time.Millisecond
	}
	if len(c.Watch.Extensions) == 0 {
		c.Watch.Extensions = []string{".glot"}
	}
}

// expandEnvVars expands ${VAR} references in path-like values
func (c *Config) expandEnvVars() {
	c.General.LogFile = os.ExpandEnv(c.General.LogFile)
}

// applyEnvOverrides applies GLOTTONY_* variables on top of file values
func (c *Config) applyEnvOverrides() error {
	if v, ok := lookupEnv("LOG_LEVEL"); ok {
		c.General.LogLevel = v
	}
	if v, ok := lookupEnv("LOG_FILE"); ok {
		c.General.LogFile = v
	}
	if v, ok := lookupEnv("MODE"); ok {
		c.Parser.Mode = v
	}
	if v, ok := lookupEnv("MAX_ERRORS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return glerrors.Wrap(err, "invalid "+EnvPrefix+"_MAX_ERRORS").
				WithCode(glerrors.CodeConfigError).
				WithOperation("config.applyEnvOverrides")
		}
		c.Parser.MaxErrors = n
	}
	if v, ok := lookupEnv("NO_COLOR"); ok {
		c.Output.NoColor = v != "" && v != "0" && !strings.EqualFold(v, "false")
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	return os.LookupEnv(EnvPrefix + "_" + key)
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	fail := func(format string, args ...interface{}) error {
		return glerrors.Newf(format, args...).
			WithCode(glerrors.CodeConfigError).
			WithOperation("config.Validate")
	}

	if _, err := parser.ParseRecoveryMode(c.Parser.Mode); err != nil {
		return fail("parser.mode: %v", err)
	}
	if c.Parser.MaxErrors < 0 {
		return fail("parser.max_errors must not be negative, got %d", c.Parser.MaxErrors)
	}
	if c.Parser.MaxInputLength < 0 {
		return fail("parser.max_input_length must not be negative, got %d", c.Parser.MaxInputLength)
	}
	if c.Parser.Workers < 1 {
		return fail("parser.workers must be at least 1, got %d", c.Parser.Workers)
	}
	switch c.Output.Format {
	case "tree", "sexpr", "json", "yaml":
	default:
		return fail("output.format must be tree, sexpr, json or yaml, got %q", c.Output.Format)
	}
	switch strings.ToLower(c.General.LogFormat) {
	case "text", "json":
	default:
		return fail("general.log_format must be text or json, got %q", c.General.LogFormat)
	}
	if c.Watch.Debounce.Duration < 0 {
		return fail("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	return nil
}

// ParserOptions converts the parser section into parser options
func (c *Config) ParserOptions(logger *logging.Logger) parser.Options {
	mode, _ := parser.ParseRecoveryMode(c.Parser.Mode)
	return parser.Options{
		Mode:           mode,
		MaxErrors:      c.Parser.MaxErrors,
		MaxInputLength: c.Parser.MaxInputLength,
		Logger:         logger,
	}
}

// LoggerConfig converts the general section into a logger configuration
func (c *Config) LoggerConfig(name string) logging.LoggerConfig {
	cfg := logging.DefaultLoggerConfig(name)
	cfg.Level = c.General.LogLevel
	cfg.Format = c.General.LogFormat
	return cfg
}

// String renders the configuration as TOML
func (c *Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}
