// Package config loads synchk settings from defaults, an optional YAML file,
// SYNCHK_* environment variables and command-line flags, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/githubnext/synchk/pkg/constants"
	"github.com/spf13/viper"
)

// Config holds the settings of a check run.
type Config struct {
	Extensions []string `mapstructure:"extensions"`
	Exclude    []string `mapstructure:"exclude"`
	SkipHidden bool     `mapstructure:"skip_hidden"`
	Workers    int      `mapstructure:"workers"`
	Format     string   `mapstructure:"format"`
	Color      string   `mapstructure:"color"`
	Context    bool     `mapstructure:"context"`
	Verbose    bool     `mapstructure:"verbose"`
}

// Report formats accepted by the format setting.
var Formats = []string{"text", "json", "yaml"}

var colorModes = []string{"auto", "always", "never"}

// SetDefaults registers the built-in value of every key. Keys without a
// default are invisible to environment overrides.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("extensions", constants.DefaultExtensions)
	v.SetDefault("exclude", []string{})
	v.SetDefault("skip_hidden", true)
	v.SetDefault("workers", constants.MaxConcurrentChecks)
	v.SetDefault("format", "text")
	v.SetDefault("color", "auto")
	v.SetDefault("context", false)
	v.SetDefault("verbose", false)
}

// Load resolves the configuration. When path is empty the default config file
// is used if it exists in the working directory. The file is validated
// against the config schema before it is read.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	file := path
	if file == "" {
		if _, err := os.Stat(constants.DefaultConfigFile); err == nil {
			file = constants.DefaultConfigFile
		}
	}

	if file != "" {
		if err := ValidateFile(file); err != nil {
			return nil, err
		}
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return New(v)
}

// New decodes and validates the settings held by v.
func New(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that environment variables or flags could have set
// outside the schema.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1", ErrInvalidConfig)
	}
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("%w: format must be one of %s, got %q", ErrInvalidConfig, strings.Join(Formats, ", "), c.Format)
	}
	if !slices.Contains(colorModes, c.Color) {
		return fmt.Errorf("%w: color must be one of %s, got %q", ErrInvalidConfig, strings.Join(colorModes, ", "), c.Color)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("%w: at least one extension is required", ErrInvalidConfig)
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: extension %q must start with '.'", ErrInvalidConfig, ext)
		}
	}
	return nil
}

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = errors.New("invalid configuration")
