// Package config loads settings for the transproc command.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/zoobzio/transproc"
)

// EnvPrefix is the prefix of environment overrides, e.g. TRANSPROC_OUTPUT.
const EnvPrefix = "TRANSPROC_"

// Defaults.
const (
	DefaultOutput = transproc.FormatJSON
	DefaultIndent = 2
)

// Config holds the command settings.
type Config struct {
	Output string `koanf:"output"` // json|yaml|msgpack
	Indent int    `koanf:"indent"` // spaces per level
}

// Format returns the parsed output format.
func (c Config) Format() (transproc.Format, error) {
	return transproc.ParseFormat(c.Output)
}

// DefaultPath is the config file read when no path is given. It may be
// absent.
const DefaultPath = "transproc.yaml"

type loadOptions struct {
	overrides   map[string]any
	requireFile bool
}

// Option configures Load.
type Option func(*loadOptions)

// WithOutput overrides the output setting of the file and the environment.
// An empty format leaves the setting alone.
func WithOutput(format string) Option {
	return func(o *loadOptions) {
		if format != "" {
			o.overrides["output"] = format
		}
	}
}

// RequireFile makes a missing config file an error.
func RequireFile() Option {
	return func(o *loadOptions) {
		o.requireFile = true
	}
}

// Load merges the YAML file at path (if present) with TRANSPROC_*
// environment variables and then with overrides from opts. Later sources
// win. The merged result is validated once.
//
// A missing file is not an error unless RequireFile is given.
func Load(path string, opts ...Option) (Config, error) {
	lo := loadOptions{overrides: make(map[string]any)}
	for _, opt := range opts {
		opt(&lo)
	}

	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			(lo.requireFile || !errors.Is(err, fs.ErrNotExist)) {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("config: load environment: %w", err)
	}

	for key, value := range lo.overrides {
		if err := k.Set(key, value); err != nil {
			return Config{}, fmt.Errorf("config: override %s: %w", key, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	applyDefaults(&cfg)
	return cfg, cfg.Validate()
}

// Validate reports settings the command cannot use.
func (c Config) Validate() error {
	if _, err := c.Format(); err != nil {
		return fmt.Errorf("config: output: %w", err)
	}
	if c.Indent < 0 {
		return fmt.Errorf("config: indent must not be negative, got %d", c.Indent)
	}
	return nil
}

func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

func applyDefaults(c *Config) {
	if strings.TrimSpace(c.Output) == "" {
		c.Output = string(DefaultOutput)
	}
	if c.Indent == 0 {
		c.Indent = DefaultIndent
	}
}
