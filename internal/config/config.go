// Package config provides reading and writing of tagger configuration.
// Supports both global (~/.tagger/config.yaml) and local (.tagger/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jpl-au/tagger/internal/search"
	"github.com/jpl-au/tagger/internal/validate"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.tagger/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is project-specific config in .tagger/config.yaml
	ScopeLocal
)

// Author identifies who is recorded in the audit log.
type Author struct {
	Name string `yaml:"name,omitempty"`
}

// Search holds the remote tag-search settings.
type Search struct {
	Endpoint string `yaml:"endpoint,omitempty"`
	Param    string `yaml:"param,omitempty"`
	Timeout  string `yaml:"timeout,omitempty"` // time.ParseDuration syntax
}

// Tagger holds widget defaults.
type Tagger struct {
	Lang      string `yaml:"lang,omitempty"`
	MinLength *int   `yaml:"min_length,omitempty"`
	MixTags   *bool  `yaml:"mix_tags,omitempty"`
}

// Validation bounds for configuration values.
const (
	MinMinLength = 1
	MaxMinLength = 64
	MinTimeout   = 100 * time.Millisecond
	MaxTimeout   = 2 * time.Minute
)

// DefaultMinLength is applied when tagger.min_length is not configured.
const DefaultMinLength = 1

// Config contains configuration for tagger.
type Config struct {
	Author Author `yaml:"author,omitempty"`
	Search Search `yaml:"search,omitempty"`
	Tagger Tagger `yaml:"tagger,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Search.Endpoint != "" {
		if err := validate.Endpoint(c.Search.Endpoint); err != nil {
			return fmt.Errorf("%w: search.endpoint: %v", ErrInvalidValue, err)
		}
	}
	if c.Search.Param != "" {
		if err := validate.Param(c.Search.Param); err != nil {
			return fmt.Errorf("%w: search.param: %v", ErrInvalidValue, err)
		}
	}
	if c.Search.Timeout != "" {
		if _, err := parseTimeout(c.Search.Timeout); err != nil {
			return err
		}
	}
	if c.Tagger.Lang != "" {
		if err := validate.Lang(c.Tagger.Lang); err != nil {
			return fmt.Errorf("%w: tagger.lang: %v", ErrInvalidValue, err)
		}
	}
	if c.Tagger.MinLength != nil {
		v := *c.Tagger.MinLength
		if v < MinMinLength || v > MaxMinLength {
			return fmt.Errorf("%w: min_length must be between %d and %d, got %d",
				ErrInvalidValue, MinMinLength, MaxMinLength, v)
		}
	}
	return nil
}

func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: search.timeout must be a duration such as 5s or 750ms", ErrInvalidValue)
	}
	if d < MinTimeout || d > MaxTimeout {
		return 0, fmt.Errorf("%w: search.timeout must be between %s and %s, got %s",
			ErrInvalidValue, MinTimeout, MaxTimeout, d)
	}
	return d, nil
}

// Endpoint returns the search endpoint (defaults to the MakeAPI tags URL).
func (c *Config) Endpoint() string {
	if c.Search.Endpoint == "" {
		return search.DefaultEndpoint
	}
	return c.Search.Endpoint
}

// Param returns the search query parameter name (defaults to "t").
func (c *Config) Param() string {
	if c.Search.Param == "" {
		return search.DefaultParam
	}
	return c.Search.Param
}

// Timeout returns the remote search bound (defaults to 5s).
func (c *Config) Timeout() time.Duration {
	if c.Search.Timeout == "" {
		return search.DefaultTimeout
	}
	d, err := parseTimeout(c.Search.Timeout)
	if err != nil {
		return search.DefaultTimeout
	}
	return d
}

// Lang returns the preferred language, or "" to fall back to the
// environment and then the vocabulary default.
func (c *Config) Lang() string {
	return c.Tagger.Lang
}

// MinLength returns the characters typed before suggesting (defaults to 1).
func (c *Config) MinLength() int {
	if c.Tagger.MinLength == nil {
		return DefaultMinLength
	}
	return *c.Tagger.MinLength
}

// MixTags returns whether vocabulary and free tags share one group
// (defaults to false).
func (c *Config) MixTags() bool {
	if c.Tagger.MixTags == nil {
		return false
	}
	return *c.Tagger.MixTags
}

// LocalPath returns the path to the local (project) config file.
func LocalPath() string {
	return filepath.Join(".tagger", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.tagger/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tagger", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
