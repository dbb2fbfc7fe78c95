// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go so the YAML structure and loading live apart from
// the string-keyed interface used by the CLI and MCP (e.g. "search.timeout").
//
// Pointers mark optional fields so "not set" (nil) differs from an explicit
// zero or false; defaults apply only to unset values.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jpl-au/tagger/internal/validate"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name",
		"search.endpoint", "search.param", "search.timeout",
		"tagger.lang", "tagger.min_length", "tagger.mix_tags",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "search.endpoint":
		return c.Endpoint(), nil
	case "search.param":
		return c.Param(), nil
	case "search.timeout":
		return c.Timeout().String(), nil
	case "tagger.lang":
		return c.Lang(), nil
	case "tagger.min_length":
		return strconv.Itoa(c.MinLength()), nil
	case "tagger.mix_tags":
		return strconv.FormatBool(c.MixTags()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key. An empty value clears a
// string key back to its default.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "search.endpoint":
		if value != "" {
			if err := validate.Endpoint(value); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidValue, err)
			}
		}
		c.Search.Endpoint = value
	case "search.param":
		if value != "" {
			if err := validate.Param(value); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidValue, err)
			}
		}
		c.Search.Param = value
	case "search.timeout":
		if value != "" {
			if _, err := parseTimeout(value); err != nil {
				return err
			}
		}
		c.Search.Timeout = value
	case "tagger.lang":
		if value != "" {
			if err := validate.Lang(value); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidValue, err)
			}
		}
		c.Tagger.Lang = value
	case "tagger.min_length":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinMinLength || n > MaxMinLength {
			return fmt.Errorf("%w: tagger.min_length must be an integer between %d and %d",
				ErrInvalidValue, MinMinLength, MaxMinLength)
		}
		c.Tagger.MinLength = &n
	case "tagger.mix_tags":
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: tagger.mix_tags must be true or false", ErrInvalidValue)
		}
		b := v == "true"
		c.Tagger.MixTags = &b
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	m := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		m[k], _ = c.Get(k)
	}
	return m
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "search.endpoint":
		return c.Search.Endpoint != ""
	case "search.param":
		return c.Search.Param != ""
	case "search.timeout":
		return c.Search.Timeout != ""
	case "tagger.lang":
		return c.Tagger.Lang != ""
	case "tagger.min_length":
		return c.Tagger.MinLength != nil
	case "tagger.mix_tags":
		return c.Tagger.MixTags != nil
	default:
		return false
	}
}
