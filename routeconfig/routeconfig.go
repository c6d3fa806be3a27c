// Package routeconfig loads per-route binding configuration from YAML or
// TOML files.
package routeconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/danpasecinic/routebind/route"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var ErrUnsupportedFormat = errors.New("unsupported config format")

type RouteConfig struct {
	Pattern       string            `yaml:"pattern" toml:"pattern"`
	ScopeBindings bool              `yaml:"scope_bindings" toml:"scope_bindings"`
	WithTrashed   bool              `yaml:"with_trashed" toml:"with_trashed"`
	BindingFields map[string]string `yaml:"binding_fields" toml:"binding_fields"`
}

type Config struct {
	Routes []RouteConfig `yaml:"routes" toml:"routes"`

	byPattern map[string]int
}

// Load reads the file at path, picking the format from its extension.
func Load(path string) (*Config, error) {
	var format Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".toml":
		format = FormatTOML
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read route config: %w", err)
	}
	return Parse(data, format)
}

func Parse(data []byte, format Format) (*Config, error) {
	cfg := &Config{}

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse yaml route config: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse toml route config: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every pattern and indexes the routes by normalized
// pattern. Patterns that normalize to the same key are rejected.
func (c *Config) Validate() error {
	c.byPattern = make(map[string]int, len(c.Routes))

	for i, r := range c.Routes {
		if _, err := route.Parse(r.Pattern); err != nil {
			return err
		}

		key := route.Normalize(r.Pattern)
		if _, dup := c.byPattern[key]; dup {
			return fmt.Errorf("route %q configured twice", key)
		}
		c.byPattern[key] = i
	}
	return nil
}

// Lookup returns the configuration of pattern in any router syntax.
func (c *Config) Lookup(pattern string) (RouteConfig, bool) {
	if c == nil {
		return RouteConfig{}, false
	}

	key := route.Normalize(pattern)
	if c.byPattern != nil {
		i, ok := c.byPattern[key]
		if !ok {
			return RouteConfig{}, false
		}
		return c.Routes[i], true
	}

	for _, r := range c.Routes {
		if route.Normalize(r.Pattern) == key {
			return r, true
		}
	}
	return RouteConfig{}, false
}

// Options converts the configuration of pattern into route options. A nil
// Config or an unknown pattern yields none.
func (c *Config) Options(pattern string) []route.Option {
	rc, ok := c.Lookup(pattern)
	if !ok {
		return nil
	}

	var opts []route.Option
	if rc.ScopeBindings {
		opts = append(opts, route.ScopeBindings())
	}
	if rc.WithTrashed {
		opts = append(opts, route.WithTrashed())
	}
	for param, field := range rc.BindingFields {
		opts = append(opts, route.BindingField(param, field))
	}
	return opts
}
