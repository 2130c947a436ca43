package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/dshills/tasktable/internal/config/loader"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "TASKTABLE_"

// Config holds the merged configuration layers.
type Config struct {
	mu sync.RWMutex

	merged    map[string]any
	overrides map[string]any

	configFile string
	fs         loader.FileSystem
	environ    []string
	useEnviron bool

	// configErrors stores errors encountered during configuration access.
	configErrors map[string]error
}

// Option configures a Config instance.
type Option func(*Config)

// WithConfigFile sets the TOML file to load. A file named explicitly must
// exist.
func WithConfigFile(path string) Option {
	return func(c *Config) {
		c.configFile = path
	}
}

// WithFileSystem sets the file system used to read the config file.
func WithFileSystem(fs loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fs
	}
}

// WithEnviron replaces the process environment with KEY=value pairs.
func WithEnviron(environ []string) Option {
	return func(c *Config) {
		c.environ = environ
		c.useEnviron = true
	}
}

// New creates a Config holding only the defaults. Call Load to read the
// file and environment layers.
func New(opts ...Option) *Config {
	c := &Config{
		merged:    Defaults(),
		overrides: make(map[string]any),
		fs:        loader.DefaultFS(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Load reads the config file and environment, then reapplies values set
// with Set so that flags keep the highest priority.
func (c *Config) Load(_ context.Context) error {
	var env *loader.EnvLoader
	if c.useEnviron {
		env = loader.NewEnvLoaderWithEnviron(EnvPrefix, c.environ)
	} else {
		env = loader.NewEnvLoader(EnvPrefix)
	}

	loaders := []loader.Loader{env}
	if c.configFile != "" {
		loaders = []loader.Loader{
			loader.NewTOMLLoaderWithFS(c.fs, c.configFile).Strict(),
			env,
		}
	}

	layers, err := loader.LoadAll(loaders...)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	merged := loader.DeepMerge(Defaults(), layers)
	c.merged = loader.DeepMerge(merged, cloneMap(c.overrides))
	c.configErrors = nil
	return nil
}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.Lookup(c.merged, path)
}

// Set sets a value at the given path in the override layer.
func (c *Config) Set(path string, value any) error {
	section, setting, ok := strings.Cut(path, ".")
	if !ok || section == "" || setting == "" || strings.Contains(setting, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, m := range []map[string]any{c.overrides, c.merged} {
		sec, ok := m[section].(map[string]any)
		if !ok {
			sec = make(map[string]any)
			m[section] = sec
		}
		sec[setting] = value
	}
	return nil
}

// Merged returns a copy of the merged configuration.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneMap(c.merged)
}

// GetString returns a string value at the given path. Numbers are
// formatted, which lets ids be written unquoted in TOML.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	switch val := v.(type) {
	case string:
		return val, nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case int:
		return strconv.Itoa(val), nil
	default:
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return false, &TypeError{Path: path, Expected: "bool", Actual: "string " + strconv.Quote(val)}
		}
		return b, nil
	default:
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
}

// GetStringSlice returns a string slice at the given path. A string value
// is split on commas.
func (c *Config) GetStringSlice(path string) ([]string, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, ErrSettingNotFound
	}

	switch val := v.(type) {
	case []string:
		return val, nil
	case string:
		return splitList(val), nil
	case []any:
		result := make([]string, 0, len(val))
		for _, item := range val {
			switch s := item.(type) {
			case string:
				result = append(result, s)
			case int64:
				result = append(result, strconv.FormatInt(s, 10))
			case float64:
				result = append(result, strconv.FormatFloat(s, 'f', -1, 64))
			default:
				return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
			}
		}
		return result, nil
	default:
		return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
	}
}

// splitList splits a comma separated list, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		if m, ok := v.(map[string]any); ok {
			dst[k] = cloneMap(m)
			continue
		}
		dst[k] = v
	}
	return dst
}
