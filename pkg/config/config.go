// Package config loads c4dgml settings from a TOML file.
//
// # Lookup
//
// [Find] resolves the config file in this order:
//
//  1. an explicit path (the --config flag)
//  2. $C4DGML_CONFIG
//  3. ./c4dgml.toml
//  4. $XDG_CONFIG_HOME/c4dgml/config.toml (or ~/.config/c4dgml/config.toml)
//
// A missing file is not an error: [Load] returns [Default]. An explicit path
// that does not exist is.
//
// # Format
//
//	[projection]
//	max_label_length = 20
//	default_background = "White"
//	views = ["container", "component"]
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "12h"
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/c4dgml/pkg/errors"
	"github.com/matzehuels/c4dgml/pkg/model"
	"github.com/matzehuels/c4dgml/pkg/projection"
)

const (
	// EnvPath names the environment variable holding a config path.
	EnvPath = "C4DGML_CONFIG"

	// LocalFile is the config file looked up in the working directory.
	LocalFile = "c4dgml.toml"

	appName = "c4dgml"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the full configuration.
type Config struct {
	Projection ProjectionConfig `toml:"projection"`
	Render     RenderConfig     `toml:"render"`
	Cache      CacheConfig      `toml:"cache"`
	Serve      ServeConfig      `toml:"serve"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

// ProjectionConfig holds defaults for the projection flags of convert and inspect.
type ProjectionConfig struct {
	MaxLabelLength    int      `toml:"max_label_length"`
	ShapesURI         string   `toml:"shapes_uri"`
	DefaultBackground string   `toml:"default_background"`
	Workers           int      `toml:"workers"`
	Views             []string `toml:"views"`
}

// RenderConfig selects output artifacts.
type RenderConfig struct {
	Formats  []string `toml:"formats"`
	Detailed bool     `toml:"detailed"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr"`
	RedisDB   int           `toml:"redis_db"`
	Prefix    string        `toml:"prefix"`
	TTL       time.Duration `toml:"ttl"`
}

// ServeConfig configures the HTTP API.
type ServeConfig struct {
	Addr           string        `toml:"addr"`
	MaxBodyBytes   int64         `toml:"max_body_bytes"`
	RequestTimeout time.Duration `toml:"request_timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Projection: ProjectionConfig{
			MaxLabelLength: projection.MaxLabelLength,
			Workers:        4,
		},
		Render: RenderConfig{
			Formats: []string{"dgml"},
		},
		Cache: CacheConfig{
			Backend:   CacheFile,
			RedisAddr: "localhost:6379",
			TTL:       24 * time.Hour,
		},
		Serve: ServeConfig{
			Addr:           ":8080",
			MaxBodyBytes:   10 << 20,
			RequestTimeout: 60 * time.Second,
		},
	}
}

// Find returns the config path to use, or "" when no file exists.
// An explicit path is returned as-is without checking it.
func Find(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	if fileExists(LocalFile) {
		return LocalFile
	}
	if dir, err := Dir(); err == nil {
		p := filepath.Join(dir, "config.toml")
		if fileExists(p) {
			return p
		}
	}
	return ""
}

// Dir returns the per-user config directory.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// Load reads the config found by [Find]. Values missing from the file keep
// their defaults.
func Load(explicit string) (*Config, error) {
	path := Find(explicit)
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	cfg, err := Parse(string(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes TOML on top of [Default] and validates the result.
// Unknown keys are rejected.
func Parse(data string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Projection.MaxLabelLength != 0 && c.Projection.MaxLabelLength < 4 {
		return errors.New(errors.ErrCodeInvalidConfig, "projection.max_label_length must be at least 4, got %d", c.Projection.MaxLabelLength)
	}
	if c.Projection.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "projection.workers must not be negative")
	}
	if _, err := c.ViewKinds(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be one of: file, redis, none (got %q)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}

// ViewKinds parses Projection.Views. An empty list selects every kind.
func (c *Config) ViewKinds() ([]model.ViewKind, error) {
	return ParseViewKinds(c.Projection.Views)
}

// ParseViewKinds parses view kind names such as "context".
func ParseViewKinds(names []string) ([]model.ViewKind, error) {
	var kinds []model.ViewKind
	for _, name := range names {
		k, err := model.ParseViewKind(strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidViewKind, err, "invalid view %q", name)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
