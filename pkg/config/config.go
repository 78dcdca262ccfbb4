// Package config loads assetgraph's TOML configuration file.
//
// Every section is optional; missing keys keep their defaults. Unknown keys
// are rejected so that typos do not silently fall back to defaults.
//
//	[discovery]
//	same_sector_strength = 0.8
//	base_currency = "USD"
//
//	[[discovery.sector_sensitivity]]
//	sector = "energy"
//	weight = 0.9
//	contract_types = ["energy", "crude_oil"]
//
//	[layout]
//	seed = 42
//	iterations = 100
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//	cors_origins = ["http://localhost:3000"]
//
// Note that a [[discovery.sector_sensitivity]] table replaces the built-in
// sensitivity table as a whole.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cast"

	"github.com/matzehuels/assetgraph/pkg/discovery"
	"github.com/matzehuels/assetgraph/pkg/errors"
	"github.com/matzehuels/assetgraph/pkg/layout"
)

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// DefaultCacheTTL is the lifetime of cached visualization payloads.
const DefaultCacheTTL = 24 * time.Hour

// DefaultServerAddr is the API listen address.
const DefaultServerAddr = ":8080"

// Config is the full configuration file.
type Config struct {
	Discovery discovery.Params `toml:"discovery"`
	Layout    layout.Options   `toml:"layout"`
	Cache     CacheConfig      `toml:"cache"`
	Server    ServerConfig     `toml:"server"`
}

// CacheConfig selects and configures the visualization cache.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"` // file backend; empty means the user cache dir
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	KeyPrefix     string `toml:"key_prefix"` // namespaces keys in a shared Redis
	TTL           string `toml:"ttl"`        // Go duration string, e.g. "24h"
}

// TTLDuration parses TTL. An empty TTL yields DefaultCacheTTL.
func (c CacheConfig) TTLDuration() (time.Duration, error) {
	if strings.TrimSpace(c.TTL) == "" {
		return DefaultCacheTTL, nil
	}
	d, err := cast.ToDurationE(c.TTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.ttl %q", c.TTL)
	}
	if d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return d, nil
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr        string   `toml:"addr"`
	CORSOrigins []string `toml:"cors_origins"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Discovery: discovery.DefaultParams(),
		Layout:    layout.DefaultOptions(),
		Cache:     CacheConfig{Backend: CacheFile},
		Server:    ServerConfig{Addr: DefaultServerAddr, CORSOrigins: []string{"*"}},
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML data over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	// Decoding into the populated default table would merge entries
	// index by index.
	cfg.Discovery.SectorSensitivity = nil
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if cfg.Discovery.SectorSensitivity == nil {
		cfg.Discovery.SectorSensitivity = discovery.DefaultParams().SectorSensitivity
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section. It returns ErrCodeInvalidConfig.
func (c Config) Validate() error {
	if err := c.Discovery.Validate(); err != nil {
		return err
	}
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case CacheNone, CacheFile:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be one of none, file, redis; got %q", c.Cache.Backend)
	}
	if _, err := c.Cache.TTLDuration(); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr must not be empty")
	}
	return nil
}
