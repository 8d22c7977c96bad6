// Package config loads xptv settings from a TOML file.
//
// A config file looks like:
//
//	log_level = "debug"
//	strict = true
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//
// Keys that are absent keep their [Default] values. Unknown keys are an
// error so typos do not go unnoticed.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	xerrors "github.com/matzehuels/xptv/pkg/errors"
)

const appName = "xptv"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config holds every setting the CLI and the server read.
type Config struct {
	LogLevel string       `toml:"log_level"`
	Strict   bool         `toml:"strict"`
	Cache    CacheConfig  `toml:"cache"`
	Server   ServerConfig `toml:"server"`
}

type CacheConfig struct {
	Backend  string        `toml:"backend"`
	Dir      string        `toml:"dir"`
	RedisURL string        `toml:"redis_url"`
	Prefix   string        `toml:"prefix"`
	TTL      time.Duration `toml:"ttl"`
}

type ServerConfig struct {
	Addr         string        `toml:"addr"`
	MaxBodyBytes int64         `toml:"max_body_bytes"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		LogLevel: "info",
		Strict:   true,
		Cache: CacheConfig{
			Backend: CacheFile,
			Prefix:  appName + ":",
			TTL:     7 * 24 * time.Hour,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			MaxBodyBytes: 16 << 20,
			ReadTimeout:  30 * time.Second,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/xptv/config.toml, falling back to
// ~/.config/xptv/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads path over the defaults. An empty path means [DefaultPath],
// which may be missing; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if explicit {
				return cfg, xerrors.Wrap(xerrors.ErrCodeFileNotFound, err, "config file %s", path)
			}
			return cfg, nil
		}
		return cfg, xerrors.Wrap(xerrors.ErrCodeInvalidInput, err, "config file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, xerrors.New(xerrors.ErrCodeInvalidInput, "config file %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	return cfg, cfg.Validate()
}

// Validate checks values that TOML decoding cannot.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return xerrors.Wrap(xerrors.ErrCodeInvalidInput, err, "log_level")
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return xerrors.New(xerrors.ErrCodeInvalidInput, "cache.redis_url is required for the redis backend")
		}
	default:
		return xerrors.New(xerrors.ErrCodeInvalidInput, "unknown cache.backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return xerrors.New(xerrors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return xerrors.New(xerrors.ErrCodeInvalidInput, "server.max_body_bytes must be positive")
	}
	return nil
}

// Level returns the parsed log level, or info when it does not parse.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// CacheDir returns cache.dir, or the XDG cache directory
// ($XDG_CACHE_HOME/xptv, ~/.cache/xptv) when unset.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
