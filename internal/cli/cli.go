// Package cli implements the xptv command-line interface.
package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/xptv/pkg/cache"
	"github.com/matzehuels/xptv/pkg/config"
	xerrors "github.com/matzehuels/xptv/pkg/errors"
	"github.com/matzehuels/xptv/pkg/formatter"
	"github.com/matzehuels/xptv/pkg/formatter/etree"
	"github.com/matzehuels/xptv/pkg/project"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "xptv"

	// graphCacheType labels graph artifacts in cache hooks.
	graphCacheType = "graph"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config
}

// New creates a new CLI instance with a default logger and default config.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the config file at path (the default location when
// empty) and applies its log level unless verbose overrides it.
func (c *CLI) loadConfig(path string, verbose bool) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	if verbose {
		c.SetLogLevel(LogDebug)
	} else {
		c.SetLogLevel(cfg.Level())
	}
	return nil
}

// =============================================================================
// Formatters
// =============================================================================

// registerFormatters makes the project formatters available to [formatter.For]
// with the current settings.
func (c *CLI) registerFormatters() {
	formatter.Register(c.etree())
}

func (c *CLI) etree() *etree.Formatter {
	return etree.New(
		etree.WithLogger(c.Logger),
		etree.WithStrict(c.Config.Strict),
	)
}

// loadProject reads the project file at path with the formatter that
// handles it.
func (c *CLI) loadProject(ctx context.Context, path string) (*project.Project, error) {
	f, err := formatter.For(path)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrCodeUnsupported, err, "%s", path)
	}
	p := project.New("")
	if err := f.Load(ctx, path, p); err != nil {
		return nil, err
	}
	return p, nil
}

// parseDocument reads and parses the legacy document at path without
// building a project.
func parseDocument(path string) (*etree.Document, []byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil, xerrors.Wrap(xerrors.ErrCodeFileNotFound, err, "%s", path)
	}
	if err != nil {
		return nil, nil, xerrors.Wrap(xerrors.ErrCodeInternal, err, "read %s", path)
	}
	doc, err := etree.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	return doc, data, nil
}

// =============================================================================
// Cache
// =============================================================================

// newCache opens the configured artifact cache. A file cache that cannot be
// created degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, c.Config.Cache.RedisURL)
		if err != nil {
			return nil, err
		}
		return cache.Instrument(rc, graphCacheType), nil
	}

	dir, err := c.Config.CacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "dir", dir, "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.Instrument(fc, graphCacheType), nil
}

// keyer returns the cache key scheme; Redis keys carry the configured prefix.
func (c *CLI) keyer() cache.Keyer {
	if c.Config.Cache.Backend == config.CacheRedis {
		return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Config.Cache.Prefix)
	}
	return cache.NewDefaultKeyer()
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the file cache directory (~/.cache/xptv/ by default).
func (c *CLI) cacheDir() (string, error) {
	return c.Config.CacheDir()
}

// outputPath derives an output file next to input with a new extension.
func outputPath(input, ext string) string {
	base := filepath.Base(input)
	return filepath.Join(filepath.Dir(input), base[:len(base)-len(filepath.Ext(base))]+ext)
}
