// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation is optional and carries no dependency on a specific
// backend. Consumers register hooks at startup and receive events about
// project saves and loads, cache operations, and HTTP API requests.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetFormatterHooks(&myFormatterHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Formatter().OnLoadStart(ctx, "etree", uri)
//	// ... decode ...
//	observability.Formatter().OnLoadComplete(ctx, "etree", uri, stats, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Formatter Hooks
// =============================================================================

// ProjectStats summarizes a saved or loaded project.
type ProjectStats struct {
	Sources         int
	Tracks          int
	TrackObjects    int
	TimelineObjects int
}

// FormatterHooks receives events from project formatters.
type FormatterHooks interface {
	OnSaveStart(ctx context.Context, formatter, uri string)
	OnSaveComplete(ctx context.Context, formatter, uri string, stats ProjectStats, duration time.Duration, err error)

	OnLoadStart(ctx context.Context, formatter, uri string)
	OnLoadComplete(ctx context.Context, formatter, uri string, stats ProjectStats, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the inspection API server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response written for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopFormatterHooks is a no-op implementation of FormatterHooks.
type NoopFormatterHooks struct{}

func (NoopFormatterHooks) OnSaveStart(context.Context, string, string) {}
func (NoopFormatterHooks) OnSaveComplete(context.Context, string, string, ProjectStats, time.Duration, error) {
}
func (NoopFormatterHooks) OnLoadStart(context.Context, string, string) {}
func (NoopFormatterHooks) OnLoadComplete(context.Context, string, string, ProjectStats, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	formatterHooks FormatterHooks = NoopFormatterHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	httpHooks      HTTPHooks      = NoopHTTPHooks{}
	hooksMu        sync.RWMutex
)

// SetFormatterHooks registers custom formatter hooks.
// This should be called once at application startup before any project is
// saved or loaded.
func SetFormatterHooks(h FormatterHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		formatterHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before the server starts.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Formatter returns the registered formatter hooks.
func Formatter() FormatterHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return formatterHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	formatterHooks = NoopFormatterHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
