// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through the registered hooks; main decides where
// they go. The defaults are no-ops, so instrumentation costs nothing until
// a consumer registers an implementation.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Render().OnRunStart(ctx, runID, formats)
//	// ... render ...
//	observability.Render().OnRunComplete(ctx, runID, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// RenderHooks receives events from render runs.
type RenderHooks interface {
	OnRunStart(ctx context.Context, runID string, formats []string)
	OnFormatComplete(ctx context.Context, runID, format string, size int, duration time.Duration, err error)
	OnRunComplete(ctx context.Context, runID string, duration time.Duration, err error)

	// OnPointRejected fires for every annotated point outside the R domain.
	OnPointRejected(ctx context.Context, runID string, index int, r, theta float64)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, format string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, format string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, format string, size int)
}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRunStart(context.Context, string, []string) {}
func (NoopRenderHooks) OnFormatComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopRenderHooks) OnRunComplete(context.Context, string, time.Duration, error)    {}
func (NoopRenderHooks) OnPointRejected(context.Context, string, int, float64, float64) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any render runs.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
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

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	cacheHooks = NoopCacheHooks{}
}
