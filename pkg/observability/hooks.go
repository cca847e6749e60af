// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about chart rendering, resize handling and cache use.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetChartHooks(&myChartHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Chart().OnRender(chartID, stats, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Chart Hooks
// =============================================================================

// RenderStats summarizes one render pass of a chart.
type RenderStats struct {
	Nodes   int     // items rendered
	Created int     // elements entered
	Updated int     // elements updated in place
	Removed int     // elements exited
	Width   float64 // container width used for the layout
	Resize  bool    // render was triggered by a debounced resize
}

// ChartHooks receives events from burst charts. Hooks run on the chart's event
// thread and must not block.
type ChartHooks interface {
	// OnRender records a completed render pass.
	OnRender(chartID string, stats RenderStats, duration time.Duration)

	// OnResizeScheduled records a resize event that scheduled a re-render.
	OnResizeScheduled(chartID string, delay time.Duration)

	// OnResizeCoalesced records a resize event absorbed by a pending re-render.
	OnResizeCoalesced(chartID string)

	// OnDestroy records a chart releasing its host subscription.
	OnDestroy(chartID string, cancelledPending bool)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, key string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, key string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, key string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopChartHooks is a no-op implementation of ChartHooks.
type NoopChartHooks struct{}

func (NoopChartHooks) OnRender(string, RenderStats, time.Duration) {}
func (NoopChartHooks) OnResizeScheduled(string, time.Duration)     {}
func (NoopChartHooks) OnResizeCoalesced(string)                    {}
func (NoopChartHooks) OnDestroy(string, bool)                      {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	chartHooks ChartHooks = NoopChartHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetChartHooks registers custom chart hooks.
// This should be called once at application startup before any chart is created.
func SetChartHooks(h ChartHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		chartHooks = h
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

// Chart returns the registered chart hooks.
func Chart() ChartHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return chartHooks
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
	chartHooks = NoopChartHooks{}
	cacheHooks = NoopCacheHooks{}
}
