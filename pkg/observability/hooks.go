// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about pipeline execution, cache operations
// and preview-server requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnLoadStart(ctx, len(inputs))
//	// ... load panels ...
//	observability.Pipeline().OnLoadComplete(ctx, len(panels), duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the compose pipeline.
type PipelineHooks interface {
	// Load events, one pair per pipeline run.
	OnLoadStart(ctx context.Context, inputCount int)
	OnLoadComplete(ctx context.Context, panelCount int, duration time.Duration, err error)

	// Layout events.
	OnLayoutStart(ctx context.Context, panelCount int)
	OnLayoutComplete(ctx context.Context, rows, cols int, duration time.Duration, err error)

	// Alignment events.
	OnAlignStart(ctx context.Context, mode string)
	OnAlignComplete(ctx context.Context, mode string, warningCount int, duration time.Duration)

	// Render events.
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the preview server.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a served HTTP response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, int)                              {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, int, time.Duration, error)     {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                            {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnAlignStart(context.Context, string)                          {}
func (NoopPipelineHooks) OnAlignComplete(context.Context, string, int, time.Duration)   {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                       {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                        {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration)   {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
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
// This should be called once at application startup before serving.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
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
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
