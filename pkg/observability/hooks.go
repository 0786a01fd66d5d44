// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup
// to receive events about extension operations, npm invocations, cache
// lookups, and registry calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so library packages never
// import a tracing or metrics backend. [NewTracingHooks] adapts all hook
// categories to OpenTelemetry spans.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetExtensionHooks(&myExtensionHooks{})
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Extension().OnOperationStart(ctx, "identify_package_dependencies", pkg)
//	// ... do work ...
//	observability.Extension().OnOperationComplete(ctx, "identify_package_dependencies", pkg, count, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Extension Hooks
// =============================================================================

// ExtensionHooks receives events from the extension operations.
type ExtensionHooks interface {
	// OnOperationStart records the start of an operation on target, which is
	// a package name or a working directory.
	OnOperationStart(ctx context.Context, operation, target string)

	// OnOperationComplete records the end of an operation. count is the
	// number of dependency records or metadata entries produced.
	OnOperationComplete(ctx context.Context, operation, target string, count int, duration time.Duration, err error)
}

// =============================================================================
// Process Hooks
// =============================================================================

// ProcessHooks receives events from external process invocations.
type ProcessHooks interface {
	// OnProcessStart records a process about to be started.
	OnProcessStart(ctx context.Context, name string, args []string)

	// OnProcessComplete records a finished process. exitCode is -1 when the
	// process could not be started or was killed.
	OnProcessComplete(ctx context.Context, name string, args []string, exitCode int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, namespace string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, namespace string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, namespace string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopExtensionHooks is a no-op implementation of ExtensionHooks.
type NoopExtensionHooks struct{}

func (NoopExtensionHooks) OnOperationStart(context.Context, string, string) {}
func (NoopExtensionHooks) OnOperationComplete(context.Context, string, string, int, time.Duration, error) {
}

// NoopProcessHooks is a no-op implementation of ProcessHooks.
type NoopProcessHooks struct{}

func (NoopProcessHooks) OnProcessStart(context.Context, string, []string) {}
func (NoopProcessHooks) OnProcessComplete(context.Context, string, []string, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	extensionHooks ExtensionHooks = NoopExtensionHooks{}
	processHooks   ProcessHooks   = NoopProcessHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	httpHooks      HTTPHooks      = NoopHTTPHooks{}
	hooksMu        sync.RWMutex
)

// SetExtensionHooks registers custom extension hooks.
// This should be called once at application startup before any operation runs.
func SetExtensionHooks(h ExtensionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		extensionHooks = h
	}
}

// SetProcessHooks registers custom process hooks.
func SetProcessHooks(h ProcessHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		processHooks = h
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
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Extension returns the registered extension hooks.
func Extension() ExtensionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return extensionHooks
}

// Process returns the registered process hooks.
func Process() ProcessHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return processHooks
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
	extensionHooks = NoopExtensionHooks{}
	processHooks = NoopProcessHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
