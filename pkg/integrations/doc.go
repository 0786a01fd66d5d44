// Package integrations provides the shared HTTP client used by registry API
// clients.
//
// # Client
//
// [Client] wraps an [http.Client] with:
//   - default headers (the CLI sets User-Agent)
//   - an optional per-request timeout ([WithTimeout]; none by default)
//   - retry of transient failures ([WithRetries]; none by default)
//   - response caching through any [cache.Cache], under a key namespace
//   - [observability.HTTPHooks] and [observability.CacheHooks] events
//
// # Errors
//
// Failures carry [errors.Error] codes: a 404 is NOT_FOUND wrapping
// [ErrNotFound]; transport failures and other non-2xx statuses are
// NETWORK_ERROR wrapping [ErrNetwork]; a 429 is RATE_LIMITED. Transport
// failures, 429 and 5xx responses are marked retryable.
//
// Registry-specific clients live in subpackages, e.g. [npm].
//
// [npm]: github.com/matzehuels/vouchjs/pkg/integrations/npm
// [cache.Cache]: github.com/matzehuels/vouchjs/pkg/cache.Cache
// [observability.HTTPHooks]: github.com/matzehuels/vouchjs/pkg/observability.HTTPHooks
// [observability.CacheHooks]: github.com/matzehuels/vouchjs/pkg/observability.CacheHooks
// [errors.Error]: github.com/matzehuels/vouchjs/pkg/errors.Error
package integrations
