package integrations

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/vouchjs/pkg/cache"
	"github.com/matzehuels/vouchjs/pkg/errors"
	"github.com/matzehuels/vouchjs/pkg/observability"
)

// Client provides shared HTTP functionality for registry API clients.
// It handles caching, retry logic, and common request headers.
type Client struct {
	http    *http.Client
	cache   *cache.ScopedCache
	ttl     time.Duration
	headers map[string]string
	retries int
	delay   time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = NewHTTPClient(d) }
}

// WithRetries sets how many extra attempts transient failures get.
func WithRetries(n int) Option {
	return func(c *Client) { c.retries = max(n, 0) }
}

// WithRetryDelay sets the wait before the first retry.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.delay = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a Client storing responses in c under namespace for ttl.
// Headers are applied to all requests made through this client.
// A nil cache disables caching; nil headers are allowed.
func NewClient(c cache.Cache, namespace string, ttl time.Duration, headers map[string]string, opts ...Option) *Client {
	client := &Client{
		http:    NewHTTPClient(0),
		cache:   cache.Scoped(c, namespace),
		ttl:     ttl,
		headers: headers,
		delay:   cache.DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Cached returns the value stored under key, or runs fetch (with retries)
// and stores its result. If refresh is true, the cache is bypassed for the
// read but still updated. Cache failures never fail the call.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, fetch func(context.Context) ([]byte, error)) ([]byte, error) {
	namespace := c.cache.Prefix()
	if !refresh {
		if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			observability.Cache().OnCacheHit(ctx, namespace)
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, namespace)
	}

	var data []byte
	err := cache.Retry(ctx, c.retries, c.delay, func() error {
		var err error
		data, err = fetch(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, data, c.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, namespace, len(data))
	}
	return data, nil
}

// GetBytes performs an HTTP GET request and returns the response body.
func (c *Client) GetBytes(ctx context.Context, rawURL string) ([]byte, error) {
	return c.GetBytesWithHeaders(ctx, rawURL, nil)
}

// GetBytesWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetBytesWithHeaders(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	body, err := c.doRequest(ctx, rawURL, headers)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, fmt.Errorf("%w: %v", ErrNetwork, err), "read %s", rawURL))
	}
	return data, nil
}

func (c *Client) doRequest(ctx context.Context, rawURL string, headers map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeURLFailure, err, "build request")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	host, path := hostPath(req.URL)
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			code := errors.ErrCodeNetwork
			if stderrors.Is(ctxErr, context.DeadlineExceeded) {
				code = errors.ErrCodeTimeout
			}
			return nil, errors.Wrap(code, ctxErr, "GET %s", rawURL)
		}
		var uerr *url.Error
		if stderrors.As(err, &uerr) && uerr.Timeout() {
			return nil, cache.Retryable(errors.Wrap(errors.ErrCodeTimeout, fmt.Errorf("%w: %v", ErrNetwork, err), "GET %s", rawURL))
		}
		return nil, cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, fmt.Errorf("%w: %v", ErrNetwork, err), "GET %s", rawURL))
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, errors.Wrap(errors.GetCode(err), err, "GET %s", rawURL)
	}
	return resp.Body, nil
}

// checkStatus maps a response status to an error. 404 is ErrNotFound; 429
// and 5xx are retryable.
func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests:
		rl := &errors.RateLimitedError{RetryAfter: retryAfter(resp.Header)}
		return cache.Retryable(errors.Wrap(errors.ErrCodeRateLimited, rl, "status %d", code))
	case code >= 500:
		return cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, ErrNetwork, "status %d", code))
	default:
		return errors.Wrap(errors.ErrCodeNetwork, ErrNetwork, "status %d", code)
	}
}

func hostPath(u *url.URL) (string, string) {
	if u == nil {
		return "", ""
	}
	return u.Host, u.EscapedPath()
}
