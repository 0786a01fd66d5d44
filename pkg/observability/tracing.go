package observability

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Exporter names accepted by [NewProvider].
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterFile   = "file"
)

// ServiceName identifies spans emitted by this module.
const ServiceName = "vouch-js"

// TracingConfig selects where spans go.
type TracingConfig struct {
	Exporter string // none, stdout or file
	FilePath string // output for the file exporter, one JSON span per line
	Stdout   io.Writer
}

// Provider owns the tracer provider and any file opened for export.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
	file     *os.File
}

// NewProvider builds a tracer provider for cfg. The "none" exporter (or an
// empty one) yields a no-op tracer.
func NewProvider(cfg TracingConfig) (*Provider, error) {
	var w io.Writer
	p := &Provider{}

	switch cfg.Exporter {
	case "", ExporterNone:
		p.tracer = noop.NewTracerProvider().Tracer(ServiceName)
		return p, nil
	case ExporterStdout:
		w = cfg.Stdout
		if w == nil {
			w = os.Stdout
		}
	case ExporterFile:
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("file path required for file exporter")
		}
		path := filepath.Clean(cfg.FilePath)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("create trace directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open trace file: %w", err)
		}
		p.file = f
		w = f
	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.Exporter)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		if p.file != nil {
			p.file.Close()
		}
		return nil, fmt.Errorf("create %s exporter: %w", cfg.Exporter, err)
	}

	// Synchronous export: nothing is left buffered when the process exits.
	p.provider = sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", ServiceName))),
		sdktrace.WithSyncer(exporter),
	)
	p.tracer = p.provider.Tracer(ServiceName)
	return p, nil
}

// Tracer returns the configured tracer. It is never nil.
func (p *Provider) Tracer() trace.Tracer { return p.tracer }

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool { return p.provider != nil }

// Shutdown flushes pending spans and closes the export file.
func (p *Provider) Shutdown(ctx context.Context) error {
	var err error
	if p.provider != nil {
		err = p.provider.Shutdown(ctx)
	}
	if p.file != nil {
		if cerr := p.file.Close(); err == nil {
			err = cerr
		}
		p.file = nil
	}
	return err
}

// TracingHooks implements every hook category by emitting one span per
// completed event. Start events only record the start time; the span is
// created on completion with that start timestamp.
type TracingHooks struct {
	tracer trace.Tracer

	mu      sync.Mutex
	pending map[string]time.Time
}

// NewTracingHooks returns hooks that report to tracer.
func NewTracingHooks(tracer trace.Tracer) *TracingHooks {
	return &TracingHooks{tracer: tracer, pending: make(map[string]time.Time)}
}

// Install registers h for all hook categories.
func (h *TracingHooks) Install() {
	SetExtensionHooks(h)
	SetProcessHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *TracingHooks) span(ctx context.Context, name string, start time.Time, err error, attrs ...attribute.KeyValue) {
	_, span := h.tracer.Start(ctx, name, trace.WithTimestamp(start), trace.WithAttributes(attrs...))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func (h *TracingHooks) OnOperationStart(ctx context.Context, operation, target string) {}

func (h *TracingHooks) OnOperationComplete(ctx context.Context, operation, target string, count int, duration time.Duration, err error) {
	h.span(ctx, "extension."+operation, time.Now().Add(-duration), err,
		attribute.String("vouch.target", target),
		attribute.Int("vouch.count", count),
	)
}

func (h *TracingHooks) OnProcessStart(ctx context.Context, name string, args []string) {}

func (h *TracingHooks) OnProcessComplete(ctx context.Context, name string, args []string, exitCode int, duration time.Duration, err error) {
	h.span(ctx, "process."+name, time.Now().Add(-duration), err,
		attribute.StringSlice("process.args", args),
		attribute.Int("process.exit_code", exitCode),
	)
}

func (h *TracingHooks) OnCacheHit(ctx context.Context, namespace string) {
	h.span(ctx, "cache.hit", time.Now(), nil, attribute.String("cache.namespace", namespace))
}

func (h *TracingHooks) OnCacheMiss(ctx context.Context, namespace string) {
	h.span(ctx, "cache.miss", time.Now(), nil, attribute.String("cache.namespace", namespace))
}

func (h *TracingHooks) OnCacheSet(ctx context.Context, namespace string, size int) {
	h.span(ctx, "cache.set", time.Now(), nil,
		attribute.String("cache.namespace", namespace),
		attribute.Int("cache.size", size),
	)
}

// OnRequest remembers the request start; OnResponse and OnError close it.
func (h *TracingHooks) OnRequest(ctx context.Context, method, host, path string) {
	h.mu.Lock()
	h.pending[method+" "+host+path] = time.Now()
	h.mu.Unlock()
}

func (h *TracingHooks) OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration) {
	h.take(method, host, path)
	var err error
	if statusCode >= 400 {
		err = fmt.Errorf("status %d", statusCode)
	}
	h.span(ctx, "http."+method, time.Now().Add(-duration), err,
		attribute.String("http.host", host),
		attribute.String("http.path", path),
		attribute.Int("http.status_code", statusCode),
	)
}

func (h *TracingHooks) OnError(ctx context.Context, method, host, path string, err error) {
	start := h.take(method, host, path)
	h.span(ctx, "http."+method, start, err,
		attribute.String("http.host", host),
		attribute.String("http.path", path),
	)
}

func (h *TracingHooks) take(method, host, path string) time.Time {
	key := method + " " + host + path
	h.mu.Lock()
	defer h.mu.Unlock()
	start, ok := h.pending[key]
	if !ok {
		return time.Now()
	}
	delete(h.pending, key)
	return start
}

var (
	_ ExtensionHooks = (*TracingHooks)(nil)
	_ ProcessHooks   = (*TracingHooks)(nil)
	_ CacheHooks     = (*TracingHooks)(nil)
	_ HTTPHooks      = (*TracingHooks)(nil)
)
