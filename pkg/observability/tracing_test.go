package observability

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordedHooks(t *testing.T) (*TracingHooks, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { tp.Shutdown(context.Background()) })
	return NewTracingHooks(tp.Tracer("test")), sr
}

func attr(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracingHooks_Operation(t *testing.T) {
	h, sr := newRecordedHooks(t)
	ctx := context.Background()

	h.OnOperationStart(ctx, "registries_package_metadata", "left-pad")
	h.OnOperationComplete(ctx, "registries_package_metadata", "left-pad", 1, 50*time.Millisecond, nil)

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	s := spans[0]
	if s.Name() != "extension.registries_package_metadata" {
		t.Errorf("span name = %q", s.Name())
	}
	if got := s.EndTime().Sub(s.StartTime()); got < 50*time.Millisecond {
		t.Errorf("span duration = %v, want >= 50ms", got)
	}
	if v, ok := attr(s, "vouch.target"); !ok || v.AsString() != "left-pad" {
		t.Errorf("vouch.target = %v", v)
	}
	if s.Status().Code != codes.Ok {
		t.Errorf("status = %v, want Ok", s.Status().Code)
	}
}

func TestTracingHooks_ProcessError(t *testing.T) {
	h, sr := newRecordedHooks(t)

	h.OnProcessComplete(context.Background(), "npm", []string{"install", "x"}, 1, time.Second, errors.New("exit status 1"))

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Errorf("status = %v, want Error", spans[0].Status().Code)
	}
	if v, _ := attr(spans[0], "process.exit_code"); v.AsInt64() != 1 {
		t.Errorf("process.exit_code = %v, want 1", v.AsInt64())
	}
}

func TestTracingHooks_HTTP(t *testing.T) {
	h, sr := newRecordedHooks(t)
	ctx := context.Background()

	h.OnRequest(ctx, "GET", "registry.npmjs.com", "/left-pad")
	h.OnResponse(ctx, "GET", "registry.npmjs.com", "/left-pad", 404, 10*time.Millisecond)
	h.OnRequest(ctx, "GET", "registry.npmjs.com", "/down")
	h.OnError(ctx, "GET", "registry.npmjs.com", "/down", errors.New("connection refused"))

	spans := sr.Ended()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	for _, s := range spans {
		if s.Status().Code != codes.Error {
			t.Errorf("%s status = %v, want Error", s.Name(), s.Status().Code)
		}
	}
	if len(h.pending) != 0 {
		t.Errorf("pending requests = %d, want 0", len(h.pending))
	}
}

func TestTracingHooks_Install(t *testing.T) {
	Reset()
	defer Reset()

	h, _ := newRecordedHooks(t)
	h.Install()

	if Extension() != ExtensionHooks(h) || Process() != ProcessHooks(h) || Cache() != CacheHooks(h) || HTTP() != HTTPHooks(h) {
		t.Error("Install should register the hooks for every category")
	}
}

func TestNewProvider_None(t *testing.T) {
	p, err := NewProvider(TracingConfig{Exporter: ExporterNone})
	if err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}
	if p.Enabled() {
		t.Error("none exporter should be disabled")
	}
	_, span := p.Tracer().Start(context.Background(), "noop")
	span.End()
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error: %v", err)
	}
}

func TestNewProvider_Stdout(t *testing.T) {
	var buf bytes.Buffer
	p, err := NewProvider(TracingConfig{Exporter: ExporterStdout, Stdout: &buf})
	if err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}

	_, span := p.Tracer().Start(context.Background(), "stdout-span")
	span.End()
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error: %v", err)
	}
	if !strings.Contains(buf.String(), "stdout-span") {
		t.Errorf("exported output does not mention the span: %s", buf.String())
	}
}

func TestNewProvider_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces", "spans.jsonl")
	p, err := NewProvider(TracingConfig{Exporter: ExporterFile, FilePath: path})
	if err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}
	if !p.Enabled() {
		t.Error("file exporter should be enabled")
	}

	_, span := p.Tracer().Start(context.Background(), "file-span")
	span.End()
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read trace file: %v", err)
	}
	if !strings.Contains(string(data), "file-span") {
		t.Errorf("trace file does not mention the span: %s", data)
	}
}

func TestNewProvider_Errors(t *testing.T) {
	if _, err := NewProvider(TracingConfig{Exporter: ExporterFile}); err == nil {
		t.Error("file exporter without path should fail")
	}
	if _, err := NewProvider(TracingConfig{Exporter: "otlp"}); err == nil {
		t.Error("unknown exporter should fail")
	}
}
