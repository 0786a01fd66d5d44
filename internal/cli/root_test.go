package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/vouchjs/pkg/buildinfo"
	"github.com/matzehuels/vouchjs/pkg/errors"
)

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	for _, name := range []string{"info", "deps", "scan", "metadata", "cache", "config", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"config", "format"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s not registered", flag)
		}
	}
}

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	if err := Run(context.Background(), []string{"--version"}, &out, io.Discard); err != nil {
		t.Fatalf("Run(--version) error: %v", err)
	}
	if !strings.Contains(out.String(), "version "+buildinfo.Version) {
		t.Errorf("version output = %q", out.String())
	}
}

func TestRunVerbose(t *testing.T) {
	dir := t.TempDir()
	var stderr bytes.Buffer
	path := writeTestConfig(t, dir, "")

	if err := Run(context.Background(), []string{"-v", "--config", path, "config"}, io.Discard, &stderr); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !strings.Contains(stderr.String(), "Loaded config from "+path) {
		t.Errorf("verbose run should log the config source, got %q", stderr.String())
	}
}

func TestRunUnknownFormat(t *testing.T) {
	err := Run(context.Background(), []string{"--format", "xml", "info"}, io.Discard, io.Discard)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Run(--format xml) error = %v, want INVALID_INPUT", err)
	}
}

func TestCheckFormat(t *testing.T) {
	for _, f := range []string{formatText, formatJSON, formatYAML} {
		if err := checkFormat(f); err != nil {
			t.Errorf("checkFormat(%q) error: %v", f, err)
		}
	}
	if err := checkFormat("csv"); err == nil {
		t.Error("checkFormat(csv) should fail")
	}
}

func TestWriteYAMLBlockStyle(t *testing.T) {
	v := []map[string]any{{"name": "ms", "version": "2.0", "missing": nil, "list": []string{}}}

	var buf bytes.Buffer
	if err := writeYAML(&buf, v); err != nil {
		t.Fatalf("writeYAML() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"- list: []", "  missing: null", "  name: ms", `  version: "2.0"`} {
		if !strings.Contains(out, want) {
			t.Errorf("writeYAML() output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "{") {
		t.Errorf("writeYAML() should not emit flow mappings:\n%s", out)
	}
}
