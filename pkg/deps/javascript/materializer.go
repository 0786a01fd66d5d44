package javascript

import (
	"bytes"
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/vouchjs/pkg/deps"
	"github.com/matzehuels/vouchjs/pkg/errors"
	"github.com/matzehuels/vouchjs/pkg/observability"
)

const (
	tempDirPrefix = "vouch_js_identify_package_dependencies"
	stderrTailLen = 2048
)

// LockfileMaterializer produces the package-lock.json that installing a
// package spec ("name" or "name@version") would write.
type LockfileMaterializer interface {
	Materialize(ctx context.Context, spec string) ([]byte, error)
}

// NpmMaterializer runs `npm install <spec> --package-lock-only` in a fresh
// temporary directory and returns the resulting lockfile. The directory is
// removed before Materialize returns.
type NpmMaterializer struct {
	Binary  string               // npm executable; "npm" when empty
	Timeout time.Duration        // zero means no timeout
	TempDir string               // parent of the work directory; os.TempDir() when empty
	Logger  func(string, ...any) // debug callback (optional)
}

// Materialize implements [LockfileMaterializer].
func (m *NpmMaterializer) Materialize(ctx context.Context, spec string) ([]byte, error) {
	binary := m.Binary
	if binary == "" {
		binary = "npm"
	}
	logf := m.Logger
	if logf == nil {
		logf = func(string, ...any) {}
	}

	dir, err := os.MkdirTemp(m.TempDir, tempDirPrefix)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeProcessFailure, err, "create work directory")
	}
	defer os.RemoveAll(dir)

	if m.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.Timeout)
		defer cancel()
	}

	args := []string{"install", spec, "--package-lock-only"}
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logf("running %s %s in %s", binary, strings.Join(args, " "), dir)
	hooks := observability.Process()
	hooks.OnProcessStart(ctx, filepath.Base(binary), args)
	start := time.Now()

	runErr := cmd.Run()

	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}
	hooks.OnProcessComplete(ctx, filepath.Base(binary), args, exitCode, time.Since(start), runErr)

	if runErr != nil {
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "npm install %s timed out after %s", spec, m.Timeout)
		}
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeProcessFailure, ctx.Err(), "npm install %s", spec)
		}
		var exitErr *exec.ExitError
		if stderrors.As(runErr, &exitErr) {
			return nil, errors.Wrap(errors.ErrCodeProcessFailure, runErr,
				"npm install %s exited with code %d: %s", spec, exitCode, tail(stderr.String()))
		}
		return nil, errors.Wrap(errors.ErrCodeProcessFailure, runErr, "start %s", binary)
	}

	data, err := os.ReadFile(filepath.Join(dir, deps.ManifestNpmLock.FileName()))
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.New(errors.ErrCodeProcessFailure,
			"npm install %s did not write %s: %s", spec, deps.ManifestNpmLock.FileName(), tail(stderr.String()))
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeProcessFailure, err, "read generated lockfile")
	}
	return data, nil
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > stderrTailLen {
		s = "..." + s[len(s)-stderrTailLen:]
	}
	if s == "" {
		return "no output"
	}
	return s
}

var _ LockfileMaterializer = (*NpmMaterializer)(nil)
