package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathanfischer97/juliadoc-mcp/script"
)

// Default deadlines for script execution and the post-failure diagnostic
// invocation.
const (
	DefaultTimeout           = 30 * time.Second
	DefaultDiagnosticTimeout = 10 * time.Second
)

// diagnosticScript prints the environment facts appended to classified
// errors: active project, depot path, and the installed-package listing.
const diagnosticScript = `import Pkg
println("Active project: ", something(Base.active_project(), "none"))
println("Depot path: ", join(DEPOT_PATH, ", "))
Pkg.status(; io=stdout)`

// Config configures a Runner.
type Config struct {
	// Bin is the interpreter override. Empty means discover via Locate.
	Bin string
	// Project is an optional project directory passed as --project on
	// every invocation, scoping package resolution.
	Project string
	// Timeout bounds each script invocation. Zero means DefaultTimeout;
	// negative disables the deadline.
	Timeout time.Duration
	// DiagnosticTimeout bounds the post-failure diagnostic invocation.
	// Zero means DefaultDiagnosticTimeout.
	DiagnosticTimeout time.Duration
	// Logger is optional.
	Logger *zap.Logger
}

// Runner invokes the julia interpreter with generated scripts.
//
// Contract:
// - Concurrency: safe for concurrent use; each Run spawns its own process.
// - Context: Run honors cancellation and enforces the configured deadline.
// - Environment: the child inherits the parent environment, so
//   JULIA_DEPOT_PATH, JULIA_LOAD_PATH, and PATH survive.
type Runner struct {
	bin         string
	project     string
	timeout     time.Duration
	diagTimeout time.Duration
	logger      *zap.Logger
	locateErr   error
}

// New creates a Runner, resolving the interpreter location once. When no
// interpreter can be found the Runner is still usable: every Run reports
// ErrInterpreterNotFound, which lets callers fall back where they can
// (explore-project answers from the manifest directly).
func New(cfg Config) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Runner{
		project:     cfg.Project,
		timeout:     cfg.Timeout,
		diagTimeout: cfg.DiagnosticTimeout,
		logger:      logger.Named("runner"),
	}
	if r.timeout == 0 {
		r.timeout = DefaultTimeout
	}
	if r.diagTimeout == 0 {
		r.diagTimeout = DefaultDiagnosticTimeout
	}

	bin, err := Locate(cfg.Bin)
	if err != nil {
		r.locateErr = err
		r.logger.Warn("interpreter not found", zap.Error(err))
		return r
	}
	r.bin = bin
	r.logger.Info("interpreter resolved", zap.String("bin", bin), zap.String("project", cfg.Project))
	return r
}

// Bin returns the resolved interpreter path, empty when none was found.
func (r *Runner) Bin() string {
	return r.bin
}

// Run executes a script and returns its trimmed stdout. Failures are
// classified: interpreter missing, timeout, package/symbol errors from
// stderr substrings, and empty output.
func (r *Runner) Run(ctx context.Context, s script.Script) (string, error) {
	if r.locateErr != nil {
		return "", r.locateErr
	}

	start := time.Now()
	stdout, stderr, err := r.invoke(ctx, s.Code, r.timeout)
	r.logger.Debug("script executed",
		zap.Duration("duration", time.Since(start)),
		zap.String("package", s.Package),
		zap.Bool("failed", err != nil || stderr != ""))

	if err != nil {
		switch {
		case isTimeout(err):
			return "", fmt.Errorf("%w after %s", ErrTimeout, r.timeout)
		case isSpawnFailure(err):
			return "", fmt.Errorf("%w: %s could not be spawned: %v", ErrInterpreterNotFound, r.bin, err)
		}
		// Non-zero exit with no stderr falls through to classification
		// below only when stderr has content; otherwise report the exit.
		if stderr == "" {
			return "", &ScriptError{
				Kind:    ErrScriptFailed,
				Message: fmt.Sprintf("julia exited abnormally: %v", err),
			}
		}
	}

	if stderr != "" {
		se := classify(stderr, s.Package, r.project)
		se.Diagnostics = r.diagnose(ctx)
		return "", se
	}

	if strings.TrimSpace(stdout) == "" {
		return "", fmt.Errorf("%w: the script produced no output", ErrEmptyResult)
	}

	return strings.TrimSpace(stdout), nil
}

// invoke runs one julia process to completion and returns trimmed stdout
// and stderr. The script is passed as a single argv element to -e; no shell
// is involved.
func (r *Runner) invoke(ctx context.Context, code string, timeout time.Duration) (string, string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	args := []string{"--startup-file=no", "--color=no"}
	if r.project != "" {
		args = append(args, "--project="+r.project)
	}
	args = append(args, "-e", code)

	cmd := exec.CommandContext(ctx, r.bin, args...)
	cmd.Env = os.Environ()
	// Grandchildren inheriting the output pipes must not stall Wait after
	// the interpreter itself is killed on deadline.
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		err = context.DeadlineExceeded
	}
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

// diagnose collects the environment dump appended to classified errors.
// Best-effort: a failing diagnostic invocation yields an empty dump, never
// an error.
func (r *Runner) diagnose(ctx context.Context) string {
	stdout, stderr, err := r.invoke(ctx, diagnosticScript, r.diagTimeout)
	if err != nil {
		r.logger.Debug("diagnostic invocation failed", zap.Error(err))
		return ""
	}
	out := strings.TrimSpace(stdout)
	if out == "" {
		out = stderr
	}
	return out
}

func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

func isSpawnFailure(err error) bool {
	var execErr *exec.Error
	return errors.As(err, &execErr) || os.IsNotExist(err) || os.IsPermission(err)
}
