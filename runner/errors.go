package runner

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for failure classification.
var (
	// ErrInterpreterNotFound indicates no julia executable could be
	// located or spawned. Distinct from every script-level failure.
	ErrInterpreterNotFound = errors.New("julia interpreter not found")

	// ErrPackageNotFound indicates a named package failed to resolve in
	// the active project or depot.
	ErrPackageNotFound = errors.New("package not found")

	// ErrSymbolNotFound indicates the requested path does not resolve to
	// any known symbol.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrUndefinedReference indicates the symbol exists textually but is
	// unbound or its module is not loaded.
	ErrUndefinedReference = errors.New("undefined reference")

	// ErrEmptyResult indicates the process succeeded but printed nothing;
	// every supported operation prints something on success.
	ErrEmptyResult = errors.New("no result")

	// ErrTimeout indicates the subprocess exceeded its deadline and was
	// killed.
	ErrTimeout = errors.New("julia execution timed out")

	// ErrScriptFailed is the generic kind for any other non-empty stderr.
	ErrScriptFailed = errors.New("script execution failed")
)

// ScriptError is a classified script failure. It carries the raw stderr,
// the package involved (when known), an optional remediation hint, and the
// diagnostic dump collected after the failure.
type ScriptError struct {
	Kind        error
	Message     string
	Package     string
	Stderr      string
	Hint        string
	Diagnostics string
}

// Error renders the full human-readable message, hint and diagnostics
// included. The dispatcher surfaces this text verbatim to the caller.
func (e *ScriptError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Hint != "" {
		b.WriteString("\n")
		b.WriteString(e.Hint)
	}
	if e.Diagnostics != "" {
		b.WriteString("\n\nEnvironment diagnostics:\n")
		b.WriteString(e.Diagnostics)
	}
	return b.String()
}

// Unwrap returns the sentinel kind for errors.Is checks.
func (e *ScriptError) Unwrap() error {
	return e.Kind
}

// classify maps stderr text to a ScriptError. pkg is the package the script
// attempted to load, empty when none. project scopes the remediation hint.
func classify(stderr, pkg, project string) *ScriptError {
	se := &ScriptError{Stderr: stderr, Package: pkg}

	switch {
	case strings.Contains(stderr, "could not load package") ||
		strings.Contains(stderr, "not found in current path") ||
		(pkg != "" && strings.Contains(stderr, fmt.Sprintf("Package %s not found", pkg))):
		se.Kind = ErrPackageNotFound
		name := pkg
		if name == "" {
			name = "the requested package"
		}
		if project != "" {
			se.Message = fmt.Sprintf("Package %s could not be loaded in project %s.", name, project)
		} else {
			se.Message = fmt.Sprintf("Package %s could not be loaded.", name)
		}
		if pkg != "" {
			se.Hint = fmt.Sprintf("Install it with: julia -e 'import Pkg; Pkg.add(%q)'", pkg)
		}

	case strings.Contains(stderr, "UndefVarError"):
		se.Kind = ErrUndefinedReference
		se.Message = fmt.Sprintf("Undefined reference: %s", firstLine(stderr))

	case strings.Contains(stderr, "No documentation found") ||
		strings.Contains(stderr, "does not exist"):
		se.Kind = ErrSymbolNotFound
		se.Message = fmt.Sprintf("Symbol not found: %s", firstLine(stderr))

	default:
		se.Kind = ErrScriptFailed
		se.Message = fmt.Sprintf("Julia reported an error:\n%s", stderr)
	}

	return se
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}
