package runner

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Locate resolves the julia executable. Resolution order: the explicit
// override, then PATH lookup, then well-known install locations. The result
// is resolved once at startup and reused for the process lifetime.
func Locate(override string) (string, error) {
	if override != "" {
		if path, err := exec.LookPath(override); err == nil {
			return path, nil
		}
		return "", fmt.Errorf("%w: configured interpreter %q is not executable", ErrInterpreterNotFound, override)
	}

	if path, err := exec.LookPath("julia"); err == nil {
		return path, nil
	}

	for _, candidate := range wellKnownLocations() {
		if isExecutable(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: julia is not on PATH and no known install location exists (set JULIA_BIN to override)", ErrInterpreterNotFound)
}

func wellKnownLocations() []string {
	locations := []string{
		"/usr/local/bin/julia",
		"/opt/homebrew/bin/julia",
		"/opt/julia/bin/julia",
	}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append([]string{filepath.Join(home, ".juliaup", "bin", "julia")}, locations...)
	}
	return locations
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode()&0o111 != 0
}
