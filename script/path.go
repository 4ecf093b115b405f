package script

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors.
var (
	ErrInvalidPath   = errors.New("invalid symbol path")
	ErrInvalidDetail = errors.New("invalid detail level")
)

// MaxPathLength bounds symbol paths to keep generated scripts sane.
const MaxPathLength = 256

// pathPattern is the accepted grammar: identifier segments separated by
// single dots. Julia identifiers may contain ! after the first character.
var pathPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_!]*(\.[A-Za-z_][A-Za-z0-9_!]*)*$`)

// rootNamespaces are always available in a fresh Julia session and never
// need an import.
var rootNamespaces = map[string]struct{}{
	"Base": {},
	"Core": {},
	"Main": {},
}

// ValidatePath checks that path is a dotted identifier path safe to
// interpolate into a script. Quotes, spaces, operators, brackets, and
// interpolation characters are all rejected by the grammar.
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: path is empty", ErrInvalidPath)
	}
	if len(path) > MaxPathLength {
		return fmt.Errorf("%w: path exceeds %d characters", ErrInvalidPath, MaxPathLength)
	}
	if !pathPattern.MatchString(path) {
		return fmt.Errorf("%w: %q is not a dotted identifier path", ErrInvalidPath, path)
	}
	return nil
}

// packageFor returns the package that must be imported before path can be
// referenced. moduleTarget says whether the path itself names a module (as
// in list-package) rather than a symbol inside one; module targets need
// their root imported even when the path has a single segment.
func packageFor(path string, moduleTarget bool) string {
	root, _, qualified := strings.Cut(path, ".")
	if _, always := rootNamespaces[root]; always {
		return ""
	}
	if !qualified && !moduleTarget {
		// A bare symbol like "sort" resolves against Main/Base.
		return ""
	}
	return root
}
