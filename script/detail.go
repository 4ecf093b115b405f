package script

import "fmt"

// DetailLevel selects how much documentation get-doc renders.
type DetailLevel string

// Supported detail levels.
const (
	// DetailConcise emits only the resolved call signature.
	DetailConcise DetailLevel = "concise"
	// DetailFull emits the primary documentation text. Default.
	DetailFull DetailLevel = "full"
	// DetailAll emits documentation plus every method signature plus,
	// for type targets, field names and types.
	DetailAll DetailLevel = "all"
)

// ParseDetailLevel validates a detail level string. The empty string parses
// to DetailFull.
func ParseDetailLevel(s string) (DetailLevel, error) {
	switch DetailLevel(s) {
	case "":
		return DetailFull, nil
	case DetailConcise, DetailFull, DetailAll:
		return DetailLevel(s), nil
	default:
		return "", fmt.Errorf("%w: detail_level %q (want concise, full, or all)", ErrInvalidDetail, s)
	}
}
