package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// Key derives a deterministic cache key from an operation name, a target
// path, and the operation-specific options.
//
// Format: <op>:<path>:<hash>
// where hash is the first 16 hex characters of SHA-256 over the canonical
// JSON encoding of opts (map keys sorted). Two logically identical requests
// always produce the same key; any option that changes the rendered output
// (detail level, include-unexported) changes the hash and therefore the key.
func Key(op, path string, opts map[string]any) string {
	return fmt.Sprintf("%s:%s:%s", op, path, hashOptions(opts))
}

func hashOptions(opts map[string]any) string {
	canonical := canonicalize(opts)
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:8])
}

// canonicalize produces a deterministic JSON encoding: maps are emitted with
// sorted keys so iteration order never leaks into the key.
func canonicalize(v any) []byte {
	switch val := v.(type) {
	case nil:
		return []byte("null")
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := []byte("{")
		for i, k := range keys {
			if i > 0 {
				out = append(out, ',')
			}
			kb, _ := json.Marshal(k)
			out = append(out, kb...)
			out = append(out, ':')
			out = append(out, canonicalize(val[k])...)
		}
		return append(out, '}')
	case []any:
		out := []byte("[")
		for i, item := range val {
			if i > 0 {
				out = append(out, ',')
			}
			out = append(out, canonicalize(item)...)
		}
		return append(out, ']')
	default:
		b, err := json.Marshal(val)
		if err != nil {
			// Non-encodable option values fall back to their Go
			// representation; still deterministic for a given value.
			return []byte(fmt.Sprintf("%q", fmt.Sprint(val)))
		}
		return b
	}
}
