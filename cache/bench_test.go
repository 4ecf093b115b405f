package cache

import (
	"fmt"
	"testing"
	"time"
)

// BenchmarkTTLCache_Get_Hit measures cache hit performance.
func BenchmarkTTLCache_Get_Hit(b *testing.B) {
	c := New[string](time.Hour)
	c.Set("key", "value")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Get("key")
	}
}

// BenchmarkTTLCache_Set measures write performance.
func BenchmarkTTLCache_Set(b *testing.B) {
	c := New[string](time.Hour)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Set(fmt.Sprintf("key-%d", i), "value")
	}
}

// BenchmarkKey measures key derivation cost.
func BenchmarkKey(b *testing.B) {
	opts := map[string]any{"detail_level": "full", "include_unexported": false}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Key("get-doc", "Base.sort", opts)
	}
}
