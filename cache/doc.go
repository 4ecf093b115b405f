// Package cache provides an in-memory TTL cache for tool results plus
// deterministic request-key derivation.
//
// Entries expire lazily: an expired entry is removed when Get observes it,
// so no background sweeper runs. The cache is unbounded by design — keys are
// naturally limited to the distinct queries made during one server session.
package cache
