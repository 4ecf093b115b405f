// Package runner executes generated Julia scripts as subprocesses.
//
// The interpreter location is resolved once at construction (explicit
// override, then PATH, then well-known install locations) and reused for the
// process lifetime. Every invocation is bounded by a deadline; on expiry the
// child is killed and the failure is reported as ErrTimeout.
//
// Failures are classified from stderr text into a small error taxonomy
// rather than surfaced raw. When a script fails, the runner makes one
// additional short invocation to collect environment diagnostics (active
// project, depot path, installed packages) and appends them to the error
// message — a deliberate trade of error-path latency for debuggability.
package runner
