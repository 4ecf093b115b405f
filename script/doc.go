// Package script renders the Julia one-liners executed by the runner.
//
// Builders are pure: the same operation, path, and options always produce
// identical script text, and no I/O happens during building. User-supplied
// symbol paths are validated against a strict dotted-identifier grammar
// before interpolation, which closes the code-injection surface that naive
// string templating would open.
//
// When a path's leading component is a package rather than one of the
// always-available root namespaces (Base, Core, Main), the builder prefixes
// an import statement and records the package name so the runner can report
// it in package-not-found diagnostics.
package script
