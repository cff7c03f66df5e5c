//go:build !debug

// Package assert is a helper for invariant checks that should only run in
// debug builds (e.g. the Zobrist incremental-vs-recomputed consistency
// check of §4.1). Under the default (release) build tag the check
// compiles away to nothing.
package assert

// DEBUG is true when built with -tags debug.
const DEBUG = false

// Assert panics with msg if test is false. Only call guarded by
// `if assert.DEBUG { ... }` so the arguments are never evaluated in
// release builds.
func Assert(test bool, msg string, a ...interface{}) {}
