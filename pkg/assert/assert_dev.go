//go:build !release

// Package assert checks internal invariants. A failed assertion is a bug in this module, never a
// condition callers are expected to handle. Build with -tags release to compile the checks out.
package assert

import "fmt"

// That panics with the formatted message when cond is false.
func That(cond bool, format string, args ...any) { //nolint:goprintffuncname // it's ok
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
