//go:build debug

package assert

import "fmt"

// DEBUG is true when built with -tags debug.
const DEBUG = true

// Assert panics with msg if test is false.
func Assert(test bool, msg string, a ...interface{}) {
	if !test {
		panic(fmt.Sprintf(msg, a...))
	}
}
