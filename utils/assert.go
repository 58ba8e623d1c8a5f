// Package utils holds the runtime contract-violation helpers used by
// the mvcc core. These are not recoverable errors: a failed assertion
// here is a programming error and should terminate the process, not
// bubble up as a value.
package utils

import "fmt"

func Assert(b bool, msg string) {
	if !b {
		panic(msg)
	}
}

func AssertEq[C comparable](a, b C, prefix string) {
	if a != b {
		panic(fmt.Sprintf("%s '%v' != '%v'", prefix, a, b))
	}
}
