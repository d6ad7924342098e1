package core

import "fmt"

// Assert checks a programming contract. When assertions are compiled in (the
// default) a violated contract panics; builds tagged `release` only log it
// and the caller is expected to drop the offending operation.
func Assert(cond bool, msg string, args ...interface{}) bool {
	if cond {
		return true
	}
	if assertionsEnabled {
		panic(fmt.Sprintf("assertion failed: "+msg, args...))
	}
	getLogger().Helper()
	LogError("assertion failed: "+msg, args...)
	return false
}

// AssertionsEnabled reports whether failed assertions panic.
func AssertionsEnabled() bool {
	return assertionsEnabled
}
