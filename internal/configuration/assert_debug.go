//go:build debug

package configuration

// assertInRange panics in debug builds so index bugs surface at the call site.
func assertInRange(op string, index, count int) {
	if index < 0 || index >= count {
		panic((&IndexError{Op: op, Index: index, Count: count}).Error())
	}
}
