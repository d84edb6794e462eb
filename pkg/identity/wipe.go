package identity

import "runtime"

// Wipe zeroes the provided buffer. This is best-effort: it reduces the
// lifetime of secret material in memory but cannot guarantee the runtime
// has not copied the data elsewhere.
//
//go:noinline
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b)
}
