//go:build !amd64 && !arm64

package gls

import "runtime"

// Fallback for platforms without a getg stub: derive a stable goroutine
// identity from the header of the stack trace, which starts with
// "goroutine N [".
func getg() uintptr {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	buf = buf[len("goroutine "):]
	var id uintptr
	for _, c := range buf {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uintptr(c-'0')
	}
	return id
}
