//go:build amd64 || arm64

package gls

// getg is like the compiler intrinsic runtime.getg which retrieves the
// current goroutine object; only the address is needed here, as a stable
// identity to key the local-storage map.
//
// https://github.com/golang/go/blob/master/src/runtime/HACKING.md
func getg() uintptr
