package gls

import "sync"

// Goroutine local storage. The map holds one entry for each goroutine that
// currently carries runtime state: a shadow-stack top for the effect layer,
// set while a computation runs and cleared when it completes.
//
// A sharded map would reduce contention under highly parallel workloads;
// handler operations are rare compared to plain calls, so a single RWMutex
// is enough in practice.
var (
	gmutex sync.RWMutex
	gstate map[uintptr]any
)

// Get returns the local state of the calling goroutine, or nil if none was
// set.
func Get() any {
	g := getg()
	gmutex.RLock()
	v := gstate[g]
	gmutex.RUnlock()
	return v
}

// Set associates v with the calling goroutine.
func Set(v any) {
	g := getg()
	gmutex.Lock()
	if gstate == nil {
		gstate = make(map[uintptr]any)
	}
	gstate[g] = v
	gmutex.Unlock()
}

// Clear removes the local state of the calling goroutine.
func Clear() {
	g := getg()
	gmutex.Lock()
	delete(gstate, g)
	gmutex.Unlock()
}
