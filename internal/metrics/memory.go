package metrics

import (
	"runtime"
	"runtime/pprof"
)

// RuntimeSnapshot holds a point-in-time reading of the benchmark process.
type RuntimeSnapshot struct {
	HeapAlloc      uint64 // bytes in use by application
	Sys            uint64 // total bytes obtained from OS
	NumGC          uint32 // number of completed GC cycles
	Goroutines     int
	ThreadsCreated int // OS threads created so far, never decreases
}

// RuntimeCollector reads runtime statistics. Locked threads of the
// detached-thread strategy are discarded when their goroutine exits, so
// ThreadsCreated grows with every such run.
type RuntimeCollector struct {
	threads *pprof.Profile
}

// NewRuntimeCollector creates a new collector.
func NewRuntimeCollector() *RuntimeCollector {
	return &RuntimeCollector{threads: pprof.Lookup("threadcreate")}
}

// Snapshot reads current statistics.
func (rc *RuntimeCollector) Snapshot() RuntimeSnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return RuntimeSnapshot{
		HeapAlloc:      m.HeapAlloc,
		Sys:            m.Sys,
		NumGC:          m.NumGC,
		Goroutines:     runtime.NumGoroutine(),
		ThreadsCreated: rc.threads.Count(),
	}
}

// Delta returns how much each monotonic counter grew from before to after.
func Delta(before, after RuntimeSnapshot) RuntimeSnapshot {
	return RuntimeSnapshot{
		HeapAlloc:      after.HeapAlloc,
		Sys:            after.Sys,
		NumGC:          after.NumGC - before.NumGC,
		Goroutines:     after.Goroutines,
		ThreadsCreated: after.ThreadsCreated - before.ThreadsCreated,
	}
}
