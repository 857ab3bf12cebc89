//go:build linux

package cpu

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// PinningSupported reports whether Pin changes the thread's CPU set.
const PinningSupported = true

// Pin restricts the calling OS thread to a single logical CPU.
// The caller must hold runtime.LockOSThread, otherwise the goroutine may
// migrate away from the pinned thread.
//
// cpuID wraps around runtime.NumCPU(), so worker indices can be passed as is.
func Pin(cpuID int) (int, error) {
	numCPU := runtime.NumCPU()
	if cpuID < 0 || cpuID >= numCPU {
		cpuID = ((cpuID % numCPU) + numCPU) % numCPU
	}

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(cpuID)

	if err := unix.SchedSetaffinity(0, &mask); err != nil { // 0 = current thread
		return 0, err
	}
	return cpuID, nil
}

// ThreadID returns the kernel id of the calling OS thread.
func ThreadID() int {
	return unix.Gettid()
}
