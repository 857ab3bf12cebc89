//go:build !linux

package cpu

import "os"

// PinningSupported reports whether Pin changes the thread's CPU set.
const PinningSupported = false

// Pin is a no-op outside Linux; the scheduler keeps full control of
// thread placement.
func Pin(cpuID int) (int, error) {
	return cpuID, nil
}

// ThreadID has no portable equivalent outside Linux and returns the process id.
func ThreadID() int {
	return os.Getpid()
}
