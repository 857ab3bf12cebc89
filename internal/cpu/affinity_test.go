package cpu

import (
	"runtime"
	"testing"
)

func TestPin_WrapsWorkerIndex(t *testing.T) {
	// Left locked on purpose: the pinned thread is discarded when the test
	// goroutine exits instead of returning to the scheduler.
	runtime.LockOSThread()

	got, err := Pin(runtime.NumCPU() + 1)
	if err != nil {
		t.Skipf("pinning not permitted here: %v", err)
	}
	if PinningSupported && got != 1%runtime.NumCPU() {
		t.Errorf("Pin(NumCPU+1) pinned to %d, want %d", got, 1%runtime.NumCPU())
	}
}

func TestThreadID_Positive(t *testing.T) {
	if ThreadID() <= 0 {
		t.Errorf("ThreadID() = %d, want > 0", ThreadID())
	}
}
