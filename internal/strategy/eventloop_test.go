package strategy

import (
	"slices"
	"sync"
	"testing"
	"time"
)

func TestEventLoop_RunsCallbacksInOrder(t *testing.T) {
	t.Parallel()
	loop := NewEventLoop()
	var order []int
	for i := range 5 {
		loop.Post(func() { order = append(order, i) })
	}
	loop.Post(loop.Stop)
	loop.Run()

	if !slices.Equal(order, []int{0, 1, 2, 3, 4}) {
		t.Errorf("order = %v", order)
	}
	if loop.Processed() != 6 {
		t.Errorf("Processed() = %d, want 6", loop.Processed())
	}
}

func TestEventLoop_SuspendsUntilPostedFromOutside(t *testing.T) {
	t.Parallel()
	loop := NewEventLoop()
	done := make(chan struct{})
	go func() {
		loop.Run()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("loop returned while idle and not stopped")
	case <-time.After(20 * time.Millisecond):
	}

	var wg sync.WaitGroup
	wg.Add(1)
	loop.Post(func() { wg.Done() })
	wg.Wait()
	loop.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestEventLoop_StopDrainsQueue(t *testing.T) {
	t.Parallel()
	loop := NewEventLoop()
	ran := 0
	loop.Post(func() { ran++ })
	loop.Post(func() { ran++ })
	loop.Stop()
	loop.Run()
	if ran != 2 {
		t.Errorf("ran %d callbacks, want 2", ran)
	}
}

func TestExecutorSlot_RunsOffLoop(t *testing.T) {
	t.Parallel()
	slot := newExecutorSlot()
	result := make(chan int, 1)
	slot.submit(func() { result <- 42 })
	if got := <-result; got != 42 {
		t.Errorf("got %d", got)
	}
	slot.shutdown()
}
