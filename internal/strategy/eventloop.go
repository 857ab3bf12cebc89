package strategy

import (
	"sync"

	"github.com/eapache/queue"
)

// EventLoop is a single-threaded cooperative scheduler. Callbacks posted from
// any goroutine run one at a time, in FIFO order, on the goroutine that
// called Run.
type EventLoop struct {
	mu        sync.Mutex
	cond      *sync.Cond
	pending   *queue.Queue
	stopped   bool
	processed int
}

// NewEventLoop creates an idle loop.
func NewEventLoop() *EventLoop {
	l := &EventLoop{pending: queue.New()}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// Post schedules fn on the loop. Safe for concurrent use.
func (l *EventLoop) Post(fn func()) {
	l.mu.Lock()
	l.pending.Add(fn)
	l.mu.Unlock()
	l.cond.Signal()
}

// Stop asks Run to return once the callbacks already queued have run.
func (l *EventLoop) Stop() {
	l.mu.Lock()
	l.stopped = true
	l.mu.Unlock()
	l.cond.Signal()
}

// Run executes callbacks until Stop is called and the queue is drained.
// While the queue is empty the loop is suspended.
func (l *EventLoop) Run() {
	for {
		l.mu.Lock()
		for l.pending.Length() == 0 && !l.stopped {
			l.cond.Wait()
		}
		if l.pending.Length() == 0 {
			l.mu.Unlock()
			return
		}
		fn := l.pending.Remove().(func())
		l.processed++
		l.mu.Unlock()

		fn()
	}
}

// Processed returns the number of callbacks run so far.
func (l *EventLoop) Processed() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.processed
}

// executorSlot is a single background goroutine accepting delegated work.
type executorSlot struct {
	work chan func()
	done chan struct{}
}

func newExecutorSlot() *executorSlot {
	s := &executorSlot{work: make(chan func(), 1), done: make(chan struct{})}
	go func() {
		defer close(s.done)
		for fn := range s.work {
			fn()
		}
	}()
	return s
}

func (s *executorSlot) submit(fn func()) { s.work <- fn }

// shutdown stops accepting work and waits for the slot goroutine to exit.
func (s *executorSlot) shutdown() {
	close(s.work)
	<-s.done
}
