package strategy

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/stratbench/internal/cpu"
	"github.com/agbru/stratbench/internal/logging"
	"github.com/agbru/stratbench/internal/workload"
)

// DetachedThreads starts one goroutine per chunk and locks each to its own OS
// thread. The lock is never released, so the runtime discards the thread once
// the chunk is done instead of returning it to the scheduler.
//
// The threads are marked detached: nothing would keep the process alive for
// them. Run still joins every one of them before returning, so the marking has
// no effect on elapsed time compared to ThreadPool. That parity is intended.
type DetachedThreads struct {
	task   TaskFunc
	pin    bool
	logger logging.Logger
}

// NewDetachedThreads creates a thread-per-chunk strategy.
func NewDetachedThreads(opts Options) *DetachedThreads {
	opts = opts.withDefaults()
	return &DetachedThreads{task: opts.Task, pin: opts.PinThreads, logger: opts.Logger}
}

// Kind returns KindDetachedThreads.
func (d *DetachedThreads) Kind() Kind { return KindDetachedThreads }

// Detached reports that the threads do not block process exit.
func (d *DetachedThreads) Detached() bool { return true }

// Run starts a dedicated thread per chunk and joins all of them.
func (d *DetachedThreads) Run(ctx context.Context, spec workload.Spec) error {
	chunks := workload.Partition(spec.Iterations(), spec.Workers())

	var g errgroup.Group
	for i, r := range chunks {
		g.Go(func() error {
			runtime.LockOSThread()
			if d.pin {
				if _, err := cpu.Pin(i); err != nil {
					d.logger.Debug("cpu pinning unavailable", logging.Int("worker", i), logging.Err(err))
				}
			}
			d.logger.Debug("thread started",
				logging.String("strategy", KindDetachedThreads.String()),
				logging.Int("worker", i),
				logging.Int("tid", cpu.ThreadID()),
				logging.Field{Key: "detached", Value: true})

			if err := runChunk(d.task, spec.Task(), r); err != nil {
				return fault(KindDetachedThreads, i, err)
			}
			return nil
		})
	}
	markSubmitted(ctx, len(chunks))

	// Explicit join despite the detached marking.
	return g.Wait()
}
