package strategy

import (
	"context"

	"github.com/agbru/stratbench/internal/logging"
	"github.com/agbru/stratbench/internal/workload"
)

// Cooperative runs an event loop on the calling goroutine and delegates the
// entire iteration domain, as a single unit of work, to one background
// executor slot. The loop suspends until the slot posts its completion back.
//
// The workload's worker count is ignored: no partitioning happens here, so
// timings are not comparable per worker with the other strategies.
type Cooperative struct {
	task   TaskFunc
	logger logging.Logger
}

// NewCooperative creates a single-loop delegation strategy.
func NewCooperative(opts Options) *Cooperative {
	opts = opts.withDefaults()
	return &Cooperative{task: opts.Task, logger: opts.Logger}
}

// Kind returns KindCooperative.
func (c *Cooperative) Kind() Kind { return KindCooperative }

// Run delegates [0, Iterations) to the executor slot and waits on the loop.
func (c *Cooperative) Run(ctx context.Context, spec workload.Spec) error {
	loop := NewEventLoop()
	slot := newExecutorSlot()
	defer slot.shutdown()

	domain := spec.Domain()
	var runErr error

	loop.Post(func() {
		slot.submit(func() {
			err := runChunk(c.task, spec.Task(), domain)
			loop.Post(func() {
				runErr = err
				loop.Stop()
			})
		})
		markSubmitted(ctx, 1)
		c.logger.Debug("delegated domain",
			logging.String("strategy", KindCooperative.String()),
			logging.String("range", domain.String()))
	})
	loop.Run()
	c.logger.Debug("loop drained",
		logging.String("strategy", KindCooperative.String()),
		logging.Int("callbacks", loop.Processed()))

	if runErr != nil {
		return fault(KindCooperative, 0, runErr)
	}
	return nil
}
