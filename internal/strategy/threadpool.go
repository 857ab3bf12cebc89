package strategy

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/stratbench/internal/logging"
	"github.com/agbru/stratbench/internal/workload"
)

// ThreadPool runs the chunks on a fixed pool of Workers goroutines that share
// process memory. Chunks are disjoint, so workers need no locking.
type ThreadPool struct {
	task   TaskFunc
	logger logging.Logger
}

// NewThreadPool creates a goroutine pool strategy.
func NewThreadPool(opts Options) *ThreadPool {
	opts = opts.withDefaults()
	return &ThreadPool{task: opts.Task, logger: opts.Logger}
}

// Kind returns KindThreads.
func (p *ThreadPool) Kind() Kind { return KindThreads }

// Run submits one job per chunk to the pool, then waits for every job.
func (p *ThreadPool) Run(ctx context.Context, spec workload.Spec) error {
	chunks := workload.Partition(spec.Iterations(), spec.Workers())
	jobs := enqueue(chunks)
	markSubmitted(ctx, len(chunks))

	var g errgroup.Group
	for w := range spec.Workers() {
		g.Go(func() error {
			for j := range jobs {
				if err := runChunk(p.task, spec.Task(), j.rng); err != nil {
					return fault(KindThreads, j.index, err)
				}
				p.logger.Debug("chunk done",
					logging.String("strategy", KindThreads.String()),
					logging.Int("worker", w),
					logging.String("range", j.rng.String()))
			}
			return nil
		})
	}
	return g.Wait()
}
