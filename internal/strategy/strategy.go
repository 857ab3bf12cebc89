//go:generate mockgen -source=strategy.go -destination=mocks/mock_strategy.go -package=mocks

// Package strategy implements the four concurrency models under comparison.
// The set is closed: each variant has its own Run with its own scheduling
// and wait discipline, and there is deliberately no shared
// partition-then-dispatch path between them.
package strategy

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/stratbench/internal/errors"
	"github.com/agbru/stratbench/internal/logging"
	"github.com/agbru/stratbench/internal/workload"
)

// Kind identifies a strategy variant.
type Kind int

const (
	// KindThreads is the fixed-size shared-memory worker pool.
	KindThreads Kind = iota
	// KindProcesses is the fixed-size pool of OS worker processes.
	KindProcesses
	// KindDetachedThreads is one dedicated OS thread per chunk, marked
	// detached but still joined.
	KindDetachedThreads
	// KindCooperative is single cooperative-loop delegation of the whole domain.
	KindCooperative
)

var kindNames = [...]string{
	KindThreads:         "threads",
	KindProcesses:       "processes",
	KindDetachedThreads: "daemon-threads",
	KindCooperative:     "async",
}

// Kinds returns every strategy kind in execution order.
func Kinds() []Kind {
	return []Kind{KindThreads, KindProcesses, KindDetachedThreads, KindCooperative}
}

// String returns the stable identifier of the strategy.
func (k Kind) String() string {
	if k >= KindThreads && k <= KindCooperative {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Strategy executes a workload under one concurrency model and blocks until
// every chunk has completed.
//
// The context carries trace data only. Runs are not cancellable: a Run either
// completes or faults.
type Strategy interface {
	Kind() Kind
	Run(ctx context.Context, spec workload.Spec) error
}

// TaskFunc executes one chunk of work. The default is workload.Execute.
type TaskFunc func(kind workload.TaskKind, r workload.Range) error

// Options configure strategy construction.
type Options struct {
	// Task runs a chunk in-process. It is ignored by the process pool, whose
	// children always run workload.Execute.
	Task TaskFunc
	// PinThreads pins each detached thread to a CPU (Linux only).
	PinThreads bool
	// Launcher builds the command of a worker process. Defaults to SelfLauncher.
	Launcher Launcher
	// Logger receives debug traces of dispatch and join.
	Logger logging.Logger
}

func (o Options) withDefaults() Options {
	if o.Task == nil {
		o.Task = workload.Execute
	}
	if o.Launcher == nil {
		o.Launcher = SelfLauncher
	}
	if o.Logger == nil {
		o.Logger = logging.NopLogger()
	}
	return o
}

// New returns the strategy of the given kind.
func New(kind Kind, opts Options) (Strategy, error) {
	switch kind {
	case KindThreads:
		return NewThreadPool(opts), nil
	case KindProcesses:
		return NewProcessPool(opts), nil
	case KindDetachedThreads:
		return NewDetachedThreads(opts), nil
	case KindCooperative:
		return NewCooperative(opts), nil
	}
	return nil, fmt.Errorf("unknown strategy kind %d", int(kind))
}

// All returns one strategy of each kind, in execution order.
func All(opts Options) []Strategy {
	return []Strategy{
		NewThreadPool(opts),
		NewProcessPool(opts),
		NewDetachedThreads(opts),
		NewCooperative(opts),
	}
}

// job is one chunk handed to a worker.
type job struct {
	index int
	rng   workload.Range
}

func enqueue(chunks []workload.Range) <-chan job {
	jobs := make(chan job, len(chunks))
	for i, r := range chunks {
		jobs <- job{index: i, rng: r}
	}
	close(jobs)
	return jobs
}

// runChunk invokes task and converts a panic into an error.
func runChunk(task TaskFunc, kind workload.TaskKind, r workload.Range) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return task(kind, r)
}

func fault(kind Kind, worker int, cause error) error {
	return apperrors.WorkerFaultError{Strategy: kind.String(), Worker: worker, Cause: cause}
}

// markSubmitted records on the active span that every chunk was handed out
// and the strategy is about to wait.
func markSubmitted(ctx context.Context, chunks int) {
	trace.SpanFromContext(ctx).AddEvent("chunks submitted", trace.WithAttributes(attribute.Int("chunks", chunks)))
}
