package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/stratbench/internal/errors"
	"github.com/agbru/stratbench/internal/logging"
	"github.com/agbru/stratbench/internal/strategy"
	"github.com/agbru/stratbench/internal/workload"
)

const tracerName = "github.com/agbru/stratbench/internal/orchestration"

// ProgressBufferMultiplier sizes the progress channel per strategy: one
// started update plus one finished or failed update. With this buffer the
// comparison never blocks on a slow UI.
const ProgressBufferMultiplier = 2

// Completion is the single value delivered by CompareAsync.
type Completion struct {
	Results ResultSet
	Err     error
}

// Orchestrator runs a fixed, ordered set of strategies against one workload.
// Comparisons are serialized: a second Compare waits for the first so that
// two benchmarks never compete for the CPU.
type Orchestrator struct {
	strategies []strategy.Strategy
	logger     logging.Logger
	observer   Observer
	now        func() time.Time
	tracer     trace.Tracer

	mu sync.Mutex
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger used for debug traces of each run.
func WithLogger(l logging.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver sets the sink for measurements.
func WithObserver(obs Observer) Option {
	return func(o *Orchestrator) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithClock replaces time.Now. Readings must be monotonic.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// WithTracer overrides the global otel tracer.
func WithTracer(t trace.Tracer) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.tracer = t
		}
	}
}

// New creates an orchestrator that runs strategies in the given order.
func New(strategies []strategy.Strategy, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		strategies: strategies,
		logger:     logging.NopLogger(),
		observer:   NopObserver{},
		now:        time.Now,
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewDefault creates an orchestrator over the four strategies in their
// canonical order: threads, processes, daemon-threads, async.
func NewDefault(stratOpts strategy.Options, opts ...Option) *Orchestrator {
	return New(strategy.All(stratOpts), opts...)
}

// NumStrategies returns how many strategies a comparison runs.
func (o *Orchestrator) NumStrategies() int {
	return len(o.strategies)
}

// Compare validates spec and runs every strategy on it in sequence.
// It returns either a complete ResultSet or the first error; partial
// measurements are discarded.
func (o *Orchestrator) Compare(ctx context.Context, spec workload.Spec) (ResultSet, error) {
	c := <-o.start(ctx, spec, nil)
	return c.Results, c.Err
}

// CompareAsync runs the comparison on its own goroutine. The returned
// channel delivers exactly one Completion and is then closed.
func (o *Orchestrator) CompareAsync(ctx context.Context, spec workload.Spec) <-chan Completion {
	return o.start(ctx, spec, nil)
}

func (o *Orchestrator) start(ctx context.Context, spec workload.Spec, progress chan<- ProgressUpdate) <-chan Completion {
	done := make(chan Completion, 1)
	go func() {
		defer close(done)
		results, err := o.compare(ctx, spec, progress)
		done <- Completion{Results: results, Err: err}
	}()
	return done
}

func (o *Orchestrator) compare(ctx context.Context, spec workload.Spec, progress chan<- ProgressUpdate) (ResultSet, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	ctx, span := o.tracer.Start(ctx, "compare", trace.WithAttributes(
		attribute.String("task", spec.Task().String()),
		attribute.Int("iterations", spec.Iterations()),
		attribute.Int("workers", spec.Workers()),
	))
	defer span.End()

	if err := spec.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		o.observer.ObserveComparison(spec.Task(), err)
		return ResultSet{}, err
	}

	o.logger.Debug("comparison started",
		logging.String("workload", spec.String()),
		logging.Int("strategies", len(o.strategies)))

	results := make([]StrategyResult, 0, len(o.strategies))
	for i, s := range o.strategies {
		res, err := o.runOne(ctx, i, s, spec, progress)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			o.observer.ObserveComparison(spec.Task(), err)
			o.logger.Error("comparison aborted", err, logging.String("strategy", s.Kind().String()))
			return ResultSet{}, err
		}
		results = append(results, res)
	}

	for _, r := range results {
		o.observer.ObserveStrategy(r.Strategy, spec.Task(), r.Elapsed)
	}
	o.observer.ObserveComparison(spec.Task(), nil)
	o.logger.Debug("comparison finished", logging.String("workload", spec.String()))
	return ResultSet{spec: spec, results: results}, nil
}

func (o *Orchestrator) runOne(ctx context.Context, index int, s strategy.Strategy, spec workload.Spec, progress chan<- ProgressUpdate) (StrategyResult, error) {
	kind := s.Kind()
	ctx, span := o.tracer.Start(ctx, kind.String())
	defer span.End()

	send(progress, ProgressUpdate{Index: index, Strategy: kind, Phase: PhaseStarted})

	start := o.now()
	err := s.Run(ctx, spec)
	elapsed := o.now().Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}

	if err != nil {
		err = asStrategyError(kind, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		send(progress, ProgressUpdate{Index: index, Strategy: kind, Phase: PhaseFailed, Elapsed: elapsed})
		return StrategyResult{}, err
	}

	span.SetAttributes(attribute.Float64("elapsed_seconds", elapsed.Seconds()))
	o.logger.Debug("strategy finished",
		logging.String("strategy", kind.String()),
		logging.Duration("elapsed", elapsed))
	send(progress, ProgressUpdate{Index: index, Strategy: kind, Phase: PhaseFinished, Elapsed: elapsed})
	return StrategyResult{Strategy: kind, Elapsed: elapsed}, nil
}

// asStrategyError keeps typed strategy errors and reports anything else as a
// fault of the strategy as a whole.
func asStrategyError(kind strategy.Kind, err error) error {
	var faultErr apperrors.WorkerFaultError
	var resErr apperrors.ResourceExhaustionError
	if errors.As(err, &faultErr) || errors.As(err, &resErr) {
		return err
	}
	return apperrors.WorkerFaultError{Strategy: kind.String(), Worker: -1, Cause: err}
}

func send(progress chan<- ProgressUpdate, u ProgressUpdate) {
	if progress != nil {
		progress <- u
	}
}

// ExecuteComparison runs a comparison while the reporter displays its
// progress. It returns once both the comparison and the reporter are done.
//
// Parameters:
//   - ctx: Carries trace data; comparisons are not cancellable.
//   - o: The orchestrator to run.
//   - spec: The workload to compare on.
//   - reporter: The progress reporter (use NullProgressReporter for quiet mode).
//   - out: The io.Writer passed to the reporter.
func ExecuteComparison(ctx context.Context, o *Orchestrator, spec workload.Spec, reporter ProgressReporter, out io.Writer) (ResultSet, error) {
	n := o.NumStrategies()
	progressChan := make(chan ProgressUpdate, max(1, n*ProgressBufferMultiplier))

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, n, out)

	c := <-o.start(ctx, spec, progressChan)
	close(progressChan)
	displayWg.Wait()

	return c.Results, c.Err
}

// PresentOutcome hands a successful comparison to the presenter, or the
// error to the handler, and returns the process exit code.
func PresentOutcome(results ResultSet, err error, presenter ResultPresenter, handler ErrorHandler, out io.Writer) int {
	if err != nil {
		return handler.HandleError(err, out)
	}
	if results.Len() == 0 {
		fmt.Fprintln(out, "No strategy was run.")
		return apperrors.ExitErrorGeneric
	}
	presenter.PresentComparison(results, out)
	return apperrors.ExitSuccess
}
