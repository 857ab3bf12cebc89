package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/stratbench/internal/strategy"
	"github.com/agbru/stratbench/internal/workload"
)

// ProgressReporter defines the interface for displaying comparison progress.
// This interface decouples the orchestration layer from the presentation layer,
// following Clean Architecture principles where business logic should not
// depend on UI concerns.
type ProgressReporter interface {
	// DisplayProgress starts displaying progress updates from the channel.
	// It should be called in a separate goroutine and will run until the
	// progressChan is closed.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving strategy start/finish updates.
	//   - numStrategies: The number of strategies in the comparison.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numStrategies int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numStrategies int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numStrategies int, out io.Writer) {
	f(wg, progressChan, numStrategies, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting a finished comparison.
type ResultPresenter interface {
	// PresentComparison displays the per-strategy timings.
	PresentComparison(results ResultSet, out io.Writer)
}

// ErrorHandler handles comparison errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, out io.Writer) int
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// Observer receives the measurements of successful comparisons and the
// outcome of every comparison. Strategy observations are only delivered once
// the whole comparison succeeded, so an aborted run leaves no partial data.
type Observer interface {
	ObserveStrategy(kind strategy.Kind, task workload.TaskKind, elapsed time.Duration)
	ObserveComparison(task workload.TaskKind, err error)
}

// NopObserver discards all observations.
type NopObserver struct{}

// ObserveStrategy does nothing.
func (NopObserver) ObserveStrategy(strategy.Kind, workload.TaskKind, time.Duration) {}

// ObserveComparison does nothing.
func (NopObserver) ObserveComparison(workload.TaskKind, error) {}
