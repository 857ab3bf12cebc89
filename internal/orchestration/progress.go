package orchestration

import (
	"time"

	"github.com/agbru/stratbench/internal/format"
	"github.com/agbru/stratbench/internal/strategy"
)

// Phase is the lifecycle step a progress update reports.
type Phase int

const (
	// PhaseStarted is sent right before a strategy is dispatched.
	PhaseStarted Phase = iota
	// PhaseFinished is sent when a strategy completed all its chunks.
	PhaseFinished
	// PhaseFailed is sent when a strategy faulted; no further strategy runs.
	PhaseFailed
)

// String returns a lowercase label for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseStarted:
		return "started"
	case PhaseFinished:
		return "finished"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// ProgressUpdate reports a strategy transition during a comparison.
type ProgressUpdate struct {
	// Index is the position of the strategy in execution order.
	Index int
	// Strategy is the kind that changed phase.
	Strategy strategy.Kind
	// Phase is the new lifecycle step.
	Phase Phase
	// Elapsed is the measured time; zero for PhaseStarted.
	Elapsed time.Duration
}

// ProgressTracker aggregates strategy transitions into an overall fraction
// and a remaining-time estimate. Both CLI and TUI use it so the aggregation
// is not duplicated.
type ProgressTracker struct {
	state         *format.ProgressWithETA
	numStrategies int
}

// NewProgressTracker creates a tracker for the given number of strategies.
// Returns nil if numStrategies <= 0.
func NewProgressTracker(numStrategies int) *ProgressTracker {
	if numStrategies <= 0 {
		return nil
	}
	return &ProgressTracker{
		state:         format.NewProgressWithETA(numStrategies),
		numStrategies: numStrategies,
	}
}

// TrackedProgress holds the result of processing a single update.
type TrackedProgress struct {
	Update ProgressUpdate
	// Completed is the fraction of strategies that finished (0.0 to 1.0).
	Completed float64
	// ETA is the estimated time until the last strategy finishes.
	ETA time.Duration
}

// Update processes one update and returns the aggregated result. A started
// strategy counts as no progress; finished and failed count as done.
func (t *ProgressTracker) Update(update ProgressUpdate) TrackedProgress {
	value := 0.0
	if update.Phase != PhaseStarted {
		value = 1
	}
	completed, eta := t.state.UpdateWithETA(update.Index, value)
	return TrackedProgress{Update: update, Completed: completed, ETA: eta}
}

// Completed returns the current fraction without updating.
func (t *ProgressTracker) Completed() float64 {
	return t.state.CalculateAverage()
}

// ETA returns the current estimate without updating.
func (t *ProgressTracker) ETA() time.Duration {
	return t.state.GetETA()
}

// NumStrategies returns the number of strategies being tracked.
func (t *ProgressTracker) NumStrategies() int {
	return t.numStrategies
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
