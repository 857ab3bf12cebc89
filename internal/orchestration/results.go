package orchestration

import (
	"slices"
	"time"

	"github.com/agbru/stratbench/internal/strategy"
	"github.com/agbru/stratbench/internal/workload"
)

// StrategyResult is the wall-clock measurement of one strategy run.
type StrategyResult struct {
	// Strategy identifies the concurrency model that ran.
	Strategy strategy.Kind
	// Elapsed is the monotonic time between dispatch and completion.
	Elapsed time.Duration
}

// Seconds returns the elapsed time in seconds.
func (r StrategyResult) Seconds() float64 {
	return r.Elapsed.Seconds()
}

// ResultSet is the ordered outcome of one comparison, in execution order.
// It is only ever built complete; the orchestrator never returns a partial set.
type ResultSet struct {
	spec    workload.Spec
	results []StrategyResult
}

// Spec returns the workload the results were measured on.
func (rs ResultSet) Spec() workload.Spec { return rs.spec }

// Len returns the number of strategies measured.
func (rs ResultSet) Len() int { return len(rs.results) }

// All returns a copy of the results in execution order.
func (rs ResultSet) All() []StrategyResult { return slices.Clone(rs.results) }

// Get returns the result of the given strategy.
func (rs ResultSet) Get(kind strategy.Kind) (StrategyResult, bool) {
	for _, r := range rs.results {
		if r.Strategy == kind {
			return r, true
		}
	}
	return StrategyResult{}, false
}

// Fastest returns the result with the smallest elapsed time. Ties go to the
// strategy that ran first.
func (rs ResultSet) Fastest() (StrategyResult, bool) {
	if len(rs.results) == 0 {
		return StrategyResult{}, false
	}
	return slices.MinFunc(rs.results, func(a, b StrategyResult) int {
		return compareDurations(a.Elapsed, b.Elapsed)
	}), true
}

// Slowest returns the result with the largest elapsed time.
func (rs ResultSet) Slowest() (StrategyResult, bool) {
	if len(rs.results) == 0 {
		return StrategyResult{}, false
	}
	return slices.MaxFunc(rs.results, func(a, b StrategyResult) int {
		return compareDurations(a.Elapsed, b.Elapsed)
	}), true
}

func compareDurations(a, b time.Duration) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
