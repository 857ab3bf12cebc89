package orchestration

import (
	"testing"
	"time"

	"github.com/agbru/stratbench/internal/strategy"
)

func TestResultSet(t *testing.T) {
	t.Parallel()
	rs := ResultSet{results: []StrategyResult{
		{Strategy: strategy.KindThreads, Elapsed: 30 * time.Millisecond},
		{Strategy: strategy.KindProcesses, Elapsed: 90 * time.Millisecond},
		{Strategy: strategy.KindDetachedThreads, Elapsed: 10 * time.Millisecond},
		{Strategy: strategy.KindCooperative, Elapsed: 10 * time.Millisecond},
	}}

	if f, _ := rs.Fastest(); f.Strategy != strategy.KindDetachedThreads {
		t.Errorf("Fastest() = %v, want the first of the tied results", f.Strategy)
	}
	if s, _ := rs.Slowest(); s.Strategy != strategy.KindProcesses {
		t.Errorf("Slowest() = %v", s.Strategy)
	}
	if r, ok := rs.Get(strategy.KindThreads); !ok || r.Seconds() != 0.03 {
		t.Errorf("Get(threads) = %v, %v", r, ok)
	}

	all := rs.All()
	all[0].Elapsed = 0
	if r, _ := rs.Get(strategy.KindThreads); r.Elapsed == 0 {
		t.Error("All() must return a copy")
	}
}

func TestResultSet_Empty(t *testing.T) {
	t.Parallel()
	var rs ResultSet
	if _, ok := rs.Fastest(); ok {
		t.Error("Fastest() on empty set should report false")
	}
	if _, ok := rs.Slowest(); ok {
		t.Error("Slowest() on empty set should report false")
	}
	if _, ok := rs.Get(strategy.KindCooperative); ok {
		t.Error("Get() on empty set should report false")
	}
}

func TestProgressTracker(t *testing.T) {
	t.Parallel()
	if NewProgressTracker(0) != nil {
		t.Error("NewProgressTracker(0) should be nil")
	}

	tr := NewProgressTracker(4)
	p := tr.Update(ProgressUpdate{Index: 0, Strategy: strategy.KindThreads, Phase: PhaseStarted})
	if p.Completed != 0 {
		t.Errorf("started strategy counts as %f", p.Completed)
	}
	p = tr.Update(ProgressUpdate{Index: 0, Strategy: strategy.KindThreads, Phase: PhaseFinished})
	if p.Completed != 0.25 {
		t.Errorf("Completed = %f, want 0.25", p.Completed)
	}
	tr.Update(ProgressUpdate{Index: 1, Phase: PhaseFailed})
	if tr.Completed() != 0.5 {
		t.Errorf("Completed() = %f, want 0.5", tr.Completed())
	}
	if tr.NumStrategies() != 4 {
		t.Errorf("NumStrategies() = %d", tr.NumStrategies())
	}
}

func TestPhaseString(t *testing.T) {
	t.Parallel()
	for p, want := range map[Phase]string{PhaseStarted: "started", PhaseFinished: "finished", PhaseFailed: "failed", Phase(9): "unknown"} {
		if p.String() != want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(p), p.String(), want)
		}
	}
}
