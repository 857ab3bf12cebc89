package cli

import (
	"context"
	"sync"
	"time"

	"github.com/agbru/stratbench/internal/orchestration"
	"github.com/agbru/stratbench/internal/strategy"
	"github.com/agbru/stratbench/internal/workload"
)

// fakeStrategy returns err without doing any work.
type fakeStrategy struct {
	kind strategy.Kind
	err  error
}

func (f fakeStrategy) Kind() strategy.Kind { return f.kind }

func (f fakeStrategy) Run(context.Context, workload.Spec) error { return f.err }

// scriptedClock makes the i-th strategy measure durs[i]. The orchestrator
// reads the clock once before and once after each run.
func scriptedClock(durs ...time.Duration) func() time.Time {
	var mu sync.Mutex
	now := time.Unix(0, 0)
	calls := 0
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		if calls%2 == 1 {
			now = now.Add(durs[(calls/2)%len(durs)])
		}
		calls++
		return now
	}
}

// fakeOrchestrator runs the four kinds with the given measured times and
// fails the strategy of kind failing with err, if err is non-nil.
func fakeOrchestrator(failing strategy.Kind, err error, durs ...time.Duration) *orchestration.Orchestrator {
	ss := make([]strategy.Strategy, 0, len(strategy.Kinds()))
	for _, k := range strategy.Kinds() {
		s := fakeStrategy{kind: k}
		if k == failing {
			s.err = err
		}
		ss = append(ss, s)
	}
	return orchestration.New(ss, orchestration.WithClock(scriptedClock(durs...)))
}

// sampleResults returns a completed comparison where threads took 20ms,
// processes 80ms, daemon threads 10ms and async 40ms.
func sampleResults() orchestration.ResultSet {
	o := fakeOrchestrator(-1, nil, 20*time.Millisecond, 80*time.Millisecond, 10*time.Millisecond, 40*time.Millisecond)
	rs, err := o.Compare(context.Background(), workload.MustSpec(workload.Sum, 1000, 4))
	if err != nil {
		panic(err)
	}
	return rs
}
