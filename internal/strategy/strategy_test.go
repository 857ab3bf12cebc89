package strategy

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"slices"
	"strings"
	"sync"
	"testing"

	apperrors "github.com/agbru/stratbench/internal/errors"
	"github.com/agbru/stratbench/internal/logging"
	"github.com/agbru/stratbench/internal/workload"
)

// testModeEnv selects the behavior of the helper worker process.
const testModeEnv = "STRATBENCH_TEST_WORKER_MODE"

// TestMain doubles as the process-pool worker: when the test binary is
// re-executed by SelfLauncher it serves jobs instead of running tests.
func TestMain(m *testing.M) {
	if IsWorkerProcess() {
		switch os.Getenv(testModeEnv) {
		case "panic":
			err := ServeWorker(os.Stdin, os.Stdout, func(workload.TaskKind, workload.Range) error {
				panic("injected worker fault")
			})
			if err != nil {
				os.Exit(1)
			}
			os.Exit(0)
		case "crash":
			os.Exit(3)
		default:
			os.Exit(RunWorkerProcess())
		}
	}
	os.Exit(m.Run())
}

// recorder is a TaskFunc that remembers every range it was given.
type recorder struct {
	mu     sync.Mutex
	ranges []workload.Range
}

func (r *recorder) task(kind workload.TaskKind, rng workload.Range) error {
	r.mu.Lock()
	r.ranges = append(r.ranges, rng)
	r.mu.Unlock()
	return workload.Execute(kind, rng)
}

func (r *recorder) sorted() []workload.Range {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := slices.Clone(r.ranges)
	slices.SortFunc(out, func(a, b workload.Range) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.End - b.End
	})
	return out
}

func TestKinds_ExecutionOrder(t *testing.T) {
	t.Parallel()
	want := []string{"threads", "processes", "daemon-threads", "async"}
	kinds := Kinds()
	if len(kinds) != len(want) {
		t.Fatalf("Kinds() has %d entries, want %d", len(kinds), len(want))
	}
	for i, k := range kinds {
		if k.String() != want[i] {
			t.Errorf("Kinds()[%d] = %q, want %q", i, k, want[i])
		}
	}

	all := All(Options{})
	for i, s := range all {
		if s.Kind() != kinds[i] {
			t.Errorf("All()[%d].Kind() = %v, want %v", i, s.Kind(), kinds[i])
		}
	}
}

func TestNew(t *testing.T) {
	t.Parallel()
	for _, k := range Kinds() {
		s, err := New(k, Options{})
		if err != nil {
			t.Fatalf("New(%v) error: %v", k, err)
		}
		if s.Kind() != k {
			t.Errorf("New(%v).Kind() = %v", k, s.Kind())
		}
	}
	if _, err := New(Kind(99), Options{}); err == nil {
		t.Error("New with unknown kind should fail")
	}
}

func TestInProcessStrategies_ProcessPartitionedRanges(t *testing.T) {
	t.Parallel()
	spec := workload.MustSpec(workload.Sum, 1000, 4)
	want := workload.Partition(1000, 4)

	constructors := map[string]func(Options) Strategy{
		"threads":        func(o Options) Strategy { return NewThreadPool(o) },
		"daemon-threads": func(o Options) Strategy { return NewDetachedThreads(o) },
	}
	for name, newStrategy := range constructors {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			rec := &recorder{}
			s := newStrategy(Options{Task: rec.task})
			if err := s.Run(context.Background(), spec); err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			if got := rec.sorted(); !slices.Equal(got, want) {
				t.Errorf("processed %v, want %v", got, want)
			}
		})
	}
}

func TestThreadPoolAndDetached_SameWork(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct{ iterations, workers int }{{1000, 4}, {7, 3}, {2, 5}, {100000, 16}} {
		spec := workload.MustSpec(workload.Exponential, tc.iterations, tc.workers)

		pool, detached := &recorder{}, &recorder{}
		if err := NewThreadPool(Options{Task: pool.task}).Run(context.Background(), spec); err != nil {
			t.Fatal(err)
		}
		if err := NewDetachedThreads(Options{Task: detached.task, PinThreads: true}).Run(context.Background(), spec); err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(pool.sorted(), detached.sorted()) {
			t.Errorf("%d/%d: pool processed %v, detached processed %v",
				tc.iterations, tc.workers, pool.sorted(), detached.sorted())
		}
	}
}

func TestCooperative_IgnoresWorkerCount(t *testing.T) {
	t.Parallel()
	for _, workers := range []int{1, 3, 8, 64} {
		rec := &recorder{}
		spec := workload.MustSpec(workload.Fibonacci, 5000, workers)
		if err := NewCooperative(Options{Task: rec.task}).Run(context.Background(), spec); err != nil {
			t.Fatalf("workers=%d: Run() error: %v", workers, err)
		}
		want := []workload.Range{{Start: 0, End: 5000}}
		if got := rec.sorted(); !slices.Equal(got, want) {
			t.Errorf("workers=%d: processed %v, want %v", workers, got, want)
		}
	}
}

func TestCooperative_LogsLoopCallbacks(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := logging.NewStdLoggerAdapter(log.New(&buf, "", 0))
	spec := workload.MustSpec(workload.Sum, 100, 4)
	if err := NewCooperative(Options{Logger: logger}).Run(context.Background(), spec); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	// One callback delegates the domain, one receives the completion.
	if !strings.Contains(buf.String(), "loop drained strategy=async callbacks=2") {
		t.Errorf("missing loop summary in logs:\n%s", buf.String())
	}
}

func TestInProcessStrategies_SurfaceWorkerFault(t *testing.T) {
	t.Parallel()
	spec := workload.MustSpec(workload.Sum, 100, 4)
	faulty := func(_ workload.TaskKind, r workload.Range) error {
		if r.Start == 0 {
			panic("chunk exploded")
		}
		return nil
	}

	for _, s := range []Strategy{
		NewThreadPool(Options{Task: faulty}),
		NewDetachedThreads(Options{Task: faulty}),
		NewCooperative(Options{Task: faulty}),
	} {
		t.Run(s.Kind().String(), func(t *testing.T) {
			t.Parallel()
			err := s.Run(context.Background(), spec)
			var faultErr apperrors.WorkerFaultError
			if !errors.As(err, &faultErr) {
				t.Fatalf("expected WorkerFaultError, got %v", err)
			}
			if faultErr.Strategy != s.Kind().String() {
				t.Errorf("Strategy = %q, want %q", faultErr.Strategy, s.Kind())
			}
			if faultErr.Worker != 0 {
				t.Errorf("Worker = %d, want 0", faultErr.Worker)
			}
		})
	}
}

func TestInProcessStrategies_ReturnedErrorIsFault(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	spec := workload.MustSpec(workload.Sum, 10, 2)
	failing := func(workload.TaskKind, workload.Range) error { return boom }

	for _, s := range []Strategy{
		NewThreadPool(Options{Task: failing}),
		NewDetachedThreads(Options{Task: failing}),
		NewCooperative(Options{Task: failing}),
	} {
		if err := s.Run(context.Background(), spec); !errors.Is(err, boom) {
			t.Errorf("%s: expected error wrapping boom, got %v", s.Kind(), err)
		}
	}
}

func TestDetachedThreads_IsDetached(t *testing.T) {
	t.Parallel()
	if !NewDetachedThreads(Options{}).Detached() {
		t.Error("detached strategy should report Detached() == true")
	}
}
