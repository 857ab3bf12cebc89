package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agbru/stratbench/internal/config"
	"github.com/agbru/stratbench/internal/orchestration"
	"github.com/agbru/stratbench/internal/strategy"
	"github.com/agbru/stratbench/internal/ui"
)

func newTestREPL(o *orchestration.Orchestrator, input string) (*REPL, *bytes.Buffer) {
	ui.InitTheme(true)
	r := NewREPL(o, config.DefaultConfig())
	var out bytes.Buffer
	r.SetInput(strings.NewReader(input))
	r.SetOutput(&out)
	r.SetProgressReporter(orchestration.NullProgressReporter{})
	return r, &out
}

func TestREPL_EditAndRun(t *testing.T) {
	o := fakeOrchestrator(-1, nil, time.Millisecond)
	r, out := newTestREPL(o, "task product\nworkers 2\nprocesses 1\nstatus\nrun\nexit\n")
	r.Start(context.Background())

	cfg := r.Config()
	if cfg.Task != "product" || cfg.Workers != 2 || cfg.Processes != 1 {
		t.Errorf("config = %+v", cfg)
	}
	for _, want := range []string{"Interactive Mode", "task updated.", "workers updated.", "Task:        product", "Run #1: product", "Fastest:", "Goodbye!"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output is missing %q:\n%s", want, out.String())
		}
	}
}

func TestREPL_BareNumberSetsIterationsAndRuns(t *testing.T) {
	o := fakeOrchestrator(-1, nil, time.Millisecond)
	r, out := newTestREPL(o, "500\nq\n")
	r.Start(context.Background())

	if r.Config().Iterations != 500 {
		t.Errorf("Iterations = %d, want 500", r.Config().Iterations)
	}
	if !strings.Contains(out.String(), "Run #1") {
		t.Errorf("a bare number should run a comparison:\n%s", out.String())
	}
}

func TestREPL_RejectsInvalidInput(t *testing.T) {
	o := fakeOrchestrator(-1, nil, time.Millisecond)
	r, out := newTestREPL(o, "workers 0\niterations 2000000\ntask bogus\ntask\nfrobnicate\nworkers\n")
	r.Start(context.Background())

	if r.Config() != config.DefaultConfig() {
		t.Errorf("invalid commands changed the config: %+v", r.Config())
	}
	for _, want := range []string{"Invalid value: 0", "iterations must be at most", "bogus", "Usage: task <name>", "Unknown command: frobnicate", "Usage: workers <n>", "Goodbye!"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output is missing %q:\n%s", want, out.String())
		}
	}
	if strings.Contains(out.String(), "Run #") {
		t.Error("no comparison should have run")
	}
}

func TestREPL_FailedRunKeepsSession(t *testing.T) {
	o := fakeOrchestrator(strategy.KindDetachedThreads, errors.New("thread died"), time.Millisecond)
	r, out := newTestREPL(o, "run\nstatus\nexit\n")
	r.Start(context.Background())

	for _, want := range []string{"a worker faulted", "thread died", "Runs so far: 1"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output is missing %q:\n%s", want, out.String())
		}
	}
}

func TestREPL_Help(t *testing.T) {
	o := fakeOrchestrator(-1, nil, time.Millisecond)
	r, out := newTestREPL(o, "help\n")
	r.Start(context.Background())

	if got := strings.Count(out.String(), "Available commands:"); got != 2 {
		t.Errorf("help printed %d times, want 2 (banner and command)", got)
	}
	if !strings.Contains(out.String(), "sum, product, fibonacci, exponential") {
		t.Errorf("help should list tasks:\n%s", out.String())
	}
}
