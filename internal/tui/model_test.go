package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/stratbench/internal/config"
	apperrors "github.com/agbru/stratbench/internal/errors"
	"github.com/agbru/stratbench/internal/orchestration"
	"github.com/agbru/stratbench/internal/strategy"
	"github.com/agbru/stratbench/internal/workload"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel() Model {
	return NewModel(context.Background(), fakeOrchestrator(-1, nil), config.DefaultConfig(), "v1.2.3")
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m, cmd
}

func TestDefaultKeyMap_AllBindingsDefined(t *testing.T) {
	km := DefaultKeyMap()
	bindings := []struct {
		name    string
		binding key.Binding
	}{
		{"Run", km.Run},
		{"CycleTask", km.CycleTask},
		{"MoreWorkers", km.MoreWorkers},
		{"FewerWorkers", km.FewerWorkers},
		{"MoreIterations", km.MoreIterations},
		{"LessIterations", km.LessIterations},
		{"Quit", km.Quit},
	}
	for _, b := range bindings {
		t.Run(b.name, func(t *testing.T) {
			if !b.binding.Enabled() || len(b.binding.Keys()) == 0 {
				t.Errorf("expected %s binding to be enabled with keys", b.name)
			}
		})
	}
}

func TestModel_EditControls(t *testing.T) {
	m, _ := press(t, newTestModel(), "t", "+", "+", "-", "]", "[", "[")
	cfg := m.controls.Config()
	if cfg.Task != "product" {
		t.Errorf("Task = %q, want product", cfg.Task)
	}
	if cfg.Workers != config.DefaultWorkers+1 {
		t.Errorf("Workers = %d, want %d", cfg.Workers, config.DefaultWorkers+1)
	}
	if cfg.Iterations != config.DefaultIterations/10 {
		t.Errorf("Iterations = %d, want %d", cfg.Iterations, config.DefaultIterations/10)
	}
}

func TestControls_Bounds(t *testing.T) {
	c := NewControlsModel(config.DefaultConfig())
	for range 10 {
		c.AdjustWorkers(-1)
		c.ScaleIterations(false)
	}
	if c.Config().Workers != 1 || c.Config().Iterations != 1 {
		t.Errorf("lower bounds not enforced: %+v", c.Config())
	}
	for range 100 {
		c.AdjustWorkers(1)
		c.ScaleIterations(true)
	}
	if c.Config().Workers != config.MaxWorkers || c.Config().Iterations != config.MaxIterations {
		t.Errorf("upper bounds not enforced: %+v", c.Config())
	}

	for range len(workload.TaskKinds()) {
		c.CycleTask()
	}
	if c.Config().Task != config.DefaultTask {
		t.Errorf("cycling through every task should wrap around, got %q", c.Config().Task)
	}
}

func TestModel_RunLocksControlsUntilDone(t *testing.T) {
	m, cmd := press(t, newTestModel(), "r")
	if cmd == nil {
		t.Fatal("run should return a command")
	}
	if !m.running || !m.controls.Locked() {
		t.Fatal("model should be running with locked controls")
	}

	before := m.controls.Config()
	m, _ = press(t, m, "t", "+", "]")
	if m.controls.Config() != before {
		t.Error("controls changed while running")
	}
	if _, again := press(t, m, "r"); again != nil {
		t.Error("a second run must not start while one is in flight")
	}

	next, _ := m.Update(cmd())
	m = next.(Model)
	if m.running || m.controls.Locked() {
		t.Error("completion should unlock the controls")
	}
	if m.results.results.Len() != 4 {
		t.Errorf("results not stored: %d results", m.results.results.Len())
	}
	for _, r := range m.results.rows {
		if r.state != rowDone {
			t.Errorf("%v state = %v, want done", r.kind, r.state)
		}
	}
}

func TestModel_IgnoresStaleCompletion(t *testing.T) {
	m, _ := press(t, newTestModel(), "r")
	next, _ := m.Update(ComparisonDoneMsg{Generation: m.generation - 1})
	m = next.(Model)
	if !m.running {
		t.Error("a stale completion must not end the current run")
	}
}

func TestModel_FailedRun(t *testing.T) {
	m, _ := press(t, newTestModel(), "r")
	err := apperrors.WorkerFaultError{Strategy: "processes", Worker: 1, Cause: errors.New("exit status 2")}
	next, _ := m.Update(ComparisonDoneMsg{Generation: m.generation, Err: err, ExitCode: apperrors.ExitErrorWorkerFault})
	m = next.(Model)

	if m.exitCode != apperrors.ExitErrorWorkerFault {
		t.Errorf("exitCode = %d", m.exitCode)
	}
	next, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	view := next.(Model).View()
	if !strings.Contains(view, "Error:") || !strings.Contains(view, "ERROR") {
		t.Errorf("view should show the error:\n%s", view)
	}
}

func TestModel_ProgressUpdatesRows(t *testing.T) {
	m, _ := press(t, newTestModel(), "r")
	next, _ := m.Update(ProgressMsg{
		Update:    orchestration.ProgressUpdate{Index: 1, Strategy: strategy.KindProcesses, Phase: orchestration.PhaseStarted},
		Completed: 0.25,
	})
	m = next.(Model)
	if m.results.rows[1].state != rowRunning {
		t.Errorf("row state = %v, want running", m.results.rows[1].state)
	}

	next, _ = m.Update(ProgressMsg{
		Update:    orchestration.ProgressUpdate{Index: 1, Strategy: strategy.KindProcesses, Phase: orchestration.PhaseFinished, Elapsed: 3 * time.Millisecond},
		Completed: 0.5,
	})
	m = next.(Model)
	if r := m.results.rows[1]; r.state != rowDone || r.elapsed != 3*time.Millisecond {
		t.Errorf("row = %+v", r)
	}
	if m.results.completed != 0.5 {
		t.Errorf("completed = %f", m.results.completed)
	}
}

func TestModel_Quit(t *testing.T) {
	_, cmd := press(t, newTestModel(), "q")
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel()
	if m.View() != "Initializing..." {
		t.Error("view before the first resize should be a placeholder")
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	next, _ = next.(Model).Update(SysStatsMsg{CPUPercent: 40, MemPercent: 60})
	view := next.(Model).View()
	for _, want := range []string{"Strategy Bench v1.2.3", "Ready", "Workload", "Iterations", "Strategies", "Daemon threads", "pending", "System", "READY", "No results yet."} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
