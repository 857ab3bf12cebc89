package tui

import (
	"context"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/stratbench/internal/errors"
	"github.com/agbru/stratbench/internal/orchestration"
	"github.com/agbru/stratbench/internal/workload"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter implements orchestration.ProgressReporter.
// It drains the progress channel and forwards updates as bubbletea messages.
type TUIProgressReporter struct {
	ref *programRef
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains the progress channel and sends ProgressMsg to the TUI.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numStrategies int, _ io.Writer) {
	defer wg.Done()

	tracker := orchestration.NewProgressTracker(numStrategies)
	if tracker == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	for update := range progressChan {
		p := tracker.Update(update)
		t.ref.Send(ProgressMsg{Update: p.Update, Completed: p.Completed, ETA: p.ETA})
	}
}

// runComparisonCmd runs one comparison off the update loop. Progress is
// streamed through ref; the returned message carries the outcome.
func runComparisonCmd(ctx context.Context, ref *programRef, orch *orchestration.Orchestrator, spec workload.Spec, gen uint64) tea.Cmd {
	return func() tea.Msg {
		results, err := orchestration.ExecuteComparison(ctx, orch, spec, &TUIProgressReporter{ref: ref}, io.Discard)
		code := apperrors.ExitSuccess
		if err != nil {
			code = apperrors.ExitCode(err)
		}
		return ComparisonDoneMsg{Generation: gen, Results: results, Err: err, ExitCode: code}
	}
}
