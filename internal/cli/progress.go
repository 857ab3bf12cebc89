package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/stratbench/internal/format"
	"github.com/agbru/stratbench/internal/orchestration"
	"github.com/agbru/stratbench/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner that names the running strategy.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for a comparison.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numStrategies int, out io.Writer) {
	DisplayProgress(wg, progressChan, numStrategies, out)
}

// DisplayProgress consumes progress updates until the channel is closed,
// showing which strategy runs, how many are done and an ETA. It calls
// wg.Done on return.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numStrategies int, out io.Writer) {
	defer wg.Done()
	tracker := orchestration.NewProgressTracker(numStrategies)
	if tracker == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(" Preparing workload...")
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	current := ""
	done := 0
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				return
			}
			tracker.Update(update)
			switch update.Phase {
			case orchestration.PhaseStarted:
				current = ui.StrategyLabel(update.Strategy)
			default:
				done++
			}
			s.UpdateSuffix(FormatProgressSuffix(current, done, numStrategies, tracker.Completed(), tracker.ETA()))
		case <-ticker.C:
			s.UpdateSuffix(FormatProgressSuffix(current, done, numStrategies, tracker.Completed(), tracker.ETA()))
		}
	}
}

// FormatProgressSuffix renders the text shown after the spinner.
func FormatProgressSuffix(current string, done, total int, completed float64, eta time.Duration) string {
	return fmt.Sprintf(" Running %s (%d/%d) %s", current, done, total,
		format.FormatProgressBarWithETA(completed, eta, ProgressBarWidth))
}
