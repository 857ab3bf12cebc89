package format

import (
	"fmt"
	"strings"
	"time"
)

// maxETA caps estimates derived from a very slow early rate.
const maxETA = 24 * time.Hour

// ProgressBar renders a bar of the given length for a progress in [0, 1].
// Out-of-range values are clamped.
func ProgressBar(progress float64, length int) string {
	progress = clamp(progress)
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders "[bar] pct% ETA: eta".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), clamp(progress)*100, FormatETA(eta))
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ProgressState tracks the completion of a fixed number of strategies, each
// contributing a value in [0, 1].
type ProgressState struct {
	progresses []float64
	numUnits   int
}

// NewProgressState creates a state for n units of work.
func NewProgressState(n int) *ProgressState {
	if n < 0 {
		n = 0
	}
	return &ProgressState{progresses: make([]float64, n), numUnits: n}
}

// Update sets the progress of one unit. Out-of-range indices are ignored.
func (s *ProgressState) Update(index int, value float64) {
	if index < 0 || index >= s.numUnits {
		return
	}
	s.progresses[index] = clamp(value)
}

// CalculateAverage returns the mean progress across all units.
func (s *ProgressState) CalculateAverage() float64 {
	if s.numUnits == 0 {
		return 0
	}
	var total float64
	for _, p := range s.progresses {
		total += p
	}
	return total / float64(s.numUnits)
}

// ProgressWithETA extends ProgressState with a remaining-time estimate
// derived from the average rate observed since creation.
type ProgressWithETA struct {
	*ProgressState
	startTime time.Time
	now       func() time.Time
}

// NewProgressWithETA creates a tracker for n units starting now.
func NewProgressWithETA(n int) *ProgressWithETA {
	return newProgressWithETA(n, time.Now)
}

func newProgressWithETA(n int, now func() time.Time) *ProgressWithETA {
	return &ProgressWithETA{ProgressState: NewProgressState(n), startTime: now(), now: now}
}

// UpdateWithETA records a unit's progress and returns the new average with
// the estimated time remaining.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	return p.CalculateAverage(), p.GetETA()
}

// GetETA estimates the remaining time. It returns 0 until progress is made
// and once everything is done.
func (p *ProgressWithETA) GetETA() time.Duration {
	avg := p.CalculateAverage()
	if avg <= 0 || avg >= 1 {
		return 0
	}
	elapsed := p.now().Sub(p.startTime)
	eta := time.Duration(float64(elapsed) / avg * (1 - avg))
	if eta > maxETA {
		return maxETA
	}
	return eta
}
