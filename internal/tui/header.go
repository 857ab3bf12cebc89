package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/stratbench/internal/format"
)

// HeaderModel renders the top bar: title, version and the duration of the
// current or last run.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	width     int
	now       func() time.Time
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{version: version, now: time.Now}
}

// Start restarts the run timer.
func (h *HeaderModel) Start() {
	h.startTime = h.now()
	h.endTime = time.Time{}
}

// SetDone freezes the run timer at the current time.
func (h *HeaderModel) SetDone() {
	h.endTime = h.now()
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed returns the duration of the current or last run.
func (h HeaderModel) Elapsed() time.Duration {
	switch {
	case h.startTime.IsZero():
		return 0
	case !h.endTime.IsZero():
		return h.endTime.Sub(h.startTime)
	}
	return h.now().Sub(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "Strategy Bench"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	left := titleStyle.Render(titleText) + versionStyle.Render(" | ")
	if h.startTime.IsZero() {
		left += elapsedStyle.Render("Ready")
	} else {
		left += elapsedStyle.Render(fmt.Sprintf("Run: %s", format.FormatExecutionDuration(h.Elapsed())))
	}

	gap := max(0, h.width-2-lipgloss.Width(left))
	return headerStyle.Width(h.width).Render(left + strings.Repeat(" ", gap))
}
