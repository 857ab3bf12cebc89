package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/stratbench/internal/format"
	"github.com/agbru/stratbench/internal/orchestration"
	"github.com/agbru/stratbench/internal/strategy"
	"github.com/agbru/stratbench/internal/ui"
)

type rowState int

const (
	rowPending rowState = iota
	rowRunning
	rowDone
	rowFailed
)

func (s rowState) String() string {
	switch s {
	case rowRunning:
		return "running"
	case rowDone:
		return "done"
	case rowFailed:
		return "failed"
	}
	return "pending"
}

type strategyRow struct {
	kind    strategy.Kind
	state   rowState
	elapsed time.Duration
}

// ResultsModel shows one row per strategy with its state, measured time
// and a bar scaled to the slowest finished strategy.
type ResultsModel struct {
	rows      []strategyRow
	completed float64
	eta       time.Duration
	results   orchestration.ResultSet
	err       error
	width     int
}

// NewResultsModel creates a panel with one pending row per kind.
func NewResultsModel(kinds []strategy.Kind) ResultsModel {
	rows := make([]strategyRow, len(kinds))
	for i, k := range kinds {
		rows[i] = strategyRow{kind: k}
	}
	return ResultsModel{rows: rows}
}

// SetWidth updates the available width.
func (m *ResultsModel) SetWidth(w int) {
	m.width = w
}

// Reset marks every row pending and forgets the last outcome.
func (m *ResultsModel) Reset() {
	for i := range m.rows {
		m.rows[i].state = rowPending
		m.rows[i].elapsed = 0
	}
	m.completed, m.eta = 0, 0
	m.results = orchestration.ResultSet{}
	m.err = nil
}

// ApplyProgress records a strategy transition.
func (m *ResultsModel) ApplyProgress(msg ProgressMsg) {
	m.completed, m.eta = msg.Completed, msg.ETA
	u := msg.Update
	if u.Index < 0 || u.Index >= len(m.rows) {
		return
	}
	row := &m.rows[u.Index]
	row.kind = u.Strategy
	switch u.Phase {
	case orchestration.PhaseStarted:
		row.state = rowRunning
	case orchestration.PhaseFinished:
		row.state = rowDone
		row.elapsed = u.Elapsed
	case orchestration.PhaseFailed:
		row.state = rowFailed
		row.elapsed = u.Elapsed
	}
}

// SetOutcome stores the final outcome of a run. Rows take the measured
// times of the result set so the panel matches what was recorded.
func (m *ResultsModel) SetOutcome(results orchestration.ResultSet, err error) {
	m.results, m.err = results, err
	if err != nil {
		return
	}
	m.completed, m.eta = 1, 0
	for i := range m.rows {
		if r, ok := results.Get(m.rows[i].kind); ok {
			m.rows[i].state = rowDone
			m.rows[i].elapsed = r.Elapsed
		}
	}
}

const (
	rowLabelWidth   = 16
	rowStateWidth   = 9
	rowElapsedWidth = 11
)

// View renders the panel.
func (m ResultsModel) View() string {
	var slowest time.Duration
	for _, r := range m.rows {
		if r.state == rowDone {
			slowest = max(slowest, r.elapsed)
		}
	}
	barWidth := max(1, m.width-4-rowLabelWidth-rowStateWidth-rowElapsedWidth)

	lines := []string{panelTitleStyle.Render("Strategies")}
	for i, r := range m.rows {
		lines = append(lines, m.renderRow(i, r, slowest, barWidth))
	}
	lines = append(lines, "", format.FormatProgressBarWithETA(m.completed, m.eta, max(10, barWidth)))
	lines = append(lines, m.summary())

	style := panelStyle
	if m.width > 2 {
		style = style.Width(m.width - 2)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m ResultsModel) renderRow(i int, r strategyRow, slowest time.Duration, barWidth int) string {
	label := labelStyle.Width(rowLabelWidth).Render(ui.StrategyLabel(r.kind))

	var state string
	switch r.state {
	case rowRunning:
		state = runningStyle.Width(rowStateWidth).Render(r.state.String())
	case rowDone:
		state = successStyle.Width(rowStateWidth).Render(r.state.String())
	case rowFailed:
		state = errorStyle.Width(rowStateWidth).Render(r.state.String())
	default:
		state = pendingStyle.Width(rowStateWidth).Render(r.state.String())
	}

	elapsed := ""
	if r.state == rowDone || r.state == rowFailed {
		elapsed = format.FormatSeconds(r.elapsed)
	}
	elapsedCol := valueStyle.Width(rowElapsedWidth).Render(elapsed)

	bar := ""
	if r.state == rowDone && slowest > 0 {
		cells := max(1, min(barWidth, int(float64(r.elapsed)/float64(slowest)*float64(barWidth))))
		bar = barStyles[i%len(barStyles)].Render(strings.Repeat("█", cells))
	}
	return label + state + elapsedCol + bar
}

func (m ResultsModel) summary() string {
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	fastest, ok := m.results.Fastest()
	if !ok {
		return pendingStyle.Render("No results yet.")
	}
	slowest, _ := m.results.Slowest()
	return successStyle.Render(fmt.Sprintf("Fastest: %s (%s)", ui.StrategyLabel(fastest.Strategy), format.FormatSeconds(fastest.Elapsed))) +
		"  " + errorStyle.Render(fmt.Sprintf("Slowest: %s (%s)", ui.StrategyLabel(slowest.Strategy), format.FormatSeconds(slowest.Elapsed)))
}
