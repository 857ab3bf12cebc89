package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/stratbench/internal/metrics"
)

// SystemModel shows host load history and what the benchmark process has
// cost since the current run started.
type SystemModel struct {
	cpuHistory *RingBuffer
	memHistory *RingBuffer
	baseline   metrics.RuntimeSnapshot
	current    metrics.RuntimeSnapshot
	width      int
	height     int
}

// NewSystemModel creates a new system panel.
func NewSystemModel() SystemModel {
	return SystemModel{
		cpuHistory: NewRingBuffer(32),
		memHistory: NewRingBuffer(32),
	}
}

// SetSize updates dimensions. The sparklines keep as many samples as fit.
func (m *SystemModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	spark := max(1, w-sparkLabelWidth-12)
	m.cpuHistory.Resize(spark)
	m.memHistory.Resize(spark)
}

// UpdateSysStats records a host sample.
func (m *SystemModel) UpdateSysStats(cpu, mem float64) {
	m.cpuHistory.Push(cpu)
	m.memHistory.Push(mem)
}

// UpdateRuntime records a process snapshot.
func (m *SystemModel) UpdateRuntime(s metrics.RuntimeSnapshot) {
	m.current = s
}

// MarkRunStart makes the runtime counters relative to s.
func (m *SystemModel) MarkRunStart(s metrics.RuntimeSnapshot) {
	m.baseline = s
	m.current = s
}

const sparkLabelWidth = 5

// View renders the panel.
func (m SystemModel) View() string {
	d := metrics.Delta(m.baseline, m.current)
	lines := []string{
		panelTitleStyle.Render("System"),
		sparkLine("CPU", m.cpuHistory, cpuSparklineStyle),
		sparkLine("Mem", m.memHistory, memSparklineStyle),
		"",
		metricRow("Threads created", fmt.Sprintf("%d", d.ThreadsCreated)),
		metricRow("Goroutines", fmt.Sprintf("%d", d.Goroutines)),
		metricRow("GC cycles", fmt.Sprintf("%d", d.NumGC)),
		metricRow("Heap", formatBytes(d.HeapAlloc)),
	}
	style := panelStyle
	if m.width > 2 {
		style = style.Width(m.width - 2)
	}
	if m.height > 2 {
		style = style.Height(m.height - 2)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func sparkLine(label string, buf *RingBuffer, style lipgloss.Style) string {
	return labelStyle.Width(sparkLabelWidth).Render(label) +
		style.Render(RenderSparkline(buf.Slice())) +
		valueStyle.Render(fmt.Sprintf(" %5.1f%%", buf.Last()))
}

func metricRow(label, value string) string {
	return labelStyle.Width(17).Render(label) + valueStyle.Render(value)
}

// formatBytes renders a byte count with a binary unit.
func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
