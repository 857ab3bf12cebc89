package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/stratbench/internal/format"
	"github.com/agbru/stratbench/internal/orchestration"
	"github.com/agbru/stratbench/internal/ui"
)

// RenderBarChart draws one horizontal bar per strategy, in execution
// order, scaled so the slowest strategy spans width cells. Every strategy
// gets at least one cell so a very fast run stays visible.
func RenderBarChart(results orchestration.ResultSet, width int) string {
	all := results.All()
	if len(all) == 0 || width < 1 {
		return ""
	}
	slowest, _ := results.Slowest()
	theme := ui.GetCurrentTUITheme()

	labelWidth := 0
	for _, r := range all {
		labelWidth = max(labelWidth, lipgloss.Width(ui.StrategyLabel(r.Strategy)))
	}
	labelStyle := lipgloss.NewStyle().Width(labelWidth + 1)
	valueStyle := lipgloss.NewStyle().Foreground(theme.Dim)

	var b strings.Builder
	for i, r := range all {
		cells := width
		if slowest.Elapsed > 0 {
			cells = int(float64(r.Elapsed) / float64(slowest.Elapsed) * float64(width))
		}
		cells = max(1, min(cells, width))

		barStyle := lipgloss.NewStyle().Foreground(theme.Bars[i%len(theme.Bars)])
		b.WriteString(labelStyle.Render(ui.StrategyLabel(r.Strategy)))
		b.WriteString(barStyle.Render(strings.Repeat("█", cells)))
		b.WriteString(" ")
		b.WriteString(valueStyle.Render(format.FormatSeconds(r.Elapsed)))
		b.WriteString("\n")
	}
	return b.String()
}
