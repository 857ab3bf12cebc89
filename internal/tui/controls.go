package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/stratbench/internal/config"
	"github.com/agbru/stratbench/internal/workload"
)

// ControlsModel holds the editable workload. It is locked while a
// comparison runs so the workload shown always matches the one measured.
type ControlsModel struct {
	cfg    config.AppConfig
	locked bool
	width  int
}

// NewControlsModel creates the panel from the starting configuration.
func NewControlsModel(cfg config.AppConfig) ControlsModel {
	return ControlsModel{cfg: cfg}
}

// Config returns the current workload settings.
func (c ControlsModel) Config() config.AppConfig { return c.cfg }

// SetLocked enables or disables editing.
func (c *ControlsModel) SetLocked(locked bool) { c.locked = locked }

// Locked reports whether editing is disabled.
func (c ControlsModel) Locked() bool { return c.locked }

// SetWidth updates the available width.
func (c *ControlsModel) SetWidth(w int) { c.width = w }

// CycleTask selects the next task kind, wrapping around.
func (c *ControlsModel) CycleTask() {
	if c.locked {
		return
	}
	kinds := workload.TaskKinds()
	current, err := workload.ParseTaskKind(c.cfg.Task)
	if err != nil {
		c.cfg.Task = kinds[0].String()
		return
	}
	c.cfg.Task = kinds[(int(current)+1)%len(kinds)].String()
}

// AdjustWorkers changes the thread count by delta within [1, MaxWorkers].
func (c *ControlsModel) AdjustWorkers(delta int) {
	if c.locked {
		return
	}
	c.cfg.Workers = min(max(c.cfg.Workers+delta, 1), config.MaxWorkers)
}

// ScaleIterations multiplies or divides the iterations by ten within
// [1, MaxIterations].
func (c *ControlsModel) ScaleIterations(up bool) {
	if c.locked {
		return
	}
	if up {
		c.cfg.Iterations = min(c.cfg.Iterations*10, config.MaxIterations)
	} else {
		c.cfg.Iterations = max(c.cfg.Iterations/10, 1)
	}
}

// View renders the panel.
func (c ControlsModel) View() string {
	vs := valueStyle
	if c.locked {
		vs = lockedValueStyle
	}
	processes := "auto"
	if c.cfg.Processes > 0 {
		processes = fmt.Sprintf("%d", c.cfg.Processes)
	}
	row := func(label, value string) string {
		return labelStyle.Width(12).Render(label) + vs.Render(value)
	}
	lines := []string{
		panelTitleStyle.Render("Workload"),
		row("Task", c.cfg.Task),
		row("Iterations", fmt.Sprintf("%d", c.cfg.Iterations)),
		row("Workers", fmt.Sprintf("%d", c.cfg.Workers)),
		row("Processes", processes),
	}
	style := panelStyle
	if c.width > 2 {
		style = style.Width(c.width - 2)
	}
	return style.Render(strings.Join(lines, "\n"))
}
