package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/stratbench/internal/config"
	apperrors "github.com/agbru/stratbench/internal/errors"
	"github.com/agbru/stratbench/internal/metrics"
	"github.com/agbru/stratbench/internal/orchestration"
	"github.com/agbru/stratbench/internal/strategy"
	"github.com/agbru/stratbench/internal/sysmon"
)

// Layout constants for the TUI dashboard.
const (
	headerHeight             = 1
	footerHeight             = 1
	minBodyHeight            = 8
	ResultsPanelWidthPercent = 62
	TickInterval             = 500 * time.Millisecond
)

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

func (l LayoutManager) bodyHeight() int {
	return max(minBodyHeight, l.height-headerHeight-footerHeight)
}

func (l LayoutManager) leftWidth() int {
	return l.width * ResultsPanelWidthPercent / 100
}

func (l LayoutManager) rightWidth() int {
	return l.width - l.leftWidth()
}

// ExecutionState tracks the comparison in flight. generation increases
// with every run so late messages from an earlier run are ignored.
type ExecutionState struct {
	running    bool
	generation uint64
	exitCode   int
	runs       int
}

// Model is the root bubbletea model for the TUI dashboard.
type Model struct {
	header   HeaderModel
	controls ControlsModel
	results  ResultsModel
	system   SystemModel

	keymap KeyMap

	ExecutionState
	LayoutManager

	ctx       context.Context
	orch      *orchestration.Orchestrator
	collector *metrics.RuntimeCollector
	ref       *programRef
}

// NewModel creates a new TUI model.
func NewModel(ctx context.Context, orch *orchestration.Orchestrator, cfg config.AppConfig, version string) Model {
	return Model{
		header:         NewHeaderModel(version),
		controls:       NewControlsModel(cfg),
		results:        NewResultsModel(strategy.Kinds()),
		system:         NewSystemModel(),
		keymap:         DefaultKeyMap(),
		ExecutionState: ExecutionState{exitCode: apperrors.ExitSuccess},
		ctx:            ctx,
		orch:           orch,
		collector:      metrics.NewRuntimeCollector(),
		ref:            &programRef{},
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), sampleSysStatsCmd(), sampleRuntimeCmd(m.collector))
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		if m.running {
			m.results.ApplyProgress(msg)
		}
		return m, nil

	case ComparisonDoneMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.running = false
		m.exitCode = msg.ExitCode
		m.controls.SetLocked(false)
		m.header.SetDone()
		m.results.SetOutcome(msg.Results, msg.Err)
		return m, nil

	case TickMsg:
		return m, tea.Batch(sampleSysStatsCmd(), sampleRuntimeCmd(m.collector), tickCmd())

	case SysStatsMsg:
		m.system.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		return m, nil

	case RuntimeMsg:
		m.system.UpdateRuntime(metrics.RuntimeSnapshot(msg))
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Quit) {
		return m, tea.Quit
	}
	if m.running {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Run):
		return m.startComparison()
	case key.Matches(msg, m.keymap.CycleTask):
		m.controls.CycleTask()
	case key.Matches(msg, m.keymap.MoreWorkers):
		m.controls.AdjustWorkers(1)
	case key.Matches(msg, m.keymap.FewerWorkers):
		m.controls.AdjustWorkers(-1)
	case key.Matches(msg, m.keymap.MoreIterations):
		m.controls.ScaleIterations(true)
	case key.Matches(msg, m.keymap.LessIterations):
		m.controls.ScaleIterations(false)
	}
	return m, nil
}

func (m Model) startComparison() (tea.Model, tea.Cmd) {
	cfg := m.controls.Config()
	if err := cfg.Validate(); err != nil {
		m.results.SetOutcome(orchestration.ResultSet{}, err)
		m.exitCode = apperrors.ExitCode(err)
		return m, nil
	}
	spec, err := cfg.ToSpec()
	if err != nil {
		m.results.SetOutcome(orchestration.ResultSet{}, err)
		m.exitCode = apperrors.ExitCode(err)
		return m, nil
	}

	m.generation++
	m.runs++
	m.running = true
	m.controls.SetLocked(true)
	m.results.Reset()
	m.header.Start()
	m.system.MarkRunStart(m.collector.Snapshot())
	return m, runComparisonCmd(m.ctx, m.ref, m.orch, spec, m.generation)
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	left := lipgloss.JoinVertical(lipgloss.Left, m.controls.View(), m.results.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, m.system.View())
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footerView())
}

func (m Model) footerView() string {
	var parts []string
	for _, b := range m.keymap.helpBindings() {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}

	var status string
	switch {
	case m.running:
		status = statusRunningStyle.Render("RUNNING")
	case m.results.err != nil:
		status = statusErrorStyle.Render("ERROR")
	case m.runs > 0:
		status = statusDoneStyle.Render("DONE")
	default:
		status = statusDoneStyle.Render("READY")
	}
	return " " + strings.Join(parts, "  ") + "   " + status
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.controls.SetWidth(m.leftWidth())
	m.results.SetWidth(m.leftWidth())
	m.system.SetSize(m.rightWidth(), m.bodyHeight())
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code of
// the last comparison.
func Run(ctx context.Context, orch *orchestration.Orchestrator, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via ApplyTheme).
	initTUIStyles()

	model := NewModel(ctx, orch, cfg, version)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// tickCmd returns a command that sends a TickMsg after TickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

func sampleRuntimeCmd(c *metrics.RuntimeCollector) tea.Cmd {
	return func() tea.Msg {
		return RuntimeMsg(c.Snapshot())
	}
}
