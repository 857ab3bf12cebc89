package ui

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

// Theme holds the ANSI sequences of one CLI color scheme. An empty field
// prints nothing.
type Theme struct {
	Name      string
	Primary   string // prompts
	Secondary string // configuration values
	Success   string
	Warning   string
	Error     string
	Info      string // task names
	Bold      string
	Reset     string
}

// TUITheme is the lipgloss palette of the dashboard.
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
	// Bars holds one color per strategy, in execution order.
	Bars [4]lipgloss.TerminalColor
}

var (
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;220m",
		Error:     "\033[38;5;196m",
		Info:      "\033[38;5;141m",
		Bold:      "\033[1m",
		Reset:     "\033[0m",
	}

	// LightTheme uses darker shades that stay readable on white.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",
		Secondary: "\033[38;5;240m",
		Success:   "\033[38;5;28m",
		Warning:   "\033[38;5;130m",
		Error:     "\033[38;5;124m",
		Info:      "\033[38;5;54m",
		Bold:      "\033[1m",
		Reset:     "\033[0m",
	}

	NoColorTheme = Theme{Name: "none"}

	DarkTUITheme = TUITheme{
		Bg:      lipgloss.Color("#000000"),
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#FF6600"),
		Accent:  lipgloss.Color("#FF8C00"),
		Success: lipgloss.Color("#9ece6a"),
		Warning: lipgloss.Color("#FFB347"),
		Error:   lipgloss.Color("#FF4444"),
		Dim:     lipgloss.Color("#666666"),
		Info:    lipgloss.Color("#4488FF"),
		Bars: [4]lipgloss.TerminalColor{
			lipgloss.Color("#4488FF"),
			lipgloss.Color("#9ece6a"),
			lipgloss.Color("#FF4444"),
			lipgloss.Color("#BB77FF"),
		},
	}

	LightTUITheme = TUITheme{
		Bg:      lipgloss.Color("#FFFFFF"),
		Text:    lipgloss.Color("#202020"),
		Border:  lipgloss.Color("#1F5FBF"),
		Accent:  lipgloss.Color("#0B3D91"),
		Success: lipgloss.Color("#2E7D32"),
		Warning: lipgloss.Color("#B35C00"),
		Error:   lipgloss.Color("#B00020"),
		Dim:     lipgloss.Color("#8A8A8A"),
		Info:    lipgloss.Color("#1F5FBF"),
		Bars: [4]lipgloss.TerminalColor{
			lipgloss.Color("#1F5FBF"),
			lipgloss.Color("#2E7D32"),
			lipgloss.Color("#B00020"),
			lipgloss.Color("#6A1B9A"),
		},
	}

	// NoColorTUITheme renders with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Bg:      lipgloss.NoColor{},
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
		Bars:    [4]lipgloss.TerminalColor{lipgloss.NoColor{}, lipgloss.NoColor{}, lipgloss.NoColor{}, lipgloss.NoColor{}},
	}
)

type themePair struct {
	cli Theme
	tui TUITheme
}

var themes = map[string]themePair{
	DarkTheme.Name:    {DarkTheme, DarkTUITheme},
	LightTheme.Name:   {LightTheme, LightTUITheme},
	NoColorTheme.Name: {NoColorTheme, NoColorTUITheme},
}

var (
	themeMu sync.RWMutex
	current = themes[DarkTheme.Name]
)

// ThemeNames lists the names accepted by SetTheme.
func ThemeNames() []string {
	return []string{DarkTheme.Name, LightTheme.Name, NoColorTheme.Name}
}

// GetCurrentTheme returns the active CLI theme.
func GetCurrentTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return current.cli
}

// GetCurrentTUITheme returns the dashboard palette paired with the active theme.
func GetCurrentTUITheme() TUITheme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return current.tui
}

// SetCurrentTheme restores a theme saved with GetCurrentTheme.
func SetCurrentTheme(t Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	if p, ok := themes[t.Name]; ok {
		current = p
	}
}

// SetTheme activates the named theme. The fatih/color highlighting is
// switched off together with the "none" theme.
func SetTheme(name string) error {
	p, ok := themes[name]
	if !ok {
		return fmt.Errorf("unknown theme %q", name)
	}
	themeMu.Lock()
	defer themeMu.Unlock()
	current = p
	color.NoColor = name == NoColorTheme.Name
	return nil
}

// InitTheme selects the dark theme, or no colors when noColor is set or
// NO_COLOR (https://no-color.org/) is present in the environment.
func InitTheme(noColor bool) {
	_ = ApplyTheme(DarkTheme.Name, noColor)
}

// ApplyTheme activates name unless colors are disabled by noColor or
// NO_COLOR, which always win.
func ApplyTheme(name string, noColor bool) error {
	if _, envNoColor := os.LookupEnv("NO_COLOR"); noColor || envNoColor {
		name = NoColorTheme.Name
	}
	return SetTheme(name)
}
