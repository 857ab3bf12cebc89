package ui

import (
	"os"
	"testing"

	"github.com/fatih/color"

	"github.com/agbru/stratbench/internal/strategy"
)

// Theme state is global, so these tests do not run in parallel.

func TestInitTheme_NoColor(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())
	InitTheme(true)

	if GetCurrentTheme().Name != "none" {
		t.Errorf("theme = %q, want none", GetCurrentTheme().Name)
	}
	if ColorRed() != "" || ColorReset() != "" {
		t.Error("no-color theme must not emit escape codes")
	}
	if !color.NoColor {
		t.Error("fatih/color should be disabled too")
	}
	if GetCurrentTUITheme().Accent != NoColorTUITheme.Accent {
		t.Error("TUI theme should follow the no-color theme")
	}
}

func TestInitTheme_EnvNoColor(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())
	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("NO_COLOR should disable colors, theme = %q", GetCurrentTheme().Name)
	}
}

func TestSetTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())
	tests := []struct {
		name    string
		cli     Theme
		tui     TUITheme
		noColor bool
	}{
		{"dark", DarkTheme, DarkTUITheme, false},
		{"light", LightTheme, LightTUITheme, false},
		{"none", NoColorTheme, NoColorTUITheme, true},
	}
	for _, tt := range tests {
		if err := SetTheme(tt.name); err != nil {
			t.Fatalf("SetTheme(%q) error: %v", tt.name, err)
		}
		if GetCurrentTheme() != tt.cli {
			t.Errorf("SetTheme(%q) CLI theme = %q", tt.name, GetCurrentTheme().Name)
		}
		if GetCurrentTUITheme().Accent != tt.tui.Accent {
			t.Errorf("SetTheme(%q) did not switch the TUI palette", tt.name)
		}
		if color.NoColor != tt.noColor {
			t.Errorf("SetTheme(%q) color.NoColor = %v", tt.name, color.NoColor)
		}
		if ColorBlue() != tt.cli.Primary || ColorGreen() != tt.cli.Success {
			t.Errorf("accessors should follow the %q theme", tt.name)
		}
	}

	before := GetCurrentTheme()
	if err := SetTheme("neon"); err == nil {
		t.Error("unknown theme should be rejected")
	}
	if GetCurrentTheme() != before {
		t.Error("a rejected theme must leave the active one in place")
	}
}

func TestApplyTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())
	// Setenv restores the variable on cleanup; the test itself runs without it.
	t.Setenv("NO_COLOR", "1")
	os.Unsetenv("NO_COLOR")

	if err := ApplyTheme("light", false); err != nil {
		t.Fatal(err)
	}
	if GetCurrentTheme().Name != "light" {
		t.Errorf("theme = %q, want light", GetCurrentTheme().Name)
	}
	if err := ApplyTheme("light", true); err != nil {
		t.Fatal(err)
	}
	if GetCurrentTheme().Name != "none" {
		t.Errorf("--no-color must win over the theme, got %q", GetCurrentTheme().Name)
	}
}

func TestThemeNames(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())
	for _, name := range ThemeNames() {
		if err := SetTheme(name); err != nil {
			t.Errorf("listed theme %q is not accepted: %v", name, err)
		}
	}
}

func TestStrategyLabel(t *testing.T) {
	t.Parallel()
	want := []string{"Threads", "Processes", "Daemon threads", "Async"}
	for i, k := range strategy.Kinds() {
		if got := StrategyLabel(k); got != want[i] {
			t.Errorf("StrategyLabel(%v) = %q, want %q", k, got, want[i])
		}
	}
	if got := StrategyLabel(strategy.Kind(42)); got != "Kind(42)" {
		t.Errorf("unknown kind label = %q", got)
	}
}
