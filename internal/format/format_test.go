package format

import (
	"strings"
	"testing"
	"time"
)

func TestFormatETA(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		eta      time.Duration
		expected string
	}{
		{"Zero duration", 0, "calculating..."},
		{"Negative duration", -time.Second, "calculating..."},
		{"Less than a second", 500 * time.Millisecond, "< 1s"},
		{"One second", time.Second, "1s"},
		{"Multiple seconds", 45 * time.Second, "45s"},
		{"One minute", time.Minute, "1m"},
		{"Minutes and seconds", 2*time.Minute + 30*time.Second, "2m30s"},
		{"One hour", time.Hour, "1h"},
		{"Hours and minutes", time.Hour + 15*time.Minute, "1h15m"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatETA(tc.eta); got != tc.expected {
				t.Errorf("FormatETA(%v) = %q, want %q", tc.eta, got, tc.expected)
			}
		})
	}
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{500 * time.Nanosecond, "0µs"},
		{10 * time.Microsecond, "10µs"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
	}

	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.expected {
			t.Errorf("FormatExecutionDuration(%v) = %s; want %s", tt.d, got, tt.expected)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	t.Parallel()
	if got := FormatSeconds(1500 * time.Millisecond); got != "1.500000s" {
		t.Errorf("FormatSeconds = %q", got)
	}
	if got := FormatSeconds(0); got != "0.000000s" {
		t.Errorf("FormatSeconds(0) = %q", got)
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		length   int
		expected string
	}{
		{0.0, 4, "░░░░"},
		{0.5, 4, "██░░"},
		{1.0, 4, "████"},
		{1.2, 4, "████"},
		{-0.1, 4, "░░░░"},
	}

	for _, tt := range tests {
		if got := ProgressBar(tt.progress, tt.length); got != tt.expected {
			t.Errorf("ProgressBar(%f, %d) = %s; want %s", tt.progress, tt.length, got, tt.expected)
		}
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()
	got := FormatProgressBarWithETA(0.5, 30*time.Second, 10)
	for _, want := range []string{"[", "]", "50.0%", "ETA: 30s"} {
		if !strings.Contains(got, want) {
			t.Errorf("result %q should contain %q", got, want)
		}
	}
}

func TestProgressState(t *testing.T) {
	t.Parallel()
	ps := NewProgressState(2)
	ps.Update(0, 0.5)
	ps.Update(1, 1.0)
	ps.Update(7, 1.0)
	ps.Update(-1, 1.0)
	if avg := ps.CalculateAverage(); avg != 0.75 {
		t.Errorf("average = %f, want 0.75", avg)
	}
	if avg := NewProgressState(0).CalculateAverage(); avg != 0 {
		t.Errorf("empty average = %f, want 0", avg)
	}
}

func TestProgressWithETA(t *testing.T) {
	t.Parallel()
	start := time.Unix(0, 0)
	now := start
	p := newProgressWithETA(4, func() time.Time { return now })

	if eta := p.GetETA(); eta != 0 {
		t.Errorf("ETA before progress = %v, want 0", eta)
	}

	now = start.Add(10 * time.Second)
	avg, eta := p.UpdateWithETA(0, 1)
	if avg != 0.25 {
		t.Errorf("average = %f, want 0.25", avg)
	}
	if eta != 30*time.Second {
		t.Errorf("ETA = %v, want 30s", eta)
	}

	for i := 1; i < 4; i++ {
		p.Update(i, 1)
	}
	if eta := p.GetETA(); eta != 0 {
		t.Errorf("ETA when done = %v, want 0", eta)
	}
}

func TestProgressWithETA_Capped(t *testing.T) {
	t.Parallel()
	start := time.Unix(0, 0)
	now := start
	p := newProgressWithETA(1, func() time.Time { return now })
	p.Update(0, 0.0000001)
	now = start.Add(time.Hour)
	if eta := p.GetETA(); eta > maxETA {
		t.Errorf("ETA = %v, should be capped at %v", eta, maxETA)
	}
}
