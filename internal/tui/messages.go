package tui

import (
	"time"

	"github.com/agbru/stratbench/internal/metrics"
	"github.com/agbru/stratbench/internal/orchestration"
)

// ProgressMsg carries one strategy transition and the aggregated progress.
type ProgressMsg struct {
	Update    orchestration.ProgressUpdate
	Completed float64
	ETA       time.Duration
}

// ComparisonDoneMsg is sent once per run when the comparison completes.
type ComparisonDoneMsg struct {
	Generation uint64
	Results    orchestration.ResultSet
	Err        error
	ExitCode   int
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// SysStatsMsg carries a host-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// RuntimeMsg carries a snapshot of the benchmark process.
type RuntimeMsg metrics.RuntimeSnapshot
