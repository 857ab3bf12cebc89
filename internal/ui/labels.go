package ui

import (
	"github.com/agbru/stratbench/internal/strategy"
)

var strategyLabels = map[strategy.Kind]string{
	strategy.KindThreads:         "Threads",
	strategy.KindProcesses:       "Processes",
	strategy.KindDetachedThreads: "Daemon threads",
	strategy.KindCooperative:     "Async",
}

// StrategyLabel returns the human-readable name of a strategy.
func StrategyLabel(kind strategy.Kind) string {
	if l, ok := strategyLabels[kind]; ok {
		return l
	}
	return kind.String()
}
