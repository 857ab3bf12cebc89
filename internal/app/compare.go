package app

import (
	"context"
	"io"

	"github.com/agbru/stratbench/internal/cli"
	"github.com/agbru/stratbench/internal/metrics"
	"github.com/agbru/stratbench/internal/orchestration"
	"github.com/agbru/stratbench/internal/sysmon"
)

// runCompare runs a single comparison and prints the report.
func (a *Application) runCompare(ctx context.Context, orch *orchestration.Orchestrator, out io.Writer) int {
	presenter := cli.CLIResultPresenter{Quiet: a.Config.Quiet}

	spec, err := a.Config.ToSpec()
	if err != nil {
		return presenter.HandleError(err, out)
	}

	if !a.Config.Quiet {
		if a.Config.Verbose {
			cli.PrintHostInfo(sysmon.DescribeHost(), sysmon.Sample(), out)
		}
		cli.PrintExecutionConfig(spec, a.Config.PinThreads, out)
	}

	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		progressReporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	collector := metrics.NewRuntimeCollector()
	before := collector.Snapshot()
	results, err := orchestration.ExecuteComparison(ctx, orch, spec, progressReporter, progressOut)
	after := collector.Snapshot()

	code := orchestration.PresentOutcome(results, err, presenter, presenter, out)
	if err == nil && a.Config.Verbose && !a.Config.Quiet {
		cli.DisplayRuntimeStats(before, after, out)
	}
	return code
}
