package cli

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	apperrors "github.com/agbru/stratbench/internal/errors"
	"github.com/agbru/stratbench/internal/format"
	"github.com/agbru/stratbench/internal/orchestration"
	"github.com/agbru/stratbench/internal/ui"
)

var (
	fastestColor = color.New(color.FgGreen, color.Bold)
	slowestColor = color.New(color.FgRed)
	headerColor  = color.New(color.Bold)
)

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
type CLIResultPresenter struct {
	// Quiet prints the table only, without chart and summary.
	Quiet bool
}

var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// PresentComparison prints the ranked table, the bar chart and a summary
// line naming the fastest and slowest strategies.
func (p CLIResultPresenter) PresentComparison(results orchestration.ResultSet, out io.Writer) {
	if results.Len() == 0 {
		return
	}
	if !p.Quiet {
		fmt.Fprintln(out)
		_, _ = headerColor.Fprintf(out, "--- Comparison Summary: %s ---\n", results.Spec())
	}
	RenderTable(results, out)
	if p.Quiet {
		return
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, RenderBarChart(results, ChartWidth))

	fastest, _ := results.Fastest()
	slowest, _ := results.Slowest()
	fmt.Fprintln(out)
	_, _ = fastestColor.Fprintf(out, "Fastest: %s in %s", ui.StrategyLabel(fastest.Strategy), format.FormatSeconds(fastest.Elapsed))
	fmt.Fprint(out, "   ")
	_, _ = slowestColor.Fprintf(out, "Slowest: %s (%s)", ui.StrategyLabel(slowest.Strategy), FormatVsFastest(slowest.Elapsed, fastest.Elapsed))
	fmt.Fprintln(out)
}

// RenderTable writes the results ranked from fastest to slowest.
func RenderTable(results orchestration.ResultSet, out io.Writer) {
	ranked := results.All()
	slices.SortStableFunc(ranked, func(a, b orchestration.StrategyResult) int {
		return cmp.Compare(a.Elapsed, b.Elapsed)
	})
	fastest := ranked[0].Elapsed

	table := tablewriter.NewWriter(out)
	table.Header("Rank", "Strategy", "Identifier", "Time (s)", "vs Fastest")
	for i, r := range ranked {
		_ = table.Append(
			fmt.Sprintf("%d", i+1),
			ui.StrategyLabel(r.Strategy),
			r.Strategy.String(),
			format.FormatSeconds(r.Elapsed),
			FormatVsFastest(r.Elapsed, fastest),
		)
	}
	if err := table.Render(); err != nil {
		fmt.Fprintf(out, "%sError rendering results table: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	}
}

// FormatVsFastest renders elapsed relative to the fastest time.
func FormatVsFastest(elapsed, fastest time.Duration) string {
	if elapsed == fastest {
		return "baseline"
	}
	if fastest <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.2fx", float64(elapsed)/float64(fastest))
}

// FormatDuration formats a duration for display.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError prints a comparison error and returns the matching exit code.
func (CLIResultPresenter) HandleError(err error, out io.Writer) int {
	return apperrors.HandleComparisonError(err, out, CLIColorProvider{})
}

// CLIColorProvider supplies theme colors to the error handler.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }
