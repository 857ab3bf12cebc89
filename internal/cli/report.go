package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/stratbench/internal/metrics"
	"github.com/agbru/stratbench/internal/strategy"
	"github.com/agbru/stratbench/internal/sysmon"
	"github.com/agbru/stratbench/internal/ui"
	"github.com/agbru/stratbench/internal/workload"
)

// PrintExecutionConfig displays the workload about to be compared.
func PrintExecutionConfig(spec workload.Spec, pinThreads bool, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Task %s%s%s over %s%d%s iterations.\n",
		ui.ColorMagenta(), spec.Task(), ui.ColorReset(), ui.ColorYellow(), spec.Iterations(), ui.ColorReset())
	fmt.Fprintf(out, "Workers: %s%d%s threads, %s%d%s processes",
		ui.ColorCyan(), spec.Workers(), ui.ColorReset(), ui.ColorCyan(), spec.ProcessWorkers(), ui.ColorReset())
	if pinThreads {
		fmt.Fprintf(out, ", detached threads pinned to CPUs")
	}
	fmt.Fprintf(out, ".\n")
	if spec.ProcessWorkers() != spec.Workers() {
		fmt.Fprintf(out, "%sNote:%s the process pool runs %d processes against %d threads; set -p %d to match.\n",
			ui.ColorYellow(), ui.ColorReset(), spec.ProcessWorkers(), spec.Workers(), spec.Workers())
	}
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Strategies run in order: ")
	for i, k := range strategy.Kinds() {
		if i > 0 {
			fmt.Fprint(out, ", ")
		}
		fmt.Fprint(out, ui.StrategyLabel(k))
	}
	fmt.Fprintf(out, ".\n\n--- Starting Execution ---\n")
}

// PrintHostInfo displays the host description and current load.
func PrintHostInfo(info sysmon.HostInfo, load sysmon.Stats, out io.Writer) {
	fmt.Fprintf(out, "--- Host ---\n")
	if info.CPUModel != "" {
		fmt.Fprintf(out, "CPU: %s (%d cores, %d threads)\n", info.CPUModel, info.PhysicalCores, info.LogicalCPUs)
	} else {
		fmt.Fprintf(out, "CPU: %d logical processors\n", info.LogicalCPUs)
	}
	if info.Platform != "" {
		fmt.Fprintf(out, "OS: %s (%s)\n", info.OS, info.Platform)
	} else {
		fmt.Fprintf(out, "OS: %s\n", info.OS)
	}
	if info.TotalMemory > 0 {
		fmt.Fprintf(out, "Memory: %.1f GiB\n", float64(info.TotalMemory)/(1<<30))
	}
	fmt.Fprintf(out, "Load before run: CPU %.1f%%, memory %.1f%%\n\n", load.CPUPercent, load.MemPercent)
}

// DisplayRuntimeStats shows what the comparison cost the benchmark process.
func DisplayRuntimeStats(before, after metrics.RuntimeSnapshot, out io.Writer) {
	d := metrics.Delta(before, after)
	fmt.Fprintf(out, "\nRuntime:\n")
	fmt.Fprintf(out, "  OS threads created: %d\n", d.ThreadsCreated)
	fmt.Fprintf(out, "  GC cycles:          %d\n", d.NumGC)
	fmt.Fprintf(out, "  Heap in use:        %.1f MiB\n", float64(d.HeapAlloc)/(1<<20))
	fmt.Fprintf(out, "  Goroutines:         %d\n", d.Goroutines)
}
