package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/agbru/stratbench/internal/config"
	"github.com/agbru/stratbench/internal/orchestration"
	"github.com/agbru/stratbench/internal/ui"
	"github.com/agbru/stratbench/internal/workload"
)

// REPL is an interactive session that edits the workload and runs
// comparisons on demand. Each run is a new comparison; the prompt blocks
// until it completes.
type REPL struct {
	orch      *orchestration.Orchestrator
	cfg       config.AppConfig
	presenter CLIResultPresenter
	reporter  orchestration.ProgressReporter
	in        io.Reader
	out       io.Writer
	runs      int
}

// NewREPL creates a REPL whose initial workload comes from cfg.
func NewREPL(orch *orchestration.Orchestrator, cfg config.AppConfig) *REPL {
	return &REPL{
		orch:     orch,
		cfg:      cfg,
		reporter: CLIProgressReporter{},
		in:       os.Stdin,
		out:      os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// SetProgressReporter replaces the spinner (useful for testing).
func (r *REPL) SetProgressReporter(p orchestration.ProgressReporter) {
	r.reporter = p
}

// Config returns the current workload settings.
func (r *REPL) Config() config.AppConfig {
	return r.cfg
}

// Start reads and executes commands until exit or EOF.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorBlue()+"bench> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && input != "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !r.processCommand(ctx, input) {
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s   %sConcurrency Strategy Benchmark - Interactive Mode%s      %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %srun%s              - Compare the four strategies on the current workload\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<n>%s              - Set iterations to n and run\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %stask <name>%s      - Change task (%s)\n", ui.ColorYellow(), ui.ColorReset(), taskList())
	fmt.Fprintf(r.out, "  %siterations <n>%s   - Set the size of the iteration domain\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sworkers <n>%s      - Set the thread count\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sprocesses <n>%s    - Set the process count\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s           - Display the current workload\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s             - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s      - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

func taskList() string {
	names := make([]string, 0, len(workload.TaskKinds()))
	for _, k := range workload.TaskKinds() {
		names = append(names, k.String())
	}
	return strings.Join(names, ", ")
}

// processCommand executes one command. Returns false if the REPL should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "run", "r":
		r.run(ctx)
	case "task", "t":
		r.cmdTask(args)
	case "iterations", "n":
		r.cmdInt(args, "iterations", func(c *config.AppConfig, v int) { c.Iterations = v })
	case "workers", "w":
		r.cmdInt(args, "workers", func(c *config.AppConfig, v int) { c.Workers = v })
	case "processes", "p":
		r.cmdInt(args, "processes", func(c *config.AppConfig, v int) { c.Processes = v })
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if n, err := strconv.Atoi(cmd); err == nil {
			if r.set("iterations", func(c *config.AppConfig) { c.Iterations = n }) {
				r.run(ctx)
			}
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}
	return true
}

func (r *REPL) cmdTask(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: task <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available tasks: %s\n", taskList())
		return
	}
	kind, err := workload.ParseTaskKind(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	r.set("task", func(c *config.AppConfig) { c.Task = kind.String() })
}

func (r *REPL) cmdInt(args []string, name string, apply func(*config.AppConfig, int)) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: %s <n>%s\n", ui.ColorRed(), name, ui.ColorReset())
		return
	}
	v, err := strconv.Atoi(args[0])
	if err != nil || v < 1 {
		fmt.Fprintf(r.out, "%sInvalid value: %s (must be a positive integer)%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}
	r.set(name, func(c *config.AppConfig) { apply(c, v) })
}

// set applies a change only if the resulting configuration is valid.
func (r *REPL) set(name string, apply func(*config.AppConfig)) bool {
	next := r.cfg
	apply(&next)
	if err := next.Validate(); err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return false
	}
	if _, err := next.ToSpec(); err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return false
	}
	r.cfg = next
	fmt.Fprintf(r.out, "%s updated.\n", name)
	return true
}

func (r *REPL) run(ctx context.Context) {
	spec, err := r.cfg.ToSpec()
	if err != nil {
		r.presenter.HandleError(err, r.out)
		return
	}
	r.runs++
	fmt.Fprintf(r.out, "Run #%d: %s\n", r.runs, spec)

	results, err := orchestration.ExecuteComparison(ctx, r.orch, spec, r.reporter, r.out)
	if err != nil {
		r.presenter.HandleError(err, r.out)
		return
	}
	r.presenter.PresentComparison(results, r.out)
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent workload:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Task:        %s%s%s\n", ui.ColorCyan(), r.cfg.Task, ui.ColorReset())
	fmt.Fprintf(r.out, "  Iterations:  %s%d%s\n", ui.ColorCyan(), r.cfg.Iterations, ui.ColorReset())
	fmt.Fprintf(r.out, "  Workers:     %s%d%s\n", ui.ColorCyan(), r.cfg.Workers, ui.ColorReset())
	fmt.Fprintf(r.out, "  Processes:   %s%d%s\n", ui.ColorCyan(), r.cfg.Processes, ui.ColorReset())
	fmt.Fprintf(r.out, "  Runs so far: %s%d%s\n", ui.ColorCyan(), r.runs, ui.ColorReset())
	fmt.Fprintln(r.out)
}
