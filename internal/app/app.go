// Package app wires configuration, logging, metrics and the strategies
// together and dispatches to the one-shot CLI, the REPL or the TUI.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/stratbench/internal/cli"
	"github.com/agbru/stratbench/internal/config"
	apperrors "github.com/agbru/stratbench/internal/errors"
	"github.com/agbru/stratbench/internal/logging"
	"github.com/agbru/stratbench/internal/metrics"
	"github.com/agbru/stratbench/internal/orchestration"
	"github.com/agbru/stratbench/internal/server"
	"github.com/agbru/stratbench/internal/strategy"
	"github.com/agbru/stratbench/internal/tui"
	"github.com/agbru/stratbench/internal/ui"
	"github.com/agbru/stratbench/internal/workload"
)

// Application represents the stratbench application instance.
type Application struct {
	Config config.AppConfig
	// Strategies replaces the production strategies when set.
	Strategies []strategy.Strategy
	ErrWriter  io.Writer
	// In feeds the interactive prompt. Defaults to os.Stdin.
	In io.Reader

	logger   logging.Logger
	recorder *metrics.Recorder
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithStrategies sets the strategies a comparison runs, in order.
func WithStrategies(ss []strategy.Strategy) AppOption {
	return func(a *Application) { a.Strategies = ss }
}

// WithInput sets the reader of the interactive prompt.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}

	programName := "stratbench"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	if err := ui.ApplyTheme(a.theme(), a.Config.NoColor); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	a.logger = logging.New(a.ErrWriter, a.Config.LogFormat, a.Config.LogLevel)
	a.recorder = metrics.NewRecorder()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if a.Config.MetricsAddr != "" {
		srv := server.New(a.Config.MetricsAddr, a.recorder.Handler(), a.logger)
		if _, err := srv.Start(ctx); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error starting metrics endpoint: %v\n", err)
			return apperrors.ExitErrorConfig
		}
	}

	orch := a.newOrchestrator()
	switch {
	case a.Config.TUI:
		return a.runTUI(ctx, orch)
	case a.Config.Interactive:
		return a.runREPL(ctx, orch, out)
	}
	return a.runCompare(ctx, orch, out)
}

func (a *Application) theme() string {
	if a.Config.Theme == "" {
		return config.DefaultTheme
	}
	return a.Config.Theme
}

func (a *Application) newOrchestrator() *orchestration.Orchestrator {
	opts := []orchestration.Option{
		orchestration.WithLogger(a.logger),
		orchestration.WithObserver(a.recorder),
	}
	if a.Strategies != nil {
		return orchestration.New(a.Strategies, opts...)
	}
	return orchestration.NewDefault(strategy.Options{
		PinThreads: a.Config.PinThreads,
		Logger:     a.logger,
	}, opts...)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	kinds := workload.TaskKinds()
	tasks := make([]string, len(kinds))
	for i, k := range kinds {
		tasks[i] = k.String()
	}
	if err := cli.GenerateCompletion(out, a.Config.Completion, tasks); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runTUI launches the interactive TUI dashboard.
func (a *Application) runTUI(ctx context.Context, orch *orchestration.Orchestrator) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()
	return tui.Run(ctx, orch, a.Config, Version)
}

// runREPL starts the interactive prompt.
func (a *Application) runREPL(ctx context.Context, orch *orchestration.Orchestrator, out io.Writer) int {
	repl := cli.NewREPL(orch, a.Config)
	repl.SetInput(a.In)
	repl.SetOutput(out)
	if a.Config.Quiet {
		repl.SetProgressReporter(orchestration.NullProgressReporter{})
	}
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
