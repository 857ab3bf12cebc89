// Package config resolves the benchmark configuration from command-line
// flags, STRATBENCH_* environment variables, an optional YAML file and
// built-in defaults, in that order of priority.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/stratbench/internal/errors"
	"github.com/agbru/stratbench/internal/workload"
)

// EnvPrefix prefixes every environment variable read by this package.
const EnvPrefix = "STRATBENCH_"

// Defaults mirror the initial values of the interactive controls.
const (
	DefaultTask       = "sum"
	DefaultIterations = 1000
	DefaultWorkers    = 4
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "console"
	DefaultTheme      = "dark"
)

// SupportedShells lists the accepted values of --completion.
var SupportedShells = []string{"bash", "zsh", "fish", "powershell"}

// SupportedThemes lists the accepted values of --theme.
var SupportedThemes = []string{"dark", "light", "none"}

// SupportedLogFormats lists the accepted values of --log-format.
var SupportedLogFormats = []string{"console", "json", "plain"}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Task is the task name (sum, product, fibonacci, exponential or an alias).
	Task string `yaml:"task"`
	// Iterations is the size of the iteration domain.
	Iterations int `yaml:"iterations"`
	// Workers is the thread count of the in-process strategies.
	Workers int `yaml:"workers"`
	// Processes is the size of the process pool. Zero means derived from
	// the hardware (see ApplyHardwareDefaults).
	Processes int `yaml:"processes"`
	// PinThreads pins each detached thread to a CPU.
	PinThreads bool `yaml:"pin_threads"`
	// Quiet suppresses the spinner and banners; only the results are printed.
	Quiet bool `yaml:"quiet"`
	// Verbose adds the host and runtime snapshot to the report.
	Verbose bool `yaml:"verbose"`
	// NoColor disables ANSI colors.
	NoColor bool `yaml:"no_color"`
	// Theme is the color scheme (dark, light or none).
	Theme string `yaml:"theme"`
	// LogLevel is the zerolog level of the stderr logger.
	LogLevel string `yaml:"log_level"`
	// LogFormat selects the stderr log encoding (console, json or plain).
	LogFormat string `yaml:"log_format"`
	// MetricsAddr, when set, serves Prometheus metrics on this address.
	MetricsAddr string `yaml:"metrics_addr"`
	// TUI launches the dashboard.
	TUI bool `yaml:"tui"`
	// Interactive launches the REPL.
	Interactive bool `yaml:"-"`
	// Completion prints a completion script for the given shell and exits.
	Completion string `yaml:"-"`
	// ConfigFile is the YAML file the configuration was loaded from.
	ConfigFile string `yaml:"-"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() AppConfig {
	return AppConfig{
		Task:       DefaultTask,
		Iterations: DefaultIterations,
		Workers:    DefaultWorkers,
		LogLevel:   DefaultLogLevel,
		LogFormat:  DefaultLogFormat,
		Theme:      DefaultTheme,
	}
}

// ParseConfig parses args and resolves the final configuration.
//
// Flags always win. For every flag that was not given, the matching
// STRATBENCH_* variable is used, then the YAML file named by --config (or
// STRATBENCH_CONFIG), then the default.
//
// Parameters:
//   - programName: The name shown in usage output.
//   - args: The command-line arguments, without the program name.
//   - errorWriter: Receives usage and parse errors.
//
// Returns:
//   - AppConfig: The validated configuration.
//   - error: flag.ErrHelp for --help, otherwise a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	firstPass := DefaultConfig()
	fs := newFlagSet(programName, &firstPass, errorWriter)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg := DefaultConfig()
	path := firstPass.ConfigFile
	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return AppConfig{}, err
		}
	}
	applyEnvOverrides(&cfg, fs)

	// Second pass: explicit flags override the file and the environment.
	final := newFlagSet(programName, &cfg, io.Discard)
	if err := final.Parse(args); err != nil {
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	cfg.ConfigFile = path

	cfg = ApplyHardwareDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func newFlagSet(programName string, cfg *AppConfig, errorWriter io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errorWriter, "Times the same CPU-bound workload under four concurrency strategies:\n")
		fmt.Fprintf(errorWriter, "a thread pool, a process pool, detached threads and a cooperative loop.\n\n")
		fmt.Fprintf(errorWriter, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(errorWriter, "\nEvery option can also be set with a %s<NAME> environment variable\n", EnvPrefix)
		fmt.Fprintf(errorWriter, "(e.g. %sITERATIONS=50000) or in the YAML file given to -config.\n", EnvPrefix)
	}

	fs.StringVar(&cfg.Task, "task", cfg.Task, "Task to compute: sum, product, fibonacci or exponential.")
	fs.StringVar(&cfg.Task, "t", cfg.Task, "Shorthand for -task.")
	fs.IntVar(&cfg.Iterations, "iterations", cfg.Iterations, fmt.Sprintf("Size of the iteration domain (1 to %d).", MaxIterations))
	fs.IntVar(&cfg.Iterations, "n", cfg.Iterations, "Shorthand for -iterations.")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, fmt.Sprintf("Threads for the in-process strategies (1 to %d).", MaxWorkers))
	fs.IntVar(&cfg.Workers, "w", cfg.Workers, "Shorthand for -workers.")
	fs.IntVar(&cfg.Processes, "processes", cfg.Processes, "Worker processes for the process pool (0 = min(4, CPUs)).")
	fs.IntVar(&cfg.Processes, "p", cfg.Processes, "Shorthand for -processes.")
	fs.BoolVar(&cfg.PinThreads, "pin", cfg.PinThreads, "Pin each detached thread to a CPU (Linux only).")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "Print only the results table.")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "Shorthand for -quiet.")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Show host and runtime details with the results.")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Shorthand for -verbose.")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colored output.")
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "Color theme: dark, light or none.")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error.")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log encoding on stderr: console, json or plain.")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "Launch the interactive dashboard.")
	fs.BoolVar(&cfg.Interactive, "interactive", cfg.Interactive, "Start an interactive prompt.")
	fs.BoolVar(&cfg.Interactive, "i", cfg.Interactive, "Shorthand for -interactive.")
	fs.StringVar(&cfg.Completion, "completion", cfg.Completion, "Print a completion script (bash, zsh, fish, powershell).")
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "Load settings from a YAML file.")
	return fs
}

// LoadFile overlays the keys present in the YAML file onto cfg.
func LoadFile(path string, cfg *AppConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.NewConfigError("reading config file: %v", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.NewConfigError("parsing config file %s: %v", path, err)
	}
	return nil
}

// Validate checks the configuration-level bounds. Lower bounds of the
// workload itself are checked by ToSpec.
func (c AppConfig) Validate() error {
	if _, err := workload.ParseTaskKind(c.Task); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.Iterations > MaxIterations {
		return apperrors.NewConfigError("iterations must be at most %d, got %d", MaxIterations, c.Iterations)
	}
	if c.Workers > MaxWorkers {
		return apperrors.NewConfigError("workers must be at most %d, got %d", MaxWorkers, c.Workers)
	}
	if maxProc := MaxProcesses(); c.Processes > maxProc {
		return apperrors.NewConfigError("processes must be at most %d (CPU count), got %d", maxProc, c.Processes)
	}
	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
			return apperrors.NewConfigError("invalid log level %q", c.LogLevel)
		}
	}
	if c.Theme != "" && !slices.Contains(SupportedThemes, c.Theme) {
		return apperrors.NewConfigError("unknown theme %q (supported: %s)", c.Theme, strings.Join(SupportedThemes, ", "))
	}
	if c.LogFormat != "" && !slices.Contains(SupportedLogFormats, c.LogFormat) {
		return apperrors.NewConfigError("unknown log format %q (supported: %s)", c.LogFormat, strings.Join(SupportedLogFormats, ", "))
	}
	if c.Completion != "" && !slices.Contains(SupportedShells, c.Completion) {
		return apperrors.NewConfigError("unsupported shell %q (supported: %s)", c.Completion, strings.Join(SupportedShells, ", "))
	}
	if c.TUI && c.Interactive {
		return apperrors.NewConfigError("-tui and -interactive are mutually exclusive")
	}
	return nil
}

// ToSpec builds the workload the configuration describes.
func (c AppConfig) ToSpec() (workload.Spec, error) {
	kind, err := workload.ParseTaskKind(c.Task)
	if err != nil {
		return workload.Spec{}, err
	}
	return workload.NewSpec(kind, c.Iterations, c.Workers, c.Processes)
}
