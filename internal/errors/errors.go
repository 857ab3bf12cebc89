package apperrors

import (
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess          = 0 // Indicates successful execution.
	ExitErrorGeneric     = 1 // Indicates a generic error.
	ExitErrorInvalidSpec = 2 // Indicates the workload was rejected before any run.
	ExitErrorWorkerFault = 3 // Indicates a worker faulted during a strategy run.
	ExitErrorConfig      = 4 // Indicates a configuration error.
	ExitErrorResources   = 5 // Indicates workers could not be spawned.
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// InvalidSpecError reports a workload that cannot be run. It is raised before
// any strategy executes, so no timing is ever recorded for it.
type InvalidSpecError struct {
	// Field is the name of the workload field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e InvalidSpecError) Error() string {
	return fmt.Sprintf("invalid workload %q: %s", e.Field, e.Message)
}

// WorkerFaultError reports an unexpected fault inside a worker (a panicking
// goroutine, a crashed or misbehaving child process) while a strategy was
// executing its chunks. The in-flight strategy and the whole comparison are
// aborted.
type WorkerFaultError struct {
	// Strategy is the name of the strategy that was running.
	Strategy string
	// Worker is the index of the faulting worker, or -1 when unknown.
	Worker int
	// Cause is the underlying fault.
	Cause error
}

// Error returns a formatted message describing the fault.
func (e WorkerFaultError) Error() string {
	if e.Worker < 0 {
		return fmt.Sprintf("%s: worker fault: %v", e.Strategy, e.Cause)
	}
	return fmt.Sprintf("%s: worker %d fault: %v", e.Strategy, e.Worker, e.Cause)
}

// Unwrap returns the underlying fault.
func (e WorkerFaultError) Unwrap() error { return e.Cause }

// ResourceExhaustionError reports that a strategy could not spawn the
// requested number of workers.
type ResourceExhaustionError struct {
	// Strategy is the name of the strategy that was starting.
	Strategy string
	// Requested is the number of workers asked for.
	Requested int
	// Started is the number of workers that came up before the failure.
	Started int
	// Cause is the underlying error returned by the OS or runtime.
	Cause error
}

// Error returns a formatted message describing the exhaustion.
func (e ResourceExhaustionError) Error() string {
	return fmt.Sprintf("%s: started %d of %d workers: %v", e.Strategy, e.Started, e.Requested, e.Cause)
}

// Unwrap returns the underlying error.
func (e ResourceExhaustionError) Unwrap() error { return e.Cause }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}
