// Package apperrors provides tests for application error types.
package apperrors

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "invalid flag value"},
			expected: "invalid flag value",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("invalid value %d for flag %s", 42, "--workers"),
			expected: "invalid value 42 for flag --workers",
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("test error"),
			expected:    "test error",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var configErr ConfigError
				if !errors.As(tt.err, &configErr) {
					t.Error("expected error to be ConfigError type")
				}
			}
		})
	}
}

func TestInvalidSpecError(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("compare: %w", InvalidSpecError{Field: "iterations", Message: "must be at least 1"})

	want := `compare: invalid workload "iterations": must be at least 1`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}

	var specErr InvalidSpecError
	if !errors.As(err, &specErr) {
		t.Fatal("expected errors.As to find InvalidSpecError")
	}
	if specErr.Field != "iterations" {
		t.Errorf("expected Field %q, got %q", "iterations", specErr.Field)
	}
}

func TestWorkerFaultError(t *testing.T) {
	t.Parallel()
	cause := errors.New("boom")
	tests := []struct {
		name     string
		err      WorkerFaultError
		expected string
	}{
		{
			name:     "known worker",
			err:      WorkerFaultError{Strategy: "threads", Worker: 2, Cause: cause},
			expected: "threads: worker 2 fault: boom",
		},
		{
			name:     "unknown worker",
			err:      WorkerFaultError{Strategy: "processes", Worker: -1, Cause: cause},
			expected: "processes: worker fault: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if !errors.Is(tt.err, cause) {
				t.Error("errors.Is should find the cause in the chain")
			}
		})
	}
}

func TestResourceExhaustionError(t *testing.T) {
	t.Parallel()
	cause := errors.New("fork: resource temporarily unavailable")
	err := ResourceExhaustionError{Strategy: "processes", Requested: 8, Started: 3, Cause: cause}

	want := "processes: started 3 of 8 workers: fork: resource temporarily unavailable"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the original cause")
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}

	base := errors.New("base")
	wrapped := WrapError(base, "strategy %s", "async")
	if wrapped.Error() != "strategy async: base" {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should unwrap to base")
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"invalid spec", InvalidSpecError{Field: "workers"}, ExitErrorInvalidSpec},
		{"wrapped fault", fmt.Errorf("run: %w", WorkerFaultError{Cause: errors.New("x")}), ExitErrorWorkerFault},
		{"exhaustion", ResourceExhaustionError{Cause: errors.New("x")}, ExitErrorResources},
		{"config", NewConfigError("bad"), ExitErrorConfig},
		{"generic", errors.New("other"), ExitErrorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

type testColors struct{}

func (testColors) Red() string    { return "<r>" }
func (testColors) Yellow() string { return "<y>" }
func (testColors) Reset() string  { return "</>" }

func TestHandleComparisonError(t *testing.T) {
	t.Parallel()

	t.Run("nil error prints nothing", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if code := HandleComparisonError(nil, &buf, nil); code != ExitSuccess {
			t.Errorf("expected ExitSuccess, got %d", code)
		}
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})

	t.Run("worker fault is colored red", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		err := WorkerFaultError{Strategy: "threads", Worker: 0, Cause: errors.New("panic")}
		if code := HandleComparisonError(err, &buf, testColors{}); code != ExitErrorWorkerFault {
			t.Errorf("expected ExitErrorWorkerFault, got %d", code)
		}
		if !strings.HasPrefix(buf.String(), "<r>") {
			t.Errorf("expected red prefix, got %q", buf.String())
		}
	})

	t.Run("invalid spec without colors", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		err := InvalidSpecError{Field: "iterations", Message: "must be at least 1"}
		HandleComparisonError(err, &buf, nil)
		if !strings.Contains(buf.String(), "Workload rejected") {
			t.Errorf("unexpected output %q", buf.String())
		}
	})
}
