// Package workload describes what a comparison computes: the task kind, the
// iteration domain and how that domain is split into per-worker chunks. It
// also hosts the CPU-bound task library every strategy executes.
package workload

import (
	"fmt"
	"strings"

	apperrors "github.com/agbru/stratbench/internal/errors"
)

// TaskKind identifies one of the CPU-bound functions of the task library.
type TaskKind int

const (
	Sum TaskKind = iota
	Product
	Fibonacci
	Exponential
)

var taskNames = [...]string{
	Sum:         "sum",
	Product:     "product",
	Fibonacci:   "fibonacci",
	Exponential: "exponential",
}

// TaskKinds returns every task kind in declaration order.
func TaskKinds() []TaskKind {
	return []TaskKind{Sum, Product, Fibonacci, Exponential}
}

// String returns the canonical lowercase name of the task.
func (k TaskKind) String() string {
	if k.Valid() {
		return taskNames[k]
	}
	return fmt.Sprintf("TaskKind(%d)", int(k))
}

// Valid reports whether k is one of the known task kinds.
func (k TaskKind) Valid() bool {
	return k >= Sum && k <= Exponential
}

// ParseTaskKind resolves a task name. Matching is case-insensitive and
// accepts the short aliases "add", "mul", "fib" and "exp".
func ParseTaskKind(s string) (TaskKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sum", "add":
		return Sum, nil
	case "product", "mul":
		return Product, nil
	case "fibonacci", "fib":
		return Fibonacci, nil
	case "exponential", "exp":
		return Exponential, nil
	}
	return 0, apperrors.InvalidSpecError{
		Field:   "task",
		Message: fmt.Sprintf("unknown task %q (accepted: %s)", s, strings.Join(taskNames[:], ", ")),
	}
}

// Spec is the immutable description of one comparison run: which task to
// compute, over how many iterations, with how many workers. Build it with
// NewSpec; the zero value is invalid and is rejected by Validate.
type Spec struct {
	task           TaskKind
	iterations     int
	workers        int
	processWorkers int
}

// NewSpec validates its arguments and returns a Spec.
//
// Parameters:
//   - task: The task to compute.
//   - iterations: The size of the iteration domain [0, iterations). Must be >= 1.
//   - workers: The number of workers per strategy. Must be >= 1.
//   - processWorkers: The worker count for the process pool. 0 means "same as workers".
//
// Returns:
//   - Spec: The validated workload.
//   - error: An apperrors.InvalidSpecError when a value is out of range.
func NewSpec(task TaskKind, iterations, workers, processWorkers int) (Spec, error) {
	s := Spec{task: task, iterations: iterations, workers: workers, processWorkers: processWorkers}
	if err := s.Validate(); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// MustSpec is like NewSpec but panics on invalid input. Intended for tests
// and constant workloads.
func MustSpec(task TaskKind, iterations, workers int) Spec {
	s, err := NewSpec(task, iterations, workers, 0)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks the invariants of the workload.
func (s Spec) Validate() error {
	switch {
	case !s.task.Valid():
		return apperrors.InvalidSpecError{Field: "task", Message: fmt.Sprintf("unknown task kind %d", int(s.task))}
	case s.iterations < 1:
		return apperrors.InvalidSpecError{Field: "iterations", Message: fmt.Sprintf("must be at least 1, got %d", s.iterations)}
	case s.workers < 1:
		return apperrors.InvalidSpecError{Field: "workers", Message: fmt.Sprintf("must be at least 1, got %d", s.workers)}
	case s.processWorkers < 0:
		return apperrors.InvalidSpecError{Field: "processes", Message: fmt.Sprintf("must not be negative, got %d", s.processWorkers)}
	}
	return nil
}

// Task returns the task kind.
func (s Spec) Task() TaskKind { return s.task }

// Iterations returns the size of the iteration domain.
func (s Spec) Iterations() int { return s.iterations }

// Workers returns the worker count used by the goroutine and thread strategies.
func (s Spec) Workers() int { return s.workers }

// ProcessWorkers returns the worker count used by the process pool.
func (s Spec) ProcessWorkers() int {
	if s.processWorkers > 0 {
		return s.processWorkers
	}
	return s.workers
}

// Domain returns the full iteration range [0, Iterations).
func (s Spec) Domain() Range {
	return Range{Start: 0, End: s.iterations}
}

// String renders the workload for logs.
func (s Spec) String() string {
	return fmt.Sprintf("%s x%d (workers=%d, processes=%d)", s.task, s.iterations, s.workers, s.ProcessWorkers())
}
