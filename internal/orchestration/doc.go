// Package orchestration runs every strategy against the same workload, one
// after the other, and assembles their wall-clock timings into a ResultSet.
// It decouples the benchmark engine from presentation via the
// ProgressReporter and ResultPresenter interfaces.
package orchestration
