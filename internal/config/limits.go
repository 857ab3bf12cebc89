package config

import "runtime"

// Resolution chain for the worker counts (highest priority first):
//   1. CLI flags (--workers, --processes)
//   2. Environment variables (STRATBENCH_WORKERS, STRATBENCH_PROCESSES)
//   3. YAML config file
//   4. Hardware estimation (this file)

const (
	// MaxIterations bounds the iteration domain.
	MaxIterations = 1_000_000
	// MaxWorkers bounds the thread count of the in-process strategies.
	MaxWorkers = 64
	// defaultProcessCap is the process count used on machines with more CPUs.
	defaultProcessCap = 4
)

// MaxProcesses is the largest accepted process-pool size: one per CPU.
func MaxProcesses() int {
	return runtime.NumCPU()
}

// EstimateProcesses returns the default process-pool size, capped by the
// CPU count so a small machine is not oversubscribed.
func EstimateProcesses() int {
	return min(defaultProcessCap, MaxProcesses())
}

// ApplyHardwareDefaults fills the hardware-dependent settings left at zero.
func ApplyHardwareDefaults(cfg AppConfig) AppConfig {
	if cfg.Processes == 0 {
		cfg.Processes = EstimateProcesses()
	}
	return cfg
}
