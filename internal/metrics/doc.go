// Package metrics exposes benchmark measurements to Prometheus and takes
// runtime snapshots of the benchmark process itself.
package metrics
