// Package logging provides a unified logging interface for the benchmark
// engine. It abstracts the underlying logging implementation, allowing
// consistent logging across strategies and the orchestrator while supporting
// multiple backends.
package logging
