// Package ui provides theme and color support for the application's user interface.
// It defines color schemes, ANSI escape code accessors and the display names
// of the strategies, shared by the CLI, the REPL and the TUI.
//
// This package is designed to be a shared dependency for packages that need
// color output, reducing coupling between business logic and presentation.
package ui
