// Package cli implements the command-line presentation of a comparison:
// the spinner progress reporter, the results table and bar chart, the
// interactive prompt and the shell completion scripts.
//
// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayProgress], [DisplayRuntimeStats].
//
//   - Format* and Render* functions return a string without performing I/O.
//     Examples: [FormatVsFastest], [RenderBarChart].
//
//   - Print* functions write the banners shown before a run.
//     Examples: [PrintExecutionConfig], [PrintHostInfo].
package cli
