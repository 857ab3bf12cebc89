package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "help")
	Short     string   // short flag without "-" (e.g., "h")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "number", "shell")
	IsFile    bool     // true if the flag takes a file path
	IsTask    bool     // true if values come from the task list (dynamic)
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "task", Short: "t", Help: "Task to benchmark", IsTask: true, ValueName: "task"},
	{Long: "iterations", Short: "n", Help: "Size of the iteration domain", Values: []string{"1000", "10000", "100000", "1000000"}, ValueName: "number"},
	{Long: "workers", Short: "w", Help: "Worker threads per strategy", Values: []string{"1", "2", "4", "8", "16"}, ValueName: "number"},
	{Long: "processes", Short: "p", Help: "Worker processes (0 = auto)", Values: []string{"0", "1", "2", "4"}, ValueName: "number"},
	{Long: "pin", Help: "Pin worker threads to CPUs"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "verbose", Short: "v", Help: "Show host and runtime details"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "theme", Help: "Color theme", Values: []string{"dark", "light", "none"}, ValueName: "theme"},
	{Long: "log-format", Help: "Log encoding", Values: []string{"console", "json", "plain"}, ValueName: "format"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
	{Long: "metrics-addr", Help: "Serve Prometheus metrics on this address", ValueName: "address"},
	{Long: "tui", Help: "Launch the interactive dashboard"},
	{Long: "interactive", Short: "i", Help: "Start the interactive prompt"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
	{Long: "config", Help: "YAML configuration file", IsFile: true, ValueName: "file"},
}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell").
//   - tasks: List of available task names.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, tasks []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, tasks)
	case "zsh":
		return generateZshCompletion(out, tasks)
	case "fish":
		return generateFishCompletion(out, tasks)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, tasks)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// patterns returns the flag spellings, long form first.
func patterns(f FlagCompletion, longPrefix, shortPrefix string) []string {
	var p []string
	if f.Long != "" {
		p = append(p, longPrefix+f.Long)
	}
	if f.Short != "" {
		p = append(p, shortPrefix+f.Short)
	}
	return p
}

func generateBashCompletion(out io.Writer, tasks []string) error {
	var opts []string
	for _, f := range flagRegistry {
		opts = append(opts, patterns(f, "--", "-")...)
	}

	var caseBody strings.Builder
	writeCase := func(pats []string, body string) {
		caseBody.WriteString("        ")
		caseBody.WriteString(strings.Join(pats, "|"))
		caseBody.WriteString(")\n            ")
		caseBody.WriteString(body)
		caseBody.WriteString("\n            return 0\n            ;;\n")
	}
	for _, f := range flagRegistry {
		switch {
		case f.IsTask:
			writeCase(patterns(f, "--", "-"), `COMPREPLY=( $(compgen -W "${tasks}" -- "${cur}") )`)
		case f.IsFile:
			writeCase(patterns(f, "--", "-"), `COMPREPLY=( $(compgen -f -- "${cur}") )`)
		case len(f.Values) > 0:
			writeCase(patterns(f, "--", "-"),
				fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " ")))
		}
	}

	_, err := fmt.Fprintf(out, `# Bash completion script for stratbench
# Add this to your ~/.bashrc or ~/.bash_completion

_stratbench_completions() {
    local cur prev opts tasks
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    tasks="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _stratbench_completions stratbench
`, strings.Join(opts, " "), strings.Join(tasks, " "), caseBody.String())
	if err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

func generateZshCompletion(out io.Writer, tasks []string) error {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	_, err := fmt.Fprintf(out, `#compdef stratbench

# Zsh completion script for stratbench
# Add this to your ~/.zshrc or place in $fpath

_stratbench() {
    local -a tasks
    tasks=(%s)

    _arguments -s \
%s
}

_stratbench "$@"
`, strings.Join(tasks, " "), strings.Join(args, " \\\n"))
	if err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsTask:
		valueSuffix = fmt.Sprintf(":%s:($tasks)", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

func generateFishCompletion(out io.Writer, tasks []string) error {
	lines := []string{
		"# Fish completion script for stratbench",
		"# Add this to ~/.config/fish/completions/stratbench.fish",
		"",
		"complete -c stratbench -f",
		"",
	}
	taskList := strings.Join(tasks, " ")
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f, taskList))
	}
	lines = append(lines, "")

	_, err := fmt.Fprint(out, strings.Join(lines, "\n"))
	if err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion, taskList string) string {
	parts := []string{"complete -c stratbench"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	if f.Long != "" {
		parts = append(parts, "-l "+f.Long)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsTask:
		parts = append(parts, fmt.Sprintf("-xa '%s'", taskList))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

func psQuote(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}

func generatePowerShellCompletion(out io.Writer, tasks []string) error {
	var optionEntries []string
	for _, f := range flagRegistry {
		if f.Short != "" {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '-%s'; Description = '%s' }", f.Short, f.Help))
		}
		optionEntries = append(optionEntries, fmt.Sprintf(
			"        @{Name = '--%s'; Description = '%s' }", f.Long, f.Help))
	}

	var switchEntries []string
	for _, f := range flagRegistry {
		var source string
		switch {
		case f.IsTask:
			source = "$stratbenchTasks"
		case len(f.Values) > 0 && !f.IsFile:
			source = "@(" + psQuote(f.Values) + ")"
		default:
			continue
		}
		switchEntries = append(switchEntries, fmt.Sprintf(`        { $_ -in @(%s) } {
            %s | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, psQuote(patterns(f, "--", "-")), source))
	}

	_, err := fmt.Fprintf(out, `# PowerShell completion script for stratbench
# Add this to your $PROFILE

$stratbenchTasks = @(%s)

Register-ArgumentCompleter -CommandName 'stratbench' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, psQuote(tasks), strings.Join(optionEntries, "\n"), strings.Join(switchEntries, "\n"))
	if err != nil {
		return fmt.Errorf("completion powershell generation failed: %w", err)
	}
	return nil
}
