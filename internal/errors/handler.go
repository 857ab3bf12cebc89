package apperrors

import (
	"errors"
	"fmt"
	"io"
)

// ColorProvider supplies the escape sequences used when printing errors.
// A nil provider prints plain text.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// ExitCode maps an error to the process exit code that describes it.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		specErr   InvalidSpecError
		faultErr  WorkerFaultError
		resErr    ResourceExhaustionError
		configErr ConfigError
	)
	switch {
	case errors.As(err, &specErr):
		return ExitErrorInvalidSpec
	case errors.As(err, &faultErr):
		return ExitErrorWorkerFault
	case errors.As(err, &resErr):
		return ExitErrorResources
	case errors.As(err, &configErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

// HandleComparisonError prints a one-line description of a failed comparison
// and returns the matching exit code.
//
// Parameters:
//   - err: The error returned by the comparison. A nil error prints nothing.
//   - out: The writer receiving the message.
//   - colors: Optional color provider.
//
// Returns:
//   - int: The exit code for err.
func HandleComparisonError(err error, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	red, yellow, reset := "", "", ""
	if colors != nil {
		red, yellow, reset = colors.Red(), colors.Yellow(), colors.Reset()
	}

	code := ExitCode(err)
	switch code {
	case ExitErrorInvalidSpec:
		fmt.Fprintf(out, "%sWorkload rejected:%s %v\n", yellow, reset, err)
	case ExitErrorWorkerFault:
		fmt.Fprintf(out, "%sComparison aborted, a worker faulted:%s %v\n", red, reset, err)
	case ExitErrorResources:
		fmt.Fprintf(out, "%sComparison aborted, could not spawn workers:%s %v\n", red, reset, err)
	case ExitErrorConfig:
		fmt.Fprintf(out, "%sConfiguration error:%s %v\n", yellow, reset, err)
	default:
		fmt.Fprintf(out, "%sComparison failed:%s %v\n", red, reset, err)
	}
	return code
}
