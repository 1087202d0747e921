package exit

import (
	"fmt"
	"io"
	"os"
)

const (
	CodeSuccess = 0
	CodeFailure = 1
	CodeUsage   = 2
)

// Result holds the output destination and exit code for program termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the result message to the configured output destination.
func (r *Result) Print() {
	if r.Message == "" {
		return
	}
	fmt.Fprintln(r.Output, r.Message)
}

// Success creates a successful exit result that outputs to stdout with exit code 0.
func Success(message string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: CodeSuccess,
		Message:  message,
	}
}

// Error creates an error exit result that outputs to stderr with exit code 1.
func Error(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeFailure,
		Message:  message,
	}
}

// Errorf creates an error exit result with formatted message.
func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}

// Usagef reports invalid command line usage with exit code 2.
func Usagef(format string, a ...any) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeUsage,
		Message:  fmt.Sprintf(format, a...),
	}
}
