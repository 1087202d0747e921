package stdout

import (
	"fmt"
	"io"
	"os"

	"github.com/jacoelho/jolt/internal/formatter"
	"github.com/jacoelho/jolt/internal/results"
)

const separator = "--------------------------------------------------------------------------------"

// Formatter writes a plain text summary.
type Formatter struct {
	writer io.Writer
}

// New creates a formatter writing to stderr, leaving stdout to the
// transformed records.
func New() formatter.Formatter {
	return &Formatter{
		writer: os.Stderr,
	}
}

// NewWithWriter creates a formatter with a custom writer.
func NewWithWriter(writer io.Writer) formatter.Formatter {
	return &Formatter{
		writer: writer,
	}
}

func (f *Formatter) Format(s *results.Summary) error {
	if s == nil {
		return nil
	}

	for _, failure := range s.Failures {
		_, err := fmt.Fprintf(f.writer, "record %d: Failed: %v (%d us)\n",
			failure.Record, failure.Error, failure.Duration.Microseconds())
		if err != nil {
			return err
		}
	}

	lines := []string{
		separator,
		fmt.Sprintf("Run:               %s", s.RunID),
		fmt.Sprintf("Records:           %d (%.2f/s)", s.Records, s.RecordsPerSecond()),
		fmt.Sprintf("Succeeded records: %d (%.1f%%)", s.Succeeded, s.SuccessPercentage()),
		fmt.Sprintf("Failed records:    %d (%.1f%%)", s.Failed, s.FailurePercentage()),
		fmt.Sprintf("Transform time:    %d ms", s.Busy.Milliseconds()),
		fmt.Sprintf("Duration:          %d ms", s.TotalDuration.Milliseconds()),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(f.writer, line); err != nil {
			return err
		}
	}

	return nil
}
