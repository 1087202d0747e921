package formatter

import (
	"github.com/jacoelho/jolt/internal/results"
)

// Formatter renders a run summary. Implementations decide the output device.
type Formatter interface {
	Format(summary *results.Summary) error
}
