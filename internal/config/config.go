package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/theory/jsonpath"

	"github.com/jacoelho/jolt/internal/exit"
	"github.com/jacoelho/jolt/internal/logging"
	"github.com/jacoelho/jolt/internal/yaml"
)

// Stdio names standard input or output in --input and --output.
const Stdio = "-"

var (
	ErrNoArguments        = errors.New("no arguments provided")
	ErrMissingSpec        = errors.New("--spec is required")
	ErrUnsupportedSpec    = errors.New("--spec must be a .json, .yaml or .yml file")
	ErrInvalidWorkers     = errors.New("--workers must be at least 1")
	ErrInvalidRateLimit   = errors.New("--rate-limit cannot be negative")
	ErrInvalidSelect      = errors.New("--select must be a valid JSONPath query")
	ErrConflictingOutput  = errors.New("--pretty and --compact are mutually exclusive")
	ErrUnexpectedArgument = errors.New("unexpected positional argument")
)

// Config represents the complete configuration for the jolt tool.
type Config struct {
	SpecFile   string
	InputFile  string
	OutputFile string

	// Record processing
	Lines           bool
	Workers         int
	RateLimit       float64 // Records per second (0 = unlimited)
	ContinueOnError bool

	// Output
	Select  string
	Pretty  bool
	Summary bool

	ValidateOnly bool

	LogLevel  logrus.Level
	LogFormat string
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.SpecFile == "" {
		return ErrMissingSpec
	}
	if !yaml.Supported(c.SpecFile) {
		return fmt.Errorf("%w, got: %s", ErrUnsupportedSpec, c.SpecFile)
	}
	if _, err := os.Stat(c.SpecFile); err != nil {
		return fmt.Errorf("spec file %s not found: %w", c.SpecFile, err)
	}

	if c.InputFile != Stdio && !c.ValidateOnly {
		if _, err := os.Stat(c.InputFile); err != nil {
			return fmt.Errorf("input file %s not found: %w", c.InputFile, err)
		}
	}

	if c.Workers < 1 {
		return fmt.Errorf("%w, got: %d", ErrInvalidWorkers, c.Workers)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("%w, got: %g", ErrInvalidRateLimit, c.RateLimit)
	}

	if c.Select != "" {
		if _, err := jsonpath.Parse(c.Select); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSelect, err)
		}
	}

	return nil
}

// isTerminal reports whether stdout is attached to a terminal.
var isTerminal = func() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Usagef("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := pflag.NewFlagSet(args[0], pflag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		specFile        = fs.StringP("spec", "s", "", "Path to the transformation spec (.json, .yaml, .yml)")
		inputFile       = fs.StringP("input", "i", Stdio, "Input file, - for stdin")
		outputFile      = fs.StringP("output", "o", Stdio, "Output file, - for stdout")
		lines           = fs.Bool("lines", false, "Treat each input line as a separate JSON record")
		workers         = fs.IntP("workers", "w", 1, "Number of concurrent workers in lines mode")
		rateLimit       = fs.Float64("rate-limit", 0, "Rate limit in records per second (0 for unlimited)")
		selectExpr      = fs.String("select", "", "JSONPath query applied to each transformed document")
		pretty          = fs.Bool("pretty", false, "Indent output")
		compact         = fs.Bool("compact", false, "Write compact output")
		continueOnError = fs.Bool("continue-on-error", false, "Skip failing records in lines mode")
		summary         = fs.Bool("summary", false, "Print a run summary to stderr")
		validateOnly    = fs.Bool("validate", false, "Compile the spec and exit")
		logLevel        = fs.String("log-level", os.Getenv(logging.EnvLogLevel), "Log level (env "+logging.EnvLogLevel+")")
		logFormat       = fs.String("log-format", os.Getenv(logging.EnvLogFormat), "Log format: text or json (env "+logging.EnvLogFormat+")")
	)

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Usagef("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	if fs.NArg() > 0 {
		return nil, exit.Usagef("Error: %v: %s\n\n%s", ErrUnexpectedArgument, fs.Arg(0), Usage())
	}
	if *pretty && *compact {
		return nil, exit.Usagef("Error: %v\n\n%s", ErrConflictingOutput, Usage())
	}

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		return nil, exit.Usagef("Error: %v\n\n%s", err, Usage())
	}
	format, err := logging.ParseFormat(*logFormat)
	if err != nil {
		return nil, exit.Usagef("Error: %v\n\n%s", err, Usage())
	}

	config := &Config{
		SpecFile:        *specFile,
		InputFile:       *inputFile,
		OutputFile:      *outputFile,
		Lines:           *lines,
		Workers:         *workers,
		RateLimit:       *rateLimit,
		ContinueOnError: *continueOnError,
		Select:          *selectExpr,
		Pretty:          resolvePretty(*pretty, *compact, *outputFile),
		Summary:         *summary,
		ValidateOnly:    *validateOnly,
		LogLevel:        level,
		LogFormat:       format,
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Usagef("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

// resolvePretty indents output written to a terminal unless a flag says
// otherwise.
func resolvePretty(pretty, compact bool, output string) bool {
	switch {
	case pretty:
		return true
	case compact:
		return false
	default:
		return output == Stdio && isTerminal()
	}
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `jolt - JSON to JSON transformation

Usage: jolt --spec FILE [options]

Options:
  -s, --spec FILE           Transformation spec (.json, .yaml or .yml)
  -i, --input FILE          Input file (default: - for stdin)
  -o, --output FILE         Output file (default: - for stdout)
      --lines               Treat each input line as a separate JSON record
  -w, --workers N           Concurrent workers in lines mode (default: 1)
      --rate-limit N        Rate limit in records per second (0 for unlimited)
      --select EXPR         JSONPath query applied to each transformed document
      --pretty              Indent output (default when stdout is a terminal)
      --compact             Write compact output
      --continue-on-error   Skip failing records in lines mode
      --summary             Print a run summary to stderr
      --validate            Compile the spec and exit
      --log-level LEVEL     Log level (env JOLT_LOG_LEVEL, default: info)
      --log-format FORMAT   Log format: text or json (env JOLT_LOG_FORMAT, default: text)
  -h, --help                Show this help message

Examples:
  jolt -s spec.json -i input.json                 # Transform one document
  jolt -s spec.yaml --lines -w 4 < records.ndjson  # Transform newline-delimited records
  jolt -s spec.json --select '$.ratings[*]'        # Project the output with JSONPath
  jolt -s spec.json --validate                    # Check the spec compiles`
}
