// Package runner drives transformations over documents and record streams.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/theory/jsonpath"

	"github.com/jacoelho/jolt"
	"github.com/jacoelho/jolt/internal/config"
	"github.com/jacoelho/jolt/internal/document"
	"github.com/jacoelho/jolt/internal/exit"
	"github.com/jacoelho/jolt/internal/formatter"
	"github.com/jacoelho/jolt/internal/formatter/stdout"
	"github.com/jacoelho/jolt/internal/logging"
	"github.com/jacoelho/jolt/internal/ratelimit"
	"github.com/jacoelho/jolt/internal/results"
	"github.com/jacoelho/jolt/internal/yaml"
)

// Streams are the process's standard streams.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// DefaultStreams returns the os standard streams.
func DefaultStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Runner applies one compiled spec to its input.
type Runner struct {
	config      *config.Config
	spec        *jolt.Spec
	selector    *jsonpath.Path
	rateLimiter *ratelimit.Limiter
	formatter   formatter.Formatter
	logger      *logrus.Entry
	streams     Streams
	runID       string
}

// New loads and compiles the configured spec.
// If creation fails, returns nil runner and exit result.
func New(cfg *config.Config, streams Streams) (*Runner, *exit.Result) {
	runID := uuid.NewString()
	logger := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: streams.Err,
	}).WithField("run", runID)

	tree, err := yaml.Load(cfg.SpecFile)
	if err != nil {
		return nil, exit.Errorf("Error loading spec %s: %v", cfg.SpecFile, err)
	}

	spec, err := jolt.CompileSpec(tree)
	if err != nil {
		return nil, exit.Errorf("Error compiling spec %s: %v", cfg.SpecFile, err)
	}

	var selector *jsonpath.Path
	if cfg.Select != "" {
		selector, err = jsonpath.Parse(cfg.Select)
		if err != nil {
			return nil, exit.Errorf("Error parsing select query: %v", err)
		}
	}

	logger.WithFields(logrus.Fields{
		"spec":       cfg.SpecFile,
		"operations": len(spec.Operations()),
	}).Debug("spec compiled")

	return &Runner{
		config:      cfg,
		spec:        spec,
		selector:    selector,
		rateLimiter: ratelimit.New(cfg.RateLimit),
		formatter:   stdout.NewWithWriter(streams.Err),
		logger:      logger,
		streams:     streams,
		runID:       runID,
	}, nil
}

// Run processes the configured input and returns the process exit code.
func (r *Runner) Run(ctx context.Context) int {
	if r.config.ValidateOnly {
		fmt.Fprintf(r.streams.Out, "%s: %d operation(s) OK\n", r.config.SpecFile, len(r.spec.Operations()))
		return exit.CodeSuccess
	}

	summary, err := r.Execute(ctx)
	if err != nil {
		r.logger.WithError(err).Error("run failed")
	}

	if r.config.Summary && summary != nil {
		if err := r.formatter.Format(summary); err != nil {
			r.logger.WithError(err).Error("failed to write summary")
		}
	}

	if err != nil || summary.HasFailures() {
		return exit.CodeFailure
	}
	return exit.CodeSuccess
}

// Execute opens the configured input and output and transforms every record.
// The summary is returned even when the run fails.
func (r *Runner) Execute(ctx context.Context) (*results.Summary, error) {
	summary := results.NewSummary(r.runID)
	start := time.Now()
	defer func() {
		summary.SetTotalDuration(time.Since(start))
	}()

	in, closeIn, err := r.openInput()
	if err != nil {
		return summary, err
	}
	defer closeIn()

	out, closeOut, err := r.openOutput()
	if err != nil {
		return summary, err
	}

	if r.config.Lines {
		err = r.processLines(ctx, in, out, summary)
	} else {
		err = r.processDocument(ctx, in, out, summary)
	}

	return summary, errors.Join(err, closeOut())
}

func (r *Runner) openInput() (io.Reader, func(), error) {
	if r.config.InputFile == config.Stdio {
		return r.streams.In, func() {}, nil
	}

	file, err := os.Open(r.config.InputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input %s: %w", r.config.InputFile, err)
	}
	return file, func() { file.Close() }, nil
}

func (r *Runner) openOutput() (io.Writer, func() error, error) {
	if r.config.OutputFile == config.Stdio {
		return r.streams.Out, func() error { return nil }, nil
	}

	file, err := os.Create(r.config.OutputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output %s: %w", r.config.OutputFile, err)
	}
	return file, file.Close, nil
}

// processDocument transforms the whole input as one document.
func (r *Runner) processDocument(ctx context.Context, in io.Reader, out io.Writer, summary *results.Summary) error {
	if err := r.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	start := time.Now()
	payload, err := r.transformDocument(in)
	summary.Add(results.NewRecordResultBuilder(1).
		WithDuration(time.Since(start)).
		WithError(err))
	if err != nil {
		return fmt.Errorf("record 1: %w", err)
	}

	_, err = out.Write(payload)
	return err
}

func (r *Runner) transformDocument(in io.Reader) ([]byte, error) {
	input, err := document.Decode(in)
	if err != nil {
		return nil, err
	}

	output, err := r.spec.Transform(input)
	if err != nil {
		return nil, err
	}

	if r.selector != nil {
		output, err = r.selectNodes(output)
		if err != nil {
			return nil, err
		}
	}

	return r.encode(output, r.config.Pretty)
}

// selectNodes projects a transformed document through the select query.
func (r *Runner) selectNodes(output any) ([]any, error) {
	nodes := r.selector.Select(document.ToGo(output))

	selected := make([]any, 0, len(nodes))
	for _, node := range nodes {
		value, err := document.FromGo(node)
		if err != nil {
			return nil, fmt.Errorf("select: %w", err)
		}
		selected = append(selected, value)
	}
	return selected, nil
}

func (r *Runner) encode(value any, pretty bool) ([]byte, error) {
	var (
		payload []byte
		err     error
	)
	if pretty {
		payload, err = document.MarshalIndent(value, "", "  ")
	} else {
		payload, err = document.Marshal(value)
	}
	if err != nil {
		return nil, fmt.Errorf("encode output: %w", err)
	}
	return append(payload, '\n'), nil
}
