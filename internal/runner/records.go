package runner

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jacoelho/jolt/internal/document"
	"github.com/jacoelho/jolt/internal/results"
)

// maxRecordSize bounds a single input line.
const maxRecordSize = 16 << 20

// record is one non-blank input line. seq orders outputs, line is 1-based.
type record struct {
	seq  int
	line int
	data []byte
}

type outcome struct {
	record   record
	payload  []byte
	duration time.Duration
	err      error
}

// processLines transforms newline-delimited records with a pool of workers
// and writes the outputs in input order.
func (r *Runner) processLines(ctx context.Context, in io.Reader, out io.Writer, summary *results.Summary) error {
	workers := max(r.config.Workers, 1)

	g, ctx := errgroup.WithContext(ctx)
	records := make(chan record, workers)
	outcomes := make(chan outcome, workers)

	g.Go(func() error {
		defer close(records)
		return r.readRecords(ctx, in, records)
	})

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return r.transformRecords(ctx, records, outcomes)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(outcomes)
		return nil
	})

	g.Go(func() error {
		return r.writeOrdered(out, outcomes, summary)
	})

	return g.Wait()
}

func (r *Runner) readRecords(ctx context.Context, in io.Reader, records chan<- record) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)

	seq, line := 0, 0
	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}

		if err := r.rateLimiter.Wait(ctx); err != nil {
			return err
		}

		rec := record{seq: seq, line: line, data: bytes.Clone(data)}
		seq++

		select {
		case records <- rec:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input line %d: %w", line+1, err)
	}
	return nil
}

func (r *Runner) transformRecords(ctx context.Context, records <-chan record, outcomes chan<- outcome) error {
	for rec := range records {
		start := time.Now()
		payload, err := r.transformRecord(rec.data)

		select {
		case outcomes <- outcome{record: rec, payload: payload, duration: time.Since(start), err: err}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// transformRecord produces the output lines of one record. A select query
// yields one line per match.
func (r *Runner) transformRecord(data []byte) ([]byte, error) {
	input, err := document.Unmarshal(data)
	if err != nil {
		return nil, err
	}

	output, err := r.spec.Transform(input)
	if err != nil {
		return nil, err
	}

	if r.selector == nil {
		return r.encode(output, false)
	}

	nodes, err := r.selectNodes(output)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for _, node := range nodes {
		line, err := r.encode(node, false)
		if err != nil {
			return nil, err
		}
		buf.Write(line)
	}
	return buf.Bytes(), nil
}

// writeOrdered buffers out-of-order outcomes until their predecessors have
// been written.
func (r *Runner) writeOrdered(out io.Writer, outcomes <-chan outcome, summary *results.Summary) error {
	w := bufio.NewWriter(out)
	pending := make(map[int]outcome)
	next := 0

	for o := range outcomes {
		pending[o.record.seq] = o

		for {
			current, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++

			if err := r.emit(w, current, summary); err != nil {
				// flush what was accepted before the failing record
				return joinFlush(w, err)
			}
		}
	}

	return w.Flush()
}

func (r *Runner) emit(w *bufio.Writer, o outcome, summary *results.Summary) error {
	summary.Add(results.NewRecordResultBuilder(o.record.line).
		WithDuration(o.duration).
		WithError(o.err))

	if o.err != nil {
		if !r.config.ContinueOnError {
			return fmt.Errorf("record %d: %w", o.record.line, o.err)
		}
		r.logger.WithField("record", o.record.line).WithError(o.err).Warn("record skipped")
		return nil
	}

	r.logger.WithFields(logrus.Fields{
		"record":   o.record.line,
		"duration": o.duration,
	}).Trace("record transformed")

	_, err := w.Write(o.payload)
	return err
}

func joinFlush(w *bufio.Writer, err error) error {
	if flushErr := w.Flush(); flushErr != nil {
		return fmt.Errorf("%w (flush: %v)", err, flushErr)
	}
	return err
}
