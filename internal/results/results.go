// Package results accumulates the outcome of a transformation run.
package results

import (
	"time"
)

// RecordResult is the outcome of one input record. Record is 1-based.
type RecordResult struct {
	Record   int
	Duration time.Duration
	Error    error
}

type RecordResultBuilder struct {
	record   int
	duration time.Duration
	err      error
}

func NewRecordResultBuilder(record int) *RecordResultBuilder {
	return &RecordResultBuilder{
		record: record,
	}
}

func (b *RecordResultBuilder) WithDuration(duration time.Duration) *RecordResultBuilder {
	b.duration = duration
	return b
}

func (b *RecordResultBuilder) WithError(err error) *RecordResultBuilder {
	b.err = err
	return b
}

func (b *RecordResultBuilder) Build() RecordResult {
	return RecordResult{
		Record:   b.record,
		Duration: b.duration,
		Error:    b.err,
	}
}

// Summary counts processed records. Only failed records are kept.
type Summary struct {
	RunID         string
	Failures      []RecordResult
	Records       int
	Succeeded     int
	Failed        int
	Busy          time.Duration
	TotalDuration time.Duration
}

func NewSummary(runID string) *Summary {
	return &Summary{
		RunID: runID,
	}
}

// Add is not safe for concurrent use.
func (s *Summary) Add(builder *RecordResultBuilder) {
	result := builder.Build()

	s.Records++
	s.Busy += result.Duration

	if result.Error != nil {
		s.Failed++
		s.Failures = append(s.Failures, result)
	} else {
		s.Succeeded++
	}
}

func (s *Summary) SetTotalDuration(duration time.Duration) {
	s.TotalDuration = duration
}

func (s *Summary) HasFailures() bool {
	return s.Failed > 0
}

func (s *Summary) RecordsPerSecond() float64 {
	if s.TotalDuration == 0 {
		return 0
	}
	return float64(s.Records) / s.TotalDuration.Seconds()
}

func (s *Summary) SuccessPercentage() float64 {
	if s.Records == 0 {
		return 0
	}
	return (float64(s.Succeeded) / float64(s.Records)) * 100
}

func (s *Summary) FailurePercentage() float64 {
	if s.Records == 0 {
		return 0
	}
	return (float64(s.Failed) / float64(s.Records)) * 100
}
