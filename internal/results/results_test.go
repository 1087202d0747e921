package results

import (
	"errors"
	"testing"
	"time"
)

func TestSummary_Add(t *testing.T) {
	t.Parallel()

	s := NewSummary("run-1")
	s.Add(NewRecordResultBuilder(1).WithDuration(10 * time.Millisecond))
	s.Add(NewRecordResultBuilder(2).WithDuration(20 * time.Millisecond).WithError(errors.New("boom")))
	s.Add(NewRecordResultBuilder(3).WithDuration(30 * time.Millisecond))
	s.Add(NewRecordResultBuilder(4))
	s.SetTotalDuration(2 * time.Second)

	if s.Records != 4 || s.Succeeded != 3 || s.Failed != 1 {
		t.Fatalf("counts = %d/%d/%d, want 4/3/1", s.Records, s.Succeeded, s.Failed)
	}
	if !s.HasFailures() {
		t.Fatal("HasFailures() = false")
	}
	if len(s.Failures) != 1 || s.Failures[0].Record != 2 {
		t.Fatalf("Failures = %+v, want record 2", s.Failures)
	}
	if s.Busy != 60*time.Millisecond {
		t.Fatalf("Busy = %v, want 60ms", s.Busy)
	}
	if got := s.RecordsPerSecond(); got != 2 {
		t.Fatalf("RecordsPerSecond() = %f, want 2", got)
	}
	if got := s.SuccessPercentage(); got != 75 {
		t.Fatalf("SuccessPercentage() = %f, want 75", got)
	}
	if got := s.FailurePercentage(); got != 25 {
		t.Fatalf("FailurePercentage() = %f, want 25", got)
	}
}

func TestSummary_Empty(t *testing.T) {
	t.Parallel()

	s := NewSummary("run-2")
	if s.HasFailures() {
		t.Fatal("HasFailures() = true")
	}
	if s.RecordsPerSecond() != 0 || s.SuccessPercentage() != 0 || s.FailurePercentage() != 0 {
		t.Fatal("empty summary rates must be 0")
	}
}
