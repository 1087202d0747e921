// Package ratelimit paces record processing.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter admits records at a fixed rate.
type Limiter struct {
	limiter *rate.Limiter
}

// New uses 0 or negative recordsPerSecond for no rate limiting.
func New(recordsPerSecond float64) *Limiter {
	if recordsPerSecond <= 0 {
		return &Limiter{
			limiter: rate.NewLimiter(rate.Inf, 1),
		}
	}

	// Burst of 1: the first record passes at once, the rest are spaced out.
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(recordsPerSecond), 1),
	}
}

// Wait blocks until the next record may be processed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow is non-blocking.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Unlimited reports whether the limiter admits every record immediately.
func (l *Limiter) Unlimited() bool {
	return l.limiter.Limit() == rate.Inf
}

// Limit returns records per second, 0 when unlimited.
func (l *Limiter) Limit() float64 {
	limit := l.limiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return float64(limit)
}
