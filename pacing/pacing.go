// Package pacing throttles embedding requests to respect provider rate limits.
package pacing

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval is the nominal spacing between consecutive embedding requests.
const DefaultInterval = time.Second

// Pacer blocks until the next request may be issued or ctx is done.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Func adapts a function to Pacer.
type Func func(ctx context.Context) error

// Wait implements Pacer.
func (f Func) Wait(ctx context.Context) error {
	return f(ctx)
}

// None never waits.
var None Pacer = Func(func(ctx context.Context) error { return ctx.Err() })

// Every returns a fixed-interval gate: the first Wait returns immediately and
// consecutive Waits return at least d apart. d <= 0 disables pacing.
func Every(d time.Duration) Pacer {
	if d <= 0 {
		return None
	}
	return rate.NewLimiter(rate.Every(d), 1)
}

// TokenBucket allows bursts of up to burst requests refilled at perSecond tokens per second.
func TokenBucket(perSecond float64, burst int) Pacer {
	if perSecond <= 0 {
		return None
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}
