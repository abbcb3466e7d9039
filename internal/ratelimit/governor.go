// Package ratelimit tracks the server-imposed request budget and decides
// when a call may be sent.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/time/rate"
)

// Governor owns the only cross-call mutable state in the client: the
// remaining request budget for the current window and the instant the
// window resets. It is safe for concurrent use; the mutex guards only the
// read-modify step, never a sleep.
//
// A token-bucket limiter additionally smooths the send rate so bursts
// don't race ahead of the server's budget between authoritative updates.
type Governor struct {
	mu        sync.Mutex
	remaining int
	resetAt   time.Time

	burst  int
	window time.Duration

	limiter *rate.Limiter
	now     func() time.Time
}

// Option configures a Governor.
type Option func(*Governor)

// WithSmoothing installs a token-bucket limiter spreading sends at the
// given rate with the given burst capacity.
func WithSmoothing(perSecond float64, burst int) Option {
	return func(g *Governor) {
		g.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithClock overrides the time source. Tests use this to step through
// windows without sleeping.
func WithClock(now func() time.Time) Option {
	return func(g *Governor) {
		g.now = now
	}
}

// NewGovernor creates a governor starting with an optimistic full budget of
// burst requests per window.
func NewGovernor(burst int, window time.Duration, opts ...Option) *Governor {
	g := &Governor{
		burst:  burst,
		window: window,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	n := g.now()
	g.remaining = burst
	g.resetAt = n.Add(window)
	return g
}

// Reserve consumes one unit of budget if any is available and returns zero.
// With the budget exhausted it returns how long the caller must wait before
// trying again. Once the window has lapsed the budget is optimistically
// reset to the configured burst; the next Observe corrects it.
func (g *Governor) Reserve() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if !now.Before(g.resetAt) {
		g.remaining = g.burst
		g.resetAt = now.Add(g.window)
	}

	if g.remaining > 0 {
		g.remaining--
		return 0
	}

	return g.resetAt.Sub(now)
}

// Release rolls back one reservation. Dispatch calls it when a reserved
// send is abandoned before reaching the wire.
func (g *Governor) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.now().Before(g.resetAt) && g.remaining < g.burst {
		g.remaining++
	}
}

// Observe folds authoritative server signals into the local state. The
// server is ground truth: an explicit retry-after zeroes the budget until
// the indicated time regardless of what the local bookkeeping believed.
func (g *Governor) Observe(h Hints) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()

	if h.RetryAfter != nil {
		g.remaining = 0
		g.resetAt = now.Add(*h.RetryAfter)
		return
	}

	if h.Limit != nil && *h.Limit > 0 {
		g.burst = *h.Limit
	}
	if h.Remaining != nil {
		if *h.Remaining < 0 {
			g.remaining = 0
		} else {
			g.remaining = *h.Remaining
		}
	}
	if h.ResetAt != nil && h.ResetAt.After(now) {
		g.resetAt = *h.ResetAt
	}
}

// Wait blocks until a reservation succeeds, sleeping out budget exhaustion
// and the smoothing limiter without holding the governor's lock. On context
// cancellation any held reservation is rolled back.
func (g *Governor) Wait(ctx context.Context) error {
	for {
		wait := g.Reserve()
		if wait == 0 {
			break
		}

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return errors.Wrap(ctx.Err(), "context canceled during rate limit wait")
		}
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			g.Release()
			return errors.Wrap(err, "rate limiter wait failed")
		}
	}

	return nil
}

// Snapshot reports the current budget state for logging and tests.
func (g *Governor) Snapshot() (remaining int, resetAt time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.remaining, g.resetAt
}
