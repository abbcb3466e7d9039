// Package retry provides backoff computation for the dispatch loop.
package retry

import (
	"math"
	"math/rand"
	"time"
)

// Backoff returns the wait before the given attempt's retry:
// base * multiplier^(attempt-1), capped at max, with ±25% jitter so
// concurrent callers don't retry in lockstep. attempt is 1-based.
func Backoff(base time.Duration, multiplier float64, maxWait time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if multiplier < 1 {
		multiplier = 1
	}

	d := float64(base) * math.Pow(multiplier, float64(attempt-1))
	if maxWait > 0 && d > float64(maxWait) {
		d = float64(maxWait)
	}

	jitter := d * 0.25 * (rand.Float64()*2 - 1)
	wait := time.Duration(d + jitter)
	if wait < 0 {
		wait = base
	}
	return wait
}
