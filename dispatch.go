package spacetraders

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/spacetraders-community/go-spacetraders/internal/ratelimit"
	"github.com/spacetraders-community/go-spacetraders/internal/retry"
	"github.com/spacetraders-community/go-spacetraders/observability"
)

// Dispatch issues one logical API call: it waits out the rate limit, sends
// the request with the credential attached, classifies the response, and
// retries transient failures up to the policy's attempt budget.
//
// The returned Outcome is always the final classified result. The error is
// non-nil only when the context was canceled, the request could not be
// built, or the retry budget was exhausted — in the last case it is a
// *RetriesExhaustedError wrapping the final transient Outcome, so the
// caller still sees the real classified failure.
func (c *Client) Dispatch(ctx context.Context, req Request) (Outcome, error) {
	body, err := req.marshalBody()
	if err != nil {
		return Outcome{}, err
	}

	url := req.URL(c.baseURL)
	logger := c.logger.With(
		observability.Field{Key: "request_id", Value: uuid.NewString()},
		observability.Field{Key: "method", Value: req.Method},
		observability.Field{Key: "path", Value: req.Path},
	)

	var out Outcome

	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		if err := c.governor.Wait(ctx); err != nil {
			return Outcome{}, err
		}

		out = c.attempt(ctx, req.Method, url, body)

		// Context cancellation is not a classifiable outcome; surface it
		// directly instead of burning the remaining attempts.
		if out.Kind == KindTransportFailure && ctx.Err() != nil {
			return Outcome{}, errors.Wrap(ctx.Err(), "dispatch canceled")
		}

		if !c.retry.retryable(out.Kind) {
			return out, nil
		}

		if attempt == c.retry.MaxAttempts {
			break
		}

		wait := retry.Backoff(c.retry.BaseBackoff, c.retry.BackoffMultiplier, c.retry.MaxBackoff, attempt)
		// Server-specified timing is authoritative over the local guess.
		if out.Kind == KindRateLimited && out.RetryAfter > 0 {
			wait = out.RetryAfter
		}

		logger.Warn("retrying request",
			observability.Field{Key: "attempt", Value: attempt},
			observability.Field{Key: "max_attempts", Value: c.retry.MaxAttempts},
			observability.Field{Key: "outcome", Value: out.Kind.String()},
			observability.Field{Key: "wait", Value: wait},
		)
		c.metrics.RecordRetry(attempt, req.Path)

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return Outcome{}, errors.Wrap(ctx.Err(), "context canceled during backoff")
		}
	}

	return out, &RetriesExhaustedError{Attempts: c.retry.MaxAttempts, Last: out}
}

// attempt performs one exchange and classification. Rate-limit hints from
// any received response feed back into the governor, keeping local state
// converging on server truth.
func (c *Client) attempt(ctx context.Context, method, url string, body []byte) Outcome {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.transport.Do(attemptCtx, method, url, body)
	if err != nil {
		return Outcome{Kind: KindTransportFailure, Cause: err}
	}

	out := c.classify.Classify(resp.StatusCode, resp.Header, resp.Body)

	hints := ratelimit.ParseHints(resp.Header, c.hints, time.Now())
	if out.Kind == KindRateLimited && hints.RetryAfter == nil {
		ra := out.RetryAfter
		hints.RetryAfter = &ra
	}
	c.governor.Observe(hints)

	if out.Kind == KindRateLimited {
		c.metrics.RecordRateLimit(url, out.RetryAfter)
	}

	return out
}
