package spacetraders

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

// OutcomeKind identifies which variant of an Outcome is populated.
type OutcomeKind int

const (
	// KindSuccess is a 2xx response with a well-formed (or empty) body.
	KindSuccess OutcomeKind = iota
	// KindRateLimited is a 429 response; RetryAfter carries the server's
	// requested wait, or the configured default when the server gave none.
	KindRateLimited
	// KindClientError is a non-429 4xx response, or a 2xx response whose
	// body failed to decode. Never retried.
	KindClientError
	// KindServerError is a 5xx response, or an error status whose body
	// could not be interpreted at all.
	KindServerError
	// KindTransportFailure is a network-level failure: connection error,
	// per-attempt timeout, or unreadable response framing.
	KindTransportFailure
)

// String returns the kind's name for logging.
func (k OutcomeKind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindRateLimited:
		return "rate_limited"
	case KindClientError:
		return "client_error"
	case KindServerError:
		return "server_error"
	case KindTransportFailure:
		return "transport_failure"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// CodeMalformedBody marks a ClientError produced by a 2xx response whose
// body failed to decode. It is negative so it can never collide with a code
// the server actually sent.
const CodeMalformedBody = -1

// Outcome is the uniform result of one dispatched call. Exactly one
// variant's fields are populated, selected by Kind.
type Outcome struct {
	Kind OutcomeKind

	// Payload holds the raw response body for KindSuccess. Nil for a 204
	// or an empty body.
	Payload json.RawMessage

	// RetryAfter is the wait the server requested for KindRateLimited.
	RetryAfter time.Duration

	// Code and Message carry the server's error envelope for
	// KindClientError; Code alone is set for KindServerError.
	Code    int
	Message string

	// Cause is the underlying error for KindTransportFailure.
	Cause error
}

// Err converts a terminal Outcome into an error for callers that want the
// usual Go error flow: nil for success, *APIError for classified server
// responses, and the wrapped cause for transport failures.
func (o Outcome) Err() error {
	switch o.Kind {
	case KindSuccess:
		return nil
	case KindClientError, KindServerError:
		return &APIError{Status: o.Kind, Code: o.Code, Message: o.Message}
	case KindRateLimited:
		return &APIError{Status: o.Kind, Code: 429, Message: "rate limited"}
	case KindTransportFailure:
		return errors.Wrap(o.Cause, "transport failure")
	default:
		return errors.Newf("unknown outcome kind %d", int(o.Kind))
	}
}

// APIError carries a classified API failure with the server's original code
// and message untouched, so callers can tell an invalid payload from an
// unauthorized or not-found response.
type APIError struct {
	Status  OutcomeKind
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error: code=%d message=%q", e.Code, e.Message)
	}
	return fmt.Sprintf("API error: code=%d", e.Code)
}

// RetriesExhaustedError wraps the last transient Outcome once the retry
// budget is spent. The caller decides whether to retry at a higher level.
type RetriesExhaustedError struct {
	Attempts int
	Last     Outcome
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("retries exhausted after %d attempts: last outcome %s", e.Attempts, e.Last.Kind)
}

// Unwrap exposes the last outcome's error form for errors.Is/As chains.
func (e *RetriesExhaustedError) Unwrap() error {
	return e.Last.Err()
}
