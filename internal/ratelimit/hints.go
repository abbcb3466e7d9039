package ratelimit

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// HintNames holds the header names the remote API uses to convey its
// rate-limit state. The exact names are configuration, not contract; the
// governor depends only on the parsed values.
type HintNames struct {
	Limit      string
	Remaining  string
	Reset      string
	RetryAfter string
}

// DefaultHintNames returns the header names served by the live API.
func DefaultHintNames() HintNames {
	return HintNames{
		Limit:      "x-ratelimit-limit-burst",
		Remaining:  "x-ratelimit-remaining",
		Reset:      "x-ratelimit-reset",
		RetryAfter: "retry-after",
	}
}

// Hints carries the rate-limit signals parsed from one response. Absent
// fields are nil so a partial header set never clobbers known state.
type Hints struct {
	Limit      *int
	Remaining  *int
	ResetAt    *time.Time
	RetryAfter *time.Duration
}

// ParseHints extracts rate-limit hints from response headers.
func ParseHints(header http.Header, names HintNames, now time.Time) Hints {
	var h Hints

	if v := header.Get(names.Limit); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			h.Limit = &n
		}
	}
	if v := header.Get(names.Remaining); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			h.Remaining = &n
		}
	}
	if v := header.Get(names.Reset); v != "" {
		if t, ok := parseReset(v, now); ok {
			h.ResetAt = &t
		}
	}
	if v := header.Get(names.RetryAfter); v != "" {
		if d := ParseRetryAfter(v); d > 0 {
			h.RetryAfter = &d
		}
	}

	return h
}

// parseReset accepts the reset formats seen in the wild: an RFC 3339
// timestamp, an absolute epoch-seconds value, or seconds from now.
func parseReset(v string, now time.Time) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, true
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
		// Epoch values are far larger than any plausible seconds-from-now.
		if n > 1_000_000_000 {
			return time.Unix(n, 0), true
		}
		return now.Add(time.Duration(n) * time.Second), true
	}
	return time.Time{}, false
}

// ParseRetryAfter parses a Retry-After value as fractional seconds or an
// HTTP-date. Returns 0 when the value is empty or unparseable.
func ParseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	v = strings.TrimSpace(v)

	if secs, err := strconv.ParseFloat(v, 64); err == nil && secs >= 0 {
		return time.Duration(math.Ceil(secs * float64(time.Second)))
	}

	for _, layout := range []string{time.RFC1123, time.RFC850, time.ANSIC} {
		if t, err := time.Parse(layout, v); err == nil {
			d := time.Until(t)
			if d < 0 {
				return 0
			}
			return d
		}
	}

	return 0
}
