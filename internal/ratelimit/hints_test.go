package ratelimit

import (
	"net/http"
	"testing"
	"time"
)

func TestParseHints(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	names := DefaultHintNames()

	t.Run("full header set", func(t *testing.T) {
		t.Parallel()

		header := http.Header{}
		header.Set("x-ratelimit-limit-burst", "30")
		header.Set("x-ratelimit-remaining", "12")
		header.Set("x-ratelimit-reset", now.Add(800*time.Millisecond).Format(time.RFC3339))

		h := ParseHints(header, names, now)

		if h.Limit == nil || *h.Limit != 30 {
			t.Errorf("Limit = %v, want 30", h.Limit)
		}
		if h.Remaining == nil || *h.Remaining != 12 {
			t.Errorf("Remaining = %v, want 12", h.Remaining)
		}
		if h.ResetAt == nil {
			t.Error("ResetAt = nil, want parsed timestamp")
		}
		if h.RetryAfter != nil {
			t.Errorf("RetryAfter = %v, want nil", h.RetryAfter)
		}
	})

	t.Run("absent headers yield nil fields", func(t *testing.T) {
		t.Parallel()

		h := ParseHints(http.Header{}, names, now)

		if h.Limit != nil || h.Remaining != nil || h.ResetAt != nil || h.RetryAfter != nil {
			t.Errorf("ParseHints(empty) = %+v, want all nil", h)
		}
	})

	t.Run("unparseable values are skipped", func(t *testing.T) {
		t.Parallel()

		header := http.Header{}
		header.Set("x-ratelimit-remaining", "many")
		header.Set("x-ratelimit-reset", "soon")

		h := ParseHints(header, names, now)

		if h.Remaining != nil || h.ResetAt != nil {
			t.Errorf("ParseHints(garbage) = %+v, want nil fields", h)
		}
	})

	t.Run("custom header names", func(t *testing.T) {
		t.Parallel()

		custom := HintNames{Remaining: "x-budget-left", Reset: "x-budget-reset", RetryAfter: "retry-after", Limit: "x-budget"}
		header := http.Header{}
		header.Set("x-budget-left", "4")

		h := ParseHints(header, custom, now)

		if h.Remaining == nil || *h.Remaining != 4 {
			t.Errorf("Remaining = %v, want 4", h.Remaining)
		}
	})
}

func TestParseReset(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value string
		want  time.Time
		ok    bool
	}{
		{
			name:  "RFC3339 timestamp",
			value: "2026-01-01T00:00:02Z",
			want:  now.Add(2 * time.Second),
			ok:    true,
		},
		{
			name:  "epoch seconds",
			value: "1767225602",
			want:  time.Unix(1767225602, 0),
			ok:    true,
		},
		{
			name:  "seconds from now",
			value: "3",
			want:  now.Add(3 * time.Second),
			ok:    true,
		},
		{
			name:  "garbage",
			value: "whenever",
			ok:    false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := parseReset(tt.value, now)
			if ok != tt.ok {
				t.Fatalf("parseReset(%q) ok = %v, want %v", tt.value, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("parseReset(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseRetryAfter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "empty", value: "", want: 0},
		{name: "integer seconds", value: "60", want: 60 * time.Second},
		{name: "fractional seconds round up", value: "1.2", want: 1200 * time.Millisecond},
		{name: "zero", value: "0", want: 0},
		{name: "negative rejected", value: "-1", want: 0},
		{name: "text rejected", value: "invalid", want: 0},
		{name: "past HTTP-date yields zero", value: "Wed, 21 Oct 2015 07:28:00 GMT", want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ParseRetryAfter(tt.value); got != tt.want {
				t.Errorf("ParseRetryAfter(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
