// Package spacetraders is a client library for the SpaceTraders v2 API.
//
// Every endpoint method funnels through Client.Dispatch, which injects the
// bearer credential, holds calls to the server's rate limit, retries
// transient failures with exponential backoff, and classifies each response
// into a tagged Outcome.
package spacetraders

import (
	"net/http"
	"time"

	"github.com/spacetraders-community/go-spacetraders/internal/httpclient"
	"github.com/spacetraders-community/go-spacetraders/internal/middleware"
	"github.com/spacetraders-community/go-spacetraders/internal/ratelimit"
	"github.com/spacetraders-community/go-spacetraders/observability"
)

const (
	// DefaultBaseURL is the SpaceTraders v2 API base URL.
	DefaultBaseURL = "https://api.spacetraders.io/v2"

	// Rate limit defaults. The API serves a small burst that refills on a
	// short fixed window; local state starts from these and converges on
	// the authoritative values carried in response headers.
	DefaultBurstSize = 2
	DefaultWindow    = 1 * time.Second

	// Retry configuration
	DefaultMaxAttempts       = 3
	DefaultBaseBackoff       = 1 * time.Second
	DefaultBackoffMultiplier = 2.0
	DefaultMaxBackoff        = 30 * time.Second
	DefaultRetryAfter        = 10 * time.Second
	DefaultTimeout           = 30 * time.Second
)

// userAgent identifies this library to the API.
const userAgent = "go-spacetraders/1"

// RetryPolicy bounds the dispatch loop. Unset fields are defaulted by New.
type RetryPolicy struct {
	// MaxAttempts is the total number of sends per dispatch, including
	// the first one.
	MaxAttempts int

	// BaseBackoff is the wait before the first retry; each further retry
	// multiplies it by BackoffMultiplier, capped at MaxBackoff.
	BaseBackoff       time.Duration
	BackoffMultiplier float64
	MaxBackoff        time.Duration

	// RetryableKinds overrides which outcome kinds are retried. Nil means
	// the default set: RateLimited, ServerError, TransportFailure.
	RetryableKinds map[OutcomeKind]bool
}

func (p RetryPolicy) retryable(k OutcomeKind) bool {
	if p.RetryableKinds != nil {
		return p.RetryableKinds[k]
	}
	return k == KindRateLimited || k == KindServerError || k == KindTransportFailure
}

// Config holds configuration for the SpaceTraders client. Only Token is
// required; everything else defaults.
type Config struct {
	// Token is the agent's bearer token.
	Token string

	// BaseURL is the base URL for the API (defaults to the public v2 API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	HTTPClient *http.Client

	// Timeout bounds each individual network attempt.
	Timeout time.Duration

	// Retry bounds the dispatch loop.
	Retry RetryPolicy

	// DefaultRetryAfter is the wait applied to a 429 that carries no
	// machine-readable retry hint.
	DefaultRetryAfter time.Duration

	// BurstSize and Window seed the rate governor's optimistic state
	// before the server's headers correct it.
	BurstSize int
	Window    time.Duration

	// SmoothingRate spreads sends at this many requests per second on top
	// of the window bookkeeping. Zero uses BurstSize/Window; negative
	// disables smoothing.
	SmoothingRate float64

	// HintNames overrides the rate-limit header names.
	HintNames ratelimit.HintNames

	// Logger and Metrics default to no-ops.
	Logger  observability.Logger
	Metrics observability.MetricsRecorder
}

// Client issues SpaceTraders API calls. It is safe for concurrent use; the
// rate governor is the only shared mutable state and is internally locked.
type Client struct {
	baseURL   string
	transport *httpclient.Client
	governor  *ratelimit.Governor
	classify  classifier
	retry     RetryPolicy
	timeout   time.Duration
	hints     ratelimit.HintNames
	logger    observability.Logger
	metrics   observability.MetricsRecorder
}

// New creates a SpaceTraders client. It fails only when the token is
// missing or empty.
func New(cfg Config) (*Client, error) {
	cred, err := NewCredential(cfg.Token)
	if err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Retry.BaseBackoff == 0 {
		cfg.Retry.BaseBackoff = DefaultBaseBackoff
	}
	if cfg.Retry.BackoffMultiplier == 0 {
		cfg.Retry.BackoffMultiplier = DefaultBackoffMultiplier
	}
	if cfg.Retry.MaxBackoff == 0 {
		cfg.Retry.MaxBackoff = DefaultMaxBackoff
	}
	if cfg.DefaultRetryAfter == 0 {
		cfg.DefaultRetryAfter = DefaultRetryAfter
	}
	if cfg.BurstSize == 0 {
		cfg.BurstSize = DefaultBurstSize
	}
	if cfg.Window == 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.HintNames == (ratelimit.HintNames{}) {
		cfg.HintNames = ratelimit.DefaultHintNames()
	}
	if cfg.Logger == nil {
		cfg.Logger = observability.NoopLogger()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NoopMetricsRecorder()
	}

	var govOpts []ratelimit.Option
	if cfg.SmoothingRate >= 0 {
		smoothing := cfg.SmoothingRate
		if smoothing == 0 {
			smoothing = float64(cfg.BurstSize) / cfg.Window.Seconds()
		}
		govOpts = append(govOpts, ratelimit.WithSmoothing(smoothing, cfg.BurstSize))
	}

	authName, authValue := cred.AuthHeader()

	transportOpts := []httpclient.Option{
		httpclient.WithMiddleware(
			middleware.Logging(cfg.Logger, cfg.Metrics),
			middleware.UserAgent(userAgent),
			middleware.Auth(authName, authValue),
		),
	}
	if cfg.HTTPClient != nil {
		transportOpts = append([]httpclient.Option{httpclient.WithHTTPClient(cfg.HTTPClient)}, transportOpts...)
	}

	return &Client{
		baseURL:   cfg.BaseURL,
		transport: httpclient.New(transportOpts...),
		governor:  ratelimit.NewGovernor(cfg.BurstSize, cfg.Window, govOpts...),
		classify: classifier{
			hints:             cfg.HintNames,
			defaultRetryAfter: cfg.DefaultRetryAfter,
		},
		retry:   cfg.Retry,
		timeout: cfg.Timeout,
		hints:   cfg.HintNames,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}, nil
}
