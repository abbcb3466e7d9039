package middleware

import (
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/spacetraders-community/go-spacetraders/observability"
)

// Logging returns a middleware that logs and records metrics for HTTP
// requests. Paths are normalized before reaching the metrics recorder so
// per-ship and per-waypoint URLs don't explode metric cardinality.
func Logging(logger observability.Logger, metrics observability.MetricsRecorder) func(http.RoundTripper) http.RoundTripper {
	if logger == nil {
		logger = observability.NoopLogger()
	}
	if metrics == nil {
		metrics = observability.NoopMetricsRecorder()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return &loggingTransport{
			next:    next,
			logger:  logger,
			metrics: metrics,
		}
	}
}

type loggingTransport struct {
	next    http.RoundTripper
	logger  observability.Logger
	metrics observability.MetricsRecorder
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	urlStr := req.URL.String()

	t.logger.Debug("http request started",
		observability.Field{Key: "method", Value: req.Method},
		observability.Field{Key: "url", Value: urlStr},
	)

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		t.logger.Error("http request failed",
			observability.Field{Key: "method", Value: req.Method},
			observability.Field{Key: "url", Value: urlStr},
			observability.Field{Key: "duration", Value: duration},
			observability.Field{Key: "error", Value: err.Error()},
		)

		t.metrics.RecordError("http_request", "NetworkError")

		//nolint:wrapcheck // Logging middleware passes errors through unchanged
		return nil, err
	}

	fields := []observability.Field{
		{Key: "method", Value: req.Method},
		{Key: "url", Value: urlStr},
		{Key: "status", Value: resp.StatusCode},
		{Key: "duration", Value: duration},
	}

	if resp.StatusCode >= http.StatusBadRequest {
		t.logger.Warn("http request completed with error", fields...)
	} else {
		t.logger.Debug("http request completed", fields...)
	}

	t.metrics.RecordHTTPRequest(req.Method, normalizePath(req.URL.Path), resp.StatusCode, duration)

	return resp, nil
}

var (
	// symbolPattern matches game symbols in paths that follow a resource
	// segment: ship symbols, system symbols, waypoint symbols, contract
	// ids, agent symbols and faction symbols all look like AB-12-C3.
	symbolPattern = regexp.MustCompile(`/(ships|systems|waypoints|contracts|agents|factions)/[^/]+`)

	// normalizedPathCache avoids re-running the regex for repeat paths;
	// most callers loop over a small fixed endpoint set.
	normalizedPathCache sync.Map
)

// normalizePath replaces dynamic path segments with placeholders so metric
// label cardinality stays bounded.
//
// Examples:
//   - /v2/my/ships/AGENT-1 -> /v2/my/ships/:symbol
//   - /v2/systems/X1-DF55/waypoints/X1-DF55-20250Z -> /v2/systems/:symbol/waypoints/:symbol
func normalizePath(path string) string {
	if cached, ok := normalizedPathCache.Load(path); ok {
		//nolint:forcetypeassert // Cache only stores strings
		return cached.(string)
	}

	normalized := symbolPattern.ReplaceAllString(path, "/$1/:symbol")
	normalizedPathCache.Store(path, normalized)

	return normalized
}
