package spacetraders_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	spacetraders "github.com/spacetraders-community/go-spacetraders"
	"github.com/spacetraders-community/go-spacetraders/internal/testutil"
)

// newTestClient builds a client pointed at a mock server with fast retry
// timing and no local send smoothing.
func newTestClient(t *testing.T, baseURL string, retry spacetraders.RetryPolicy) *spacetraders.Client {
	t.Helper()

	if retry.MaxAttempts == 0 {
		retry.MaxAttempts = 3
	}
	if retry.BaseBackoff == 0 {
		retry.BaseBackoff = time.Millisecond
	}

	client, err := spacetraders.New(spacetraders.Config{
		Token:             "test-token",
		BaseURL:           baseURL,
		Retry:             retry,
		DefaultRetryAfter: 5 * time.Millisecond,
		BurstSize:         100,
		Window:            time.Minute,
		SmoothingRate:     -1,
	})
	require.NoError(t, err)
	return client
}

func TestDispatchSuccess(t *testing.T) {
	t.Parallel()

	body := `{"symbol":"JoeBloggs","credits":25772}`
	server := testutil.NewMockServer(t, "/agent", "test-token", body, http.StatusOK)
	defer server.Close()

	client := newTestClient(t, server.URL, spacetraders.RetryPolicy{})

	out, err := client.Dispatch(context.Background(), spacetraders.Request{
		Method: http.MethodGet,
		Path:   "agent",
	})
	require.NoError(t, err)

	assert.Equal(t, spacetraders.KindSuccess, out.Kind)
	assert.JSONEq(t, body, string(out.Payload))
}

func TestDispatchClientErrorNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := testutil.NewMockServerWithHandler(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":401,"message":"Unauthorized"}`))
	})
	defer server.Close()

	client := newTestClient(t, server.URL, spacetraders.RetryPolicy{})

	out, err := client.Dispatch(context.Background(), spacetraders.Request{
		Method: http.MethodPost,
		Path:   "ships/X/dock",
	})
	require.NoError(t, err)

	assert.Equal(t, spacetraders.KindClientError, out.Kind)
	assert.Equal(t, 401, out.Code)
	assert.Equal(t, "Unauthorized", out.Message)
	assert.Equal(t, int32(1), calls.Load(), "client errors must not be retried")
}

func TestDispatchRetriesExhausted(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := testutil.NewMockServerWithHandler(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer server.Close()

	client := newTestClient(t, server.URL, spacetraders.RetryPolicy{MaxAttempts: 3})

	out, err := client.Dispatch(context.Background(), spacetraders.Request{
		Method: http.MethodGet,
		Path:   "agent",
	})

	assert.Equal(t, int32(3), calls.Load(), "dispatch must perform exactly MaxAttempts sends")
	assert.Equal(t, spacetraders.KindServerError, out.Kind)

	var exhausted *spacetraders.RetriesExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 3, exhausted.Attempts)
	assert.Equal(t, spacetraders.KindServerError, exhausted.Last.Kind)
}

func TestDispatchRecoversAfterServerError(t *testing.T) {
	t.Parallel()

	server, calls := testutil.NewMockServerSequence(t, []testutil.Response{
		{StatusCode: http.StatusInternalServerError, Body: `{"error":{"code":500,"message":"boom"}}`},
		{StatusCode: http.StatusOK, Body: `{"data":{"symbol":"JoeBloggs"}}`},
	})
	defer server.Close()

	client := newTestClient(t, server.URL, spacetraders.RetryPolicy{})

	out, err := client.Dispatch(context.Background(), spacetraders.Request{
		Method: http.MethodGet,
		Path:   "agent",
	})
	require.NoError(t, err)

	assert.Equal(t, spacetraders.KindSuccess, out.Kind)
	assert.Equal(t, 2, *calls)
}

func TestDispatchDefersToRetryAfter(t *testing.T) {
	t.Parallel()

	server, _ := testutil.NewMockServerSequence(t, []testutil.Response{
		{
			StatusCode: http.StatusTooManyRequests,
			Body:       `{"error":{"code":42901,"message":"Throttled"}}`,
			Header:     map[string]string{"Retry-After": "1"},
		},
		{StatusCode: http.StatusOK, Body: `{"data":{}}`},
	})
	defer server.Close()

	// Tiny exponential base: any observed delay comes from the server hint.
	client := newTestClient(t, server.URL, spacetraders.RetryPolicy{
		BaseBackoff: time.Millisecond,
	})

	start := time.Now()
	out, err := client.Dispatch(context.Background(), spacetraders.Request{
		Method: http.MethodGet,
		Path:   "agent",
	})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, spacetraders.KindSuccess, out.Kind)
	assert.GreaterOrEqual(t, elapsed, time.Second,
		"second attempt must not start before the server-requested wait")
}

func TestDispatchCancellationDuringBackoff(t *testing.T) {
	t.Parallel()

	server := testutil.NewMockServerWithHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer server.Close()

	client := newTestClient(t, server.URL, spacetraders.RetryPolicy{
		MaxAttempts: 3,
		BaseBackoff: 10 * time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := client.Dispatch(ctx, spacetraders.Request{
		Method: http.MethodGet,
		Path:   "agent",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), "cancellation must surface the context error")
	assert.Less(t, time.Since(start), 2*time.Second, "cancellation must propagate promptly")
}

func TestDispatchTransportFailureRetried(t *testing.T) {
	t.Parallel()

	server := testutil.NewMockServerWithHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	// Closing up front makes every attempt a connection failure.
	server.Close()

	client := newTestClient(t, server.URL, spacetraders.RetryPolicy{MaxAttempts: 2})

	out, err := client.Dispatch(context.Background(), spacetraders.Request{
		Method: http.MethodGet,
		Path:   "agent",
	})

	assert.Equal(t, spacetraders.KindTransportFailure, out.Kind)
	require.Error(t, out.Cause)

	var exhausted *spacetraders.RetriesExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 2, exhausted.Attempts)
}
