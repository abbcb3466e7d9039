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

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty token", func(t *testing.T) {
		t.Parallel()

		_, err := spacetraders.New(spacetraders.Config{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, spacetraders.ErrInvalidCredential))
	})

	t.Run("token alone is enough", func(t *testing.T) {
		t.Parallel()

		client, err := spacetraders.New(spacetraders.Config{Token: "tok"})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestClientBudgetEnforcement(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := testutil.NewMockServerWithHandler(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"data":{}}`))
	})
	defer server.Close()

	window := 300 * time.Millisecond
	client, err := spacetraders.New(spacetraders.Config{
		Token:         "tok",
		BaseURL:       server.URL,
		BurstSize:     2,
		Window:        window,
		SmoothingRate: -1,
	})
	require.NoError(t, err)

	// Three sequential calls against a budget of two: the third must not
	// hit the wire before the window rolls over.
	start := time.Now()
	for i := 0; i < 3; i++ {
		out, err := client.Dispatch(context.Background(), spacetraders.Request{
			Method: http.MethodGet,
			Path:   "my/agent",
		})
		require.NoError(t, err)
		require.Equal(t, spacetraders.KindSuccess, out.Kind)
	}

	assert.Equal(t, int32(3), calls.Load())
	assert.GreaterOrEqual(t, time.Since(start), window/2,
		"third call must wait for the window to reset")
}

func TestClientConcurrentDispatch(t *testing.T) {
	t.Parallel()

	server := testutil.NewMockServerWithHandler(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	})
	defer server.Close()

	client, err := spacetraders.New(spacetraders.Config{
		Token:         "tok",
		BaseURL:       server.URL,
		BurstSize:     50,
		Window:        time.Second,
		SmoothingRate: -1,
	})
	require.NoError(t, err)

	const callers = 10
	results := make(chan error, callers)

	for i := 0; i < callers; i++ {
		go func() {
			out, err := client.Dispatch(context.Background(), spacetraders.Request{
				Method: http.MethodGet,
				Path:   "my/agent",
			})
			if err == nil && out.Kind != spacetraders.KindSuccess {
				err = out.Err()
			}
			results <- err
		}()
	}

	for i := 0; i < callers; i++ {
		require.NoError(t, <-results)
	}
}
