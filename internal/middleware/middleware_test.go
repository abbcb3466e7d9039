package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spacetraders-community/go-spacetraders/internal/middleware"
)

func TestAuth(t *testing.T) {
	t.Parallel()

	t.Run("adds auth header", func(t *testing.T) {
		t.Parallel()

		var got string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("Authorization")
		}))
		defer server.Close()

		transport := middleware.Auth("Authorization", "Bearer secret")(http.DefaultTransport)

		req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
		resp, err := transport.RoundTrip(req)
		if err != nil {
			t.Fatalf("RoundTrip() error = %v", err)
		}
		resp.Body.Close()

		if got != "Bearer secret" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer secret")
		}
	})

	t.Run("does not mutate the original request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer server.Close()

		transport := middleware.Auth("Authorization", "Bearer secret")(http.DefaultTransport)

		req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
		resp, err := transport.RoundTrip(req)
		if err != nil {
			t.Fatalf("RoundTrip() error = %v", err)
		}
		resp.Body.Close()

		if req.Header.Get("Authorization") != "" {
			t.Error("original request header was mutated")
		}
	})
}

func TestUserAgent(t *testing.T) {
	t.Parallel()

	t.Run("sets user agent when absent", func(t *testing.T) {
		t.Parallel()

		var got string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("User-Agent")
		}))
		defer server.Close()

		transport := middleware.UserAgent("go-spacetraders/1")(http.DefaultTransport)

		req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
		resp, err := transport.RoundTrip(req)
		if err != nil {
			t.Fatalf("RoundTrip() error = %v", err)
		}
		resp.Body.Close()

		if got != "go-spacetraders/1" {
			t.Errorf("User-Agent = %q, want %q", got, "go-spacetraders/1")
		}
	})

	t.Run("keeps a caller-provided user agent", func(t *testing.T) {
		t.Parallel()

		var got string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("User-Agent")
		}))
		defer server.Close()

		transport := middleware.UserAgent("go-spacetraders/1")(http.DefaultTransport)

		req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
		req.Header.Set("User-Agent", "custom/2")
		resp, err := transport.RoundTrip(req)
		if err != nil {
			t.Fatalf("RoundTrip() error = %v", err)
		}
		resp.Body.Close()

		if got != "custom/2" {
			t.Errorf("User-Agent = %q, want %q", got, "custom/2")
		}
	})
}

func TestLogging(t *testing.T) {
	t.Parallel()

	t.Run("passes responses through unchanged", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
		defer server.Close()

		transport := middleware.Logging(nil, nil)(http.DefaultTransport)

		req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
		resp, err := transport.RoundTrip(req)
		if err != nil {
			t.Fatalf("RoundTrip() error = %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusTeapot {
			t.Errorf("StatusCode = %d, want %d", resp.StatusCode, http.StatusTeapot)
		}
	})
}
