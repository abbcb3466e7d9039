package middleware

import "net/http"

// UserAgent returns a middleware that sets the User-Agent header on all
// requests that don't already carry one.
func UserAgent(agent string) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return &userAgentTransport{next: next, agent: agent}
	}
}

type userAgentTransport struct {
	next  http.RoundTripper
	agent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = cloneRequest(req)
		req.Header.Set("User-Agent", t.agent)
	}

	//nolint:wrapcheck // Middleware passes through errors from next handler in chain
	return t.next.RoundTrip(req)
}
