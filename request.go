package spacetraders

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Request describes one HTTP exchange before it is sent: method, API path
// relative to the base URL, query parameters, and an optional JSON body.
// A Request is built once by an endpoint method and consumed by Dispatch.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// URL renders the absolute request URL. Query keys are encoded in sorted
// order so identical requests always produce identical URLs.
func (r Request) URL(base string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(base, "/"))
	b.WriteString("/")
	b.WriteString(strings.TrimPrefix(r.Path, "/"))
	if len(r.Query) > 0 {
		b.WriteString("?")
		b.WriteString(r.Query.Encode())
	}
	return b.String()
}

// pageQuery builds the pagination query shared by all list endpoints.
// Zero values are omitted so the server's defaults apply.
func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

// marshalBody encodes the body payload once so retries can replay it.
func (r Request) marshalBody() ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	data, err := json.Marshal(r.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode request body for %s %s", r.Method, r.Path)
	}
	return data, nil
}
