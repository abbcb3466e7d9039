package spacetraders

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/spacetraders-community/go-spacetraders/internal/ratelimit"
)

// classifier maps a raw status/header/body triple into an Outcome. It is a
// pure function of its inputs plus two configuration values fixed at client
// construction: the rate-limit header names and the fallback retry-after.
type classifier struct {
	hints             ratelimit.HintNames
	defaultRetryAfter time.Duration
}

// Classify interprets one received response. It never inspects domain
// schemas; success payloads stay raw for the endpoint layer to decode.
func (c classifier) Classify(status int, header http.Header, body []byte) Outcome {
	switch {
	case status >= 200 && status < 300:
		if status == http.StatusNoContent || len(body) == 0 {
			return Outcome{Kind: KindSuccess}
		}
		if !json.Valid(body) {
			return Outcome{
				Kind:    KindClientError,
				Code:    CodeMalformedBody,
				Message: "malformed success body",
			}
		}
		return Outcome{Kind: KindSuccess, Payload: json.RawMessage(body)}

	case status == http.StatusTooManyRequests:
		retryAfter := c.defaultRetryAfter
		if ra := ratelimit.ParseRetryAfter(header.Get(c.hints.RetryAfter)); ra > 0 {
			retryAfter = ra
		}
		return Outcome{Kind: KindRateLimited, RetryAfter: retryAfter}

	case status >= 400 && status < 500:
		code, message, ok := parseErrorEnvelope(body)
		if !ok {
			// Unreadable error bodies are treated as a transient server
			// problem rather than a caller defect.
			return Outcome{Kind: KindServerError, Code: status}
		}
		return Outcome{Kind: KindClientError, Code: code, Message: message}

	default:
		if code, message, ok := parseErrorEnvelope(body); ok {
			return Outcome{Kind: KindServerError, Code: code, Message: message}
		}
		return Outcome{Kind: KindServerError, Code: status}
	}
}

// parseErrorEnvelope decodes the API's error body. The API nests errors as
// {"error":{"code","message"}}; a bare {"code","message"} object is also
// accepted since some gateway responses skip the wrapper.
func parseErrorEnvelope(body []byte) (code int, message string, ok bool) {
	var nested struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &nested); err == nil &&
		(nested.Error.Code != 0 || nested.Error.Message != "") {
		return nested.Error.Code, nested.Error.Message, true
	}

	var flat struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &flat); err == nil &&
		(flat.Code != 0 || flat.Message != "") {
		return flat.Code, flat.Message, true
	}

	return 0, "", false
}
