package spacetraders

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Meta carries pagination info from list endpoints.
type Meta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// dataEnvelope is the API's success body shape: {"data":...,"meta":{...}}.
type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
	Meta *Meta           `json:"meta,omitempty"`
}

// decodeData unwraps a Success payload's data envelope into v. v may be nil
// when the caller only cares that the call succeeded.
func decodeData(payload json.RawMessage, v any) (*Meta, error) {
	if len(payload) == 0 {
		return nil, nil
	}

	var env dataEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, errors.Wrap(err, "failed to decode response envelope")
	}

	if v != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, v); err != nil {
			return nil, errors.Wrap(err, "failed to decode response data")
		}
	}

	return env.Meta, nil
}

// do dispatches a request and unwraps the data envelope, converting every
// non-success outcome into an error.
func (c *Client) do(ctx context.Context, req Request, v any) (*Meta, error) {
	out, err := c.Dispatch(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := out.Err(); err != nil {
		return nil, err
	}
	return decodeData(out.Payload, v)
}
