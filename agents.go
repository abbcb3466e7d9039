package spacetraders

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
)

// GetAgent retrieves the authenticated agent's details.
func (c *Client) GetAgent(ctx context.Context) (*Agent, error) {
	var agent Agent
	_, err := c.do(ctx, Request{Method: http.MethodGet, Path: "my/agent"}, &agent)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get agent")
	}
	return &agent, nil
}

// GetPublicAgent retrieves the public details of any agent by symbol.
func (c *Client) GetPublicAgent(ctx context.Context, symbol string) (*Agent, error) {
	var agent Agent
	_, err := c.do(ctx, Request{Method: http.MethodGet, Path: "agents/" + symbol}, &agent)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get agent %s", symbol)
	}
	return &agent, nil
}

// ListAgents retrieves a page of all agents in the game.
func (c *Client) ListAgents(ctx context.Context, page, limit int) ([]Agent, *Meta, error) {
	var agents []Agent
	meta, err := c.do(ctx, Request{
		Method: http.MethodGet,
		Path:   "agents",
		Query:  pageQuery(page, limit),
	}, &agents)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to list agents")
	}
	return agents, meta, nil
}

// RegisterResult is the response to registering a new agent: the fresh
// account token plus the created agent.
type RegisterResult struct {
	Token string `json:"token"`
	Agent Agent  `json:"agent"`
}

// RegisterAgent creates a new agent under the given faction. The returned
// token belongs to the new agent, not to the client's credential.
func (c *Client) RegisterAgent(ctx context.Context, symbol, faction string) (*RegisterResult, error) {
	var result RegisterResult
	_, err := c.do(ctx, Request{
		Method: http.MethodPost,
		Path:   "register",
		Body: map[string]string{
			"symbol":  symbol,
			"faction": faction,
		},
	}, &result)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to register agent %s", symbol)
	}
	return &result, nil
}
