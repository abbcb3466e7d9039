package spacetraders

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
)

// ListContracts retrieves a page of the agent's contracts.
func (c *Client) ListContracts(ctx context.Context, page, limit int) ([]Contract, *Meta, error) {
	var contracts []Contract
	meta, err := c.do(ctx, Request{
		Method: http.MethodGet,
		Path:   "my/contracts",
		Query:  pageQuery(page, limit),
	}, &contracts)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to list contracts")
	}
	return contracts, meta, nil
}

// GetContract retrieves one contract by id.
func (c *Client) GetContract(ctx context.Context, contractID string) (*Contract, error) {
	var contract Contract
	_, err := c.do(ctx, Request{Method: http.MethodGet, Path: "my/contracts/" + contractID}, &contract)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get contract %s", contractID)
	}
	return &contract, nil
}

// ContractResult pairs an updated contract with the agent's new state.
type ContractResult struct {
	Agent    Agent    `json:"agent"`
	Contract Contract `json:"contract"`
}

// AcceptContract accepts an offered contract; the on-accepted payment lands
// on the agent's balance.
func (c *Client) AcceptContract(ctx context.Context, contractID string) (*ContractResult, error) {
	var result ContractResult
	_, err := c.do(ctx, Request{Method: http.MethodPost, Path: "my/contracts/" + contractID + "/accept"}, &result)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to accept contract %s", contractID)
	}
	return &result, nil
}

// DeliverResult is the response to delivering contract cargo.
type DeliverResult struct {
	Contract Contract  `json:"contract"`
	Cargo    ShipCargo `json:"cargo"`
}

// DeliverContract delivers units of a good from a ship toward a contract's
// requirements. The ship must be at the delivery destination.
func (c *Client) DeliverContract(ctx context.Context, contractID, shipSymbol, tradeSymbol string, units int) (*DeliverResult, error) {
	var result DeliverResult
	_, err := c.do(ctx, Request{
		Method: http.MethodPost,
		Path:   "my/contracts/" + contractID + "/deliver",
		Body: map[string]any{
			"shipSymbol":  shipSymbol,
			"tradeSymbol": tradeSymbol,
			"units":       units,
		},
	}, &result)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to deliver %d %s for contract %s", units, tradeSymbol, contractID)
	}
	return &result, nil
}

// FulfillContract fulfills a completed contract; the on-fulfilled payment
// lands on the agent's balance.
func (c *Client) FulfillContract(ctx context.Context, contractID string) (*ContractResult, error) {
	var result ContractResult
	_, err := c.do(ctx, Request{Method: http.MethodPost, Path: "my/contracts/" + contractID + "/fulfill"}, &result)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fulfill contract %s", contractID)
	}
	return &result, nil
}

// NegotiateContract negotiates a new contract with the faction at the
// ship's current waypoint.
func (c *Client) NegotiateContract(ctx context.Context, shipSymbol string) (*Contract, error) {
	var result struct {
		Contract Contract `json:"contract"`
	}
	_, err := c.do(ctx, Request{Method: http.MethodPost, Path: "my/ships/" + shipSymbol + "/negotiate/contract"}, &result)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to negotiate contract with ship %s", shipSymbol)
	}
	return &result.Contract, nil
}
