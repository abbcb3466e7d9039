package spacetraders

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
)

// ListShips retrieves a page of all ships under the agent's ownership.
func (c *Client) ListShips(ctx context.Context, page, limit int) ([]Ship, *Meta, error) {
	var ships []Ship
	meta, err := c.do(ctx, Request{
		Method: http.MethodGet,
		Path:   "my/ships",
		Query:  pageQuery(page, limit),
	}, &ships)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to list ships")
	}
	return ships, meta, nil
}

// GetShip retrieves one ship by symbol.
func (c *Client) GetShip(ctx context.Context, shipSymbol string) (*Ship, error) {
	var ship Ship
	_, err := c.do(ctx, Request{Method: http.MethodGet, Path: "my/ships/" + shipSymbol}, &ship)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get ship %s", shipSymbol)
	}
	return &ship, nil
}

// GetShipCargo retrieves a ship's hold.
func (c *Client) GetShipCargo(ctx context.Context, shipSymbol string) (*ShipCargo, error) {
	var cargo ShipCargo
	_, err := c.do(ctx, Request{Method: http.MethodGet, Path: "my/ships/" + shipSymbol + "/cargo"}, &cargo)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get cargo for ship %s", shipSymbol)
	}
	return &cargo, nil
}

// PurchaseShipResult is the response to buying a ship.
type PurchaseShipResult struct {
	Agent       Agent             `json:"agent"`
	Ship        Ship              `json:"ship"`
	Transaction MarketTransaction `json:"transaction"`
}

// PurchaseShip buys a ship of the given type from a shipyard waypoint. A
// ship owned by the agent must be present at that waypoint.
func (c *Client) PurchaseShip(ctx context.Context, shipType, waypointSymbol string) (*PurchaseShipResult, error) {
	var result PurchaseShipResult
	_, err := c.do(ctx, Request{
		Method: http.MethodPost,
		Path:   "my/ships",
		Body: map[string]string{
			"shipType":       shipType,
			"waypointSymbol": waypointSymbol,
		},
	}, &result)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to purchase ship type %s at %s", shipType, waypointSymbol)
	}
	return &result, nil
}

// navResult is the response shape of orbit/dock actions.
type navResult struct {
	Nav ShipNav `json:"nav"`
}

// OrbitShip moves a docked ship into orbit.
func (c *Client) OrbitShip(ctx context.Context, shipSymbol string) (*ShipNav, error) {
	var result navResult
	_, err := c.do(ctx, Request{Method: http.MethodPost, Path: "my/ships/" + shipSymbol + "/orbit"}, &result)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to orbit ship %s", shipSymbol)
	}
	return &result.Nav, nil
}

// DockShip docks an orbiting ship at its current waypoint.
func (c *Client) DockShip(ctx context.Context, shipSymbol string) (*ShipNav, error) {
	var result navResult
	_, err := c.do(ctx, Request{Method: http.MethodPost, Path: "my/ships/" + shipSymbol + "/dock"}, &result)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dock ship %s", shipSymbol)
	}
	return &result.Nav, nil
}

// NavigateResult is the response to navigating a ship.
type NavigateResult struct {
	Nav  ShipNav  `json:"nav"`
	Fuel ShipFuel `json:"fuel"`
}

// NavigateShip sends a ship toward a waypoint in its current system.
func (c *Client) NavigateShip(ctx context.Context, shipSymbol, waypointSymbol string) (*NavigateResult, error) {
	var result NavigateResult
	_, err := c.do(ctx, Request{
		Method: http.MethodPost,
		Path:   "my/ships/" + shipSymbol + "/navigate",
		Body:   map[string]string{"waypointSymbol": waypointSymbol},
	}, &result)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to navigate ship %s to %s", shipSymbol, waypointSymbol)
	}
	return &result, nil
}

// RefuelResult is the response to refueling a ship.
type RefuelResult struct {
	Agent       Agent             `json:"agent"`
	Fuel        ShipFuel          `json:"fuel"`
	Transaction MarketTransaction `json:"transaction"`
}

// RefuelShip refuels a docked ship from the local market.
func (c *Client) RefuelShip(ctx context.Context, shipSymbol string) (*RefuelResult, error) {
	var result RefuelResult
	_, err := c.do(ctx, Request{Method: http.MethodPost, Path: "my/ships/" + shipSymbol + "/refuel"}, &result)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to refuel ship %s", shipSymbol)
	}
	return &result, nil
}

// TradeResult is the response to selling or purchasing cargo.
type TradeResult struct {
	Agent       Agent             `json:"agent"`
	Cargo       ShipCargo         `json:"cargo"`
	Transaction MarketTransaction `json:"transaction"`
}

// SellCargo sells units of a good from a docked ship's hold.
func (c *Client) SellCargo(ctx context.Context, shipSymbol, tradeSymbol string, units int) (*TradeResult, error) {
	var result TradeResult
	_, err := c.do(ctx, Request{
		Method: http.MethodPost,
		Path:   "my/ships/" + shipSymbol + "/sell",
		Body: map[string]any{
			"symbol": tradeSymbol,
			"units":  units,
		},
	}, &result)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to sell %d %s from ship %s", units, tradeSymbol, shipSymbol)
	}
	return &result, nil
}

// PurchaseCargo buys units of a good into a docked ship's hold.
func (c *Client) PurchaseCargo(ctx context.Context, shipSymbol, tradeSymbol string, units int) (*TradeResult, error) {
	var result TradeResult
	_, err := c.do(ctx, Request{
		Method: http.MethodPost,
		Path:   "my/ships/" + shipSymbol + "/purchase",
		Body: map[string]any{
			"symbol": tradeSymbol,
			"units":  units,
		},
	}, &result)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to purchase %d %s for ship %s", units, tradeSymbol, shipSymbol)
	}
	return &result, nil
}

// ExtractResult is the response to extracting resources.
type ExtractResult struct {
	Extraction Extraction `json:"extraction"`
	Cargo      ShipCargo  `json:"cargo"`
}

// ExtractResources mines the asteroid or gas giant the ship orbits.
func (c *Client) ExtractResources(ctx context.Context, shipSymbol string) (*ExtractResult, error) {
	var result ExtractResult
	_, err := c.do(ctx, Request{Method: http.MethodPost, Path: "my/ships/" + shipSymbol + "/extract"}, &result)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to extract resources with ship %s", shipSymbol)
	}
	return &result, nil
}
