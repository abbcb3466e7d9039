package spacetraders

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
)

// ListSystems retrieves a page of all star systems.
func (c *Client) ListSystems(ctx context.Context, page, limit int) ([]System, *Meta, error) {
	var systems []System
	meta, err := c.do(ctx, Request{
		Method: http.MethodGet,
		Path:   "systems",
		Query:  pageQuery(page, limit),
	}, &systems)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to list systems")
	}
	return systems, meta, nil
}

// GetSystem retrieves one system by symbol.
func (c *Client) GetSystem(ctx context.Context, systemSymbol string) (*System, error) {
	var system System
	_, err := c.do(ctx, Request{Method: http.MethodGet, Path: "systems/" + systemSymbol}, &system)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get system %s", systemSymbol)
	}
	return &system, nil
}

// ListWaypoints retrieves a page of a system's waypoints.
func (c *Client) ListWaypoints(ctx context.Context, systemSymbol string, page, limit int) ([]Waypoint, *Meta, error) {
	var waypoints []Waypoint
	meta, err := c.do(ctx, Request{
		Method: http.MethodGet,
		Path:   "systems/" + systemSymbol + "/waypoints",
		Query:  pageQuery(page, limit),
	}, &waypoints)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to list waypoints in system %s", systemSymbol)
	}
	return waypoints, meta, nil
}

// GetWaypoint retrieves one waypoint by symbol.
func (c *Client) GetWaypoint(ctx context.Context, systemSymbol, waypointSymbol string) (*Waypoint, error) {
	var waypoint Waypoint
	_, err := c.do(ctx, Request{
		Method: http.MethodGet,
		Path:   "systems/" + systemSymbol + "/waypoints/" + waypointSymbol,
	}, &waypoint)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get waypoint %s", waypointSymbol)
	}
	return &waypoint, nil
}

// GetMarket retrieves the market at a waypoint. Prices are only included
// when one of the agent's ships is present.
func (c *Client) GetMarket(ctx context.Context, systemSymbol, waypointSymbol string) (*Market, error) {
	var market Market
	_, err := c.do(ctx, Request{
		Method: http.MethodGet,
		Path:   "systems/" + systemSymbol + "/waypoints/" + waypointSymbol + "/market",
	}, &market)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get market at %s", waypointSymbol)
	}
	return &market, nil
}

// GetShipyard retrieves the shipyard at a waypoint.
func (c *Client) GetShipyard(ctx context.Context, systemSymbol, waypointSymbol string) (*Shipyard, error) {
	var shipyard Shipyard
	_, err := c.do(ctx, Request{
		Method: http.MethodGet,
		Path:   "systems/" + systemSymbol + "/waypoints/" + waypointSymbol + "/shipyard",
	}, &shipyard)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get shipyard at %s", waypointSymbol)
	}
	return &shipyard, nil
}
