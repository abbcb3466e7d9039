package spacetraders

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
)

// ListFactions retrieves a page of the game's factions.
func (c *Client) ListFactions(ctx context.Context, page, limit int) ([]Faction, *Meta, error) {
	var factions []Faction
	meta, err := c.do(ctx, Request{
		Method: http.MethodGet,
		Path:   "factions",
		Query:  pageQuery(page, limit),
	}, &factions)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to list factions")
	}
	return factions, meta, nil
}

// GetFaction retrieves one faction by symbol.
func (c *Client) GetFaction(ctx context.Context, factionSymbol string) (*Faction, error) {
	var faction Faction
	_, err := c.do(ctx, Request{Method: http.MethodGet, Path: "factions/" + factionSymbol}, &faction)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get faction %s", factionSymbol)
	}
	return &faction, nil
}
