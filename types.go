package spacetraders

import "time"

// Agent is the player's account-level state.
type Agent struct {
	AccountID       string `json:"accountId,omitempty"`
	Symbol          string `json:"symbol"`
	Headquarters    string `json:"headquarters"`
	Credits         int64  `json:"credits"`
	StartingFaction string `json:"startingFaction"`
	ShipCount       int    `json:"shipCount"`
}

// Ship is one vessel under the agent's ownership.
type Ship struct {
	Symbol       string           `json:"symbol"`
	Registration ShipRegistration `json:"registration"`
	Nav          ShipNav          `json:"nav"`
	Fuel         ShipFuel         `json:"fuel"`
	Cargo        ShipCargo        `json:"cargo"`
}

// ShipRegistration identifies a ship's name, faction, and role.
type ShipRegistration struct {
	Name          string `json:"name"`
	FactionSymbol string `json:"factionSymbol"`
	Role          string `json:"role"`
}

// ShipNav is a ship's current navigation state.
type ShipNav struct {
	SystemSymbol   string `json:"systemSymbol"`
	WaypointSymbol string `json:"waypointSymbol"`
	Status         string `json:"status"`
	FlightMode     string `json:"flightMode"`
}

// ShipFuel tracks current and maximum fuel.
type ShipFuel struct {
	Current  int `json:"current"`
	Capacity int `json:"capacity"`
}

// ShipCargo is a ship's hold.
type ShipCargo struct {
	Capacity  int             `json:"capacity"`
	Units     int             `json:"units"`
	Inventory []ShipCargoItem `json:"inventory"`
}

// ShipCargoItem is one good stacked in a hold.
type ShipCargoItem struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Units  int    `json:"units"`
}

// Contract is a faction contract offered to the agent.
type Contract struct {
	ID               string        `json:"id"`
	FactionSymbol    string        `json:"factionSymbol"`
	Type             string        `json:"type"`
	Terms            ContractTerms `json:"terms"`
	Accepted         bool          `json:"accepted"`
	Fulfilled        bool          `json:"fulfilled"`
	DeadlineToAccept time.Time     `json:"deadlineToAccept"`
}

// ContractTerms spells out a contract's deadline, payment, and deliveries.
type ContractTerms struct {
	Deadline time.Time             `json:"deadline"`
	Payment  ContractPayment       `json:"payment"`
	Deliver  []ContractDeliverGood `json:"deliver,omitempty"`
}

// ContractPayment is the credits paid on acceptance and fulfillment.
type ContractPayment struct {
	OnAccepted  int64 `json:"onAccepted"`
	OnFulfilled int64 `json:"onFulfilled"`
}

// ContractDeliverGood is one delivery requirement of a contract.
type ContractDeliverGood struct {
	TradeSymbol       string `json:"tradeSymbol"`
	DestinationSymbol string `json:"destinationSymbol"`
	UnitsRequired     int    `json:"unitsRequired"`
	UnitsFulfilled    int    `json:"unitsFulfilled"`
}

// Faction is one of the game's factions.
type Faction struct {
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Headquarters string `json:"headquarters"`
	IsRecruiting bool   `json:"isRecruiting"`
}

// System is a star system and its waypoints.
type System struct {
	Symbol       string           `json:"symbol"`
	SectorSymbol string           `json:"sectorSymbol"`
	Type         string           `json:"type"`
	X            int              `json:"x"`
	Y            int              `json:"y"`
	Waypoints    []SystemWaypoint `json:"waypoints"`
}

// SystemWaypoint is a waypoint as listed on its system.
type SystemWaypoint struct {
	Symbol string `json:"symbol"`
	Type   string `json:"type"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// Waypoint is a detailed waypoint record.
type Waypoint struct {
	Symbol       string          `json:"symbol"`
	Type         string          `json:"type"`
	SystemSymbol string          `json:"systemSymbol"`
	X            int             `json:"x"`
	Y            int             `json:"y"`
	Traits       []WaypointTrait `json:"traits,omitempty"`
}

// WaypointTrait is a labeled property of a waypoint.
type WaypointTrait struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Market lists what a waypoint trades.
type Market struct {
	Symbol     string            `json:"symbol"`
	Exports    []TradeGood       `json:"exports"`
	Imports    []TradeGood       `json:"imports"`
	Exchange   []TradeGood       `json:"exchange"`
	TradeGoods []MarketTradeGood `json:"tradeGoods,omitempty"`
}

// TradeGood names a tradeable good.
type TradeGood struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MarketTradeGood is a good with live prices, visible with a ship present.
type MarketTradeGood struct {
	Symbol        string `json:"symbol"`
	Type          string `json:"type"`
	TradeVolume   int    `json:"tradeVolume"`
	Supply        string `json:"supply"`
	PurchasePrice int    `json:"purchasePrice"`
	SellPrice     int    `json:"sellPrice"`
}

// Shipyard lists what ships a waypoint sells.
type Shipyard struct {
	Symbol    string             `json:"symbol"`
	ShipTypes []ShipyardShipType `json:"shipTypes"`
}

// ShipyardShipType is one purchasable ship type.
type ShipyardShipType struct {
	Type string `json:"type"`
}

// MarketTransaction records a completed trade.
type MarketTransaction struct {
	WaypointSymbol string    `json:"waypointSymbol"`
	ShipSymbol     string    `json:"shipSymbol"`
	TradeSymbol    string    `json:"tradeSymbol"`
	Type           string    `json:"type"`
	Units          int       `json:"units"`
	PricePerUnit   int       `json:"pricePerUnit"`
	TotalPrice     int       `json:"totalPrice"`
	Timestamp      time.Time `json:"timestamp"`
}

// Extraction reports what a mining action yielded.
type Extraction struct {
	ShipSymbol string          `json:"shipSymbol"`
	Yield      ExtractionYield `json:"yield"`
}

// ExtractionYield is the good and quantity extracted.
type ExtractionYield struct {
	Symbol string `json:"symbol"`
	Units  int    `json:"units"`
}
