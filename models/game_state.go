package models

import (
	"encoding/json"
	"time"
)

// CombatPhase is the coarse state of the encounter's combat engine
type CombatPhase string

const (
	CombatPhaseNotStarted CombatPhase = "not_started"
	CombatPhaseActive     CombatPhase = "active"
	CombatPhaseFinished   CombatPhase = "finished"
)

// CombatState is the placeholder handed to the combat engine
type CombatState struct {
	Phase           CombatPhase `json:"phase"`
	Round           int         `json:"round"`
	InitiativeOrder []string    `json:"initiative_order"`
	ActiveUnitID    string      `json:"active_unit_id,omitempty"`
}

// TurnRecord is one entry in the turn history kept by the combat engine
type TurnRecord struct {
	Round  int    `json:"round"`
	UnitID string `json:"unit_id"`
	Action string `json:"action"`
	Detail string `json:"detail,omitempty"`
}

// Item is a stack of one item kind
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
}

// LootDrop is a pile of items lying on the map
type LootDrop struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
	Items    []Item   `json:"items"`
	Gold     int      `json:"gold"`
}

// Inventory is the party's shared inventory
type Inventory struct {
	Gold     int    `json:"gold"`
	Items    []Item `json:"items"`
	Capacity int    `json:"capacity"`
}

// GameMapInfo identifies a generated map without its tiles
type GameMapInfo struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Seed        int64   `json:"seed"`
	WallDensity float64 `json:"wall_density"`
}

// EncounterRecord is the persisted descriptor of an encounter. Tiles and units are
// never stored; they are regenerated from the seed and options.
type EncounterRecord struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Seed      int64           `json:"seed"`
	Options   json.RawMessage `json:"options"`
	CreatedAt time.Time       `json:"created_at"`
}
