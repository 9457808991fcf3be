package models

// UnitType distinguishes who controls a unit
type UnitType string

const (
	UnitTypePlayer  UnitType = "player"
	UnitTypeMonster UnitType = "monster"
	UnitTypeNPC     UnitType = "npc"
)

// Position is an unbounded tile coordinate; negative values are valid
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Offset returns the position shifted by dx, dy
func (p Position) Offset(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// UnitStats holds the combat numbers of a unit at creation time
type UnitStats struct {
	HP          int `json:"hp"`
	MaxHP       int `json:"max_hp"`
	Attack      int `json:"attack"`
	Defense     int `json:"defense"`
	Initiative  int `json:"initiative"`
	MoveRange   int `json:"move_range"`
	AttackRange int `json:"attack_range"`
}

// Unit is a player, monster or NPC companion placed on the map
type Unit struct {
	ID       string    `json:"id"`
	Type     UnitType  `json:"type"`
	Name     string    `json:"name"`
	Position Position  `json:"position"`
	Stats    UnitStats `json:"stats"`
	Class    string    `json:"class,omitempty"` // NPC class key, empty for players and monsters
}

// NPCClass is a static companion template. A RangeModifier of 0 marks a melee archetype.
type NPCClass struct {
	Key             string `json:"key"`
	DisplayName     string `json:"display_name"`
	HPModifier      int    `json:"hp_modifier"`
	AttackModifier  int    `json:"attack_modifier"`
	DefenseModifier int    `json:"defense_modifier"`
	InitiativeMod   int    `json:"initiative_modifier"`
	RangeModifier   int    `json:"range_modifier"`
}

// IsRanged reports whether the class attacks from a distance
func (c NPCClass) IsRanged() bool {
	return c.RangeModifier > 0
}
