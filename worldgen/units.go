package worldgen

import (
	"fmt"

	"tactical-realm/server/models"
	"tactical-realm/server/random"
)

// Default monster roster bounds
const (
	MinDefaultMonsters = 3
	MaxDefaultMonsters = 6
)

var playerBaseStats = models.UnitStats{
	HP:          30,
	MaxHP:       30,
	Attack:      5,
	Defense:     2,
	Initiative:  3,
	MoveRange:   4,
	AttackRange: 1,
}

var monsterBaseStats = models.UnitStats{
	HP:          12,
	MaxHP:       12,
	Attack:      3,
	Defense:     1,
	Initiative:  2,
	MoveRange:   3,
	AttackRange: 1,
}

type monsterType struct {
	Name       string
	HP         int
	Attack     int
	Initiative int
}

var monsterTypes = []monsterType{
	{Name: "Goblin", HP: -2, Attack: 0, Initiative: 2},
	{Name: "Orc", HP: 4, Attack: 2, Initiative: -1},
	{Name: "Skeleton", HP: 0, Attack: 1, Initiative: 0},
	{Name: "Slime", HP: 2, Attack: -1, Initiative: -2},
	{Name: "Wolf", HP: -1, Attack: 1, Initiative: 3},
}

// monsterOffsets are the candidate monster spawns relative to the player start
var monsterOffsets = []models.Position{
	{X: 6, Y: 0},
	{X: -6, Y: 0},
	{X: 0, Y: 6},
	{X: 0, Y: -6},
	{X: 5, Y: 5},
	{X: -5, Y: 5},
	{X: 5, Y: -5},
	{X: -5, Y: -5},
}

// UnitOptions configures GenerateUnits.
//
// A zero MonsterCount draws a count in [MinDefaultMonsters, MaxDefaultMonsters];
// a negative one generates no monsters. A zero PlayerMoveRange keeps the base
// move range.
type UnitOptions struct {
	Seed            int64           `json:"seed"`
	PlayerStart     models.Position `json:"player_start"`
	MonsterCount    int             `json:"monster_count,omitempty"`
	PlayerMoveRange int             `json:"player_move_range,omitempty"`
}

// GenerateUnits creates the player followed by the monster roster. More
// monsters than spawn offsets are silently truncated. It panics on a negative seed.
func GenerateUnits(opts UnitOptions) []models.Unit {
	mustValidSeed(opts.Seed)
	rng := random.NewRNG(opts.Seed)

	units := []models.Unit{newPlayer(opts.PlayerStart, opts.PlayerMoveRange)}

	count := opts.MonsterCount
	switch {
	case count == 0:
		count = rng.NextInt(MinDefaultMonsters, MaxDefaultMonsters)
	case count < 0:
		count = 0
	}

	offsets := random.Shuffle(rng, monsterOffsets)
	if count > len(offsets) {
		count = len(offsets)
	}

	for i := 0; i < count; i++ {
		units = append(units, newMonster(rng, i, opts.PlayerStart.Offset(offsets[i].X, offsets[i].Y)))
	}
	return units
}

func newPlayer(start models.Position, moveRange int) models.Unit {
	stats := playerBaseStats
	if moveRange > 0 {
		stats.MoveRange = moveRange
	}
	return models.Unit{
		ID:       "player_1",
		Type:     models.UnitTypePlayer,
		Name:     "Hero",
		Position: start,
		Stats:    stats,
	}
}

// newMonster draws, in order: type, hp jitter, attack jitter, initiative jitter
func newMonster(rng *random.RNG, index int, pos models.Position) models.Unit {
	typ := monsterTypes[rng.Pick(len(monsterTypes))]

	hp := max(1, monsterBaseStats.HP+typ.HP+rng.NextInt(-3, 3))
	stats := monsterBaseStats
	stats.HP = hp
	stats.MaxHP = hp
	stats.Attack = max(0, stats.Attack+typ.Attack+rng.NextInt(-1, 1))
	stats.Initiative = max(0, stats.Initiative+typ.Initiative+rng.NextInt(-1, 1))

	return models.Unit{
		ID:       fmt.Sprintf("monster_%d", index+1),
		Type:     models.UnitTypeMonster,
		Name:     typ.Name,
		Position: pos,
		Stats:    stats,
	}
}
