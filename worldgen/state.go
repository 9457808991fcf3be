package worldgen

import (
	"tactical-realm/server/loot"
	"tactical-realm/server/models"
	"tactical-realm/server/random"
)

// LootSeedOffset decorrelates the starter drop from the map and unit streams
const LootSeedOffset = 9999

// LootSource rolls loot drops and provides the starting inventory
type LootSource interface {
	GenerateLootDrop(pos models.Position, seed int64) *models.LootDrop
	DefaultInventory() models.Inventory
}

// GameStateOptions configures a new encounter. Zero values follow the
// defaults of MapOptions, UnitOptions and NPCOptions; NPCs are only generated
// when NPCCount or NPCClasses is set. A nil Loot uses the default loot table.
type GameStateOptions struct {
	Seed            int64           `json:"seed"`
	MapName         string          `json:"map_name,omitempty"`
	WallDensity     float64         `json:"wall_density,omitempty"`
	CacheCapacity   int             `json:"-"`
	PlayerStart     models.Position `json:"player_start"`
	PlayerMoveRange int             `json:"player_move_range,omitempty"`
	MonsterCount    int             `json:"monster_count,omitempty"`
	NPCCount        int             `json:"npc_count,omitempty"`
	NPCClasses      []string        `json:"npc_classes,omitempty"`
	NPCMoveRange    int             `json:"npc_move_range,omitempty"`
	Loot            LootSource      `json:"-"`
}

// GameState is a freshly generated encounter. After creation it belongs to
// the combat engine.
type GameState struct {
	Map         *GameMap            `json:"map"`
	Units       []models.Unit       `json:"units"`
	Combat      models.CombatState  `json:"combat"`
	TurnHistory []models.TurnRecord `json:"turn_history"`
	LootDrops   []models.LootDrop   `json:"loot_drops"`
	Inventory   models.Inventory    `json:"inventory"`
}

// GenerateGameState composes the map, the unit roster, one starter loot drop
// diagonal to the player start and an unstarted combat state. It adds no
// randomness beyond the seeds it forwards and panics on a negative seed.
func GenerateGameState(opts GameStateOptions) *GameState {
	mustValidSeed(opts.Seed)

	gameMap := NewGameMap(MapOptions{
		Seed:          opts.Seed,
		WallDensity:   opts.WallDensity,
		Name:          opts.MapName,
		CacheCapacity: opts.CacheCapacity,
	})

	units := GenerateUnits(UnitOptions{
		Seed:            opts.Seed,
		PlayerStart:     opts.PlayerStart,
		MonsterCount:    opts.MonsterCount,
		PlayerMoveRange: opts.PlayerMoveRange,
	})
	if opts.NPCCount > 0 || len(opts.NPCClasses) > 0 {
		units = append(units, GenerateNPCs(NPCOptions{
			Seed:        opts.Seed,
			PlayerStart: opts.PlayerStart,
			Count:       opts.NPCCount,
			Classes:     opts.NPCClasses,
			MoveRange:   opts.NPCMoveRange,
		})...)
	}

	var source LootSource = loot.Default()
	if opts.Loot != nil {
		source = opts.Loot
	}
	drops := []models.LootDrop{}
	if drop := source.GenerateLootDrop(opts.PlayerStart.Offset(1, 1), random.DeriveSeed(opts.Seed, LootSeedOffset)); drop != nil {
		drops = append(drops, *drop)
	}

	return &GameState{
		Map:   gameMap,
		Units: units,
		Combat: models.CombatState{
			Phase:           models.CombatPhaseNotStarted,
			Round:           0,
			InitiativeOrder: []string{},
		},
		TurnHistory: []models.TurnRecord{},
		LootDrops:   drops,
		Inventory:   source.DefaultInventory(),
	}
}

// Player returns the player unit, or nil if the roster has none
func (s *GameState) Player() *models.Unit {
	for i := range s.Units {
		if s.Units[i].Type == models.UnitTypePlayer {
			return &s.Units[i]
		}
	}
	return nil
}

// UnitsOfType returns the units of the given type in roster order
func (s *GameState) UnitsOfType(t models.UnitType) []models.Unit {
	var out []models.Unit
	for _, u := range s.Units {
		if u.Type == t {
			out = append(out, u)
		}
	}
	return out
}

// SpawnPoints returns the starting position of every unit
func (s *GameState) SpawnPoints() []models.Position {
	points := make([]models.Position, 0, len(s.Units))
	for _, u := range s.Units {
		points = append(points, u.Position)
	}
	return points
}
