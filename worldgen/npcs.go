package worldgen

import (
	"fmt"
	"log"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"

	"tactical-realm/server/models"
	"tactical-realm/server/random"
)

// NPCSeedOffset separates the companion stream from the monster stream
const NPCSeedOffset = 5000

// MaxNPCs caps the companion roster regardless of the request
const MaxNPCs = 7

var npcBaseStats = models.UnitStats{
	HP:          20,
	MaxHP:       20,
	Attack:      4,
	Defense:     1,
	Initiative:  3,
	MoveRange:   4,
	AttackRange: 1,
}

var npcClassOrder = []string{"warrior", "archer", "mage", "cleric", "rogue"}

var npcClasses = map[string]models.NPCClass{
	"warrior": {Key: "warrior", DisplayName: "Warrior", HPModifier: 8, AttackModifier: 2, DefenseModifier: 2, InitiativeMod: -1},
	"archer":  {Key: "archer", DisplayName: "Archer", AttackModifier: 2, InitiativeMod: 1, RangeModifier: 3},
	"mage":    {Key: "mage", DisplayName: "Mage", HPModifier: -4, AttackModifier: 4, DefenseModifier: -1, RangeModifier: 2},
	"cleric":  {Key: "cleric", DisplayName: "Cleric", HPModifier: 2, AttackModifier: -1, DefenseModifier: 1, RangeModifier: 1},
	"rogue":   {Key: "rogue", DisplayName: "Rogue", HPModifier: -2, AttackModifier: 3, InitiativeMod: 3},
}

var npcFirstNames = []string{
	"Aldric", "Brenna", "Cedric", "Dara", "Elwin", "Fiora",
	"Gareth", "Hilda", "Ivor", "Jessa", "Kael", "Lyra",
}

// npcOffsets sit closer to the player than monsterOffsets
var npcOffsets = []models.Position{
	{X: 2, Y: 0},
	{X: -2, Y: 0},
	{X: 0, Y: 2},
	{X: 0, Y: -2},
	{X: 2, Y: 2},
	{X: -2, Y: 2},
	{X: 2, Y: -2},
	{X: -2, Y: -2},
}

// NPCOptions configures GenerateNPCs.
//
// When Classes is non-empty it is used in order (duplicates allowed, unknown
// names skipped) and Count is ignored. Otherwise Count classes are drawn at
// random. A zero MoveRange keeps the base move range for every NPC.
type NPCOptions struct {
	Seed        int64           `json:"seed"`
	PlayerStart models.Position `json:"player_start"`
	Count       int             `json:"count,omitempty"`
	Classes     []string        `json:"classes,omitempty"`
	MoveRange   int             `json:"move_range,omitempty"`
}

// GetNPCClass looks up a class by name, ignoring case and surrounding space
func GetNPCClass(name string) (models.NPCClass, bool) {
	c, ok := npcClasses[cases.Fold().String(strings.TrimSpace(name))]
	return c, ok
}

// GetNPCClassNames returns the class keys in their canonical order
func GetNPCClassNames() []string {
	return append([]string(nil), npcClassOrder...)
}

// GenerateNPCs creates the companion roster. The roster never exceeds MaxNPCs
// or the number of spawn offsets; oversized requests are truncated without
// error. It panics on a negative seed.
func GenerateNPCs(opts NPCOptions) []models.Unit {
	mustValidSeed(opts.Seed)
	rng := random.NewRNG(random.DeriveSeed(opts.Seed, NPCSeedOffset))

	offsets := random.Shuffle(rng, npcOffsets)

	var explicit []models.NPCClass
	count := opts.Count
	if len(opts.Classes) > 0 {
		explicit = resolveClasses(opts.Classes)
		count = len(explicit)
	}
	count = min(count, MaxNPCs, len(offsets))
	if count <= 0 {
		return []models.Unit{}
	}

	units := make([]models.Unit, 0, count)
	for i := 0; i < count; i++ {
		var class models.NPCClass
		if explicit != nil {
			class = explicit[i]
		} else {
			class = npcClasses[npcClassOrder[rng.Pick(len(npcClassOrder))]]
		}
		pos := opts.PlayerStart.Offset(offsets[i].X, offsets[i].Y)
		units = append(units, newNPC(rng, i, class, pos, opts.MoveRange))
	}
	return units
}

func resolveClasses(names []string) []models.NPCClass {
	classes := make([]models.NPCClass, 0, len(names))
	for _, name := range names {
		class, ok := GetNPCClass(name)
		if !ok {
			if suggestion := suggestClass(name); suggestion != "" {
				log.Printf("Skipping unknown NPC class %q (did you mean %q?)", name, suggestion)
			} else {
				log.Printf("Skipping unknown NPC class %q", name)
			}
			continue
		}
		classes = append(classes, class)
	}
	return classes
}

// suggestClass returns the closest known class key within a small edit distance
func suggestClass(name string) string {
	folded := cases.Fold().String(strings.TrimSpace(name))
	best, bestDist := "", 3
	for _, key := range npcClassOrder {
		if d := levenshtein.ComputeDistance(folded, key); d < bestDist {
			best, bestDist = key, d
		}
	}
	return best
}

// newNPC draws, in order: first name, hp jitter, attack jitter, initiative jitter
func newNPC(rng *random.RNG, index int, class models.NPCClass, pos models.Position, moveRange int) models.Unit {
	first := npcFirstNames[rng.Pick(len(npcFirstNames))]

	hp := max(1, npcBaseStats.HP+class.HPModifier+rng.NextInt(-2, 2))
	stats := npcBaseStats
	stats.HP = hp
	stats.MaxHP = hp
	stats.Attack = max(0, stats.Attack+class.AttackModifier+rng.NextInt(-1, 1))
	stats.Defense = max(0, stats.Defense+class.DefenseModifier)
	stats.Initiative = max(0, stats.Initiative+class.InitiativeMod+rng.NextInt(-1, 1))
	stats.AttackRange = stats.AttackRange + class.RangeModifier
	if moveRange > 0 {
		stats.MoveRange = moveRange
	}

	return models.Unit{
		ID:       fmt.Sprintf("npc_%d", index+1),
		Type:     models.UnitTypeNPC,
		Name:     fmt.Sprintf("%s the %s", first, class.DisplayName),
		Position: pos,
		Stats:    stats,
		Class:    class.Key,
	}
}
