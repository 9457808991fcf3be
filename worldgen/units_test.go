package worldgen

import (
	"reflect"
	"testing"

	"tactical-realm/server/models"
)

func TestGenerateUnitsDeterministic(t *testing.T) {
	opts := UnitOptions{Seed: 42, MonsterCount: 5}
	a := GenerateUnits(opts)
	b := GenerateUnits(opts)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("rosters differ:\n%+v\n%+v", a, b)
	}
}

func TestGenerateUnitsPlayer(t *testing.T) {
	start := models.Position{X: -3, Y: 8}
	units := GenerateUnits(UnitOptions{Seed: 1, PlayerStart: start, PlayerMoveRange: 7})

	player := units[0]
	if player.Type != models.UnitTypePlayer {
		t.Fatalf("first unit type = %s, want player", player.Type)
	}
	if player.Position != start {
		t.Errorf("player position = %+v, want %+v", player.Position, start)
	}
	if player.Stats.MoveRange != 7 {
		t.Errorf("player move range = %d, want 7", player.Stats.MoveRange)
	}
	want := playerBaseStats
	want.MoveRange = 7
	if player.Stats != want {
		t.Errorf("player stats = %+v, want %+v", player.Stats, want)
	}

	if got := GenerateUnits(UnitOptions{Seed: 1})[0].Stats.MoveRange; got != playerBaseStats.MoveRange {
		t.Errorf("default player move range = %d, want %d", got, playerBaseStats.MoveRange)
	}
}

func TestGenerateUnitsDefaultMonsterCount(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		units := GenerateUnits(UnitOptions{Seed: seed})
		monsters := len(units) - 1
		if monsters < MinDefaultMonsters || monsters > MaxDefaultMonsters {
			t.Fatalf("seed %d: %d monsters, want [%d,%d]", seed, monsters, MinDefaultMonsters, MaxDefaultMonsters)
		}
	}
}

func TestGenerateUnitsTruncatesToSpawnOffsets(t *testing.T) {
	units := GenerateUnits(UnitOptions{Seed: 1, MonsterCount: 50})
	if got := len(units) - 1; got != len(monsterOffsets) {
		t.Fatalf("%d monsters, want %d", got, len(monsterOffsets))
	}

	seen := map[models.Position]bool{}
	for _, u := range units {
		if seen[u.Position] {
			t.Fatalf("two units share position %+v", u.Position)
		}
		seen[u.Position] = true
	}
}

func TestGenerateUnitsNegativeCountMeansNoMonsters(t *testing.T) {
	units := GenerateUnits(UnitOptions{Seed: 1, MonsterCount: -1})
	if len(units) != 1 {
		t.Fatalf("%d units, want only the player", len(units))
	}
}

func TestGenerateUnitsMonsterShape(t *testing.T) {
	names := map[string]bool{}
	for _, mt := range monsterTypes {
		names[mt.Name] = true
	}
	offsets := map[models.Position]bool{}
	for _, o := range monsterOffsets {
		offsets[o] = true
	}
	start := models.Position{X: 100, Y: -100}

	for seed := int64(0); seed < 50; seed++ {
		units := GenerateUnits(UnitOptions{Seed: seed, PlayerStart: start, MonsterCount: 8})
		for i, u := range units[1:] {
			if u.Type != models.UnitTypeMonster {
				t.Fatalf("seed %d: unit %d type %s", seed, i, u.Type)
			}
			if !names[u.Name] {
				t.Fatalf("seed %d: unknown monster name %q", seed, u.Name)
			}
			if !offsets[models.Position{X: u.Position.X - start.X, Y: u.Position.Y - start.Y}] {
				t.Fatalf("seed %d: monster at %+v is not on a spawn offset", seed, u.Position)
			}
			s := u.Stats
			if s.HP != s.MaxHP || s.HP < 1 {
				t.Fatalf("seed %d: hp %d/%d", seed, s.HP, s.MaxHP)
			}
			if s.Attack < 0 || s.Defense < 0 || s.Initiative < 0 || s.MoveRange < 0 || s.AttackRange < 0 {
				t.Fatalf("seed %d: negative stat %+v", seed, s)
			}
			// hp jitter is bounded by +/-3 around base plus the type modifier
			if s.HP > monsterBaseStats.HP+4+3 {
				t.Fatalf("seed %d: hp %d above the largest possible roll", seed, s.HP)
			}
		}
	}
}

func TestGenerateUnitsSeedsDiffer(t *testing.T) {
	a := GenerateUnits(UnitOptions{Seed: 1, MonsterCount: 6})
	b := GenerateUnits(UnitOptions{Seed: 2, MonsterCount: 6})
	if reflect.DeepEqual(a, b) {
		t.Fatal("different seeds produced identical rosters")
	}
}
