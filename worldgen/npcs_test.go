package worldgen

import (
	"reflect"
	"strings"
	"testing"

	"tactical-realm/server/models"
)

func TestGenerateNPCsCapsRoster(t *testing.T) {
	npcs := GenerateNPCs(NPCOptions{Seed: 1, Count: 20})
	if len(npcs) != MaxNPCs {
		t.Fatalf("%d NPCs, want %d", len(npcs), MaxNPCs)
	}
	seen := map[models.Position]bool{}
	for _, n := range npcs {
		if seen[n.Position] {
			t.Fatalf("two NPCs share position %+v", n.Position)
		}
		seen[n.Position] = true
	}

	many := make([]string, 12)
	for i := range many {
		many[i] = "warrior"
	}
	if got := len(GenerateNPCs(NPCOptions{Seed: 1, Classes: many})); got != MaxNPCs {
		t.Fatalf("explicit list of 12 produced %d NPCs, want %d", got, MaxNPCs)
	}
}

func TestGenerateNPCsSkipsUnknownClasses(t *testing.T) {
	npcs := GenerateNPCs(NPCOptions{
		Seed:        1,
		PlayerStart: models.Position{X: 0, Y: 0},
		Count:       0,
		Classes:     []string{"warrior", "unknownclass", "mage"},
	})
	if len(npcs) != 2 {
		t.Fatalf("%d NPCs, want 2", len(npcs))
	}
	if npcs[0].Class != "warrior" || npcs[1].Class != "mage" {
		t.Fatalf("classes = %s, %s; want warrior, mage", npcs[0].Class, npcs[1].Class)
	}
	if !strings.HasSuffix(npcs[0].Name, " the Warrior") || !strings.HasSuffix(npcs[1].Name, " the Mage") {
		t.Fatalf("names = %q, %q", npcs[0].Name, npcs[1].Name)
	}
}

func TestGenerateNPCsAllowsDuplicatesAndCase(t *testing.T) {
	npcs := GenerateNPCs(NPCOptions{Seed: 3, Classes: []string{"archer", " ARCHER ", "Rogue"}})
	if len(npcs) != 3 {
		t.Fatalf("%d NPCs, want 3", len(npcs))
	}
	want := []string{"archer", "archer", "rogue"}
	for i, n := range npcs {
		if n.Class != want[i] {
			t.Errorf("npc %d class = %s, want %s", i, n.Class, want[i])
		}
	}
}

func TestGenerateNPCsEmpty(t *testing.T) {
	if npcs := GenerateNPCs(NPCOptions{Seed: 1}); len(npcs) != 0 {
		t.Fatalf("zero count produced %d NPCs", len(npcs))
	}
	if npcs := GenerateNPCs(NPCOptions{Seed: 1, Classes: []string{"nope"}}); len(npcs) != 0 {
		t.Fatalf("only unknown classes produced %d NPCs", len(npcs))
	}
}

func TestGenerateNPCsDeterministic(t *testing.T) {
	opts := NPCOptions{Seed: 77, Count: 5, MoveRange: 6}
	a := GenerateNPCs(opts)
	b := GenerateNPCs(opts)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("rosters differ:\n%+v\n%+v", a, b)
	}
	for _, n := range a {
		if n.Stats.MoveRange != 6 {
			t.Errorf("%s move range = %d, want 6", n.ID, n.Stats.MoveRange)
		}
	}
}

func TestGenerateNPCsStayCloseToPlayer(t *testing.T) {
	start := models.Position{X: -40, Y: 12}
	for seed := int64(0); seed < 30; seed++ {
		for _, n := range GenerateNPCs(NPCOptions{Seed: seed, PlayerStart: start, Count: 7}) {
			dx, dy := abs(n.Position.X-start.X), abs(n.Position.Y-start.Y)
			if max(dx, dy) > 2 || (dx == 0 && dy == 0) {
				t.Fatalf("seed %d: %s at %+v is not adjacent to the player", seed, n.ID, n.Position)
			}
		}
	}
}

func TestGenerateNPCsStats(t *testing.T) {
	npcs := GenerateNPCs(NPCOptions{Seed: 5, Classes: GetNPCClassNames()})
	for _, n := range npcs {
		class, ok := GetNPCClass(n.Class)
		if !ok {
			t.Fatalf("%s has unknown class %q", n.ID, n.Class)
		}
		s := n.Stats
		if s.HP != s.MaxHP || s.HP < 1 {
			t.Errorf("%s hp %d/%d", n.ID, s.HP, s.MaxHP)
		}
		if s.AttackRange != npcBaseStats.AttackRange+class.RangeModifier {
			t.Errorf("%s attack range = %d", n.ID, s.AttackRange)
		}
		if class.IsRanged() != (s.AttackRange > 1) {
			t.Errorf("%s ranged mismatch", n.ID)
		}
		if s.Defense < 0 || s.Attack < 0 || s.Initiative < 0 {
			t.Errorf("%s has a negative stat %+v", n.ID, s)
		}
	}
}

func TestNPCClassLookup(t *testing.T) {
	names := GetNPCClassNames()
	want := []string{"warrior", "archer", "mage", "cleric", "rogue"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("GetNPCClassNames = %v, want %v", names, want)
	}
	names[0] = "changed"
	if GetNPCClassNames()[0] != "warrior" {
		t.Fatal("GetNPCClassNames exposes its backing slice")
	}

	c, ok := GetNPCClass("Cleric")
	if !ok || c.DisplayName != "Cleric" {
		t.Fatalf("GetNPCClass(Cleric) = %+v, %v", c, ok)
	}
	if _, ok := GetNPCClass("bard"); ok {
		t.Fatal("GetNPCClass(bard) should not exist")
	}
	if archer, _ := GetNPCClass("archer"); !archer.IsRanged() {
		t.Fatal("archer should be ranged")
	}
	if warrior, _ := GetNPCClass("warrior"); warrior.IsRanged() {
		t.Fatal("warrior should be melee")
	}
}

func TestSuggestClass(t *testing.T) {
	if got := suggestClass("warior"); got != "warrior" {
		t.Errorf("suggestClass(warior) = %q", got)
	}
	if got := suggestClass("Mgae"); got != "mage" {
		t.Errorf("suggestClass(Mgae) = %q", got)
	}
	if got := suggestClass("unknownclass"); got != "" {
		t.Errorf("suggestClass(unknownclass) = %q, want none", got)
	}
}
