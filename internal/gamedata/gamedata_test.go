package gamedata

import (
	"testing"

	"github.com/samdwyer/rogue1980/internal/rng"
)

func TestLoadMonsters(t *testing.T) {
	file, err := LoadMonsters()
	if err != nil {
		t.Fatalf("Failed to load monsters: %v", err)
	}

	// Verify expected monsters exist
	expectedIDs := map[string]bool{"zombie": false, "vampire": false, "ghost": false, "ogre": false, "snake_mage": false}
	for _, m := range file.Monsters {
		if _, ok := expectedIDs[m.ID]; ok {
			expectedIDs[m.ID] = true
		}
	}
	for id, found := range expectedIDs {
		if !found {
			t.Errorf("Expected monster %q not found", id)
		}
	}

	if file.Player.GlyphRune() != '@' {
		t.Errorf("player glyph = %q, want '@'", file.Player.GlyphRune())
	}
}

func TestMonsterRegistry(t *testing.T) {
	registry, err := LoadMonsterRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	zombie, ok := registry.GetByID("zombie")
	if !ok {
		t.Fatal("Zombie not found by ID")
	}
	if zombie.Name != "Zombie" {
		t.Errorf("Expected name 'Zombie', got %q", zombie.Name)
	}

	// Test weighted spawning is deterministic with same seed
	rng1 := rng.New(12345)
	rng2 := rng.New(12345)
	for i := 0; i < 20; i++ {
		a, _ := registry.SpawnRandom(rng1, 5)
		b, _ := registry.SpawnRandom(rng2, 5)
		if a.ID != b.ID {
			t.Errorf("Spawn %d mismatch: %s != %s", i, a.ID, b.ID)
		}
	}
}

func TestSpawnRespectsMinDepth(t *testing.T) {
	registry, err := LoadMonsterRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	src := rng.New(99)
	for i := 0; i < 200; i++ {
		def, ok := registry.SpawnRandom(src, 1)
		if !ok {
			t.Fatal("SpawnRandom at depth 1 found nothing")
		}
		if def.MinDepth > 1 {
			t.Fatalf("depth 1 spawned %q which needs depth %d", def.ID, def.MinDepth)
		}
	}

	if _, ok := NewRegistry([]MonsterDef{{ID: "deep", SpawnWeight: 5, MinDepth: 9}}).SpawnRandom(src, 1); ok {
		t.Error("SpawnRandom should fail when nothing is available")
	}
}

func TestMonsterStatsAt(t *testing.T) {
	def := MonsterDef{Health: 10, Attack: 3, Defense: 1, Speed: 10, Perception: 5}

	tests := []struct {
		depth int
		want  MonsterStats
	}{
		{1, MonsterStats{Health: 10, Attack: 3, Defense: 1, Speed: 10, Perception: 5}},
		{5, MonsterStats{Health: 26, Attack: 7, Defense: 2, Speed: 10, Perception: 5}},
		{0, MonsterStats{Health: 10, Attack: 3, Defense: 1, Speed: 10, Perception: 5}},
	}

	for _, tt := range tests {
		if got := def.StatsAt(tt.depth); got != tt.want {
			t.Errorf("StatsAt(%d) = %+v, want %+v", tt.depth, got, tt.want)
		}
	}
}

func TestLoadItems(t *testing.T) {
	registry, err := LoadItemRegistry()
	if err != nil {
		t.Fatalf("Failed to load items: %v", err)
	}

	kinds := map[ItemKind]bool{}
	for _, d := range registry.All() {
		kinds[d.Kind] = true
	}
	for _, k := range []ItemKind{ItemWeapon, ItemArmor, ItemConsumable, ItemTreasure} {
		if !kinds[k] {
			t.Errorf("no item of kind %q", k)
		}
	}

	gold, ok := registry.GetByID("gold")
	if !ok {
		t.Fatal("gold not found")
	}
	if got := gold.EffectAt(3).Value; got != 130 {
		t.Errorf("gold at depth 3 = %d, want 130", got)
	}
}

func TestLoadTables(t *testing.T) {
	tables := MustLoadTables()
	if tables.Monsters.Count() == 0 || tables.Items.Count() == 0 {
		t.Errorf("tables not populated: %d monsters, %d items", tables.Monsters.Count(), tables.Items.Count())
	}
	if tables.Player.ID != "player" || tables.Player.Health <= 0 {
		t.Errorf("player template = %+v", tables.Player)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00FF00", true},
		{"#000000", true},
		{"invalid", false},
		{"#FFF", false}, // Too short
		{"#GG0000", false},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}

func TestParseColorNames(t *testing.T) {
	for _, name := range []string{"red", "Green", "silver", "#123456"} {
		if _, err := ParseColor(name); err != nil {
			t.Errorf("ParseColor(%q) error = %v", name, err)
		}
	}
	if _, err := ParseColor("not-a-color"); err == nil {
		t.Error("ParseColor(not-a-color) should fail")
	}
}

func TestGlyphRune(t *testing.T) {
	if got := (MonsterDef{Glyph: "T"}).GlyphRune(); got != 'T' {
		t.Errorf("GlyphRune() = %q, want 'T'", got)
	}
	if got := (ItemDef{}).GlyphRune(); got != '?' {
		t.Errorf("empty GlyphRune() = %q, want '?'", got)
	}
}
