package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/rogue1980/internal/engine"
	"github.com/samdwyer/rogue1980/internal/entity"
	"github.com/samdwyer/rogue1980/internal/gamedata"
	"github.com/samdwyer/rogue1980/internal/world"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Width != 80 || cfg.Height != 21 || cfg.MinRooms != 6 || cfg.MaxRooms != 9 {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.ScoreboardPath != "rogue1980.db" || cfg.Telemetry {
		t.Errorf("scoreboard=%q telemetry=%v", cfg.ScoreboardPath, cfg.Telemetry)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ROGUE_SEED", "42")
	t.Setenv("ROGUE_WIDTH", "40")
	t.Setenv("ROGUE_HEIGHT", "12")
	t.Setenv("ROGUE_VISION_RADIUS", "5")
	t.Setenv("ROGUE_TELEMETRY", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	ec := cfg.Engine()
	if ec.Seed != 42 || ec.Width != 40 || ec.Height != 12 || ec.VisionRadius != 5 {
		t.Errorf("engine config = %+v", ec)
	}
	if ec.MaxDepth != engine.DefaultMaxDepth {
		t.Errorf("MaxDepth = %d, want %d", ec.MaxDepth, engine.DefaultMaxDepth)
	}
	if !cfg.TelemetryConfig().Enabled {
		t.Error("telemetry should be enabled")
	}
}

func TestLoadConfigRejectsBadValue(t *testing.T) {
	t.Setenv("ROGUE_WIDTH", "wide")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNewStateInvalidParams(t *testing.T) {
	cfg, _ := LoadConfig()
	cfg.Width, cfg.Height = 3, 3

	_, err := NewState(context.Background(), cfg, gamedata.MustLoadTables())
	if !errors.Is(err, world.ErrGenerationFailure) {
		t.Fatalf("NewState() error = %v, want ErrGenerationFailure", err)
	}
}

func TestNewStateReproducible(t *testing.T) {
	cfg, _ := LoadConfig()
	cfg.Seed = 99
	tables := gamedata.MustLoadTables()

	a, err := NewState(context.Background(), cfg, tables)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := NewState(context.Background(), cfg, tables)
	if a.Seed() != b.Seed() || a.Stairs() != b.Stairs() {
		t.Errorf("same seed gave seeds %d/%d stairs %v/%v", a.Seed(), b.Seed(), a.Stairs(), b.Stairs())
	}
}

func TestNewStateZeroSeedUsesClock(t *testing.T) {
	defer func(orig func() time.Time) { now = orig }(now)
	now = func() time.Time { return time.Unix(0, 1234) }

	cfg, _ := LoadConfig()
	cfg.Seed = 0
	state, err := NewState(context.Background(), cfg, gamedata.MustLoadTables())
	if err != nil {
		t.Fatal(err)
	}
	if got := state.Seed(); got < 1234 || got >= 1234+generationRetries {
		t.Errorf("Seed() = %d, want a clock seed from 1234", got)
	}
	if got := state.Stats().Seed; got != state.Seed() {
		t.Errorf("Stats().Seed = %d, want %d", got, state.Seed())
	}
}

func TestKeyMapper(t *testing.T) {
	inv := []entity.ItemID{7, 9}

	tests := []struct {
		name   string
		key    tcell.Key
		ch     rune
		want   engine.Intent
		wantOK bool
	}{
		{"arrow up", tcell.KeyUp, 0, engine.MoveNorth, true},
		{"arrow right", tcell.KeyRight, 0, engine.MoveEast, true},
		{"w", tcell.KeyRune, 'w', engine.MoveNorth, true},
		{"a", tcell.KeyRune, 'a', engine.MoveWest, true},
		{"stairs", tcell.KeyRune, '>', engine.Descend, true},
		{"wait", tcell.KeyRune, '.', engine.Wait, true},
		{"quit", tcell.KeyRune, 'q', engine.Quit, true},
		{"escape", tcell.KeyEscape, 0, engine.Quit, true},
		{"slot 2", tcell.KeyRune, '2', engine.UseItem(9), true},
		{"empty slot", tcell.KeyRune, '5', engine.Intent{}, false},
		{"unbound", tcell.KeyRune, 'z', engine.Intent{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m keyMapper
			got, ok := m.Map(tt.key, tt.ch, inv)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Map() = %v, %v; want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestKeyMapperAttack(t *testing.T) {
	var m keyMapper
	if _, ok := m.Map(tcell.KeyRune, 'A', nil); ok {
		t.Fatal("arming an attack should not produce an intent")
	}
	got, ok := m.Map(tcell.KeyLeft, 0, nil)
	if !ok || got != engine.Attack(world.West) {
		t.Errorf("Map() after A = %v, %v; want attack west", got, ok)
	}

	// The attack is disarmed after use and by any other key.
	if got, _ := m.Map(tcell.KeyLeft, 0, nil); got != engine.MoveWest {
		t.Errorf("second direction = %v, want move west", got)
	}
	m.Map(tcell.KeyRune, 'A', nil)
	m.Map(tcell.KeyRune, 'z', nil)
	if got, _ := m.Map(tcell.KeyUp, 0, nil); got != engine.MoveNorth {
		t.Errorf("direction after cancel = %v, want move north", got)
	}
}

func TestRunFromStats(t *testing.T) {
	run := RunFromStats(engine.RunStats{Seed: 5, Depth: 4, Gold: 300, Kills: 7, Outcome: engine.OutcomeLost})
	if run.Seed != 5 || run.Depth != 4 || run.Gold != 300 || run.Kills != 7 || run.Outcome != "lost" {
		t.Errorf("RunFromStats() = %+v", run)
	}
	if run.ID != "" {
		t.Error("RunFromStats should leave the id for the store to assign")
	}
}
