// Package game provides the main game loop: terminal input, rendering, and
// recording finished runs.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/rogue1980/internal/engine"
	"github.com/samdwyer/rogue1980/internal/entity"
	"github.com/samdwyer/rogue1980/internal/gamedata"
	"github.com/samdwyer/rogue1980/internal/scoreboard"
	"github.com/samdwyer/rogue1980/internal/telemetry"
	"github.com/samdwyer/rogue1980/internal/ui"
	"github.com/samdwyer/rogue1980/internal/world"
)

const (
	// generationRetries is how many seeds are tried before giving up on a run.
	generationRetries = 4
	// scoreboardSize is how many runs the end screen lists.
	scoreboardSize = 10
)

// Game holds the entire game state.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	state    *engine.State
	scores   *scoreboard.Store
	keys     keyMapper
	notice   string
	running  bool
}

// New starts a run and opens the terminal. scores may be nil.
func New(ctx context.Context, cfg Config, tables *gamedata.Tables, scores *scoreboard.Store) (*Game, error) {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.init")
	defer span.End()

	state, err := NewState(ctx, cfg, tables)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(
		attribute.Int64("game.seed", state.Seed()),
		attribute.Int("game.width", cfg.Width),
		attribute.Int("game.height", cfg.Height),
	)

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen, tables),
		state:    state,
		scores:   scores,
		running:  true,
	}, nil
}

// NewState creates the engine state, retrying generation failures with
// the next seed. A seed of 0 picks one from the clock; the seed actually used
// is reported by State.Seed and recorded with the run.
func NewState(ctx context.Context, cfg Config, tables *gamedata.Tables) (*engine.State, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = now().UnixNano()
	}

	ec := cfg.Engine()
	var err error
	for attempt := 0; attempt < generationRetries; attempt++ {
		ec.Seed = seed + int64(attempt)
		var state *engine.State
		state, err = engine.New(ctx, ec, tables)
		if err == nil {
			return state, nil
		}
		if !errors.Is(err, world.ErrGenerationFailure) || errors.Is(err, world.ErrInvalidParams) {
			break
		}
	}
	return nil, fmt.Errorf("start run: %w", err)
}

var now = time.Now

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	for g.running && g.state.Phase() != engine.PhaseTerminal {
		g.renderer.Render(g.state.Snapshot())
		if g.notice != "" {
			g.renderer.RenderMessage(g.notice, 0)
			g.screen.Show()
			g.notice = ""
		}

		// Handle input (blocking)
		if err := g.handleInput(ctx); err != nil {
			return err
		}
	}

	if g.state.Outcome() == engine.OutcomePlaying {
		return nil
	}
	top, err := g.record(ctx)
	g.renderer.RenderEnd(g.state.Stats(), top)
	g.waitForKey()
	return err
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) error {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		return g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	case nil:
		// Screen finalized
		g.running = false
	}
	return nil
}

// handleKeyEvent maps a key to an intent and steps the engine.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) error {
	intent, ok := g.keys.Map(ev.Key(), ev.Rune(), g.inventory())
	if !ok {
		return nil
	}
	_, err := g.state.Step(ctx, intent)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, engine.ErrInvalidMove):
		g.notice = err.Error()
		return nil
	default:
		return err
	}
}

func (g *Game) inventory() []entity.ItemID {
	snap := g.state.Snapshot()
	ids := make([]entity.ItemID, len(snap.Inventory))
	for i, slot := range snap.Inventory {
		ids[i] = slot.ID
	}
	return ids
}

// record saves the finished run and returns the best runs so far.
func (g *Game) record(ctx context.Context) ([]scoreboard.Run, error) {
	if g.scores == nil {
		return nil, nil
	}
	if _, err := g.scores.Record(ctx, RunFromStats(g.state.Stats())); err != nil {
		return nil, err
	}
	return g.scores.Top(ctx, scoreboardSize)
}

func (g *Game) waitForKey() {
	for {
		switch g.screen.PollEvent().(type) {
		case *tcell.EventKey, nil:
			return
		}
	}
}

// RunFromStats converts engine run statistics into a scoreboard row.
func RunFromStats(st engine.RunStats) scoreboard.Run {
	return scoreboard.Run{
		Seed:        st.Seed,
		Outcome:     st.Outcome.String(),
		Depth:       st.Depth,
		Turns:       st.Turns,
		Kills:       st.Kills,
		Attacks:     st.Attacks,
		DamageDealt: st.DamageDealt,
		DamageTaken: st.DamageTaken,
		ItemsUsed:   st.ItemsUsed,
		Moves:       st.Moves,
		Gold:        st.Gold,
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
