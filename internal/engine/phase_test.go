package engine

import (
	"testing"

	"github.com/samdwyer/rogue1980/internal/world"
)

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected string
	}{
		{PhaseAwaitingInput, "awaiting_input"},
		{PhaseResolvingAction, "resolving_action"},
		{PhaseAdvancingAI, "advancing_ai"},
		{PhaseRoundComplete, "round_complete"},
		{PhaseTerminal, "terminal"},
		{Phase(99), "unknown"},
	}

	for _, tt := range tests {
		got := tt.phase.String()
		if got != tt.expected {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.expected)
		}
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome  Outcome
		expected string
	}{
		{OutcomePlaying, "playing"},
		{OutcomeWon, "won"},
		{OutcomeLost, "lost"},
		{OutcomeQuit, "quit"},
		{Outcome(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.expected {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.outcome, got, tt.expected)
		}
	}
}

func TestIntentString(t *testing.T) {
	tests := []struct {
		intent   Intent
		expected string
	}{
		{MoveNorth, "move(0,-1)"},
		{Attack(world.East), "attack(1,0)"},
		{UseItem(4), "use_item(4)"},
		{Descend, "descend"},
		{Wait, "wait"},
		{Quit, "quit"},
	}

	for _, tt := range tests {
		if got := tt.intent.String(); got != tt.expected {
			t.Errorf("Intent.String() = %q, want %q", got, tt.expected)
		}
	}
}
