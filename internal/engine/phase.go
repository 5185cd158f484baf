package engine

// Phase is the scheduler's position within a round.
type Phase uint8

const (
	// PhaseAwaitingInput waits for the player's next intent.
	PhaseAwaitingInput Phase = iota
	// PhaseResolvingAction applies the submitted intent.
	PhaseResolvingAction
	// PhaseAdvancingAI lets every living monster act in queue order.
	PhaseAdvancingAI
	// PhaseRoundComplete bumps the turn counter and checks for level or game end.
	PhaseRoundComplete
	// PhaseTerminal means the run is over; no further intents are accepted.
	PhaseTerminal
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingInput:
		return "awaiting_input"
	case PhaseResolvingAction:
		return "resolving_action"
	case PhaseAdvancingAI:
		return "advancing_ai"
	case PhaseRoundComplete:
		return "round_complete"
	case PhaseTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Outcome is how the run stands.
type Outcome uint8

const (
	OutcomePlaying Outcome = iota
	OutcomeWon
	OutcomeLost
	OutcomeQuit
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomePlaying:
		return "playing"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	case OutcomeQuit:
		return "quit"
	default:
		return "unknown"
	}
}
