package brickhole

// Phase is the session state.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseLevelTransition
	PhaseWon
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseLevelTransition:
		return "level_transition"
	case PhaseWon:
		return "won"
	case PhaseGameOver:
		return "gameover"
	default:
		return "?"
	}
}

// Terminal reports whether the phase waits for Acknowledge.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseGameOver
}
