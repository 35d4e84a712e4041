package brickhole

// EventKind identifies an advisory event emitted by a step.
type EventKind int

const (
	EventBrickDestroyed EventKind = iota
	EventPowerUpCollected
	EventPaddleHit
	EventBallLost
	EventLevelCleared
	EventSessionWon
	EventSessionOver
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventBrickDestroyed:
		return "brick_destroyed"
	case EventPowerUpCollected:
		return "powerup_collected"
	case EventPaddleHit:
		return "paddle_hit"
	case EventBallLost:
		return "ball_lost"
	case EventLevelCleared:
		return "level_cleared"
	case EventSessionWon:
		return "session_won"
	case EventSessionOver:
		return "session_over"
	default:
		return "?"
	}
}

// Event is something that happened during a step. PowerUp is set for
// EventPowerUpCollected, Level for EventLevelCleared.
type Event struct {
	Kind    EventKind
	PowerUp PowerUpKind
	Level   int
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
}
