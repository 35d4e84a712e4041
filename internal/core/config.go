package core

// RuntimeConfig is passed to a game at initialization.
// Games use it to size the arena and seed their random sources.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// GameState is the coarse status the platform needs after every tick.
type GameState struct {
	Score    int  // Current score
	Lives    int  // Lives remaining
	Level    int  // Current level (1-based)
	GameOver bool // Session reached a terminal phase (won or lost)
	Won      bool // Terminal phase is a win
	InMenu   bool // Waiting for the player to start a session
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
