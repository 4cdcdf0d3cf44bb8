package core

// RuntimeConfig is passed to a game when it starts or restarts.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  30,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the status a game reports to the platform.
type GameState struct {
	Score    int
	Best     int
	Level    int
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State   GameState
	Locked  bool // A piece locked this tick
	Cleared int  // Balls cleared by the cascade this tick
	Depth   int  // Cascade levels resolved this tick
}
