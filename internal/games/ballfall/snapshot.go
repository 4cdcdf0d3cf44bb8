package ballfall

import (
	"github.com/vovakirdan/ballfall/internal/games/ballfall/core"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick         uint64
	Seed         int64
	Difficulty   int
	Level        int
	Score        int
	Best         int
	Pieces       int
	BallsCleared int
	MaxCascade   int
	Grid         string // RenderASCII of the settled grid
	Piece        string // Shape type of the falling piece, "" if none
	PiecePos     core.Coord
	State        GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	s := Snapshot{
		Tick:         g.tick,
		Seed:         g.seed,
		Difficulty:   g.difficulty,
		Level:        g.level,
		Pieces:       g.pieces,
		BallsCleared: g.ballsCleared,
		MaxCascade:   g.maxCascade,
		State:        state,
	}
	if g.scores != nil {
		s.Score = g.scores.Score()
		s.Best = g.scores.Best()
	}
	if g.grid != nil {
		s.Grid = core.RenderASCII(g.grid)
	}
	if g.current != nil {
		s.Piece = g.current.Type.String()
		s.PiecePos = g.current.Pos
	}
	return s
}

// RunSummary is the persisted outcome of a finished session.
type RunSummary struct {
	Player       string
	Difficulty   int
	Score        int
	Level        int
	Pieces       int
	BallsCleared int
	MaxCascade   int
	Ticks        uint64
	Matches      []core.MatchCount
}

// RunSaver persists finished sessions.
type RunSaver interface {
	SaveRun(run RunSummary) (int64, error)
}

// Summary returns the session outcome for the given player.
func (g *Game) Summary(player string) RunSummary {
	run := RunSummary{
		Player:       player,
		Difficulty:   g.difficulty,
		Level:        g.level,
		Pieces:       g.pieces,
		BallsCleared: g.ballsCleared,
		MaxCascade:   g.maxCascade,
		Ticks:        g.tick,
	}
	if g.scores != nil {
		run.Score = g.scores.Score()
	}
	if g.tracker != nil {
		run.Matches = g.tracker.Snapshot()
	}
	return run
}
