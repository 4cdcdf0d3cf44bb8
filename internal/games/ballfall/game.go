// Package ballfall runs a Ballfall session: a falling piece over the grid,
// input handling, locking, cascade resolution and level progression.
package ballfall

import (
	"time"

	"github.com/vovakirdan/ballfall/internal/config"
	platformcore "github.com/vovakirdan/ballfall/internal/core"
	"github.com/vovakirdan/ballfall/internal/games/ballfall/core"
)

// kickOffsets are the horizontal shifts tried when a rotation collides.
var kickOffsets = []int{0, -1, 1, -2, 2}

var _ platformcore.Game = (*Game)(nil)

// Game implements a single-player Ballfall session.
type Game struct {
	cfg           config.BallfallConfig
	difficulty    int
	difficultyMgr *config.DifficultyManager

	engine  *core.Engine
	scores  *core.ScoreManager
	tracker *core.Tracker
	factory *core.Factory
	grid    *core.Grid

	current *core.Piece
	next    *core.Piece

	tick      uint64
	fallTicks int // Ticks since the last one-row drop
	lockTicks int // Ticks spent resting on the stack

	level        int
	pieces       int
	ballsCleared int
	maxCascade   int
	best         int
	seed         int64

	lastCascade core.CascadeResult
	lastPoints  int
	flash       []core.Coord
	flashTicks  int

	screenW int
	screenH int

	gameOver bool
	paused   bool
	tooSmall bool
}

// New creates a session from a configuration. The config is normalized.
func New(cfg config.BallfallConfig) *Game {
	cfg = cfg.Normalize()
	return &Game{
		cfg:           cfg,
		difficulty:    core.ClampDifficulty(cfg.Difficulty.Rank),
		difficultyMgr: config.NewDifficultyManager(cfg),
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "ballfall"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Ballfall"
}

// SetBest seeds the best score shown in the HUD. Takes effect on the next Reset.
func (g *Game) SetBest(best int) {
	g.best = best
}

// Difficulty returns the session difficulty (1..5).
func (g *Game) Difficulty() int {
	return g.difficulty
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc platformcore.RuntimeConfig) {
	g.seed = rc.Seed
	if g.seed == 0 {
		g.seed = time.Now().UnixNano()
	}
	if g.scores != nil && g.scores.Best() > g.best {
		g.best = g.scores.Best()
	}

	g.engine = core.NewEngine(g.cfg.EngineConfig())
	g.engine.SetHooks(core.Hooks{OnLevel: g.onCascadeLevel})
	g.scores = core.NewScoreManager(g.cfg.ScoringConfig(), g.difficulty, g.best)
	g.factory = core.NewFactory(g.cfg.FactoryConfig(), uint64(g.seed))
	g.grid = core.NewGrid(g.cfg.Grid.Cols, g.cfg.Grid.Rows)
	g.level = g.cfg.Levels.Start
	g.tracker = core.NewTracker(g.level)

	g.tick = 0
	g.fallTicks = 0
	g.lockTicks = 0
	g.pieces = 0
	g.ballsCleared = 0
	g.maxCascade = 0
	g.lastCascade = core.CascadeResult{}
	g.lastPoints = 0
	g.flash = nil
	g.flashTicks = 0
	g.gameOver = false
	g.paused = false

	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.checkScreenSize()

	g.current = nil
	g.next = g.generate()
	g.spawn()
}

// Resize updates the screen dimensions without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

func (g *Game) checkScreenSize() {
	w, h := g.layoutSize()
	g.tooSmall = g.screenW < w || g.screenH < h
}

// generate draws the next piece from the factory. Factory errors only come
// from malformed shapes, so they end the session.
func (g *Game) generate() *core.Piece {
	p, err := g.factory.Generate(g.level, g.difficulty)
	if err != nil {
		g.gameOver = true
		return nil
	}
	return p
}

// spawn promotes the preview piece to the top center of the grid.
func (g *Game) spawn() {
	if g.gameOver || g.next == nil {
		g.gameOver = true
		return
	}
	g.current = g.next
	g.current.Pos = core.C((g.grid.W-g.current.Cols())/2, 0)
	g.next = g.generate()
	g.fallTicks = 0
	g.lockTicks = 0

	if !g.grid.Fits(g.current) {
		g.gameOver = true
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused || g.gameOver || g.current == nil {
		return platformcore.StepResult{State: g.State()}
	}

	if g.flashTicks > 0 {
		g.flashTicks--
		if g.flashTicks == 0 {
			g.flash = nil
		}
	}

	switch {
	case in.Has(platformcore.ActionLeft):
		g.tryMove(-1, 0)
	case in.Has(platformcore.ActionRight):
		g.tryMove(1, 0)
	}
	switch {
	case in.Has(platformcore.ActionRotate):
		g.tryRotate(true)
	case in.Has(platformcore.ActionRotateCCW):
		g.tryRotate(false)
	}

	if in.Has(platformcore.ActionHardDrop) {
		g.dropToFloor()
		return g.lock()
	}

	interval := g.FallInterval()
	if in.Has(platformcore.ActionSoftDrop) && g.cfg.Timing.SoftDropTicks < interval {
		interval = g.cfg.Timing.SoftDropTicks
	}

	g.fallTicks++
	if g.fallTicks >= interval {
		g.fallTicks = 0
		g.tryMove(0, 1)
	}

	if g.canMove(0, 1) {
		g.lockTicks = 0
		return platformcore.StepResult{State: g.State()}
	}

	g.lockTicks++
	if g.lockTicks >= g.cfg.Timing.LockDelay {
		return g.lock()
	}
	return platformcore.StepResult{State: g.State()}
}

// FallInterval returns the current ticks per one-row drop.
func (g *Game) FallInterval() int {
	return g.difficultyMgr.FallInterval(g.level, int(g.tick))
}

func (g *Game) canMove(dx, dy int) bool {
	p := g.current
	p.Move(dx, dy)
	ok := g.grid.Fits(p)
	p.Move(-dx, -dy)
	return ok
}

func (g *Game) tryMove(dx, dy int) bool {
	if !g.canMove(dx, dy) {
		return false
	}
	g.current.Move(dx, dy)
	return true
}

// dropToFloor moves the falling piece down until it rests on the stack.
func (g *Game) dropToFloor() int {
	rows := 0
	for g.tryMove(0, 1) {
		rows++
	}
	return rows
}

// tryRotate rotates the falling piece, shifting it sideways when the
// rotated shape would collide. The piece is left unchanged if no kick fits.
func (g *Game) tryRotate(clockwise bool) bool {
	candidate := g.current.Clone()
	if clockwise {
		candidate.Rotate()
	} else {
		candidate.RotateCCW()
	}

	origin := candidate.Pos
	for _, dx := range kickOffsets {
		candidate.Pos = origin.Add(dx, 0)
		if g.grid.Fits(candidate) {
			g.current = candidate
			return true
		}
	}
	return false
}

// lock writes the falling piece into the grid, resolves the cascade and
// spawns the next piece.
func (g *Game) lock() platformcore.StepResult {
	if err := g.grid.PlacePiece(g.current); err != nil {
		g.gameOver = true
		return platformcore.StepResult{State: g.State(), Locked: true}
	}
	g.pieces++

	res := g.engine.Resolve(g.grid)
	update := g.scores.ApplyCascade(res)
	g.applyCascade(res, update)

	g.spawn()

	return platformcore.StepResult{
		State:   g.State(),
		Locked:  true,
		Cleared: res.TotalCleared,
		Depth:   res.Depth(),
	}
}

// onCascadeLevel records a cleared level while the cascade runs.
func (g *Game) onCascadeLevel(rec core.LevelRecord) {
	if rec.Level == 0 {
		g.flash = g.flash[:0]
	}
	g.tracker.RecordLevel(rec)
	for _, cb := range rec.Cleared {
		g.flash = append(g.flash, cb.Pos)
	}
}

func (g *Game) applyCascade(res core.CascadeResult, update core.ScoreUpdate) {
	g.lastCascade = res
	g.lastPoints = update.Points
	if res.Depth() > g.maxCascade {
		g.maxCascade = res.Depth()
	}
	if res.TotalCleared == 0 {
		return
	}

	g.flashTicks = g.cfg.Timing.FlashTicks

	g.ballsCleared += res.TotalCleared
	if level := g.difficultyMgr.LevelFor(g.cfg.Levels.Start, g.ballsCleared); level != g.level {
		g.level = level
		g.tracker.SetLevel(level)
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	state := platformcore.GameState{
		Level:    g.level,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
	if g.scores != nil {
		state.Score = g.scores.Score()
		state.Best = g.scores.Best()
	}
	return state
}

// Grid returns a copy of the playfield.
func (g *Game) Grid() *core.Grid {
	return g.grid.Clone()
}

// Current returns a copy of the falling piece, or nil after game over.
func (g *Game) Current() *core.Piece {
	if g.current == nil {
		return nil
	}
	return g.current.Clone()
}

// Next returns a copy of the preview piece.
func (g *Game) Next() *core.Piece {
	if g.next == nil {
		return nil
	}
	return g.next.Clone()
}

// Pieces returns the number of pieces locked so far.
func (g *Game) Pieces() int {
	return g.pieces
}

// LastCascade returns the most recent cascade and the points it earned.
func (g *Game) LastCascade() (core.CascadeResult, int) {
	return g.lastCascade, g.lastPoints
}

// MatchStats returns the per-type, per-color match counters of the session.
func (g *Game) MatchStats() []core.MatchCount {
	return g.tracker.Snapshot()
}

// EngineConfig returns the cascade settings the session resolves with.
func (g *Game) EngineConfig() core.EngineConfig {
	return g.cfg.EngineConfig()
}
