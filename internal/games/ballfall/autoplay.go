package ballfall

import (
	"fmt"
	"strings"

	platformcore "github.com/vovakirdan/ballfall/internal/core"
	"github.com/vovakirdan/ballfall/internal/games/ballfall/core"
)

// Placement is a target for the falling piece: how many clockwise turns to
// apply and which column the shape's left edge should end up in.
type Placement struct {
	Rotations int
	X         int
	Value     int
}

// Autoplayer drives a Game with a greedy one-piece lookahead: every rotation
// and column is tried on a scratch grid and resolved with a real engine.
type Autoplayer struct {
	engine *core.Engine

	planned int    // Piece count the current plan was made for
	target  string // Layout of the planned orientation
	x       int
	frames  int // Frames spent on the current plan
}

// NewAutoplayer creates an autoplayer that evaluates moves with the given
// engine configuration.
func NewAutoplayer(cfg core.EngineConfig) *Autoplayer {
	return &Autoplayer{engine: core.NewEngine(cfg), planned: -1}
}

// Best returns the highest-valued placement of p on g.
// Ties keep the first placement found (fewest rotations, leftmost column).
// ok is false if the piece fits nowhere.
func (a *Autoplayer) Best(g *core.Grid, p *core.Piece) (Placement, bool) {
	best := Placement{}
	found := false

	piece := p.Clone()
	for rot := range 4 {
		for x := 0; x+piece.Cols() <= g.W; x++ {
			value, ok := a.evaluate(g, piece, x)
			if !ok {
				continue
			}
			if !found || value > best.Value {
				best = Placement{Rotations: rot, X: x, Value: value}
				found = true
			}
		}
		piece.Rotate()
	}
	return best, found
}

// evaluate drops p at column x on a copy of g, resolves the cascade and
// scores the resulting board.
func (a *Autoplayer) evaluate(g *core.Grid, p *core.Piece, x int) (int, bool) {
	scratch := g.Clone()
	piece := p.Clone()
	piece.Pos = core.C(x, 0)
	if !scratch.Fits(piece) {
		return 0, false
	}
	for {
		piece.Move(0, 1)
		if !scratch.Fits(piece) {
			piece.Move(0, -1)
			break
		}
	}
	if err := scratch.PlacePiece(piece); err != nil {
		return 0, false
	}

	res := a.engine.Resolve(scratch)

	aggregate, highest := 0, 0
	for col := range scratch.W {
		h := scratch.ColumnHeight(col)
		aggregate += h
		highest = platformcore.Max(highest, h)
	}
	return res.TotalCleared*100 + res.Depth()*50 - aggregate - highest*4, true
}

// Frame returns the input for the next tick of game.
// A new plan is made whenever a new piece has spawned.
func (a *Autoplayer) Frame(game *Game) platformcore.InputFrame {
	if game.gameOver || game.paused || game.current == nil {
		return platformcore.NewInputFrame()
	}

	if a.planned != game.pieces {
		a.plan(game)
	}
	a.frames++

	cur := game.current
	// Give up on unreachable targets and drop where the piece is.
	if a.target == "" || a.frames > 2*game.grid.W+8 {
		return platformcore.FrameOf(platformcore.ActionHardDrop)
	}

	if layout(cur) != a.target {
		return platformcore.FrameOf(platformcore.ActionRotate)
	}
	switch {
	case cur.Pos.X < a.x:
		return platformcore.FrameOf(platformcore.ActionRight)
	case cur.Pos.X > a.x:
		return platformcore.FrameOf(platformcore.ActionLeft)
	}
	return platformcore.FrameOf(platformcore.ActionHardDrop)
}

func (a *Autoplayer) plan(game *Game) {
	a.planned = game.pieces
	a.frames = 0
	a.target = ""

	best, ok := a.Best(game.grid, game.current)
	if !ok {
		return
	}

	shaped := game.current.Clone()
	for range best.Rotations {
		shaped.Rotate()
	}
	a.target = layout(shaped)
	a.x = best.X
}

// layout identifies a piece orientation by its occupied offsets and balls.
func layout(p *core.Piece) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dx%d", p.Rows(), p.Cols())
	for _, cell := range p.Cells() {
		fmt.Fprintf(&b, " %s@%s", core.BallToken(cell.Ball), cell.Offset)
	}
	return b.String()
}
