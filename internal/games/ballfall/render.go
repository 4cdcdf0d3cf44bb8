package ballfall

import (
	"fmt"
	"unicode/utf8"

	platformcore "github.com/vovakirdan/ballfall/internal/core"
	"github.com/vovakirdan/ballfall/internal/games/ballfall/core"
)

const (
	cellWidth    = 2 // Screen columns per grid column
	sidebarWidth = 20
	sidebarGap   = 2
)

var ballColors = map[core.Color]platformcore.Color{
	"red":    platformcore.ColorRed,
	"blue":   platformcore.ColorBlue,
	"green":  platformcore.ColorGreen,
	"yellow": platformcore.ColorYellow,
	"purple": platformcore.ColorMagenta,
	"orange": platformcore.ColorOrange,
	"cyan":   platformcore.ColorCyan,
	"pink":   platformcore.ColorPink,
}

var ballRunes = map[core.BallType]rune{
	core.BallNormal:            '●',
	core.BallBlocking:          '■',
	core.BallExploding:         '✹',
	core.BallPainterHorizontal: '↔',
	core.BallPainterVertical:   '↕',
	core.BallPainterDiagonal:   '✕',
}

// ScreenColor maps a ball to the platform color it is drawn with.
func ScreenColor(b *core.Ball) platformcore.Color {
	if b == nil {
		return platformcore.ColorDefault
	}
	if b.Type == core.BallBlocking {
		return platformcore.ColorGray
	}
	if c, ok := ballColors[b.Color]; ok {
		return c
	}
	return platformcore.ColorWhite
}

// BallRune returns the glyph a ball is drawn with.
func BallRune(b *core.Ball) rune {
	if r, ok := ballRunes[b.Type]; ok {
		return r
	}
	return '?'
}

// layoutSize returns the minimum screen size for the configured grid.
func (g *Game) layoutSize() (int, int) {
	boxW := g.cfg.Grid.Cols*cellWidth + 2
	boxH := g.cfg.Grid.Rows + 2
	return boxW + sidebarGap + sidebarWidth, boxH + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.grid == nil {
		return
	}

	totalW, _ := g.layoutSize()
	board := platformcore.NewRect((g.screenW-totalW)/2, 1, g.grid.W*cellWidth+2, g.grid.H+2)

	dst.DrawTextCentered(0, "B A L L F A L L", platformcore.ColorBrightWhite)
	dst.DrawBox(board, platformcore.ColorGray)
	g.renderGrid(dst, board)
	g.renderSidebar(dst, board.Right()+sidebarGap, board.Y)
	g.renderOverlays(dst, board)

	if _, h := g.layoutSize(); g.screenH > h {
		dst.DrawTextCentered(h, g.Controls(), platformcore.ColorGray)
	}
}

func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	w, h := g.layoutSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", platformcore.ColorDefault)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", w, h), platformcore.ColorGray)
}

// cellPos converts a grid coordinate to a screen position inside the board box.
func cellPos(board platformcore.Rect, c core.Coord) (int, int) {
	return board.X + 1 + c.X*cellWidth, board.Y + 1 + c.Y
}

func (g *Game) renderGrid(dst *platformcore.Screen, board platformcore.Rect) {
	for y := range g.grid.H {
		for x := range g.grid.W {
			c := core.C(x, y)
			sx, sy := cellPos(board, c)
			if b := g.grid.Get(c); b != nil {
				dst.SetColored(sx, sy, BallRune(b), ScreenColor(b))
			} else {
				dst.SetColored(sx, sy, '·', platformcore.ColorGray)
			}
		}
	}

	for _, c := range g.flash {
		if g.grid.IsEmpty(c) {
			sx, sy := cellPos(board, c)
			dst.SetColored(sx, sy, '✶', platformcore.ColorBrightWhite)
		}
	}

	if g.current == nil || g.gameOver {
		return
	}

	// Landing preview
	ghost := g.current.Clone()
	for {
		ghost.Move(0, 1)
		if !g.grid.Fits(ghost) {
			ghost.Move(0, -1)
			break
		}
	}
	for _, pos := range ghost.OccupiedPositions() {
		if g.grid.IsEmpty(pos) {
			sx, sy := cellPos(board, pos)
			dst.SetColored(sx, sy, '○', platformcore.ColorGray)
		}
	}

	for _, cell := range g.current.Cells() {
		pos := g.current.Pos.AddCoord(cell.Offset)
		if g.grid.InBounds(pos) {
			sx, sy := cellPos(board, pos)
			dst.SetColored(sx, sy, BallRune(cell.Ball), ScreenColor(cell.Ball))
		}
	}
}

func (g *Game) renderSidebar(dst *platformcore.Screen, x, y int) {
	state := g.State()
	lines := []string{
		fmt.Sprintf("Score: %d", state.Score),
		fmt.Sprintf("Best:  %d", state.Best),
		fmt.Sprintf("Level: %d", g.level),
		fmt.Sprintf("Diff:  %d", g.difficulty),
		fmt.Sprintf("Balls: %d", g.ballsCleared),
		fmt.Sprintf("Pieces: %d", g.pieces),
	}
	if left := g.difficultyMgr.BallsToNextLevel(g.cfg.Levels.Start, g.ballsCleared); left > 0 {
		lines = append(lines, fmt.Sprintf("Level up: %d", left))
	} else {
		lines = append(lines, "Level up: max")
	}
	for i, line := range lines {
		dst.DrawText(x, y+i, line)
	}
	y += len(lines) + 1

	dst.DrawText(x, y, "Next:")
	y++
	if g.next != nil {
		for _, cell := range g.next.Cells() {
			dst.SetColored(x+1+cell.Offset.X*cellWidth, y+cell.Offset.Y, BallRune(cell.Ball), ScreenColor(cell.Ball))
		}
	}
	y += 5

	if depth := g.lastCascade.Depth(); depth > 0 {
		dst.DrawTextColored(x, y, fmt.Sprintf("Cascade x%d", depth), platformcore.ColorYellow)
		dst.DrawTextColored(x, y+1, fmt.Sprintf("+%d pts", g.lastPoints), platformcore.ColorYellow)
		if g.lastCascade.DepthCapped {
			dst.DrawTextColored(x, y+2, "depth capped", platformcore.ColorGray)
		}
	}
	y += 4

	palette := g.tracker.Palette()
	dst.DrawText(x, y, "Colors:")
	for i, c := range palette {
		dst.SetColored(x+i*cellWidth, y+1, '●', ScreenColor(core.Normal(c)))
	}
}

func (g *Game) renderOverlays(dst *platformcore.Screen, board platformcore.Rect) {
	switch {
	case g.paused:
		drawOverlay(dst, board, "PAUSED", "Press P to resume")
	case g.gameOver:
		drawOverlay(dst, board, "GAME OVER", fmt.Sprintf("Score: %d", g.State().Score), "Press R to restart")
	}
}

// drawOverlay draws a boxed message centered on the board.
func drawOverlay(dst *platformcore.Screen, board platformcore.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = platformcore.Max(maxLen, utf8.RuneCountInString(line))
	}

	box := board.Centered(maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, platformcore.ColorBrightWhite)

	for i, line := range lines {
		x := box.X + (box.W-utf8.RuneCountInString(line))/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "←→ Move  ↑/X Rotate  Z Back  ↓ Soft  Space Drop  P Pause  Q Quit"
}
