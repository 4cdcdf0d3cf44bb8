package ballfall

import (
	"strings"
	"testing"

	"github.com/vovakirdan/ballfall/internal/config"
	platformcore "github.com/vovakirdan/ballfall/internal/core"
	"github.com/vovakirdan/ballfall/internal/games/ballfall/core"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New(config.DefaultBallfallConfig())
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: seed})
	return g
}

func mustPiece(t *testing.T, st core.ShapeType, colors ...core.Color) *core.Piece {
	t.Helper()
	balls := make([]*core.Ball, len(colors))
	for i, c := range colors {
		balls[i] = core.Normal(c)
	}
	p, err := core.NewPieceFromTemplate(st, balls)
	if err != nil {
		t.Fatalf("NewPieceFromTemplate: %v", err)
	}
	return p
}

func TestGameReset(t *testing.T) {
	g := newTestGame(t, 42)

	state := g.State()
	if state.Score != 0 || state.GameOver || state.Paused {
		t.Errorf("unexpected initial state %+v", state)
	}
	if state.Level != 1 {
		t.Errorf("Level = %d, want 1", state.Level)
	}
	if g.Current() == nil || g.Next() == nil {
		t.Fatal("expected a falling piece and a preview piece")
	}
	if g.Current().Pos.Y != 0 {
		t.Errorf("piece should spawn on the top row, got %v", g.Current().Pos)
	}
	if g.Grid().FilledCount() != 0 {
		t.Error("grid should start empty")
	}
	if g.Snapshot().State != StatePlaying {
		t.Errorf("State = %s, want playing", g.Snapshot().State)
	}
}

func TestGameDeterministicWithSeed(t *testing.T) {
	run := func() Snapshot {
		g := newTestGame(t, 1234)
		for i := range 600 {
			in := platformcore.NewInputFrame()
			switch i % 15 {
			case 3:
				in.Set(platformcore.ActionLeft)
			case 7:
				in.Set(platformcore.ActionRotate)
			case 14:
				in.Set(platformcore.ActionHardDrop)
			}
			g.Step(in)
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("same seed produced different snapshots:\n%+v\n%+v", a, b)
	}
	if a.Pieces == 0 {
		t.Error("expected some pieces to lock")
	}
}

func TestGamePieceFalls(t *testing.T) {
	g := newTestGame(t, 1)
	interval := g.FallInterval()
	start := g.Current().Pos

	for range interval {
		g.Step(platformcore.NewInputFrame())
	}

	if got := g.Current().Pos; got.Y != start.Y+1 || got.X != start.X {
		t.Errorf("after %d ticks piece at %v, want one row below %v", interval, got, start)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, 1)
	start := g.Current().Pos

	res := g.Step(platformcore.FrameOf(platformcore.ActionPause))
	if !res.State.Paused {
		t.Fatal("expected paused state")
	}
	for range 200 {
		g.Step(platformcore.NewInputFrame())
	}
	if g.Current().Pos != start {
		t.Error("piece moved while paused")
	}
	if g.Snapshot().State != StatePaused {
		t.Errorf("State = %s, want paused", g.Snapshot().State)
	}

	g.Step(platformcore.FrameOf(platformcore.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestGameMoveStopsAtWalls(t *testing.T) {
	g := newTestGame(t, 7)

	for range 20 {
		g.Step(platformcore.FrameOf(platformcore.ActionLeft))
	}
	if x := g.Current().Pos.X; x != 0 {
		t.Errorf("after moving left, X = %d, want 0", x)
	}

	for range 30 {
		g.Step(platformcore.FrameOf(platformcore.ActionRight))
	}
	cur := g.Current()
	if want := g.Grid().W - cur.Cols(); cur.Pos.X != want {
		t.Errorf("after moving right, X = %d, want %d", cur.Pos.X, want)
	}
}

func TestGameRotateWallKick(t *testing.T) {
	g := newTestGame(t, 1)

	p := mustPiece(t, core.ShapeI3, "red", "blue", "green")
	p.Rotate() // vertical
	p.Pos = core.C(g.grid.W-1, 5)
	g.current = p
	g.fallTicks = 0

	g.Step(platformcore.FrameOf(platformcore.ActionRotate))

	cur := g.Current()
	if cur.Cols() != 3 {
		t.Fatalf("expected horizontal piece after rotation, got %dx%d", cur.Rows(), cur.Cols())
	}
	if want := g.grid.W - 3; cur.Pos.X != want {
		t.Errorf("wall kick X = %d, want %d", cur.Pos.X, want)
	}
}

func TestGameHardDropLocks(t *testing.T) {
	g := newTestGame(t, 5)
	n := g.Current().Len()

	res := g.Step(platformcore.FrameOf(platformcore.ActionHardDrop))
	if !res.Locked {
		t.Fatal("hard drop should lock the piece")
	}
	if g.Pieces() != 1 {
		t.Errorf("Pieces = %d, want 1", g.Pieces())
	}

	grid := g.Grid()
	if got := grid.FilledCount(); got != n-res.Cleared {
		t.Errorf("FilledCount = %d, want %d", got, n-res.Cleared)
	}
	if !grid.IsSettled() {
		t.Error("grid should be settled after the cascade")
	}
	if g.Current() == nil || g.Current().Pos.Y != 0 {
		t.Error("next piece should spawn on the top row")
	}
}

func TestGameLockResolvesCascade(t *testing.T) {
	g := newTestGame(t, 5)

	bottom := g.grid.H - 1
	g.grid.Set(core.C(0, bottom), core.Normal("red"))
	g.grid.Set(core.C(1, bottom), core.Normal("red"))

	p := mustPiece(t, core.ShapeI3, "red", "blue", "green")
	p.Pos = core.C(2, 0)
	g.current = p

	res := g.Step(platformcore.FrameOf(platformcore.ActionHardDrop))
	if res.Cleared != 3 || res.Depth != 1 {
		t.Fatalf("Cleared = %d, Depth = %d, want 3 and 1", res.Cleared, res.Depth)
	}
	if res.State.Score != 3 {
		t.Errorf("Score = %d, want 3", res.State.Score)
	}

	grid := g.Grid()
	if grid.FilledCount() != 2 {
		t.Errorf("FilledCount = %d, want 2", grid.FilledCount())
	}
	if b := grid.Get(core.C(3, bottom)); b == nil || b.Color != "blue" {
		t.Errorf("blue ball should remain at (3, %d), got %v", bottom, b)
	}
	if g.Snapshot().BallsCleared != 3 || g.Snapshot().MaxCascade != 1 {
		t.Errorf("unexpected snapshot %+v", g.Snapshot())
	}
	if last, points := g.LastCascade(); last.TotalCleared != 3 || points != 3 {
		t.Errorf("LastCascade = (%d cleared, %d pts), want (3, 3)", last.TotalCleared, points)
	}
	if len(g.flash) != 3 {
		t.Errorf("expected 3 flashing cells, got %d", len(g.flash))
	}

	summary := g.Summary("tester")
	if len(summary.Matches) != 1 || summary.Matches[0].Count != 3 || summary.Matches[0].Color != "red" {
		t.Errorf("unexpected match stats %+v", summary.Matches)
	}
}

func TestGameLevelUpRefreshesPalette(t *testing.T) {
	g := newTestGame(t, 5)

	bottom := g.grid.H - 1
	g.grid.Set(core.C(0, bottom), core.Normal("red"))
	g.grid.Set(core.C(1, bottom), core.Normal("red"))
	p := mustPiece(t, core.ShapeI3, "red", "blue", "green")
	p.Pos = core.C(2, 0)
	g.current = p
	g.Step(platformcore.FrameOf(platformcore.ActionHardDrop))

	if got := len(g.tracker.Palette()); got != core.PaletteSize(1) {
		t.Fatalf("palette at level 1 = %d colors, want %d", got, core.PaletteSize(1))
	}

	for g.level < 3 {
		g.applyCascade(core.CascadeResult{
			TotalCleared: g.cfg.Levels.BallsPerLevel,
			Levels:       []core.LevelRecord{{}},
		}, core.ScoreUpdate{})
	}

	if got, want := len(g.tracker.Palette()), core.PaletteSize(g.level); got != want || got <= core.PaletteSize(1) {
		t.Errorf("palette at level %d = %d colors, want %d", g.level, got, want)
	}
	stats := g.MatchStats()
	if len(stats) != 1 || stats[0].Color != "red" || stats[0].Count != 3 {
		t.Errorf("match stats lost on level up: %+v", stats)
	}
}

func TestGameOverOnBlockedSpawn(t *testing.T) {
	g := newTestGame(t, 3)

	for y := 1; y < g.grid.H; y++ {
		for x := range g.grid.W {
			g.grid.Set(core.C(x, y), core.Blocking())
		}
	}
	p := mustPiece(t, core.ShapeI3, "red", "blue", "green")
	p.Pos = core.C(6, 0)
	g.current = p

	res := g.Step(platformcore.FrameOf(platformcore.ActionHardDrop))
	if !res.Locked {
		t.Error("expected the piece to lock")
	}
	if !res.State.GameOver {
		t.Fatal("spawn into an occupied area should end the game")
	}

	before := g.Snapshot()
	g.Step(platformcore.FrameOf(platformcore.ActionHardDrop))
	after := g.Snapshot()
	if after.Pieces != before.Pieces || after.Grid != before.Grid {
		t.Error("game should not change after game over")
	}
	if after.State != StateGameOver {
		t.Errorf("State = %s, want game_over", after.State)
	}
}

func TestGameBestCarriesOverReset(t *testing.T) {
	g := New(config.DefaultBallfallConfig())
	g.SetBest(50)
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 30, Seed: 9})

	if g.State().Best != 50 {
		t.Errorf("Best = %d, want 50", g.State().Best)
	}
}

func TestGameTooSmall(t *testing.T) {
	g := New(config.DefaultBallfallConfig())
	g.Reset(platformcore.RuntimeConfig{ScreenW: 20, ScreenH: 10, Seed: 1})

	if g.Snapshot().State != StatePausedSmall {
		t.Fatalf("State = %s, want paused_small_window", g.Snapshot().State)
	}

	screen := platformcore.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too-small message")
	}

	g.Resize(80, 30)
	if g.Snapshot().State != StatePlaying {
		t.Error("resize should resume play")
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, 11)
	screen := platformcore.NewScreen(80, 30)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"B A L L F A L L", "Score: 0", "Level: 1", "Next:", "Level up:", "Space Drop"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	g.Step(platformcore.FrameOf(platformcore.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("expected pause overlay")
	}
}

func TestScreenColor(t *testing.T) {
	tests := []struct {
		ball *core.Ball
		want platformcore.Color
	}{
		{core.Normal("red"), platformcore.ColorRed},
		{core.Normal("purple"), platformcore.ColorMagenta},
		{core.Normal("pink"), platformcore.ColorPink},
		{core.Blocking(), platformcore.ColorGray},
		{nil, platformcore.ColorDefault},
	}
	for _, tt := range tests {
		if got := ScreenColor(tt.ball); got != tt.want {
			t.Errorf("ScreenColor(%v) = %v, want %v", tt.ball, got, tt.want)
		}
	}
}
