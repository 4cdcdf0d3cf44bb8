package ballfall

import (
	"testing"

	"github.com/vovakirdan/ballfall/internal/config"
	platformcore "github.com/vovakirdan/ballfall/internal/core"
	"github.com/vovakirdan/ballfall/internal/games/ballfall/core"
)

func TestAutoplayerFindsClearingPlacement(t *testing.T) {
	grid := core.MustParseGrid(
		". . . . .",
		". . . . .",
		". . . . .",
		"R R . B B",
	)
	p := mustPiece(t, core.ShapeI3, "red", "green", "yellow")

	a := NewAutoplayer(core.DefaultEngineConfig())
	best, ok := a.Best(grid, p)
	if !ok {
		t.Fatal("expected a placement")
	}
	if best.Value < 100 {
		t.Errorf("best placement should clear balls, got %+v", best)
	}
	if grid.FilledCount() != 4 {
		t.Error("Best must not modify the grid")
	}
}

func TestAutoplayerNoPlacement(t *testing.T) {
	grid := core.NewGrid(3, 2)
	for y := range 2 {
		for x := range 3 {
			grid.Set(core.C(x, y), core.Blocking())
		}
	}
	p := mustPiece(t, core.ShapeI3, "red", "green", "yellow")

	if _, ok := NewAutoplayer(core.DefaultEngineConfig()).Best(grid, p); ok {
		t.Error("expected no placement on a full grid")
	}
}

func TestAutoplayerDrivesGame(t *testing.T) {
	play := func() *Game {
		g := New(config.DefaultBallfallConfig())
		g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 30, Seed: 99})
		a := NewAutoplayer(g.EngineConfig())
		for range 3000 {
			if g.State().GameOver {
				break
			}
			g.Step(a.Frame(g))
		}
		return g
	}

	g := play()
	if g.Pieces() < 10 {
		t.Errorf("autoplayer locked only %d pieces", g.Pieces())
	}
	if g.Summary("bot").Score != g.State().Score {
		t.Error("summary score should match state")
	}

	if other := play(); other.Snapshot() != g.Snapshot() {
		t.Error("autoplay with the same seed should be deterministic")
	}
}
