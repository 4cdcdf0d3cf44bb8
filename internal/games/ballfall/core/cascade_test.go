package core_test

import (
	"testing"

	"github.com/vovakirdan/ballfall/internal/games/ballfall/core"
)

func TestResolveSingleLevel(t *testing.T) {
	g := core.MustParseGrid(
		". . . .",
		"R R R B",
	)
	res := core.NewEngine(core.DefaultEngineConfig()).Resolve(g)

	if res.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", res.Depth())
	}
	if res.TotalCleared != 3 {
		t.Errorf("expected 3 cleared, got %d", res.TotalCleared)
	}
	if res.DepthCapped {
		t.Error("natural termination must not be reported as capped")
	}
	if g.FilledCount() != 1 {
		t.Errorf("expected 1 ball left, got %d", g.FilledCount())
	}
}

func TestResolveNoMatches(t *testing.T) {
	g := core.MustParseGrid("R B R B")
	res := core.NewEngine(core.DefaultEngineConfig()).Resolve(g)

	if res.Depth() != 0 || res.TotalCleared != 0 {
		t.Errorf("expected nothing cleared, got depth %d, cleared %d", res.Depth(), res.TotalCleared)
	}
}

func TestResolveSettlesFirst(t *testing.T) {
	g := core.MustParseGrid(
		"R . .",
		". R R",
	)
	res := core.NewEngine(core.DefaultEngineConfig()).Resolve(g)

	if res.TotalCleared != 3 {
		t.Errorf("expected the settled ball to complete the run, got %d cleared", res.TotalCleared)
	}
	if !g.IsSettled() {
		t.Error("grid must be settled after a cascade")
	}
}

// chainGrid clears a vertical run at level 0, then the dropped blue ball
// completes a horizontal run at level 1.
func chainGrid() *core.Grid {
	return core.MustParseGrid(
		"B . .",
		"R . .",
		"R . .",
		"R B B",
	)
}

func TestResolveChain(t *testing.T) {
	g := chainGrid()
	res := core.NewEngine(core.DefaultEngineConfig()).Resolve(g)

	if res.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", res.Depth())
	}
	counts := res.LevelCounts()
	if counts[0] != 3 || counts[1] != 3 {
		t.Errorf("expected level counts [3 3], got %v", counts)
	}
	if res.TotalCleared != 6 {
		t.Errorf("expected 6 cleared, got %d", res.TotalCleared)
	}
	for i, l := range res.Levels {
		if l.Level != i {
			t.Errorf("level %d recorded as %d", i, l.Level)
		}
	}
	if g.FilledCount() != 0 {
		t.Errorf("expected empty grid, got:\n%s", core.RenderASCII(g))
	}
}

func TestResolveDepthCap(t *testing.T) {
	g := chainGrid()
	cfg := core.DefaultEngineConfig()
	cfg.MaxDepth = 1
	res := core.NewEngine(cfg).Resolve(g)

	if res.Depth() != 1 {
		t.Errorf("expected exactly 1 level, got %d", res.Depth())
	}
	if !res.DepthCapped {
		t.Error("expected DepthCapped")
	}
	// The pending run is left on the grid.
	if !g.FindMatches(core.MinMatchLength).Contains(core.C(0, 3)) {
		t.Errorf("expected a pending match after the cap, grid:\n%s", core.RenderASCII(g))
	}
}

// staircaseGrid chains twelve single-run levels: every clear drops a ball
// that completes the next run.
func staircaseGrid() *core.Grid {
	return core.MustParseGrid(
		". . . . . .",
		". . . G . .",
		". . . R . .",
		". G . Y . .",
		". P . P . .",
		". Y G G . .",
		". R P Y . .",
		". B Y Y . .",
		". B R B B .",
		". R R P P B",
		"P B P B B B",
		"R G G Y P P",
	)
}

func TestResolveStaircaseRunsToDefaultCap(t *testing.T) {
	g := staircaseGrid()
	cfg := core.DefaultEngineConfig()
	res := core.NewEngine(cfg).Resolve(g)

	if res.Depth() != cfg.MaxDepth {
		t.Fatalf("expected depth %d, got %d", cfg.MaxDepth, res.Depth())
	}
	if !res.DepthCapped {
		t.Error("expected DepthCapped")
	}
	for i, n := range res.LevelCounts() {
		if n != 3 {
			t.Errorf("level %d cleared %d balls, want 3", i, n)
		}
	}
	if res.TotalCleared != 3*cfg.MaxDepth {
		t.Errorf("expected %d cleared, got %d", 3*cfg.MaxDepth, res.TotalCleared)
	}
	if !g.IsSettled() {
		t.Errorf("grid not settled after the cap:\n%s", core.RenderASCII(g))
	}
	// Two more levels are still pending.
	if !g.FindMatches(core.MinMatchLength).Contains(core.C(0, 11)) {
		t.Errorf("expected a pending bottom row run, grid:\n%s", core.RenderASCII(g))
	}

	cfg.MaxDepth = 20
	full := core.NewEngine(cfg).Resolve(staircaseGrid())
	if full.Depth() != 12 || full.DepthCapped {
		t.Errorf("uncapped: depth %d capped %v, want 12 and false", full.Depth(), full.DepthCapped)
	}
}

func TestResolveExplosionClearsBlocking(t *testing.T) {
	g := core.MustParseGrid(
		". . . . . . . . .",
		"R* R R # G B G B Y",
	)
	res := core.NewEngine(core.DefaultEngineConfig()).Resolve(g)

	if res.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", res.Depth())
	}
	level := res.Levels[0]
	if level.Explosions != 1 {
		t.Errorf("expected 1 explosion, got %d", level.Explosions)
	}
	if level.ClearedCount() != 4 {
		t.Errorf("expected 4 cleared (3 matched + blocking), got %d", level.ClearedCount())
	}

	var blockingCleared bool
	for _, cb := range level.Cleared {
		if cb.Type == core.BallBlocking {
			blockingCleared = true
			if cb.Cause != core.CauseExploded {
				t.Errorf("blocking ball should be cleared by explosion, got cause %v", cb.Cause)
			}
		}
	}
	if !blockingCleared {
		t.Error("blocking ball within radius was not cleared")
	}

	// Distance 4 is outside the blast.
	if g.Get(core.C(4, 1)) == nil {
		t.Error("ball outside the radius was cleared")
	}
	if g.FilledCount() != 5 {
		t.Errorf("expected 5 balls left, got %d", g.FilledCount())
	}
}

func TestResolveExplosionRadiusIsChebyshev(t *testing.T) {
	g := core.MustParseGrid(
		"# . . . . . .",
		"# . . . . . .",
		"# . . . . . .",
		"# G . . . . .",
		"# B G . . . #",
		"# Y B . . . #",
		"# Y B R* R R #",
	)
	res := core.NewEngine(core.DefaultEngineConfig()).Resolve(g)

	// Center (3,6). Cells with max(|dx|,|dy|) <= 3 are x 0..6, y 3..6.
	for _, c := range []core.Coord{core.C(0, 3), core.C(1, 3), core.C(6, 4), core.C(6, 6)} {
		if g.Get(c) != nil {
			t.Errorf("expected %v cleared", c)
		}
	}
	// The three blocking balls above the blast fall to the floor.
	for _, y := range []int{4, 5, 6} {
		if b := g.Get(core.C(0, y)); b == nil || b.Type != core.BallBlocking {
			t.Errorf("expected surviving blocking ball at (0,%d)", y)
		}
	}
	if res.Levels[0].Explosions != 1 {
		t.Errorf("expected 1 explosion, got %d", res.Levels[0].Explosions)
	}
}

func TestResolvePainterSecondaryMatch(t *testing.T) {
	g := core.MustParseGrid(
		". G .",
		". B .",
		"R R| R",
	)
	res := core.NewEngine(core.DefaultEngineConfig()).Resolve(g)

	if res.Depth() != 1 {
		t.Fatalf("secondary match must clear in the same level, got depth %d", res.Depth())
	}
	level := res.Levels[0]
	if level.ClearedCount() != 5 {
		t.Errorf("expected painted balls to count, got %d cleared", level.ClearedCount())
	}
	if len(level.Painted) != 2 {
		t.Errorf("expected 2 painted cells, got %v", level.Painted)
	}
	for _, cb := range level.Cleared {
		if cb.Color != "red" {
			t.Errorf("cleared ball at %v has color %s, want red", cb.Pos, cb.Color)
		}
	}
	if g.FilledCount() != 0 {
		t.Errorf("expected empty grid, got:\n%s", core.RenderASCII(g))
	}
}

func TestResolveChainedPainters(t *testing.T) {
	// The horizontal painter paints row 2 red, which pulls the vertical
	// painter at (3,2) into the match; it then paints column 3 red.
	g := core.MustParseGrid(
		". . . G .",
		". . . Y .",
		"R R R- B| G",
	)
	res := core.NewEngine(core.DefaultEngineConfig()).Resolve(g)

	if res.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", res.Depth())
	}
	level := res.Levels[0]
	if level.ClearedCount() != 7 {
		t.Errorf("expected 7 cleared, got %d", level.ClearedCount())
	}
	if len(level.Painted) != 4 {
		t.Errorf("expected 4 painted cells, got %v", level.Painted)
	}
	if g.FilledCount() != 0 {
		t.Errorf("expected empty grid, got:\n%s", core.RenderASCII(g))
	}
}

func TestPaintSkipsBlocking(t *testing.T) {
	g := core.MustParseGrid("G R- # B")
	changed := g.Paint(core.C(1, 0))

	if len(changed) != 2 {
		t.Errorf("expected 2 painted cells, got %v", changed)
	}
	if b := g.Get(core.C(2, 0)); b.Type != core.BallBlocking || b.Color != core.NoColor {
		t.Errorf("blocking ball must not be painted, got %+v", b)
	}
	if g.Get(core.C(3, 0)).Color != "red" {
		t.Error("painting must continue past a blocking ball")
	}
}

func TestPaintDiagonal(t *testing.T) {
	g := core.MustParseGrid(
		"G . B",
		". Rx .",
		"Y # .",
	)
	changed := g.Paint(core.C(1, 1))

	if len(changed) != 3 {
		t.Fatalf("expected 3 painted cells, got %v", changed)
	}
	for _, c := range []core.Coord{core.C(0, 0), core.C(2, 0), core.C(0, 2)} {
		if g.Get(c).Color != "red" {
			t.Errorf("expected %v painted red", c)
		}
	}
}

func TestCascadePhases(t *testing.T) {
	g := core.MustParseGrid("R R R")
	engine := core.NewEngine(core.DefaultEngineConfig())

	var levels, completes int
	engine.SetHooks(core.Hooks{
		OnLevel: func(rec core.LevelRecord) {
			levels++
			if rec.ClearedCount() != 3 {
				t.Errorf("expected 3 cleared in level record, got %d", rec.ClearedCount())
			}
		},
		OnComplete: func(res core.CascadeResult) {
			completes++
			if levels != 1 {
				t.Error("complete must fire after every level")
			}
		},
	})

	c := engine.Start(g)
	expected := []core.Phase{
		core.PhaseMatching,
		core.PhaseResolvingEffects,
		core.PhaseClearing,
		core.PhaseGravity,
		core.PhaseMatching,
		core.PhaseDone,
	}
	if c.Phase() != core.PhaseSettling {
		t.Fatalf("expected settling, got %v", c.Phase())
	}
	for i, want := range expected {
		if got := c.Step(); got != want {
			t.Fatalf("step %d: expected %v, got %v", i+1, want, got)
		}
	}
	if !c.Done() {
		t.Error("expected cascade to be done")
	}
	if levels != 1 || completes != 1 {
		t.Errorf("expected 1 level and 1 complete, got %d and %d", levels, completes)
	}
}

func TestEngineConfigFallsBackToDefaults(t *testing.T) {
	cfg := core.NewEngine(core.EngineConfig{}).Config()
	def := core.DefaultEngineConfig()
	if cfg != def {
		t.Errorf("expected %+v, got %+v", def, cfg)
	}
}
