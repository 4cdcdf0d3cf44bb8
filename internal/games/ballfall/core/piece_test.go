package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/ballfall/internal/games/ballfall/core"
)

func makeBalls(n int) []*core.Ball {
	colors := []core.Color{"red", "blue", "green", "yellow", "purple"}
	balls := make([]*core.Ball, n)
	for i := range balls {
		balls[i] = core.Normal(colors[i%len(colors)])
	}
	return balls
}

func TestNewPieceValidation(t *testing.T) {
	testCases := []struct {
		name  string
		shape core.Shape
		balls int
	}{
		{"empty shape", core.Shape{}, 0},
		{"ragged", core.Shape{{1, 1}, {1}}, 3},
		{"non binary", core.Shape{{1, 2}}, 2},
		{"no occupied cells", core.Shape{{0, 0}}, 0},
		{"too few balls", core.Shape{{1, 1, 1}}, 2},
		{"too many balls", core.Shape{{1, 1}}, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := core.NewPiece(core.ShapeI3, tc.shape, makeBalls(tc.balls))
			if !errors.Is(err, core.ErrInvalidShape) {
				t.Errorf("expected ErrInvalidShape, got %v", err)
			}
		})
	}
}

func TestNewPieceRejectsNilBall(t *testing.T) {
	balls := []*core.Ball{core.Normal("red"), nil, core.Normal("red")}
	if _, err := core.NewPieceFromTemplate(core.ShapeI3, balls); !errors.Is(err, core.ErrInvalidShape) {
		t.Errorf("expected ErrInvalidShape, got %v", err)
	}
}

func TestPieceBallOrder(t *testing.T) {
	balls := makeBalls(4)
	p, err := core.NewPieceFromTemplate(core.ShapeT, balls)
	if err != nil {
		t.Fatalf("NewPieceFromTemplate: %v", err)
	}

	// T: {1,1,1},{0,1,0}
	expected := map[[2]int]*core.Ball{
		{0, 0}: balls[0],
		{0, 1}: balls[1],
		{0, 2}: balls[2],
		{1, 1}: balls[3],
	}
	for rc, b := range expected {
		if got := p.BallAt(rc[0], rc[1]); got != b {
			t.Errorf("BallAt(%d,%d): expected %p, got %p", rc[0], rc[1], b, got)
		}
	}
	if p.BallAt(1, 0) != nil || p.BallAt(1, 2) != nil {
		t.Error("empty shape cells must have no ball")
	}
}

func TestPieceRotateMovesBallsWithCells(t *testing.T) {
	balls := makeBalls(4)
	p, err := core.NewPieceFromTemplate(core.ShapeT, balls)
	if err != nil {
		t.Fatalf("NewPieceFromTemplate: %v", err)
	}

	p.Rotate()

	wantShape := core.Shape{
		{0, 1},
		{1, 1},
		{0, 1},
	}
	if !p.Shape().Equal(wantShape) {
		t.Fatalf("unexpected rotated shape: %v", p.Shape())
	}

	// Old (r, c) lands on new (c, R-1-r) with R = 2.
	expected := map[[2]int]*core.Ball{
		{0, 1}: balls[0],
		{1, 1}: balls[1],
		{2, 1}: balls[2],
		{1, 0}: balls[3],
	}
	for rc, b := range expected {
		if got := p.BallAt(rc[0], rc[1]); got != b {
			t.Errorf("BallAt(%d,%d) after rotate: expected %p, got %p", rc[0], rc[1], b, got)
		}
	}
}

func TestPieceRotateFourTimesIsIdentity(t *testing.T) {
	for _, st := range core.AllShapes() {
		t.Run(st.String(), func(t *testing.T) {
			shape := core.Template(st)
			p, err := core.NewPiece(st, shape, makeBalls(shape.Count()))
			if err != nil {
				t.Fatalf("NewPiece: %v", err)
			}
			before := p.Cells()

			for i := 0; i < 4; i++ {
				p.Rotate()
				if p.Len() != shape.Count() {
					t.Fatalf("rotation %d changed ball count to %d", i+1, p.Len())
				}
			}

			if !p.Shape().Equal(shape) {
				t.Errorf("shape changed after 4 rotations: %v", p.Shape())
			}
			after := p.Cells()
			for i := range before {
				if before[i] != after[i] {
					t.Errorf("cell %d: expected %+v, got %+v", i, before[i], after[i])
				}
			}
		})
	}
}

func TestPieceRotateSwapsDimensions(t *testing.T) {
	p, err := core.NewPieceFromTemplate(core.ShapeL, makeBalls(4))
	if err != nil {
		t.Fatalf("NewPieceFromTemplate: %v", err)
	}
	if p.Rows() != 3 || p.Cols() != 2 {
		t.Fatalf("expected 3x2, got %dx%d", p.Rows(), p.Cols())
	}
	p.Rotate()
	if p.Rows() != 2 || p.Cols() != 3 {
		t.Errorf("expected 2x3 after rotate, got %dx%d", p.Rows(), p.Cols())
	}
}

func TestPieceRotateCCWUndoesRotate(t *testing.T) {
	p, err := core.NewPieceFromTemplate(core.ShapeS, makeBalls(4))
	if err != nil {
		t.Fatalf("NewPieceFromTemplate: %v", err)
	}
	before := p.Cells()

	p.Rotate()
	p.RotateCCW()

	after := p.Cells()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("cell %d: expected %+v, got %+v", i, before[i], after[i])
		}
	}
}

func TestPieceOccupiedPositions(t *testing.T) {
	p, err := core.NewPieceFromTemplate(core.ShapeV, makeBalls(3))
	if err != nil {
		t.Fatalf("NewPieceFromTemplate: %v", err)
	}
	p.Pos = core.C(5, 2)

	// V: {1,0},{1,1}
	expected := []core.Coord{core.C(5, 2), core.C(5, 3), core.C(6, 3)}
	got := p.OccupiedPositions()
	if len(got) != len(expected) {
		t.Fatalf("expected %d positions, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("position %d: expected %v, got %v", i, expected[i], got[i])
		}
	}

	p.Move(-1, 1)
	if p.Pos != core.C(4, 3) {
		t.Errorf("expected position (4,3) after move, got %v", p.Pos)
	}
}

func TestPieceClone(t *testing.T) {
	p, err := core.NewPieceFromTemplate(core.ShapeO, makeBalls(4))
	if err != nil {
		t.Fatalf("NewPieceFromTemplate: %v", err)
	}
	clone := p.Clone()
	clone.Rotate()
	clone.BallAt(0, 0).Color = "pink"

	if p.BallAt(0, 0).Color == "pink" {
		t.Error("clone shares balls with the original")
	}
	if p.BallAt(0, 1) != p.Balls()[1] {
		t.Error("original ball layout changed")
	}
}
