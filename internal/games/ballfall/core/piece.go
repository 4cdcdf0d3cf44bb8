package core

import (
	"fmt"

	"github.com/kamstrup/intmap"
)

// Piece is a falling composition of balls laid out on a shape matrix.
//
// Balls are addressed through a position-keyed map (row*cols+col of the
// current shape), so rotation moves each ball together with its cell and
// BallAt is a direct lookup.
type Piece struct {
	Type  ShapeType
	Pos   Coord // Grid position of the shape's top-left corner
	shape Shape
	cells *intmap.Map[int, *Ball]
}

// PieceCell is one occupied cell of a piece.
type PieceCell struct {
	Offset Coord // Offset from the piece origin (X = col, Y = row)
	Ball   *Ball
}

// NewPiece builds a piece from a shape and its balls.
// Balls are assigned to occupied cells in row-major scan order.
// Returns ErrInvalidShape if the shape is malformed or the ball count differs
// from the number of occupied cells.
func NewPiece(t ShapeType, shape Shape, balls []*Ball) (*Piece, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if n := shape.Count(); n != len(balls) {
		return nil, fmt.Errorf("%w: %d occupied cells but %d balls", ErrInvalidShape, n, len(balls))
	}

	p := &Piece{
		Type:  t,
		shape: shape.Clone(),
		cells: intmap.New[int, *Ball](len(balls)),
	}

	i := 0
	for r := range p.shape.Rows() {
		for c := range p.shape.Cols() {
			if p.shape[r][c] != 1 {
				continue
			}
			if balls[i] == nil {
				return nil, fmt.Errorf("%w: ball %d is nil", ErrInvalidShape, i)
			}
			p.cells.Put(p.key(r, c), balls[i])
			i++
		}
	}
	return p, nil
}

// NewPieceFromTemplate builds a piece using the spawn orientation of t.
func NewPieceFromTemplate(t ShapeType, balls []*Ball) (*Piece, error) {
	shape := Template(t)
	if shape == nil {
		return nil, fmt.Errorf("%w: unknown shape type %d", ErrInvalidShape, t)
	}
	return NewPiece(t, shape, balls)
}

func (p *Piece) key(row, col int) int {
	return row*p.shape.Cols() + col
}

// Rows returns the current shape height.
func (p *Piece) Rows() int {
	return p.shape.Rows()
}

// Cols returns the current shape width.
func (p *Piece) Cols() int {
	return p.shape.Cols()
}

// Len returns the number of balls in the piece.
func (p *Piece) Len() int {
	return p.cells.Len()
}

// Shape returns a copy of the current shape matrix.
func (p *Piece) Shape() Shape {
	return p.shape.Clone()
}

// BallAt returns the ball at (row, col) of the current shape, or nil.
func (p *Piece) BallAt(row, col int) *Ball {
	if !p.shape.Occupied(row, col) {
		return nil
	}
	b, _ := p.cells.Get(p.key(row, col))
	return b
}

// Cells returns the occupied cells in row-major order of the current shape.
func (p *Piece) Cells() []PieceCell {
	out := make([]PieceCell, 0, p.cells.Len())
	for r := range p.shape.Rows() {
		for c := range p.shape.Cols() {
			if b := p.BallAt(r, c); b != nil {
				out = append(out, PieceCell{Offset: C(c, r), Ball: b})
			}
		}
	}
	return out
}

// Balls returns the balls in row-major order of the current shape.
func (p *Piece) Balls() []*Ball {
	cells := p.Cells()
	out := make([]*Ball, len(cells))
	for i, cell := range cells {
		out[i] = cell.Ball
	}
	return out
}

// OccupiedPositions returns the absolute grid coordinates of every ball.
func (p *Piece) OccupiedPositions() []Coord {
	cells := p.Cells()
	out := make([]Coord, len(cells))
	for i, cell := range cells {
		out[i] = p.Pos.AddCoord(cell.Offset)
	}
	return out
}

// Rotate turns the piece 90° clockwise around its bounding box.
// Each ball moves with its cell: the ball at old (r, c) ends up at new (c, R-1-r).
func (p *Piece) Rotate() {
	rows := p.shape.Rows()
	rotated := p.shape.Rotated()
	cells := intmap.New[int, *Ball](p.cells.Len())

	for r := range rows {
		for c := range p.shape.Cols() {
			if b := p.BallAt(r, c); b != nil {
				// rotated shape has `rows` columns
				cells.Put(c*rows+(rows-1-r), b)
			}
		}
	}

	p.shape = rotated
	p.cells = cells
}

// RotateCCW turns the piece 90° counter-clockwise.
func (p *Piece) RotateCCW() {
	p.Rotate()
	p.Rotate()
	p.Rotate()
}

// Move shifts the piece position by (dx, dy).
func (p *Piece) Move(dx, dy int) {
	p.Pos = p.Pos.Add(dx, dy)
}

// Clone returns a copy sharing no shape or cell storage with p.
// Balls are cloned too, so the copy can be placed on a scratch grid.
func (p *Piece) Clone() *Piece {
	clone := &Piece{
		Type:  p.Type,
		Pos:   p.Pos,
		shape: p.shape.Clone(),
		cells: intmap.New[int, *Ball](p.cells.Len()),
	}
	for _, cell := range p.Cells() {
		clone.cells.Put(clone.key(cell.Offset.Y, cell.Offset.X), cell.Ball.Clone())
	}
	return clone
}
