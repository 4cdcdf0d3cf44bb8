package core

// Default playfield dimensions.
const (
	DefaultRows = 25
	DefaultCols = 15
)

// Grid is the playfield: a fixed matrix of cells, each empty (nil) or
// holding exactly one ball. Cells are stored in row-major order: index = y*W + x.
type Grid struct {
	W     int     // Number of columns
	H     int     // Number of rows
	Cells []*Ball // Flat array of cells, length W*H
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	return &Grid{
		W:     w,
		H:     h,
		Cells: make([]*Ball, w*h),
	}
}

// NewDefaultGrid creates an empty 15×25 grid.
func NewDefaultGrid() *Grid {
	return NewGrid(DefaultCols, DefaultRows)
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// Get returns the ball at the given coordinate, or nil if empty or out of bounds.
func (g *Grid) Get(c Coord) *Ball {
	if !g.InBounds(c) {
		return nil
	}
	return g.Cells[g.index(c)]
}

// IsEmpty returns true if the cell is in bounds and holds no ball.
func (g *Grid) IsEmpty(c Coord) bool {
	return g.InBounds(c) && g.Cells[g.index(c)] == nil
}

// Set places a ball at the given coordinate. Out-of-bounds writes are ignored.
func (g *Grid) Set(c Coord, b *Ball) {
	if g.InBounds(c) {
		g.Cells[g.index(c)] = b
	}
}

// Remove empties a cell and returns the ball it held.
func (g *Grid) Remove(c Coord) *Ball {
	if !g.InBounds(c) {
		return nil
	}
	i := g.index(c)
	b := g.Cells[i]
	g.Cells[i] = nil
	return b
}

// Fits reports whether the piece could be placed at its current position.
func (g *Grid) Fits(p *Piece) bool {
	return g.checkPlacement(p) == nil
}

func (g *Grid) checkPlacement(p *Piece) error {
	for _, pos := range p.OccupiedPositions() {
		if !g.InBounds(pos) {
			return &PlacementError{At: pos, Outside: true}
		}
		if g.Get(pos) != nil {
			return &PlacementError{At: pos}
		}
	}
	return nil
}

// PlacePiece writes every ball of the piece into the grid at position + offset.
// If any target cell is occupied or outside the grid (including above the top),
// nothing is written and an error wrapping ErrPlacementBlocked is returned.
func (g *Grid) PlacePiece(p *Piece) error {
	if err := g.checkPlacement(p); err != nil {
		return err
	}
	for _, cell := range p.Cells() {
		g.Set(p.Pos.AddCoord(cell.Offset), cell.Ball)
	}
	return nil
}

// ApplyGravity compacts every column downward, keeping the vertical order of
// the balls in each column. Returns true if any ball moved.
// Calling it on a settled grid is a no-op.
func (g *Grid) ApplyGravity() bool {
	moved := false
	for x := 0; x < g.W; x++ {
		write := g.H - 1
		for y := g.H - 1; y >= 0; y-- {
			b := g.Cells[y*g.W+x]
			if b == nil {
				continue
			}
			if y != write {
				g.Cells[write*g.W+x] = b
				g.Cells[y*g.W+x] = nil
				moved = true
			}
			write--
		}
	}
	return moved
}

// IsSettled returns true if no empty cell has a ball directly above it.
func (g *Grid) IsSettled() bool {
	for x := 0; x < g.W; x++ {
		seenEmpty := false
		for y := g.H - 1; y >= 0; y-- {
			b := g.Cells[y*g.W+x]
			if b == nil {
				seenEmpty = true
			} else if seenEmpty {
				return false
			}
		}
	}
	return true
}

// FilledCount returns the number of occupied cells.
func (g *Grid) FilledCount() int {
	count := 0
	for _, b := range g.Cells {
		if b != nil {
			count++
		}
	}
	return count
}

// ColumnHeight returns the number of rows from the topmost ball in column x
// to the floor, or 0 for an empty column.
func (g *Grid) ColumnHeight(x int) int {
	for y := 0; y < g.H; y++ {
		if g.Cells[y*g.W+x] != nil {
			return g.H - y
		}
	}
	return 0
}

// Clone returns a deep copy of the grid, balls included.
func (g *Grid) Clone() *Grid {
	cells := make([]*Ball, len(g.Cells))
	for i, b := range g.Cells {
		cells[i] = b.Clone()
	}
	return &Grid{
		W:     g.W,
		H:     g.H,
		Cells: cells,
	}
}

// Equal returns true if two grids have the same dimensions and ball values.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, b := range g.Cells {
		o := other.Cells[i]
		if (b == nil) != (o == nil) {
			return false
		}
		if b != nil && *b != *o {
			return false
		}
	}
	return true
}
