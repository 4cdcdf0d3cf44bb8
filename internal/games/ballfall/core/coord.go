package core

import "fmt"

// Coord represents a 2D coordinate on the grid.
// X is the column (increasing to the right), Y is the row (increasing downward).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// AddCoord returns the sum of two coordinates.
func (c Coord) AddCoord(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

// Step returns the neighbouring coordinate in the given direction.
func (c Coord) Step(d Direction) Coord {
	dx, dy := d.Delta()
	return c.Add(dx, dy)
}

// Chebyshev returns the chessboard distance to another coordinate.
func (c Coord) Chebyshev(other Coord) int {
	dx := c.X - other.X
	dy := c.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return max(dx, dy)
}

// Direction is one of the six run-scan directions.
type Direction uint8

const (
	DirHorizontal Direction = iota
	DirVertical
	DirNorthEast
	DirSouthEast
	DirSouthWest
	DirNorthWest
	DirCount // Sentinel value for iteration
)

// ScanOrder lists the directions in match-attribution priority.
var ScanOrder = [...]Direction{
	DirHorizontal,
	DirVertical,
	DirNorthEast,
	DirSouthEast,
	DirSouthWest,
	DirNorthWest,
}

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case DirHorizontal:
		return "horizontal"
	case DirVertical:
		return "vertical"
	case DirNorthEast:
		return "ne"
	case DirSouthEast:
		return "se"
	case DirSouthWest:
		return "sw"
	case DirNorthWest:
		return "nw"
	default:
		return "unknown"
	}
}

// Delta returns the (dx, dy) offset for one step in this direction.
// Up decreases Y (screen coordinates).
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirHorizontal:
		return 1, 0
	case DirVertical:
		return 0, 1
	case DirNorthEast:
		return 1, -1
	case DirSouthEast:
		return 1, 1
	case DirSouthWest:
		return -1, 1
	case DirNorthWest:
		return -1, -1
	default:
		return 0, 0
	}
}
