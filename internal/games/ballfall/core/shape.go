package core

import "fmt"

// ShapeType identifies a piece template.
type ShapeType uint8

const (
	ShapeI3 ShapeType = iota
	ShapeI4
	ShapeV
	ShapeO
	ShapeT
	ShapeL
	ShapeJ
	ShapeS
	ShapeZ
	ShapeCount // Sentinel value for iteration
)

// String returns the string representation of a shape type.
func (s ShapeType) String() string {
	switch s {
	case ShapeI3:
		return "I3"
	case ShapeI4:
		return "I4"
	case ShapeV:
		return "V"
	case ShapeO:
		return "O"
	case ShapeT:
		return "T"
	case ShapeL:
		return "L"
	case ShapeJ:
		return "J"
	case ShapeS:
		return "S"
	case ShapeZ:
		return "Z"
	default:
		return "?"
	}
}

// ParseShapeType parses a shape name as produced by String.
func ParseShapeType(s string) (ShapeType, bool) {
	for t := ShapeType(0); t < ShapeCount; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}

// AllShapes returns every shape type in declaration order.
func AllShapes() []ShapeType {
	out := make([]ShapeType, 0, ShapeCount)
	for t := ShapeType(0); t < ShapeCount; t++ {
		out = append(out, t)
	}
	return out
}

// Shape is a rows×cols occupancy matrix. A cell is occupied when it holds 1.
type Shape [][]uint8

// templates holds the spawn orientation of every shape type.
var templates = map[ShapeType]Shape{
	ShapeI3: {
		{1, 1, 1},
	},
	ShapeI4: {
		{1, 1, 1, 1},
	},
	ShapeV: {
		{1, 0},
		{1, 1},
	},
	ShapeO: {
		{1, 1},
		{1, 1},
	},
	ShapeT: {
		{1, 1, 1},
		{0, 1, 0},
	},
	ShapeL: {
		{1, 0},
		{1, 0},
		{1, 1},
	},
	ShapeJ: {
		{0, 1},
		{0, 1},
		{1, 1},
	},
	ShapeS: {
		{0, 1, 1},
		{1, 1, 0},
	},
	ShapeZ: {
		{1, 1, 0},
		{0, 1, 1},
	},
}

// Template returns a copy of the spawn shape for a shape type.
// Returns nil for unknown types.
func Template(t ShapeType) Shape {
	s, ok := templates[t]
	if !ok {
		return nil
	}
	return s.Clone()
}

// Rows returns the number of rows.
func (s Shape) Rows() int {
	return len(s)
}

// Cols returns the number of columns (0 for an empty shape).
func (s Shape) Cols() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Occupied returns true if (row, col) is inside the shape and set.
func (s Shape) Occupied(row, col int) bool {
	if row < 0 || row >= s.Rows() || col < 0 || col >= s.Cols() {
		return false
	}
	return s[row][col] == 1
}

// Count returns the number of occupied cells.
func (s Shape) Count() int {
	n := 0
	for _, row := range s {
		for _, v := range row {
			if v == 1 {
				n++
			}
		}
	}
	return n
}

// Validate checks that the shape is non-empty, rectangular and binary.
func (s Shape) Validate() error {
	if s.Rows() == 0 || s.Cols() == 0 {
		return fmt.Errorf("%w: empty shape", ErrInvalidShape)
	}
	cols := s.Cols()
	for r, row := range s {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidShape, r, len(row), cols)
		}
		for c, v := range row {
			if v > 1 {
				return fmt.Errorf("%w: cell (%d,%d) holds %d", ErrInvalidShape, r, c, v)
			}
		}
	}
	if s.Count() == 0 {
		return fmt.Errorf("%w: no occupied cells", ErrInvalidShape)
	}
	return nil
}

// Clone returns a deep copy.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for r, row := range s {
		out[r] = append([]uint8(nil), row...)
	}
	return out
}

// Rotated returns the shape turned 90° clockwise.
// For an R×C shape the result is C×R with new[c][R-1-r] = old[r][c].
func (s Shape) Rotated() Shape {
	rows, cols := s.Rows(), s.Cols()
	out := make(Shape, cols)
	for c := range cols {
		out[c] = make([]uint8, rows)
	}
	for r := range rows {
		for c := range cols {
			out[c][rows-1-r] = s[r][c]
		}
	}
	return out
}

// Equal returns true if both shapes have the same dimensions and cells.
func (s Shape) Equal(other Shape) bool {
	if s.Rows() != other.Rows() || s.Cols() != other.Cols() {
		return false
	}
	for r := range s {
		for c := range s[r] {
			if s[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}
