package core

// ExplosionRadius is the default Chebyshev radius cleared by an exploding ball.
const ExplosionRadius = 3

// paintLines returns the lines a painter of type t covers through origin,
// as (dx, dy) step pairs walked in both directions.
func paintLines(t BallType) [][2]int {
	switch t {
	case BallPainterHorizontal:
		return [][2]int{{1, 0}}
	case BallPainterVertical:
		return [][2]int{{0, 1}}
	case BallPainterDiagonal:
		return [][2]int{{1, 1}, {1, -1}}
	default:
		return nil
	}
}

// Paint repaints every colored ball on the painter's line(s) through origin to
// the painter's color. Painted balls are not removed.
// Returns the coordinates whose color actually changed.
func (g *Grid) Paint(origin Coord) []Coord {
	painter := g.Get(origin)
	if painter == nil || !painter.Type.IsPainter() {
		return nil
	}

	var changed []Coord
	for _, line := range paintLines(painter.Type) {
		for _, sign := range [2]int{1, -1} {
			dx, dy := line[0]*sign, line[1]*sign
			for c := origin.Add(dx, dy); g.InBounds(c); c = c.Add(dx, dy) {
				if b := g.Get(c); b != nil && b.paint(painter.Color) {
					changed = append(changed, c)
				}
			}
		}
	}
	return changed
}

// BlastArea returns every occupied cell within the given Chebyshev radius of
// center, the center included. Blocking balls are part of the area.
func (g *Grid) BlastArea(center Coord, radius int) []Coord {
	var area []Coord
	for y := center.Y - radius; y <= center.Y+radius; y++ {
		for x := center.X - radius; x <= center.X+radius; x++ {
			c := C(x, y)
			if g.Get(c) != nil {
				area = append(area, c)
			}
		}
	}
	return area
}
