package core

// MinMatchLength is the default shortest run that counts as a match.
const MinMatchLength = 3

// Run is a maximal line of same-colored balls found by one direction scan.
type Run struct {
	Dir   Direction
	Color Color
	Cells []Coord // In scan order
}

// Len returns the run length.
func (r Run) Len() int {
	return len(r.Cells)
}

// MatchSet is the merged result of one scan pass.
// Every cell appears once and is attributed to the first direction that
// reached it, following ScanOrder.
type MatchSet struct {
	Runs  []Run
	owner map[Coord]Direction
	order []Coord
}

// NewMatchSet creates an empty match set.
func NewMatchSet() *MatchSet {
	return &MatchSet{owner: make(map[Coord]Direction)}
}

// add records a run and claims its unclaimed cells.
func (m *MatchSet) add(run Run) {
	m.Runs = append(m.Runs, run)
	for _, c := range run.Cells {
		m.claim(c, run.Dir)
	}
}

func (m *MatchSet) claim(c Coord, d Direction) bool {
	if _, ok := m.owner[c]; ok {
		return false
	}
	m.owner[c] = d
	m.order = append(m.order, c)
	return true
}

// Merge folds another set into m. Cells already in m keep their attribution.
// Returns the cells that were new to m.
func (m *MatchSet) Merge(other *MatchSet) []Coord {
	var added []Coord
	for _, run := range other.Runs {
		fresh := false
		for _, c := range run.Cells {
			if m.claim(c, run.Dir) {
				added = append(added, c)
				fresh = true
			}
		}
		if fresh {
			m.Runs = append(m.Runs, run)
		}
	}
	return added
}

// Len returns the number of distinct matched cells.
func (m *MatchSet) Len() int {
	return len(m.order)
}

// IsEmpty returns true if nothing matched.
func (m *MatchSet) IsEmpty() bool {
	return len(m.order) == 0
}

// Contains returns true if the cell is part of the set.
func (m *MatchSet) Contains(c Coord) bool {
	_, ok := m.owner[c]
	return ok
}

// Attribution returns the direction credited with the cell.
func (m *MatchSet) Attribution(c Coord) (Direction, bool) {
	d, ok := m.owner[c]
	return d, ok
}

// Cells returns the matched cells in the order they were claimed.
func (m *MatchSet) Cells() []Coord {
	out := make([]Coord, len(m.order))
	copy(out, m.order)
	return out
}

// FindMatches scans the grid in all six directions for maximal runs of at
// least minLen equal, non-blocking colors. Runs shorter than minLen are ignored.
func (g *Grid) FindMatches(minLen int) *MatchSet {
	if minLen < 2 {
		minLen = MinMatchLength
	}
	set := NewMatchSet()
	for _, d := range ScanOrder {
		for _, run := range g.scanDirection(d, minLen) {
			set.add(run)
		}
	}
	return set
}

// scanDirection returns every maximal run in direction d.
// A run starts at a cell whose predecessor does not share its color.
func (g *Grid) scanDirection(d Direction, minLen int) []Run {
	dx, dy := d.Delta()
	var runs []Run

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			start := C(x, y)
			b := g.Get(start)
			if !b.Matchable() {
				continue
			}
			if b.SameColor(g.Get(start.Add(-dx, -dy))) {
				continue // Not the start of a run
			}

			cells := []Coord{start}
			next := start.Add(dx, dy)
			for b.SameColor(g.Get(next)) {
				cells = append(cells, next)
				next = next.Add(dx, dy)
			}

			if len(cells) >= minLen {
				runs = append(runs, Run{Dir: d, Color: b.Color, Cells: cells})
			}
		}
	}
	return runs
}
