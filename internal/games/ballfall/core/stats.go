package core

import "sort"

// MatchCount is one (type, color) counter.
type MatchCount struct {
	Type  BallType
	Color Color
	Count int
}

// Tracker accumulates matched ball counts per type and color.
// It is observational only and never feeds back into play.
type Tracker struct {
	counts   map[BallType]map[Color]int
	exploded int
	palette  []Color
}

// NewTracker creates a tracker set up for the given level.
func NewTracker(level int) *Tracker {
	t := &Tracker{}
	t.Reset(level)
	return t
}

// Reset clears every counter and loads the palette of the given level.
func (t *Tracker) Reset(level int) {
	t.counts = make(map[BallType]map[Color]int)
	t.exploded = 0
	t.palette = PaletteForLevel(level)
}

// SetLevel loads the palette of a new level and keeps the counters.
func (t *Tracker) SetLevel(level int) {
	t.palette = PaletteForLevel(level)
}

// RecordMatch increments the counter for (bt, c).
func (t *Tracker) RecordMatch(bt BallType, c Color) {
	byColor, ok := t.counts[bt]
	if !ok {
		byColor = make(map[Color]int)
		t.counts[bt] = byColor
	}
	byColor[c]++
}

// RecordLevel records every matched ball of a cascade level.
// Balls removed only by an explosion are counted separately.
func (t *Tracker) RecordLevel(rec LevelRecord) {
	for _, cb := range rec.Cleared {
		if cb.Cause == CauseExploded {
			t.exploded++
			continue
		}
		t.RecordMatch(cb.Type, cb.Color)
	}
}

// Count returns the counter for (bt, c).
func (t *Tracker) Count(bt BallType, c Color) int {
	return t.counts[bt][c]
}

// Exploded returns the number of balls removed by explosions.
func (t *Tracker) Exploded() int {
	return t.exploded
}

// Total returns the number of recorded matches.
func (t *Tracker) Total() int {
	n := 0
	for _, byColor := range t.counts {
		for _, v := range byColor {
			n += v
		}
	}
	return n
}

// Palette returns the colors relevant to the current level.
func (t *Tracker) Palette() []Color {
	out := make([]Color, len(t.palette))
	copy(out, t.palette)
	return out
}

// Snapshot returns all non-zero counters sorted by type, then color.
func (t *Tracker) Snapshot() []MatchCount {
	var out []MatchCount
	for bt, byColor := range t.counts {
		for c, n := range byColor {
			if n > 0 {
				out = append(out, MatchCount{Type: bt, Color: c, Count: n})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Color < out[j].Color
	})
	return out
}
