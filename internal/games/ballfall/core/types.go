// Package core provides the match/cascade engine for the Ballfall puzzle game.
// This package is UI-agnostic and deterministic: it owns the grid, pieces,
// run detection, special-ball effects, cascade resolution and scoring.
package core

import "strings"

// BallType identifies the behavior of a ball.
type BallType uint8

const (
	BallNormal BallType = iota
	BallExploding
	BallPainterHorizontal
	BallPainterVertical
	BallPainterDiagonal
	BallBlocking
	BallTypeCount // Sentinel value for iteration
)

// String returns the string representation of a ball type.
func (t BallType) String() string {
	switch t {
	case BallNormal:
		return "normal"
	case BallExploding:
		return "exploding"
	case BallPainterHorizontal:
		return "painter_horizontal"
	case BallPainterVertical:
		return "painter_vertical"
	case BallPainterDiagonal:
		return "painter_diagonal"
	case BallBlocking:
		return "blocking"
	default:
		return "unknown"
	}
}

// ParseBallType converts a string to a BallType.
// Returns BallNormal and false if the string is not recognized.
func ParseBallType(s string) (BallType, bool) {
	for t := BallNormal; t < BallTypeCount; t++ {
		if strings.EqualFold(s, t.String()) {
			return t, true
		}
	}
	return BallNormal, false
}

// IsPainter returns true for the three painter types.
func (t BallType) IsPainter() bool {
	return t == BallPainterHorizontal || t == BallPainterVertical || t == BallPainterDiagonal
}

// IsSpecial returns true if the type has an effect when matched.
func (t BallType) IsSpecial() bool {
	return t == BallExploding || t.IsPainter()
}

// Color is an opaque color token. Only equality is meaningful.
type Color string

// NoColor is carried by blocking balls.
const NoColor Color = ""

// Ball is a single unit on the grid or in a piece.
// Balls are handled by pointer so identity survives rotation and placement.
type Ball struct {
	Type  BallType
	Color Color
}

// NewBall creates a ball of the given type and color.
// Blocking balls always get NoColor.
func NewBall(t BallType, c Color) *Ball {
	if t == BallBlocking {
		c = NoColor
	}
	return &Ball{Type: t, Color: c}
}

// Normal is a shorthand for a normal ball of the given color.
func Normal(c Color) *Ball {
	return NewBall(BallNormal, c)
}

// Blocking returns a new colorless blocking ball.
func Blocking() *Ball {
	return NewBall(BallBlocking, NoColor)
}

// Matchable returns true if the ball can take part in a color run.
func (b *Ball) Matchable() bool {
	return b != nil && b.Type != BallBlocking && b.Color != NoColor
}

// SameColor returns true if both balls are matchable and share a color.
func (b *Ball) SameColor(other *Ball) bool {
	return b.Matchable() && other.Matchable() && b.Color == other.Color
}

// paint recolors the ball. Blocking balls ignore paint.
// Returns true if the color changed.
func (b *Ball) paint(c Color) bool {
	if b.Type == BallBlocking || b.Color == c {
		return false
	}
	b.Color = c
	return true
}

// Clone returns an independent copy of the ball.
func (b *Ball) Clone() *Ball {
	if b == nil {
		return nil
	}
	clone := *b
	return &clone
}
