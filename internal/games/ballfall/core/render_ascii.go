package core

import (
	"fmt"
	"strings"
)

// colorCodes maps palette colors to single letters for the text format.
var colorCodes = map[Color]rune{
	"red":    'R',
	"blue":   'B',
	"green":  'G',
	"yellow": 'Y',
	"purple": 'P',
	"orange": 'O',
	"cyan":   'C',
	"pink":   'K',
}

// typeSuffix marks special ball types in the text format.
var typeSuffix = map[BallType]rune{
	BallExploding:         '*',
	BallPainterHorizontal: '-',
	BallPainterVertical:   '|',
	BallPainterDiagonal:   'x',
}

// ColorCode returns the letter used for a color, or '?' if it has none.
func ColorCode(c Color) rune {
	if r, ok := colorCodes[c]; ok {
		return r
	}
	return '?'
}

func colorFromCode(r rune) (Color, bool) {
	for c, code := range colorCodes {
		if code == r {
			return c, true
		}
	}
	return NoColor, false
}

// BallToken returns the text token of a ball.
//
// Format:
//   - '.' empty, '#' blocking
//   - a color letter for a normal ball (R, B, G, Y, P, O, C, K)
//   - the letter followed by '*' exploding, '-' horizontal painter,
//     '|' vertical painter, 'x' diagonal painter
func BallToken(b *Ball) string {
	if b == nil {
		return "."
	}
	if b.Type == BallBlocking {
		return "#"
	}
	token := string(ColorCode(b.Color))
	if s, ok := typeSuffix[b.Type]; ok {
		token += string(s)
	}
	return token
}

// ParseBallToken parses a token produced by BallToken. Empty cells yield nil.
func ParseBallToken(token string) (*Ball, error) {
	switch token {
	case ".":
		return nil, nil
	case "#":
		return Blocking(), nil
	}

	runes := []rune(token)
	if len(runes) == 0 || len(runes) > 2 {
		return nil, fmt.Errorf("bad ball token %q", token)
	}
	color, ok := colorFromCode(runes[0])
	if !ok {
		return nil, fmt.Errorf("bad color in token %q", token)
	}
	if len(runes) == 1 {
		return Normal(color), nil
	}
	for t, s := range typeSuffix {
		if s == runes[1] {
			return NewBall(t, color), nil
		}
	}
	return nil, fmt.Errorf("bad type suffix in token %q", token)
}

// ParseGrid builds a grid from whitespace separated rows of tokens.
// All rows must have the same number of tokens.
func ParseGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse grid: no rows")
	}

	var cells [][]string
	for _, row := range rows {
		cells = append(cells, strings.Fields(row))
	}
	w := len(cells[0])
	if w == 0 {
		return nil, fmt.Errorf("parse grid: empty first row")
	}

	g := NewGrid(w, len(cells))
	for y, row := range cells {
		if len(row) != w {
			return nil, fmt.Errorf("parse grid: row %d has %d cells, want %d", y, len(row), w)
		}
		for x, token := range row {
			b, err := ParseBallToken(token)
			if err != nil {
				return nil, fmt.Errorf("parse grid: cell (%d,%d): %w", x, y, err)
			}
			g.Set(C(x, y), b)
		}
	}
	return g, nil
}

// MustParseGrid is like ParseGrid but panics on error. Intended for tests.
func MustParseGrid(rows ...string) *Grid {
	g, err := ParseGrid(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// RenderASCII returns the grid as rows of space separated tokens,
// one line per row, in the format accepted by ParseGrid.
func RenderASCII(g *Grid) string {
	var sb strings.Builder
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(BallToken(g.Get(C(x, y))))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
