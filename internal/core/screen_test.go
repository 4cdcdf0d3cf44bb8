package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(40, 20)

	if s.Width() != 40 || s.Height() != 20 {
		t.Errorf("expected 40x20, got %dx%d", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("new screen should hold uncolored spaces, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(3, 4, '●', ColorRed)
	if c := s.GetCell(3, 4); c.Rune != '●' || c.Color != ColorRed {
		t.Errorf("GetCell(3, 4) = %+v, expected red ●", c)
	}

	s.Set(3, 4, 'x')
	if c := s.GetCell(3, 4); c.Color != ColorDefault {
		t.Errorf("Set should reset color, got %v", c.Color)
	}

	// Out of bounds is silent
	s.SetColored(-1, 0, 'A', ColorBlue)
	s.SetColored(0, 100, 'A', ColorBlue)
	if s.Get(-1, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(5, 5)
	s.DrawTextColored(0, 0, "XXXXX", ColorGreen)
	s.Clear()

	for x := 0; x < 5; x++ {
		if c := s.GetCell(x, 0); c != blank {
			t.Errorf("after Clear, expected blank at (%d, 0), got %+v", x, c)
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColored(2, 1, "Héllo", ColorCyan)

	for i, ch := range []rune("Héllo") {
		c := s.GetCell(2+i, 1)
		if c.Rune != ch || c.Color != ColorCyan {
			t.Errorf("expected cyan %q at (%d, 1), got %+v", ch, 2+i, c)
		}
	}

	// Clipped at the right edge
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("text should be clipped at right boundary")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi", ColorYellow)

	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Error("text not centered")
	}
	if s.GetCell(x, 2).Color != ColorYellow {
		t.Error("centered text lost its color")
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(2, 2, 3, 3), '#')

	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			if s.Get(x, y) != '#' {
				t.Errorf("DrawRect: expected '#' at (%d, %d), got %q", x, y, s.Get(x, y))
			}
		}
	}
	if s.Get(1, 1) != ' ' || s.Get(5, 5) != ' ' {
		t.Error("DrawRect should not affect outside area")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorGray)

	corners := []struct {
		x, y int
		r    rune
	}{
		{1, 1, '┌'},
		{5, 1, '┐'},
		{1, 4, '└'},
		{5, 4, '┘'},
	}
	for _, c := range corners {
		cell := s.GetCell(c.x, c.y)
		if cell.Rune != c.r || cell.Color != ColorGray {
			t.Errorf("corner (%d, %d): expected gray %q, got %+v", c.x, c.y, c.r, cell)
		}
	}
	for x := 2; x < 5; x++ {
		if s.Get(x, 1) != '─' || s.Get(x, 4) != '─' {
			t.Errorf("horizontal edge missing at x=%d", x)
		}
	}
	for y := 2; y < 4; y++ {
		if s.Get(1, y) != '│' || s.Get(5, y) != '│' {
			t.Errorf("vertical edge missing at y=%d", y)
		}
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawTextColored(0, 1, "BBBBB", ColorRed)
	s.DrawText(0, 2, "CCCCC")

	expected := "AAAAA\nBBBBB\nCCCCC"
	if got := s.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextColored(0, 0, "Hello", ColorBlue)

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("after resize, expected 8x4, got %dx%d", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("content should be preserved, row 0 = %q", s.Row(0))
	}
	if s.GetCell(0, 0).Color != ColorBlue {
		t.Error("colors should be preserved")
	}

	s.Resize(15, 8)
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("content should be preserved after enlarging, row 0 = %q", s.Row(0))
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawText(0, 2, "Test")

	row := s.Row(2)
	if !strings.HasPrefix(row, "Test") || len(row) != 10 {
		t.Errorf("Row(2) = %q", row)
	}
	if s.Row(-1) != "          " {
		t.Errorf("out of bounds row should be spaces, got %q", s.Row(-1))
	}
}
