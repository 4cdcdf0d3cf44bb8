package core

import (
	"errors"
	"fmt"
)

var (
	// ErrPlacementBlocked means a piece overlaps an occupied cell or leaves the grid.
	// Callers treat it as game over; it is never retried.
	ErrPlacementBlocked = errors.New("core: placement blocked")

	// ErrInvalidShape means a shape matrix is malformed or does not match its balls.
	ErrInvalidShape = errors.New("core: invalid shape configuration")
)

// PlacementError reports which cell blocked a placement.
type PlacementError struct {
	At      Coord
	Outside bool // true if the cell is out of bounds, false if occupied
}

func (e *PlacementError) Error() string {
	if e.Outside {
		return fmt.Sprintf("core: placement blocked: %v is outside the grid", e.At)
	}
	return fmt.Sprintf("core: placement blocked: %v is occupied", e.At)
}

// Unwrap lets errors.Is match ErrPlacementBlocked.
func (e *PlacementError) Unwrap() error {
	return ErrPlacementBlocked
}
