package fusion

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrMissingDirection is returned when a DirectionalSet lacks a grid.
	ErrMissingDirection = errors.New("missing directional image")

	// ErrDimensionMismatch is returned when the four grids differ in size.
	ErrDimensionMismatch = errors.New("directional images differ in size")
)

// DimensionMismatchError reports the first grid whose size differs from Up.
type DimensionMismatchError struct {
	Direction Direction
	Want      image.Point
	Got       image.Point
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s image is %dx%d, expected %dx%d to match Up",
		e.Direction, e.Got.X, e.Got.Y, e.Want.X, e.Want.Y)
}

// Is lets errors.Is match ErrDimensionMismatch.
func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// DirectionalSet holds the four grayscale photographs of one card.
//
// A set is built per card, consumed once by an Engine, then discarded.
type DirectionalSet struct {
	Up    *image.Gray
	Down  *image.Gray
	Left  *image.Gray
	Right *image.Gray
}

// Get returns the grid for d, or nil if it is unset.
func (s *DirectionalSet) Get(d Direction) *image.Gray {
	switch d {
	case Up:
		return s.Up
	case Down:
		return s.Down
	case Left:
		return s.Left
	case Right:
		return s.Right
	}
	return nil
}

// Set stores g as the grid for d.
func (s *DirectionalSet) Set(d Direction, g *image.Gray) {
	switch d {
	case Up:
		s.Up = g
	case Down:
		s.Down = g
	case Left:
		s.Left = g
	case Right:
		s.Right = g
	}
}

// Size returns the width and height of the Up grid.
func (s *DirectionalSet) Size() image.Point {
	if s.Up == nil {
		return image.Point{}
	}
	return s.Up.Bounds().Size()
}

// Validate checks that all four grids are present and share one size.
func (s *DirectionalSet) Validate() error {
	for _, d := range Directions() {
		if s.Get(d) == nil {
			return fmt.Errorf("%w: %s", ErrMissingDirection, d)
		}
	}
	want := s.Size()
	for _, d := range Directions()[1:] {
		if got := s.Get(d).Bounds().Size(); got != want {
			return &DimensionMismatchError{Direction: d, Want: want, Got: got}
		}
	}
	return nil
}
