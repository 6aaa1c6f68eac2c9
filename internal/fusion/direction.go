package fusion

import (
	"fmt"
	"strings"
)

// Direction identifies the side a card was lit from.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var directionNames = [...]string{"Up", "Down", "Left", "Right"}

// Directions returns the four lighting directions in canonical order
// (Up, Down, Left, Right). Each call returns a fresh slice.
func Directions() []Direction {
	return []Direction{Up, Down, Left, Right}
}

// String returns the title-case keyword, e.g. "Up".
func (d Direction) String() string {
	if d < Up || d > Right {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Token returns the lower-case token used in batch filenames, e.g. "up".
func (d Direction) Token() string {
	return strings.ToLower(d.String())
}

// ParseDirection matches a keyword or token case-insensitively.
func ParseDirection(s string) (Direction, bool) {
	for i, name := range directionNames {
		if strings.EqualFold(s, name) {
			return Direction(i), true
		}
	}
	return 0, false
}
