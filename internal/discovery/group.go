package discovery

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/card-fusion/internal/fusion"
)

var (
	// ErrDirectoryNotFound is returned when the input directory does not exist.
	ErrDirectoryNotFound = errors.New("directory does not exist")

	// ErrMissingRequiredImages is matched by MissingImagesError.
	ErrMissingRequiredImages = errors.New("missing required images")
)

// CardGroup is the resolved set of files for one physical card.
type CardGroup struct {
	// Name identifies the card and names its output file.
	Name string

	// Files maps each resolved direction to its file path.
	Files map[fusion.Direction]string
}

// Missing returns the required directions that have no file, in the order
// given by required.
func (g CardGroup) Missing(required []fusion.Direction) []fusion.Direction {
	var missing []fusion.Direction
	for _, d := range required {
		if _, ok := g.Files[d]; !ok {
			missing = append(missing, d)
		}
	}
	return missing
}

// Complete reports whether every required direction has a file.
func (g CardGroup) Complete(required []fusion.Direction) bool {
	return len(g.Missing(required)) == 0
}

// MissingImagesError is returned in single-directory mode when not every
// direction could be resolved.
type MissingImagesError struct {
	Dir     string
	Missing []fusion.Direction
}

func (e *MissingImagesError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingRequiredImages, formatList(e.Missing, fusion.Direction.String))
}

// Is lets errors.Is match ErrMissingRequiredImages.
func (e *MissingImagesError) Is(target error) bool {
	return target == ErrMissingRequiredImages
}

// IncompleteGroupError describes a batch group that lacks one or more
// directions. It is reported and skipped, never fatal.
type IncompleteGroupError struct {
	Name    string
	Missing []fusion.Direction
}

func (e *IncompleteGroupError) Error() string {
	return fmt.Sprintf("%s: missing views %s", e.Name, formatList(e.Missing, fusion.Direction.Token))
}

// formatList renders directions as a bracketed, space-separated list.
func formatList(dirs []fusion.Direction, name func(fusion.Direction) string) string {
	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = name(d)
	}
	return "[" + strings.Join(names, " ") + "]"
}
