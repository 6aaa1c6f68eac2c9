package fusion

import (
	"errors"
	"fmt"
)

// ErrUnknownMode is returned for a render mode other than overlay or normalMap.
var ErrUnknownMode = errors.New("unknown mode")

// Mode selects how directional intensities are packed before blending.
type Mode string

const (
	// ModeOverlay packs raw intensities.
	ModeOverlay Mode = "overlay"

	// ModeNormalMap rescales Up/Left into 0-127 and Down/Right into 128-255.
	ModeNormalMap Mode = "normalMap"
)

// ParseMode accepts exactly "overlay" or "normalMap".
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

// Validate reports ErrUnknownMode for unsupported values.
func (m Mode) Validate() error {
	switch m {
	case ModeOverlay, ModeNormalMap:
		return nil
	}
	return fmt.Errorf("%w %q (want %q or %q)", ErrUnknownMode, string(m), ModeOverlay, ModeNormalMap)
}

// levelRange returns the output range a direction is rescaled into.
// ok is false when the mode packs raw intensities.
func (m Mode) levelRange(d Direction) (outMin, outMax uint8, ok bool) {
	if m != ModeNormalMap {
		return 0, 0, false
	}
	switch d {
	case Up, Left:
		return 0, 127, true
	default:
		return 128, 255, true
	}
}
