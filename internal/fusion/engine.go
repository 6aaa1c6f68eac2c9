package fusion

import (
	"errors"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/card-fusion/internal/imaging"
)

// ErrOpenCVUnavailable is returned by OpenCVEngine when the binary was built
// without the gocv build tag.
var ErrOpenCVUnavailable = errors.New("opencv engine requires building with -tags gocv")

// Options controls a single fusion.
type Options struct {
	// Mode selects overlay or normalMap packing. Required.
	Mode Mode

	// BlueValue fills the blue channel of both layers, and therefore of the
	// composite. Defaults to 0.
	BlueValue uint8
}

// Engine fuses a DirectionalSet into an RGB composite.
type Engine interface {
	// Name identifies the engine in logs and reports.
	Name() string

	// Fuse validates set and returns a composite of the same size with
	// alpha 255 everywhere.
	Fuse(set *DirectionalSet, opts Options) (*image.RGBA, error)
}

// NewEngine returns the engine registered under name ("native" or "opencv").
// Asking for "opencv" in a build without the gocv tag fails with
// ErrOpenCVUnavailable.
func NewEngine(name string) (Engine, error) {
	switch name {
	case "", "native":
		return NewNativeEngine(), nil
	case "opencv":
		e := NewOpenCVEngine()
		if !e.Available() {
			return nil, ErrOpenCVUnavailable
		}
		return e, nil
	}
	return nil, fmt.Errorf("unknown engine %q", name)
}

// NativeEngine fuses directional sets in pure Go.
//
// Rows are processed in parallel bands; every output sample depends only on
// the four input samples at the same position, so the result does not
// depend on scheduling.
type NativeEngine struct{}

// NewNativeEngine creates a pure Go engine.
func NewNativeEngine() *NativeEngine {
	return &NativeEngine{}
}

// Name returns "native".
func (e *NativeEngine) Name() string {
	return "native"
}

// Fuse combines the four grids of set into one composite.
//
// # Algorithm
//
//  1. Each direction is mapped through a level table: the identity in
//     overlay mode, a per-image min-max rescale in normalMap mode.
//  2. The top layer takes green from Up and red from Left, the bottom layer
//     green from Down and red from Right. Both layers carry BlueValue.
//  3. The layers are blended as round(0.5*top + 0.5*bottom) per channel,
//     rounding ties to even.
//
// # Errors
//
//   - ErrUnknownMode if opts.Mode is not supported
//   - ErrMissingDirection if a grid is nil
//   - *DimensionMismatchError if the grids differ in size
func (e *NativeEngine) Fuse(set *DirectionalSet, opts Options) (*image.RGBA, error) {
	if err := opts.Mode.Validate(); err != nil {
		return nil, err
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}

	var tables [4]imaging.LevelTable
	for _, d := range Directions() {
		tables[d] = levelTable(set.Get(d), opts.Mode, d)
	}

	size := set.Size()
	out := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	blue := imaging.BlendHalf(opts.BlueValue, opts.BlueValue)

	parallel.Line(size.Y, func(start, end int) {
		for y := start; y < end; y++ {
			up, down := row(set.Up, y), row(set.Down, y)
			left, right := row(set.Left, y), row(set.Right, y)
			px := out.Pix[out.PixOffset(0, y):out.PixOffset(0, y)+4*size.X]

			for x := 0; x < size.X; x++ {
				i := 4 * x
				px[i] = imaging.BlendHalf(tables[Left][left[x]], tables[Right][right[x]])
				px[i+1] = imaging.BlendHalf(tables[Up][up[x]], tables[Down][down[x]])
				px[i+2] = blue
				px[i+3] = 255
			}
		}
	})

	return out, nil
}

// levelTable builds the sample mapping applied to one direction before packing.
func levelTable(g *image.Gray, mode Mode, d Direction) imaging.LevelTable {
	outMin, outMax, ok := mode.levelRange(d)
	if !ok {
		return imaging.Identity()
	}
	lo, hi := imaging.MinMax(g)
	return imaging.MinMaxTable(lo, hi, outMin, outMax)
}

// row returns the samples of row y, relative to the grid's own origin.
func row(g *image.Gray, y int) []uint8 {
	b := g.Bounds()
	start := g.PixOffset(b.Min.X, b.Min.Y+y)
	return g.Pix[start : start+b.Dx()]
}
