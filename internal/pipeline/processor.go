package pipeline

import (
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/ironsheep/card-fusion/internal/discovery"
	"github.com/ironsheep/card-fusion/internal/fusion"
	"github.com/ironsheep/card-fusion/internal/imaging"
	"github.com/rs/zerolog"
)

// Loader decodes an image file into a grayscale grid.
type Loader interface {
	LoadGray(path string) (*image.Gray, error)
}

// Writer stores a composite as a PNG file.
type Writer interface {
	WritePNG(path string, img image.Image) error
}

// Processor fuses cards. Configure the exported fields before the first run;
// a Processor may then be reused for any number of runs.
type Processor struct {
	Loader  Loader
	Engine  fusion.Engine
	Writer  Writer
	Options fusion.Options

	// Resize, when non-zero, scales each composite before it is written.
	Resize image.Point

	// Workers bounds the number of cards fused at once in batch mode.
	Workers int

	Log zerolog.Logger
	Out io.Writer

	mu sync.Mutex // serializes writes to Out
}

// New returns a Processor using the native engine, the default loader and
// PNG writer, one worker and no console output.
func New(mode fusion.Mode) *Processor {
	return &Processor{
		Loader:  imaging.NewLoader(),
		Engine:  fusion.NewNativeEngine(),
		Writer:  imaging.NewPNGWriter(),
		Options: fusion.Options{Mode: mode},
		Workers: 1,
		Log:     zerolog.Nop(),
		Out:     io.Discard,
	}
}

// CardError wraps a failure to load, fuse or write one card.
type CardError struct {
	Card string
	Err  error
}

func (e *CardError) Error() string {
	return fmt.Sprintf("%s: %v", e.Card, e.Err)
}

func (e *CardError) Unwrap() error {
	return e.Err
}

// CardResult describes one fused card.
type CardResult struct {
	Name   string
	Inputs map[fusion.Direction]string
	Output string
	Size   image.Point
	Stats  *imaging.CompositeStats
}

// ProcessCard loads the four photographs of group, fuses them and writes the
// composite to outPath, replacing any existing file.
//
// Statistics are taken from the composite before any resize. Errors are
// returned as *CardError.
func (p *Processor) ProcessCard(group discovery.CardGroup, outPath string) (*CardResult, error) {
	log := p.Log.With().Str("card", group.Name).Str("mode", string(p.Options.Mode)).Logger()

	var set fusion.DirectionalSet
	for _, d := range fusion.Directions() {
		path, ok := group.Files[d]
		if !ok {
			return nil, &CardError{Card: group.Name, Err: fmt.Errorf("%w: %s", fusion.ErrMissingDirection, d)}
		}
		log.Debug().Str("direction", d.String()).Str("input", path).Msg("loading")
		g, err := p.Loader.LoadGray(path)
		if err != nil {
			return nil, &CardError{Card: group.Name, Err: err}
		}
		set.Set(d, g)
	}

	composite, err := p.Engine.Fuse(&set, p.Options)
	if err != nil {
		return nil, &CardError{Card: group.Name, Err: err}
	}
	stats := imaging.SummarizeComposite(composite)

	out := imaging.Resize(composite, p.Resize.X, p.Resize.Y)
	if err := p.Writer.WritePNG(outPath, out); err != nil {
		return nil, &CardError{Card: group.Name, Err: err}
	}

	size := out.Bounds().Size()
	log.Info().
		Str("output", outPath).
		Int("width", size.X).
		Int("height", size.Y).
		Str("engine", p.Engine.Name()).
		Msg("fused")

	inputs := make(map[fusion.Direction]string, len(group.Files))
	for d, path := range group.Files {
		inputs[d] = path
	}
	return &CardResult{
		Name:   group.Name,
		Inputs: inputs,
		Output: outPath,
		Size:   size,
		Stats:  stats,
	}, nil
}

// printf writes one console line.
func (p *Processor) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Out != nil {
		fmt.Fprintf(p.Out, format+"\n", args...)
	}
}
