package pipeline

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/card-fusion/internal/fusion"
	"github.com/stretchr/testify/require"
)

// writeGrayPNG writes a uniform w x h grayscale PNG at dir/name. The loader
// sniffs content, so PNG bytes are used for .HEIC fixtures too.
func writeGrayPNG(t *testing.T, dir, name string, w, h int, v uint8) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// writeBatchCard writes the four HEIC-named views of one card with the given
// Up, Down, Left and Right intensities.
func writeBatchCard(t *testing.T, dir, name string, up, down, left, right uint8) {
	t.Helper()
	values := map[fusion.Direction]uint8{fusion.Up: up, fusion.Down: down, fusion.Left: left, fusion.Right: right}
	for d, v := range values {
		writeGrayPNG(t, dir, name+"_"+d.Token()+".HEIC", 6, 4, v)
	}
}

// readRGBA decodes a PNG and returns the pixel at (x, y).
func readRGBA(t *testing.T, path string, x, y int) color.RGBA {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

// newTestProcessor returns a Processor printing to out.
func newTestProcessor(mode fusion.Mode, out *bytes.Buffer) *Processor {
	p := New(mode)
	p.Out = out
	return p
}
