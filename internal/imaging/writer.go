package imaging

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// PNGWriter writes composites to disk as PNG files.
type PNGWriter struct {
	Compression png.CompressionLevel
}

// NewPNGWriter returns a writer using the default PNG compression level.
func NewPNGWriter() *PNGWriter {
	return &PNGWriter{Compression: png.DefaultCompression}
}

// WritePNG encodes img at path, replacing any existing file.
//
// The parent directory is created if needed. An opaque source is stored as
// 8-bit RGB. The path must carry a ".png" extension.
func (w *PNGWriter) WritePNG(path string, img image.Image) error {
	if !strings.EqualFold(filepath.Ext(path), ".png") {
		return fmt.Errorf("output path %s must have a .png extension", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := imaging.Save(img, path, imaging.PNGCompressionLevel(w.Compression)); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// Resize scales img to exactly width x height using a Lanczos filter.
//
// Passing a zero size returns img unchanged.
func Resize(img image.Image, width, height int) image.Image {
	if width <= 0 || height <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}
	return imaging.Resize(img, width, height, imaging.Lanczos)
}
