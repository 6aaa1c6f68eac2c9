package imaging

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "github.com/gen2brain/heic" // Register HEIC format decoder
)

// Loader decodes image files into single-channel grayscale grids.
//
// The zero value is usable but leaves EXIF orientation untouched; use
// NewLoader for the behaviour the pipeline expects.
type Loader struct {
	// AutoOrient rotates JPEG photographs according to their EXIF orientation tag.
	AutoOrient bool
}

// NewLoader creates a loader with EXIF auto-orientation enabled.
func NewLoader() *Loader {
	return &Loader{AutoOrient: true}
}

// LoadGray decodes the file at path and converts it to 8-bit grayscale.
//
// Parameters:
//   - path: Absolute or relative file path. Any registered format is accepted
//     (PNG, JPEG, GIF, HEIC).
//
// Returns:
//   - *image.Gray: The grayscale grid with origin (0,0) and Stride == width.
//   - error: Non-nil if the file cannot be opened or decoded.
//
// # Grayscale Conversion
//
// Color sources are converted with ITU-R BT.601 luma weights
// (0.299*R + 0.587*G + 0.114*B), the same weights OpenCV uses when reading
// an image in grayscale mode.
func (l *Loader) LoadGray(path string) (*image.Gray, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(l.AutoOrient))
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", filepath.Base(path), err)
	}
	return ToGray(img), nil
}

// ToGray converts any image to an *image.Gray anchored at the origin.
//
// If img is already a compact *image.Gray at the origin it is returned as is.
// JPEG and HEIC decode to *image.YCbCr; their luma plane is copied directly,
// matching what OpenCV returns for a grayscale read.
func ToGray(img image.Image) *image.Gray {
	b := img.Bounds()
	switch src := img.(type) {
	case *image.Gray:
		if b.Min == (image.Point{}) && src.Stride == b.Dx() {
			return src
		}
	case *image.YCbCr:
		gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := src.YOffset(b.Min.X, y)
			copy(gray.Pix[(y-b.Min.Y)*gray.Stride:], src.Y[i:i+b.Dx()])
		}
		return gray
	}
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}

// FormatFromPath names the image format implied by a file extension.
//
// Detection is based on the extension only, case-insensitively:
//   - ".png" -> "png"
//   - ".jpg", ".jpeg" -> "jpeg"
//   - ".gif" -> "gif"
//   - ".heic" -> "heic"
//   - Other extensions -> "unknown"
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".heic":
		return "heic"
	}
	return "unknown"
}
