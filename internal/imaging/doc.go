// Package imaging provides the pixel-level building blocks of the card fusion
// pipeline.
//
// This package decodes photographs into 8-bit grayscale grids, rescales their
// intensity ranges, blends 8-bit samples, summarizes composites, and writes
// the final RGB composite as a PNG file. All operations work with standard Go
// image types. Grids produced here always have their origin at (0,0) and a
// stride equal to their width, so callers may index Pix directly.
//
// # Supported Formats
//
// Decoding goes through image.Decode, so any registered format is accepted:
//   - PNG, JPEG, GIF: standard library decoders
//   - HEIC: github.com/gen2brain/heic
//
// JPEG files carrying an EXIF orientation tag are rotated upright on load.
//
// # Rounding
//
// Every float-to-sample conversion rounds half to even and saturates to
// [0, 255]. Two runs over identical inputs therefore produce byte-identical
// output on every platform.
//
// # Thread Safety
//
// Functions in this package are stateless. Loader and PNGWriter hold only
// immutable options and are safe for concurrent use.
package imaging
