package imaging

import (
	"image"
	"math"
)

// LevelTable maps every 8-bit input sample to its output sample.
type LevelTable [256]uint8

// MinMax returns the smallest and largest sample of a grid.
// An empty grid reports (0, 0).
func MinMax(src *image.Gray) (lo, hi uint8) {
	b := src.Bounds()
	if b.Empty() {
		return 0, 0
	}
	lo, hi = 255, 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := src.Pix[src.PixOffset(b.Min.X, y):src.PixOffset(b.Max.X, y)]
		for _, v := range row {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return lo, hi
}

// MinMaxTable builds the lookup table that linearly maps the sample range
// [lo, hi] onto [outMin, outMax].
//
// The mapping is dst = src*scale + shift with
//
//	scale = (outMax - outMin) / (hi - lo)
//	shift = outMin - lo*scale
//
// A flat range (lo == hi) uses scale 0, so every sample maps to outMin.
// outMin may exceed outMax, which inverts the ramp.
func MinMaxTable(lo, hi, outMin, outMax uint8) LevelTable {
	var scale float64
	if hi > lo {
		scale = (float64(outMax) - float64(outMin)) / float64(hi-lo)
	}
	shift := float64(outMin) - float64(lo)*scale

	var t LevelTable
	for v := range t {
		t[v] = saturate(float64(v)*scale + shift)
	}
	return t
}

// Identity returns the table that leaves every sample unchanged.
func Identity() LevelTable {
	var t LevelTable
	for v := range t {
		t[v] = uint8(v)
	}
	return t
}

// BlendHalf returns round(0.5*a + 0.5*b), rounding ties to even.
func BlendHalf(a, b uint8) uint8 {
	return saturate(0.5*float64(a) + 0.5*float64(b))
}

// saturate rounds half to even and clamps to the 8-bit range.
func saturate(v float64) uint8 {
	r := math.RoundToEven(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}
