package imaging

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"
)

// ChannelStats summarizes one 8-bit channel of an image.
type ChannelStats struct {
	Min    uint8   `json:"min"`
	Max    uint8   `json:"max"`
	Mean   float64 `json:"mean"`    // Mean sample value (0-255)
	StdDev float64 `json:"std_dev"` // Sample standard deviation
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// CompositeStats contains per-channel statistics for a fused composite.
//
// In a composite the red channel carries the Left/Right lighting pair and the
// green channel the Up/Down pair, so the two channel summaries describe how
// much relief each lighting axis revealed. Blue is constant fill.
type CompositeStats struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Red    ChannelStats `json:"red"`
	Green  ChannelStats `json:"green"`
	Blue   ChannelStats `json:"blue"`

	// MeanHex is the mean color in "#rrggbb" form.
	MeanHex string `json:"mean_hex"`

	// MeanHSL is the mean color in HSL space.
	MeanHSL HSLColor `json:"mean_hsl"`
}

// SummarizeComposite computes channel statistics for an RGBA composite.
//
// Alpha is ignored. An empty image yields zero statistics and "#000000".
func SummarizeComposite(img *image.RGBA) *CompositeStats {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	result := &CompositeStats{Width: b.Dx(), Height: b.Dy(), MeanHex: "#000000"}
	if n == 0 {
		return result
	}

	channels := [3][]float64{make([]float64, 0, n), make([]float64, 0, n), make([]float64, 0, n)}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			channels[0] = append(channels[0], float64(row[i]))
			channels[1] = append(channels[1], float64(row[i+1]))
			channels[2] = append(channels[2], float64(row[i+2]))
		}
	}

	result.Red = channelStats(channels[0])
	result.Green = channelStats(channels[1])
	result.Blue = channelStats(channels[2])

	mean := colorful.Color{
		R: result.Red.Mean / 255,
		G: result.Green.Mean / 255,
		B: result.Blue.Mean / 255,
	}.Clamped()
	h, s, l := mean.Hsl()
	result.MeanHex = mean.Hex()
	result.MeanHSL = HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)}

	return result
}

func channelStats(samples []float64) ChannelStats {
	mean, std := stat.MeanStdDev(samples, nil)
	if len(samples) < 2 {
		std = 0
	}
	lo, hi := samples[0], samples[0]
	for _, v := range samples {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return ChannelStats{Min: uint8(lo), Max: uint8(hi), Mean: mean, StdDev: std}
}
