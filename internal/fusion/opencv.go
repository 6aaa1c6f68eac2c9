//go:build gocv
// +build gocv

package fusion

import (
	"errors"
	"image"
	"image/draw"

	"gocv.io/x/gocv"

	"github.com/ironsheep/card-fusion/internal/imaging"
)

// OpenCVEngine runs the fusion algorithm through OpenCV.
//
// Layers are stored in OpenCV's BGR channel order, so Merge receives
// (blue, green, red) = (fill, Up|Down, Left|Right).
type OpenCVEngine struct{}

// NewOpenCVEngine creates an OpenCV-backed engine.
func NewOpenCVEngine() *OpenCVEngine {
	return &OpenCVEngine{}
}

// Name returns "opencv".
func (e *OpenCVEngine) Name() string {
	return "opencv"
}

// Available reports true.
func (e *OpenCVEngine) Available() bool {
	return true
}

// Fuse combines the four grids of set with Normalize, Merge and AddWeighted.
func (e *OpenCVEngine) Fuse(set *DirectionalSet, opts Options) (*image.RGBA, error) {
	if err := opts.Mode.Validate(); err != nil {
		return nil, err
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	size := set.Size()

	var mats [4]gocv.Mat
	for _, d := range Directions() {
		m, err := grayToMat(set.Get(d))
		if err != nil {
			for _, prev := range Directions()[:d] {
				mats[prev].Close()
			}
			return nil, err
		}
		mats[d] = m
	}
	defer func() {
		for i := range mats {
			mats[i].Close()
		}
	}()

	for _, d := range Directions() {
		outMin, outMax, ok := opts.Mode.levelRange(d)
		if !ok {
			continue
		}
		normalized := gocv.NewMat()
		gocv.Normalize(mats[d], &normalized, float64(outMin), float64(outMax), gocv.NormMinMax)
		mats[d].Close()
		mats[d] = normalized
	}

	blue := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(float64(opts.BlueValue), 0, 0, 0), size.Y, size.X, gocv.MatTypeCV8UC1)
	defer blue.Close()

	top := gocv.NewMat()
	defer top.Close()
	gocv.Merge([]gocv.Mat{blue, mats[Up], mats[Left]}, &top)

	bottom := gocv.NewMat()
	defer bottom.Close()
	gocv.Merge([]gocv.Mat{blue, mats[Down], mats[Right]}, &bottom)

	blended := gocv.NewMat()
	defer blended.Close()
	gocv.AddWeighted(top, 0.5, bottom, 0.5, 0, &blended)
	if blended.Empty() {
		return nil, errors.New("opencv produced an empty composite")
	}

	img, err := blended.ToImage()
	if err != nil {
		return nil, err
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	rgba := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}

// grayToMat copies a grid into a single-channel 8-bit Mat.
func grayToMat(g *image.Gray) (gocv.Mat, error) {
	b := g.Bounds()
	compact := g
	if b.Min != (image.Point{}) || g.Stride != b.Dx() {
		compact = imaging.ToGray(g)
	}
	return gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8UC1, compact.Pix)
}
