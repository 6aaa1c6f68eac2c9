//go:build !gocv
// +build !gocv

package fusion

import "image"

// OpenCVEngine is a placeholder used when the gocv build tag is not set.
type OpenCVEngine struct{}

// NewOpenCVEngine creates the placeholder engine (no OpenCV).
func NewOpenCVEngine() *OpenCVEngine {
	return &OpenCVEngine{}
}

// Name returns "opencv".
func (e *OpenCVEngine) Name() string {
	return "opencv"
}

// Available reports false: this build has no OpenCV.
func (e *OpenCVEngine) Available() bool {
	return false
}

// Fuse always fails with ErrOpenCVUnavailable.
func (e *OpenCVEngine) Fuse(set *DirectionalSet, opts Options) (*image.RGBA, error) {
	_ = set
	_ = opts
	return nil, ErrOpenCVUnavailable
}
