// Package fusion combines four directionally lit photographs of a card into
// one RGB composite that makes surface relief visible.
//
// Each photograph is taken with the light coming from one side: Up, Down,
// Left or Right. The engine packs them into two intermediate layers,
//
//	top:    green = Up,   red = Left
//	bottom: green = Down, red = Right
//
// and blends the layers with equal weight. Every final red or green sample
// is therefore the half-weighted sum of exactly one "top" direction and one
// "bottom" direction, so a downstream detector sees four independent
// lighting signals compressed into two color channels. Blue carries a
// constant fill value.
//
// # Modes
//
//   - ModeOverlay: raw intensities are packed unchanged.
//   - ModeNormalMap: each photograph is first min-max rescaled into a
//     restricted range (Up and Left into 0-127, Down and Right into 128-255),
//     approximating a photometric-stereo normal map. Blended red and green
//     samples then fall in 64-191.
//
// # Engines
//
// NativeEngine is a pure Go implementation. OpenCVEngine runs the same
// algorithm through OpenCV and is only functional when the module is built
// with the gocv build tag.
package fusion
