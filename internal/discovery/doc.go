// Package discovery locates the four directional photographs of each card.
//
// Two strategies are provided:
//
//   - FindPictureFiles resolves one card from a directory holding its four
//     photographs. Directions are recognized by a keyword anywhere in the
//     filename ("Up", "Down", "Left", "Right", any case).
//   - GroupFlatHeicFiles resolves many cards from a flat directory of HEIC
//     files named <baseName>_<direction>.HEIC.
//
// The set of required directions is always passed in by the caller.
package discovery
