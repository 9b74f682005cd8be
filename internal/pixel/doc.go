// Package pixel provides the in-memory raster used by every transform.
//
// A Buffer is a width x height grid of 8-bit samples in one of two modes:
//   - Grayscale: one channel per pixel
//   - RGB: three channels (red, green, blue) per pixel
//
// # Coordinate System
//
// Pixels are addressed by (x, y) with (0,0) at the top-left corner:
//   - Valid X range: 0 to width-1
//   - Valid Y range: 0 to height-1
//
// Access outside that range fails with ErrOutOfBounds rather than panicking.
//
// # Ownership
//
// Transforms never modify their input; they build a new Buffer with Set and
// hand it off. Once a Buffer has been returned to a caller it is treated as
// immutable, so a Buffer may be read by any number of goroutines at once.
package pixel
