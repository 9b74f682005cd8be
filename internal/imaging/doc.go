// Package imaging provides the pixel transforms and the image file codec.
//
// The transforms operate on pixel.Buffer values and always return a new
// buffer; their input is never modified:
//   - ToGrayscale: RGB to luminance using ITU-R BT.601 weights
//     (0.299*R + 0.587*G + 0.114*B), truncated toward zero
//   - Adjust: per-channel brightness scaling with saturation to [0,255]
//   - SampleColor: one pixel in hex, RGB, HSL and luminance form
//
// Transforms are pure per-pixel maps. They split the buffer into row bands
// that run on parallel workers (see the parallel package); the result does not
// depend on the number of workers.
//
// # Codec
//
// Codec reads files into buffers and writes buffers back to files. The
// ImageCache type wraps a decoder and is safe for concurrent use.
//
// # Error Handling
//
// Functions return wrapped sentinel errors, to be tested with errors.Is:
//   - pixel.ErrOutOfBounds for coordinates outside the buffer
//   - ErrInvalidFactor for non-positive brightness factors
//   - ErrIO and ErrDecode for file access and decoding failures
//   - ErrUnsupportedFormat for unknown output extensions
package imaging
