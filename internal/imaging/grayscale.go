package imaging

import (
	"fmt"

	"github.com/ironsheep/pixel-tools-mcp/internal/parallel"
	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// ITU-R BT.601 luma weights.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114

	// lumaTolerance is added before truncation. The weighted sum of three
	// integers has at most three decimals, so anything closer than this to the
	// next integer is float64 rounding error (0.299*v + 0.587*v + 0.114*v
	// evaluates just below v for 65 values of v).
	lumaTolerance = 1e-9
)

// Luminance returns floor(0.299*r + 0.587*g + 0.114*b).
//
// The sum is evaluated in float64 and truncated, never rounded. For gray
// inputs (r == g == b == v) the result is exactly v.
func Luminance(r, g, b uint8) uint8 {
	l := lumaR*float64(r) + lumaG*float64(g) + lumaB*float64(b)
	return uint8(clamp(int(l+lumaTolerance), 0, 255))
}

// SampleLuminance returns the luminance of a sample in the given mode.
// Grayscale samples are already luminance values.
func SampleLuminance(s pixel.Sample, mode pixel.Mode) uint8 {
	if mode == pixel.Grayscale {
		return s[0]
	}
	return Luminance(s[0], s[1], s[2])
}

// ToGrayscale converts a buffer to a new Grayscale buffer of the same size.
//
// RGB pixels are mapped through Luminance. A Grayscale input is copied
// unchanged. Rows are processed in parallel bands; see parallel.Workers.
//
// # Errors
//
// Returns an error wrapping pixel.ErrOutOfBounds only if the buffer's pixel
// access fails, which cannot happen for a well-formed buffer. No partial
// buffer is returned on error.
func ToGrayscale(buf *pixel.Buffer, opts ...parallel.Option) (*pixel.Buffer, error) {
	if buf.Mode() == pixel.Grayscale {
		return buf.Clone(), nil
	}

	out, err := pixel.New(buf.Width(), buf.Height(), pixel.Grayscale)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate grayscale buffer: %w", err)
	}

	err = parallel.Rows(buf.Height(), func(start, end int) error {
		for y := start; y < end; y++ {
			for x := 0; x < buf.Width(); x++ {
				s, err := buf.Get(x, y)
				if err != nil {
					return err
				}
				if err := out.Set(x, y, pixel.Gray(Luminance(s[0], s[1], s[2]))); err != nil {
					return err
				}
			}
		}
		return nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to convert to grayscale: %w", err)
	}

	return out, nil
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
