package imaging

import (
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/pixel-tools-mcp/internal/parallel"
	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// ErrInvalidFactor is returned by Adjust for factors that are not finite and
// strictly positive.
var ErrInvalidFactor = errors.New("brightness factor must be a finite number > 0")

// Adjust scales every channel of every pixel by factor and returns the result
// as a new buffer.
//
// Each channel becomes clamp(trunc(old * factor), 0, 255). Both ends are
// clamped whatever the factor, so brightening (factor > 1) and darkening
// (factor < 1) are the same operation. A factor of exactly 1.0 returns an
// identical copy.
//
// Grayscale buffers are adjusted on their single channel.
//
// # Errors
//
//   - ErrInvalidFactor when factor <= 0, NaN or infinite.
//   - pixel.ErrOutOfBounds (wrapped) if buffer access fails.
//
// Example:
//
//	brighter, err := imaging.Adjust(buf, 1.5)
//	darker, err := imaging.Adjust(buf, 0.5)
func Adjust(buf *pixel.Buffer, factor float64, opts ...parallel.Option) (*pixel.Buffer, error) {
	if err := CheckFactor(factor); err != nil {
		return nil, err
	}

	out, err := pixel.New(buf.Width(), buf.Height(), buf.Mode())
	if err != nil {
		return nil, fmt.Errorf("failed to allocate adjusted buffer: %w", err)
	}

	channels := buf.Mode().Channels()
	err = parallel.Rows(buf.Height(), func(start, end int) error {
		for y := start; y < end; y++ {
			for x := 0; x < buf.Width(); x++ {
				s, err := buf.Get(x, y)
				if err != nil {
					return err
				}
				for c := 0; c < channels; c++ {
					s[c] = scaleChannel(s[c], factor)
				}
				if err := out.Set(x, y, s); err != nil {
					return err
				}
			}
		}
		return nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust brightness: %w", err)
	}

	return out, nil
}

// CheckFactor returns an error wrapping ErrInvalidFactor unless factor is
// finite and strictly positive.
func CheckFactor(factor float64) error {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidFactor, factor)
	}
	return nil
}

// scaleChannel multiplies a sample by factor with truncation and saturation.
// The product is clamped in float64 before conversion so that huge factors
// never hit an out-of-range float-to-int conversion.
func scaleChannel(v uint8, factor float64) uint8 {
	scaled := float64(v) * factor
	switch {
	case !(scaled > 0):
		return 0
	case scaled >= 255:
		return 255
	}
	return uint8(scaled)
}
