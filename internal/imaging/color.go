package imaging

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// RGBColor represents an RGB color with 8-bit components.
//
// Each component ranges from 0 to 255, where:
//   - 0 represents no intensity (black for all components)
//   - 255 represents full intensity (white for all components)
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains one pixel in several representations.
//
// Grayscale pixels are reported with R == G == B.
type ColorResult struct {
	Hex       string   `json:"hex"`       // Hex format "#RRGGBB"
	RGB       RGBColor `json:"rgb"`       // RGB components
	HSL       HSLColor `json:"hsl"`       // HSL representation
	Luminance uint8    `json:"luminance"` // Value ToGrayscale would produce
}

// SampleColor reads the pixel at (x, y).
//
// Parameters:
//   - buf: The buffer to sample from.
//   - x: X coordinate (0-based, 0 = leftmost pixel).
//   - y: Y coordinate (0-based, 0 = topmost pixel).
//
// Returns:
//   - *ColorResult: The color at (x, y) in multiple formats.
//   - error: Wraps pixel.ErrOutOfBounds if the coordinates are outside the buffer.
func SampleColor(buf *pixel.Buffer, x, y int) (*ColorResult, error) {
	s, err := buf.Get(x, y)
	if err != nil {
		return nil, err
	}

	r, g, b := s[0], s[1], s[2]
	if buf.Mode() == pixel.Grayscale {
		g, b = r, r
	}

	return &ColorResult{
		Hex:       fmt.Sprintf("#%02X%02X%02X", r, g, b),
		RGB:       RGBColor{R: r, G: g, B: b},
		HSL:       rgbToHSL(r, g, b),
		Luminance: SampleLuminance(s, buf.Mode()),
	}, nil
}

// LabeledPoint represents a pixel coordinate with an optional descriptive label.
type LabeledPoint struct {
	X     int    // X coordinate (0-based)
	Y     int    // Y coordinate (0-based)
	Label string // Optional descriptive label for this point
}

// LabeledColorResult combines a color sample with its location and optional label.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Color ColorResult `json:"color"`
}

// MultiColorResult contains color samples from multiple points, in input order.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"`
}

// SampleColorsMulti samples several points in one call.
//
// On error no partial results are returned.
func SampleColorsMulti(buf *pixel.Buffer, points []LabeledPoint) (*MultiColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))

	for _, p := range points {
		color, err := SampleColor(buf, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *color,
		})
	}

	return &MultiColorResult{Samples: results}, nil
}

// rgbToHSL converts 8-bit RGB values to HSL with hue in degrees and
// saturation/lightness in percent, truncated to integers.
func rgbToHSL(r, g, b uint8) HSLColor {
	c := colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
	h, s, l := c.Hsl()

	return HSLColor{
		H: int(h),
		S: int(s * 100),
		L: int(l * 100),
	}
}
