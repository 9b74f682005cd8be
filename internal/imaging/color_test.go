package imaging

import (
	"errors"
	"testing"

	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// newSolidBuffer creates an RGB buffer filled with one color.
func newSolidBuffer(t *testing.T, width, height int, s pixel.Sample) *pixel.Buffer {
	t.Helper()

	buf, err := pixel.New(width, height, pixel.RGB)
	if err != nil {
		t.Fatalf("pixel.New failed: %v", err)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			_ = buf.Set(x, y, s)
		}
	}
	return buf
}

func TestSampleColor(t *testing.T) {
	buf := newSolidBuffer(t, 100, 100, pixel.RGBSample(255, 128, 64))

	result, err := SampleColor(buf, 50, 50)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}

	if result.Hex != "#FF8040" {
		t.Errorf("Hex: got %s, want #FF8040", result.Hex)
	}
	if result.RGB.R != 255 || result.RGB.G != 128 || result.RGB.B != 64 {
		t.Errorf("RGB: got (%d,%d,%d), want (255,128,64)", result.RGB.R, result.RGB.G, result.RGB.B)
	}
	if want := Luminance(255, 128, 64); result.Luminance != want {
		t.Errorf("Luminance: got %d, want %d", result.Luminance, want)
	}
}

func TestSampleColor_KnownColors(t *testing.T) {
	tests := []struct {
		name      string
		sample    pixel.Sample
		wantHex   string
		wantHue   int
		wantLight int
	}{
		{"pure red", pixel.RGBSample(255, 0, 0), "#FF0000", 0, 50},
		{"pure green", pixel.RGBSample(0, 255, 0), "#00FF00", 120, 50},
		{"pure blue", pixel.RGBSample(0, 0, 255), "#0000FF", 240, 50},
		{"white", pixel.RGBSample(255, 255, 255), "#FFFFFF", 0, 100},
		{"black", pixel.RGBSample(0, 0, 0), "#000000", 0, 0},
		{"gray", pixel.RGBSample(128, 128, 128), "#808080", 0, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := newSolidBuffer(t, 10, 10, tt.sample)
			result, err := SampleColor(buf, 5, 5)
			if err != nil {
				t.Fatalf("SampleColor failed: %v", err)
			}

			if result.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", result.Hex, tt.wantHex)
			}
			if result.HSL.H != tt.wantHue {
				t.Errorf("Hue: got %d, want %d", result.HSL.H, tt.wantHue)
			}
			if result.HSL.L != tt.wantLight {
				t.Errorf("Lightness: got %d, want %d", result.HSL.L, tt.wantLight)
			}
		})
	}
}

func TestSampleColor_Grayscale(t *testing.T) {
	buf, _ := pixel.New(2, 2, pixel.Grayscale)
	_ = buf.Set(1, 1, pixel.Gray(0x40))

	result, err := SampleColor(buf, 1, 1)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if result.Hex != "#404040" {
		t.Errorf("Hex: got %s, want #404040", result.Hex)
	}
	if result.Luminance != 0x40 {
		t.Errorf("Luminance: got %d, want %d", result.Luminance, 0x40)
	}
	if result.HSL.S != 0 {
		t.Errorf("Saturation: got %d, want 0", result.HSL.S)
	}
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	buf := newSolidBuffer(t, 100, 100, pixel.RGBSample(255, 0, 0))

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 50},
		{"negative y", 50, -1},
		{"x too large", 100, 50},
		{"y too large", 50, 100},
		{"both too large", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SampleColor(buf, tt.x, tt.y)
			if !errors.Is(err, pixel.ErrOutOfBounds) {
				t.Errorf("SampleColor error = %v, want ErrOutOfBounds", err)
			}
		})
	}
}

func TestSampleColorsMulti(t *testing.T) {
	buf := newRGBBuffer(t, [][]pixel.Sample{
		{pixel.RGBSample(255, 0, 0), pixel.RGBSample(0, 255, 0)},
		{pixel.RGBSample(0, 0, 255), pixel.RGBSample(255, 255, 255)},
	})

	points := []LabeledPoint{
		{X: 0, Y: 0, Label: "red"},
		{X: 1, Y: 1, Label: "white"},
		{X: 0, Y: 1},
	}

	result, err := SampleColorsMulti(buf, points)
	if err != nil {
		t.Fatalf("SampleColorsMulti failed: %v", err)
	}
	if len(result.Samples) != 3 {
		t.Fatalf("got %d samples, want 3", len(result.Samples))
	}

	wantHex := []string{"#FF0000", "#FFFFFF", "#0000FF"}
	for i, s := range result.Samples {
		if s.Label != points[i].Label {
			t.Errorf("sample %d label: got %q, want %q", i, s.Label, points[i].Label)
		}
		if s.Color.Hex != wantHex[i] {
			t.Errorf("sample %d hex: got %s, want %s", i, s.Color.Hex, wantHex[i])
		}
	}
}

func TestSampleColorsMulti_OutOfBounds(t *testing.T) {
	buf := newSolidBuffer(t, 4, 4, pixel.RGBSample(1, 2, 3))

	result, err := SampleColorsMulti(buf, []LabeledPoint{{X: 1, Y: 1}, {X: 4, Y: 0}})
	if !errors.Is(err, pixel.ErrOutOfBounds) {
		t.Fatalf("error = %v, want ErrOutOfBounds", err)
	}
	if result != nil {
		t.Error("no partial results should be returned on error")
	}
}
