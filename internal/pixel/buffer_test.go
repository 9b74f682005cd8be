package pixel

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		mode          Mode
		wantErr       error
	}{
		{"rgb", 4, 3, RGB, nil},
		{"grayscale", 4, 3, Grayscale, nil},
		{"zero width", 0, 3, RGB, nil},
		{"zero both", 0, 0, Grayscale, nil},
		{"negative width", -1, 3, RGB, ErrInvalidDimensions},
		{"negative height", 3, -1, RGB, ErrInvalidDimensions},
		{"unknown mode", 2, 2, Mode(0), ErrUnknownMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := New(tt.width, tt.height, tt.mode)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if buf.Width() != tt.width || buf.Height() != tt.height {
				t.Errorf("size: got %dx%d, want %dx%d", buf.Width(), buf.Height(), tt.width, tt.height)
			}
			if buf.Mode() != tt.mode {
				t.Errorf("Mode: got %v, want %v", buf.Mode(), tt.mode)
			}
			if buf.Len() != tt.width*tt.height {
				t.Errorf("Len: got %d, want %d", buf.Len(), tt.width*tt.height)
			}
		})
	}
}

func TestGetSet_RGB(t *testing.T) {
	buf, err := New(3, 2, RGB)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	want := RGBSample(10, 20, 30)
	if err := buf.Set(2, 1, want); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := buf.Get(2, 1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != want {
		t.Errorf("Get(2,1): got %v, want %v", got, want)
	}

	// Neighbours stay untouched
	other, _ := buf.Get(1, 1)
	if other != (Sample{}) {
		t.Errorf("Get(1,1): got %v, want zero", other)
	}
}

func TestGetSet_Grayscale(t *testing.T) {
	buf, err := New(2, 2, Grayscale)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := buf.Set(1, 0, Sample{200, 99, 98}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := buf.Get(1, 0)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != Gray(200) {
		t.Errorf("Get(1,0): got %v, want %v", got, Gray(200))
	}
}

func TestGetSet_OutOfBounds(t *testing.T) {
	buf, _ := New(4, 3, RGB)

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 0},
		{"negative y", 0, -1},
		{"x equals width", 4, 0},
		{"y equals height", 0, 3},
		{"both too large", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := buf.Get(tt.x, tt.y); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("Get error = %v, want ErrOutOfBounds", err)
			}
			if err := buf.Set(tt.x, tt.y, Sample{}); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("Set error = %v, want ErrOutOfBounds", err)
			}
		})
	}
}

func TestGet_EmptyBuffer(t *testing.T) {
	buf, _ := New(0, 0, RGB)
	if _, err := buf.Get(0, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Get on empty buffer: got %v, want ErrOutOfBounds", err)
	}
}

func TestCloneAndEqual(t *testing.T) {
	buf, _ := New(2, 2, RGB)
	_ = buf.Set(0, 0, RGBSample(1, 2, 3))

	clone := buf.Clone()
	if !clone.Equal(buf) {
		t.Fatal("clone should equal original")
	}

	_ = clone.Set(0, 0, RGBSample(9, 9, 9))
	if clone.Equal(buf) {
		t.Error("modifying the clone must not affect the original")
	}
	orig, _ := buf.Get(0, 0)
	if orig != RGBSample(1, 2, 3) {
		t.Errorf("original changed: got %v", orig)
	}

	gray, _ := New(2, 2, Grayscale)
	if gray.Equal(buf) {
		t.Error("buffers with different modes must not be equal")
	}
	if buf.Equal(nil) {
		t.Error("buffer must not equal nil")
	}
}

func TestAsRGB(t *testing.T) {
	gray, _ := New(2, 1, Grayscale)
	_ = gray.Set(0, 0, Gray(7))
	_ = gray.Set(1, 0, Gray(250))

	rgb := gray.AsRGB()
	if rgb.Mode() != RGB {
		t.Fatalf("Mode: got %v, want rgb", rgb.Mode())
	}
	for x, v := range []uint8{7, 250} {
		got, _ := rgb.Get(x, 0)
		if got != RGBSample(v, v, v) {
			t.Errorf("pixel %d: got %v, want (%d,%d,%d)", x, got, v, v, v)
		}
	}
}

func TestFromImage_RGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(2, 1, color.RGBA{10, 20, 30, 255})

	buf := FromImage(img)
	if buf.Mode() != RGB {
		t.Fatalf("Mode: got %v, want rgb", buf.Mode())
	}
	if buf.Width() != 3 || buf.Height() != 2 {
		t.Fatalf("size: got %dx%d, want 3x2", buf.Width(), buf.Height())
	}

	got, _ := buf.Get(0, 0)
	if got != RGBSample(255, 0, 0) {
		t.Errorf("(0,0): got %v, want (255,0,0)", got)
	}
	got, _ = buf.Get(2, 1)
	if got != RGBSample(10, 20, 30) {
		t.Errorf("(2,1): got %v, want (10,20,30)", got)
	}
}

func TestFromImage_OffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 7, 6))
	img.Set(6, 5, color.RGBA{1, 2, 3, 255})

	buf := FromImage(img)
	got, err := buf.Get(1, 0)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != RGBSample(1, 2, 3) {
		t.Errorf("got %v, want (1,2,3)", got)
	}
}

func TestFromImage_Gray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(1, 1, color.Gray{Y: 42})

	buf := FromImage(img)
	if buf.Mode() != Grayscale {
		t.Fatalf("Mode: got %v, want grayscale", buf.Mode())
	}
	got, _ := buf.Get(1, 1)
	if got != Gray(42) {
		t.Errorf("got %v, want 42", got)
	}

	img16 := image.NewGray16(image.Rect(0, 0, 1, 1))
	img16.SetGray16(0, 0, color.Gray16{Y: 0xABCD})
	got, _ = FromImage(img16).Get(0, 0)
	if got != Gray(0xAB) {
		t.Errorf("Gray16: got %v, want 0xAB", got)
	}
}

func TestImage_RoundTrip(t *testing.T) {
	for _, mode := range []Mode{RGB, Grayscale} {
		t.Run(mode.String(), func(t *testing.T) {
			buf, _ := New(4, 3, mode)
			for y := 0; y < 3; y++ {
				for x := 0; x < 4; x++ {
					v := uint8(x*40 + y*7)
					_ = buf.Set(x, y, RGBSample(v, v/2, 255-v))
				}
			}

			back := FromImage(buf.Image())
			if !back.Equal(buf) {
				t.Error("FromImage(buf.Image()) should reproduce the buffer")
			}
		})
	}
}

func TestModeString(t *testing.T) {
	if RGB.String() != "rgb" || Grayscale.String() != "grayscale" {
		t.Errorf("unexpected names: %s, %s", RGB, Grayscale)
	}
	if Mode(9).Channels() != 0 {
		t.Error("unknown mode should have no channels")
	}
}
