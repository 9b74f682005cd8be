package pixel

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when a coordinate lies outside the buffer.
	ErrOutOfBounds = errors.New("coordinates outside buffer bounds")

	// ErrInvalidDimensions is returned for negative widths or heights.
	ErrInvalidDimensions = errors.New("invalid buffer dimensions")

	// ErrUnknownMode is returned when a buffer is created with an unsupported mode.
	ErrUnknownMode = errors.New("unknown pixel mode")
)

// Mode is the channel layout of a Buffer.
type Mode int

const (
	// Grayscale buffers hold one 8-bit sample per pixel.
	Grayscale Mode = iota + 1

	// RGB buffers hold red, green and blue 8-bit samples per pixel.
	RGB
)

// Channels returns the number of samples stored per pixel.
func (m Mode) Channels() int {
	switch m {
	case Grayscale:
		return 1
	case RGB:
		return 3
	}
	return 0
}

func (m Mode) String() string {
	switch m {
	case Grayscale:
		return "grayscale"
	case RGB:
		return "rgb"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Sample is the value of one pixel.
//
// RGB pixels use all three entries as (R, G, B). Grayscale pixels use only
// index 0; the remaining entries are ignored by Set and zero from Get.
type Sample [3]uint8

// Gray returns a grayscale sample.
func Gray(v uint8) Sample {
	return Sample{v}
}

// RGBSample returns an RGB sample.
func RGBSample(r, g, b uint8) Sample {
	return Sample{r, g, b}
}

// Buffer is a 2-D grid of 8-bit pixel samples.
type Buffer struct {
	width  int
	height int
	mode   Mode
	pix    []uint8 // row-major, mode.Channels() bytes per pixel
}

// New allocates a zero-filled buffer.
//
// A buffer with a zero width or height is legal and simply holds no pixels.
func New(width, height int, mode Mode) (*Buffer, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	n := mode.Channels()
	if n == 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnknownMode, mode)
	}
	return &Buffer{
		width:  width,
		height: height,
		mode:   mode,
		pix:    make([]uint8, width*height*n),
	}, nil
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Mode returns the channel layout.
func (b *Buffer) Mode() Mode { return b.mode }

// Len returns the number of pixels (width * height).
func (b *Buffer) Len() int { return b.width * b.height }

func (b *Buffer) offset(x, y int) (int, error) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, b.width, b.height)
	}
	return (y*b.width + x) * b.mode.Channels(), nil
}

// Get returns the sample at (x, y).
func (b *Buffer) Get(x, y int) (Sample, error) {
	i, err := b.offset(x, y)
	if err != nil {
		return Sample{}, err
	}
	if b.mode == Grayscale {
		return Sample{b.pix[i]}, nil
	}
	return Sample{b.pix[i], b.pix[i+1], b.pix[i+2]}, nil
}

// Set stores s at (x, y).
//
// Set is meant for filling a buffer that has not been handed to anyone else
// yet. Calls for disjoint pixels may run concurrently.
func (b *Buffer) Set(x, y int, s Sample) error {
	i, err := b.offset(x, y)
	if err != nil {
		return err
	}
	if b.mode == Grayscale {
		b.pix[i] = s[0]
		return nil
	}
	b.pix[i], b.pix[i+1], b.pix[i+2] = s[0], s[1], s[2]
	return nil
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.pix))
	copy(pix, b.pix)
	return &Buffer{width: b.width, height: b.height, mode: b.mode, pix: pix}
}

// Equal reports whether both buffers have the same size, mode and samples.
func (b *Buffer) Equal(other *Buffer) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.width == other.width &&
		b.height == other.height &&
		b.mode == other.mode &&
		bytes.Equal(b.pix, other.pix)
}

// AsRGB returns an RGB copy of the buffer. Grayscale samples are replicated
// into all three channels.
func (b *Buffer) AsRGB() *Buffer {
	if b.mode == RGB {
		return b.Clone()
	}
	out := &Buffer{width: b.width, height: b.height, mode: RGB, pix: make([]uint8, b.Len()*3)}
	for i, v := range b.pix {
		out.pix[i*3], out.pix[i*3+1], out.pix[i*3+2] = v, v, v
	}
	return out
}
