package pixel

import (
	"image"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"
)

// FromImage copies a decoded image into a new Buffer.
//
// *image.Gray and *image.Gray16 sources become Grayscale buffers (16-bit
// samples are scaled down by right-shifting 8 bits). Every other image type
// becomes an RGB buffer: colors are read non-premultiplied and alpha is
// dropped.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	switch src := img.(type) {
	case *image.Gray:
		out := &Buffer{width: width, height: height, mode: Grayscale, pix: make([]uint8, width*height)}
		parallel.Line(height, func(start, end int) {
			for y := start; y < end; y++ {
				row := src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
				copy(out.pix[y*width:(y+1)*width], row[:width])
			}
		})
		return out
	case *image.Gray16:
		out := &Buffer{width: width, height: height, mode: Grayscale, pix: make([]uint8, width*height)}
		parallel.Line(height, func(start, end int) {
			for y := start; y < end; y++ {
				for x := 0; x < width; x++ {
					out.pix[y*width+x] = uint8(src.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y >> 8)
				}
			}
		})
		return out
	}

	// Clone normalizes any color model to non-premultiplied 8-bit RGBA,
	// with bounds rebased to (0,0).
	nrgba := imaging.Clone(img)
	out := &Buffer{width: width, height: height, mode: RGB, pix: make([]uint8, width*height*3)}
	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < width; x++ {
				i := nrgba.PixOffset(x, y)
				j := (y*width + x) * 3
				out.pix[j], out.pix[j+1], out.pix[j+2] = nrgba.Pix[i], nrgba.Pix[i+1], nrgba.Pix[i+2]
			}
		}
	})
	return out
}

// Image returns the buffer as a standard library image: *image.Gray for
// Grayscale buffers, an opaque *image.NRGBA for RGB buffers.
func (b *Buffer) Image() image.Image {
	rect := image.Rect(0, 0, b.width, b.height)
	if b.mode == Grayscale {
		img := image.NewGray(rect)
		for y := 0; y < b.height; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+b.width], b.pix[y*b.width:(y+1)*b.width])
		}
		return img
	}

	img := image.NewNRGBA(rect)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			i := img.PixOffset(x, y)
			j := (y*b.width + x) * 3
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = b.pix[j], b.pix[j+1], b.pix[j+2], 0xFF
		}
	}
	return img
}
