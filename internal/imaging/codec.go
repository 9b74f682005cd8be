package imaging

import (
	"errors"
	"fmt"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

var (
	// ErrIO is returned when an image file cannot be opened, created or written.
	ErrIO = errors.New("image i/o failed")

	// ErrDecode is returned when file contents are not a decodable image.
	ErrDecode = errors.New("image decode failed")

	// ErrUnsupportedFormat is returned by Encode for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// DefaultJPEGQuality is used by Encode when Codec.JPEGQuality is zero.
const DefaultJPEGQuality = 95

// Codec reads and writes image files as pixel buffers.
//
// The zero value is ready to use: decoded images are converted to RGB and
// JPEG output uses DefaultJPEGQuality.
type Codec struct {
	// KeepGrayscale keeps grayscale sources as Grayscale buffers instead of
	// expanding them to RGB.
	KeepGrayscale bool

	// JPEGQuality is the JPEG encoding quality (1-100).
	JPEGQuality int
}

// Decode reads an image file into a new buffer.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP. EXIF orientation
// is applied. Alpha is dropped.
//
// # Errors
//
//   - ErrIO if the file cannot be opened
//   - ErrDecode if the contents cannot be decoded
func (c Codec) Decode(path string) (*pixel.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open image: %w", ErrIO, err)
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image %q: %w", ErrDecode, path, err)
	}

	buf := pixel.FromImage(img)
	if buf.Mode() == pixel.Grayscale && !c.KeepGrayscale {
		buf = buf.AsRGB()
	}
	return buf, nil
}

// Encode writes buf to path. The format is chosen from the file extension
// (.png, .jpg/.jpeg, .gif, .bmp, .tif/.tiff).
//
// # Errors
//
//   - ErrUnsupportedFormat if the extension is not recognized
//   - ErrIO if the file cannot be created, encoded or closed
func (c Codec) Encode(buf *pixel.Buffer, path string) (err error) {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedFormat, path, err)
	}

	quality := c.JPEGQuality
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: failed to create image: %w", ErrIO, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: failed to close image %q: %w", ErrIO, path, closeErr)
		}
	}()

	if err := imaging.Encode(f, buf.Image(), format, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("%w: failed to encode image %q: %w", ErrIO, path, err)
	}
	return nil
}
