package imaging

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// Decoder turns an image file into a pixel buffer. Codec implements it.
type Decoder interface {
	Decode(path string) (*pixel.Buffer, error)
}

// ImageCache provides thread-safe caching of decoded buffers to avoid
// redundant disk reads.
//
// Buffers are keyed by the exact path string passed to Load. Cached buffers
// are shared between callers, which is safe because buffers are never
// modified after decoding.
//
// # Memory Management
//
// Cached buffers remain in memory until explicitly removed via Evict() or
// Clear().
//
// # Example Usage
//
//	cache := imaging.NewImageCache(imaging.Codec{})
//	buf, err := cache.Load("/path/to/image.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
type ImageCache struct {
	mu      sync.RWMutex
	decoder Decoder
	images  map[string]*pixel.Buffer
}

// NewImageCache creates an empty cache that decodes misses with decoder.
func NewImageCache(decoder Decoder) *ImageCache {
	return &ImageCache{
		decoder: decoder,
		images:  make(map[string]*pixel.Buffer),
	}
}

// Load retrieves a buffer from the cache or decodes it from disk if not cached.
//
// Errors from the decoder are returned unchanged (ErrIO, ErrDecode).
func (c *ImageCache) Load(path string) (*pixel.Buffer, error) {
	c.mu.RLock()
	if buf, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return buf, nil
	}
	c.mu.RUnlock()

	buf, err := c.decoder.Decode(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = buf
	c.mu.Unlock()

	return buf, nil
}

// Clear removes all buffers from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*pixel.Buffer)
	c.mu.Unlock()
}

// Evict removes a specific buffer from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached buffers.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Mode is the buffer mode after decoding: "rgb" or "grayscale".
	Mode string `json:"mode"`

	// Format is derived from the file extension: "png", "jpeg", "gif",
	// "bmp", "tiff" or "unknown".
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through the cache and returns its metadata.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	buf, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to stat file: %w", ErrIO, err)
	}

	format := "unknown"
	if f, err := imaging.FormatFromFilename(path); err == nil {
		format = strings.ToLower(f.String())
	}

	return &ImageInfo{
		Width:         buf.Width(),
		Height:        buf.Height(),
		Mode:          buf.Mode().String(),
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}
