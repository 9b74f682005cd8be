// Package render draws pixel buffers and histogram charts into PNG files.
//
// It replaces an on-screen plotting window with files on disk, so every
// output can be produced headless. Charts follow the plot conventions of
// the batch program they render for:
//   - RGB per-channel histograms: red, green and blue lines with a legend
//   - a single grayscale histogram: gray bars
//   - a luminance "detailed" histogram: black dots on a grid
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixel-tools-mcp/internal/histogram"
	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// FileRenderer writes every shown image or chart to Dir as
// "<slug of title>.png".
type FileRenderer struct {
	Dir    string
	Logger *slog.Logger
}

// NewFileRenderer creates a renderer writing into dir, creating it if needed.
func NewFileRenderer(dir string, logger *slog.Logger) (*FileRenderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create render directory %q: %w", dir, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileRenderer{Dir: dir, Logger: logger}, nil
}

// ShowImage renders buf under its title.
func (r *FileRenderer) ShowImage(buf *pixel.Buffer, title string) error {
	return r.save(title, titled(title, buf.Image()))
}

// ShowHistograms renders the series as one chart.
func (r *FileRenderer) ShowHistograms(title string, series []histogram.Series) error {
	return r.save(title, Chart(title, series, DefaultChartWidth, DefaultChartHeight))
}

// ShowFigure renders panels as one figure, one row per panel.
func (r *FileRenderer) ShowFigure(title string, panels ...Panel) error {
	return r.save(title, Figure(title, panels...))
}

func (r *FileRenderer) save(title string, img image.Image) error {
	path := filepath.Join(r.Dir, Slug(title)+".png")
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save rendering %q: %w", title, err)
	}
	r.logger().Info("rendered", "title", title, "file", path)
	return nil
}

func (r *FileRenderer) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

// Slug turns a title into a file name: lower case, runs of anything other
// than letters and digits collapsed to a single '-'.
func Slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "untitled"
	}
	return s
}

// EncodeBase64PNG encodes img as PNG and returns it base64-encoded.
func EncodeBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
