package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ironsheep/pixel-tools-mcp/internal/histogram"
	"github.com/ironsheep/pixel-tools-mcp/internal/imaging"
)

// Layouts for rendering each stage.
const (
	// LayoutFigure renders the image and its histogram side by side in one file.
	LayoutFigure = "figure"

	// LayoutSeparate renders the image and its histogram as two files.
	LayoutSeparate = "separate"
)

var (
	// ErrNoInput is returned when no input image is configured.
	ErrNoInput = errors.New("no input image configured")

	// ErrInvalidConfig is returned for configuration values out of range.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config drives one pipeline run. Field tags match the configuration keys
// read by the command line.
type Config struct {
	// Input is the image to process.
	Input string `mapstructure:"input"`

	// OutputDir receives renderings and, unless GrayOutput says otherwise,
	// the grayscale image.
	OutputDir string `mapstructure:"output_dir"`

	// GrayOutput is where the grayscale image is saved. The extension picks
	// the format. Defaults to "<output_dir>/<input name>_gray<input ext>".
	GrayOutput string `mapstructure:"gray_output"`

	// Brighten and Darken are the two brightness factors applied to the
	// original image.
	Brighten float64 `mapstructure:"brighten"`
	Darken   float64 `mapstructure:"darken"`

	// Histogram is "per-channel" or "luminance". Empty selects per-channel
	// for stage figures and luminance for comparisons.
	Histogram string `mapstructure:"histogram"`

	// Compare renders side-by-side pairs (original/grayscale and
	// brightened/darkened) instead of one figure per stage.
	Compare bool `mapstructure:"compare"`

	// Layout is LayoutFigure or LayoutSeparate.
	Layout string `mapstructure:"layout"`

	// Workers bounds the parallelism of every transform. 0 uses all CPUs.
	Workers int `mapstructure:"workers"`
}

// DefaultConfig returns the settings of the original batch program.
func DefaultConfig() Config {
	return Config{
		OutputDir: "out",
		Brighten:  1.5,
		Darken:    0.5,
		Layout:    LayoutFigure,
	}
}

// Validate checks the configuration before any image is read.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return ErrNoInput
	}
	if err := imaging.CheckFactor(c.Brighten); err != nil {
		return fmt.Errorf("%w: brighten: %w", ErrInvalidConfig, err)
	}
	if err := imaging.CheckFactor(c.Darken); err != nil {
		return fmt.Errorf("%w: darken: %w", ErrInvalidConfig, err)
	}
	if c.Histogram != "" {
		if _, err := histogram.ParseMode(c.Histogram); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	switch c.Layout {
	case "", LayoutFigure, LayoutSeparate:
	default:
		return fmt.Errorf("%w: unknown layout %q", ErrInvalidConfig, c.Layout)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// GrayPath returns where the grayscale image is saved.
func (c Config) GrayPath() string {
	if c.GrayOutput != "" {
		return c.GrayOutput
	}
	base := filepath.Base(c.Input)
	ext := filepath.Ext(base)
	return filepath.Join(c.OutputDir, strings.TrimSuffix(base, ext)+"_gray"+ext)
}

// histogramMode resolves the configured mode, falling back to fallback when
// none is set.
func (c Config) histogramMode(fallback histogram.Mode) histogram.Mode {
	if c.Histogram == "" {
		return fallback
	}
	mode, err := histogram.ParseMode(c.Histogram)
	if err != nil {
		return fallback
	}
	return mode
}
