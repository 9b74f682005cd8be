// Package pipeline runs the batch image program: read an image, show it with
// its histogram, convert it to grayscale and save the result, then brighten
// and darken the original and show both.
//
// Reading, writing and displaying go through the Codec and Renderer
// interfaces, so the pipeline runs headless and is tested with fakes.
package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/ironsheep/pixel-tools-mcp/internal/histogram"
	"github.com/ironsheep/pixel-tools-mcp/internal/imaging"
	"github.com/ironsheep/pixel-tools-mcp/internal/parallel"
	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
	"github.com/ironsheep/pixel-tools-mcp/internal/render"
)

// Codec reads and writes image files.
type Codec interface {
	Decode(path string) (*pixel.Buffer, error)
	Encode(buf *pixel.Buffer, path string) error
}

// Renderer displays buffers and histograms.
type Renderer interface {
	ShowImage(buf *pixel.Buffer, title string) error
	ShowHistograms(title string, series []histogram.Series) error
	ShowFigure(title string, panels ...render.Panel) error
}

// Result holds every buffer a run produced.
type Result struct {
	Original   *pixel.Buffer
	Gray       *pixel.Buffer
	Brightened *pixel.Buffer
	Darkened   *pixel.Buffer
	GrayPath   string
}

// Pipeline is a configured batch run.
type Pipeline struct {
	cfg      Config
	codec    Codec
	renderer Renderer
	logger   *slog.Logger
	opts     []parallel.Option
}

// New validates cfg and returns a pipeline using codec and renderer.
func New(cfg Config, codec Codec, renderer Renderer, logger *slog.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Layout == "" {
		cfg.Layout = LayoutFigure
	}
	if logger == nil {
		logger = slog.Default()
	}

	var opts []parallel.Option
	if cfg.Workers > 0 {
		opts = append(opts, parallel.Workers(cfg.Workers))
	}

	return &Pipeline{
		cfg:      cfg,
		codec:    codec,
		renderer: renderer,
		logger:   logger.With("input", cfg.Input),
		opts:     opts,
	}, nil
}

// Run executes every stage in order and stops at the first error. No
// rendering happens for a stage whose transform failed.
func (p *Pipeline) Run() (*Result, error) {
	p.logger.Info("running pipeline", "workers", parallel.NumWorkers(p.opts...), "compare", p.cfg.Compare)

	original, err := p.codec.Decode(p.cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	p.logger.Debug("decoded", "width", original.Width(), "height", original.Height(), "mode", original.Mode())

	res := &Result{Original: original, GrayPath: p.cfg.GrayPath()}

	if !p.cfg.Compare {
		if err := p.show("Original Image", original); err != nil {
			return nil, err
		}
	}

	res.Gray, err = imaging.ToGrayscale(original, p.opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to convert to grayscale: %w", err)
	}
	if err := p.codec.Encode(res.Gray, res.GrayPath); err != nil {
		return nil, fmt.Errorf("failed to save grayscale image: %w", err)
	}
	p.logger.Info("saved grayscale image", "file", res.GrayPath)

	if !p.cfg.Compare {
		if err := p.show("Grayscale Image", res.Gray); err != nil {
			return nil, err
		}
	}

	res.Brightened, err = imaging.Adjust(original, p.cfg.Brighten, p.opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to brighten: %w", err)
	}
	brightTitle := fmt.Sprintf("Brightness Increased (x%g)", p.cfg.Brighten)
	if !p.cfg.Compare {
		if err := p.show(brightTitle, res.Brightened); err != nil {
			return nil, err
		}
	}

	res.Darkened, err = imaging.Adjust(original, p.cfg.Darken, p.opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to darken: %w", err)
	}
	darkTitle := fmt.Sprintf("Brightness Decreased (x%g)", p.cfg.Darken)
	if !p.cfg.Compare {
		if err := p.show(darkTitle, res.Darkened); err != nil {
			return nil, err
		}
		p.logger.Info("pipeline done")
		return res, nil
	}

	if err := p.compare("Original vs Grayscale", "Original Image", original, "Grayscale Image", res.Gray); err != nil {
		return nil, err
	}
	if err := p.compare("Brightened vs Darkened", brightTitle, res.Brightened, darkTitle, res.Darkened); err != nil {
		return nil, err
	}

	p.logger.Info("pipeline done")
	return res, nil
}

// show renders one stage: the image and its histogram.
func (p *Pipeline) show(title string, buf *pixel.Buffer) error {
	series, err := histogram.Accumulate(buf, p.cfg.histogramMode(histogram.PerChannel), p.opts...)
	if err != nil {
		return fmt.Errorf("failed to compute histogram for %q: %w", title, err)
	}

	if p.cfg.Layout == LayoutSeparate {
		if err := p.renderer.ShowImage(buf, title); err != nil {
			return fmt.Errorf("failed to show %q: %w", title, err)
		}
		if err := p.renderer.ShowHistograms(title+" Histogram", series); err != nil {
			return fmt.Errorf("failed to show histogram of %q: %w", title, err)
		}
		return nil
	}

	panel := render.Panel{Title: title, Image: buf, ChartTitle: chartTitle(buf, series), Series: series}
	if err := p.renderer.ShowFigure(title, panel); err != nil {
		return fmt.Errorf("failed to show %q: %w", title, err)
	}
	return nil
}

// compare renders two images with their histograms, one above the other.
func (p *Pipeline) compare(title, title1 string, buf1 *pixel.Buffer, title2 string, buf2 *pixel.Buffer) error {
	mode := p.cfg.histogramMode(histogram.Luminance)

	panels := make([]render.Panel, 0, 2)
	for _, item := range []struct {
		title string
		buf   *pixel.Buffer
	}{{title1, buf1}, {title2, buf2}} {
		series, err := histogram.Accumulate(item.buf, mode, p.opts...)
		if err != nil {
			return fmt.Errorf("failed to compute histogram for %q: %w", item.title, err)
		}
		panels = append(panels, render.Panel{
			Title:      item.title,
			Image:      item.buf,
			ChartTitle: chartTitle(item.buf, series),
			Series:     series,
		})
	}

	if err := p.renderer.ShowFigure(title, panels...); err != nil {
		return fmt.Errorf("failed to show %q: %w", title, err)
	}
	return nil
}

func chartTitle(buf *pixel.Buffer, series []histogram.Series) string {
	switch {
	case len(series) == 1 && series[0].Channel == histogram.Luma:
		return "Detailed Pixel Histogram"
	case buf.Mode() == pixel.Grayscale:
		return "Grayscale Histogram"
	default:
		return "RGB Histogram"
	}
}
