package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/pixel-tools-mcp/internal/histogram"
	"github.com/ironsheep/pixel-tools-mcp/internal/imaging"
	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
	"github.com/ironsheep/pixel-tools-mcp/internal/render"
)

var errMissingPath = errors.New("missing required argument: path")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_grayscale").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging/histogram/render function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)

	// Transforms
	case "image_grayscale":
		return s.handleImageGrayscale(args)
	case "image_brightness":
		return s.handleImageBrightness(args)

	// Histograms
	case "image_histogram":
		return s.handleImageHistogram(args)
	case "image_histogram_chart":
		return s.handleImageHistogramChart(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments. Empty arguments decode as {}.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// load returns the cached buffer for path.
func (s *Server) load(path string) (*pixel.Buffer, error) {
	if path == "" {
		return nil, errMissingPath
	}
	return s.cache.Load(path)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errMissingPath
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(buf, a.X, a.Y)
}

type imageSampleColorsMultiArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.SampleColorsMulti(buf, points)
}

// === Transform Handlers ===

// TransformResult is returned by the transform tools.
type TransformResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Mode        string `json:"mode"`
	ImageBase64 string `json:"image_base64"`
	OutputPath  string `json:"output_path,omitempty"`
}

// transformResult encodes buf for the client and saves it when outputPath is
// set.
func (s *Server) transformResult(buf *pixel.Buffer, outputPath string) (*TransformResult, error) {
	if outputPath != "" {
		if err := s.codec.Encode(buf, outputPath); err != nil {
			return nil, err
		}
		s.logger.Info("saved image", "file", outputPath)
	}

	encoded, err := render.EncodeBase64PNG(buf.Image())
	if err != nil {
		return nil, err
	}

	return &TransformResult{
		Width:       buf.Width(),
		Height:      buf.Height(),
		Mode:        buf.Mode().String(),
		ImageBase64: encoded,
		OutputPath:  outputPath,
	}, nil
}

type imageGrayscaleArgs struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageGrayscale(args json.RawMessage) (interface{}, error) {
	var a imageGrayscaleArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	gray, err := imaging.ToGrayscale(buf, s.opts...)
	if err != nil {
		return nil, err
	}
	return s.transformResult(gray, a.OutputPath)
}

type imageBrightnessArgs struct {
	Path       string   `json:"path"`
	Factor     *float64 `json:"factor"`
	Grayscale  bool     `json:"grayscale"`
	OutputPath string   `json:"output_path"`
}

func (s *Server) handleImageBrightness(args json.RawMessage) (interface{}, error) {
	var a imageBrightnessArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Factor == nil {
		return nil, errors.New("missing required argument: factor")
	}
	buf, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	if a.Grayscale {
		if buf, err = imaging.ToGrayscale(buf, s.opts...); err != nil {
			return nil, err
		}
	}
	adjusted, err := imaging.Adjust(buf, *a.Factor, s.opts...)
	if err != nil {
		return nil, err
	}
	return s.transformResult(adjusted, a.OutputPath)
}

// === Histogram Handlers ===

// SeriesResult is one histogram table with summary statistics.
type SeriesResult struct {
	Channel string   `json:"channel"`
	Label   string   `json:"label"`
	Sum     uint64   `json:"sum"`
	Peak    uint64   `json:"peak"`
	PeakBin int      `json:"peak_bin"`
	Mean    float64  `json:"mean"`
	Bins    []uint64 `json:"bins"`
}

// HistogramResult is returned by image_histogram.
type HistogramResult struct {
	Mode       string         `json:"mode"`
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	Cumulative bool           `json:"cumulative"`
	Series     []SeriesResult `json:"series"`
}

type imageHistogramArgs struct {
	Path       string `json:"path"`
	Mode       string `json:"mode"`
	Grayscale  bool   `json:"grayscale"`
	Cumulative bool   `json:"cumulative"`
}

func (s *Server) handleImageHistogram(args json.RawMessage) (interface{}, error) {
	var a imageHistogramArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	mode, err := histogram.ParseMode(a.Mode)
	if err != nil {
		return nil, err
	}
	buf, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	if a.Grayscale {
		if buf, err = imaging.ToGrayscale(buf, s.opts...); err != nil {
			return nil, err
		}
	}

	series, err := histogram.Accumulate(buf, mode, s.opts...)
	if err != nil {
		return nil, err
	}

	result := &HistogramResult{
		Mode:       mode.String(),
		Width:      buf.Width(),
		Height:     buf.Height(),
		Cumulative: a.Cumulative,
		Series:     make([]SeriesResult, len(series)),
	}
	for i, sr := range series {
		table := sr.Table
		peakBin := peakIndex(&table)
		if a.Cumulative {
			table = table.Cumulative()
		}
		result.Series[i] = SeriesResult{
			Channel: sr.Channel.String(),
			Label:   sr.Label,
			Sum:     sr.Table.Sum(),
			Peak:    sr.Table.Max(),
			PeakBin: peakBin,
			Mean:    sr.Table.Mean(),
			Bins:    table[:],
		}
	}
	return result, nil
}

// peakIndex returns the lowest bin holding the highest count.
func peakIndex(t *histogram.Table) int {
	best := 0
	for i, c := range t {
		if c > t[best] {
			best = i
		}
	}
	return best
}

// maxChartSize bounds each side of a requested chart.
const maxChartSize = 4096

// ChartResult is returned by image_histogram_chart.
type ChartResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
}

type imageHistogramChartArgs struct {
	Path      string `json:"path"`
	Mode      string `json:"mode"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	WithImage bool   `json:"with_image"`
}

func (s *Server) handleImageHistogramChart(args json.RawMessage) (interface{}, error) {
	var a imageHistogramChartArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Width == 0 {
		a.Width = render.DefaultChartWidth
	}
	if a.Height == 0 {
		a.Height = render.DefaultChartHeight
	}
	if a.Width < 0 || a.Height < 0 || a.Width > maxChartSize || a.Height > maxChartSize {
		return nil, fmt.Errorf("invalid chart size %dx%d: each side must be between 1 and %d", a.Width, a.Height, maxChartSize)
	}
	mode, err := histogram.ParseMode(a.Mode)
	if err != nil {
		return nil, err
	}
	buf, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	series, err := histogram.Accumulate(buf, mode, s.opts...)
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("%s histogram", mode)
	var img *image.NRGBA
	if a.WithImage {
		img = render.Figure(title, render.Panel{Title: "Image", Image: buf, ChartTitle: title, Series: series})
	} else {
		img = render.Chart(title, series, a.Width, a.Height)
	}

	encoded, err := render.EncodeBase64PNG(img)
	if err != nil {
		return nil, err
	}
	return &ChartResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: encoded,
	}, nil
}
