package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/pixel-tools-mcp/internal/histogram"
)

// Chart sizes used by ShowHistograms and figures.
const (
	DefaultChartWidth  = 560
	DefaultChartHeight = 300
)

// Style is how a chart draws its series.
type Style int

const (
	// Lines draws each series as a polyline over a light fill.
	Lines Style = iota

	// Bars draws one vertical bar per bin.
	Bars

	// Scatter draws one dot per bin on a grid.
	Scatter
)

// StyleFor picks the drawing style for a set of series: a single gray table
// as bars, a single luminance table as a dotted scatter plot, anything else
// as overlaid lines.
func StyleFor(series []histogram.Series) Style {
	if len(series) == 1 {
		switch series[0].Channel {
		case histogram.Gray:
			return Bars
		case histogram.Luma:
			return Scatter
		}
	}
	return Lines
}

var (
	background = colorful.Color{R: 1, G: 1, B: 1}
	axisColor  = mustHex("#404040")
	gridColor  = mustHex("#DDDDDD")
	textColor  = mustHex("#000000")
)

// channelColors maps each channel to its series color.
var channelColors = map[histogram.Channel]colorful.Color{
	histogram.Red:   mustHex("#FF0000"),
	histogram.Green: mustHex("#008000"),
	histogram.Blue:  mustHex("#0000FF"),
	histogram.Gray:  mustHex("#808080"),
	histogram.Luma:  mustHex("#000000"),
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("render: bad color %q: %v", s, err))
	}
	return c
}

// SeriesColor returns the color a series is drawn with.
func SeriesColor(ch histogram.Channel) color.Color {
	return seriesColor(ch)
}

func seriesColor(ch histogram.Channel) colorful.Color {
	if c, ok := channelColors[ch]; ok {
		return c
	}
	return axisColor
}

// plotArea is the rectangle inside the chart axes.
type plotArea struct {
	left, top, right, bottom int
	max                      uint64
}

func (p plotArea) x(bin int) int {
	return p.left + bin*(p.right-p.left)/(histogram.Bins-1)
}

func (p plotArea) y(count uint64) int {
	if p.max == 0 {
		return p.bottom
	}
	return p.bottom - int(float64(count)/float64(p.max)*float64(p.bottom-p.top))
}

// Chart draws the series into a new width x height image with axes, a title
// and a legend. The vertical scale is shared by all series.
func Chart(title string, series []histogram.Series, width, height int) *image.NRGBA {
	if width <= 0 {
		width = DefaultChartWidth
	}
	if height <= 0 {
		height = DefaultChartHeight
	}
	canvas := imaging.New(width, height, background)

	area := plotArea{left: 56, top: 28, right: width - 12, bottom: height - 30}
	for _, s := range series {
		area.max = max(area.max, uint64(s.Table.Histogram().Max()))
	}

	style := StyleFor(series)
	if style == Scatter {
		drawGrid(canvas, area)
	}
	drawAxes(canvas, area)

	for _, s := range series {
		c := seriesColor(s.Channel)
		switch style {
		case Bars:
			drawBars(canvas, area, &s.Table, c)
		case Scatter:
			drawScatter(canvas, area, &s.Table, c)
		default:
			drawLine(canvas, area, &s.Table, c)
		}
	}

	drawText(canvas, area.left, 18, title, textColor)
	drawText(canvas, area.left-4, area.bottom+16, "0", textColor)
	drawText(canvas, area.right-20, area.bottom+16, "255", textColor)
	drawText(canvas, 4, area.top+10, fmt.Sprintf("%d", area.max), textColor)
	if len(series) > 1 {
		drawLegend(canvas, area, series)
	}

	return canvas
}

func drawAxes(img *image.NRGBA, p plotArea) {
	for x := p.left; x <= p.right; x++ {
		img.Set(x, p.bottom, axisColor)
	}
	for y := p.top; y <= p.bottom; y++ {
		img.Set(p.left, y, axisColor)
	}
}

func drawGrid(img *image.NRGBA, p plotArea) {
	for i := 1; i < 8; i++ {
		x := p.x(i * 32)
		for y := p.top; y < p.bottom; y++ {
			img.Set(x, y, gridColor)
		}
		y := p.top + i*(p.bottom-p.top)/8
		for x := p.left; x < p.right; x++ {
			img.Set(x, y, gridColor)
		}
	}
}

func drawBars(img *image.NRGBA, p plotArea, t *histogram.Table, c colorful.Color) {
	for bin, count := range t {
		if count == 0 {
			continue
		}
		x0, x1 := p.x(bin), p.x(min(bin+1, histogram.Bins-1))
		top := p.y(count)
		for x := x0; x <= max(x0, x1-1); x++ {
			for y := top; y < p.bottom; y++ {
				img.Set(x, y, c)
			}
		}
	}
}

func drawScatter(img *image.NRGBA, p plotArea, t *histogram.Table, c colorful.Color) {
	for bin, count := range t {
		cx, cy := p.x(bin), p.y(count)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				img.Set(cx+dx, cy+dy, c)
			}
		}
	}
}

// drawLine draws the table as a polyline with a pale fill below it.
func drawLine(img *image.NRGBA, p plotArea, t *histogram.Table, c colorful.Color) {
	fill := c.BlendRgb(background, 0.85)
	for bin, count := range t {
		x, top := p.x(bin), p.y(count)
		for y := top + 1; y < p.bottom; y++ {
			img.Set(x, y, blendOver(img.NRGBAAt(x, y), fill))
		}
	}

	prevX, prevY := p.x(0), p.y(t[0])
	for bin := 1; bin < histogram.Bins; bin++ {
		x, y := p.x(bin), p.y(t[bin])
		drawSegment(img, prevX, prevY, x, y, c)
		prevX, prevY = x, y
	}
}

// blendOver mixes a fill into an existing pixel so overlapping fills stay
// visible.
func blendOver(existing color.NRGBA, fill colorful.Color) color.Color {
	base, ok := colorful.MakeColor(existing)
	if !ok || base == background {
		return fill
	}
	return base.BlendRgb(fill, 0.5)
}

// drawSegment draws a line with Bresenham's algorithm.
func drawSegment(img *image.NRGBA, x0, y0, x1, y1 int, c color.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		img.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func drawLegend(img *image.NRGBA, p plotArea, series []histogram.Series) {
	x := p.right - 90
	y := p.top + 4
	for _, s := range series {
		c := SeriesColor(s.Channel)
		for dy := 0; dy < 8; dy++ {
			for dx := 0; dx < 14; dx++ {
				img.Set(x+dx, y+dy, c)
			}
		}
		drawText(img, x+18, y+8, s.Label, textColor)
		y += 14
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
