package render

import (
	"image/color"
	"testing"

	"github.com/ironsheep/pixel-tools-mcp/internal/histogram"
)

func TestStyleFor(t *testing.T) {
	tests := []struct {
		name   string
		series []histogram.Series
		want   Style
	}{
		{"rgb", []histogram.Series{{Channel: histogram.Red}, {Channel: histogram.Green}, {Channel: histogram.Blue}}, Lines},
		{"gray", []histogram.Series{{Channel: histogram.Gray}}, Bars},
		{"luminance", []histogram.Series{{Channel: histogram.Luma}}, Scatter},
		{"single red", []histogram.Series{{Channel: histogram.Red}}, Lines},
		{"empty", nil, Lines},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StyleFor(tt.series); got != tt.want {
				t.Errorf("StyleFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChart_Size(t *testing.T) {
	var table histogram.Table
	table[128] = 10

	img := Chart("Sizes", []histogram.Series{{Channel: histogram.Gray, Label: "Gray", Table: table}}, 320, 200)
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 200 {
		t.Errorf("size: got %v, want 320x200", img.Bounds())
	}

	img = Chart("Defaults", nil, 0, 0)
	if img.Bounds().Dx() != DefaultChartWidth || img.Bounds().Dy() != DefaultChartHeight {
		t.Errorf("default size: got %v", img.Bounds())
	}
}

// countColor counts pixels of exactly c.
func countColor(t *testing.T, img interface {
	At(x, y int) color.Color
}, w, h int, c color.Color) int {
	t.Helper()
	r0, g0, b0, _ := c.RGBA()
	n := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r>>8 == r0>>8 && g>>8 == g0>>8 && b>>8 == b0>>8 {
				n++
			}
		}
	}
	return n
}

func TestChart_DrawsSeriesColors(t *testing.T) {
	var r, g, b histogram.Table
	for i := range r {
		r[i] = uint64(i)
		g[i] = uint64(255 - i)
		b[i] = 100
	}
	series := []histogram.Series{
		{Channel: histogram.Red, Label: "Red", Table: r},
		{Channel: histogram.Green, Label: "Green", Table: g},
		{Channel: histogram.Blue, Label: "Blue", Table: b},
	}

	img := Chart("RGB", series, DefaultChartWidth, DefaultChartHeight)
	for _, s := range series {
		if n := countColor(t, img, DefaultChartWidth, DefaultChartHeight, SeriesColor(s.Channel)); n == 0 {
			t.Errorf("no %s pixels drawn", s.Label)
		}
	}
}

func TestChart_GrayBars(t *testing.T) {
	var table histogram.Table
	table[0] = 50
	table[255] = 25

	img := Chart("Gray", []histogram.Series{{Channel: histogram.Gray, Label: "Gray", Table: table}}, DefaultChartWidth, DefaultChartHeight)
	area := plotArea{left: 56, top: 28, right: DefaultChartWidth - 12, bottom: DefaultChartHeight - 30, max: 50}

	// The tallest bar reaches the top of the plot area.
	if got := img.At(area.x(0), area.top+1); !sameRGB(got, SeriesColor(histogram.Gray)) {
		t.Errorf("bar at bin 0: got %v, want gray", got)
	}
	// The half-height bar does not.
	if got := img.At(area.x(255), area.top+1); sameRGB(got, SeriesColor(histogram.Gray)) {
		t.Error("bar at bin 255 should stop below the top")
	}
}

func sameRGB(a, b color.Color) bool {
	r1, g1, b1, _ := a.RGBA()
	r2, g2, b2, _ := b.RGBA()
	return r1>>8 == r2>>8 && g1>>8 == g2>>8 && b1>>8 == b2>>8
}

func TestPlotArea_Scale(t *testing.T) {
	p := plotArea{left: 10, top: 0, right: 265, bottom: 100, max: 200}

	if p.x(0) != 10 || p.x(255) != 265 {
		t.Errorf("x range: got %d..%d, want 10..265", p.x(0), p.x(255))
	}
	if p.y(0) != 100 || p.y(200) != 0 || p.y(100) != 50 {
		t.Errorf("y scale: got %d %d %d", p.y(0), p.y(200), p.y(100))
	}

	empty := plotArea{bottom: 100}
	if empty.y(5) != 100 {
		t.Errorf("empty scale should sit on the axis, got %d", empty.y(5))
	}
}

func TestDrawSegment_Endpoints(t *testing.T) {
	img := Chart("", nil, 40, 40)
	c := color.NRGBA{R: 9, G: 8, B: 7, A: 255}

	drawSegment(img, 2, 30, 37, 3, c)
	if img.NRGBAAt(2, 30) != c || img.NRGBAAt(37, 3) != c {
		t.Error("segment endpoints not drawn")
	}
}
