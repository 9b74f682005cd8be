package render

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixel-tools-mcp/internal/histogram"
	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// Figure cell sizes.
const (
	imageCellWidth  = 420
	imageCellHeight = DefaultChartHeight
	titleBand       = 24
	cellPadding     = 8
)

// Panel is one row of a figure: an image with its title on the left and the
// image's histogram chart on the right. Either half may be empty.
type Panel struct {
	Title      string
	Image      *pixel.Buffer
	ChartTitle string
	Series     []histogram.Series
}

// Figure lays panels out top to bottom under a figure title. Images larger
// than their cell are scaled down to fit; smaller images are drawn as-is.
func Figure(title string, panels ...Panel) *image.NRGBA {
	rowHeight := titleBand + imageCellHeight + cellPadding
	width := imageCellWidth + DefaultChartWidth + 3*cellPadding
	height := titleBand + len(panels)*rowHeight

	canvas := imaging.New(width, height, background)
	drawText(canvas, (width-textWidth(title))/2, titleBand-8, title, textColor)

	for i, p := range panels {
		top := titleBand + i*rowHeight

		if p.Image != nil {
			drawText(canvas, cellPadding, top+titleBand-8, p.Title, textColor)
			thumb := imaging.Fit(p.Image.Image(), imageCellWidth, imageCellHeight-cellPadding, imaging.Lanczos)
			offset := image.Pt(cellPadding+(imageCellWidth-thumb.Bounds().Dx())/2, top+titleBand)
			canvas = imaging.Paste(canvas, thumb, offset)
		}

		if len(p.Series) > 0 {
			chart := Chart(p.ChartTitle, p.Series, DefaultChartWidth, DefaultChartHeight)
			canvas = imaging.Paste(canvas, chart, image.Pt(imageCellWidth+2*cellPadding, top+titleBand))
		}
	}

	return canvas
}

// titled draws img under a title band.
func titled(title string, img image.Image) *image.NRGBA {
	b := img.Bounds()
	width := max(b.Dx(), textWidth(title)+2*cellPadding)
	canvas := imaging.New(width, b.Dy()+titleBand, background)
	drawText(canvas, cellPadding, titleBand-8, title, textColor)
	return imaging.Paste(canvas, img, image.Pt(0, titleBand))
}
