package panel

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/drummonds/inkclock/internal/drawing"
	"github.com/fogleman/gg"
)

// ImagePanel lays a background picture over the whole frame.
type ImagePanel struct {
	img       image.Image
	Fit       drawing.FitMode
	Placement drawing.Placement // where the picture went on the last render
}

// NewImagePanel wraps img, which may be nil when there is no picture.
func NewImagePanel(img image.Image, fit drawing.FitMode) *ImagePanel {
	return &ImagePanel{img: img, Fit: fit}
}

// Draws the picture on the buffer.  Without a picture the buffer keeps its
// background fill.
func (p *ImagePanel) Render(buffer *image.Gray) error {
	placement, err := drawing.Fit(buffer, p.img, p.Fit)
	if err != nil {
		return err
	}
	p.Placement = placement
	return nil
}

// Box of the clock text, in frame pixels.
const (
	boxMargin = 20
	boxTop    = 100
	boxBottom = 500
)

// ClockPanel is the white framed box with the time, date, lunar date and
// weather lines.
type ClockPanel struct {
	Lines []string
	Faces Faces
	W     int
}

func NewClockPanel(w int, faces Faces, lines []string) *ClockPanel {
	return &ClockPanel{W: w, Faces: faces, Lines: lines}
}

// Box returns the rectangle the panel paints over.
func (p *ClockPanel) Box() image.Rectangle {
	return image.Rect(boxMargin, boxTop, p.W-boxMargin, boxBottom)
}

func (p *ClockPanel) Render(buffer *image.Gray) error {
	b := buffer.Bounds()
	g := gg.NewContext(b.Dx(), b.Dy())
	box := p.Box()

	g.DrawRectangle(float64(box.Min.X), float64(box.Min.Y), float64(box.Dx()), float64(box.Dy()))
	g.SetColor(color.White)
	g.FillPreserve()
	g.SetColor(color.Black)
	g.SetLineWidth(3)
	g.Stroke()

	cx := float64(p.W) / 2
	y := float64(box.Min.Y)
	for i, line := range p.Lines {
		switch i {
		case 0:
			g.SetFontFace(p.Faces.Time)
			y += 90
		case 1:
			g.SetFontFace(p.Faces.Date)
			y += 75
			// rule between the clock and the rest
			g.DrawLine(float64(box.Min.X+40), y+35, float64(box.Max.X-40), y+35)
			g.SetLineWidth(1)
			g.Stroke()
		case 2:
			g.SetFontFace(p.Faces.Small)
			y += 80
		default:
			y += 45
		}
		g.DrawStringAnchored(line, cx, y, 0.5, 0.5)
	}

	draw.Draw(buffer, b, g.Image(), image.Point{}, draw.Over)
	return nil
}
