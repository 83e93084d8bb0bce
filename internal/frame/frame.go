/*
A frame represents the complete rectangular area shown on the e-reader.

The frame is rendered by pasting panels on it in order:

- the background picture, cover fitted
- the clock box with the text lines
*/
package frame

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
)

type Panelled interface {
	Render(buffer *image.Gray) error
}

// This is the structure which holds the screen data.
type PictureFrame struct {
	// config
	Bounds   image.Rectangle
	W, H     int
	Buffer   *image.Gray // What is served to the e-reader
	BGColour color.Gray
	panels   []Panelled
}

// Create a new picture frame at a defined size, eg the e-reader screen,
// filled with a white background.
func NewPictureFrame(bounds image.Rectangle) *PictureFrame {
	pf := new(PictureFrame)
	pf.Bounds = bounds
	pf.W = pf.Bounds.Dx()
	pf.H = pf.Bounds.Dy()
	pf.BGColour = color.Gray{Y: 255}
	pf.Buffer = image.NewGray(pf.Bounds)
	pf.RepaintBackground()
	pf.panels = make([]Panelled, 0, 2)
	return pf
}

func (pf *PictureFrame) SetBGColour(c color.Color) {
	pf.BGColour = color.GrayModel.Convert(c).(color.Gray)
	pf.RepaintBackground()
}

func (pf *PictureFrame) RepaintBackground() {
	draw.Draw(pf.Buffer, pf.Bounds, &image.Uniform{pf.BGColour}, image.Point{}, draw.Src)
}

func (pf *PictureFrame) AddPanel(panel Panelled) {
	pf.panels = append(pf.panels, panel)
}

// Calls all the child panels to render onto the buffer.  A failing panel
// does not stop the ones after it.
func (pf *PictureFrame) Render() error {
	var errs []error
	for _, panel := range pf.panels {
		if err := panel.Render(pf.Buffer); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Snapshot returns a copy of the buffer.
func (pf *PictureFrame) Snapshot() *image.Gray {
	out := image.NewGray(pf.Buffer.Rect)
	copy(out.Pix, pf.Buffer.Pix)
	return out
}
