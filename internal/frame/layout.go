// Standard clock layout

package frame

import (
	"image"

	"github.com/drummonds/inkclock/internal/drawing"
	"github.com/drummonds/inkclock/internal/panel"
)

// SetupBackground adds the picture panel.  bg may be nil, in which case the
// frame keeps its plain background.
func (pf *PictureFrame) SetupBackground(bg image.Image, fit drawing.FitMode) *panel.ImagePanel {
	picture := panel.NewImagePanel(bg, fit)
	pf.AddPanel(picture)
	return picture
}

// SetupClock adds the clock box with lines, time first.
func (pf *PictureFrame) SetupClock(faces panel.Faces, lines []string) *panel.ClockPanel {
	box := panel.NewClockPanel(pf.W, faces, lines)
	pf.AddPanel(box)
	return box
}
