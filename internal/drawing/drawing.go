package drawing

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// ErrInvalidDimensions is returned when a source or canvas size is not positive.
var ErrInvalidDimensions = errors.New("invalid dimensions")

// CropPolicy decides where the scaled image sits vertically when it is
// taller than the canvas.
type CropPolicy int

const (
	// CropTopAnchored pins the scaled image to the top of the canvas and lets
	// the excess overflow at the bottom. Horizontal excess is still centered.
	CropTopAnchored CropPolicy = iota
	// CropCentered trims the excess evenly on both sides in either axis.
	CropCentered
)

// Placement says how a source image is laid on a canvas.  The scaled image
// is drawn at (-OffsetX, -OffsetY) with size Size.
type Placement struct {
	Scale   float64
	OffsetX int
	OffsetY int
	Size    image.Point // scaled source size
}

// Rect is the destination rectangle of the scaled source in canvas
// coordinates, relative to the canvas origin.
func (p Placement) Rect() image.Rectangle {
	return image.Rect(-p.OffsetX, -p.OffsetY, p.Size.X-p.OffsetX, p.Size.Y-p.OffsetY)
}

func checkDimensions(sw, sh, cw, ch int) error {
	if sw <= 0 || sh <= 0 || cw <= 0 || ch <= 0 {
		return fmt.Errorf("%w: source %dx%d canvas %dx%d", ErrInvalidDimensions, sw, sh, cw, ch)
	}
	return nil
}

// FitCover scales a sw x sh image so it covers a cw x ch canvas.
//
// A relatively wider source is scaled to the canvas height and cropped evenly
// left and right.  A relatively taller (or equal) source is scaled to the
// canvas width; with CropTopAnchored its bottom overflows, with CropCentered
// the excess is split between top and bottom.
func FitCover(sw, sh, cw, ch int, policy CropPolicy) (Placement, error) {
	if err := checkDimensions(sw, sh, cw, ch); err != nil {
		return Placement{}, err
	}
	var p Placement
	// sw/sh > cw/ch, compared without rounding
	if sw*ch > cw*sh {
		p.Scale = float64(ch) / float64(sh)
		p.Size = image.Point{X: ch * sw / sh, Y: ch}
		p.OffsetX = (p.Size.X - cw) / 2
		return p, nil
	}
	p.Scale = float64(cw) / float64(sw)
	p.Size = image.Point{X: cw, Y: cw * sh / sw}
	if policy == CropCentered {
		p.OffsetY = (p.Size.Y - ch) / 2
	}
	return p, nil
}

// FitContain scales a sw x sh image to sit entirely inside a cw x ch canvas,
// centered, leaving bands of background on two sides.  Offsets are negative
// because the scaled image is smaller than the canvas.
func FitContain(sw, sh, cw, ch int) (Placement, error) {
	if err := checkDimensions(sw, sh, cw, ch); err != nil {
		return Placement{}, err
	}
	r := ScaleImageInside(image.Rect(0, 0, sw, sh), cw, ch)
	scale := float64(cw) / float64(sw)
	if s := float64(ch) / float64(sh); s < scale {
		scale = s
	}
	return Placement{
		Scale:   scale,
		OffsetX: -(cw - r.Dx()) / 2,
		OffsetY: -(ch - r.Dy()) / 2,
		Size:    r.Size(),
	}, nil
}

// ScaleImageInside returns the size of bounds scaled to the largest that fits
// within maxW x maxH with the aspect ratio kept.  The result starts at the
// origin; FitContain centres it.
func ScaleImageInside(bounds image.Rectangle, maxW, maxH int) image.Rectangle {
	imgW := bounds.Dx()
	imgH := bounds.Dy()
	ratio := float64(maxW) / float64(imgW)
	if r := float64(maxH) / float64(imgH); r < ratio {
		ratio = r
	}
	scaledW := int(ratio * float64(imgW))
	scaledH := int(ratio * float64(imgH))
	return image.Rect(0, 0, scaledW, scaledH)
}

// Composite draws src onto canvas according to p.  Pixels of the scaled
// source falling outside the canvas are dropped.
func Composite(canvas draw.Image, src image.Image, p Placement) {
	dst := p.Rect().Add(canvas.Bounds().Min)
	xdraw.BiLinear.Scale(canvas, dst, src, src.Bounds(), draw.Src, nil)
}
