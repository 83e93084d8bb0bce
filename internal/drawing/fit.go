package drawing

import (
	"fmt"
	"image"
	"image/draw"
)

// FitMode selects how a background is fitted to the canvas.
type FitMode string

const (
	FitCoverTop      FitMode = "cover"          // cover, top anchored
	FitCoverCentered FitMode = "cover-centered" // cover, centered both ways
	FitContainMode   FitMode = "contain"
)

// ParseFitMode accepts the configuration spelling of a fit mode.
func ParseFitMode(s string) (FitMode, error) {
	switch m := FitMode(s); m {
	case FitCoverTop, FitCoverCentered, FitContainMode:
		return m, nil
	case "":
		return FitCoverTop, nil
	}
	return "", fmt.Errorf("unknown fit mode %q", s)
}

// Place computes the placement for an image of size src on a canvas of size dst.
func (m FitMode) Place(src, dst image.Point) (Placement, error) {
	switch m {
	case FitCoverCentered:
		return FitCover(src.X, src.Y, dst.X, dst.Y, CropCentered)
	case FitContainMode:
		return FitContain(src.X, src.Y, dst.X, dst.Y)
	default:
		return FitCover(src.X, src.Y, dst.X, dst.Y, CropTopAnchored)
	}
}

// Fit lays src onto canvas in place.  A nil src leaves the canvas as it is
// and returns a zero Placement: a missing background is not an error.
func Fit(canvas draw.Image, src image.Image, mode FitMode) (Placement, error) {
	if src == nil {
		return Placement{}, nil
	}
	p, err := mode.Place(src.Bounds().Size(), canvas.Bounds().Size())
	if err != nil {
		return Placement{}, err
	}
	Composite(canvas, src, p)
	return p, nil
}
