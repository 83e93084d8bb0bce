// Package background supplies the picture behind the clock.
package background

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log"

	"github.com/disintegration/gift"
	"github.com/disintegration/imaging"
)

// ErrMissingSource means there is no picture to show.  It wraps
// fs.ErrNotExist for a missing file.
var ErrMissingSource = errors.New("background: no source image")

// DecodeError is returned when picture bytes were found but could not be read.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("background: decode %s: %v", e.Name, e.Err) }

func (e *DecodeError) Unwrap() error { return e.Err }

// Source produces an image for the next redraw.
type Source interface {
	Load(ctx context.Context) (image.Image, error)
}

// File reads a picture from disk, honouring EXIF orientation.
type File struct {
	Path string
}

func (f File) Load(ctx context.Context) (image.Image, error) {
	if f.Path == "" {
		return nil, ErrMissingSource
	}
	img, err := imaging.Open(f.Path, imaging.AutoOrientation(true))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %w", ErrMissingSource, err)
	case err != nil:
		return nil, &DecodeError{Name: f.Path, Err: err}
	}
	return img, nil
}

// Static always shows the same picture, e.g. one embedded in the binary.
type Static struct {
	Image image.Image
}

func (s Static) Load(context.Context) (image.Image, error) {
	if s.Image == nil {
		return nil, ErrMissingSource
	}
	return s.Image, nil
}

// None never has a picture; the canvas stays plain.
type None struct{}

func (None) Load(context.Context) (image.Image, error) { return nil, ErrMissingSource }

// Gray converts img to 8-bit grayscale, the e-reader canvas format.
func Gray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	f := gift.New(gift.Grayscale())
	dst := image.NewGray(f.Bounds(img.Bounds()))
	f.Draw(dst, img)
	return dst
}

// LoadGray loads from src and converts to gray.  It returns a nil image and
// the reason when there is nothing usable to show; callers fall back to a
// plain canvas.
func LoadGray(ctx context.Context, src Source) (*image.Gray, error) {
	img, err := src.Load(ctx)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			log.Printf("background unreadable, using plain canvas: %v", err)
		} else {
			log.Printf("no background, using plain canvas: %v", err)
		}
		return nil, err
	}
	return Gray(img), nil
}
