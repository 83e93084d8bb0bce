package panel

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Faces are the three text sizes of the clock panel.
type Faces struct {
	Time  font.Face
	Date  font.Face
	Small font.Face
}

// LoadFaces reads a TrueType font, or uses Go Regular when path is empty.
// size is the time line in points; the other lines are scaled from it as
// 80:30:24.  The lunar line needs a font with CJK glyphs to be readable.
func LoadFaces(path string, size float64) (Faces, error) {
	ttf := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Faces{}, fmt.Errorf("font: %w", err)
		}
		ttf = b
	}
	f, err := truetype.Parse(ttf)
	if err != nil {
		return Faces{}, fmt.Errorf("font %s: %w", path, err)
	}
	face := func(pt float64) font.Face {
		return truetype.NewFace(f, &truetype.Options{Size: pt, Hinting: font.HintingFull})
	}
	return Faces{
		Time:  face(size),
		Date:  face(size * 30 / 80),
		Small: face(size * 24 / 80),
	}, nil
}
