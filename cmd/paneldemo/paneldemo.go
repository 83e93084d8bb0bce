// paneldemo renders the clock frame over synthetic wide and tall backgrounds
// in every fit mode and saves them as PNG files, to compare the crops side
// by side.  It needs no network: the weather line is fixed.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/drummonds/inkclock/internal/background"
	"github.com/drummonds/inkclock/internal/clock"
	"github.com/drummonds/inkclock/internal/display"
	"github.com/drummonds/inkclock/internal/drawing"
	"github.com/drummonds/inkclock/internal/panel"
)

type fixedWeather string

func (f fixedWeather) Display(context.Context) (string, error) { return string(f), nil }

// stripes draws horizontal bands so vertical cropping is visible.
func stripes(w, h int) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		v := uint8(255 * y / h)
		if (y/40)%2 == 0 {
			v /= 2
		}
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func main() {
	dir := flag.String("dir", ".", "output directory")
	flag.Parse()

	faces, err := panel.LoadFaces("", 80)
	if err != nil {
		log.Fatal(err)
	}
	now := clock.Fixed(time.Date(2024, 2, 10, 9, 41, 0, 0, time.UTC))
	sources := map[string]image.Image{
		"wide": stripes(1600, 900),
		"tall": stripes(800, 1200),
	}
	for name, img := range sources {
		for _, mode := range []drawing.FitMode{drawing.FitCoverTop, drawing.FitCoverCentered, drawing.FitContainMode} {
			r := display.New(display.Options{
				Size:       image.Point{800, 1060},
				Location:   time.UTC,
				Fit:        mode,
				Background: color.Gray{Y: 255},
				Faces:      faces,
			}, now, fixedWeather("Sunny +21°C"), background.Static{Image: img})
			if err := r.Refresh(context.Background()); err != nil {
				log.Fatal(err)
			}
			state, _ := r.Latest()
			out := filepath.Join(*dir, fmt.Sprintf("clock-%s-%s.png", name, mode))
			f, err := os.Create(out)
			if err != nil {
				log.Fatal(err)
			}
			if err := png.Encode(f, state.Frame); err != nil {
				log.Fatal(err)
			}
			f.Close()
			log.Printf("%s placement %+v", out, state.Placement)
		}
	}
}
