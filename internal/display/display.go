// Package display produces the clock frame: it reads the clock, fetches the
// weather, loads the background and renders them into a gray canvas.
package display

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
	"sync"
	"time"

	"github.com/drummonds/inkclock/internal/background"
	"github.com/drummonds/inkclock/internal/clock"
	"github.com/drummonds/inkclock/internal/drawing"
	"github.com/drummonds/inkclock/internal/frame"
	"github.com/drummonds/inkclock/internal/panel"
)

// Weather is a source of the weather line.  On failure it still returns the
// text to show, together with the reason.
type Weather interface {
	Display(ctx context.Context) (string, error)
}

// Options fixes the look of the frame.
type Options struct {
	Size       image.Point // canvas, e.g. 800x1060
	Location   *time.Location
	Where      clock.Location
	Fit        drawing.FitMode
	Background color.Gray
	Faces      panel.Faces
}

// State is the outcome of the last redraw.
type State struct {
	Snapshot      clock.Snapshot
	Frame         *image.Gray // background with the clock box
	Background    *image.Gray // background alone
	Placement     drawing.Placement
	HasBackground bool
	BackgroundErr error
	WeatherErr    error
	RenderedAt    time.Time
	Took          time.Duration
	Count         int
}

// Renderer redraws the frame on demand and keeps the latest result for
// concurrent readers.
type Renderer struct {
	opts       Options
	clock      clock.Clock
	weather    Weather
	background background.Source

	mu    sync.RWMutex
	state State
	count int
}

func New(opts Options, clk clock.Clock, weather Weather, bg background.Source) *Renderer {
	if clk == nil {
		clk = clock.System
	}
	if bg == nil {
		bg = background.None{}
	}
	return &Renderer{opts: opts, clock: clk, weather: weather, background: bg}
}

// Refresh does one redraw: weather, background, layout, render.  Failing
// weather or background only degrade the frame; an error is returned only
// when nothing could be rendered.
func (r *Renderer) Refresh(ctx context.Context) error {
	start := time.Now()
	if r.opts.Size.X <= 0 || r.opts.Size.Y <= 0 {
		return fmt.Errorf("render: %w: canvas %v", drawing.ErrInvalidDimensions, r.opts.Size)
	}

	snap := clock.Read(r.clock.Now(), r.opts.Location, r.opts.Where)
	var weatherErr error
	if r.weather != nil {
		snap.Weather, weatherErr = r.weather.Display(ctx)
	}

	bg, bgErr := background.LoadGray(ctx, r.background)
	var bgImage image.Image
	if bg != nil {
		bgImage = bg
	}

	pf := frame.NewPictureFrame(image.Rectangle{Max: r.opts.Size})
	pf.SetBGColour(r.opts.Background)
	picture := pf.SetupBackground(bgImage, r.opts.Fit)
	if err := pf.Render(); err != nil {
		return fmt.Errorf("render background: %w", err)
	}
	bgOnly := pf.Snapshot()
	box := pf.SetupClock(r.opts.Faces, snap.Lines())
	if err := box.Render(pf.Buffer); err != nil {
		return fmt.Errorf("render clock: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.count++
	r.state = State{
		Snapshot:      snap,
		Frame:         pf.Buffer,
		Background:    bgOnly,
		Placement:     picture.Placement,
		HasBackground: bg != nil,
		BackgroundErr: bgErr,
		WeatherErr:    weatherErr,
		RenderedAt:    start,
		Took:          time.Since(start),
		Count:         r.count,
	}
	if r.count < 3 {
		log.Printf("rendered %s %s in %v, placement %+v", snap.Date, snap.Time, r.state.Took, picture.Placement)
	}
	return nil
}

// Latest returns the last rendered state and whether there has been one.
// The images in it must not be modified.
func (r *Renderer) Latest() (State, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state, r.state.Frame != nil
}
