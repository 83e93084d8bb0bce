package display

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/drummonds/inkclock/internal/background"
	"github.com/drummonds/inkclock/internal/clock"
	"github.com/drummonds/inkclock/internal/drawing"
	"github.com/drummonds/inkclock/internal/panel"
	"github.com/drummonds/inkclock/internal/weather"
)

type fakeWeather struct {
	text string
	err  error
}

func (f fakeWeather) Display(context.Context) (string, error) { return f.text, f.err }

func testOptions(t *testing.T) Options {
	t.Helper()
	faces, err := panel.LoadFaces("", 80)
	if err != nil {
		t.Fatal(err)
	}
	return Options{
		Size:       image.Point{800, 1060},
		Location:   time.UTC,
		Fit:        drawing.FitCoverTop,
		Background: color.Gray{Y: 255},
		Faces:      faces,
	}
}

var noon = clock.Fixed(time.Date(2024, 2, 10, 12, 5, 0, 0, time.UTC))

func TestRefreshWithoutBackground(t *testing.T) {
	r := New(testOptions(t), noon, fakeWeather{text: "Sunny +21°C"}, background.File{Path: filepath.Join(t.TempDir(), "bg.jpg")})
	if _, ok := r.Latest(); ok {
		t.Fatal("Latest before Refresh should report nothing")
	}
	if err := r.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	st, ok := r.Latest()
	if !ok {
		t.Fatal("Latest after Refresh reports nothing")
	}
	if st.Snapshot.Time != "12:05" || st.Snapshot.Weather != "Sunny +21°C" {
		t.Fatalf("Snapshot = %+v", st.Snapshot)
	}
	if st.HasBackground || !errors.Is(st.BackgroundErr, background.ErrMissingSource) {
		t.Fatalf("background = %v, %v want missing", st.HasBackground, st.BackgroundErr)
	}
	for i, v := range st.Background.Pix {
		if v != 255 {
			t.Fatalf("background pixel %d = %d, want 255", i, v)
		}
	}
	if got := st.Frame.GrayAt(20, 300).Y; got > 64 {
		t.Fatalf("box outline = %d, want dark", got)
	}
	if got := st.Frame.GrayAt(400, 900).Y; got != 255 {
		t.Fatalf("below box = %d, want 255", got)
	}
	if st.Count != 1 {
		t.Fatalf("Count = %d, want 1", st.Count)
	}
}

func TestRefreshWithBackground(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1600, 900))
	path := filepath.Join(t.TempDir(), "bg.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	werr := weather.ErrTimeout
	r := New(testOptions(t), noon, fakeWeather{text: weather.Unavailable, err: werr}, background.File{Path: path})
	if err := r.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	st, _ := r.Latest()
	if !st.HasBackground || st.BackgroundErr != nil {
		t.Fatalf("background = %v, %v want loaded", st.HasBackground, st.BackgroundErr)
	}
	if st.Placement.OffsetX != 542 || st.Placement.OffsetY != 0 {
		t.Fatalf("Placement = %+v, want offset 542,0", st.Placement)
	}
	if got := st.Frame.GrayAt(400, 900).Y; got != 0 {
		t.Fatalf("below box = %d, want background 0", got)
	}
	if !errors.Is(st.WeatherErr, weather.ErrTimeout) || st.Snapshot.Weather != weather.Unavailable {
		t.Fatalf("weather = %q, %v", st.Snapshot.Weather, st.WeatherErr)
	}
}

func TestRefreshInvalidSize(t *testing.T) {
	opts := testOptions(t)
	opts.Size = image.Point{0, 1060}
	r := New(opts, noon, nil, nil)
	if err := r.Refresh(context.Background()); !errors.Is(err, drawing.ErrInvalidDimensions) {
		t.Fatalf("Refresh err = %v, want ErrInvalidDimensions", err)
	}
}
