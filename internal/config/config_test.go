package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/drummonds/inkclock/internal/drawing"
	"github.com/spf13/viper"
)

func defaults() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestDefaults(t *testing.T) {
	c, err := FromViper(defaults())
	if err != nil {
		t.Fatal(err)
	}
	if c.Width != 800 || c.Height != 1060 {
		t.Fatalf(`canvas = %dx%d, want 800x1060`, c.Width, c.Height)
	}
	if c.Interval != time.Minute || c.Weather.Timeout != 2*time.Second {
		t.Fatalf(`interval %v timeout %v`, c.Interval, c.Weather.Timeout)
	}
	if c.Weather.Format != "%C+%t" || c.Weather.Location != "Shanghai" {
		t.Fatalf(`weather = %+v`, c.Weather)
	}
	if c.FitMode() != drawing.FitCoverTop {
		t.Fatalf(`fit = %q, want cover`, c.FitMode())
	}
	g, err := c.BackgroundColour()
	if err != nil || g.Y != 255 {
		t.Fatalf(`BackgroundColour = %v, %v want white`, g, err)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(v *viper.Viper){
		"zero width":   func(v *viper.Viper) { v.Set("width", 0) },
		"fast refresh": func(v *viper.Viper) { v.Set("interval", "10ms") },
		"fit":          func(v *viper.Viper) { v.Set("background.fit", "stretch") },
		"colour":       func(v *viper.Viper) { v.Set("background.colour", "white") },
		"timezone":     func(v *viper.Viper) { v.Set("timezone", "Mars/Olympus") },
		"source":       func(v *viper.Viper) { v.Set("background.source", "ftp") },
		"photoprism":   func(v *viper.Viper) { v.Set("background.source", "photoprism") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			v := defaults()
			mutate(v)
			if _, err := FromViper(v); err == nil {
				t.Fatal("FromViper want error")
			}
		})
	}
}

func TestInvalidDimensionsIsClassified(t *testing.T) {
	v := defaults()
	v.Set("height", -1)
	_, err := FromViper(v)
	if !errors.Is(err, drawing.ErrInvalidDimensions) {
		t.Fatalf(`FromViper err = %v, want ErrInvalidDimensions`, err)
	}
}

func TestEnvironment(t *testing.T) {
	t.Setenv("INKCLOCK_WEATHER_LOCATION", "Beijing")
	t.Setenv("INKCLOCK_BACKGROUND_FIT", "cover-centered")
	t.Setenv("PHOTOPRISM_DOMAIN", "http://prism.local")
	t.Setenv("ALBUM_UID", "aq1")
	c, err := FromViper(New())
	if err != nil {
		t.Fatal(err)
	}
	if c.Weather.Location != "Beijing" || c.FitMode() != drawing.FitCoverCentered {
		t.Fatalf(`env not applied: %+v`, c)
	}
	if c.PhotoPrism.Domain != "http://prism.local" || c.PhotoPrism.Album != "aq1" {
		t.Fatalf(`photoprism = %+v`, c.PhotoPrism)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "inkclock.yaml")
	body := "width: 600\nheight: 800\nweather:\n  location: Hangzhou\n"
	if err := os.WriteFile(file, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	v := defaults()
	v.SetConfigFile(file)
	c, err := Load(v)
	if err != nil {
		t.Fatal(err)
	}
	if c.Width != 600 || c.Height != 800 || c.Weather.Location != "Hangzhou" {
		t.Fatalf(`config file not applied: %+v`, c)
	}
}
