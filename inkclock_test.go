package main

import (
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/drummonds/inkclock/internal/config"
	"github.com/spf13/viper"
)

func testConfig(t *testing.T, weatherURL string) *config.Config {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	v.Set("background.path", filepath.Join(t.TempDir(), "missing.jpg"))
	v.Set("weather.url", weatherURL)
	v.Set("width", 300)
	v.Set("height", 600)
	cfg, err := config.FromViper(v)
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestRenderOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Clear +3°C"))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "clock.png")
	if err := renderOnce(context.Background(), testConfig(t, srv.URL), out); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Size() != (image.Point{300, 600}) {
		t.Fatalf(`clock.png size = %v, want 300x600`, img.Bounds().Size())
	}
}

func TestNewRendererBadFont(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.Font.Path = filepath.Join(t.TempDir(), "nofont.ttf")
	if _, err := newRenderer(cfg); err == nil {
		t.Fatal("newRenderer want error for missing font")
	}
}
