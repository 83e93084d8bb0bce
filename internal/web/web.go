package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"image"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/drummonds/inkclock/internal/clock"
	"github.com/drummonds/inkclock/internal/display"
)

// content is our static web server content.
//
//go:embed template
var content embed.FS

var (
	clockTmpl = template.Must(template.ParseFS(content, "template/base.html", "template/clock.html"))
	diagTmpl  = template.Must(template.ParseFS(content, "template/base.html", "template/diag.html"))
)

// Frames is where the handlers read the latest render from.
type Frames interface {
	Latest() (display.State, bool)
}

type Page struct {
	Title      string
	Refresh    int // seconds, 0 for none
	Snapshot   clock.Snapshot
	Background bool
	Count      int
}

type DiagPage struct {
	Title   string
	Refresh int
	State   *display.State
	Canvas  string
	Host    []string
}

// Handler serves the clock page, its images and a diagnostics page.
type Handler struct {
	frames  Frames
	refresh time.Duration
	mux     *http.ServeMux
}

// NewHandler makes the pages ask the browser to reload every refresh.
func NewHandler(frames Frames, refresh time.Duration) *Handler {
	h := &Handler{frames: frames, refresh: refresh, mux: http.NewServeMux()}
	h.mux.HandleFunc("/", h.clockPage)
	h.mux.HandleFunc("/clock.png", h.pngHandler(func(s display.State) *image.Gray { return s.Frame }))
	h.mux.HandleFunc("/background.png", h.pngHandler(func(s display.State) *image.Gray { return s.Background }))
	h.mux.HandleFunc("/diag", h.diagPage)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) refreshSeconds() int {
	s := int(h.refresh / time.Second)
	if s < 1 {
		return 0
	}
	return s
}

func render(w http.ResponseWriter, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	buf.WriteTo(w)
}

func (h *Handler) clockPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	state, ok := h.frames.Latest()
	if !ok {
		w.Header().Set("Retry-After", "5")
		http.Error(w, "clock not rendered yet", http.StatusServiceUnavailable)
		return
	}
	render(w, clockTmpl, &Page{
		Title:      "Kindle Clock",
		Refresh:    h.refreshSeconds(),
		Snapshot:   state.Snapshot,
		Background: state.HasBackground,
		Count:      state.Count,
	})
}

func (h *Handler) pngHandler(pick func(display.State) *image.Gray) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, ok := h.frames.Latest()
		if !ok {
			w.Header().Set("Retry-After", "5")
			http.Error(w, "clock not rendered yet", http.StatusServiceUnavailable)
			return
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, pick(state)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Last-Modified", state.RenderedAt.UTC().Format(http.TimeFormat))
		buf.WriteTo(w)
	}
}

func (h *Handler) diagPage(w http.ResponseWriter, r *http.Request) {
	page := &DiagPage{Title: "inkclock diag", Host: hostInfo()}
	if state, ok := h.frames.Latest(); ok {
		page.State = &state
		page.Canvas = fmt.Sprint(state.Frame.Bounds().Size())
	}
	render(w, diagTmpl, page)
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Printf("Starting web server on %s", addr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
