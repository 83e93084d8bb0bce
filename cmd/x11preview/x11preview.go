// x11preview shows the clock frame in an X11 window at a reduced size, so the
// layout can be checked on a desktop without an e-reader.  It redraws every
// refresh interval and on expose.
package main

import (
	"context"
	"flag"
	"image"
	"image/color"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/drummonds/inkclock/internal/background"
	"github.com/drummonds/inkclock/internal/clock"
	"github.com/drummonds/inkclock/internal/display"
	"github.com/drummonds/inkclock/internal/drawing"
	"github.com/drummonds/inkclock/internal/panel"
	"github.com/drummonds/inkclock/internal/refresh"
	"github.com/drummonds/inkclock/internal/weather"
	"golang.org/x/image/draw"
)

const (
	canvasWidth  = 800
	canvasHeight = 1060
	divider      = 2
	windowWidth  = canvasWidth / divider
	windowHeight = canvasHeight / divider
	rowsPerPut   = 64 // keeps each PutImage under the core request limit
)

// putFrame scales the gray frame to the window and sends it as a ZPixmap
// in 32 bit BGRX, the usual layout of 24 bit TrueColor visuals.
func putFrame(X *xgb.Conn, wid xproto.Window, gc xproto.Gcontext, depth byte, frame *image.Gray) {
	win := image.NewGray(image.Rect(0, 0, windowWidth, windowHeight))
	draw.ApproxBiLinear.Scale(win, win.Bounds(), frame, frame.Bounds(), draw.Src, nil)

	for y0 := 0; y0 < windowHeight; y0 += rowsPerPut {
		y1 := min(y0+rowsPerPut, windowHeight)
		data := make([]byte, 0, windowWidth*(y1-y0)*4)
		for y := y0; y < y1; y++ {
			row := win.Pix[win.PixOffset(0, y) : win.PixOffset(0, y)+windowWidth]
			for _, v := range row {
				data = append(data, v, v, v, 0)
			}
		}
		xproto.PutImage(X, xproto.ImageFormatZPixmap, xproto.Drawable(wid), gc,
			windowWidth, uint16(y1-y0), 0, int16(y0), 0, depth, data)
	}
}

func NewX(width, height int) (*xgb.Conn, xproto.Window, byte, xproto.Atom, xproto.Atom, error) {
	X, err := xgb.NewConn()
	if err != nil {
		return nil, 0, 0, 0, 0, err
	}

	screen := xproto.Setup(X).DefaultScreen(X)
	wid, _ := xproto.NewWindowId(X)
	xproto.CreateWindow(X, screen.RootDepth, wid, screen.Root,
		0, 0, uint16(width), uint16(height), 0,
		xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{
			0xffffffff,
			xproto.EventMaskExposure | xproto.EventMaskKeyPress | xproto.EventMaskStructureNotify,
		})

	// Set WM_PROTOCOLS to handle window close
	atomWmDeleteWindow, _ := xproto.InternAtom(X, false, uint16(len("WM_DELETE_WINDOW")), "WM_DELETE_WINDOW").Reply()
	atomWmProtocols, _ := xproto.InternAtom(X, false, uint16(len("WM_PROTOCOLS")), "WM_PROTOCOLS").Reply()
	xproto.ChangeProperty(X, xproto.PropModeReplace, wid, atomWmProtocols.Atom, xproto.AtomAtom, 32, 1, []byte{byte(atomWmDeleteWindow.Atom), 0, 0, 0})

	xproto.MapWindow(X, wid)
	return X, wid, screen.RootDepth, atomWmDeleteWindow.Atom, atomWmProtocols.Atom, nil
}

func main() {
	bgPath := flag.String("background", "bg.jpg", "background picture")
	fit := flag.String("fit", "cover", "cover, cover-centered or contain")
	location := flag.String("weather", "Shanghai", "wttr.in location")
	interval := flag.Duration("interval", time.Minute, "redraw interval")
	flag.Parse()

	mode, err := drawing.ParseFitMode(*fit)
	if err != nil {
		log.Fatal(err)
	}
	faces, err := panel.LoadFaces("", 80)
	if err != nil {
		log.Fatal(err)
	}
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		loc = time.Local
	}
	r := display.New(display.Options{
		Size:       image.Point{canvasWidth, canvasHeight},
		Location:   loc,
		Fit:        mode,
		Background: color.Gray{Y: 255},
		Faces:      faces,
	}, clock.System, weather.NewClient("http://wttr.in", *location, "%C+%t", 2*time.Second), background.File{Path: *bgPath})

	X, wid, depth, atomWmDeleteWindow, atomWmProtocols, err := NewX(windowWidth, windowHeight)
	if err != nil {
		log.Fatal(err)
	}
	defer X.Close()
	gc, _ := xproto.NewGcontextId(X)
	xproto.CreateGC(X, gc, xproto.Drawable(wid), 0, nil)

	ctx, canc := signal.NotifyContext(context.Background(), os.Interrupt)
	defer canc()

	redraw := make(chan struct{}, 1)
	sched := refresh.New(*interval, func(ctx context.Context) error {
		if err := r.Refresh(ctx); err != nil {
			return err
		}
		select {
		case redraw <- struct{}{}:
		default:
		}
		return nil
	})
	if err := sched.Start(ctx); err != nil {
		log.Fatal(err)
	}
	defer sched.Stop()

	events := make(chan xgb.Event)
	go func() {
		for {
			ev, err := X.WaitForEvent()
			if ev == nil && err == nil {
				close(events)
				return
			}
			if err != nil {
				log.Println(err)
				continue
			}
			events <- ev
		}
	}()

	show := func() {
		if state, ok := r.Latest(); ok {
			putFrame(X, wid, gc, depth, state.Frame)
		}
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-redraw:
			show()
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch e := ev.(type) {
			case xproto.ExposeEvent:
				show()
			case xproto.ClientMessageEvent:
				if e.Type == atomWmProtocols && e.Data.Data32[0] == uint32(atomWmDeleteWindow) {
					return
				}
			case xproto.KeyPressEvent:
				return
			}
		}
	}
}
