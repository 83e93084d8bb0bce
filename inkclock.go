// Program inkclock serves a clock page for an e-reader browser: time, date,
// lunar date and weather in a framed box over a background picture,
// redrawn every minute.
package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/drummonds/inkclock/internal/background"
	"github.com/drummonds/inkclock/internal/clock"
	"github.com/drummonds/inkclock/internal/config"
	"github.com/drummonds/inkclock/internal/display"
	"github.com/drummonds/inkclock/internal/panel"
	"github.com/drummonds/inkclock/internal/refresh"
	"github.com/drummonds/inkclock/internal/weather"
	"github.com/drummonds/inkclock/internal/web"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "V0.1.0 2026-10-19"

// newRenderer wires the configured sources into a renderer.
func newRenderer(cfg *config.Config) (*display.Renderer, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	bgColour, err := cfg.BackgroundColour()
	if err != nil {
		return nil, err
	}
	faces, err := panel.LoadFaces(cfg.Font.Path, cfg.Font.Size)
	if err != nil {
		return nil, err
	}

	var src background.Source
	switch cfg.Background.Source {
	case "photoprism":
		src, err = background.NewPhotoPrism(cfg.PhotoPrism.Domain, cfg.PhotoPrism.Token, cfg.PhotoPrism.Album)
		if err != nil {
			return nil, err
		}
	case "none":
		src = background.None{}
	default:
		src = background.File{Path: cfg.Background.Path}
	}

	w := weather.NewClient(cfg.Weather.URL, cfg.Weather.Location, cfg.Weather.Format, cfg.Weather.Timeout)
	opts := display.Options{
		Size:       image.Point{cfg.Width, cfg.Height},
		Location:   loc,
		Where:      clock.Location{Lat: cfg.Sun.Lat, Lon: cfg.Sun.Lon},
		Fit:        cfg.FitMode(),
		Background: bgColour,
		Faces:      faces,
	}
	return display.New(opts, clock.System, w, src), nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}
	sched := refresh.New(cfg.Interval, r.Refresh)
	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer sched.Stop()
	return web.Serve(ctx, cfg.Listen, web.NewHandler(r, cfg.Interval))
}

func renderOnce(ctx context.Context, cfg *config.Config, out string) error {
	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}
	if err := r.Refresh(ctx); err != nil {
		return err
	}
	state, _ := r.Latest()
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, state.Frame); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", out, err)
	}
	log.Printf("wrote %s", out)
	return f.Close()
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var configFile string
	load := func() (*config.Config, error) {
		if configFile != "" {
			v.SetConfigFile(configFile)
		}
		return config.Load(v)
	}

	root := &cobra.Command{
		Use:           "inkclock",
		Short:         "Clock, lunar date and weather page for e-readers",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./inkclock.yaml)")
	root.PersistentFlags().String("background", "", "background picture path")
	root.PersistentFlags().String("fit", "", "background fit: cover, cover-centered or contain")
	root.Flags().String("listen", "", "address to serve on")
	_ = v.BindPFlag("background.path", root.PersistentFlags().Lookup("background"))
	_ = v.BindPFlag("background.fit", root.PersistentFlags().Lookup("fit"))
	_ = v.BindPFlag("listen", root.Flags().Lookup("listen"))

	var out string
	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render the clock once to a PNG file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return renderOnce(cmd.Context(), cfg, out)
		},
	}
	renderCmd.Flags().StringVarP(&out, "out", "o", "clock.png", "output file")
	root.AddCommand(renderCmd)
	return root
}

func main() {
	fmt.Printf("inkclock %s\n", version)
	ctx := context.Background()

	// Cancel the context instead of exiting the program:
	ctx, canc := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer canc()
	if err := newRootCmd(config.New()).ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}
