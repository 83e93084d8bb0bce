// Package config loads inkclock settings from defaults, an optional config
// file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/drummonds/inkclock/internal/drawing"
	"github.com/joho/godotenv"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/viper"
)

type Config struct {
	Listen   string
	Width    int
	Height   int
	Timezone string
	Interval time.Duration

	Background Background
	Weather    Weather
	Font       Font
	Sun        Sun
	PhotoPrism PhotoPrism
}

type Background struct {
	Source string // file or photoprism
	Path   string
	Fit    string
	Colour string
}

type Weather struct {
	URL      string
	Location string
	Format   string
	Timeout  time.Duration
}

type Font struct {
	Path string
	Size float64
}

type Sun struct {
	Lat, Lon float64
}

// PhotoPrism credentials, also read from PHOTOPRISM_DOMAIN, PHOTOPRISM_TOKEN and ALBUM_UID.
type PhotoPrism struct {
	Domain string
	Token  string
	Album  string
}

// SetDefaults registers every key so environment variables bind to them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("listen", ":8080")
	v.SetDefault("width", 800)
	v.SetDefault("height", 1060)
	v.SetDefault("timezone", "Asia/Shanghai")
	v.SetDefault("interval", time.Minute)
	v.SetDefault("background.source", "file")
	v.SetDefault("background.path", "bg.jpg")
	v.SetDefault("background.fit", string(drawing.FitCoverTop))
	v.SetDefault("background.colour", "#ffffff")
	v.SetDefault("weather.url", "http://wttr.in")
	v.SetDefault("weather.location", "Shanghai")
	v.SetDefault("weather.format", "%C+%t")
	v.SetDefault("weather.timeout", 2*time.Second)
	v.SetDefault("font.path", "")
	v.SetDefault("font.size", 80.0)
	v.SetDefault("sun.lat", 0.0)
	v.SetDefault("sun.lon", 0.0)
	v.SetDefault("photoprism.domain", "")
	v.SetDefault("photoprism.token", "")
	v.SetDefault("photoprism.album", "")
}

// New returns a viper instance set up for inkclock: defaults, INKCLOCK_
// environment variables and the PhotoPrism variables.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigName("inkclock")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/inkclock")
	v.SetEnvPrefix("INKCLOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("photoprism.domain", "PHOTOPRISM_DOMAIN")
	_ = v.BindEnv("photoprism.token", "PHOTOPRISM_TOKEN")
	_ = v.BindEnv("photoprism.album", "ALBUM_UID")
	return v
}

// Load reads .env (if present) and the config file (if present) into v and
// returns the validated configuration.
func Load(v *viper.Viper) (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Printf("loaded .env")
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, fmt.Errorf("config: %w", err)
		}
	} else {
		log.Printf("loaded config: %s", v.ConfigFileUsed())
	}
	return FromViper(v)
}

// FromViper builds and validates a Config from v without touching files.
func FromViper(v *viper.Viper) (*Config, error) {
	c := &Config{
		Listen:   v.GetString("listen"),
		Width:    v.GetInt("width"),
		Height:   v.GetInt("height"),
		Timezone: v.GetString("timezone"),
		Interval: v.GetDuration("interval"),
		Background: Background{
			Source: v.GetString("background.source"),
			Path:   v.GetString("background.path"),
			Fit:    v.GetString("background.fit"),
			Colour: v.GetString("background.colour"),
		},
		Weather: Weather{
			URL:      v.GetString("weather.url"),
			Location: v.GetString("weather.location"),
			Format:   v.GetString("weather.format"),
			Timeout:  v.GetDuration("weather.timeout"),
		},
		Font: Font{
			Path: v.GetString("font.path"),
			Size: v.GetFloat64("font.size"),
		},
		Sun: Sun{
			Lat: v.GetFloat64("sun.lat"),
			Lon: v.GetFloat64("sun.lon"),
		},
		PhotoPrism: PhotoPrism{
			Domain: v.GetString("photoprism.domain"),
			Token:  v.GetString("photoprism.token"),
			Album:  v.GetString("photoprism.album"),
		},
	}
	return c, c.Validate()
}

func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: canvas %dx%d", drawing.ErrInvalidDimensions, c.Width, c.Height))
	}
	if c.Interval < time.Second {
		errs = append(errs, fmt.Errorf("interval %v is shorter than 1s", c.Interval))
	}
	if c.Weather.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("weather timeout %v must be positive", c.Weather.Timeout))
	}
	if c.Font.Size <= 0 {
		errs = append(errs, fmt.Errorf("font size %v must be positive", c.Font.Size))
	}
	if _, err := drawing.ParseFitMode(c.Background.Fit); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.BackgroundColour(); err != nil {
		errs = append(errs, err)
	}
	switch c.Background.Source {
	case "file", "none":
	case "photoprism":
		if c.PhotoPrism.Domain == "" || c.PhotoPrism.Album == "" {
			errs = append(errs, errors.New("photoprism background needs PHOTOPRISM_DOMAIN and ALBUM_UID"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown background source %q", c.Background.Source))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// BackgroundColour parses the hex colour of the plain canvas to gray.
func (c *Config) BackgroundColour() (color.Gray, error) {
	col, err := colorful.Hex(c.Background.Colour)
	if err != nil {
		return color.Gray{}, fmt.Errorf("background colour %q: %w", c.Background.Colour, err)
	}
	return color.GrayModel.Convert(col).(color.Gray), nil
}

func (c *Config) FitMode() drawing.FitMode {
	m, err := drawing.ParseFitMode(c.Background.Fit)
	if err != nil {
		return drawing.FitCoverTop
	}
	return m
}
