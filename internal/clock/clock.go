// Package clock turns an instant into the lines shown on the display.
package clock

import (
	"fmt"
	"time"
)

// Clock is the source of the current time.  Tests pass a fixed clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System reads the host clock.
var System Clock = systemClock{}

// Fixed always reports the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }

// Location of the observer, used for sunrise and sunset.  The zero value
// means unknown and suppresses the sun line.
type Location struct {
	Lat, Lon float64
}

func (l Location) Known() bool { return l.Lat != 0 || l.Lon != 0 }

// Snapshot holds the formatted text for one redraw.
type Snapshot struct {
	At      time.Time
	Time    string // 15:04
	Date    string // 2006-01-02 Monday
	Lunar   string
	Weather string
	Sun     string
}

// Lines returns the non-empty text lines in display order, time first.
func (s Snapshot) Lines() []string {
	lines := []string{s.Time, s.Date, s.Lunar, s.Weather}
	if s.Sun != "" {
		lines = append(lines, s.Sun)
	}
	return lines
}

// Read formats now in loc.  Weather is left empty for the caller to fill.
func Read(now time.Time, loc *time.Location, where Location) Snapshot {
	if loc != nil {
		now = now.In(loc)
	}
	s := Snapshot{
		At:    now,
		Time:  now.Format("15:04"),
		Date:  now.Format("2006-01-02 Monday"),
		Lunar: fmt.Sprintf("农历 %s", Lunar(now).Text),
	}
	if where.Known() {
		s.Sun = SunLine(now, where)
	}
	return s
}
