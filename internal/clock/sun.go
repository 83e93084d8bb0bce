package clock

import (
	"fmt"
	"time"

	sunrise "github.com/nathan-osman/go-sunrise"
)

// SunLine reports today's sunrise and sunset at where, in now's location.
// Polar day or night yields an empty line.
func SunLine(now time.Time, where Location) string {
	rise, set := sunrise.SunriseSunset(where.Lat, where.Lon, now.Year(), now.Month(), now.Day())
	if rise.IsZero() || set.IsZero() {
		return ""
	}
	loc := now.Location()
	return fmt.Sprintf("日出 %s  日落 %s", rise.In(loc).Format("15:04"), set.In(loc).Format("15:04"))
}
