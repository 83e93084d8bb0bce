package clock

import (
	"fmt"
	"time"

	"github.com/6tail/lunar-go/calendar"
)

// LunarDate is a date in the Chinese lunisolar calendar.
type LunarDate struct {
	Year  int
	Month int // 1-12
	Day   int
	Leap  bool // month is the intercalary repeat
	Text  string
}

// Lunar converts the calendar day of t, in t's own location.
func Lunar(t time.Time) LunarDate {
	l := calendar.NewLunarFromDate(t)
	month := l.GetMonth()
	d := LunarDate{
		Year:  l.GetYear(),
		Month: month,
		Day:   l.GetDay(),
	}
	if month < 0 {
		d.Month = -month
		d.Leap = true
	}
	d.Text = fmt.Sprintf("%s年%s月%s %s年 (%s年)",
		l.GetYearInChinese(), l.GetMonthInChinese(), l.GetDayInChinese(),
		l.GetYearInGanZhi(), l.GetYearShengXiao())
	return d
}
