package forecast

import "time"

// US market holiday names, in the order their indicator columns appear
// in the design matrix.
var holidayNames = []string{
	"new_years_day",
	"mlk_day",
	"presidents_day",
	"good_friday",
	"memorial_day",
	"juneteenth",
	"independence_day",
	"labor_day",
	"thanksgiving",
	"christmas",
}

// holidayName returns the US market holiday falling on the given
// calendar day, if any
func holidayName(t time.Time) (string, bool) {
	y := t.Year()
	day := time.Date(y, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	switch {
	case day.Equal(date(y, time.January, 1)):
		return "new_years_day", true
	case day.Equal(nthWeekday(y, time.January, time.Monday, 3)):
		return "mlk_day", true
	case day.Equal(nthWeekday(y, time.February, time.Monday, 3)):
		return "presidents_day", true
	case day.Equal(easterSunday(y).AddDate(0, 0, -2)):
		return "good_friday", true
	case day.Equal(lastWeekday(y, time.May, time.Monday)):
		return "memorial_day", true
	case day.Equal(date(y, time.June, 19)):
		return "juneteenth", true
	case day.Equal(date(y, time.July, 4)):
		return "independence_day", true
	case day.Equal(nthWeekday(y, time.September, time.Monday, 1)):
		return "labor_day", true
	case day.Equal(nthWeekday(y, time.November, time.Thursday, 4)):
		return "thanksgiving", true
	case day.Equal(date(y, time.December, 25)):
		return "christmas", true
	}
	return "", false
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// nthWeekday returns the n-th given weekday of the month
func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	first := date(year, month, 1)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+(n-1)*7)
}

// lastWeekday returns the last given weekday of the month
func lastWeekday(year int, month time.Month, weekday time.Weekday) time.Time {
	last := date(year, month+1, 1).AddDate(0, 0, -1)
	offset := (int(last.Weekday()) - int(weekday) + 7) % 7
	return last.AddDate(0, 0, -offset)
}

// easterSunday computes Gregorian Easter via the anonymous computus
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return date(year, time.Month(month), day)
}
