// Package dateutil provides calendar arithmetic used to build chart periods.
// Every function returns a new value and keeps the location of its input.
package dateutil

import (
	"fmt"
	"math"
	"time"
)

// ISODate is the layout used for day keys and query parameters.
const ISODate = "2006-01-02"

const lastMilli = 999 * int(time.Millisecond)

// StartOfDay returns the first instant of t's calendar day: 00:00, or the
// end of the DST gap in zones that spring forward at midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return onDay(y, m, d, 0, 0, 0, 0, t.Location())
}

// onDay is time.Date that never leaves the requested calendar day. A wall
// clock inside a DST gap can normalise to the previous day; it is moved
// to the first instant after the gap instead.
func onDay(y int, m time.Month, d, hour, minute, sec, nsec int, loc *time.Location) time.Time {
	y, m, d = time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Date()
	t := time.Date(y, m, d, hour, minute, sec, nsec, loc)
	if ty, tm, td := t.Date(); ty == y && tm == m && td == d {
		return t
	}
	if _, end := t.ZoneBounds(); !end.IsZero() {
		if ey, em, ed := end.Date(); ey == y && em == m && ed == d {
			return end
		}
	}
	return t
}

// civilDay is the UTC midnight of t's calendar day in t's location.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns t at 23:59:59.999.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, lastMilli, t.Location())
}

// StartOfWeek returns the Sunday of t's week at 00:00.
func StartOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	return onDay(y, m, d-int(t.Weekday()), 0, 0, 0, 0, t.Location())
}

// EndOfWeek returns the Saturday of t's week at 23:59:59.999.
func EndOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+(6-int(t.Weekday())), 23, 59, 59, lastMilli, t.Location())
}

// StartOfMonth returns the first day of t's month at 00:00.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return onDay(y, m, 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last day of t's month at 23:59:59.999.
func EndOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 0, 23, 59, 59, lastMilli, t.Location())
}

// AddDays moves t by n calendar days keeping the wall-clock time. The
// result always lies on the target calendar day.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return onDay(y, m, d+n, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// SubtractDays moves t back by n calendar days.
func SubtractDays(t time.Time, n int) time.Time {
	return AddDays(t, -n)
}

// AddMonths moves t by n calendar months. When the day of month does not
// exist in the target month it is clamped to that month's last day, so
// AddMonths(Jan 31, 1) is Feb 28 (or 29) and never rolls into March.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := DaysInMonth(target.Year(), target.Month()); d > last {
		d = last
	}
	return onDay(target.Year(), target.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// SubtractMonths moves t back by n calendar months, with the same clamping as AddMonths.
func SubtractMonths(t time.Time, n int) time.Time {
	return AddMonths(t, -n)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekNumber returns the week of the year: the date is moved to the Thursday
// of its Monday-based week and weeks are counted from January 1st of that
// Thursday's year. Week 1 is the week that contains the first Thursday.
func WeekNumber(t time.Time) int {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	dayNum := int(d.Weekday())
	if dayNum == 0 {
		dayNum = 7
	}
	d = d.AddDate(0, 0, 4-dayNum)
	yearStart := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := d.Sub(yearStart).Hours() / 24
	return int(math.Ceil((days + 1) / 7))
}

// IsSameDay reports whether a and b fall on the same calendar day.
func IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsInRange reports whether start <= t <= end.
func IsInRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// ToISODate formats t as YYYY-MM-DD in t's own location.
func ToISODate(t time.Time) string {
	return t.Format(ISODate)
}

// FromISODate parses a YYYY-MM-DD string as the start of that day in loc.
func FromISODate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.Parse(ISODate, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	y, m, d := t.Date()
	return onDay(y, m, d, 0, 0, 0, 0, loc), nil
}
