package formula

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the HTML date input format.
const DateLayout = "2006-01-02"

// TimeLayout is the HTML time input format.
const TimeLayout = "15:04"

// ParseDate parses an HTML date input value.
func ParseDate(raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("formula: invalid date %q: %w", raw, err)
	}
	return t, nil
}

// ParseClock parses an HTML time input value into a duration since midnight.
func ParseClock(raw string) (time.Duration, error) {
	t, err := time.Parse(TimeLayout, raw)
	if err != nil {
		return 0, fmt.Errorf("formula: invalid time %q: %w", raw, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// Span is a calendar difference expressed in whole years, months and days.
type Span struct {
	Years  int
	Months int
	Days   int
}

// CalendarDiff returns the calendar span between from and to together with the
// total number of days. to must not be before from.
func CalendarDiff(from, to time.Time) (Span, int, error) {
	if to.Before(from) {
		return Span{}, 0, errors.New("formula: end date is before start date")
	}
	y1, m1, d1 := from.Date()
	y2, m2, d2 := to.Date()
	years := y2 - y1
	months := int(m2) - int(m1)
	days := d2 - d1
	if days < 0 {
		months--
		// days in the month preceding "to"
		days += time.Date(y2, m2, 0, 0, 0, 0, 0, time.UTC).Day()
	}
	if months < 0 {
		years--
		months += 12
	}
	total := int(to.Sub(from).Hours() / 24)
	return Span{Years: years, Months: months, Days: days}, total, nil
}

// ClockDiff returns the duration between two clock times, wrapping past
// midnight when end is earlier than start.
func ClockDiff(start, end time.Duration) time.Duration {
	if end < start {
		end += 24 * time.Hour
	}
	return end - start
}
