package calendar

import (
	"fmt"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// Window is an inclusive range of calendar dates.
type Window struct {
	Year  int
	Month int // 0 for a full-year window
	Start string
	End   string
}

// ResolveWindow turns a year and optional month into an inclusive window.
func ResolveWindow(year, month string) (Window, error) {
	if !digits(year, 4) {
		return Window{}, invalid("year must be a 4-digit number")
	}
	y, _ := strconv.Atoi(year)

	if month == "" {
		return Window{
			Year:  y,
			Start: fmt.Sprintf("%04d-01-01", y),
			End:   fmt.Sprintf("%04d-12-31", y),
		}, nil
	}

	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return Window{}, invalid("month must be between 1 and 12")
	}
	first := time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return Window{
		Year:  y,
		Month: m,
		Start: FormatDate(first),
		End:   FormatDate(last),
	}, nil
}

// DayWindow is a one-day window, used by jobs that look at a single date.
func DayWindow(t time.Time) Window {
	d := FormatDate(t)
	return Window{Year: t.Year(), Month: int(t.Month()), Start: d, End: d}
}

func (w Window) Contains(date string) bool {
	return date >= w.Start && date <= w.End
}

// Bounds returns the window as UTC midnight times.
func (w Window) Bounds() (time.Time, time.Time) {
	s, _ := ParseDate(w.Start)
	e, _ := ParseDate(w.End)
	return s, e
}

func (w Window) String() string { return w.Start + ".." + w.End }

// ParseDate parses a zero-padded YYYY-MM-DD date. Anything that would not
// compare correctly as a string is rejected.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	if FormatDate(t) != s {
		return time.Time{}, fmt.Errorf("parse date %q: not in YYYY-MM-DD form", s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func digits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
