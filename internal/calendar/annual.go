package calendar

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"org-calendar-api/internal/model"
)

const (
	birthdayColor    = "#E91E63"
	anniversaryColor = "#FFC107"
	allDayLabel      = "All Day"
)

// ProjectMarkers places every employee's birthday and joining anniversary
// on the window's year. Only the stored day and month are used; the year
// the date was recorded in is irrelevant. A 29 February marker lands on
// 28 February in common years. Markers whose projected date falls outside
// the window are dropped. Birthdays come before anniversaries.
func ProjectMarkers(employees []model.EmployeeMarkers, w Window) []DayEntry {
	var birthdays, anniversaries []DayEntry
	for _, e := range employees {
		if date, ok := project(e.DOBDay, e.DOBMonth, w); ok {
			birthdays = append(birthdays, DayEntry{Date: date, Entry: MarkerEntry{
				Type:        TypeBirthday,
				Title:       fmt.Sprintf("🎂 Birthday: %s", e.Name),
				Color:       birthdayColor,
				Time:        allDayLabel,
				StartAllDay: true,
				EmployeeID:  e.ID,
			}})
		}
		if date, ok := project(e.JoiningDay, e.JoiningMonth, w); ok {
			anniversaries = append(anniversaries, DayEntry{Date: date, Entry: MarkerEntry{
				Type:        TypeAnniversary,
				Title:       fmt.Sprintf("🎉 Work Anniversary: %s", e.Name),
				Color:       anniversaryColor,
				Time:        allDayLabel,
				StartAllDay: true,
				EmployeeID:  e.ID,
			}})
		}
	}
	return append(birthdays, anniversaries...)
}

func project(day, month *int, w Window) (string, bool) {
	if day == nil || month == nil {
		return "", false
	}
	if *day < 1 || *day > 31 || *month < 1 || *month > 12 {
		return "", false
	}
	if w.Month != 0 && *month != w.Month {
		return "", false
	}

	d := *day
	if *month == 2 && d == 29 && !leapYear(w.Year) {
		d = 28
	}

	start, end := w.Bounds()
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:       rrule.YEARLY,
		Dtstart:    start,
		Bymonth:    []int{*month},
		Bymonthday: []int{d},
	})
	if err != nil {
		return "", false
	}
	occ := r.Between(start, end, true)
	if len(occ) == 0 {
		return "", false
	}
	return FormatDate(occ[0]), true
}

func leapYear(y int) bool {
	return time.Date(y, time.February, 29, 0, 0, 0, 0, time.UTC).Day() == 29
}
