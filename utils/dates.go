package utils

import (
	"time"

	"github.com/jinzhu/now"
)

// DayWindow returns the [start, end] of the local calendar day named by date (YYYY-MM-DD).
// An empty date means today.
func DayWindow(date string) (time.Time, time.Time, error) {
	if date == "" {
		return now.BeginningOfDay(), now.EndOfDay(), nil
	}

	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	day := now.With(t)
	return day.BeginningOfDay(), day.EndOfDay(), nil
}
