// utils/dates.go
package utils

import (
	"errors"
	"time"
)

// BookingTimeFormat is the textual format every externally supplied
// timestamp uses: DD/MM/YYYY HH:MM.
const BookingTimeFormat = "02/01/2006 15:04"

var (
	ErrBadTimeFormat  = errors.New("invalid date, expected DD/MM/YYYY HH:MM")
	ErrBadTimeMinutes = errors.New("times must fall on the hour (HH:00) or half hour (HH:30)")
)

// ParseBookingTime parses a DD/MM/YYYY HH:MM timestamp.
func ParseBookingTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(BookingTimeFormat, s, time.Local)
	if err != nil {
		return time.Time{}, ErrBadTimeFormat
	}
	return t, nil
}

// ParseSlotTime parses a booking start/end timestamp and enforces the
// half-hour slot granularity.
func ParseSlotTime(s string) (time.Time, error) {
	t, err := ParseBookingTime(s)
	if err != nil {
		return time.Time{}, err
	}
	if m := t.Minute(); m != 0 && m != 30 {
		return time.Time{}, ErrBadTimeMinutes
	}
	return t, nil
}

func FormatBookingTime(t time.Time) string {
	return t.Format(BookingTimeFormat)
}

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
