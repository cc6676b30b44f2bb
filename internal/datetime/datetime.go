// Package datetime converts between the wall-clock values typed into a
// date-time input and the absolute instants exchanged with the backend.
package datetime

import (
	"errors"
	"strings"
	"time"
)

const (
	// InputLayout is the minute precision value of a date-time input.
	InputLayout = "2006-01-02T15:04"

	inputLayoutSeconds = "2006-01-02T15:04:05"

	// DisplayLayout renders a scheduled time in the message table.
	DisplayLayout = "Jan 2, 2006, 03:04 PM"
)

var ErrInvalidInput = errors.New("invalid date-time input")

// ParseInput reads a date-time input value as wall-clock time in loc.
func ParseInput(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{InputLayout, inputLayoutSeconds} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, ErrInvalidInput
}

// ToInput renders an absolute instant as the wall-clock input value in loc.
func ToInput(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(InputLayout)
}

// MinInput is the earliest value offered by the scheduled time picker.
func MinInput(now time.Time, loc *time.Location) string {
	return ToInput(now, loc)
}

func Display(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DisplayLayout)
}
