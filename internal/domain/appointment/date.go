package appointment

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// CanonicalDate pins t to 12:00:00 UTC of its UTC calendar day. Slots are
// compared by exact equality on this value.
func CanonicalDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 12, 0, 0, 0, time.UTC)
}

// ParseDate accepts a plain calendar date or a timestamp and returns its
// canonical form.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return CanonicalDate(t), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}
