// Package calendar normalizes timestamps into day keys: timezone-resolved
// calendar dates in YYYY-MM-DD form with no time component. Every component
// above this one passes day keys around, never raw timestamps, so timezone
// drift is handled in exactly one place.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/tallyhq/tally/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// DayOf converts a timestamp to its day key in the given location.
func DayOf(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(constants.DateFormat)
}

// Today returns today's day key in the given location. "Today" is determined
// by the user's configured timezone, not the system timezone.
func Today(loc *time.Location) string {
	return time.Now().In(loc).Format(constants.DateFormat)
}

// Parse parses a day key. The returned time is midnight UTC, suitable for
// date arithmetic only.
func Parse(day string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q (expected YYYY-MM-DD): %w", day, err)
	}
	return t, nil
}

// IsValid reports whether day is a well-formed day key.
func IsValid(day string) bool {
	_, err := Parse(day)
	return err == nil
}

// AddDays returns the day key n days after day (n may be negative).
func AddDays(day string, n int) (string, error) {
	t, err := Parse(day)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat), nil
}

// Compare orders two day keys: -1 if a is before b, 0 if same, 1 if after.
// Day keys are zero-padded ISO dates, so lexicographic order is date order.
func Compare(a, b string) int {
	return strings.Compare(a, b)
}

// WeekdayOf returns the weekday of a day key.
func WeekdayOf(day string) (time.Weekday, error) {
	t, err := Parse(day)
	if err != nil {
		return time.Sunday, err
	}
	return t.Weekday(), nil
}

// DaysBetween returns the number of calendar days from a to b (negative when
// b is before a).
func DaysBetween(a, b string) (int, error) {
	ta, err := Parse(a)
	if err != nil {
		return 0, err
	}
	tb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return int(tb.Sub(ta).Hours() / 24), nil
}
