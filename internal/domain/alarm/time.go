package alarm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	hoursPerDay       = 24
	minutesPerHour    = 60
	secondsPerMinute  = 60
	shortLayoutLength = 2
	longLayoutLength  = 3
)

// ErrInvalidTime is returned when a time-of-day part is out of range or malformed.
var ErrInvalidTime = errors.New("invalid time of day")

// TimeOfDay is a wall-clock time without date or timezone.
// The zero value is midnight.
type TimeOfDay struct {
	hour   int
	minute int
	second int
}

// NewTimeOfDay builds a time of day from hour (0-23) and minute (0-59).
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	return NewTimeOfDayWithSeconds(hour, minute, 0)
}

// NewTimeOfDayWithSeconds builds a time of day with second precision.
func NewTimeOfDayWithSeconds(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour >= hoursPerDay {
		return TimeOfDay{}, fmt.Errorf("%w: hour %d out of range 0-23", ErrInvalidTime, hour)
	}

	if minute < 0 || minute >= minutesPerHour {
		return TimeOfDay{}, fmt.Errorf("%w: minute %d out of range 0-59", ErrInvalidTime, minute)
	}

	if second < 0 || second >= secondsPerMinute {
		return TimeOfDay{}, fmt.Errorf("%w: second %d out of range 0-59", ErrInvalidTime, second)
	}

	return TimeOfDay{
		hour:   hour,
		minute: minute,
		second: second,
	}, nil
}

// MustTimeOfDay is like NewTimeOfDay but panics on invalid input.
// Intended for constants and tests.
func MustTimeOfDay(hour, minute int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute)
	if err != nil {
		panic(err)
	}

	return t
}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != shortLayoutLength && len(parts) != longLayoutLength {
		return TimeOfDay{}, fmt.Errorf("%w: %q is not in HH:MM[:SS] format", ErrInvalidTime, s)
	}

	values := make([]int, longLayoutLength)

	for i, part := range parts {
		if part == "" || len(part) > 2 || strings.IndexFunc(part, notDigit) >= 0 {
			return TimeOfDay{}, fmt.Errorf("%w: %q is not in HH:MM[:SS] format", ErrInvalidTime, s)
		}

		value, err := strconv.Atoi(part)
		if err != nil {
			return TimeOfDay{}, fmt.Errorf("%w: %q: %w", ErrInvalidTime, s, err)
		}

		values[i] = value
	}

	return NewTimeOfDayWithSeconds(values[0], values[1], values[2])
}

func notDigit(r rune) bool {
	return r < '0' || r > '9'
}

// Hour returns the hour of day (0-23).
func (t TimeOfDay) Hour() int { return t.hour }

// Minute returns the minute of hour (0-59).
func (t TimeOfDay) Minute() int { return t.minute }

// Second returns the second of minute (0-59).
func (t TimeOfDay) Second() int { return t.second }

// String renders "HH:MM", or "HH:MM:SS" when seconds are set, so that
// ParseTimeOfDay(t.String()) == t.
func (t TimeOfDay) String() string {
	if t.second != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", t.hour, t.minute, t.second)
	}

	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

// Kitchen renders the short display form used in alarm lists, e.g. "7:05AM".
func (t TimeOfDay) Kitchen() string {
	return t.On(time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC)).Format(time.Kitchen)
}

// On places the time of day on the calendar date of d, in d's location.
func (t TimeOfDay) On(d time.Time) time.Time {
	year, month, day := d.Date()

	return time.Date(year, month, day, t.hour, t.minute, t.second, 0, d.Location())
}

// Before reports whether t is earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.seconds() < other.seconds()
}

func (t TimeOfDay) seconds() int {
	return (t.hour*minutesPerHour+t.minute)*secondsPerMinute + t.second
}

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(data []byte) error {
	parsed, err := ParseTimeOfDay(string(data))
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}
