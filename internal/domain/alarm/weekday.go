package alarm

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Weekday tags a day an alarm recurs on. Monday is 0 and Sunday is 6;
// the integer value is what gets persisted.
type Weekday int

// Recurrence tags.
const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// ErrInvalidWeekday is returned for tags outside Monday..Sunday.
var ErrInvalidWeekday = errors.New("invalid weekday")

//nolint:gochecknoglobals // Lookup tables.
var (
	weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

	// Weekdays lists every tag in display order.
	Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
)

// Valid reports whether d is one of the seven known tags.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// String returns the English day name.
func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}

	return weekdayNames[d]
}

// Short returns the three-letter abbreviation, e.g. "Mon".
func (d Weekday) Short() string {
	return d.String()[:3]
}

// Std converts the tag into the standard library weekday.
func (d Weekday) Std() time.Weekday {
	return time.Weekday((int(d) + 1) % len(weekdayNames))
}

// FromStd converts a standard library weekday into a recurrence tag.
func FromStd(d time.Weekday) Weekday {
	return Weekday((int(d) + len(weekdayNames) - 1) % len(weekdayNames))
}

// ParseWeekday accepts full names or any prefix of at least three letters,
// case-insensitively ("mon", "Monday", "WED").
func ParseWeekday(s string) (Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) >= 3 {
		for i, name := range weekdayNames {
			if strings.HasPrefix(strings.ToLower(name), s) {
				return Weekday(i), nil
			}
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}

// ParseWeekdays parses a comma-separated list of day names.
// An empty string yields nil (no recurrence restriction).
func ParseWeekdays(s string) ([]Weekday, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var days []Weekday

	for part := range strings.SplitSeq(s, ",") {
		day, err := ParseWeekday(part)
		if err != nil {
			return nil, err
		}

		days = append(days, day)
	}

	return days, nil
}
