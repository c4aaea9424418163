package alarm

import (
	"time"

	"github.com/teambition/rrule-go"
)

// rruleDays maps recurrence tags to rrule weekdays; both count from Monday.
//
//nolint:gochecknoglobals // Lookup table.
var rruleDays = [...]rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU}

// Rule returns the recurrence of a as a daily rule anchored on the day of
// from. Nil recurring days ring every day; an empty set never rings.
func (a Alarm) Rule(from time.Time) (*rrule.RRule, bool, error) {
	if a.RecurringDays != nil && len(a.RecurringDays) == 0 {
		return nil, false, nil
	}

	option := rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: a.Time.On(from),
	}

	for _, day := range a.RecurringDays {
		if !day.Valid() {
			return nil, false, ErrInvalidWeekday
		}

		option.Byweekday = append(option.Byweekday, rruleDays[day])
	}

	rule, err := rrule.NewRRule(option)
	if err != nil {
		return nil, false, err
	}

	return rule, true, nil
}

// NextOccurrence returns the first time strictly after now at which a would
// ring, ignoring the enabled flag. It is used for display only.
func (a Alarm) NextOccurrence(now time.Time) (time.Time, bool) {
	rule, ok, err := a.Rule(now)
	if err != nil || !ok {
		return time.Time{}, false
	}

	next := rule.After(now, false)
	if next.IsZero() {
		return time.Time{}, false
	}

	return next, true
}
