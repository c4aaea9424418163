package editor

import domain "github.com/oshokin/alarm-manager/internal/domain/alarm"

// Changes describes a partial edit. Nil fields are left as they are.
type Changes struct {
	// Time replaces the time of day when set.
	Time *domain.TimeOfDay
	// Enabled replaces the enabled flag when set.
	Enabled *bool
	// ReplaceRecurringDays makes RecurringDays apply, including a nil value
	// that clears the restriction.
	ReplaceRecurringDays bool
	// RecurringDays is the new recurrence when ReplaceRecurringDays is set.
	RecurringDays []domain.Weekday
}

// Empty reports whether the edit changes nothing.
func (c Changes) Empty() bool {
	return c.Time == nil && c.Enabled == nil && !c.ReplaceRecurringDays
}

// Apply stages every field set in c.
func (s *Session) Apply(c Changes) error {
	if c.Time != nil {
		if err := s.SetTimeOfDay(*c.Time); err != nil {
			return err
		}
	}

	if c.ReplaceRecurringDays {
		if err := s.SetRecurringDays(c.RecurringDays); err != nil {
			return err
		}
	}

	if c.Enabled != nil {
		if err := s.SetEnabled(*c.Enabled); err != nil {
			return err
		}
	}

	return nil
}
