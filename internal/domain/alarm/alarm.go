package alarm

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrEmptyID is returned when an alarm has no identifier.
	ErrEmptyID = errors.New("alarm id is empty")
	// ErrIncomplete is returned when a decoded alarm lacks a required field.
	ErrIncomplete = errors.New("alarm record is incomplete")
)

// Alarm is a user-defined daily alarm.
type Alarm struct {
	// ID uniquely identifies the alarm and never changes after creation.
	ID string `json:"id"`
	// Time is the wall-clock time the alarm is set for.
	Time TimeOfDay `json:"time"`
	// Enabled indicates whether the alarm is currently active.
	Enabled bool `json:"enabled"`
	// RecurringDays lists the days the alarm repeats on.
	// Nil means no recurrence restriction has been defined.
	RecurringDays []Weekday `json:"recurringDays"`
}

// New creates an enabled alarm with a fresh identifier.
func New(t TimeOfDay) Alarm {
	return Alarm{
		ID:      uuid.NewString(),
		Time:    t,
		Enabled: true,
	}
}

// UnmarshalJSON decodes an alarm record. Time and enabled must be present
// and not null; a missing recurringDays key means no restriction.
func (a *Alarm) UnmarshalJSON(data []byte) error {
	var record struct {
		ID            string     `json:"id"`
		Time          *TimeOfDay `json:"time"`
		Enabled       *bool      `json:"enabled"`
		RecurringDays []Weekday  `json:"recurringDays"`
	}

	if err := json.Unmarshal(data, &record); err != nil {
		return err
	}

	switch {
	case record.Time == nil:
		return fmt.Errorf("%w: time is missing", ErrIncomplete)
	case record.Enabled == nil:
		return fmt.Errorf("%w: enabled is missing", ErrIncomplete)
	}

	*a = Alarm{
		ID:            record.ID,
		Time:          *record.Time,
		Enabled:       *record.Enabled,
		RecurringDays: record.RecurringDays,
	}

	return nil
}

// Clone returns a deep copy of the alarm.
func (a Alarm) Clone() Alarm {
	cloned := a
	if a.RecurringDays != nil {
		cloned.RecurringDays = slices.Clone(a.RecurringDays)
	}

	return cloned
}

// Validate checks the identifier and recurrence tags.
// TimeOfDay values can only be built valid, so time is not rechecked.
func (a Alarm) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return ErrEmptyID
	}

	for _, day := range a.RecurringDays {
		if !day.Valid() {
			return fmt.Errorf("alarm %s: %w: %d", a.ID, ErrInvalidWeekday, int(day))
		}
	}

	return nil
}

// RecursOn reports whether the alarm applies on the given day.
// An alarm without recurrence restriction applies every day.
func (a Alarm) RecursOn(day Weekday) bool {
	if a.RecurringDays == nil {
		return true
	}

	return slices.Contains(a.RecurringDays, day)
}

// Schedule renders recurrence for display, e.g. "Mon, Wed" or "Every day".
func (a Alarm) Schedule() string {
	if a.RecurringDays == nil {
		return "Every day"
	}

	days := slices.Clone(a.RecurringDays)
	slices.Sort(days)
	days = slices.Compact(days)

	switch len(days) {
	case 0:
		return "Never"
	case len(Weekdays):
		return "Every day"
	}

	names := make([]string, 0, len(days))
	for _, day := range days {
		names = append(names, day.Short())
	}

	return strings.Join(names, ", ")
}

// CloneAll deep-copies a collection.
func CloneAll(alarms []Alarm) []Alarm {
	if alarms == nil {
		return nil
	}

	cloned := make([]Alarm, len(alarms))
	for i, a := range alarms {
		cloned[i] = a.Clone()
	}

	return cloned
}
