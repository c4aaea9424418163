package client

import (
	"context"
	"fmt"
	"io"
	"time"

	domain "github.com/oshokin/alarm-manager/internal/domain/alarm"
	"github.com/oshokin/alarm-manager/internal/repository/alarms"
	"github.com/oshokin/alarm-manager/internal/service/editor"
)

// AddRequest holds the arguments of the add command.
type AddRequest struct {
	// Time is the time of day, HH:MM or HH:MM:SS.
	Time string
	// Days is a comma-separated list of weekday names; empty means every day.
	Days string
	// Disabled creates the alarm switched off.
	Disabled bool
}

// EditRequest holds the arguments of the edit command. Empty fields are left
// untouched.
type EditRequest struct {
	// Time replaces the time of day when not empty.
	Time string
	// Days replaces the recurrence when not empty.
	Days string
	// ClearDays removes the recurrence restriction.
	ClearDays bool
	// Enable switches the alarm on.
	Enable bool
	// Disable switches the alarm off.
	Disable bool
}

// List prints every alarm.
func List(ctx context.Context, svc Alarms, w io.Writer) error {
	list, err := svc.List(ctx)
	if err != nil {
		return err
	}

	return renderList(w, list, time.Now())
}

// Add creates an alarm and prints it.
func Add(ctx context.Context, svc Alarms, w io.Writer, req AddRequest) error {
	t, err := domain.ParseTimeOfDay(req.Time)
	if err != nil {
		return err
	}

	days, err := domain.ParseWeekdays(req.Days)
	if err != nil {
		return err
	}

	alarm := domain.New(t)
	alarm.Enabled = !req.Disabled
	alarm.RecurringDays = days

	created, err := svc.Create(ctx, alarm)
	if err != nil {
		return err
	}

	return renderAlarm(w, created)
}

// Show prints one alarm.
func Show(ctx context.Context, svc Alarms, w io.Writer, id string) error {
	alarm, found, err := svc.Get(ctx, id)
	if err != nil {
		return err
	}

	if !found {
		return fmt.Errorf("%w: %s", alarms.ErrNoSuchAlarm, id)
	}

	return renderAlarm(w, alarm)
}

// Edit applies the requested changes and prints the result.
func Edit(ctx context.Context, svc Alarms, w io.Writer, id string, req EditRequest) error {
	changes, err := req.changes()
	if err != nil {
		return err
	}

	edited, err := svc.Edit(ctx, id, changes)
	if err != nil {
		return err
	}

	return renderAlarm(w, edited)
}

// SetEnabled switches an alarm on or off and prints it.
func SetEnabled(ctx context.Context, svc Alarms, w io.Writer, id string, enabled bool) error {
	alarm, err := svc.SetEnabled(ctx, id, enabled)
	if err != nil {
		return err
	}

	return renderAlarm(w, alarm)
}

// Delete removes an alarm.
func Delete(ctx context.Context, svc Alarms, w io.Writer, id string) error {
	if err := svc.Delete(ctx, id); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Deleted %s\n", id)

	return err
}

func (r EditRequest) changes() (editor.Changes, error) {
	var changes editor.Changes

	if r.Enable && r.Disable {
		return changes, errConflictingFlags
	}

	if r.ClearDays && r.Days != "" {
		return changes, errConflictingFlags
	}

	if r.Time != "" {
		t, err := domain.ParseTimeOfDay(r.Time)
		if err != nil {
			return changes, err
		}

		changes.Time = &t
	}

	switch {
	case r.ClearDays:
		changes.ReplaceRecurringDays = true
	case r.Days != "":
		days, err := domain.ParseWeekdays(r.Days)
		if err != nil {
			return changes, err
		}

		changes.ReplaceRecurringDays = true
		changes.RecurringDays = days
	}

	if r.Enable || r.Disable {
		enabled := r.Enable
		changes.Enabled = &enabled
	}

	return changes, nil
}
