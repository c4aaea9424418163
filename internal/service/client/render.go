package client

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	domain "github.com/oshokin/alarm-manager/internal/domain/alarm"
)

// errConflictingFlags is returned when mutually exclusive options are combined.
var errConflictingFlags = errors.New("conflicting options")

// nextLayout renders the next occurrence in the list.
const nextLayout = "Mon Jan 2 3:04PM"

// renderList writes alarms as an aligned table in stored order.
func renderList(w io.Writer, list []domain.Alarm, now time.Time) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No alarms")

		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(tw, "ID\tTIME\tSTATE\tREPEAT\tNEXT")

	for _, alarm := range list {
		next := "-"
		if at, ok := alarm.NextOccurrence(now); ok && alarm.Enabled {
			next = at.Format(nextLayout)
		}

		_, _ = fmt.Fprintf(
			tw,
			"%s\t%s\t%s\t%s\t%s\n",
			alarm.ID, alarm.Time.Kitchen(), state(alarm), alarm.Schedule(), next,
		)
	}

	return tw.Flush()
}

// renderAlarm writes one alarm on a single line.
func renderAlarm(w io.Writer, alarm domain.Alarm) error {
	_, err := fmt.Fprintf(w, "%s %s %s (%s)\n", alarm.ID, alarm.Time.Kitchen(), state(alarm), alarm.Schedule())

	return err
}

func state(alarm domain.Alarm) string {
	if alarm.Enabled {
		return "on"
	}

	return "off"
}
