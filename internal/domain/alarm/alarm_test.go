package alarm

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestNew verifies defaults of a freshly created alarm.
func TestNew(t *testing.T) {
	t.Parallel()

	a := New(MustTimeOfDay(6, 30))
	b := New(MustTimeOfDay(6, 30))

	require.NotEmpty(t, a.ID)
	require.NotEqual(t, a.ID, b.ID)
	require.True(t, a.Enabled)
	require.Nil(t, a.RecurringDays)
	require.NoError(t, a.Validate())
}

// TestAlarmClone verifies that Clone deep-copies recurring days.
func TestAlarmClone(t *testing.T) {
	t.Parallel()

	a := Alarm{
		ID:            "1",
		Time:          MustTimeOfDay(10, 30),
		Enabled:       true,
		RecurringDays: []Weekday{Monday, Friday},
	}

	c := a.Clone()
	require.Equal(t, a, c)

	c.RecurringDays[0] = Sunday
	require.Equal(t, Monday, a.RecurringDays[0])

	require.Nil(t, Alarm{ID: "2"}.Clone().RecurringDays)
	require.Nil(t, CloneAll(nil))
}

// TestAlarmValidate checks identifier and weekday validation.
func TestAlarmValidate(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Alarm{}.Validate(), ErrEmptyID)
	require.ErrorIs(t, Alarm{ID: "1", RecurringDays: []Weekday{7}}.Validate(), ErrInvalidWeekday)
	require.NoError(t, Alarm{ID: "1", RecurringDays: []Weekday{}}.Validate())
}

// TestAlarmJSON verifies the persisted field names and value shapes.
func TestAlarmJSON(t *testing.T) {
	t.Parallel()

	a := Alarm{
		ID:      "1",
		Time:    MustTimeOfDay(10, 30),
		Enabled: true,
	}

	data, err := json.Marshal(a)
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"1","time":"10:30","enabled":true,"recurringDays":null}`, string(data))

	var decoded Alarm
	require.NoError(t, json.Unmarshal([]byte(`{"id":"2","time":"05:00","enabled":false,"recurringDays":[0,6]}`), &decoded))
	require.Equal(t, Alarm{
		ID:            "2",
		Time:          MustTimeOfDay(5, 0),
		RecurringDays: []Weekday{Monday, Sunday},
	}, decoded)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"3","time":"06:00","enabled":true}`), &decoded))
	require.Nil(t, decoded.RecurringDays)
}

// TestAlarmJSON_Incomplete rejects records without a time or enabled flag
// instead of decoding them as midnight or disabled.
func TestAlarmJSON_Incomplete(t *testing.T) {
	t.Parallel()

	for _, record := range []string{
		`{"id":"1","enabled":true,"recurringDays":null}`,
		`{"id":"1","time":null,"enabled":true,"recurringDays":null}`,
		`{"id":"1","time":"10:30","recurringDays":null}`,
		`{"id":"1","time":"10:30","enabled":null}`,
		`null`,
		`{}`,
	} {
		var decoded Alarm

		err := json.Unmarshal([]byte(record), &decoded)
		require.ErrorIs(t, err, ErrIncomplete, record)
	}

	var list []Alarm

	err := json.Unmarshal([]byte(`[{"id":"1","time":"10:30","enabled":true},null]`), &list)
	require.ErrorIs(t, err, ErrIncomplete)
}

// TestAlarmRecurrence covers RecursOn and Schedule rendering.
func TestAlarmRecurrence(t *testing.T) {
	t.Parallel()

	daily := Alarm{ID: "1"}
	require.True(t, daily.RecursOn(Wednesday))
	require.Equal(t, "Every day", daily.Schedule())

	weekdays := Alarm{ID: "2", RecurringDays: []Weekday{Friday, Monday, Monday}}
	require.True(t, weekdays.RecursOn(Friday))
	require.False(t, weekdays.RecursOn(Sunday))
	require.Equal(t, "Mon, Fri", weekdays.Schedule())

	require.Equal(t, "Never", Alarm{ID: "3", RecurringDays: []Weekday{}}.Schedule())
	require.Equal(t, "Every day", Alarm{ID: "4", RecurringDays: Weekdays}.Schedule())
}

// TestWeekday covers parsing and conversions to the standard library.
func TestWeekday(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]Weekday{"mon": Monday, "Tuesday": Tuesday, "WED": Wednesday, " sun ": Sunday} {
		got, err := ParseWeekday(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got, input)
	}

	_, err := ParseWeekday("mo")
	require.ErrorIs(t, err, ErrInvalidWeekday)

	days, err := ParseWeekdays("mon,fri")
	require.NoError(t, err)
	require.Equal(t, []Weekday{Monday, Friday}, days)

	days, err = ParseWeekdays("")
	require.NoError(t, err)
	require.Nil(t, days)

	require.Equal(t, time.Sunday, Sunday.Std())
	require.Equal(t, time.Monday, Monday.Std())
	require.Equal(t, Sunday, FromStd(time.Sunday))
	require.Equal(t, Saturday, FromStd(time.Saturday))
	require.Equal(t, "Weekday(9)", Weekday(9).String())
}
