package alarm

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/oshokin/alarm-manager/internal/domain/alarm"
	"github.com/oshokin/alarm-manager/internal/service/editor"
)

// Field names of alarm messages, identical to the persisted JSON.
const (
	FieldID            = "id"
	FieldTime          = "time"
	FieldEnabled       = "enabled"
	FieldRecurringDays = "recurringDays"
)

// ErrInvalidMessage is returned when a message does not describe a valid alarm or edit.
var ErrInvalidMessage = errors.New("invalid alarm message")

// ToStruct converts a domain alarm into its Struct message.
func ToStruct(alarm domain.Alarm) (*structpb.Struct, error) {
	data, err := json.Marshal(alarm)
	if err != nil {
		return nil, fmt.Errorf("encode alarm: %w", err)
	}

	message := new(structpb.Struct)
	if err = protojson.Unmarshal(data, message); err != nil {
		return nil, fmt.Errorf("convert alarm: %w", err)
	}

	return message, nil
}

// FromStruct converts a Struct message into a domain alarm.
func FromStruct(message *structpb.Struct) (domain.Alarm, error) {
	if message == nil {
		return domain.Alarm{}, fmt.Errorf("%w: message is empty", ErrInvalidMessage)
	}

	data, err := protojson.Marshal(message)
	if err != nil {
		return domain.Alarm{}, fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}

	var alarm domain.Alarm
	if err = json.Unmarshal(data, &alarm); err != nil {
		return domain.Alarm{}, fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}

	return alarm, nil
}

// ToList converts alarms into a ListValue of Struct messages.
func ToList(alarms []domain.Alarm) (*structpb.ListValue, error) {
	if alarms == nil {
		alarms = []domain.Alarm{}
	}

	data, err := json.Marshal(alarms)
	if err != nil {
		return nil, fmt.Errorf("encode alarms: %w", err)
	}

	list := new(structpb.ListValue)
	if err = protojson.Unmarshal(data, list); err != nil {
		return nil, fmt.Errorf("convert alarms: %w", err)
	}

	return list, nil
}

// FromList converts a ListValue of Struct messages into domain alarms.
func FromList(list *structpb.ListValue) ([]domain.Alarm, error) {
	alarms := make([]domain.Alarm, 0, len(list.GetValues()))

	for i, value := range list.GetValues() {
		message := value.GetStructValue()
		if message == nil {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrInvalidMessage, i)
		}

		alarm, err := FromStruct(message)
		if err != nil {
			return nil, err
		}

		alarms = append(alarms, alarm)
	}

	return alarms, nil
}

// ChangesToStruct builds the EditAlarm request for a partial edit.
func ChangesToStruct(id string, changes editor.Changes) (*structpb.Struct, error) {
	fields := map[string]any{
		FieldID: id,
	}

	if changes.Time != nil {
		fields[FieldTime] = changes.Time.String()
	}

	if changes.Enabled != nil {
		fields[FieldEnabled] = *changes.Enabled
	}

	if changes.ReplaceRecurringDays {
		if changes.RecurringDays == nil {
			fields[FieldRecurringDays] = nil
		} else {
			days := make([]any, 0, len(changes.RecurringDays))
			for _, day := range changes.RecurringDays {
				days = append(days, int(day))
			}

			fields[FieldRecurringDays] = days
		}
	}

	message, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("convert changes: %w", err)
	}

	return message, nil
}

// ChangesFromStruct parses an EditAlarm request. Absent fields stay unchanged.
func ChangesFromStruct(message *structpb.Struct) (string, editor.Changes, error) {
	var changes editor.Changes

	fields := message.GetFields()

	id, err := requiredID(fields)
	if err != nil {
		return "", changes, err
	}

	if value, ok := fields[FieldTime]; ok {
		raw, isString := value.GetKind().(*structpb.Value_StringValue)
		if !isString {
			return "", changes, fmt.Errorf("%w: %s must be a string", ErrInvalidMessage, FieldTime)
		}

		t, err := domain.ParseTimeOfDay(raw.StringValue)
		if err != nil {
			return "", changes, fmt.Errorf("%w: %w", ErrInvalidMessage, err)
		}

		changes.Time = &t
	}

	if value, ok := fields[FieldEnabled]; ok {
		enabled, err := boolValue(value)
		if err != nil {
			return "", changes, err
		}

		changes.Enabled = &enabled
	}

	if value, ok := fields[FieldRecurringDays]; ok {
		days, err := weekdays(value)
		if err != nil {
			return "", changes, err
		}

		changes.ReplaceRecurringDays = true
		changes.RecurringDays = days
	}

	return id, changes, nil
}

// EnabledToStruct builds the SetAlarmEnabled request.
func EnabledToStruct(id string, enabled bool) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			FieldID:      structpb.NewStringValue(id),
			FieldEnabled: structpb.NewBoolValue(enabled),
		},
	}
}

// EnabledFromStruct parses the SetAlarmEnabled request.
func EnabledFromStruct(message *structpb.Struct) (string, bool, error) {
	fields := message.GetFields()

	id, err := requiredID(fields)
	if err != nil {
		return "", false, err
	}

	value, ok := fields[FieldEnabled]
	if !ok {
		return "", false, fmt.Errorf("%w: %s is required", ErrInvalidMessage, FieldEnabled)
	}

	enabled, err := boolValue(value)
	if err != nil {
		return "", false, err
	}

	return id, enabled, nil
}

// requiredID returns the id field, which must be present as a string.
// An empty id is passed on and resolves to not found like any unknown id.
func requiredID(fields map[string]*structpb.Value) (string, error) {
	value, ok := fields[FieldID].GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidMessage, FieldID)
	}

	return value.StringValue, nil
}

func boolValue(value *structpb.Value) (bool, error) {
	raw, ok := value.GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return false, fmt.Errorf("%w: %s must be a boolean", ErrInvalidMessage, FieldEnabled)
	}

	return raw.BoolValue, nil
}

// weekdays parses null or a list of integral weekday tags.
func weekdays(value *structpb.Value) ([]domain.Weekday, error) {
	switch kind := value.GetKind().(type) {
	case *structpb.Value_NullValue:
		return nil, nil
	case *structpb.Value_ListValue:
		days := make([]domain.Weekday, 0, len(kind.ListValue.GetValues()))

		for _, item := range kind.ListValue.GetValues() {
			number, ok := item.GetKind().(*structpb.Value_NumberValue)
			if !ok || number.NumberValue != math.Trunc(number.NumberValue) {
				return nil, fmt.Errorf("%w: %s must hold integers", ErrInvalidMessage, FieldRecurringDays)
			}

			if number.NumberValue < float64(domain.Monday) || number.NumberValue > float64(domain.Sunday) {
				return nil, fmt.Errorf("%w: %w: %v", ErrInvalidMessage, domain.ErrInvalidWeekday, number.NumberValue)
			}

			days = append(days, domain.Weekday(number.NumberValue))
		}

		return days, nil
	default:
		return nil, fmt.Errorf("%w: %s must be a list or null", ErrInvalidMessage, FieldRecurringDays)
	}
}
