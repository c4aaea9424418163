package alarm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	domain "github.com/oshokin/alarm-manager/internal/domain/alarm"
	"github.com/oshokin/alarm-manager/internal/repository/alarms"
	"github.com/oshokin/alarm-manager/internal/repository/kv"
	"github.com/oshokin/alarm-manager/internal/service/manager"
)

func newTestServer(t *testing.T, seed ...domain.Alarm) *Server {
	t.Helper()

	store := alarms.NewStore(kv.NewMemoryStorage())
	require.NoError(t, store.SaveAll(context.Background(), seed))

	return NewServer(manager.New(store))
}

func mustStruct(t *testing.T, fields map[string]any) *structpb.Struct {
	t.Helper()

	message, err := structpb.NewStruct(fields)
	require.NoError(t, err)

	return message
}

// TestServer_ListAndGet verifies list rendering and NotFound for unknown ids.
func TestServer_ListAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seed := domain.Alarm{ID: "1", Time: domain.MustTimeOfDay(10, 30), Enabled: true}
	s := newTestServer(t, seed)

	list, err := s.ListAlarms(ctx, new(emptypb.Empty))
	require.NoError(t, err)

	alarmsList, err := FromList(list)
	require.NoError(t, err)
	require.Equal(t, []domain.Alarm{seed}, alarmsList)

	got, err := s.GetAlarm(ctx, wrapperspb.String("1"))
	require.NoError(t, err)
	require.Equal(t, "10:30", got.GetFields()[FieldTime].GetStringValue())

	_, err = s.GetAlarm(ctx, wrapperspb.String("nonexistent"))
	require.Equal(t, codes.NotFound, status.Code(err))

	// An empty id is an unknown id, as in the local manager.
	_, err = s.GetAlarm(ctx, wrapperspb.String(""))
	require.Equal(t, codes.NotFound, status.Code(err))
}

// TestServer_CreateAlarm covers defaults and validation of created alarms.
func TestServer_CreateAlarm(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestServer(t)

	created, err := s.CreateAlarm(ctx, mustStruct(t, map[string]any{FieldTime: "07:15"}))
	require.NoError(t, err)

	alarm, err := FromStruct(created)
	require.NoError(t, err)
	require.NotEmpty(t, alarm.ID)
	require.True(t, alarm.Enabled)
	require.Nil(t, alarm.RecurringDays)
	require.Equal(t, domain.MustTimeOfDay(7, 15), alarm.Time)

	_, err = s.CreateAlarm(ctx, mustStruct(t, map[string]any{FieldEnabled: true}))
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.CreateAlarm(ctx, mustStruct(t, map[string]any{FieldTime: "25:00"}))
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.CreateAlarm(ctx, mustStruct(t, map[string]any{FieldID: alarm.ID, FieldTime: "08:00"}))
	require.Equal(t, codes.AlreadyExists, status.Code(err))
}

// TestServer_SaveEditToggleDelete walks through the mutating RPCs.
func TestServer_SaveEditToggleDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestServer(t, domain.Alarm{ID: "1", Time: domain.MustTimeOfDay(10, 30), Enabled: true})

	saved, err := s.SaveAlarm(ctx, mustStruct(t, map[string]any{
		FieldID:            "1",
		FieldTime:          "12:23",
		FieldEnabled:       true,
		FieldRecurringDays: nil,
	}))
	require.NoError(t, err)
	require.Equal(t, "12:23", saved.GetFields()[FieldTime].GetStringValue())

	_, err = s.SaveAlarm(ctx, mustStruct(t, map[string]any{FieldID: "2", FieldTime: "12:23", FieldEnabled: true}))
	require.Equal(t, codes.NotFound, status.Code(err))

	_, err = s.SaveAlarm(ctx, mustStruct(t, map[string]any{FieldTime: "12:23", FieldEnabled: true}))
	require.Equal(t, codes.NotFound, status.Code(err))

	// A full replacement without a time or enabled flag must not reset them.
	for _, incomplete := range []map[string]any{
		{FieldID: "1", FieldEnabled: true, FieldRecurringDays: nil},
		{FieldID: "1", FieldTime: nil, FieldEnabled: true},
		{FieldID: "1", FieldTime: "12:23"},
	} {
		_, err = s.SaveAlarm(ctx, mustStruct(t, incomplete))
		require.Equal(t, codes.InvalidArgument, status.Code(err), incomplete)
	}

	stored, err := s.GetAlarm(ctx, wrapperspb.String("1"))
	require.NoError(t, err)
	require.Equal(t, "12:23", stored.GetFields()[FieldTime].GetStringValue())
	require.True(t, stored.GetFields()[FieldEnabled].GetBoolValue())

	toggled, err := s.SetAlarmEnabled(ctx, EnabledToStruct("1", false))
	require.NoError(t, err)
	require.False(t, toggled.GetFields()[FieldEnabled].GetBoolValue())

	// A time-only edit keeps the disabled flag.
	edited, err := s.EditAlarm(ctx, mustStruct(t, map[string]any{
		FieldID:            "1",
		FieldTime:          "06:00",
		FieldRecurringDays: []any{0, 4},
	}))
	require.NoError(t, err)

	alarm, err := FromStruct(edited)
	require.NoError(t, err)
	require.Equal(t, domain.MustTimeOfDay(6, 0), alarm.Time)
	require.False(t, alarm.Enabled)
	require.Equal(t, []domain.Weekday{domain.Monday, domain.Friday}, alarm.RecurringDays)

	_, err = s.EditAlarm(ctx, mustStruct(t, map[string]any{FieldID: "1", FieldRecurringDays: []any{9}}))
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.SetAlarmEnabled(ctx, mustStruct(t, map[string]any{FieldID: "1"}))
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.DeleteAlarm(ctx, wrapperspb.String("1"))
	require.NoError(t, err)

	_, err = s.DeleteAlarm(ctx, wrapperspb.String("1"))
	require.Equal(t, codes.NotFound, status.Code(err))

	_, err = s.DeleteAlarm(ctx, wrapperspb.String(""))
	require.Equal(t, codes.NotFound, status.Code(err))
}

// TestServer_CorruptData ensures corrupt storage surfaces as DataLoss.
func TestServer_CorruptData(t *testing.T) {
	t.Parallel()

	storage := kv.NewMemoryStorage()
	require.NoError(t, storage.Set(context.Background(), alarms.DefaultKey, []byte("{broken")))

	s := NewServer(manager.New(alarms.NewStore(storage)))

	_, err := s.ListAlarms(context.Background(), new(emptypb.Empty))
	require.Equal(t, codes.DataLoss, status.Code(err))
}

// TestStatusMapping verifies sentinels survive a round trip through status codes.
func TestStatusMapping(t *testing.T) {
	t.Parallel()

	cases := map[error]codes.Code{
		alarms.ErrNoSuchAlarm:        codes.NotFound,
		alarms.ErrDuplicateID:        codes.AlreadyExists,
		alarms.ErrCorruptData:        codes.DataLoss,
		alarms.ErrStorageUnavailable: codes.Unavailable,
		domain.ErrInvalidTime:        codes.InvalidArgument,
		context.DeadlineExceeded:     codes.DeadlineExceeded,
		errors.New("boom"):           codes.Internal,
	}

	for err, code := range cases {
		st := StatusFromError(err)
		require.Equal(t, code, status.Code(st), err.Error())

		if code != codes.Internal && code != codes.InvalidArgument {
			require.ErrorIs(t, ErrorFromStatus(st), err)
		}
	}

	require.NoError(t, StatusFromError(nil))
	require.NoError(t, ErrorFromStatus(nil))
}
