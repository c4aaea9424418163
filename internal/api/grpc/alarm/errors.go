package alarm

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domain "github.com/oshokin/alarm-manager/internal/domain/alarm"
	"github.com/oshokin/alarm-manager/internal/repository/alarms"
	"github.com/oshokin/alarm-manager/internal/service/editor"
)

// StatusFromError maps domain and store errors to gRPC status errors.
func StatusFromError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	return status.Error(codeOf(err), err.Error())
}

func codeOf(err error) codes.Code {
	switch {
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	case errors.Is(err, alarms.ErrNoSuchAlarm):
		return codes.NotFound
	case errors.Is(err, alarms.ErrDuplicateID):
		return codes.AlreadyExists
	case errors.Is(err, alarms.ErrCorruptData):
		return codes.DataLoss
	case errors.Is(err, alarms.ErrStorageUnavailable):
		return codes.Unavailable
	case errors.Is(err, editor.ErrSessionClosed):
		return codes.FailedPrecondition
	case errors.Is(err, ErrInvalidMessage),
		errors.Is(err, alarms.ErrInvalidAlarm),
		errors.Is(err, domain.ErrInvalidTime),
		errors.Is(err, domain.ErrInvalidWeekday),
		errors.Is(err, domain.ErrEmptyID),
		errors.Is(err, domain.ErrIncomplete):
		return codes.InvalidArgument
	default:
		return codes.Internal
	}
}

// ErrorFromStatus maps a gRPC status error back to the matching sentinel so
// that remote callers can use errors.Is like local ones. The original error
// stays in the chain.
func ErrorFromStatus(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	var sentinel error

	switch st.Code() {
	case codes.NotFound:
		sentinel = alarms.ErrNoSuchAlarm
	case codes.AlreadyExists:
		sentinel = alarms.ErrDuplicateID
	case codes.DataLoss:
		sentinel = alarms.ErrCorruptData
	case codes.Unavailable:
		sentinel = alarms.ErrStorageUnavailable
	case codes.InvalidArgument:
		sentinel = ErrInvalidMessage
	case codes.Canceled:
		sentinel = context.Canceled
	case codes.DeadlineExceeded:
		sentinel = context.DeadlineExceeded
	default:
		return err
	}

	return errors.Join(sentinel, err)
}
