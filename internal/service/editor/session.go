package editor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	domain "github.com/oshokin/alarm-manager/internal/domain/alarm"
	"github.com/oshokin/alarm-manager/internal/logger"
	"github.com/oshokin/alarm-manager/internal/repository/alarms"
)

// ErrSessionClosed is returned when a committed or canceled session is used.
var ErrSessionClosed = errors.New("editing session is closed")

// Store is the subset of the alarm store sessions depend on.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Alarm, bool, error)
	Update(ctx context.Context, id string, mutate func(*domain.Alarm) error) (domain.Alarm, error)
}

// Session stages edits of a single alarm.
type Session struct {
	// store receives the pending alarm on Commit.
	store Store
	// original is the alarm as captured when the session opened.
	original domain.Alarm
	// pending holds staged changes.
	pending domain.Alarm
	// enabledChanged records an explicit SetEnabled call.
	enabledChanged bool
	// closed is set after Commit or Cancel.
	closed bool
	// mu protects the fields above.
	mu sync.Mutex
}

// Open loads the alarm with id from store and starts a session on it.
func Open(ctx context.Context, store Store, id string) (*Session, error) {
	alarm, found, err := store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load alarm: %w", err)
	}

	if !found {
		return nil, fmt.Errorf("%w: %s", alarms.ErrNoSuchAlarm, id)
	}

	return NewSession(store, alarm), nil
}

// NewSession starts a session on an alarm value the caller already holds.
// The session keeps its own deep copy.
func NewSession(store Store, alarm domain.Alarm) *Session {
	return &Session{
		store:    store,
		original: alarm.Clone(),
		pending:  alarm.Clone(),
	}
}

// ID returns the identifier of the alarm being edited.
func (s *Session) ID() string {
	return s.original.ID
}

// SetTime stages a new time of day.
func (s *Session) SetTime(hour, minute int) error {
	t, err := domain.NewTimeOfDay(hour, minute)
	if err != nil {
		return err
	}

	return s.SetTimeOfDay(t)
}

// SetTimeOfDay stages a new, already validated, time of day.
func (s *Session) SetTimeOfDay(t domain.TimeOfDay) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	s.pending.Time = t

	return nil
}

// SetRecurringDays stages recurrence. Nil clears the restriction.
func (s *Session) SetRecurringDays(days []domain.Weekday) error {
	for _, day := range days {
		if !day.Valid() {
			return fmt.Errorf("%w: %d", domain.ErrInvalidWeekday, int(day))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	if days == nil {
		s.pending.RecurringDays = nil
	} else {
		s.pending.RecurringDays = slices.Clone(days)
	}

	return nil
}

// SetEnabled stages an explicit enabled change. Without it, Commit keeps the
// enabled flag the store holds at commit time.
func (s *Session) SetEnabled(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	s.pending.Enabled = enabled
	s.enabledChanged = true

	return nil
}

// Pending returns a copy of the staged alarm.
func (s *Session) Pending() domain.Alarm {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pending.Clone()
}

// Original returns a copy of the alarm as captured when the session opened.
func (s *Session) Original() domain.Alarm {
	return s.original.Clone()
}

// Dirty reports whether anything has been staged that differs from the original.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pending.Time != s.original.Time ||
		s.pending.Enabled != s.original.Enabled ||
		(s.pending.RecurringDays == nil) != (s.original.RecurringDays == nil) ||
		!slices.Equal(s.pending.RecurringDays, s.original.RecurringDays)
}

// Closed reports whether the session was committed or canceled.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

// Commit writes the staged alarm through the store and closes the session.
// On failure the session stays open so the caller may retry or cancel.
func (s *Session) Commit(ctx context.Context) (domain.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.Alarm{}, ErrSessionClosed
	}

	pending := s.pending.Clone()
	keepStoredEnabled := !s.enabledChanged

	committed, err := s.store.Update(ctx, pending.ID, func(current *domain.Alarm) error {
		enabled := current.Enabled
		*current = pending

		if keepStoredEnabled {
			current.Enabled = enabled
		}

		return nil
	})
	if err != nil {
		return domain.Alarm{}, fmt.Errorf("commit alarm %s: %w", pending.ID, err)
	}

	s.closed = true

	logger.InfoKV(ctx, "Alarm edit committed", "id", committed.ID, "time", committed.Time.String(), "enabled", committed.Enabled)

	return committed, nil
}

// Cancel discards staged changes and closes the session.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = s.original.Clone()
	s.closed = true
}

// Toggle sets the enabled flag of the alarm with id and persists it at once.
func Toggle(ctx context.Context, store Store, id string, enabled bool) (domain.Alarm, error) {
	updated, err := store.Update(ctx, id, func(current *domain.Alarm) error {
		current.Enabled = enabled

		return nil
	})
	if err != nil {
		return domain.Alarm{}, fmt.Errorf("toggle alarm %s: %w", id, err)
	}

	logger.InfoKV(ctx, "Alarm toggled", "id", id, "enabled", enabled)

	return updated, nil
}
