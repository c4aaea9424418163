package manager

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domain "github.com/oshokin/alarm-manager/internal/domain/alarm"
	"github.com/oshokin/alarm-manager/internal/logger"
	"github.com/oshokin/alarm-manager/internal/repository/alarms"
	"github.com/oshokin/alarm-manager/internal/service/editor"
)

// Manager orchestrates alarm persistence for callers that do not talk to the
// store directly.
type Manager struct {
	// store persists the alarm collection.
	store alarms.Repository
}

// New creates a manager backed by the provided store.
func New(store alarms.Repository) *Manager {
	return &Manager{
		store: store,
	}
}

// List returns every alarm in display order.
func (m *Manager) List(ctx context.Context) ([]domain.Alarm, error) {
	list, err := m.store.GetAll(ctx)
	if err != nil {
		logger.Errorf(ctx, "Failed to load alarms: %v", err)

		return nil, fmt.Errorf("list alarms: %w", err)
	}

	return list, nil
}

// Get returns the alarm with id; found is false when there is none.
func (m *Manager) Get(ctx context.Context, id string) (domain.Alarm, bool, error) {
	alarm, found, err := m.store.GetByID(ctx, id)
	if err != nil {
		return domain.Alarm{}, false, fmt.Errorf("get alarm %s: %w", id, err)
	}

	return alarm, found, nil
}

// Create persists a new alarm, assigning an id when it has none.
func (m *Manager) Create(ctx context.Context, alarm domain.Alarm) (domain.Alarm, error) {
	created := alarm.Clone()
	if created.ID == "" {
		created.ID = uuid.NewString()
	}

	if err := m.store.Create(ctx, created); err != nil {
		return domain.Alarm{}, fmt.Errorf("create alarm: %w", err)
	}

	logger.InfoKV(ctx, "Alarm created", "id", created.ID, "time", created.Time.String(), "schedule", created.Schedule())

	return created, nil
}

// Save replaces the stored alarm having the same id.
func (m *Manager) Save(ctx context.Context, alarm domain.Alarm) (domain.Alarm, error) {
	if err := m.store.SaveSingle(ctx, alarm); err != nil {
		return domain.Alarm{}, fmt.Errorf("save alarm %s: %w", alarm.ID, err)
	}

	logger.InfoKV(ctx, "Alarm saved", "id", alarm.ID, "time", alarm.Time.String(), "enabled", alarm.Enabled)

	return alarm.Clone(), nil
}

// Edit applies a partial edit through an editing session. The enabled flag
// is kept as stored unless changes set it.
func (m *Manager) Edit(ctx context.Context, id string, changes editor.Changes) (domain.Alarm, error) {
	session, err := editor.Open(ctx, m.store, id)
	if err != nil {
		return domain.Alarm{}, err
	}

	if err = session.Apply(changes); err != nil {
		session.Cancel()

		return domain.Alarm{}, err
	}

	if !session.Dirty() {
		session.Cancel()

		return session.Original(), nil
	}

	return session.Commit(ctx)
}

// SetEnabled switches the alarm on or off immediately.
func (m *Manager) SetEnabled(ctx context.Context, id string, enabled bool) (domain.Alarm, error) {
	return editor.Toggle(ctx, m.store, id, enabled)
}

// Delete removes the alarm with id.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete alarm %s: %w", id, err)
	}

	logger.InfoKV(ctx, "Alarm deleted", "id", id)

	return nil
}
