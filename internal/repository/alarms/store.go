package alarms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	domain "github.com/oshokin/alarm-manager/internal/domain/alarm"
	"github.com/oshokin/alarm-manager/internal/logger"
	"github.com/oshokin/alarm-manager/internal/repository/kv"
)

// DefaultKey is the storage key the alarm collection is persisted under.
const DefaultKey = "alarms"

var (
	// ErrCorruptData is returned when the stored blob is not a valid alarm collection.
	ErrCorruptData = errors.New("corrupt alarm data")
	// ErrStorageUnavailable is returned when the underlying storage fails.
	ErrStorageUnavailable = errors.New("alarm storage unavailable")
	// ErrNoSuchAlarm is returned by by-id writes when no alarm has that id.
	ErrNoSuchAlarm = errors.New("no such alarm")
	// ErrDuplicateID is returned when two alarms would share an id.
	ErrDuplicateID = errors.New("duplicate alarm id")
	// ErrInvalidAlarm wraps validation failures of alarms passed in for writing.
	ErrInvalidAlarm = errors.New("invalid alarm")
)

// Repository defines the alarm persistence operations consumers depend on.
type Repository interface {
	GetAll(ctx context.Context) ([]domain.Alarm, error)
	GetByID(ctx context.Context, id string) (domain.Alarm, bool, error)
	SaveAll(ctx context.Context, alarms []domain.Alarm) error
	SaveSingle(ctx context.Context, alarm domain.Alarm) error
	Create(ctx context.Context, alarm domain.Alarm) error
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, id string, mutate func(*domain.Alarm) error) (domain.Alarm, error)
}

// Store persists alarms in a kv.Storage.
type Store struct {
	// storage holds the serialized collection.
	storage kv.Storage
	// key is the storage key of the collection.
	key string
	// mu serializes read-modify-write cycles.
	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// NewStore creates a store on top of the provided storage.
func NewStore(storage kv.Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// GetAll returns every persisted alarm. Missing or empty data yields an
// empty collection.
func (s *Store) GetAll(ctx context.Context) ([]domain.Alarm, error) {
	return s.load(ctx)
}

// GetByID returns the first alarm with the given id. A miss is reported with
// false and no error.
func (s *Store) GetByID(ctx context.Context, id string) (domain.Alarm, bool, error) {
	alarms, err := s.load(ctx)
	if err != nil {
		return domain.Alarm{}, false, err
	}

	index := indexOf(alarms, id)
	if index < 0 {
		return domain.Alarm{}, false, nil
	}

	return alarms[index], true, nil
}

// SaveAll overwrites the persisted collection.
func (s *Store) SaveAll(ctx context.Context, alarms []domain.Alarm) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store(ctx, alarms)
}

// SaveSingle replaces the alarm whose id matches alarm.ID and leaves all
// other entries untouched. It fails with ErrNoSuchAlarm when nothing matches.
func (s *Store) SaveSingle(ctx context.Context, alarm domain.Alarm) error {
	_, err := s.Update(ctx, alarm.ID, func(current *domain.Alarm) error {
		*current = alarm.Clone()

		return nil
	})

	return err
}

// Create appends a new alarm to the collection.
func (s *Store) Create(ctx context.Context, alarm domain.Alarm) error {
	if err := alarm.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAlarm, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	alarms, err := s.load(ctx)
	if err != nil {
		return err
	}

	if indexOf(alarms, alarm.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, alarm.ID)
	}

	if err = s.store(ctx, append(alarms, alarm.Clone())); err != nil {
		return err
	}

	logger.DebugKV(ctx, "Alarm created", "id", alarm.ID, "time", alarm.Time.String())

	return nil
}

// Delete removes the alarm with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	alarms, err := s.load(ctx)
	if err != nil {
		return err
	}

	index := indexOf(alarms, id)
	if index < 0 {
		return fmt.Errorf("%w: %s", ErrNoSuchAlarm, id)
	}

	if err = s.store(ctx, slices.Delete(alarms, index, index+1)); err != nil {
		return err
	}

	logger.DebugKV(ctx, "Alarm deleted", "id", id)

	return nil
}

// Update applies mutate to a copy of the alarm with the given id and
// persists the result, all under the writer lock. The id cannot be changed
// by mutate. If mutate returns an error nothing is written.
func (s *Store) Update(
	ctx context.Context,
	id string,
	mutate func(*domain.Alarm) error,
) (domain.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	alarms, err := s.load(ctx)
	if err != nil {
		return domain.Alarm{}, err
	}

	index := indexOf(alarms, id)
	if index < 0 {
		return domain.Alarm{}, fmt.Errorf("%w: %s", ErrNoSuchAlarm, id)
	}

	updated := alarms[index].Clone()
	if err = mutate(&updated); err != nil {
		return domain.Alarm{}, err
	}

	updated.ID = id
	alarms[index] = updated

	if err = s.store(ctx, alarms); err != nil {
		return domain.Alarm{}, err
	}

	logger.DebugKV(ctx, "Alarm updated", "id", id, "time", updated.Time.String(), "enabled", updated.Enabled)

	return updated.Clone(), nil
}

// load reads and decodes the collection.
func (s *Store) load(ctx context.Context) ([]domain.Alarm, error) {
	raw, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrStorageUnavailable, s.key, err)
	}

	if !ok {
		return []domain.Alarm{}, nil
	}

	return decode(raw)
}

// store validates, encodes and writes the collection.
func (s *Store) store(ctx context.Context, alarms []domain.Alarm) error {
	if err := validate(alarms); err != nil {
		return err
	}

	data, err := encode(alarms)
	if err != nil {
		return err
	}

	if err = s.storage.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrStorageUnavailable, s.key, err)
	}

	return nil
}

// decode parses a stored blob. Empty values and JSON null are treated as an
// empty collection.
func decode(raw []byte) ([]domain.Alarm, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []domain.Alarm{}, nil
	}

	var alarms []domain.Alarm
	if err := json.Unmarshal(raw, &alarms); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptData, err)
	}

	if alarms == nil {
		return []domain.Alarm{}, nil
	}

	if err := validate(alarms); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptData, err)
	}

	return alarms, nil
}

// encode serializes the collection. A nil collection is written as [].
func encode(alarms []domain.Alarm) ([]byte, error) {
	if alarms == nil {
		alarms = []domain.Alarm{}
	}

	data, err := json.Marshal(alarms)
	if err != nil {
		return nil, fmt.Errorf("encode alarms: %w", err)
	}

	return data, nil
}

// validate checks every alarm and id uniqueness.
func validate(alarms []domain.Alarm) error {
	seen := make(map[string]struct{}, len(alarms))

	for _, alarm := range alarms {
		if err := alarm.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidAlarm, err)
		}

		if _, ok := seen[alarm.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, alarm.ID)
		}

		seen[alarm.ID] = struct{}{}
	}

	return nil
}

// indexOf returns the position of the alarm with id, or -1.
func indexOf(alarms []domain.Alarm, id string) int {
	return slices.IndexFunc(alarms, func(a domain.Alarm) bool {
		return a.ID == id
	})
}
