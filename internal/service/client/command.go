package client

import (
	"context"
	"fmt"
	"io"

	"github.com/oshokin/alarm-manager/internal/config"
	domain "github.com/oshokin/alarm-manager/internal/domain/alarm"
	"github.com/oshokin/alarm-manager/internal/logger"
	"github.com/oshokin/alarm-manager/internal/repository/alarms"
	"github.com/oshokin/alarm-manager/internal/repository/kv"
	"github.com/oshokin/alarm-manager/internal/service/common"
	"github.com/oshokin/alarm-manager/internal/service/editor"
	"github.com/oshokin/alarm-manager/internal/service/manager"
)

// Alarms is the set of operations alarmctl needs. Both the local manager and
// the remote gRPC client provide it.
type Alarms interface {
	List(ctx context.Context) ([]domain.Alarm, error)
	Get(ctx context.Context, id string) (domain.Alarm, bool, error)
	Create(ctx context.Context, alarm domain.Alarm) (domain.Alarm, error)
	Save(ctx context.Context, alarm domain.Alarm) (domain.Alarm, error)
	Edit(ctx context.Context, id string, changes editor.Changes) (domain.Alarm, error)
	SetEnabled(ctx context.Context, id string, enabled bool) (domain.Alarm, error)
	Delete(ctx context.Context, id string) error
}

var (
	_ Alarms = (*manager.Manager)(nil)
	_ Alarms = (*common.Client)(nil)
)

// Options configures where alarmctl reads and writes alarms.
type Options struct {
	// ConfigPath to YAML settings file, defaults apply when it does not exist.
	ConfigPath string

	// Remote sends commands to the alarm server instead of the local storage.
	Remote bool

	// ServerAddress overrides server address from config when specified.
	ServerAddress string

	// StorageBackend overrides the configured storage backend for local runs.
	StorageBackend string

	// StoragePath overrides the configured storage path for local runs.
	StoragePath string
}

// Connect returns the alarm operations selected by opts and a closer that
// releases the storage or the connection behind them.
func Connect(ctx context.Context, opts *Options) (Alarms, io.Closer, error) {
	ctx = logger.WithName(ctx, "alarmctl")

	settings, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load settings: %w", err)
	}

	if opts.StorageBackend != "" {
		settings.Storage.Backend = opts.StorageBackend
		settings.Storage.Path = ""
	}

	if opts.StoragePath != "" {
		settings.Storage.Path = opts.StoragePath
	}

	if opts.ServerAddress != "" {
		settings.ServerAddress = opts.ServerAddress
	}

	if err = config.Validate(settings); err != nil {
		return nil, nil, fmt.Errorf("validate settings: %w", err)
	}

	logger.Configure(settings.LogLevel, settings.LogFormat)

	if opts.Remote {
		return connectRemote(ctx, settings)
	}

	storage, closer, err := kv.Open(ctx, settings.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}

	logger.DebugKV(
		ctx,
		"Using local storage",
		"storage_backend", settings.Storage.Backend,
		"storage_path", settings.Storage.Path,
	)

	store := alarms.NewStore(storage, alarms.WithKey(settings.Storage.Key))

	return manager.New(store), closer, nil
}

func connectRemote(ctx context.Context, settings *config.Config) (Alarms, io.Closer, error) {
	// Identify current user and hostname for audit logging.
	actor, err := common.DetectActor()
	if err != nil {
		logger.WarnKV(ctx, "Cannot detect actor", "error", err)
	}

	client, err := common.Dial(
		ctx,
		settings.ServerAddress,
		common.WithCallTimeout(settings.Timeout),
		common.WithActor(actor),
	)
	if err != nil {
		return nil, nil, err
	}

	logger.DebugKV(ctx, "Using alarm server", "server_address", settings.ServerAddress)

	return client, client, nil
}
