package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"

	api "github.com/oshokin/alarm-manager/internal/api/grpc/alarm"
	"github.com/oshokin/alarm-manager/internal/config"
	"github.com/oshokin/alarm-manager/internal/logger"
	"github.com/oshokin/alarm-manager/internal/repository/alarms"
	"github.com/oshokin/alarm-manager/internal/repository/kv"
	"github.com/oshokin/alarm-manager/internal/service/manager"
)

// Options controls the alarm-server process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// StorageBackend overrides the configured storage backend when set.
	StorageBackend string
	// StoragePath overrides the configured storage path when set.
	StoragePath string
}

// ErrNoServerAddress indicates missing server configuration.
var ErrNoServerAddress = errors.New("no server address configured")

// Run starts the gRPC server and blocks until context is canceled or server stops.
// Loads configuration first, then determines listen address from config or override.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "alarm-server")

	settings, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if err = applyOverrides(settings, opts); err != nil {
		return err
	}

	logger.Configure(settings.LogLevel, settings.LogFormat)

	// Determine listen address: CLI argument overrides config port extraction.
	listenAddress, err := resolveListenAddress(settings.ServerAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	storage, closer, err := kv.Open(ctx, settings.Storage)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	defer func() {
		if closeErr := closer.Close(); closeErr != nil {
			logger.Errorf(ctx, "Failed to close storage: %v", closeErr)
		}
	}()

	store := alarms.NewStore(storage, alarms.WithKey(settings.Storage.Key))

	// Setup TCP listener for gRPC server.
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(api.LoggingInterceptor(ctx)))
	api.RegisterAlarmServiceServer(grpcServer, api.NewServer(manager.New(store)))

	logger.InfoKV(
		ctx,
		"Alarm server listening",
		"listen_address", lis.Addr().String(),
		"storage_backend", settings.Storage.Backend,
		"storage_path", settings.Storage.Path,
	)

	if err = serve(ctx, grpcServer, lis); err != nil {
		return err
	}

	logger.Info(ctx, "GRPC server stopped")

	return nil
}

// serve runs grpcServer on lis until ctx is canceled or Serve fails.
// It returns only after the shutdown goroutine has finished.
func serve(ctx context.Context, grpcServer *grpc.Server, lis net.Listener) error {
	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Done channel is closed after GracefulStop finishes to ensure we block
	// until the server fully stops before returning.
	done := make(chan struct{})

	go func() {
		<-serveCtx.Done()
		logger.Info(ctx, "Shutting down gRPC server")
		grpcServer.GracefulStop()
		close(done)
	}()

	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		cancel()
		<-done

		return fmt.Errorf("serve gRPC: %w", err)
	}

	<-done

	return nil
}

// applyOverrides replaces configured storage settings with command line values
// and revalidates the result.
func applyOverrides(settings *config.Config, opts *Options) error {
	if opts.StorageBackend != "" {
		settings.Storage.Backend = opts.StorageBackend
		settings.Storage.Path = ""
	}

	if opts.StoragePath != "" {
		settings.Storage.Path = opts.StoragePath
	}

	if err := config.Validate(settings); err != nil {
		return fmt.Errorf("validate settings: %w", err)
	}

	return nil
}

// resolveListenAddress determines the listen address for the gRPC server.
// If override is provided, uses it directly. Otherwise extracts port from configAddr.
// Returns appropriate listen address (e.g., ":8080" for port-only binding).
func resolveListenAddress(configAddr, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if configAddr == "" {
		return "", ErrNoServerAddress
	}

	_, port, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid server address format %q: %w", configAddr, err)
	}

	return ":" + port, nil
}
