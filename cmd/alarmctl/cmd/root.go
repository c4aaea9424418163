package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-manager/internal/config"
	"github.com/oshokin/alarm-manager/internal/logger"
	"github.com/oshokin/alarm-manager/internal/service/client"
	"github.com/oshokin/alarm-manager/internal/version"
)

var (
	// options selects local storage or a remote alarm server.
	options client.Options

	// rootCmd represents the base command for managing alarms.
	rootCmd = &cobra.Command{
		Use:   "alarmctl",
		Short: "Manage alarms.",
		Long: `Lists, creates, edits, toggles and deletes alarms.

By default the alarms are read from and written to the storage configured in the
settings file. With --remote the commands are sent to a running alarm-server instead.`,
		SilenceUsage: true,
	}
)

// run wraps an action with signal handling and a connection to the alarms.
func run(action func(ctx context.Context, svc client.Alarms, cmd *cobra.Command) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		svc, closer, err := client.Connect(ctx, &options)
		if err != nil {
			return err
		}

		defer func() {
			if closeErr := closer.Close(); closeErr != nil {
				logger.Errorf(ctx, "Failed to close: %v", closeErr)
			}
		}()

		return action(ctx, svc, cmd)
	}
}

// Execute runs the alarmctl CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&options.ConfigPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.BoolVarP(&options.Remote, "remote", "r", false, "send commands to the alarm server")
	flags.StringVarP(&options.ServerAddress, "server", "a", "", "alarm server address override")
	flags.StringVarP(&options.StorageBackend, "storage-backend", "b", "", "storage backend override (file, sqlite, memory)")
	flags.StringVarP(&options.StoragePath, "storage-path", "s", "", "storage directory or database file override")

	rootCmd.AddCommand(
		newListCommand(),
		newAddCommand(),
		newShowCommand(),
		newEditCommand(),
		newToggleCommand(true),
		newToggleCommand(false),
		newDeleteCommand(),
	)
}
