package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-manager/internal/service/client"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all alarms.",
		Args:    cobra.NoArgs,
		RunE: run(func(ctx context.Context, svc client.Alarms, cmd *cobra.Command) error {
			return client.List(ctx, svc, cmd.OutOrStdout())
		}),
	}
}

func newAddCommand() *cobra.Command {
	var req client.AddRequest

	cmd := &cobra.Command{
		Use:   "add HH:MM",
		Short: "Create an alarm.",
		Long:  "Create an alarm at the given time of day. Without --days it rings every day.",
		Args:  cobra.ExactArgs(1),
		PreRun: func(_ *cobra.Command, args []string) {
			req.Time = args[0]
		},
		RunE: run(func(ctx context.Context, svc client.Alarms, cmd *cobra.Command) error {
			return client.Add(ctx, svc, cmd.OutOrStdout(), req)
		}),
	}

	cmd.Flags().StringVarP(&req.Days, "days", "d", "", "comma-separated weekdays, e.g. mon,wed,fri")
	cmd.Flags().BoolVar(&req.Disabled, "disabled", false, "create the alarm switched off")

	return cmd
}

func newShowCommand() *cobra.Command {
	var id string

	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one alarm.",
		Args:  cobra.ExactArgs(1),
		PreRun: func(_ *cobra.Command, args []string) {
			id = args[0]
		},
		RunE: run(func(ctx context.Context, svc client.Alarms, cmd *cobra.Command) error {
			return client.Show(ctx, svc, cmd.OutOrStdout(), id)
		}),
	}
}

func newEditCommand() *cobra.Command {
	var (
		id  string
		req client.EditRequest
	)

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change the time, days or state of an alarm.",
		Long: `Change an alarm. Only the given options are applied; the enabled state
is kept unless --enable or --disable is passed.`,
		Args: cobra.ExactArgs(1),
		PreRun: func(_ *cobra.Command, args []string) {
			id = args[0]
		},
		RunE: run(func(ctx context.Context, svc client.Alarms, cmd *cobra.Command) error {
			return client.Edit(ctx, svc, cmd.OutOrStdout(), id, req)
		}),
	}

	flags := cmd.Flags()
	flags.StringVarP(&req.Time, "time", "t", "", "new time of day, HH:MM")
	flags.StringVarP(&req.Days, "days", "d", "", "new comma-separated weekdays")
	flags.BoolVar(&req.ClearDays, "clear-days", false, "ring every day")
	flags.BoolVar(&req.Enable, "enable", false, "switch the alarm on")
	flags.BoolVar(&req.Disable, "disable", false, "switch the alarm off")
	cmd.MarkFlagsMutuallyExclusive("enable", "disable")
	cmd.MarkFlagsMutuallyExclusive("days", "clear-days")

	return cmd
}

func newToggleCommand(enabled bool) *cobra.Command {
	var id string

	use, short := "disable ID", "Switch an alarm off."
	if enabled {
		use, short = "enable ID", "Switch an alarm on."
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		PreRun: func(_ *cobra.Command, args []string) {
			id = args[0]
		},
		RunE: run(func(ctx context.Context, svc client.Alarms, cmd *cobra.Command) error {
			return client.SetEnabled(ctx, svc, cmd.OutOrStdout(), id, enabled)
		}),
	}
}

func newDeleteCommand() *cobra.Command {
	var id string

	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete an alarm.",
		Args:    cobra.ExactArgs(1),
		PreRun: func(_ *cobra.Command, args []string) {
			id = args[0]
		},
		RunE: run(func(ctx context.Context, svc client.Alarms, cmd *cobra.Command) error {
			return client.Delete(ctx, svc, cmd.OutOrStdout(), id)
		}),
	}
}
