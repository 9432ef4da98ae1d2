package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"onelevel.dev/pkg/onelevel/internal/domain"
)

var watchParallelFlag int

// watchCmd represents the watch command.
var watchCmd = newWatchCmd()

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "watch [paths...]",
		Short:        "Re-check Java sources whenever they change",
		Long:         watchLongDescription,
		SilenceUsage: true,
		PreRun:       bindParallelFlag,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return workflow.Watch(ctx, domain.WatchArgs{CheckArgs: checkArgs(args, "")})
		},
	}

	cmd.Flags().IntVarP(&watchParallelFlag, checkParallelFlagName, "p", defaultCheckParallel, "number of parallel workers")

	return cmd
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
