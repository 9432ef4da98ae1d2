package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"onelevel.dev/pkg/onelevel/internal/domain"
	m "onelevel.dev/pkg/onelevel/internal/model"
)

var checkParallelFlag int
var checkShardFlag string

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "check [paths...]",
		Short:        "Check Java sources for nested control statements",
		Long:         checkLongDescription,
		SilenceUsage: true,
		PreRun:       bindParallelFlag,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return workflow.Check(ctx, checkArgs(args, checkShardFlag))
		},
	}

	configureCheckFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func configureCheckFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&checkParallelFlag, checkParallelFlagName, "p", defaultCheckParallel, "number of parallel workers")
	cmd.Flags().StringVarP(&checkShardFlag, checkShardFlagName, "s", "", "shard index and total shard count in the format INDEX/TOTAL (e.g., 0/3)")
}

// bindParallelFlag points check.parallel at the flag of the command being run,
// since check and watch both declare --parallel.
func bindParallelFlag(cmd *cobra.Command, _ []string) {
	bindFlagToConfig(cmd.Flags().Lookup(checkParallelFlagName), checkParallelConfigKey)
}

func checkArgs(args []string, shard string) domain.CheckArgs {
	shardIndex, totalShards := parseShardFlag(shard)

	return domain.CheckArgs{
		SourceArgs:      sourceArgs(args),
		Reports:         m.Path(viper.GetString(outputFlagName)),
		UseCache:        !viper.GetBool(noCacheFlagName),
		Threads:         viper.GetInt(checkParallelConfigKey),
		ShardIndex:      shardIndex,
		TotalShardCount: totalShards,
	}
}

func parseShardFlag(shard string) (int, int) {
	if shard == "" {
		return 0, 1
	}

	var index, total int

	_, err := fmt.Sscanf(shard, "%d/%d", &index, &total)
	if err != nil || total <= 0 || index < 0 || index >= total {
		return 0, 1
	}

	return index, total
}
