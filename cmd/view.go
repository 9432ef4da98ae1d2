package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"onelevel.dev/pkg/onelevel/internal/domain"
	m "onelevel.dev/pkg/onelevel/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View previously stored check reports",
		Long:  "View the reports written by the last check from the reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportsPath := m.Path(viper.GetString(outputFlagName))
			return workflow.View(cmd.Context(), domain.ViewArgs{Reports: reportsPath})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
