package cmd

import (
	"github.com/spf13/cobra"

	"onelevel.dev/pkg/onelevel/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List Java sources and their primary types",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.List(cmd.Context(), domain.ListArgs{SourceArgs: sourceArgs(args)})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
