// Package cmd provides the root command and CLI setup for onelevel.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"onelevel.dev/pkg/onelevel/internal/adapter"
	"onelevel.dev/pkg/onelevel/internal/controller"
	"onelevel.dev/pkg/onelevel/internal/domain"
	"onelevel.dev/pkg/onelevel/internal/domain/indentation"
	m "onelevel.dev/pkg/onelevel/internal/model"
)

var javaFileAdapter adapter.JavaFileAdapter
var sourceFSAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var watcher adapter.Watcher
var checker domain.Checker
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// noCacheFlag disables incremental caching when set.
var noCacheFlag bool

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

// includePatterns selects which files inside scanned directories are Java sources.
var includePatterns []string

var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	javaFileAdapter = adapter.NewLocalJavaFileAdapter()
	sourceFSAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore()
	watcher = adapter.NewLocalWatcher(sourceFSAdapter)
	checker = domain.NewChecker(sourceFSAdapter, javaFileAdapter, indentation.NewRule())
	workflow = domain.NewWorkflow(
		sourceFSAdapter,
		reportStore,
		watcher,
		ui,
		checker,
	)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...              recursively scan current directory
  - ./src/main/...     recursively scan src/main
  - ./src ./test       scan multiple directories (not recursive)
  - ./src/App.java     check a single file`

const rootLongDescription = `Onelevel checks Java sources against the "one level of indentation per
method" rule: a method body may hold a control statement, but that statement
may not hold another one.

` + pathPatternsHelp

const checkLongDescription = `Check the given paths (default: ./...) and store the reports.
Exits with a non-zero status when any file violates the rule or fails to parse.

` + pathPatternsHelp

const listLongDescription = `List Java sources with their primary type and method count.

` + pathPatternsHelp

const watchLongDescription = `Check the given paths, then check again whenever a Java file changes.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "onelevel",
		Short: "One level of indentation checker for Java",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd builds a root command with its persistent flags configured.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			defaultReportsDir,
			"output directory for check reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVar(&noCacheFlag, noCacheFlagName, defaultNoCache, "disable cached incremental runs (re-check everything)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(noCacheFlagName), noCacheFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", nil, "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().StringArrayVarP(&includePatterns, includeFlagName, "i", defaultIncludePatterns, "include files matching glob inside scanned directories (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(includeFlagName), includeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

func sourceArgs(args []string) domain.SourceArgs {
	return domain.SourceArgs{
		Paths:   parsePaths(args),
		Include: viper.GetStringSlice(includeConfigKey),
		Exclude: viper.GetStringSlice(excludeConfigKey),
	}
}
