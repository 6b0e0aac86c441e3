package cmd

import (
	goerrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IARD-Solutions/solidity-analyzer/cmd/analyze"
	"github.com/IARD-Solutions/solidity-analyzer/cmd/fetch"
	"github.com/IARD-Solutions/solidity-analyzer/cmd/list"
	"github.com/IARD-Solutions/solidity-analyzer/cmd/report"
	"github.com/IARD-Solutions/solidity-analyzer/cmd/version"
	"github.com/IARD-Solutions/solidity-analyzer/cmd/watch"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/config"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "solidity-analyzer [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Solidity Analyzer finds vulnerabilities and lint issues in smart contracts.",
		Long: `Solidity Analyzer discovers the contracts of a project, groups files that
import each other into one submission and sends every group to the IARD
analysis service, turning the raw response into normalized findings with
exact file and line locations.
`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(
		analyze.AnalyzeCmd,
		list.ListCmd,
		fetch.FetchCmd,
		watch.WatchCmd,
		report.ReportCmd,
		version.NewVersionCmd(),
	)
}

// Execute runs the root command and maps failures onto process exit codes.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		var cmdErr *errors.CommandError
		if goerrors.As(err, &cmdErr) {
			return cmdErr.ExitCode
		}
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	explicit := cfgFile != ""
	if cfgFile == "" {
		cfgFile = "config.yml"
	}

	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		// a missing default config is fine, everything has a default
		if explicit || !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "failed to load config file %q: %v\n", cfgFile, err)
			os.Exit(1)
		}
		AppConfig = config.NewDefault()
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	analyze.Init(AppConfig)
	list.Init(AppConfig)
	fetch.Init(AppConfig)
	watch.Init(AppConfig)
	report.Init(AppConfig)
	version.Init(AppConfig)
}
