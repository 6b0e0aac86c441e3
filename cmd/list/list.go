package list

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IARD-Solutions/solidity-analyzer/internal/analyzer"
	"github.com/IARD-Solutions/solidity-analyzer/internal/discovery"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/config"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/errors"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/logger"
)

// Global variables for configuration and command arguments
var (
	AppConfig *config.Config

	exampleListUsage = `  # Show how the current directory would be split into submissions
  solidity-analyzer list

  # Show the submission groups of a project folder
  solidity-analyzer list /projects/token`
)

// ListCmd represents the list command.
var ListCmd = &cobra.Command{
	Use:                   "list [PROJECT_PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleListUsage,
	Short:                 "Show the file groups a project would be submitted in",
	Long: `List runs source discovery and import graph partitioning without
contacting the analysis service, printing each group of connected files
exactly as analyze would submit them.`,
	RunE: runListCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runListCommand executes the list command.
func runListCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "list")

	if len(args) > 1 {
		err := fmt.Errorf("invalid argument(s) received, only one project path is allowed")
		logger.Error("invalid list arguments", "error", err)
		return errors.NewCommandError(err, 1)
	}

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	engine := analyzer.New(logger, discovery.New(logger, nil, AppConfig.Analyzer.ExcludeDirs), nil)
	groups, err := engine.Groups(root)
	if err != nil {
		logger.Error("failed to group the project sources", "error", err)
		return errors.NewCommandError(err, 1)
	}

	for i, group := range groups {
		label := "files"
		if len(group) == 1 {
			label = "file"
		}
		fmt.Fprintf(os.Stdout, "Group %d (%d %s):\n", i+1, len(group), label)
		for _, file := range group {
			fmt.Fprintf(os.Stdout, "  %s\n", file)
		}
	}

	logger.Info("list command completed successfully", "groups", len(groups))
	return nil
}

func init() {
	ListCmd.Flags().BoolP("help", "h", false, "Show help for the list command.")
}
