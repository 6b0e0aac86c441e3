package watch

import (
	goerrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/IARD-Solutions/solidity-analyzer/internal/analyzer"
	"github.com/IARD-Solutions/solidity-analyzer/internal/discovery"
	"github.com/IARD-Solutions/solidity-analyzer/internal/iard"
	"github.com/IARD-Solutions/solidity-analyzer/internal/report"
	"github.com/IARD-Solutions/solidity-analyzer/internal/watcher"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/config"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/errors"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/logger"
)

// Global variables for configuration and command arguments
var (
	AppConfig *config.Config

	exampleWatchUsage = `  # Re-analyze the current directory whenever a contract changes
  solidity-analyzer watch

  # Watch a project folder
  solidity-analyzer watch /projects/token`
)

// WatchCmd represents the watch command.
var WatchCmd = &cobra.Command{
	Use:                   "watch [PROJECT_PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleWatchUsage,
	Short:                 "Watch a project and re-analyze it on every contract change",
	Long: `Watch analyzes the project, then keeps watching its folders and re-runs
the whole-project analysis whenever a Solidity source is created, changed or
removed. Changes arriving while a run is in flight are skipped with a warning.
Stop with Ctrl-C.`,
	RunE: runWatchCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runWatchCommand executes the watch command.
func runWatchCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "watch")

	if len(args) > 1 {
		err := fmt.Errorf("invalid argument(s) received, only one project path is allowed")
		logger.Error("invalid watch arguments", "error", err)
		return errors.NewCommandError(err, 1)
	}

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	client, err := iard.New(AppConfig, logger)
	if err != nil {
		logger.Error("failed to initialize the analysis client", "error", err)
		return errors.NewCommandError(err, 1)
	}

	engine := analyzer.New(logger, discovery.New(logger, nil, AppConfig.Analyzer.ExcludeDirs), client)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runAnalysis := func() {
		result, err := engine.AnalyzeAll(ctx, root)
		switch {
		case err == nil:
			if err := report.RenderTerminal(result, os.Stdout); err != nil {
				logger.Error("failed to render the report", "error", err)
			}
		case goerrors.Is(err, analyzer.ErrBusy):
			logger.Warn("an analysis is still running, skipping this change")
		case goerrors.Is(err, analyzer.ErrNoSourceFiles):
			logger.Warn("no Solidity sources found, waiting for changes", "root", root)
		case ctx.Err() != nil:
			// shutting down
		default:
			logger.Error("analysis run failed", "error", err)
		}
	}

	w, err := watcher.New(root, AppConfig.Analyzer.ExcludeDirs, runAnalysis, logger)
	if err != nil {
		logger.Error("failed to start the file watcher", "error", err)
		return errors.NewCommandError(err, 1)
	}

	logger.Info("watching for contract changes", "root", root)
	runAnalysis()

	if err := w.Watch(ctx); err != nil {
		logger.Error("watch command failed", "error", err)
		return errors.NewCommandError(err, 1)
	}

	logger.Info("watch command stopped")
	return nil
}

func init() {
	WatchCmd.Flags().BoolP("help", "h", false, "Show help for the watch command.")
}
