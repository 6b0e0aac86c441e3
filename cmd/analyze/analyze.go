package analyze

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IARD-Solutions/solidity-analyzer/internal/analyzer"
	"github.com/IARD-Solutions/solidity-analyzer/internal/discovery"
	"github.com/IARD-Solutions/solidity-analyzer/internal/findings"
	"github.com/IARD-Solutions/solidity-analyzer/internal/iard"
	"github.com/IARD-Solutions/solidity-analyzer/internal/report"
	"github.com/IARD-Solutions/solidity-analyzer/internal/sarif"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/config"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/errors"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/files"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/logger"
)

const (
	formatJSON  = "json"
	formatSARIF = "sarif"
)

// RunOptionsAnalyze holds the arguments for the analyze command.
type RunOptionsAnalyze struct {
	File     string
	Output   string
	Format   string
	NoLint   bool
	Severity string
}

// Global variables for configuration and command arguments
var (
	AppConfig      *config.Config
	analyzeOptions RunOptionsAnalyze

	exampleAnalyzeUsage = `  # Analyze the current directory as one project
  solidity-analyzer analyze

  # Analyze a project folder and save the findings as a JSON report
  solidity-analyzer analyze --output results/report.json /projects/token

  # Analyze one file together with everything it imports
  solidity-analyzer analyze --file contracts/Vault.sol /projects/token

  # Export SARIF for a code scanning upload
  solidity-analyzer analyze --format sarif --output report.sarif /projects/token

  # Show only medium and worse findings, skipping linter output
  solidity-analyzer analyze --severity medium --no-lint /projects/token`
)

// AnalyzeCmd represents the analyze command.
var AnalyzeCmd = &cobra.Command{
	Use:                   "analyze [--file/-f PATH] [--output/-o PATH] [--format json|sarif] [--no-lint] [--severity LEVEL] [PROJECT_PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleAnalyzeUsage,
	Short:                 "Analyze a Solidity project with the IARD analysis service",
	Long: `Analyze discovers the Solidity sources of a project, groups files that
import each other into one submission, sends every group to the analysis
service and prints the normalized findings. With --file only that file and
the contracts it transitively imports are submitted.`,
	RunE: runAnalyzeCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runAnalyzeCommand executes the analyze command.
func runAnalyzeCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "analyze")

	if err := validateAnalyzeArgs(&analyzeOptions, args); err != nil {
		logger.Error("invalid analyze arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid analyze arguments: %w", err), 1)
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

	var result *analyzer.Result
	if analyzeOptions.File != "" {
		result, err = engine.AnalyzeCurrent(cmd.Context(), root, analyzeOptions.File)
	} else {
		result, err = engine.AnalyzeAll(cmd.Context(), root)
	}
	if err != nil {
		logger.Error("analysis failed", "error", err)
		return errors.NewCommandError(err, 1)
	}

	if analyzeOptions.NoLint {
		result.Linter = []findings.Finding{}
	}

	if err := report.RenderTerminal(renderedResult(result, &analyzeOptions), os.Stdout); err != nil {
		logger.Error("failed to render the report", "error", err)
		return errors.NewCommandError(err, 1)
	}

	if analyzeOptions.Output != "" {
		path, err := writeReport(result, &analyzeOptions)
		if err != nil {
			logger.Error("failed to write the report", "error", err)
			return errors.NewCommandError(err, 1)
		}
		logger.Info("report saved", "path", path, "format", analyzeOptions.Format)
	}

	logger.Info("analyze command completed successfully",
		"run_id", result.RunID,
		"vulnerabilities", len(result.Vulnerabilities),
		"lint_issues", len(result.Linter))
	return nil
}

// renderedResult applies the presentation-only severity filter. The report
// written to disk always keeps the complete result.
func renderedResult(result *analyzer.Result, options *RunOptionsAnalyze) *analyzer.Result {
	if options.Severity == "" {
		return result
	}

	threshold := findings.ParseSeverity(options.Severity).Rank()
	rendered := *result
	rendered.Vulnerabilities = keepAtOrAbove(result.Vulnerabilities, threshold)
	rendered.Linter = keepAtOrAbove(result.Linter, threshold)
	return &rendered
}

func keepAtOrAbove(list []findings.Finding, threshold int) []findings.Finding {
	kept := make([]findings.Finding, 0, len(list))
	for _, finding := range list {
		if finding.Severity.Rank() <= threshold {
			kept = append(kept, finding)
		}
	}
	return kept
}

// writeReport resolves the output path and writes the report in the requested
// format, returning the final file path.
func writeReport(result *analyzer.Result, options *RunOptionsAnalyze) (string, error) {
	nameTemplate := fmt.Sprintf("solidity-analyzer-report-%s.%s", result.RunID, options.Format)
	fullPath, folder, err := files.DetermineFileFullPath(options.Output, nameTemplate)
	if err != nil {
		return "", err
	}
	if err := files.CreateFolderIfNotExists(folder); err != nil {
		return "", err
	}

	if options.Format == formatSARIF {
		file, err := os.Create(fullPath)
		if err != nil {
			return "", fmt.Errorf("failed to create report file %q: %w", fullPath, err)
		}
		defer file.Close()
		return fullPath, sarif.Write(result, file)
	}

	return fullPath, files.WriteJSONFile(fullPath, result)
}

func init() {
	AnalyzeCmd.Flags().StringVarP(&analyzeOptions.File, "file", "f", "", "Analyze a single file together with its transitive imports instead of the whole project.")
	AnalyzeCmd.Flags().StringVarP(&analyzeOptions.Output, "output", "o", "", "Path to the report file or directory the report will be saved to.")
	AnalyzeCmd.Flags().StringVar(&analyzeOptions.Format, "format", formatJSON, "Report file format: json or sarif.")
	AnalyzeCmd.Flags().BoolVar(&analyzeOptions.NoLint, "no-lint", false, "Drop linter results from the report.")
	AnalyzeCmd.Flags().StringVar(&analyzeOptions.Severity, "severity", "", "Show only findings of this severity or worse (e.g. medium).")
	AnalyzeCmd.Flags().BoolP("help", "h", false, "Show help for the analyze command.")
}
