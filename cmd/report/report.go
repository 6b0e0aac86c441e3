package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IARD-Solutions/solidity-analyzer/internal/analyzer"
	htmlreport "github.com/IARD-Solutions/solidity-analyzer/internal/report"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/config"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/errors"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/files"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/logger"
)

const defaultTitle = "Solidity Analyzer Report"

// RunOptionsReport holds the arguments for the report command.
type RunOptionsReport struct {
	Input  string
	Output string
	Title  string
}

// Global variables for configuration and command arguments
var (
	AppConfig     *config.Config
	reportOptions RunOptionsReport

	exampleReportUsage = `  # Render a saved JSON report as an HTML page next to it
  solidity-analyzer report --input results/report.json

  # Render with a custom location and page title
  solidity-analyzer report -i report.json -o public/audit.html --title "Token audit"`
)

// ReportCmd represents the report command.
var ReportCmd = &cobra.Command{
	Use:                   "report --input/-i PATH [--output/-o PATH] [--title TITLE]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleReportUsage,
	Short:                 "Render a saved JSON report as a standalone HTML page",
	RunE:                  runReportCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runReportCommand executes the report command.
func runReportCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "report")

	if err := validateReportArgs(&reportOptions, args); err != nil {
		logger.Error("invalid report arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid report arguments: %w", err), 1)
	}

	result, err := readResult(reportOptions.Input)
	if err != nil {
		logger.Error("failed to load the analysis report", "error", err)
		return errors.NewCommandError(err, 1)
	}

	outputPath, err := writeHTMLReport(result, &reportOptions)
	if err != nil {
		logger.Error("failed to write the HTML report", "error", err)
		return errors.NewCommandError(err, 1)
	}

	logger.Info("report command completed successfully", "path", outputPath)
	return nil
}

// readResult decodes a report previously written by the analyze command.
func readResult(path string) (*analyzer.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %q: %w", path, err)
	}

	var result analyzer.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode report %q: %w", path, err)
	}
	return &result, nil
}

// writeHTMLReport renders the result into the output file. Without --output
// the page lands next to the input with an .html extension.
func writeHTMLReport(result *analyzer.Result, options *RunOptionsReport) (string, error) {
	outputPath := options.Output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(options.Input, filepath.Ext(options.Input)) + ".html"
	}

	fullPath, folder, err := files.DetermineFileFullPath(outputPath, "solidity-analyzer-report.html")
	if err != nil {
		return "", err
	}
	if err := files.CreateFolderIfNotExists(folder); err != nil {
		return "", err
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create report file %q: %w", fullPath, err)
	}
	defer file.Close()

	title := options.Title
	if title == "" {
		title = defaultTitle
	}
	return fullPath, htmlreport.WriteHTML(result, title, file)
}

func init() {
	ReportCmd.Flags().StringVarP(&reportOptions.Input, "input", "i", "", "Path to a JSON report produced by the analyze command.")
	ReportCmd.Flags().StringVarP(&reportOptions.Output, "output", "o", "", "Path to the HTML file or directory the page will be saved to.")
	ReportCmd.Flags().StringVar(&reportOptions.Title, "title", "", "Title of the HTML page.")
	ReportCmd.Flags().BoolP("help", "h", false, "Show help for the report command.")
}
