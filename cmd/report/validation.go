package report

import (
	"fmt"

	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/files"
)

// validateReportArgs validates the arguments provided to the report command.
func validateReportArgs(options *RunOptionsReport, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unexpected positional arguments: use the 'input' flag to pass the report")
	}

	if options.Input == "" {
		return fmt.Errorf("the 'input' flag must be specified")
	}

	expandedPath, err := files.ExpandPath(options.Input)
	if err != nil {
		return fmt.Errorf("failed to expand path %q: %w", options.Input, err)
	}
	if err := files.ValidatePath(expandedPath); err != nil {
		return fmt.Errorf("failed to validate path %q: %w", expandedPath, err)
	}
	options.Input = expandedPath

	return nil
}
