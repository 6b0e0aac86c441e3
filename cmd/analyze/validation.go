package analyze

import (
	"fmt"
	"strings"

	"github.com/IARD-Solutions/solidity-analyzer/internal/findings"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared"
)

// validateAnalyzeArgs validates the arguments provided to the analyze command.
func validateAnalyzeArgs(options *RunOptionsAnalyze, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("invalid argument(s) received, only one project path is allowed")
	}

	options.Format = strings.ToLower(options.Format)
	formatList := []string{formatJSON, formatSARIF}
	if !shared.IsInList(options.Format, formatList) {
		return fmt.Errorf("unknown format: %v, expected one of %v", options.Format, formatList)
	}

	if options.Severity != "" {
		parsed := findings.ParseSeverity(options.Severity)
		if parsed == findings.SeverityUnknown && !strings.EqualFold(options.Severity, string(findings.SeverityUnknown)) {
			return fmt.Errorf("unknown severity: %v", options.Severity)
		}
	}

	return nil
}
