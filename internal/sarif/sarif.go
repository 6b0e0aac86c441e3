package sarif

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/IARD-Solutions/solidity-analyzer/internal/analyzer"
	"github.com/IARD-Solutions/solidity-analyzer/internal/findings"
)

const (
	toolName = "solidity-analyzer"
	toolURI  = "https://github.com/IARD-Solutions/solidity-analyzer"
)

// Write renders an analysis result as a SARIF 2.1.0 document. Vulnerabilities
// and lint issues land in one run; findings without a resolvable location are
// emitted without location blocks rather than dropped.
func Write(result *analyzer.Result, w io.Writer) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, toolURI)
	for _, finding := range result.Vulnerabilities {
		addFinding(run, finding)
	}
	for _, finding := range result.Linter {
		addFinding(run, finding)
	}
	report.AddRun(run)

	if err := report.PrettyWrite(w); err != nil {
		return fmt.Errorf("failed to write SARIF report: %w", err)
	}
	return nil
}

func addFinding(run *sarif.Run, finding findings.Finding) {
	ruleID := finding.Check
	if ruleID == "" {
		ruleID = string(finding.Kind)
	}

	level := toErrorLevel(finding.Severity)
	rule := run.AddRule(ruleID).
		WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: level})
	if finding.Title != "" {
		rule.WithDescription(finding.Title)
	}

	message := finding.Description
	if message == "" {
		message = finding.Title
	}

	result := sarif.NewRuleResult(rule.ID).
		WithMessage(sarif.NewTextMessage(message)).
		WithLevel(level)
	if locations := toLocations(finding); len(locations) > 0 {
		result.WithLocations(locations)
	}
	run.AddResult(result)
}

// toLocations expands each coalesced line range into its own SARIF location.
// The unknown-location placeholder produces no locations at all.
func toLocations(finding findings.Finding) []*sarif.Location {
	var locations []*sarif.Location

	for _, loc := range finding.Locations {
		if loc.Unknown() {
			continue
		}

		artifact := sarif.NewArtifactLocation().WithUri(loc.File)
		if len(loc.Ranges) == 0 {
			locations = append(locations, sarif.NewLocation().WithPhysicalLocation(
				sarif.NewPhysicalLocation().WithArtifactLocation(artifact),
			))
			continue
		}

		for _, lines := range loc.Ranges {
			region := sarif.NewRegion().
				WithStartLine(lines.Start).
				WithEndLine(lines.End)
			if finding.Column > 0 {
				region.WithStartColumn(finding.Column)
			}
			locations = append(locations, sarif.NewLocation().WithPhysicalLocation(
				sarif.NewPhysicalLocation().
					WithArtifactLocation(sarif.NewArtifactLocation().WithUri(loc.File)).
					WithRegion(region),
			))
		}
	}

	return locations
}

func toErrorLevel(severity findings.Severity) string {
	switch severity {
	case findings.SeverityCritical, findings.SeverityHigh:
		return "error"
	case findings.SeverityMedium:
		return "warning"
	case findings.SeverityLow, findings.SeverityOptimization, findings.SeverityInformational:
		return "note"
	default:
		return "none"
	}
}
