package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/IARD-Solutions/solidity-analyzer/internal/analyzer"
	"github.com/IARD-Solutions/solidity-analyzer/internal/findings"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	metaStyle    = lipgloss.NewStyle().Faint(true)
	fileStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))

	severityStyles = map[findings.Severity]lipgloss.Style{
		findings.SeverityCritical:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("201")),
		findings.SeverityHigh:          lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		findings.SeverityMedium:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		findings.SeverityLow:           lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		findings.SeverityOptimization:  lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
		findings.SeverityInformational: lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
		findings.SeverityUnknown:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
)

// RenderTerminal writes a colorized summary of the analysis result. Findings
// arrive already ordered by severity, so sections are printed as-is.
func RenderTerminal(result *analyzer.Result, w io.Writer) error {
	var out strings.Builder

	out.WriteString(titleStyle.Render("Solidity analysis report"))
	out.WriteString("\n")
	out.WriteString(metaStyle.Render(fmt.Sprintf("run %s, project %s, generated %s",
		result.RunID, result.Root, result.GeneratedAt.Format("2006-01-02 15:04:05 MST"))))
	out.WriteString("\n\n")

	renderSection(&out, fmt.Sprintf("Vulnerabilities (%d)", len(result.Vulnerabilities)), result.Vulnerabilities)
	out.WriteString("\n")
	renderSection(&out, fmt.Sprintf("Linter issues (%d)", len(result.Linter)), result.Linter)

	_, err := io.WriteString(w, out.String())
	return err
}

func renderSection(out *strings.Builder, header string, section []findings.Finding) {
	out.WriteString(sectionStyle.Render(header))
	out.WriteString("\n")

	if len(section) == 0 {
		out.WriteString(metaStyle.Render("  nothing found"))
		out.WriteString("\n")
		return
	}
	for _, finding := range section {
		renderFinding(out, finding)
	}
}

func renderFinding(out *strings.Builder, finding findings.Finding) {
	style, ok := severityStyles[finding.Severity]
	if !ok {
		style = severityStyles[findings.SeverityUnknown]
	}

	label := finding.Title
	if label == "" {
		label = finding.Check
	}
	if label == "" {
		label = string(finding.Kind)
	}

	out.WriteString("  ")
	out.WriteString(style.Render(fmt.Sprintf("[%s]", finding.Severity)))
	out.WriteString(" ")
	out.WriteString(label)
	if finding.Check != "" && finding.Check != label {
		out.WriteString(metaStyle.Render(" (" + finding.Check + ")"))
	}
	out.WriteString("\n      ")
	out.WriteString(fileStyle.Render(FormatLocations(finding.Locations)))
	out.WriteString("\n")

	if finding.Description != "" && finding.Description != label {
		out.WriteString("      ")
		out.WriteString(finding.Description)
		out.WriteString("\n")
	}
}

// FormatLocations renders locations in the compact "file:1-3,7" form. The
// unknown-location placeholder renders as "unknown location".
func FormatLocations(locations []findings.Location) string {
	parts := make([]string, 0, len(locations))

	for _, loc := range locations {
		if loc.Unknown() {
			parts = append(parts, "unknown location")
			continue
		}
		if len(loc.Ranges) == 0 {
			parts = append(parts, loc.File)
			continue
		}

		ranges := make([]string, 0, len(loc.Ranges))
		for _, lines := range loc.Ranges {
			if lines.Start == lines.End {
				ranges = append(ranges, strconv.Itoa(lines.Start))
			} else {
				ranges = append(ranges, fmt.Sprintf("%d-%d", lines.Start, lines.End))
			}
		}
		parts = append(parts, loc.File+":"+strings.Join(ranges, ","))
	}

	return strings.Join(parts, " ")
}
