package analyzer

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/IARD-Solutions/solidity-analyzer/internal/findings"
	"github.com/IARD-Solutions/solidity-analyzer/internal/iard"
	"github.com/IARD-Solutions/solidity-analyzer/internal/solidity"
)

// lintLineRe matches one linter issue line: "line:col  severity  message  rule-id".
// The message and the trailing rule identifier are separated by two or more spaces.
var lintLineRe = regexp.MustCompile(`^\s*(\d+):(\d+)\s+(error|warning|warn|info)\s+(.+?)\s{2,}([\w./-]+)\s*$`)

// lintLineNoRuleRe is the fallback for issue lines without a rule identifier.
var lintLineNoRuleRe = regexp.MustCompile(`^\s*(\d+):(\d+)\s+(error|warning|warn|info)\s+(\S.*)$`)

// normalizeLinter converts the linter payload into unified findings. The
// service sends either a pre-parsed array of issue records or one free-text
// blob; a payload matching neither shape is logged and dropped as a whole,
// while individual unparseable lines inside a blob are skipped silently.
func normalizeLinter(resp *iard.AnalysisResponse, logger hclog.Logger) []findings.Finding {
	if issues, ok := resp.LintIssues(); ok {
		return normalizeLintIssues(issues)
	}
	if blob, ok := resp.LintBlob(); ok {
		return parseLintBlob(blob)
	}
	if len(resp.Linter) > 0 && string(resp.Linter) != "null" {
		logger.Warn("linter payload has an unexpected shape, dropping it", "payload", truncate(string(resp.Linter), 120))
	}
	return nil
}

// normalizeLintIssues maps pre-parsed linter records directly.
func normalizeLintIssues(issues []iard.RawLintIssue) []findings.Finding {
	normalized := make([]findings.Finding, 0, len(issues))

	for _, issue := range issues {
		finding := findings.Finding{
			Kind:        findings.KindLintIssue,
			Check:       issue.RuleID,
			Description: issue.Message,
			Severity:    mapLintSeverity(issue.Severity),
			Category:    issue.Category,
			Column:      issue.Column,
		}
		if issue.FilePath != "" {
			location := findings.Location{File: issue.FilePath}
			if issue.Line > 0 {
				location.Ranges = findings.Coalesce([]int{issue.Line})
			}
			finding.Locations = []findings.Location{location}
		}
		normalized = append(normalized, findings.EnsureLocation(finding))
	}

	return normalized
}

// parseLintBlob parses free-text linter output line by line. File-header
// lines set a running current-file context attached to the issue lines that
// follow; lines matching neither pattern are skipped.
func parseLintBlob(blob string) []findings.Finding {
	var normalized []findings.Finding
	currentFile := ""

	scanner := bufio.NewScanner(strings.NewReader(blob))
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		match := lintLineRe.FindStringSubmatch(line)
		rule := ""
		if match != nil {
			rule = match[5]
		} else {
			match = lintLineNoRuleRe.FindStringSubmatch(line)
		}
		if match == nil {
			if solidity.IsSourceFile(trimmed) && !strings.ContainsAny(trimmed, " \t") {
				currentFile = trimmed
			}
			continue
		}

		lineNo, _ := strconv.Atoi(match[1])
		column, _ := strconv.Atoi(match[2])

		finding := findings.Finding{
			Kind:        findings.KindLintIssue,
			Check:       rule,
			Description: strings.TrimSpace(match[4]),
			Severity:    mapLintSeverity(iard.SeverityCode(match[3])),
			Column:      column,
		}
		if currentFile != "" {
			location := findings.Location{File: currentFile}
			if lineNo > 0 {
				location.Ranges = findings.Coalesce([]int{lineNo})
			}
			finding.Locations = []findings.Location{location}
		}
		normalized = append(normalized, findings.EnsureLocation(finding))
	}

	return normalized
}

// mapLintSeverity maps linter severity codes and tokens onto the closed
// vocabulary: errors rank High, warnings Medium, informational notes lower.
func mapLintSeverity(code iard.SeverityCode) findings.Severity {
	switch strings.ToLower(strings.TrimSpace(string(code))) {
	case "2", "error":
		return findings.SeverityHigh
	case "1", "warning", "warn":
		return findings.SeverityMedium
	case "0", "info":
		return findings.SeverityInformational
	default:
		return findings.SeverityUnknown
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
