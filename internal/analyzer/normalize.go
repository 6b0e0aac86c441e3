package analyzer

import (
	"regexp"
	"strconv"

	"github.com/IARD-Solutions/solidity-analyzer/internal/findings"
	"github.com/IARD-Solutions/solidity-analyzer/internal/iard"
)

// locationRefRe matches the location references the service embeds in
// vulnerability descriptions: "path/to/File.sol#12" or "path/to/File.sol#12-15".
var locationRefRe = regexp.MustCompile(`([\w./\\-]+\.sol)#(\d+)(?:-(\d+))?`)

// normalizeVulnerabilities converts structured vulnerability records into the
// unified finding shape, extracting every location reference from the
// description. A record with no references keeps the unknown-location
// placeholder instead of being dropped.
func normalizeVulnerabilities(raw []iard.RawVulnerability) []findings.Finding {
	normalized := make([]findings.Finding, 0, len(raw))

	for _, vuln := range raw {
		finding := findings.Finding{
			Kind:        findings.KindVulnerability,
			Check:       vuln.Check,
			Title:       vuln.Title,
			Description: vuln.Description,
			Severity:    findings.ParseSeverity(vuln.Impact),
			Confidence:  findings.ParseConfidence(vuln.Confidence),
			Locations:   extractLocations(vuln.Description),
		}
		normalized = append(normalized, findings.EnsureLocation(finding))
	}

	return normalized
}

// extractLocations scans a description for embedded location references and
// returns one location per referenced file, in order of first appearance,
// with the referenced lines expanded and coalesced into ranges.
func extractLocations(description string) []findings.Location {
	var order []string
	linesByFile := make(map[string][]int)

	for _, match := range locationRefRe.FindAllStringSubmatch(description, -1) {
		file := match[1]
		start, err := strconv.Atoi(match[2])
		if err != nil || start < 1 {
			continue
		}
		end := start
		if match[3] != "" {
			if parsed, err := strconv.Atoi(match[3]); err == nil && parsed >= start {
				end = parsed
			}
		}

		if _, seen := linesByFile[file]; !seen {
			order = append(order, file)
		}
		for line := start; line <= end; line++ {
			linesByFile[file] = append(linesByFile[file], line)
		}
	}

	locations := make([]findings.Location, 0, len(order))
	for _, file := range order {
		locations = append(locations, findings.Location{
			File:   file,
			Ranges: findings.Coalesce(linesByFile[file]),
		})
	}
	return locations
}
