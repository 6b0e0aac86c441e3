package findings

import (
	"sort"
	"strings"
)

// Kind distinguishes the two classes of findings the analysis service returns.
type Kind string

const (
	KindVulnerability Kind = "vulnerability"
	KindLintIssue     Kind = "lint-issue"
)

// Severity is the closed severity vocabulary. Unrecognized service values
// fall back to SeverityUnknown instead of erroring.
type Severity string

const (
	SeverityCritical      Severity = "Critical"
	SeverityHigh          Severity = "High"
	SeverityMedium        Severity = "Medium"
	SeverityLow           Severity = "Low"
	SeverityOptimization  Severity = "Optimization"
	SeverityInformational Severity = "Informational"
	SeverityUnknown       Severity = "Unknown"
)

// severityRank orders severities for rendering, most severe first.
var severityRank = map[Severity]int{
	SeverityCritical:      0,
	SeverityHigh:          1,
	SeverityMedium:        2,
	SeverityLow:           3,
	SeverityOptimization:  4,
	SeverityInformational: 5,
	SeverityUnknown:       6,
}

// Rank returns the sort position of the severity; unknown values sort last.
func (s Severity) Rank() int {
	if rank, ok := severityRank[s]; ok {
		return rank
	}
	return severityRank[SeverityUnknown]
}

// ParseSeverity maps a raw service label onto the closed vocabulary.
func ParseSeverity(raw string) Severity {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "critical":
		return SeverityCritical
	case "high":
		return SeverityHigh
	case "medium":
		return SeverityMedium
	case "low":
		return SeverityLow
	case "optimization":
		return SeverityOptimization
	case "informational", "info":
		return SeverityInformational
	default:
		return SeverityUnknown
	}
}

// Confidence is the closed confidence vocabulary attached to vulnerabilities.
type Confidence string

const (
	ConfidenceHigh    Confidence = "High"
	ConfidenceMedium  Confidence = "Medium"
	ConfidenceLow     Confidence = "Low"
	ConfidenceUnknown Confidence = "Unknown"
)

// ParseConfidence maps a raw service label onto the closed vocabulary.
func ParseConfidence(raw string) Confidence {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high":
		return ConfidenceHigh
	case "medium":
		return ConfidenceMedium
	case "low":
		return ConfidenceLow
	default:
		return ConfidenceUnknown
	}
}

// Location ties a finding to one file and the coalesced line ranges within it.
// An empty File marks the unknown-location placeholder.
type Location struct {
	File   string      `json:"file"`
	Ranges []LineRange `json:"ranges"`
}

// Unknown reports whether the location is the unknown-location placeholder.
func (l Location) Unknown() bool {
	return l.File == ""
}

// Finding is the unified internal record for vulnerabilities and lint issues.
type Finding struct {
	Kind        Kind       `json:"kind"`
	Check       string     `json:"check,omitempty"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description"`
	Severity    Severity   `json:"severity"`
	Confidence  Confidence `json:"confidence,omitempty"`
	Category    string     `json:"category,omitempty"`
	Column      int        `json:"column,omitempty"`
	Locations   []Location `json:"locations"`
}

// PrimaryFile returns the file of the first real location, or "" when the
// finding only carries the unknown-location placeholder.
func (f Finding) PrimaryFile() string {
	for _, loc := range f.Locations {
		if !loc.Unknown() {
			return loc.File
		}
	}
	return ""
}

// EnsureLocation guarantees the finding carries at least the unknown-location
// placeholder so it is never silently dropped from the output.
func EnsureLocation(f Finding) Finding {
	if len(f.Locations) == 0 {
		f.Locations = []Location{{}}
	}
	return f
}

// Sort orders findings by severity rank, then by primary file path.
// Findings without a file location sort after those with one.
func Sort(fs []Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		ri, rj := fs[i].Severity.Rank(), fs[j].Severity.Rank()
		if ri != rj {
			return ri < rj
		}
		fi, fj := fs[i].PrimaryFile(), fs[j].PrimaryFile()
		if (fi == "") != (fj == "") {
			return fi != ""
		}
		return fi < fj
	})
}
