package sarif

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IARD-Solutions/solidity-analyzer/internal/analyzer"
	"github.com/IARD-Solutions/solidity-analyzer/internal/findings"
)

type sarifDocument struct {
	Version string `json:"version"`
	Runs    []struct {
		Tool struct {
			Driver struct {
				Name  string `json:"name"`
				Rules []struct {
					ID string `json:"id"`
				} `json:"rules"`
			} `json:"driver"`
		} `json:"tool"`
		Results []struct {
			RuleID  string `json:"ruleId"`
			Level   string `json:"level"`
			Message struct {
				Text string `json:"text"`
			} `json:"message"`
			Locations []struct {
				PhysicalLocation struct {
					ArtifactLocation struct {
						URI string `json:"uri"`
					} `json:"artifactLocation"`
					Region struct {
						StartLine   int `json:"startLine"`
						EndLine     int `json:"endLine"`
						StartColumn int `json:"startColumn"`
					} `json:"region"`
				} `json:"physicalLocation"`
			} `json:"locations"`
		} `json:"results"`
	} `json:"runs"`
}

func TestWrite(t *testing.T) {
	result := &analyzer.Result{
		RunID: "run-1",
		Vulnerabilities: []findings.Finding{
			{
				Kind:        findings.KindVulnerability,
				Check:       "reentrancy-eth",
				Title:       "Reentrancy",
				Description: "Reentrancy in Vault.withdraw (contracts/Vault.sol#10-12)",
				Severity:    findings.SeverityHigh,
				Confidence:  findings.ConfidenceHigh,
				Locations: []findings.Location{
					{File: "contracts/Vault.sol", Ranges: []findings.LineRange{{Start: 10, End: 12}}},
				},
			},
			{
				Kind:        findings.KindVulnerability,
				Check:       "pragma",
				Description: "Inconsistent pragma directives",
				Severity:    findings.SeverityInformational,
				Locations:   []findings.Location{{}},
			},
		},
		Linter: []findings.Finding{
			{
				Kind:        findings.KindLintIssue,
				Check:       "avoid-tx-origin",
				Description: "Avoid using tx.origin",
				Severity:    findings.SeverityMedium,
				Column:      5,
				Locations: []findings.Location{
					{File: "contracts/Token.sol", Ranges: []findings.LineRange{{Start: 14, End: 14}}},
				},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(result, &buf))

	var doc sarifDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "2.1.0", doc.Version)
	require.Len(t, doc.Runs, 1)

	run := doc.Runs[0]
	assert.Equal(t, "solidity-analyzer", run.Tool.Driver.Name)
	require.Len(t, run.Results, 3)

	vuln := run.Results[0]
	assert.Equal(t, "reentrancy-eth", vuln.RuleID)
	assert.Equal(t, "error", vuln.Level)
	require.Len(t, vuln.Locations, 1)
	physical := vuln.Locations[0].PhysicalLocation
	assert.Equal(t, "contracts/Vault.sol", physical.ArtifactLocation.URI)
	assert.Equal(t, 10, physical.Region.StartLine)
	assert.Equal(t, 12, physical.Region.EndLine)

	placeholder := run.Results[1]
	assert.Equal(t, "note", placeholder.Level)
	assert.Empty(t, placeholder.Locations)

	lint := run.Results[2]
	assert.Equal(t, "avoid-tx-origin", lint.RuleID)
	assert.Equal(t, "warning", lint.Level)
	require.Len(t, lint.Locations, 1)
	assert.Equal(t, 5, lint.Locations[0].PhysicalLocation.Region.StartColumn)
}

func TestWriteEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&analyzer.Result{}, &buf))

	var doc sarifDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Runs, 1)
	assert.Empty(t, doc.Runs[0].Results)
}

func TestToErrorLevel(t *testing.T) {
	tests := []struct {
		severity findings.Severity
		expected string
	}{
		{findings.SeverityCritical, "error"},
		{findings.SeverityHigh, "error"},
		{findings.SeverityMedium, "warning"},
		{findings.SeverityLow, "note"},
		{findings.SeverityOptimization, "note"},
		{findings.SeverityInformational, "note"},
		{findings.SeverityUnknown, "none"},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			assert.Equal(t, tt.expected, toErrorLevel(tt.severity))
		})
	}
}
