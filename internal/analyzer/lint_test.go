package analyzer

import (
	"encoding/json"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IARD-Solutions/solidity-analyzer/internal/findings"
	"github.com/IARD-Solutions/solidity-analyzer/internal/iard"
)

func TestMapLintSeverity(t *testing.T) {
	tests := []struct {
		code     string
		expected findings.Severity
	}{
		{"2", findings.SeverityHigh},
		{"error", findings.SeverityHigh},
		{"Error", findings.SeverityHigh},
		{"1", findings.SeverityMedium},
		{"warning", findings.SeverityMedium},
		{"warn", findings.SeverityMedium},
		{"0", findings.SeverityInformational},
		{"info", findings.SeverityInformational},
		{"3", findings.SeverityUnknown},
		{"", findings.SeverityUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, mapLintSeverity(iard.SeverityCode(tt.code)))
		})
	}
}

func TestNormalizeLintIssues(t *testing.T) {
	issues := []iard.RawLintIssue{
		{
			FilePath: "contracts/Token.sol",
			Line:     14,
			Column:   5,
			Severity: "2",
			Message:  "Avoid using tx.origin",
			RuleID:   "avoid-tx-origin",
			Category: "security",
		},
		{
			Line:     3,
			Severity: "1",
			Message:  "Issue without a file",
			RuleID:   "no-file",
		},
		{
			FilePath: "contracts/Token.sol",
			Severity: "0",
			Message:  "Issue without a line",
			RuleID:   "no-line",
		},
	}

	normalized := normalizeLintIssues(issues)
	require.Len(t, normalized, 3)

	first := normalized[0]
	assert.Equal(t, findings.KindLintIssue, first.Kind)
	assert.Equal(t, "avoid-tx-origin", first.Check)
	assert.Equal(t, "Avoid using tx.origin", first.Description)
	assert.Equal(t, findings.SeverityHigh, first.Severity)
	assert.Equal(t, "security", first.Category)
	assert.Equal(t, 5, first.Column)
	require.Len(t, first.Locations, 1)
	assert.Equal(t, "contracts/Token.sol", first.Locations[0].File)
	assert.Equal(t, []findings.LineRange{{Start: 14, End: 14}}, first.Locations[0].Ranges)

	second := normalized[1]
	require.Len(t, second.Locations, 1)
	assert.True(t, second.Locations[0].Unknown())
	assert.Equal(t, findings.SeverityMedium, second.Severity)

	third := normalized[2]
	require.Len(t, third.Locations, 1)
	assert.Equal(t, "contracts/Token.sol", third.Locations[0].File)
	assert.Nil(t, third.Locations[0].Ranges)
}

func TestParseLintBlob(t *testing.T) {
	blob := "contracts/Token.sol\n" +
		"  10:5  error  Avoid using tx.origin  avoid-tx-origin\n" +
		"  12:1  warning  Line too long\n" +
		"\n" +
		"contracts/Vault.sol\n" +
		"  3:8  info  Consider a stricter pragma  compiler-version\n"

	normalized := parseLintBlob(blob)
	require.Len(t, normalized, 3)

	assert.Equal(t, "contracts/Token.sol", normalized[0].Locations[0].File)
	assert.Equal(t, []findings.LineRange{{Start: 10, End: 10}}, normalized[0].Locations[0].Ranges)
	assert.Equal(t, "avoid-tx-origin", normalized[0].Check)
	assert.Equal(t, "Avoid using tx.origin", normalized[0].Description)
	assert.Equal(t, findings.SeverityHigh, normalized[0].Severity)
	assert.Equal(t, 5, normalized[0].Column)

	assert.Equal(t, "contracts/Token.sol", normalized[1].Locations[0].File)
	assert.Equal(t, "Line too long", normalized[1].Description)
	assert.Empty(t, normalized[1].Check)
	assert.Equal(t, findings.SeverityMedium, normalized[1].Severity)

	assert.Equal(t, "contracts/Vault.sol", normalized[2].Locations[0].File)
	assert.Equal(t, findings.SeverityInformational, normalized[2].Severity)
}

func TestParseLintBlobSkipsMalformedLines(t *testing.T) {
	blob := "contracts/Token.sol\n" +
		"some banner the linter prints\n" +
		"  10:5  error  Avoid using tx.origin  avoid-tx-origin\n" +
		"7 problems found\n"

	normalized := parseLintBlob(blob)
	require.Len(t, normalized, 1)
	assert.Equal(t, "Avoid using tx.origin", normalized[0].Description)
	assert.Equal(t, "contracts/Token.sol", normalized[0].Locations[0].File)
}

func TestParseLintBlobIssueBeforeFileHeader(t *testing.T) {
	normalized := parseLintBlob("  4:2  warning  Orphan issue  some-rule\n")

	require.Len(t, normalized, 1)
	require.Len(t, normalized[0].Locations, 1)
	assert.True(t, normalized[0].Locations[0].Unknown())
}

func TestNormalizeLinter(t *testing.T) {
	t.Run("pre-parsed array", func(t *testing.T) {
		resp := &iard.AnalysisResponse{
			Linter: json.RawMessage(`[{"filePath":"A.sol","line":2,"severity":1,"message":"m","ruleId":"r"}]`),
		}
		normalized := normalizeLinter(resp, hclog.NewNullLogger())
		require.Len(t, normalized, 1)
		assert.Equal(t, "A.sol", normalized[0].Locations[0].File)
	})

	t.Run("free-text blob", func(t *testing.T) {
		resp := &iard.AnalysisResponse{
			Linter: json.RawMessage(`"A.sol\n  1:1  error  bad  rule\n"`),
		}
		normalized := normalizeLinter(resp, hclog.NewNullLogger())
		require.Len(t, normalized, 1)
		assert.Equal(t, findings.SeverityHigh, normalized[0].Severity)
	})

	t.Run("absent field", func(t *testing.T) {
		assert.Empty(t, normalizeLinter(&iard.AnalysisResponse{}, hclog.NewNullLogger()))
	})

	t.Run("unexpected shape", func(t *testing.T) {
		resp := &iard.AnalysisResponse{Linter: json.RawMessage(`{"oops":true}`)}
		assert.Empty(t, normalizeLinter(resp, hclog.NewNullLogger()))
	})
}
