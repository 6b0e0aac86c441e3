package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IARD-Solutions/solidity-analyzer/internal/analyzer"
	"github.com/IARD-Solutions/solidity-analyzer/internal/findings"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/files"
)

func sampleResult() *analyzer.Result {
	return &analyzer.Result{
		RunID:       "run-42",
		Root:        "/projects/token",
		GeneratedAt: time.Date(2024, 5, 14, 10, 0, 0, 0, time.UTC),
		Vulnerabilities: []findings.Finding{{
			Kind:        findings.KindVulnerability,
			Check:       "reentrancy-eth",
			Severity:    findings.SeverityHigh,
			Description: "Reentrancy in Vault.withdraw (Vault.sol#10-12)",
			Locations: []findings.Location{{
				File:   "Vault.sol",
				Ranges: []findings.LineRange{{Start: 10, End: 12}},
			}},
		}},
		Linter: []findings.Finding{},
	}
}

func TestReadResultRoundTrip(t *testing.T) {
	inputPath := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, files.WriteJSONFile(inputPath, sampleResult()))

	result, err := readResult(inputPath)
	require.NoError(t, err)
	assert.Equal(t, "run-42", result.RunID)
	assert.Equal(t, "/projects/token", result.Root)
	require.Len(t, result.Vulnerabilities, 1)
	assert.Equal(t, findings.SeverityHigh, result.Vulnerabilities[0].Severity)
	assert.Equal(t, []findings.LineRange{{Start: 10, End: 12}}, result.Vulnerabilities[0].Locations[0].Ranges)
}

func TestReadResultRejectsMalformedJSON(t *testing.T) {
	inputPath := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(inputPath, []byte("{"), 0644))

	_, err := readResult(inputPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode report")
}

func TestWriteHTMLReportDefaultsNextToInput(t *testing.T) {
	dir := t.TempDir()
	options := RunOptionsReport{Input: filepath.Join(dir, "report.json")}

	outputPath, err := writeHTMLReport(sampleResult(), &options)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.html"), outputPath)

	page, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(page), defaultTitle)
	assert.Contains(t, string(page), "reentrancy-eth")
	assert.Contains(t, string(page), "Vault.sol")
}

func TestWriteHTMLReportIntoFolder(t *testing.T) {
	dir := t.TempDir()
	options := RunOptionsReport{
		Input:  filepath.Join(dir, "report.json"),
		Output: dir,
		Title:  "Token audit",
	}

	outputPath, err := writeHTMLReport(sampleResult(), &options)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "solidity-analyzer-report.html"), outputPath)

	page, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(page), "Token audit")
}

func TestValidateReportArgs(t *testing.T) {
	existing := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(existing, []byte("{}"), 0644))

	testCases := []struct {
		name    string
		options RunOptionsReport
		args    []string
		wantErr string
	}{
		{
			name:    "existing input accepted",
			options: RunOptionsReport{Input: existing},
		},
		{
			name:    "positional arguments rejected",
			options: RunOptionsReport{Input: existing},
			args:    []string{"extra"},
			wantErr: "unexpected positional arguments",
		},
		{
			name:    "missing input flag",
			wantErr: "'input' flag must be specified",
		},
		{
			name:    "absent input file",
			options: RunOptionsReport{Input: filepath.Join(t.TempDir(), "absent.json")},
			wantErr: "failed to validate path",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateReportArgs(&tc.options, tc.args)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
