package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAnalyzeArgs(t *testing.T) {
	testCases := []struct {
		name    string
		options RunOptionsAnalyze
		args    []string
		wantErr string
	}{
		{
			name:    "defaults are valid",
			options: RunOptionsAnalyze{Format: "json"},
		},
		{
			name:    "sarif format accepted",
			options: RunOptionsAnalyze{Format: "sarif"},
			args:    []string{"/projects/token"},
		},
		{
			name:    "format is case insensitive",
			options: RunOptionsAnalyze{Format: "SARIF"},
		},
		{
			name:    "severity filter accepted",
			options: RunOptionsAnalyze{Format: "json", Severity: "medium"},
		},
		{
			name:    "unknown severity keyword accepted",
			options: RunOptionsAnalyze{Format: "json", Severity: "Unknown"},
		},
		{
			name:    "too many positional arguments",
			options: RunOptionsAnalyze{Format: "json"},
			args:    []string{"a", "b"},
			wantErr: "only one project path is allowed",
		},
		{
			name:    "unsupported format",
			options: RunOptionsAnalyze{Format: "xml"},
			wantErr: "unknown format",
		},
		{
			name:    "unsupported severity",
			options: RunOptionsAnalyze{Format: "json", Severity: "catastrophic"},
			wantErr: "unknown severity",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateAnalyzeArgs(&tc.options, tc.args)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateAnalyzeArgsNormalizesFormat(t *testing.T) {
	options := RunOptionsAnalyze{Format: "JSON"}
	require.NoError(t, validateAnalyzeArgs(&options, nil))
	assert.Equal(t, "json", options.Format)
}
