package iard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/config"
)

func testConfig(endpoint string) *config.Config {
	cfg := config.NewDefault()
	cfg.Service.Endpoint = endpoint
	cfg.Service.APIKey = "test-key"
	return cfg
}

func TestNewRequiresAPIKey(t *testing.T) {
	cfg := config.NewDefault()
	cfg.Service.Endpoint = "https://analysis.example.com"

	_, err := New(cfg, hclog.NewNullLogger())
	assert.ErrorContains(t, err, "no API key configured")
}

func TestAnalyze(t *testing.T) {
	var gotKey string
	var gotBody AnalysisRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-KEY")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"result": [{"check": "reentrancy", "title": "Reentrancy", "description": "d", "impact": "High", "confidence": "Medium"}],
			"linter": "contracts/Token.sol\n  1:1  error  Compiler version not fixed  compiler-fixed"
		}`))
	}))
	defer server.Close()

	client, err := New(testConfig(server.URL), hclog.NewNullLogger())
	require.NoError(t, err)

	bundle := map[string]SourceContent{
		"contracts/Token.sol": {Content: "contract Token {}"},
	}
	resp, err := client.Analyze(context.Background(), bundle)
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "contract Token {}", gotBody.Code["contracts/Token.sol"].Content)

	require.Len(t, resp.Result, 1)
	assert.Equal(t, "reentrancy", resp.Result[0].Check)

	blob, ok := resp.LintBlob()
	require.True(t, ok)
	assert.Contains(t, blob, "compiler-fixed")
	_, isArray := resp.LintIssues()
	assert.False(t, isArray)
}

func TestAnalyzeLintArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"result": [],
			"linter": [{"filePath": "Token.sol", "line": 3, "column": 5, "severity": 2, "message": "m", "ruleId": "quotes"}]
		}`))
	}))
	defer server.Close()

	client, err := New(testConfig(server.URL), hclog.NewNullLogger())
	require.NoError(t, err)

	resp, err := client.Analyze(context.Background(), nil)
	require.NoError(t, err)

	issues, ok := resp.LintIssues()
	require.True(t, ok)
	require.Len(t, issues, 1)
	assert.Equal(t, "Token.sol", issues[0].FilePath)
	assert.Equal(t, SeverityCode("2"), issues[0].Severity)
}

func TestAnalyzeNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := New(testConfig(server.URL), hclog.NewNullLogger())
	require.NoError(t, err)

	_, err = client.Analyze(context.Background(), nil)
	assert.ErrorContains(t, err, "401 on analysis submission")
}

func TestSeverityCodeUnmarshal(t *testing.T) {
	var issue RawLintIssue

	require.NoError(t, json.Unmarshal([]byte(`{"severity": 2}`), &issue))
	assert.Equal(t, SeverityCode("2"), issue.Severity)

	require.NoError(t, json.Unmarshal([]byte(`{"severity": "warning"}`), &issue))
	assert.Equal(t, SeverityCode("warning"), issue.Severity)

	assert.Error(t, json.Unmarshal([]byte(`{"severity": {"x": 1}}`), &issue))
}
