package iard

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// SourceContent wraps one file's source text in the request body.
type SourceContent struct {
	Content string `json:"content"`
}

// AnalysisRequest is the submission body: project-relative path to source text.
type AnalysisRequest struct {
	Code map[string]SourceContent `json:"code"`
}

// RawVulnerability is one structured vulnerability record as returned by the
// service. Location references are embedded in the description as
// "path#line" or "path#line-line" fragments.
type RawVulnerability struct {
	Check       string `json:"check"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Confidence  string `json:"confidence"`
}

// SeverityCode tolerates the two shapes the linter uses for severities:
// numeric codes and token strings.
type SeverityCode string

func (s *SeverityCode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = SeverityCode(str)
		return nil
	}
	var code int
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("severity is neither a string nor a number: %s", data)
	}
	*s = SeverityCode(strconv.Itoa(code))
	return nil
}

// RawLintIssue is one pre-parsed linter record.
type RawLintIssue struct {
	FilePath string       `json:"filePath"`
	Line     int          `json:"line"`
	Column   int          `json:"column"`
	Severity SeverityCode `json:"severity"`
	Message  string       `json:"message"`
	RuleID   string       `json:"ruleId"`
	Category string       `json:"category"`
}

// AnalysisResponse is the service response for one submitted bundle.
// The linter field arrives either as a pre-parsed array of issue records or
// as one free-text blob, so it is decoded in a second step.
type AnalysisResponse struct {
	Result []RawVulnerability `json:"result"`
	Linter json.RawMessage    `json:"linter"`
}

// LintIssues decodes the linter field as a pre-parsed array.
func (r *AnalysisResponse) LintIssues() ([]RawLintIssue, bool) {
	if len(r.Linter) == 0 {
		return nil, false
	}
	var issues []RawLintIssue
	if err := json.Unmarshal(r.Linter, &issues); err != nil {
		return nil, false
	}
	return issues, true
}

// LintBlob decodes the linter field as a free-text blob.
func (r *AnalysisResponse) LintBlob() (string, bool) {
	if len(r.Linter) == 0 {
		return "", false
	}
	var blob string
	if err := json.Unmarshal(r.Linter, &blob); err != nil {
		return "", false
	}
	return blob, true
}
