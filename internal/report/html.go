package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/IARD-Solutions/solidity-analyzer/internal/analyzer"
	"github.com/IARD-Solutions/solidity-analyzer/internal/findings"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var htmlTemplate = template.Must(template.New("report.html.tmpl").
	Funcs(template.FuncMap{
		"formatDateTime":  formatDateTime,
		"formatLocations": FormatLocations,
		"severityClass":   severityClass,
	}).
	ParseFS(templateFS, "templates/report.html.tmpl"))

// WriteHTML renders the result as a standalone HTML page.
func WriteHTML(result *analyzer.Result, title string, w io.Writer) error {
	data := struct {
		Title  string
		Result *analyzer.Result
	}{
		Title:  title,
		Result: result,
	}

	if err := htmlTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return nil
}

// severityClass maps a severity onto its CSS class suffix.
func severityClass(severity findings.Severity) string {
	return strings.ToLower(string(severity))
}

// formatDateTime renders timestamps for report headers.
func formatDateTime(t time.Time) string {
	return t.Format("Jan 2, 2006 15:04:05 MST")
}
