// Package report renders downloadable exports of the current analysis:
// a self-contained HTML report, an Excel workbook and a CSV summary.
package report

import (
	"bytes"
	_ "embed"
	"html/template"
	"time"

	"github.com/gomarkdown/markdown"

	"edascope/domain/dataset"
	"edascope/internal/errors"
	"edascope/internal/profile"
)

//go:embed report.html.tmpl
var reportTemplate string

// htmlData is the template context for the HTML report
type htmlData struct {
	GeneratedAt string
	Filename    string
	Profile     *profile.Profile
	Preview     [][]string
	Headers     []string
	Insights    []renderedInsight
}

type renderedInsight struct {
	Title string
	Body  template.HTML
}

// insightTitles maps insight kinds to report section headings
var insightTitles = map[string]string{
	"summary":         "Dataset Summary",
	"data_quality":    "Data Quality",
	"insights":        "Key Insights",
	"recommendations": "Recommendations",
}

// RenderHTML builds the full HTML report. insights maps insight kind to
// the markdown text collected from the model; pass nil when no insights
// were generated.
func RenderHTML(ds *dataset.Dataset, prof *profile.Profile, insights map[string]string) ([]byte, error) {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse report template")
	}

	data := htmlData{
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
		Filename:    ds.SourceFilename,
		Profile:     prof,
		Preview:     ds.Head(10),
		Headers:     ds.ColumnNames(),
	}
	for _, kind := range []string{"summary", "data_quality", "insights", "recommendations"} {
		if text, ok := insights[kind]; ok && text != "" {
			data.Insights = append(data.Insights, renderedInsight{
				Title: insightTitles[kind],
				Body:  template.HTML(markdown.ToHTML([]byte(text), nil, nil)),
			})
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "failed to render report")
	}
	return buf.Bytes(), nil
}
