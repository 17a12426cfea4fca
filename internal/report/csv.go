package report

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"edascope/internal/errors"
	"edascope/internal/profile"
)

// RenderCSV writes the headline metrics as a metric,value CSV
func RenderCSV(prof *profile.Profile) ([]byte, error) {
	records := [][]string{
		{"Metric", "Value"},
		{"Source file", prof.SourceFilename},
		{"Total Rows", fmt.Sprintf("%d", prof.Shape.Rows)},
		{"Total Columns", fmt.Sprintf("%d", prof.Shape.Cols)},
		{"Duplicate Rows", fmt.Sprintf("%d", prof.DuplicateRows)},
		{"Missing Cells", fmt.Sprintf("%d", prof.TotalMissing())},
	}
	for _, col := range prof.Columns {
		records = append(records, []string{
			fmt.Sprintf("Missing %% (%s)", col.Name),
			fmt.Sprintf("%.2f", col.MissingPct),
		})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, errors.Wrap(err, "failed to write summary CSV")
	}
	return buf.Bytes(), nil
}
