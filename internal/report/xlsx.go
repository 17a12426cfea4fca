package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"edascope/internal/errors"
	"edascope/internal/profile"
)

// RenderXLSX builds an Excel workbook with the profile summary: an
// Overview sheet, a per-column sheet and, when present, an Outliers sheet.
func RenderXLSX(prof *profile.Profile) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	overview := "Overview"
	if err := f.SetSheetName("Sheet1", overview); err != nil {
		return nil, errors.Wrap(err, "failed to rename sheet")
	}

	overviewRows := [][]interface{}{
		{"Metric", "Value"},
		{"Source file", prof.SourceFilename},
		{"Rows", prof.Shape.Rows},
		{"Columns", prof.Shape.Cols},
		{"Duplicate rows", prof.DuplicateRows},
		{"Missing cells", prof.TotalMissing()},
	}
	if err := writeRows(f, overview, overviewRows); err != nil {
		return nil, err
	}

	columns := "Columns"
	if _, err := f.NewSheet(columns); err != nil {
		return nil, errors.Wrap(err, "failed to add sheet")
	}
	columnRows := [][]interface{}{
		{"Name", "Type", "Missing", "Missing %", "Distinct", "Mean", "Std", "Min", "Q1", "Median", "Q3", "Max"},
	}
	for _, col := range prof.Columns {
		row := []interface{}{
			col.Name, string(col.Type), col.MissingCount,
			fmt.Sprintf("%.2f", col.MissingPct), col.DistinctCount,
		}
		if col.Numeric != nil {
			row = append(row,
				col.Numeric.Mean, col.Numeric.StdDev, col.Numeric.Min,
				col.Numeric.Q1, col.Numeric.Median, col.Numeric.Q3, col.Numeric.Max)
		}
		columnRows = append(columnRows, row)
	}
	if err := writeRows(f, columns, columnRows); err != nil {
		return nil, err
	}

	if len(prof.Outliers) > 0 {
		outliers := "Outliers"
		if _, err := f.NewSheet(outliers); err != nil {
			return nil, errors.Wrap(err, "failed to add sheet")
		}
		outlierRows := [][]interface{}{
			{"Column", "Outliers", "Lower bound", "Upper bound"},
		}
		for _, report := range prof.Outliers {
			outlierRows = append(outlierRows, []interface{}{
				report.Column, report.Count, report.Lower, report.Upper,
			})
		}
		if err := writeRows(f, outliers, outlierRows); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to write workbook")
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.Wrap(err, "failed to build cell name")
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrapf(err, "failed to write row %d of %s", i+1, sheet)
		}
	}
	return nil
}
