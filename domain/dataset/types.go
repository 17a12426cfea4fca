package dataset

import (
	"math"
	"time"
)

// ColumnType classifies a column after type inference
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
	TypeDatetime    ColumnType = "datetime"
)

// Column holds one named column of the in-memory table.
//
// Cells keeps the raw (trimmed) text for every row. Missing marks cells
// that held a recognized null token. Numbers is populated only for numeric
// columns and carries NaN in missing slots so positions line up with rows.
type Column struct {
	Name    string     `json:"name"`
	Type    ColumnType `json:"type"`
	Cells   []string   `json:"-"`
	Missing []bool     `json:"-"`
	Numbers []float64  `json:"-"`
}

// MissingCount returns the number of missing cells in the column
func (c *Column) MissingCount() int {
	count := 0
	for _, m := range c.Missing {
		if m {
			count++
		}
	}
	return count
}

// DistinctCount returns the number of distinct non-missing values
func (c *Column) DistinctCount() int {
	seen := make(map[string]struct{}, len(c.Cells))
	for i, cell := range c.Cells {
		if c.Missing[i] {
			continue
		}
		seen[cell] = struct{}{}
	}
	return len(seen)
}

// NumericValues returns the non-missing parsed values, in row order.
// Returns nil for non-numeric columns.
func (c *Column) NumericValues() []float64 {
	if c.Type != TypeNumeric {
		return nil
	}
	values := make([]float64, 0, len(c.Numbers))
	for i, v := range c.Numbers {
		if c.Missing[i] || math.IsNaN(v) {
			continue
		}
		values = append(values, v)
	}
	return values
}

// ValueCounts returns the occurrence count of each non-missing value
func (c *Column) ValueCounts() map[string]int {
	counts := make(map[string]int)
	for i, cell := range c.Cells {
		if c.Missing[i] {
			continue
		}
		counts[cell]++
	}
	return counts
}

// Dataset is the in-memory tabular representation of an uploaded file.
// It lives in the session store for the lifetime of the browser session
// and is replaced wholesale on re-upload; every derived view (profile,
// chart series, insight prompts) is a pure function of it.
type Dataset struct {
	SourceFilename string    `json:"source_filename"`
	UploadedAt     time.Time `json:"uploaded_at"`
	Columns        []Column  `json:"columns"`
	RowCount       int       `json:"row_count"`
}

// Shape returns (rows, columns)
func (d *Dataset) Shape() (int, int) {
	return d.RowCount, len(d.Columns)
}

// ColumnNames returns the column names in order
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		names[i] = col.Name
	}
	return names
}

// Column returns the column with the given name, or nil
func (d *Dataset) Column(name string) *Column {
	for i := range d.Columns {
		if d.Columns[i].Name == name {
			return &d.Columns[i]
		}
	}
	return nil
}

// NumericColumns returns pointers to all numeric columns in order
func (d *Dataset) NumericColumns() []*Column {
	var cols []*Column
	for i := range d.Columns {
		if d.Columns[i].Type == TypeNumeric {
			cols = append(cols, &d.Columns[i])
		}
	}
	return cols
}

// CategoricalColumns returns pointers to all categorical columns in order
func (d *Dataset) CategoricalColumns() []*Column {
	var cols []*Column
	for i := range d.Columns {
		if d.Columns[i].Type == TypeCategorical {
			cols = append(cols, &d.Columns[i])
		}
	}
	return cols
}

// Row materializes row i as raw cells in column order
func (d *Dataset) Row(i int) []string {
	row := make([]string, len(d.Columns))
	for j := range d.Columns {
		row[j] = d.Columns[j].Cells[i]
	}
	return row
}

// Head returns up to n rows for previews and prompt context
func (d *Dataset) Head(n int) [][]string {
	if n > d.RowCount {
		n = d.RowCount
	}
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, d.Row(i))
	}
	return rows
}
