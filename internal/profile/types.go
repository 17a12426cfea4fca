package profile

import (
	"time"

	"edascope/domain/dataset"
)

// Shape holds the dataset dimensions
type Shape struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// NumericStats is the describe() block for a numeric column
type NumericStats struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std"`
	Min      float64 `json:"min"`
	Q1       float64 `json:"q1"`
	Median   float64 `json:"median"`
	Q3       float64 `json:"q3"`
	Max      float64 `json:"max"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
}

// ColumnSummary is the derived read-only view of one column
type ColumnSummary struct {
	Name          string             `json:"name"`
	Type          dataset.ColumnType `json:"type"`
	MissingCount  int                `json:"missing_count"`
	MissingPct    float64            `json:"missing_pct"`
	DistinctCount int                `json:"distinct_count"`
	Numeric       *NumericStats      `json:"numeric,omitempty"`
}

// OutlierReport holds the IQR fences and flagged rows for one numeric column
type OutlierReport struct {
	Column string  `json:"column"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
	IQR    float64 `json:"iqr"`
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
	Rows   []int   `json:"rows"`
	Count  int     `json:"count"`
}

// CorrelationMatrix is a symmetric Pearson matrix over numeric columns
type CorrelationMatrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// At returns the correlation between columns i and j
func (m *CorrelationMatrix) At(i, j int) float64 {
	return m.Values[i][j]
}

// CorrPair is a strongly correlated column pair
type CorrPair struct {
	A string  `json:"a"`
	B string  `json:"b"`
	R float64 `json:"r"`
}

// StrongPairs returns the upper-triangle pairs with |r| above the threshold
func (m *CorrelationMatrix) StrongPairs(threshold float64) []CorrPair {
	var pairs []CorrPair
	for i := 0; i < len(m.Columns); i++ {
		for j := i + 1; j < len(m.Columns); j++ {
			r := m.Values[i][j]
			if r > threshold || r < -threshold {
				pairs = append(pairs, CorrPair{A: m.Columns[i], B: m.Columns[j], R: r})
			}
		}
	}
	return pairs
}

// Profile aggregates every derived view of the current dataset. It is
// recomputed in full whenever the dataset changes; nothing mutates it
// independently.
type Profile struct {
	SourceFilename string             `json:"source_filename"`
	Shape          Shape              `json:"shape"`
	Columns        []ColumnSummary    `json:"columns"`
	DuplicateRows  int                `json:"duplicate_rows"`
	Correlation    *CorrelationMatrix `json:"correlation,omitempty"`
	Outliers       []OutlierReport    `json:"outliers"`
	GeneratedAt    time.Time          `json:"generated_at"`
}

// NumericColumnNames returns the names of numeric columns in order
func (p *Profile) NumericColumnNames() []string {
	var names []string
	for _, col := range p.Columns {
		if col.Type == dataset.TypeNumeric {
			names = append(names, col.Name)
		}
	}
	return names
}

// TotalMissing sums missing cells across all columns
func (p *Profile) TotalMissing() int {
	total := 0
	for _, col := range p.Columns {
		total += col.MissingCount
	}
	return total
}
