package profile

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"edascope/domain/dataset"
)

// correlationMatrix builds a symmetric Pearson matrix over the numeric
// columns using pairwise-complete observations. Pairs with undefined
// correlation (constant column, fewer than two shared observations) report
// 0 off the diagonal; the diagonal is always 1. Returns nil when the
// dataset has fewer than two numeric columns.
func correlationMatrix(ds *dataset.Dataset) *CorrelationMatrix {
	numeric := ds.NumericColumns()
	if len(numeric) < 2 {
		return nil
	}

	names := make([]string, len(numeric))
	for i, col := range numeric {
		names[i] = col.Name
	}

	values := make([][]float64, len(numeric))
	for i := range values {
		values[i] = make([]float64, len(numeric))
		values[i][i] = 1
	}

	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			r := pairwiseCorrelation(numeric[i], numeric[j])
			values[i][j] = r
			values[j][i] = r
		}
	}

	return &CorrelationMatrix{Columns: names, Values: values}
}

// pairwiseCorrelation computes Pearson r over rows where both columns have
// a value
func pairwiseCorrelation(a, b *dataset.Column) float64 {
	var xs, ys []float64
	for i := range a.Numbers {
		if a.Missing[i] || b.Missing[i] || math.IsNaN(a.Numbers[i]) || math.IsNaN(b.Numbers[i]) {
			continue
		}
		xs = append(xs, a.Numbers[i])
		ys = append(ys, b.Numbers[i])
	}
	if len(xs) < 2 {
		return 0
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}
