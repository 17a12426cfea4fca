package profile

import (
	"math"

	"github.com/montanaflynn/stats"

	"edascope/domain/dataset"
	"edascope/internal/errors"
)

// minOutlierSample is the smallest number of non-missing values for which
// the IQR fences are meaningful
const minOutlierSample = 4

// detectOutliers flags values strictly outside the IQR fences
// [Q1 - 1.5*IQR, Q3 + 1.5*IQR]. Row indices refer to dataset rows, so
// missing cells never shift the reported positions.
func detectOutliers(col *dataset.Column) (*OutlierReport, error) {
	if col.Type != dataset.TypeNumeric {
		return nil, errors.ComputationError("outlier detection requires a numeric column")
	}

	values := make([]float64, 0, len(col.Numbers))
	indices := make([]int, 0, len(col.Numbers))
	for i, v := range col.Numbers {
		if col.Missing[i] || math.IsNaN(v) {
			continue
		}
		values = append(values, v)
		indices = append(indices, i)
	}
	if len(values) < minOutlierSample {
		return nil, errors.ComputationError("not enough values for outlier detection")
	}

	q1, err := stats.Percentile(values, 25)
	if err != nil {
		return nil, err
	}
	q3, err := stats.Percentile(values, 75)
	if err != nil {
		return nil, err
	}

	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	report := &OutlierReport{
		Column: col.Name,
		Q1:     q1,
		Q3:     q3,
		IQR:    iqr,
		Lower:  lower,
		Upper:  upper,
		Rows:   []int{},
	}
	for i, v := range values {
		if v < lower || v > upper {
			report.Rows = append(report.Rows, indices[i])
		}
	}
	report.Count = len(report.Rows)
	return report, nil
}
