package profile

import (
	"math"

	"github.com/montanaflynn/stats"

	"edascope/internal/errors"
)

// describe computes the full numeric summary for the non-missing values of
// a column. Quartiles come from montanaflynn percentile estimation; the
// standard deviation is the sample (n-1) form.
func describe(data []float64) (*NumericStats, error) {
	if len(data) == 0 {
		return nil, errors.ComputationError("no values to describe")
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return nil, err
	}
	min, err := stats.Min(data)
	if err != nil {
		return nil, err
	}
	max, err := stats.Max(data)
	if err != nil {
		return nil, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return nil, err
	}
	q1, err := quartile(data, 25)
	if err != nil {
		return nil, err
	}
	q3, err := quartile(data, 75)
	if err != nil {
		return nil, err
	}

	stdDev := 0.0
	if len(data) > 1 {
		stdDev, err = stats.StandardDeviationSample(data)
		if err != nil {
			return nil, err
		}
	}

	return &NumericStats{
		Count:    len(data),
		Mean:     mean,
		StdDev:   stdDev,
		Min:      min,
		Q1:       q1,
		Median:   median,
		Q3:       q3,
		Max:      max,
		Skewness: skewness(data, mean, stdDev),
		Kurtosis: kurtosis(data, mean, stdDev),
	}, nil
}

// quartile estimates a percentile, degrading to the median for samples
// too small for the estimator so tiny columns still describe
func quartile(data []float64, percent float64) (float64, error) {
	v, err := stats.Percentile(data, percent)
	if err == nil {
		return v, nil
	}
	return stats.Median(data)
}

// skewness computes sample skewness using the adjusted Fisher-Pearson
// coefficient with bias correction
func skewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumCubed := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sumCubed += d * d * d
	}

	skew := sumCubed / n
	correction := math.Sqrt(n*(n-1)) / (n - 2)
	return skew * correction
}

// kurtosis computes sample excess kurtosis
func kurtosis(data []float64, mean, stdDev float64) float64 {
	if len(data) < 4 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumFourth := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sumFourth += d * d * d * d
	}

	kurt := sumFourth/n - 3.0
	correction := (n - 1) / ((n - 2) * (n - 3))
	return correction * ((n+1)*kurt + 6)
}
