package charts

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// kdeAt evaluates a Gaussian kernel density estimate of the sample at the
// given points, using Silverman's rule of thumb for the bandwidth.
func kdeAt(sample []float64, points []float64) []float64 {
	density := make([]float64, len(points))
	if len(sample) == 0 {
		return density
	}

	h := silvermanBandwidth(sample)
	if h <= 0 {
		return density
	}

	n := float64(len(sample))
	norm := 1 / (n * h * math.Sqrt(2*math.Pi))
	for i, p := range points {
		sum := 0.0
		for _, x := range sample {
			u := (p - x) / h
			sum += math.Exp(-0.5 * u * u)
		}
		density[i] = norm * sum
	}
	return density
}

// silvermanBandwidth returns 0.9 * min(sigma, IQR/1.34) * n^(-1/5)
func silvermanBandwidth(sample []float64) float64 {
	n := float64(len(sample))
	if n < 2 {
		return 0
	}

	sigma := stat.StdDev(sample, nil)

	sorted := append([]float64(nil), sample...)
	sort.Float64s(sorted)
	q1 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	q3 := stat.Quantile(0.75, stat.Empirical, sorted, nil)
	iqrSpread := (q3 - q1) / 1.34

	spread := sigma
	if iqrSpread > 0 && iqrSpread < spread {
		spread = iqrSpread
	}
	if spread <= 0 {
		return 0
	}
	return 0.9 * spread * math.Pow(n, -0.2)
}
