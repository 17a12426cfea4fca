// Package charts computes render-ready series for the dashboard: histogram
// bins with a density overlay, box plots, categorical bar counts and
// scatter pairs. The server ships these as JSON and the page draws them;
// nothing here is stateful and every series is regenerated on view.
package charts

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"edascope/domain/dataset"
	"edascope/internal/errors"
)

// MaxBarCardinality is the display threshold for categorical bar charts;
// columns with more distinct values than this get no bar chart.
const MaxBarCardinality = 50

// TopBarValues caps how many bars are drawn for one column
const TopBarValues = 20

// Histogram is a binned distribution with a KDE overlay evaluated at the
// bin midpoints
type Histogram struct {
	Column   string    `json:"column"`
	Edges    []float64 `json:"edges"`
	Mids     []float64 `json:"mids"`
	Counts   []int     `json:"counts"`
	Density  []float64 `json:"density"`
	BinWidth float64   `json:"bin_width"`
}

// BoxPlot is a five-number summary with whiskers at the most extreme
// values inside the IQR fences
type BoxPlot struct {
	Column      string    `json:"column"`
	Min         float64   `json:"min"`
	Q1          float64   `json:"q1"`
	Median      float64   `json:"median"`
	Q3          float64   `json:"q3"`
	Max         float64   `json:"max"`
	WhiskerLow  float64   `json:"whisker_low"`
	WhiskerHigh float64   `json:"whisker_high"`
	Outliers    []float64 `json:"outliers"`
}

// BarChart is a value-count series for one categorical column
type BarChart struct {
	Column        string   `json:"column"`
	Labels        []string `json:"labels"`
	Counts        []int    `json:"counts"`
	TotalDistinct int      `json:"total_distinct"`
}

// ScatterPlot pairs two numeric columns over rows where both have values
type ScatterPlot struct {
	X      string       `json:"x"`
	Y      string       `json:"y"`
	Points [][2]float64 `json:"points"`
}

// NewHistogram bins the non-missing values of a numeric column using the
// Sturges rule and overlays a Gaussian KDE
func NewHistogram(col *dataset.Column) (*Histogram, error) {
	values := col.NumericValues()
	if len(values) == 0 {
		return nil, errors.ComputationError("no numeric values to plot")
	}

	min, _ := stats.Min(values)
	max, _ := stats.Max(values)

	bins := sturgesBins(len(values))
	if min == max {
		bins = 1
	}

	width := (max - min) / float64(bins)
	if width == 0 {
		width = 1
	}

	h := &Histogram{
		Column:   col.Name,
		Edges:    make([]float64, bins+1),
		Mids:     make([]float64, bins),
		Counts:   make([]int, bins),
		BinWidth: width,
	}
	for i := 0; i <= bins; i++ {
		h.Edges[i] = min + float64(i)*width
	}
	for i := 0; i < bins; i++ {
		h.Mids[i] = h.Edges[i] + width/2
	}

	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= bins { // max lands in the last bin
			idx = bins - 1
		}
		h.Counts[idx]++
	}

	h.Density = kdeAt(values, h.Mids)
	return h, nil
}

// quartile estimates a percentile, degrading to the median for samples
// too small for the estimator
func quartile(values []float64, percent float64) (float64, error) {
	v, err := stats.Percentile(values, percent)
	if err == nil {
		return v, nil
	}
	return stats.Median(values)
}

// sturgesBins returns ceil(log2(n)) + 1, clamped to [1, 50]
func sturgesBins(n int) int {
	bins := int(math.Ceil(math.Log2(float64(n)))) + 1
	if bins < 1 {
		bins = 1
	}
	if bins > 50 {
		bins = 50
	}
	return bins
}

// NewBoxPlot computes the box-plot series for a numeric column
func NewBoxPlot(col *dataset.Column) (*BoxPlot, error) {
	values := col.NumericValues()
	if len(values) == 0 {
		return nil, errors.ComputationError("no numeric values to plot")
	}

	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	median, _ := stats.Median(values)
	q1, err := quartile(values, 25)
	if err != nil {
		return nil, err
	}
	q3, err := quartile(values, 75)
	if err != nil {
		return nil, err
	}

	iqr := q3 - q1
	lowerFence := q1 - 1.5*iqr
	upperFence := q3 + 1.5*iqr

	box := &BoxPlot{
		Column:      col.Name,
		Min:         min,
		Q1:          q1,
		Median:      median,
		Q3:          q3,
		Max:         max,
		WhiskerLow:  math.Inf(1),
		WhiskerHigh: math.Inf(-1),
		Outliers:    []float64{},
	}
	for _, v := range values {
		if v < lowerFence || v > upperFence {
			box.Outliers = append(box.Outliers, v)
			continue
		}
		if v < box.WhiskerLow {
			box.WhiskerLow = v
		}
		if v > box.WhiskerHigh {
			box.WhiskerHigh = v
		}
	}
	if math.IsInf(box.WhiskerLow, 1) {
		box.WhiskerLow = min
		box.WhiskerHigh = max
	}
	return box, nil
}

// NewBarChart builds value counts for a categorical column, highest counts
// first, capped at TopBarValues bars. Columns above the cardinality
// threshold are refused so the page omits the widget.
func NewBarChart(col *dataset.Column) (*BarChart, error) {
	if col.Type != dataset.TypeCategorical {
		return nil, errors.ComputationError("bar chart requires a categorical column")
	}

	counts := col.ValueCounts()
	if len(counts) == 0 {
		return nil, errors.ComputationError("no values to plot")
	}
	if len(counts) > MaxBarCardinality {
		return nil, errors.ComputationError("column cardinality exceeds display threshold")
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})

	chart := &BarChart{
		Column:        col.Name,
		TotalDistinct: len(labels),
	}
	for i, label := range labels {
		if i >= TopBarValues {
			break
		}
		chart.Labels = append(chart.Labels, label)
		chart.Counts = append(chart.Counts, counts[label])
	}
	return chart, nil
}

// NewScatter pairs two numeric columns over rows where both are present
func NewScatter(x, y *dataset.Column) (*ScatterPlot, error) {
	if x.Type != dataset.TypeNumeric || y.Type != dataset.TypeNumeric {
		return nil, errors.ComputationError("scatter plot requires two numeric columns")
	}
	if x.Name == y.Name {
		return nil, errors.ComputationError("scatter plot requires two distinct columns")
	}

	plot := &ScatterPlot{X: x.Name, Y: y.Name, Points: [][2]float64{}}
	for i := range x.Numbers {
		if x.Missing[i] || y.Missing[i] || math.IsNaN(x.Numbers[i]) || math.IsNaN(y.Numbers[i]) {
			continue
		}
		plot.Points = append(plot.Points, [2]float64{x.Numbers[i], y.Numbers[i]})
	}
	if len(plot.Points) == 0 {
		return nil, errors.ComputationError("no paired values to plot")
	}
	return plot, nil
}
