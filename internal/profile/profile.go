// Package profile derives every statistical view of the current dataset:
// shape, per-column summaries, duplicate counts, the correlation matrix
// and IQR outlier reports. Everything here is a pure function of the
// Dataset and is recomputed in full on each upload.
package profile

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"edascope/domain/dataset"
	"edascope/internal"
	"edascope/internal/errors"
)

// Profiler computes dataset profiles
type Profiler struct {
	logger *internal.Logger
}

// NewProfiler creates a profiler
func NewProfiler() *Profiler {
	return &Profiler{logger: internal.NewDefaultLogger()}
}

// Build computes the complete profile for a dataset. Per-column summaries
// fan out on an errgroup and are written into fixed slots, so the result
// is deterministic regardless of scheduling.
func (p *Profiler) Build(ds *dataset.Dataset) (*Profile, error) {
	if ds == nil {
		return nil, errors.InvalidInput("no dataset loaded")
	}

	start := time.Now()
	rows, cols := ds.Shape()
	prof := &Profile{
		SourceFilename: ds.SourceFilename,
		Shape:          Shape{Rows: rows, Cols: cols},
		Columns:        make([]ColumnSummary, cols),
		Outliers:       []OutlierReport{},
		GeneratedAt:    time.Now(),
	}

	var g errgroup.Group
	for i := range ds.Columns {
		col := &ds.Columns[i]
		idx := i
		g.Go(func() error {
			summary, err := summarizeColumn(col, rows)
			if err != nil {
				return errors.Wrapf(err, "failed to summarize column %s", col.Name)
			}
			prof.Columns[idx] = *summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	prof.DuplicateRows = duplicateRowCount(ds)

	if rows > 0 {
		prof.Correlation = correlationMatrix(ds)
		for _, col := range ds.NumericColumns() {
			report, err := detectOutliers(col)
			if err != nil {
				// Too few values is an omission, not a failure
				p.logger.Debug("[Profiler] No outlier report for %s: %v", col.Name, err)
				continue
			}
			prof.Outliers = append(prof.Outliers, *report)
		}
	}

	p.logger.Info("[Profiler] Profiled %s: %d rows, %d columns in %s",
		ds.SourceFilename, rows, cols, time.Since(start))
	return prof, nil
}

// summarizeColumn builds the per-column view. Missing percentage is 0 for
// a zero-row dataset rather than a division by zero.
func summarizeColumn(col *dataset.Column, rows int) (*ColumnSummary, error) {
	summary := &ColumnSummary{
		Name:          col.Name,
		Type:          col.Type,
		MissingCount:  col.MissingCount(),
		DistinctCount: col.DistinctCount(),
	}
	if rows > 0 {
		summary.MissingPct = float64(summary.MissingCount) / float64(rows) * 100
	}

	if col.Type == dataset.TypeNumeric {
		values := col.NumericValues()
		if len(values) > 0 {
			numeric, err := describe(values)
			if err != nil {
				return nil, err
			}
			summary.Numeric = numeric
		}
	}

	return summary, nil
}

// duplicateRowCount counts rows that are exact duplicates of an earlier row
func duplicateRowCount(ds *dataset.Dataset) int {
	seen := make(map[string]struct{}, ds.RowCount)
	duplicates := 0
	var sb strings.Builder
	for i := 0; i < ds.RowCount; i++ {
		sb.Reset()
		for j := range ds.Columns {
			cell := ds.Columns[j].Cells[i]
			// length-prefix each cell so "a","bc" never collides with "ab","c"
			sb.WriteString(strconv.Itoa(len(cell)))
			sb.WriteByte(':')
			sb.WriteString(cell)
		}
		key := sb.String()
		if _, ok := seen[key]; ok {
			duplicates++
			continue
		}
		seen[key] = struct{}{}
	}
	return duplicates
}
