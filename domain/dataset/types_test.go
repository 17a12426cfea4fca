package dataset

import (
	"math"
	"testing"
)

func sampleDataset() *Dataset {
	return &Dataset{
		SourceFilename: "s.csv",
		Columns: []Column{
			{
				Name: "label", Type: TypeCategorical,
				Cells:   []string{"a", "b", "a", ""},
				Missing: []bool{false, false, false, true},
			},
			{
				Name: "value", Type: TypeNumeric,
				Cells:   []string{"1", "2", "", "4"},
				Missing: []bool{false, false, true, false},
				Numbers: []float64{1, 2, math.NaN(), 4},
			},
		},
		RowCount: 4,
	}
}

// TestShapeAndNames verifies the dimension and name accessors
func TestShapeAndNames(t *testing.T) {
	ds := sampleDataset()

	rows, cols := ds.Shape()
	if rows != 4 || cols != 2 {
		t.Errorf("Expected shape 4x2, got %dx%d", rows, cols)
	}

	names := ds.ColumnNames()
	if len(names) != 2 || names[0] != "label" || names[1] != "value" {
		t.Errorf("Unexpected column names: %v", names)
	}

	if ds.Column("value") == nil {
		t.Error("Expected to find the value column")
	}
	if ds.Column("nope") != nil {
		t.Error("Expected nil for an unknown column")
	}
}

// TestColumnCounts verifies missing, distinct and value counting
func TestColumnCounts(t *testing.T) {
	ds := sampleDataset()

	label := ds.Column("label")
	if label.MissingCount() != 1 {
		t.Errorf("Expected 1 missing label, got %d", label.MissingCount())
	}
	if label.DistinctCount() != 2 {
		t.Errorf("Expected 2 distinct labels, got %d", label.DistinctCount())
	}

	counts := label.ValueCounts()
	if counts["a"] != 2 || counts["b"] != 1 {
		t.Errorf("Unexpected value counts: %v", counts)
	}
	if _, ok := counts[""]; ok {
		t.Error("Missing cells must not be counted as a value")
	}
}

// TestNumericValues verifies NaN slots are dropped and order is kept
func TestNumericValues(t *testing.T) {
	ds := sampleDataset()

	values := ds.Column("value").NumericValues()
	want := []float64{1, 2, 4}
	if len(values) != len(want) {
		t.Fatalf("Expected %d values, got %d", len(want), len(values))
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("Value %d = %v, want %v", i, values[i], want[i])
		}
	}

	if ds.Column("label").NumericValues() != nil {
		t.Error("Expected nil numeric values for a categorical column")
	}
}

// TestTypedColumnAccessors verifies the numeric/categorical selectors
func TestTypedColumnAccessors(t *testing.T) {
	ds := sampleDataset()

	if got := ds.NumericColumns(); len(got) != 1 || got[0].Name != "value" {
		t.Errorf("Unexpected numeric columns: %v", got)
	}
	if got := ds.CategoricalColumns(); len(got) != 1 || got[0].Name != "label" {
		t.Errorf("Unexpected categorical columns: %v", got)
	}
}

// TestRowAndHead verifies row materialization and the preview cap
func TestRowAndHead(t *testing.T) {
	ds := sampleDataset()

	row := ds.Row(1)
	if row[0] != "b" || row[1] != "2" {
		t.Errorf("Unexpected row 1: %v", row)
	}

	head := ds.Head(2)
	if len(head) != 2 {
		t.Errorf("Expected 2 preview rows, got %d", len(head))
	}
	if got := ds.Head(100); len(got) != 4 {
		t.Errorf("Expected the preview to cap at the row count, got %d", len(got))
	}
}
