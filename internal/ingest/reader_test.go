package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"edascope/domain/dataset"
	"edascope/internal/errors"
)

// TestReadCSVBasic verifies a well-formed CSV becomes a typed dataset
func TestReadCSVBasic(t *testing.T) {
	csvData := "name,age,city\nAlice,30,Boston\nBob,25,Denver\nCarol,41,Boston\n"

	reader := NewReader()
	ds, err := reader.Read(strings.NewReader(csvData), "people.csv")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	rows, cols := ds.Shape()
	if rows != 3 || cols != 3 {
		t.Fatalf("Expected shape 3x3, got %dx%d", rows, cols)
	}
	if ds.SourceFilename != "people.csv" {
		t.Errorf("Expected source filename people.csv, got %s", ds.SourceFilename)
	}

	age := ds.Column("age")
	if age == nil {
		t.Fatal("Expected an age column")
	}
	if age.Type != dataset.TypeNumeric {
		t.Errorf("Expected age to be numeric, got %s", age.Type)
	}
	if got := age.Numbers[0]; got != 30 {
		t.Errorf("Expected first age 30, got %v", got)
	}

	city := ds.Column("city")
	if city.Type != dataset.TypeCategorical {
		t.Errorf("Expected city to be categorical, got %s", city.Type)
	}
	if city.DistinctCount() != 2 {
		t.Errorf("Expected 2 distinct cities, got %d", city.DistinctCount())
	}
}

// TestReadCSVMissingTokens verifies null tokens are recognized regardless
// of case and do not break numeric parsing
func TestReadCSVMissingTokens(t *testing.T) {
	csvData := "value\n1\nNA\n3\nnull\n5\n"

	reader := NewReader()
	ds, err := reader.Read(strings.NewReader(csvData), "data.csv")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	col := ds.Column("value")
	if col.Type != dataset.TypeNumeric {
		t.Fatalf("Expected numeric column, got %s", col.Type)
	}
	if col.MissingCount() != 2 {
		t.Errorf("Expected 2 missing cells, got %d", col.MissingCount())
	}
	values := col.NumericValues()
	if len(values) != 3 {
		t.Errorf("Expected 3 numeric values, got %d", len(values))
	}
}

// TestReadCSVZeroDataRows verifies a header-only file loads as an empty
// dataset rather than failing
func TestReadCSVZeroDataRows(t *testing.T) {
	reader := NewReader()
	ds, err := reader.Read(strings.NewReader("a,b,c\n"), "empty.csv")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	rows, cols := ds.Shape()
	if rows != 0 || cols != 3 {
		t.Errorf("Expected shape 0x3, got %dx%d", rows, cols)
	}
}

// TestReadCSVMalformed verifies a ragged CSV surfaces as invalid input
func TestReadCSVMalformed(t *testing.T) {
	reader := NewReader()
	_, err := reader.Read(strings.NewReader("a,b\n1,2,3\n"), "bad.csv")
	if err == nil {
		t.Fatal("Expected an error for ragged CSV")
	}
	if errors.GetCode(err) != errors.CodeInvalidInput {
		t.Errorf("Expected INVALID_INPUT, got %s", errors.GetCode(err))
	}
}

// TestReadEmptyFile verifies a zero-byte upload is rejected
func TestReadEmptyFile(t *testing.T) {
	reader := NewReader()
	_, err := reader.Read(strings.NewReader(""), "empty.csv")
	if err == nil {
		t.Fatal("Expected an error for an empty file")
	}
	if errors.GetCode(err) != errors.CodeInvalidInput {
		t.Errorf("Expected INVALID_INPUT, got %s", errors.GetCode(err))
	}
}

// TestReadUnsupportedExtension verifies unknown formats are rejected
func TestReadUnsupportedExtension(t *testing.T) {
	reader := NewReader()
	_, err := reader.Read(strings.NewReader("hello"), "notes.txt")
	if err == nil {
		t.Fatal("Expected an error for a .txt upload")
	}
	if errors.GetCode(err) != errors.CodeInvalidInput {
		t.Errorf("Expected INVALID_INPUT, got %s", errors.GetCode(err))
	}
}

// TestReadCSVWindows1252 verifies the encoding fallback chain handles
// non-UTF-8 bytes
func TestReadCSVWindows1252(t *testing.T) {
	// "café" with the Windows-1252 byte 0xE9 for é
	raw := []byte("name\ncaf\xe9\n")

	reader := NewReader()
	ds, err := reader.Read(bytes.NewReader(raw), "latin.csv")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got := ds.Column("name").Cells[0]; got != "café" {
		t.Errorf("Expected café after decoding, got %q", got)
	}
}

// TestReadCSVBOMStripped verifies a UTF-8 BOM does not pollute the first
// header name
func TestReadCSVBOMStripped(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("id,value\n1,2\n")...)

	reader := NewReader()
	ds, err := reader.Read(bytes.NewReader(raw), "bom.csv")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if ds.Columns[0].Name != "id" {
		t.Errorf("Expected first header id, got %q", ds.Columns[0].Name)
	}
}

// TestReadCSVBlankHeaders verifies blank header cells get positional names
func TestReadCSVBlankHeaders(t *testing.T) {
	reader := NewReader()
	ds, err := reader.Read(strings.NewReader("a,,c\n1,2,3\n"), "headers.csv")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if ds.Columns[1].Name != "column_2" {
		t.Errorf("Expected column_2 for the blank header, got %q", ds.Columns[1].Name)
	}
}

// TestReadExcel verifies the first sheet of a workbook round-trips into a
// dataset, including rows where excelize drops trailing empty cells
func TestReadExcel(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"product", "price"},
		{"widget", 9.5},
		{"gadget", nil}, // trailing empty cell
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("Failed to build workbook: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}

	reader := NewReader()
	ds, err := reader.Read(&buf, "products.xlsx")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	rowCount, cols := ds.Shape()
	if rowCount != 2 || cols != 2 {
		t.Fatalf("Expected shape 2x2, got %dx%d", rowCount, cols)
	}
	price := ds.Column("price")
	if price.MissingCount() != 1 {
		t.Errorf("Expected 1 missing price, got %d", price.MissingCount())
	}
}

// TestReadExcelGarbage verifies bytes that are not a workbook fail as
// invalid input
func TestReadExcelGarbage(t *testing.T) {
	reader := NewReader()
	_, err := reader.Read(strings.NewReader("this is not a zip"), "fake.xlsx")
	if err == nil {
		t.Fatal("Expected an error for a non-workbook upload")
	}
	if errors.GetCode(err) != errors.CodeInvalidInput {
		t.Errorf("Expected INVALID_INPUT, got %s", errors.GetCode(err))
	}
}
