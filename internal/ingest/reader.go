package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"edascope/domain/dataset"
	"edascope/internal/errors"
)

// Reader parses uploaded CSV and Excel files into an in-memory Dataset
type Reader struct {
	coercer *TypeCoercer
}

// NewReader creates a reader with default coercion rules
func NewReader() *Reader {
	return &Reader{coercer: NewTypeCoercer(DefaultCoercionConfig())}
}

// Read parses the uploaded file. The format is chosen by extension:
// .csv goes through the encoding fallback chain, .xlsx/.xls through excelize.
func (r *Reader) Read(src io.Reader, filename string) (*dataset.Dataset, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read uploaded file")
	}
	if len(data) == 0 {
		return nil, errors.InvalidInput("uploaded file is empty")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	var rows [][]string
	switch ext {
	case ".csv":
		rows, err = r.readCSV(data)
	case ".xlsx", ".xls":
		rows, err = r.readExcel(data)
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unsupported file type: %s", ext))
	}
	if err != nil {
		return nil, err
	}

	ds, err := r.buildDataset(rows, filename)
	if err != nil {
		return nil, err
	}
	log.Printf("[Reader] Parsed %s: %d rows, %d columns", filename, ds.RowCount, len(ds.Columns))
	return ds, nil
}

// readCSV decodes the bytes and parses them as CSV
func (r *Reader) readCSV(data []byte) ([][]string, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(text))
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput,
			errors.Wrap(err, "malformed CSV"))
	}
	if len(rows) == 0 {
		return nil, errors.InvalidInput("CSV file has no rows")
	}
	return rows, nil
}

// readExcel reads the first sheet of an Excel workbook
func (r *Reader) readExcel(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput,
			errors.Wrap(err, "failed to open Excel file"))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.InvalidInput("Excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput,
			errors.Wrapf(err, "failed to read sheet %s", sheets[0]))
	}
	if len(rows) == 0 {
		return nil, errors.InvalidInput("Excel sheet is empty")
	}

	// excelize drops trailing empty cells, pad every row to the header width
	width := len(rows[0])
	for i := range rows {
		for len(rows[i]) < width {
			rows[i] = append(rows[i], "")
		}
	}
	return rows, nil
}

// decodeText converts raw bytes to a UTF-8 string, trying UTF-8 first and
// falling back to Windows-1252 and then Latin-1, the same chain the
// dashboard accepts for uploads.
func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}) // strip UTF-8 BOM

	if utf8.Valid(data) {
		return string(data), nil
	}

	if decoded, err := charmap.Windows1252.NewDecoder().Bytes(data); err == nil {
		return string(decoded), nil
	}
	if decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data); err == nil {
		return string(decoded), nil
	}
	return "", errors.InvalidInput("could not decode file with any supported encoding")
}

// buildDataset converts raw rows (header first) into a typed Dataset
func (r *Reader) buildDataset(rows [][]string, filename string) (*dataset.Dataset, error) {
	headerRow := rows[0]
	if len(headerRow) == 0 {
		return nil, errors.InvalidInput("file has no columns")
	}

	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		name := strings.TrimSpace(header)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		headers[i] = name
	}

	dataRows := rows[1:]
	columns := make([]dataset.Column, len(headers))
	for j, name := range headers {
		cells := make([]string, len(dataRows))
		missing := make([]bool, len(dataRows))
		for i, row := range dataRows {
			cell := ""
			if j < len(row) {
				cell = strings.TrimSpace(row[j])
			}
			cells[i] = cell
			missing[i] = r.coercer.IsMissing(cell)
		}
		columns[j] = r.coercer.CoerceColumn(name, cells, missing)
	}

	return &dataset.Dataset{
		SourceFilename: filename,
		UploadedAt:     time.Now(),
		Columns:        columns,
		RowCount:       len(dataRows),
	}, nil
}
