package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"

	"edascope/domain/dataset"
)

// CoercionConfig defines the type inference thresholds
type CoercionConfig struct {
	NumericThreshold   float64 // fraction of non-missing values that must parse as numbers
	TimestampThreshold float64 // fraction of non-missing values that must parse as timestamps
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NumericThreshold:   0.8,
		TimestampThreshold: 0.8,
	}
}

// TypeCoercer infers column types from raw cells using ratio thresholds
type TypeCoercer struct {
	config CoercionConfig
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

// missingTokens are the cell values treated as nulls, case-folded
var missingTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"null": {},
	"nan":  {},
	"none": {},
}

// IsMissing reports whether a trimmed cell is a recognized null token
func (c *TypeCoercer) IsMissing(cell string) bool {
	_, ok := missingTokens[strings.ToLower(cell)]
	return ok
}

// CoerceColumn classifies a column and, for numeric columns, parses the
// values. Classification looks at non-missing cells only: a column that is
// mostly numbers becomes numeric, mostly timestamps becomes datetime,
// anything else stays categorical. An all-missing column is categorical.
func (c *TypeCoercer) CoerceColumn(name string, cells []string, missing []bool) dataset.Column {
	col := dataset.Column{
		Name:    name,
		Type:    dataset.TypeCategorical,
		Cells:   cells,
		Missing: missing,
	}

	validCount := 0
	numericCount := 0
	timestampCount := 0
	for i, cell := range cells {
		if missing[i] {
			continue
		}
		validCount++
		if _, ok := parseNumeric(cell); ok {
			numericCount++
		}
		if _, ok := parseTimestamp(cell); ok {
			timestampCount++
		}
	}

	if validCount == 0 {
		return col
	}

	numericRatio := float64(numericCount) / float64(validCount)
	timestampRatio := float64(timestampCount) / float64(validCount)

	// Numeric wins over datetime: bare numbers are never read as dates
	switch {
	case numericRatio >= c.config.NumericThreshold:
		col.Type = dataset.TypeNumeric
		col.Numbers = make([]float64, len(cells))
		for i, cell := range cells {
			if missing[i] {
				col.Numbers[i] = math.NaN()
				continue
			}
			if v, ok := parseNumeric(cell); ok {
				col.Numbers[i] = v
			} else {
				col.Numbers[i] = math.NaN()
				col.Missing[i] = true
			}
		}
	case timestampRatio >= c.config.TimestampThreshold:
		col.Type = dataset.TypeDatetime
	}

	return col
}

// parseNumeric parses a cell as a float, tolerating thousands separators
// and a leading currency sign or trailing percent sign
func parseNumeric(cell string) (float64, bool) {
	s := strings.ReplaceAll(cell, ",", "")
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// timestampLayouts are tried in order
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"01/02/2006 15:04",
	"02-Jan-2006",
}

// parseTimestamp parses a cell as a timestamp using the known layouts
func parseTimestamp(cell string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
