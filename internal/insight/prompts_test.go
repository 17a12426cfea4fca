package insight

import (
	"strings"
	"testing"
	"time"

	"edascope/domain/dataset"
	"edascope/internal/errors"
	"edascope/internal/profile"
)

// TestParseKind verifies the accepted kinds, the default and the rejection
// of unknown values
func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
		fails bool
	}{
		{"summary", KindSummary, false},
		{"data_quality", KindDataQuality, false},
		{"insights", KindInsights, false},
		{"recommendations", KindRecommendations, false},
		{"", KindSummary, false},
		{"poetry", "", true},
	}
	for _, tt := range tests {
		kind, err := ParseKind(tt.input)
		if tt.fails {
			if err == nil {
				t.Errorf("ParseKind(%q) expected an error", tt.input)
			} else if errors.GetCode(err) != errors.CodeInvalidInput {
				t.Errorf("ParseKind(%q) expected INVALID_INPUT, got %s", tt.input, errors.GetCode(err))
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseKind(%q) failed: %v", tt.input, err)
			continue
		}
		if kind != tt.want {
			t.Errorf("ParseKind(%q) = %s, want %s", tt.input, kind, tt.want)
		}
	}
}

func promptFixture() (*dataset.Dataset, *profile.Profile) {
	ds := &dataset.Dataset{
		SourceFilename: "sales.csv",
		UploadedAt:     time.Now(),
		Columns: []dataset.Column{
			{
				Name: "region", Type: dataset.TypeCategorical,
				Cells:   []string{"north", "south", "north", "east", "west", "north", "south"},
				Missing: make([]bool, 7),
			},
			{
				Name: "revenue", Type: dataset.TypeNumeric,
				Cells:   []string{"10", "20", "30", "40", "50", "60", "70"},
				Missing: make([]bool, 7),
				Numbers: []float64{10, 20, 30, 40, 50, 60, 70},
			},
			{
				Name: "cost", Type: dataset.TypeNumeric,
				Cells:   []string{"5", "10", "15", "20", "25", "30", "35"},
				Missing: make([]bool, 7),
				Numbers: []float64{5, 10, 15, 20, 25, 30, 35},
			},
		},
		RowCount: 7,
	}

	prof, err := profile.NewProfiler().Build(ds)
	if err != nil {
		panic(err)
	}
	return ds, prof
}

// TestBuildPromptEmbedsProfile verifies shape, column inventory and
// correlation highlights reach the prompt
func TestBuildPromptEmbedsProfile(t *testing.T) {
	ds, prof := promptFixture()

	prompt := BuildPrompt(KindInsights, ds, prof)
	for _, want := range []string{
		"7 rows, 3 columns",
		"region (categorical",
		"revenue (numeric",
		"revenue and cost: 1.00",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Insights prompt missing %q\nprompt:\n%s", want, prompt)
		}
	}
}

// TestBuildPromptSampleRowsCapped verifies no more than the sample cap of
// raw rows is embedded
func TestBuildPromptSampleRowsCapped(t *testing.T) {
	ds, prof := promptFixture()

	prompt := BuildPrompt(KindSummary, ds, prof)
	if !strings.Contains(prompt, "first 5 rows") {
		t.Errorf("Expected a 5-row sample, prompt:\n%s", prompt)
	}
	if strings.Contains(prompt, "60 | 30") {
		t.Error("Row 6 leaked into the prompt sample")
	}
}

// TestBuildPromptKindsDiffer verifies each kind asks its own questions
func TestBuildPromptKindsDiffer(t *testing.T) {
	ds, prof := promptFixture()

	quality := BuildPrompt(KindDataQuality, ds, prof)
	if !strings.Contains(quality, "data quality") {
		t.Error("Quality prompt does not mention data quality")
	}
	recs := BuildPrompt(KindRecommendations, ds, prof)
	if !strings.Contains(recs, "recommendations for next steps") {
		t.Error("Recommendations prompt does not ask for next steps")
	}
	if quality == recs {
		t.Error("Expected different prompts for different kinds")
	}
}
