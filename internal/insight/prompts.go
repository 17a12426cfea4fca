package insight

import (
	"fmt"
	"strings"

	"edascope/domain/dataset"
	"edascope/internal/errors"
	"edascope/internal/profile"
)

// Kind selects the analysis angle for an insight request
type Kind string

const (
	KindSummary         Kind = "summary"
	KindDataQuality     Kind = "data_quality"
	KindInsights        Kind = "insights"
	KindRecommendations Kind = "recommendations"
)

// ParseKind validates a kind string from the request
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindSummary, KindDataQuality, KindInsights, KindRecommendations:
		return Kind(s), nil
	case "":
		return KindSummary, nil
	default:
		return "", errors.InvalidInput(fmt.Sprintf("unknown insight kind: %s", s))
	}
}

// strongCorrThreshold is the |r| above which a pair is quoted in prompts
const strongCorrThreshold = 0.5

// sampleRowsInPrompt caps how many rows of raw data go into the prompt
const sampleRowsInPrompt = 5

// BuildPrompt renders the prompt for one insight kind from the dataset and
// its profile. The prompt embeds shape, column types, the missing-value
// summary and correlation highlights; it never embeds more than a few
// sample rows.
func BuildPrompt(kind Kind, ds *dataset.Dataset, prof *profile.Profile) string {
	var sb strings.Builder

	switch kind {
	case KindDataQuality:
		sb.WriteString("Analyze data quality issues in this dataset:\n\n")
		writeOverview(&sb, prof)
		writeMissingSummary(&sb, prof)
		writeNumericStats(&sb, prof)
		sb.WriteString("\nPlease identify:\n")
		sb.WriteString("1. Data quality issues (missing values, duplicates, outliers)\n")
		sb.WriteString("2. Potential data integrity problems\n")
		sb.WriteString("3. Recommendations for data cleaning\n")

	case KindInsights:
		sb.WriteString("Provide insights and analysis of this dataset:\n\n")
		writeOverview(&sb, prof)
		writeCorrelationHighlights(&sb, prof)
		writeSampleRows(&sb, ds)
		sb.WriteString("\nPlease provide:\n")
		sb.WriteString("1. Key trends and patterns in the data\n")
		sb.WriteString("2. Important correlations and relationships\n")
		sb.WriteString("3. Notable outliers or unusual patterns\n")
		sb.WriteString("4. Business insights or observations\n")

	case KindRecommendations:
		sb.WriteString("Based on this dataset analysis, provide recommendations for next steps:\n\n")
		writeOverview(&sb, prof)
		writeMissingSummary(&sb, prof)
		sb.WriteString("\nPlease suggest:\n")
		sb.WriteString("1. Data preprocessing steps needed\n")
		sb.WriteString("2. Feature engineering opportunities\n")
		sb.WriteString("3. Potential modeling approaches\n")
		sb.WriteString("4. Additional analysis that would be valuable\n")

	default: // KindSummary
		sb.WriteString("Analyze this dataset and provide a comprehensive summary in plain English:\n\n")
		writeOverview(&sb, prof)
		writeMissingSummary(&sb, prof)
		writeSampleRows(&sb, ds)
		sb.WriteString("\nPlease provide:\n")
		sb.WriteString("1. Overall description of the dataset\n")
		sb.WriteString("2. Key characteristics of the data\n")
		sb.WriteString("3. Potential use cases or domain\n")
	}

	return sb.String()
}

func writeOverview(sb *strings.Builder, prof *profile.Profile) {
	fmt.Fprintf(sb, "Dataset information:\n")
	fmt.Fprintf(sb, "- Shape: %d rows, %d columns\n", prof.Shape.Rows, prof.Shape.Cols)
	fmt.Fprintf(sb, "- Duplicate rows: %d\n", prof.DuplicateRows)
	sb.WriteString("- Columns:\n")
	for _, col := range prof.Columns {
		fmt.Fprintf(sb, "  - %s (%s, %d distinct)\n", col.Name, col.Type, col.DistinctCount)
	}
}

func writeMissingSummary(sb *strings.Builder, prof *profile.Profile) {
	fmt.Fprintf(sb, "- Missing values: %d total\n", prof.TotalMissing())
	for _, col := range prof.Columns {
		if col.MissingCount > 0 {
			fmt.Fprintf(sb, "  - %s: %d (%.2f%%)\n", col.Name, col.MissingCount, col.MissingPct)
		}
	}
}

func writeNumericStats(sb *strings.Builder, prof *profile.Profile) {
	wrote := false
	for _, col := range prof.Columns {
		if col.Numeric == nil {
			continue
		}
		if !wrote {
			sb.WriteString("\nNumerical columns descriptive stats:\n")
			wrote = true
		}
		fmt.Fprintf(sb, "- %s: mean=%.4g std=%.4g min=%.4g q1=%.4g median=%.4g q3=%.4g max=%.4g\n",
			col.Name, col.Numeric.Mean, col.Numeric.StdDev, col.Numeric.Min,
			col.Numeric.Q1, col.Numeric.Median, col.Numeric.Q3, col.Numeric.Max)
	}
	if !wrote {
		sb.WriteString("\nNo numerical columns.\n")
	}
}

func writeCorrelationHighlights(sb *strings.Builder, prof *profile.Profile) {
	sb.WriteString("\nCorrelation analysis:\n")
	if prof.Correlation == nil {
		sb.WriteString("Fewer than two numeric columns, no correlation computed.\n")
		return
	}
	pairs := prof.Correlation.StrongPairs(strongCorrThreshold)
	if len(pairs) == 0 {
		sb.WriteString("No strong correlations found.\n")
		return
	}
	sb.WriteString("Strong correlations: ")
	parts := make([]string, len(pairs))
	for i, pair := range pairs {
		parts[i] = fmt.Sprintf("%s and %s: %.2f", pair.A, pair.B, pair.R)
	}
	sb.WriteString(strings.Join(parts, ", "))
	sb.WriteString("\n")
}

func writeSampleRows(sb *strings.Builder, ds *dataset.Dataset) {
	head := ds.Head(sampleRowsInPrompt)
	if len(head) == 0 {
		return
	}
	fmt.Fprintf(sb, "\nSample data (first %d rows):\n", len(head))
	sb.WriteString(strings.Join(ds.ColumnNames(), " | "))
	sb.WriteString("\n")
	for _, row := range head {
		sb.WriteString(strings.Join(row, " | "))
		sb.WriteString("\n")
	}
}
