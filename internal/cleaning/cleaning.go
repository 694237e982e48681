// Package cleaning derives the processed dataset from the raw panel file.
// The raw file is treated as immutable input; the processed copy normalizes
// column casing, converts wave labels to integer indices, and adds a derived
// age bracket for grouped analysis.
package cleaning

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/juusorepo/ReproRepo/internal/dataset"
	"github.com/juusorepo/ReproRepo/internal/panel"
)

// ProcessedHeader is the column order of the processed dataset: the raw
// columns in snake_case, the wave as an integer index, and the derived
// age_bracket inserted after age_months.
var ProcessedHeader = []string{
	"subject_id",
	"wave_index",
	"mobility_category",
	"feeding_method",
	"age_months",
	"age_bracket",
	"sleep_hours",
	"task_duration_sec",
	"engagement_count",
}

// Bracket boundary: ages in [AgeMin, bracketSplit) fall in the younger
// bracket, [bracketSplit, AgeMax] in the older one.
const bracketSplit = 18

// AgeBracket maps an age in months to its analysis bracket.
func AgeBracket(ageMonths int) string {
	if ageMonths < bracketSplit {
		return fmt.Sprintf("%d-%d", panel.AgeMin, bracketSplit-1)
	}
	return fmt.Sprintf("%d-%d", bracketSplit, panel.AgeMax)
}

// Process reads the raw dataset at rawPath and writes the processed copy to
// processedPath. The raw file is never modified.
func Process(rawPath, processedPath string) (*dataset.WriteResult, error) {
	obs, err := dataset.ReadFile(rawPath)
	if err != nil {
		return nil, fmt.Errorf("reading raw dataset: %w", err)
	}

	rows := make([][]string, 0, len(obs))
	for _, o := range obs {
		rows = append(rows, processedRecord(o))
	}

	result, err := dataset.WriteTable(processedPath, ProcessedHeader, rows)
	if err != nil {
		return nil, fmt.Errorf("writing processed dataset: %w", err)
	}
	return result, nil
}

func processedRecord(o panel.Observation) []string {
	return []string{
		strconv.Itoa(o.SubjectID),
		strconv.Itoa(o.Wave),
		strings.ToLower(o.Category),
		strings.ToLower(o.Feeding),
		strconv.Itoa(o.AgeMonths),
		AgeBracket(o.AgeMonths),
		strconv.Itoa(o.SleepHours),
		strconv.FormatFloat(o.TaskSeconds, 'f', 1, 64),
		strconv.Itoa(o.Engagement),
	}
}
