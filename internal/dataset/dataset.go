// Package dataset reads and writes the panel as delimited tabular files.
// The raw CSV written here is the contract toward the cleaning and modeling
// stages: stable header, one row per (subject, wave), subject-major order.
package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/juusorepo/ReproRepo/internal/panel"
)

// RawHeader is the column order of the raw dataset. Downstream stages key on
// these names; changing them is a breaking change.
var RawHeader = []string{
	"SubjectID",
	"Wave",
	"MobilityCategory",
	"FeedingMethod",
	"AgeMonths",
	"SleepHours",
	"TaskDurationSec",
	"EngagementCount",
}

// WaveLabel formats a wave index as its raw-file label ("T1", "T2", ...).
func WaveLabel(wave int) string {
	return fmt.Sprintf("T%d", wave)
}

// ParseWaveLabel converts a raw-file wave label back to its integer index.
func ParseWaveLabel(label string) (int, error) {
	trimmed := strings.TrimPrefix(label, "T")
	if trimmed == label {
		return 0, fmt.Errorf("wave label %q does not start with T", label)
	}
	wave, err := strconv.Atoi(trimmed)
	if err != nil || wave < 1 {
		return 0, fmt.Errorf("invalid wave label %q", label)
	}
	return wave, nil
}

// record flattens an observation into a raw CSV row.
func record(o panel.Observation) []string {
	return []string{
		strconv.Itoa(o.SubjectID),
		WaveLabel(o.Wave),
		o.Category,
		o.Feeding,
		strconv.Itoa(o.AgeMonths),
		strconv.Itoa(o.SleepHours),
		strconv.FormatFloat(o.TaskSeconds, 'f', 1, 64),
		strconv.Itoa(o.Engagement),
	}
}

// parseRecord converts a raw CSV row back into an observation.
func parseRecord(row []string) (panel.Observation, error) {
	if len(row) != len(RawHeader) {
		return panel.Observation{}, fmt.Errorf("expected %d columns, got %d", len(RawHeader), len(row))
	}

	subject, err := strconv.Atoi(row[0])
	if err != nil {
		return panel.Observation{}, fmt.Errorf("invalid subject ID %q: %w", row[0], err)
	}
	wave, err := ParseWaveLabel(row[1])
	if err != nil {
		return panel.Observation{}, err
	}
	age, err := strconv.Atoi(row[4])
	if err != nil {
		return panel.Observation{}, fmt.Errorf("invalid age %q: %w", row[4], err)
	}
	sleep, err := strconv.Atoi(row[5])
	if err != nil {
		return panel.Observation{}, fmt.Errorf("invalid sleep hours %q: %w", row[5], err)
	}
	task, err := strconv.ParseFloat(row[6], 64)
	if err != nil {
		return panel.Observation{}, fmt.Errorf("invalid task duration %q: %w", row[6], err)
	}
	engagement, err := strconv.Atoi(row[7])
	if err != nil {
		return panel.Observation{}, fmt.Errorf("invalid engagement count %q: %w", row[7], err)
	}

	return panel.Observation{
		SubjectID:   subject,
		Wave:        wave,
		Category:    row[2],
		Feeding:     row[3],
		AgeMonths:   age,
		SleepHours:  sleep,
		TaskSeconds: task,
		Engagement:  engagement,
	}, nil
}
