package cleaning

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"

	"github.com/juusorepo/ReproRepo/internal/dataset"
	"github.com/juusorepo/ReproRepo/internal/panel"
)

func writeRaw(t *testing.T, dir string) (string, []panel.Observation) {
	t.Helper()
	obs, err := panel.Generate(panel.Config{Subjects: 4, Waves: 3, Seed: 99})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	rawPath := filepath.Join(dir, "panel_raw.csv")
	if _, err := dataset.WriteFile(rawPath, obs); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return rawPath, obs
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func TestProcess(t *testing.T) {
	dir := t.TempDir()
	rawPath, obs := writeRaw(t, dir)
	processedPath := filepath.Join(dir, "processed", "panel_processed.csv")

	result, err := Process(rawPath, processedPath)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if result.Rows != len(obs) {
		t.Errorf("expected %d rows, got %d", len(obs), result.Rows)
	}

	rows := readCSV(t, processedPath)
	if !reflect.DeepEqual(rows[0], ProcessedHeader) {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if len(rows)-1 != len(obs) {
		t.Fatalf("expected %d data rows, got %d", len(obs), len(rows)-1)
	}

	for i, row := range rows[1:] {
		o := obs[i]
		if row[0] != strconv.Itoa(o.SubjectID) {
			t.Errorf("row %d: subject_id %s, want %d", i, row[0], o.SubjectID)
		}
		// Wave label converted to integer index.
		if row[1] != strconv.Itoa(o.Wave) {
			t.Errorf("row %d: wave_index %s, want %d", i, row[1], o.Wave)
		}
		// Casing normalized.
		if row[2] != "crawling" && row[2] != "cruising" && row[2] != "walking" {
			t.Errorf("row %d: unexpected mobility_category %q", i, row[2])
		}
		if row[5] != AgeBracket(o.AgeMonths) {
			t.Errorf("row %d: age_bracket %s, want %s", i, row[5], AgeBracket(o.AgeMonths))
		}
	}
}

func TestProcessLeavesRawUntouched(t *testing.T) {
	dir := t.TempDir()
	rawPath, _ := writeRaw(t, dir)

	before, err := dataset.ChecksumFile(rawPath)
	if err != nil {
		t.Fatalf("ChecksumFile failed: %v", err)
	}

	if _, err := Process(rawPath, filepath.Join(dir, "panel_processed.csv")); err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	after, err := dataset.ChecksumFile(rawPath)
	if err != nil {
		t.Fatalf("ChecksumFile failed: %v", err)
	}
	if before != after {
		t.Error("raw file changed during processing")
	}
}

func TestProcessMissingRaw(t *testing.T) {
	dir := t.TempDir()
	_, err := Process(filepath.Join(dir, "nope.csv"), filepath.Join(dir, "out.csv"))
	if err == nil {
		t.Fatal("expected error for missing raw file")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "out.csv")); !os.IsNotExist(statErr) {
		t.Error("processed file should not exist after failure")
	}
}

func TestAgeBracket(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{12, "12-17"},
		{17, "12-17"},
		{18, "18-24"},
		{24, "18-24"},
	}
	for _, tt := range tests {
		if got := AgeBracket(tt.age); got != tt.want {
			t.Errorf("AgeBracket(%d) = %s, want %s", tt.age, got, tt.want)
		}
	}
}
