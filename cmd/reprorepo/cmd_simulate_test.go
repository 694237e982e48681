package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// initProject scaffolds a project in a temp dir and returns its root.
func initProject(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	if _, err := runCmd(t, newInitCmd(), "init", "--root", tmpDir); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	return tmpDir
}

func simulate(t *testing.T, root string, extra ...string) string {
	t.Helper()
	args := append([]string{"simulate", "--root", root}, extra...)
	out, err := runCmd(t, newSimulateCmd(), args...)
	if err != nil {
		t.Fatalf("simulate failed: %v (output: %s)", err, out)
	}
	return out
}

func TestSimulateWritesDatasetAndRecordsRun(t *testing.T) {
	root := initProject(t)

	out := simulate(t, root, "--subjects", "10", "--waves", "2", "--seed", "7", "--json")

	var result map[string]any
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if result["rows"].(float64) != 20 {
		t.Errorf("expected 20 rows, got %v", result["rows"])
	}
	if !strings.HasPrefix(result["checksum"].(string), "sha256:") {
		t.Errorf("unexpected checksum: %v", result["checksum"])
	}
	if result["run_id"].(float64) != 1 {
		t.Errorf("expected run_id 1, got %v", result["run_id"])
	}

	rawPath := filepath.Join(root, "data", "raw", "panel_raw.csv")
	if _, err := os.Stat(rawPath); err != nil {
		t.Errorf("expected raw dataset at %s: %v", rawPath, err)
	}
	if _, err := os.Stat(filepath.Join(root, ".reprorepo", "runs.db")); err != nil {
		t.Errorf("expected run registry: %v", err)
	}
}

func TestSimulateRefusesToOverwrite(t *testing.T) {
	root := initProject(t)
	simulate(t, root, "--subjects", "5", "--waves", "2")

	_, err := runCmd(t, newSimulateCmd(), "simulate", "--root", root, "--subjects", "5", "--waves", "2")
	if err == nil {
		t.Fatal("expected error when raw dataset exists")
	}
	if !strings.Contains(err.Error(), "--force") {
		t.Errorf("expected hint about --force, got: %v", err)
	}
}

func TestSimulateForceRegeneratesDeterministically(t *testing.T) {
	root := initProject(t)

	first := simulate(t, root, "--subjects", "5", "--waves", "2", "--seed", "11", "--json")
	second := simulate(t, root, "--subjects", "5", "--waves", "2", "--seed", "11", "--force", "--json")

	var a, b map[string]any
	if err := json.Unmarshal([]byte(first), &a); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if err := json.Unmarshal([]byte(second), &b); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if a["checksum"] != b["checksum"] {
		t.Errorf("same seed produced different checksums: %v vs %v", a["checksum"], b["checksum"])
	}
}

func TestSimulateRejectsInvalidConfig(t *testing.T) {
	root := initProject(t)

	_, err := runCmd(t, newSimulateCmd(), "simulate", "--root", root, "--subjects", "-3")
	if err == nil {
		t.Fatal("expected error for negative subjects")
	}
}
