package dataset

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/juusorepo/ReproRepo/internal/panel"
)

// WriteResult describes a successful dataset write.
type WriteResult struct {
	Path     string `json:"path"`
	Rows     int    `json:"rows"`
	Checksum string `json:"checksum"`
}

// WriteFile persists observations as the raw dataset CSV at path.
func WriteFile(path string, obs []panel.Observation) (*WriteResult, error) {
	rows := make([][]string, 0, len(obs))
	for _, o := range obs {
		rows = append(rows, record(o))
	}
	return WriteTable(path, RawHeader, rows)
}

// WriteTable writes a header plus rows as a CSV file at path, creating
// parent directories as needed. The write is atomic: rows go to a temp file
// in the target directory which is renamed into place only after a
// successful flush, so a failed run leaves no partial file behind.
func WriteTable(path string, header []string, rows [][]string) (*WriteResult, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmpPath != "" {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	hash := sha256.New()
	w := csv.NewWriter(io.MultiWriter(tmp, hash))

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing rows: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		return nil, fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return nil, fmt.Errorf("renaming into place: %w", err)
	}
	tmpPath = "" // rename succeeded, nothing to clean up

	return &WriteResult{
		Path:     path,
		Rows:     len(rows),
		Checksum: "sha256:" + hex.EncodeToString(hash.Sum(nil)),
	}, nil
}

// ReadFile parses a raw dataset CSV back into observations.
func ReadFile(path string) ([]panel.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) != len(RawHeader) {
		return nil, fmt.Errorf("unexpected header: got %d columns, want %d", len(header), len(RawHeader))
	}
	for i, name := range RawHeader {
		if header[i] != name {
			return nil, fmt.Errorf("unexpected column %d: got %q, want %q", i, header[i], name)
		}
	}

	var obs []panel.Observation
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		line++
		o, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		obs = append(obs, o)
	}

	return obs, nil
}

// ChecksumFile computes the sha256 checksum of a file in the same format
// recorded by WriteFile.
func ChecksumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, f); err != nil {
		return "", fmt.Errorf("hashing file: %w", err)
	}
	return "sha256:" + hex.EncodeToString(hash.Sum(nil)), nil
}
