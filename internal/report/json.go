// Package report writes comparison results as JSON and as an HTML page.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"formdiff/internal/compare"
)

// WriteJSON writes results as an indented JSON array. A nil slice is written
// as [].
func WriteJSON(w io.Writer, results []compare.Result) error {
	if results == nil {
		results = []compare.Result{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}

// SaveJSON writes results to path, creating parent directories.
func SaveJSON(path string, results []compare.Result) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteJSON(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadJSON reads results written by SaveJSON.
func LoadJSON(path string) ([]compare.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var results []compare.Result
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return results, nil
}
