// Package dataset persists the pipeline's row-oriented tables as CSV
// files with a fixed column order, and reads them back.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// ReadRaw reads a raw platform export into header-keyed records. A missing
// file is an error the caller downgrades to a warning; a malformed file is
// an error outright.
func ReadRaw(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := gocsv.CSVToMaps(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// ReadTable unmarshals a CSV file into typed rows.
func ReadTable[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []T
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rows, nil
}

// WriteTable marshals typed rows to a CSV file, creating parent
// directories and overwriting any previous content.
func WriteTable[T any](path string, rows []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// AppendWithDedupe appends rows to an existing table, dropping duplicates
// by key with keep-last semantics, and writes the combined table back.
// Concurrent writers to the same path are not supported.
func AppendWithDedupe[T any](path string, newRows []T, key func(T) string) ([]T, error) {
	combined, err := ReadTable[T](path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		combined = nil
	}
	combined = append(combined, newRows...)

	// Keep-last: remember the final index per key, then emit in order.
	last := make(map[string]int, len(combined))
	for i, r := range combined {
		last[key(r)] = i
	}
	deduped := make([]T, 0, len(last))
	for i, r := range combined {
		if last[key(r)] == i {
			deduped = append(deduped, r)
		}
	}

	if err := WriteTable(path, deduped); err != nil {
		return nil, err
	}
	return deduped, nil
}
