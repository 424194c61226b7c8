// ABOUTME: Data migration between fitness storage backends.
// ABOUTME: Copies the four state records from source to destination.

package storage

import (
	"errors"
	"fmt"
	"os"
)

// MigrateSummary reports which records were copied.
type MigrateSummary struct {
	Copied  []string
	Missing []string
}

// MigrateData copies every state record from src to dst byte for byte.
// Records absent from src are deleted from dst so both hold the same state.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	for _, key := range AllKeys {
		data, err := src.Get(key)
		if errors.Is(err, ErrNotFound) {
			if err := dst.Delete(key); err != nil {
				return nil, fmt.Errorf("clear %s: %w", key, err)
			}
			summary.Missing = append(summary.Missing, key)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read source %s: %w", key, err)
		}
		if err := dst.Put(key, data); err != nil {
			return nil, fmt.Errorf("write destination %s: %w", key, err)
		}
		summary.Copied = append(summary.Copied, key)
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
