// ABOUTME: Data migration between FitTrack storage backends.
// ABOUTME: Copies every named blob from source to destination.

package storage

import (
	"fmt"
	"os"
	"strings"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Blobs    int
	Workouts int
}

// MigrateData copies all blobs from src to dst storage.
// Keys already present in dst are overwritten. The destination should be
// empty before calling this function.
func MigrateData(src, dst BlobStore) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	keys, err := src.Keys("")
	if err != nil {
		return nil, fmt.Errorf("list source keys: %w", err)
	}

	for _, key := range keys {
		value, err := src.Get(key)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		if err := dst.Set(key, value); err != nil {
			return nil, fmt.Errorf("write %s: %w", key, err)
		}
		summary.Blobs++
		if strings.HasPrefix(key, WorkoutPrefix) {
			summary.Workouts++
		}
	}

	return summary, nil
}

// IsEmpty reports whether the store holds no blobs at all.
func IsEmpty(s BlobStore) (bool, error) {
	keys, err := s.Keys("")
	if err != nil {
		return false, err
	}
	return len(keys) == 0, nil
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
