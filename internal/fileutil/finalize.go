// Package fileutil provides shared file operation helpers.
package fileutil

import (
	"fmt"
	"os"
	"time"
)

// Finalize optionally restores the original modification time after a
// file has been rewritten in place, and returns the file's size.
func Finalize(path string, preserveTimestamps bool, modTime time.Time) (int64, error) {
	if preserveTimestamps {
		if err := os.Chtimes(path, modTime, modTime); err != nil {
			return 0, fmt.Errorf("preserving timestamps: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", path, err)
	}

	return info.Size(), nil
}
