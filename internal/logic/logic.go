// Package logic implements the application flow between the command
// layer and the file processor.
package logic

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/gorc/internal/config"
	"github.com/idelchi/gorc/internal/encryption"
	"github.com/idelchi/gorc/internal/filter"
)

// Run resolves the configured paths and transforms every selected file.
func Run(cfg *config.Config) error {
	start := time.Now()

	scanned, err := resolveFiles(cfg)
	if err != nil {
		return fmt.Errorf("resolving files: %w", err)
	}

	excluded := scanned - len(cfg.Files)

	if cfg.DryRun {
		return dryRun(cfg, scanned, excluded, start)
	}

	proc, err := encryption.NewProcessor(cfg)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	processed, errored, totalSize, err := proc.ProcessFiles()

	if cfg.Stats {
		printStats(scanned, excluded, processed, errored, totalSize, time.Since(start))
	}

	if err != nil {
		return err
	}

	return nil
}

// resolveFiles merges CLI and file-based patterns and expands the
// positional args. Returns the total number of candidates scanned.
func resolveFiles(cfg *config.Config) (int, error) {
	includes, excludes, err := loadPatterns(cfg)
	if err != nil {
		return 0, err
	}

	files, scanned, err := filter.Resolve(cfg.Files, includes, excludes, cfg.Recursive)
	if err != nil {
		return scanned, err
	}

	cfg.Files = files

	return scanned, nil
}

// loadPatterns merges CLI patterns with those from pattern files.
func loadPatterns(cfg *config.Config) (includes, excludes []string, err error) {
	includes = append(includes, cfg.Include...)
	excludes = append(excludes, cfg.Exclude...)

	if cfg.IncludeFrom != "" {
		patterns, err := filter.LoadPatterns(cfg.IncludeFrom)
		if err != nil {
			return nil, nil, fmt.Errorf("loading include patterns: %w", err)
		}

		includes = append(includes, patterns...)
	}

	if cfg.ExcludeFrom != "" {
		patterns, err := filter.LoadPatterns(cfg.ExcludeFrom)
		if err != nil {
			return nil, nil, fmt.Errorf("loading exclude patterns: %w", err)
		}

		excludes = append(excludes, patterns...)
	}

	return includes, excludes, nil
}

// dryRun previews the files that would be transformed.
func dryRun(cfg *config.Config, scanned, excluded int, start time.Time) error {
	var totalSize int64

	for _, file := range cfg.Files {
		if !cfg.Quiet {
			fmt.Printf("Would process %q\n", file) //nolint:forbidigo
		}

		if cfg.Stats {
			if info, err := os.Stat(file); err == nil {
				totalSize += info.Size()
			}
		}
	}

	if cfg.Stats {
		printStats(scanned, excluded, len(cfg.Files), 0, totalSize, time.Since(start))
	}

	return nil
}

func printStats(scanned, excluded, processed, errored int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "  Scanned:   %d\n", scanned)
	fmt.Fprintf(os.Stderr, "  Excluded:  %d\n", excluded)
	fmt.Fprintf(os.Stderr, "  Processed: %d\n", processed)
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", errored)
	//nolint:gosec // totalSize is a sum of file sizes, never negative
	fmt.Fprintf(os.Stderr, "  Size:      %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(os.Stderr, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
