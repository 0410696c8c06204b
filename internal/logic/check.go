package logic

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/idelchi/gorc/internal/config"
	"github.com/idelchi/gorc/pkg/pathmatch"
)

// RunCheck validates that every include/exclude pattern matches at
// least one file under the given paths.
func RunCheck(cfg *config.Config) error {
	includes, excludes, err := loadPatterns(cfg)
	if err != nil {
		return err
	}

	if len(includes) == 0 && len(excludes) == 0 {
		return errors.New("no include or exclude patterns to check")
	}

	candidates, err := collectFiles(cfg.Files)
	if err != nil {
		return err
	}

	failures := checkPatterns("include", includes, candidates, cfg.Quiet)
	failures += checkPatterns("exclude", excludes, candidates, cfg.Quiet)

	if failures > 0 {
		return fmt.Errorf("%d pattern(s) matched no files", failures)
	}

	return nil
}

// collectFiles walks all positional args and returns every file found.
// Unlike transformation, checking always descends into directories.
func collectFiles(args []string) ([]string, error) {
	var paths []string

	seen := make(map[string]struct{})

	for _, arg := range args {
		arg = filepath.Clean(arg)

		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %q: %w", arg, err)
		}

		if !info.IsDir() {
			clean := filepath.ToSlash(arg)
			if _, ok := seen[clean]; !ok {
				seen[clean] = struct{}{}
				paths = append(paths, clean)
			}

			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			clean := filepath.ToSlash(filepath.Clean(path))
			if _, ok := seen[clean]; !ok {
				seen[clean] = struct{}{}
				paths = append(paths, clean)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %q: %w", arg, err)
		}
	}

	return paths, nil
}

// checkPatterns tests each pattern individually against candidates and
// returns the number of patterns that matched zero files.
func checkPatterns(kind string, patterns, candidates []string, quiet bool) int {
	var failures int

	for _, pattern := range patterns {
		matcher, err := pathmatch.New([]string{pattern})
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s: invalid pattern: %v\n", kind, pattern, err)

			failures++

			continue
		}

		var count int

		for _, path := range candidates {
			if matcher.Match(path) {
				count++
			}
		}

		if count == 0 {
			fmt.Fprintf(os.Stderr, "%s: %s: 0 files (ERROR)\n", kind, pattern)

			failures++
		} else if !quiet {
			fmt.Fprintf(os.Stderr, "%s: %s: %d files\n", kind, pattern, count)
		}
	}

	return failures
}
