// Package filter resolves positional arguments into the list of files
// to transform, applying include/exclude patterns with find -path
// semantics.
package filter

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/idelchi/gorc/pkg/pathmatch"
)

// Filter pairs compiled include and exclude matchers. Empty includes
// mean "match everything"; excludes always win.
type Filter struct {
	includes *pathmatch.Matcher
	excludes *pathmatch.Matcher
}

// New compiles include/exclude patterns into a reusable filter.
// Patterns are normalized by stripping a leading "./" so they line up
// with cleaned paths.
func New(includes, excludes []string) (*Filter, error) {
	inc, err := pathmatch.New(normalize(includes))
	if err != nil {
		return nil, fmt.Errorf("compiling include patterns: %w", err)
	}

	exc, err := pathmatch.New(normalize(excludes))
	if err != nil {
		return nil, fmt.Errorf("compiling exclude patterns: %w", err)
	}

	return &Filter{includes: inc, excludes: exc}, nil
}

// Keep reports whether the cleaned, slash-separated path passes the
// filter.
func (f *Filter) Keep(path string) bool {
	if f.includes.Len() > 0 && !f.includes.Match(path) {
		return false
	}

	return !f.excludes.Match(path)
}

func normalize(patterns []string) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = strings.TrimPrefix(p, "./")
	}

	return out
}

// Resolve expands positional args into the files to process.
//
// Explicit file arguments bypass filtering and are taken as-is.
// Directory arguments are only legal when recursive is set; they are
// walked and every regular file beneath them runs through the filter.
// Duplicates are dropped. Returns the matched files and the total
// number of candidates scanned.
func Resolve(args, includes, excludes []string, recursive bool) (files []string, scanned int, err error) {
	flt, err := New(includes, excludes)
	if err != nil {
		return nil, 0, err
	}

	seen := make(map[string]struct{})

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}

		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		arg = filepath.Clean(arg)

		info, err := os.Stat(arg)
		if err != nil {
			return nil, 0, fmt.Errorf("stat %q: %w", arg, err)
		}

		if !info.IsDir() {
			scanned++

			add(arg)

			continue
		}

		if !recursive {
			return nil, 0, fmt.Errorf("%q is a directory (use --recursive to process directories)", arg)
		}

		walked, total, err := walk(arg, flt)
		if err != nil {
			return nil, 0, err
		}

		scanned += total

		for _, path := range walked {
			add(path)
		}
	}

	if len(files) == 0 {
		return nil, scanned, fmt.Errorf("no files matched under %v", args)
	}

	return files, scanned, nil
}

// walk traverses root and returns the regular files passing the filter,
// along with the total number of files seen.
func walk(root string, flt *Filter) (files []string, total int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		total++

		// Forward slashes keep pattern matching consistent across platforms.
		if !flt.Keep(filepath.ToSlash(filepath.Clean(path))) {
			return nil
		}

		files = append(files, path)

		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("walking %q: %w", root, err)
	}

	return files, total, nil
}
