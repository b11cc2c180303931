// Package dirdiff compares two directory trees file by file.
//
// Files are paired by slash-separated path relative to each root. Each pair is diffed independently with its own diff.Diff, so pairs run in parallel; the strategies in
// Options.Diff are shared by all workers and must be safe for concurrent use (the strategies in package rules are).
package dirdiff

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/codalotl/diffrefine/internal/diff"
	"github.com/codalotl/diffrefine/internal/report"
	"github.com/codalotl/diffrefine/internal/simplelogger"
)

// ErrBadPattern is returned (wrapped) for an invalid include or exclude pattern.
var ErrBadPattern = errors.New("bad pattern")

// Options configure Compare.
type Options struct {
	Diff diff.Options

	// Include and Exclude are doublestar patterns (ex: "**/*.go") matched against slash-separated relative paths. A file is compared if it matches some Include
	// pattern (or Include is empty) and no Exclude pattern.
	Include []string
	Exclude []string

	Workers int // <= 0 means runtime.GOMAXPROCS(0)
}

// FileResult is the comparison of one relative path.
type FileResult struct {
	Path   string
	Status report.Status
	Binary bool       // either side looks binary; Diff is nil
	Diff   *diff.Diff // with Units already computed; an added or deleted file is diffed against no lines
}

// Compare pairs the regular files under leftDir and rightDir and diffs each pair. Results are sorted by Path. Directories named .git are skipped.
//
// Compare stops at the first I/O error, or when ctx is done, and returns that error.
func Compare(ctx context.Context, leftDir, rightDir string, opts Options) ([]FileResult, error) {
	for _, p := range append(append([]string{}, opts.Include...), opts.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: %q", ErrBadPattern, p)
		}
	}

	leftFiles, err := listFiles(leftDir, opts)
	if err != nil {
		return nil, err
	}
	rightFiles, err := listFiles(rightDir, opts)
	if err != nil {
		return nil, err
	}

	var paths []string
	for p := range leftFiles {
		paths = append(paths, p)
	}
	for p := range rightFiles {
		if !leftFiles[p] {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	results := make([]FileResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := compareFile(p, leftDir, rightDir, leftFiles[p], rightFiles[p], opts.Diff)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	simplelogger.Log("dirdiff: %d files, %d workers (%s)", len(paths), workers, time.Since(start))
	return results, nil
}

// listFiles returns the set of slash-separated relative paths of the regular files under root that pass the include/exclude filters.
func listFiles(root string, opts Options) (map[string]bool, error) {
	files := make(map[string]bool)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if selected(rel, opts) {
			files[rel] = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}
	return files, nil
}

func selected(rel string, opts Options) bool {
	if len(opts.Include) > 0 && !matchAny(opts.Include, rel) {
		return false
	}
	return !matchAny(opts.Exclude, rel)
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func compareFile(rel, leftDir, rightDir string, inLeft, inRight bool, opts diff.Options) (FileResult, error) {
	r := FileResult{Path: rel}

	var leftData, rightData []byte
	var err error
	if inLeft {
		if leftData, err = os.ReadFile(filepath.Join(leftDir, filepath.FromSlash(rel))); err != nil {
			return r, fmt.Errorf("failed to read left file: %w", err)
		}
	}
	if inRight {
		if rightData, err = os.ReadFile(filepath.Join(rightDir, filepath.FromSlash(rel))); err != nil {
			return r, fmt.Errorf("failed to read right file: %w", err)
		}
	}

	switch {
	case !inLeft:
		r.Status = report.StatusAdded
	case !inRight:
		r.Status = report.StatusDeleted
	case bytes.Equal(leftData, rightData):
		r.Status = report.StatusUnchanged
	}

	if IsBinary(leftData) || IsBinary(rightData) {
		r.Binary = true
		if r.Status == "" {
			r.Status = report.StatusModified
		}
		return r, nil
	}

	d := diff.New(Lines(leftData), Lines(rightData), opts)
	d.Units()
	r.Diff = d
	if r.Status == "" {
		r.Status = report.StatusUnchanged
		if d.HasChanges() {
			r.Status = report.StatusModified
		}
	}
	return r, nil
}

// ReadLines reads the file at path and splits it with Lines.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Lines(data), nil
}

// Lines splits data into lines without EOLs; "\r\n" is treated as an EOL.
func Lines(data []byte) []string {
	lines := diff.SplitLines(string(data))
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// IsBinary reports whether data looks binary: it contains a NUL byte in its first 8000 bytes.
func IsBinary(data []byte) bool {
	if len(data) > 8000 {
		data = data[:8000]
	}
	return bytes.IndexByte(data, 0) >= 0
}
