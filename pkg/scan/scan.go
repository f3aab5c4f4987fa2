// Package scan selects the files whose progress is tracked.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/odvcencio/lineprogress/pkg/linecount"
)

// DefaultSuffix is the file-name suffix tracked when none is configured.
const DefaultSuffix = ".tex"

// metaDir is the repository metadata directory, never walked.
const metaDir = ".git"

// Scanner matches repository files against a tracked suffix.
type Scanner struct {
	Suffix string
}

// New returns a Scanner for suffix, falling back to DefaultSuffix.
func New(suffix string) Scanner {
	if strings.TrimSpace(suffix) == "" {
		suffix = DefaultSuffix
	}
	return Scanner{Suffix: suffix}
}

// Match reports whether name ends with the tracked suffix.
func (s Scanner) Match(name string) bool {
	return s.Suffix != "" && strings.HasSuffix(name, s.Suffix)
}

// ListAll walks root and returns every file matching the suffix as a
// slash-separated path relative to root, in walk order. Symlinks to regular
// files are listed; symlinked directories are not descended into. A path
// that cannot be read during the walk fails with a
// *linecount.FileUnreadableError.
func (s Scanner) ListAll(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return &linecount.FileUnreadableError{Path: path, Err: walkErr}
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if d.Name() == metaDir {
				return fs.SkipDir
			}
			return nil
		}
		if !s.Match(d.Name()) {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				return &linecount.FileUnreadableError{Path: path, Err: err}
			}
			if !info.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Filter returns the entries of paths that match the suffix, in input order.
// Blank entries are dropped and kept entries are slash-normalized.
func (s Scanner) Filter(paths []string) []string {
	var out []string
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if s.Match(p) {
			out = append(out, filepath.ToSlash(p))
		}
	}
	return out
}
