// Package vcs answers the read-only questions lineprogress asks of the
// version-control system: where the repository root and its metadata
// directory are, and which files the pending commit adds or modifies.
package vcs

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrQueryFailed marks a version-control query that errored or produced
// output that could not be parsed.
var ErrQueryFailed = errors.New("vcs query failed")

// QueryError describes a failed query.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s: %v", ErrQueryFailed, e.Query, e.Err)
}

func (e *QueryError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *QueryError) Is(target error) bool {
	return target == ErrQueryFailed
}

// Client provides the read-only repository queries.
type Client interface {
	// RepoRoot returns the absolute path of the working tree root.
	RepoRoot(ctx context.Context) (string, error)
	// MetaDir returns the absolute path of the metadata directory shared by
	// all worktrees of the repository.
	MetaDir(ctx context.Context) (string, error)
	// ChangedFiles returns repo-relative paths added, copied or modified in
	// the pending change. Deleted files are not included.
	ChangedFiles(ctx context.Context) ([]string, error)
}

// Static is a fixed Client, used by tests and when the answers are already
// known. An empty Meta means Root/.git.
type Static struct {
	Root    string
	Meta    string
	Changed []string
	Err     error
}

func (s Static) RepoRoot(context.Context) (string, error) {
	if s.Err != nil {
		return "", &QueryError{Query: "repository root", Err: s.Err}
	}
	if strings.TrimSpace(s.Root) == "" {
		return "", &QueryError{Query: "repository root", Err: errors.New("empty root")}
	}
	return s.Root, nil
}

func (s Static) MetaDir(ctx context.Context) (string, error) {
	if s.Meta != "" && s.Err == nil {
		return s.Meta, nil
	}
	root, err := s.RepoRoot(ctx)
	if err != nil {
		return "", &QueryError{Query: "metadata directory", Err: errors.Unwrap(err)}
	}
	return filepath.Join(root, ".git"), nil
}

func (s Static) ChangedFiles(context.Context) ([]string, error) {
	if s.Err != nil {
		return nil, &QueryError{Query: "changed files", Err: s.Err}
	}
	return append([]string(nil), s.Changed...), nil
}
