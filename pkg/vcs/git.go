package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Git answers queries by running the git binary in Dir.
type Git struct {
	Bin string // git executable; "git" when empty
	Dir string // directory to run in; the process working directory when empty
}

// NewGit returns a Git client rooted at dir.
func NewGit(dir string) *Git {
	return &Git{Bin: "git", Dir: dir}
}

// RepoRoot runs `git rev-parse --show-toplevel`.
func (g *Git) RepoRoot(ctx context.Context) (string, error) {
	out, err := g.capture(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", &QueryError{Query: "repository root", Err: err}
	}
	root, err := parseRoot(out)
	if err != nil {
		return "", &QueryError{Query: "repository root", Err: err}
	}
	return root, nil
}

// MetaDir runs `git rev-parse --git-common-dir`. In a linked worktree or a
// submodule .git is a file; this resolves the real directory.
func (g *Git) MetaDir(ctx context.Context) (string, error) {
	out, err := g.capture(ctx, "rev-parse", "--git-common-dir")
	if err != nil {
		return "", &QueryError{Query: "metadata directory", Err: err}
	}
	dir, err := g.parseMetaDir(out)
	if err != nil {
		return "", &QueryError{Query: "metadata directory", Err: err}
	}
	return dir, nil
}

// ChangedFiles runs `git diff --cached --name-only --diff-filter=ACM -z`.
func (g *Git) ChangedFiles(ctx context.Context) ([]string, error) {
	out, err := g.capture(ctx, "diff", "--cached", "--name-only", "--diff-filter=ACM", "-z")
	if err != nil {
		return nil, &QueryError{Query: "changed files", Err: err}
	}
	return parseNameList(out), nil
}

func (g *Git) capture(ctx context.Context, args ...string) ([]byte, error) {
	bin := g.Bin
	if strings.TrimSpace(bin) == "" {
		bin = "git"
	}
	gitArgs := append([]string{}, args...)
	if strings.TrimSpace(g.Dir) != "" {
		gitArgs = append([]string{"-C", g.Dir}, gitArgs...)
	}

	cmd := exec.CommandContext(ctx, bin, gitArgs...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("git %s: %s", strings.Join(args, " "), msg)
	}
	return stdout.Bytes(), nil
}

func parseRoot(out []byte) (string, error) {
	root := strings.TrimSpace(string(out))
	if root == "" {
		return "", errors.New("empty output")
	}
	if strings.ContainsAny(root, "\n\x00") {
		return "", fmt.Errorf("unexpected output %q", root)
	}
	if !filepath.IsAbs(filepath.FromSlash(root)) {
		return "", fmt.Errorf("root %q is not absolute", root)
	}
	return filepath.FromSlash(root), nil
}

// parseMetaDir resolves git's answer, which is relative to the directory
// git ran in unless the metadata lives elsewhere.
func (g *Git) parseMetaDir(out []byte) (string, error) {
	dir := strings.TrimSpace(string(out))
	if dir == "" {
		return "", errors.New("empty output")
	}
	if strings.ContainsAny(dir, "\n\x00") {
		return "", fmt.Errorf("unexpected output %q", dir)
	}
	dir = filepath.FromSlash(dir)
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir), nil
	}
	base := g.Dir
	if strings.TrimSpace(base) == "" {
		base = "."
	}
	base, err := filepath.Abs(base)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, dir), nil
}

// parseNameList splits NUL- or newline-separated git path output. Blank
// entries are kept out; callers filter further.
func parseNameList(out []byte) []string {
	sep := []byte{0}
	if !bytes.Contains(out, sep) {
		sep = []byte{'\n'}
	}
	parts := bytes.Split(out, sep)
	files := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimRight(string(p), "\r\n")
		if strings.TrimSpace(s) == "" {
			continue
		}
		files = append(files, s)
	}
	return files
}
