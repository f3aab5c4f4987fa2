// Package hook installs the git pre-commit hook that records progress on
// every commit.
package hook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrHookExists is returned when a pre-commit hook is already installed and
// overwriting was not requested.
var ErrHookExists = errors.New("pre-commit hook already exists")

// Script returns the hook body that runs bin in record mode.
func Script(bin string) string {
	if strings.TrimSpace(bin) == "" {
		bin = "lineprogress"
	}
	return "#!/bin/sh\n# installed by lineprogress\nexec " + shellQuote(bin) + "\n"
}

// Path returns the pre-commit hook location inside the repository metadata
// directory.
func Path(metaDir string) string {
	return filepath.Join(metaDir, "hooks", "pre-commit")
}

// Install atomically writes the pre-commit hook into metaDir. An existing
// hook is replaced only when force is set.
func Install(metaDir, bin string, force bool) (string, error) {
	path := Path(metaDir)
	dir := filepath.Dir(path)

	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("install hook: %w at %s", ErrHookExists, path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("install hook: stat: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("install hook: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".pre-commit-tmp-*")
	if err != nil {
		return "", fmt.Errorf("install hook: tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(Script(bin)); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("install hook: write: %w", err)
	}
	if err := tmp.Chmod(0o755); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("install hook: chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("install hook: close: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("install hook: rename: %w", err)
	}
	return path, nil
}

func shellQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n'\"\\$`&|;<>()*?[]#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
