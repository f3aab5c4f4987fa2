package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/lineprogress/pkg/linecount"
)

func writeFile(t *testing.T, root, rel, data string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func symlink(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
}

func TestFilterPreservesOrderAndDropsBlanks(t *testing.T) {
	got := New(".tex").Filter([]string{"a.tex", "", "b.txt", "c.tex"})
	assert.Equal(t, []string{"a.tex", "c.tex"}, got)
}

func TestFilterEdgeCases(t *testing.T) {
	s := New(".tex")
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "nil", in: nil, want: nil},
		{name: "only blanks", in: []string{"", "  ", "\t"}, want: nil},
		{name: "suffix inside name", in: []string{"a.tex.bak", "tex", "dir.tex/file.md"}, want: nil},
		{name: "nested", in: []string{"ch/one.tex", "two.tex"}, want: []string{"ch/one.tex", "two.tex"}},
		{name: "order kept", in: []string{"z.tex", "a.tex", "m.tex"}, want: []string{"z.tex", "a.tex", "m.tex"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.Filter(tc.in))
		})
	}
}

func TestNewDefaultsSuffix(t *testing.T) {
	assert.Equal(t, DefaultSuffix, New("  ").Suffix)
	assert.Equal(t, ".md", New(".md").Suffix)
}

func TestListAll(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.tex", "x\n")
	writeFile(t, root, "chapters/intro.tex", "x\n")
	writeFile(t, root, "chapters/deep/appendix.tex", "x\n")
	writeFile(t, root, "README.md", "x\n")
	writeFile(t, root, "figures/plot.tex.bak", "x\n")
	writeFile(t, root, ".git/stray.tex", "x\n")

	got, err := New(".tex").ListAll(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"chapters/deep/appendix.tex", "chapters/intro.tex", "main.tex"}, got)
}

func TestListAllIncludesSymlinkedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "real/ch1.tex", "a\nb\n")
	symlink(t, filepath.Join(root, "real", "ch1.tex"), filepath.Join(root, "link.tex"))

	got, err := New(".tex").ListAll(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"link.tex", "real/ch1.tex"}, got)
}

func TestListAllDoesNotFollowSymlinkedDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "real/ch1.tex", "a\n")
	symlink(t, filepath.Join(root, "real"), filepath.Join(root, "alias.tex"))

	got, err := New(".tex").ListAll(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"real/ch1.tex"}, got)
}

func TestListAllDanglingSymlinkIsUnreadable(t *testing.T) {
	root := t.TempDir()
	symlink(t, filepath.Join(root, "missing.tex"), filepath.Join(root, "dangling.tex"))

	_, err := New(".tex").ListAll(root)
	assert.ErrorIs(t, err, linecount.ErrFileUnreadable)
}

func TestListAllEmptyTree(t *testing.T) {
	got, err := New(".tex").ListAll(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListAllUnreadablePathIsFileUnreadable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	_, err := New(".tex").ListAll(missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, linecount.ErrFileUnreadable)

	var fu *linecount.FileUnreadableError
	require.ErrorAs(t, err, &fu)
	assert.Equal(t, missing, fu.Path)
}
