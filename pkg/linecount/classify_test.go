package linecount

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsContentLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{name: "empty", line: "", want: false},
		{name: "spaces", line: "   ", want: false},
		{name: "tabs and newline", line: "\t\t\n", want: false},
		{name: "crlf only", line: "\r\n", want: false},
		{name: "comment", line: "% a comment", want: false},
		{name: "indented comment", line: "   \t% indented", want: false},
		{name: "bare marker", line: "%", want: false},
		{name: "text", line: "Some prose.", want: true},
		{name: "indented text", line: "  \\section{Intro}\n", want: true},
		{name: "marker inside line", line: "50\\% of it", want: true},
		{name: "invalid utf8", line: "\xff\xfe", want: true},
		{name: "nul byte", line: "\x00", want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsContentLine(tc.line), "IsContentLine(%q)", tc.line)
		})
	}
}

func TestClassifierCustomMarker(t *testing.T) {
	c := Classifier{CommentMarker: "#"}
	assert.False(t, c.IsContentLine("  # heading"))
	assert.True(t, c.IsContentLine("% not a comment here"))
}

func TestClassifierEmptyMarkerKeepsBlankRule(t *testing.T) {
	c := Classifier{}
	assert.False(t, c.IsContentLine(" \t "))
	assert.True(t, c.IsContentLine("% counted"))
}

func TestCount(t *testing.T) {
	src := strings.Join([]string{
		"\\documentclass{article}",
		"% preamble",
		"",
		"\\begin{document}",
		"Hello.",
		"   ",
		"\\end{document}",
		"trailing without newline",
	}, "\n")

	n, err := Default().Count(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestCountLongLine(t *testing.T) {
	long := strings.Repeat("x", 1<<20)
	n, err := Default().Count(strings.NewReader(long + "\n" + long))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCountFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.tex")
	data := "one\ntwo\n% skip\n\nthree\nfour\nfive\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	n, err := Default().CountFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestCountFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.tex")

	_, err := Default().CountFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileUnreadable)
	assert.ErrorIs(t, err, os.ErrNotExist)

	var fu *FileUnreadableError
	require.ErrorAs(t, err, &fu)
	assert.Equal(t, path, fu.Path)
}

func TestCountFileDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chapter.tex")
	require.NoError(t, os.Mkdir(dir, 0o755))

	_, err := Default().CountFile(dir)
	assert.ErrorIs(t, err, ErrFileUnreadable)
}
