package progress

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/odvcencio/lineprogress/pkg/history"
)

func sampleHistories() []history.FileHistory {
	t1 := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 10, 20, 18, 30, 0, 0, time.UTC)
	return []history.FileHistory{
		{Path: "notes.tex", History: history.History{{Time: t1, Count: 5}, {Time: t2, Count: 7}}},
		{Path: "a,b.tex", History: history.History{{Time: t2, Count: 1}}},
	}
}

func TestEncodeCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleHistories(), FormatCSV))
	assert.Equal(t,
		"path,time,count\n"+
			"notes.tex,2026-10-19T09:00:00Z,5\n"+
			"notes.tex,2026-10-20T18:30:00Z,7\n"+
			"\"a,b.tex\",2026-10-20T18:30:00Z,1\n",
		buf.String())
}

func TestEncodeJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleHistories(), FormatJSON))

	var got []history.FileHistory
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "notes.tex", got[0].Path)
	assert.Equal(t, []int{5, 7}, got[0].History.Counts())
}

func TestEncodeYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleHistories(), FormatYAML))
	assert.Contains(t, buf.String(), "path: notes.tex")

	var got []history.FileHistory
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, []int{1}, got[1].History.Counts())
	assert.True(t, got[0].History[1].Time.Equal(time.Date(2026, 10, 20, 18, 30, 0, 0, time.UTC)))
}

func TestEncodeEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, nil, FormatJSON))
	assert.Equal(t, "[]\n", buf.String())
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, "YAML": FormatYAML, "yml": FormatYAML, "csv": FormatCSV} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}
