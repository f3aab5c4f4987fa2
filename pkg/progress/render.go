package progress

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/odvcencio/lineprogress/pkg/history"
)

// ListType selects how List renders histories.
type ListType string

const (
	ListShort ListType = "s" // counts only
	ListLong  ListType = "l" // timestamps and counts
)

// ParseListType accepts s, short, l or long.
func ParseListType(s string) (ListType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s", "short":
		return ListShort, nil
	case "l", "long":
		return ListLong, nil
	}
	return "", fmt.Errorf("invalid list type %q; expected s(hort) or l(ong)", s)
}

// Render writes one line per file:
//
//	short: notes.tex: 5, 7
//	long:  notes.tex: [(2026-10-19T12:00:00Z, 5), (2026-10-20T09:30:00Z, 7)]
func Render(w io.Writer, all []history.FileHistory, lt ListType) error {
	if lt != ListShort && lt != ListLong {
		return fmt.Errorf("render: invalid list type %q", lt)
	}
	bw := bufio.NewWriter(w)
	for _, fh := range all {
		var line string
		if lt == ListLong {
			line = renderLong(fh.History)
		} else {
			line = renderShort(fh.History)
		}
		if _, err := fmt.Fprintf(bw, "%s: %s\n", fh.Path, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func renderShort(h history.History) string {
	parts := make([]string, len(h))
	for i, s := range h {
		parts[i] = strconv.Itoa(s.Count)
	}
	return strings.Join(parts, ", ")
}

func renderLong(h history.History) string {
	parts := make([]string, len(h))
	for i, s := range h {
		parts[i] = "(" + s.Time.Format(time.RFC3339) + ", " + strconv.Itoa(s.Count) + ")"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
