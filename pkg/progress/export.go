package progress

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/lineprogress/pkg/history"
)

// Format is a machine-readable export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts json, yaml (or yml) and csv.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("invalid export format %q; expected json, yaml or csv", s)
}

// Encode writes all histories to w in format f.
func Encode(w io.Writer, all []history.FileHistory, f Format) error {
	if all == nil {
		all = []history.FileHistory{}
	}
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(all); err != nil {
			return fmt.Errorf("export yaml: %w", err)
		}
		return enc.Close()
	case FormatCSV:
		return encodeCSV(w, all)
	}
	return fmt.Errorf("export: unsupported format %q", f)
}

func encodeCSV(w io.Writer, all []history.FileHistory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"path", "time", "count"}); err != nil {
		return err
	}
	for _, fh := range all {
		for _, s := range fh.History {
			row := []string{fh.Path, s.Time.Format(time.RFC3339Nano), strconv.Itoa(s.Count)}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
