// Package history persists the append-only content-line history of tracked
// files in a per-repository SQLite database.
package history

import "time"

// Snapshot is one observation: the file had Count content lines at Time.
type Snapshot struct {
	Time  time.Time `json:"time" yaml:"time"`
	Count int       `json:"count" yaml:"count"`
}

// History is the ordered sequence of snapshots for one file, oldest first.
type History []Snapshot

// Counts returns the counts of h in order.
func (h History) Counts() []int {
	out := make([]int, len(h))
	for i, s := range h {
		out[i] = s.Count
	}
	return out
}

// Entry pairs a repo-relative path with a snapshot to append.
type Entry struct {
	Path     string
	Snapshot Snapshot
}

// FileHistory is the full history stored under one path.
type FileHistory struct {
	Path    string  `json:"path" yaml:"path"`
	History History `json:"history" yaml:"history"`
}
