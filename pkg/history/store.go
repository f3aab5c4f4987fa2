package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the database file name inside the repository metadata directory.
const FileName = "lineprogress.db"

// Store is the progress history of one repository. Every operation opens the
// database for its own duration and closes it before returning.
type Store struct {
	path string
}

// New returns the Store kept in the repository metadata directory metaDir
// (as reported by vcs.Client.MetaDir). Nothing is created until the first
// write.
func New(metaDir string) *Store {
	return &Store{path: filepath.Join(metaDir, FileName)}
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Append adds snap to the end of the history stored under path, creating the
// history if it does not exist.
func (s *Store) Append(ctx context.Context, path string, snap Snapshot) error {
	return s.AppendBatch(ctx, []Entry{{Path: path, Snapshot: snap}})
}

// AppendBatch appends every entry in order. Each entry is applied in its own
// transaction; a failure stops the batch and leaves earlier entries applied.
func (s *Store) AppendBatch(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	for _, e := range entries {
		if err := validateEntry(e); err != nil {
			return err
		}
	}

	db, err := openDB(ctx, s.path)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, e := range entries {
		if err := appendEntry(ctx, db, e); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the history stored under path, or an empty history.
func (s *Store) Get(ctx context.Context, path string) (History, error) {
	db, ok, err := s.openExisting(ctx)
	if err != nil || !ok {
		return nil, err
	}
	defer db.Close()

	var data []byte
	err = db.QueryRowContext(ctx, `SELECT data FROM history WHERE path = ?`, path).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", path, err)
	}
	h, err := decodeHistory(data)
	if err != nil {
		return nil, &CorruptRecordError{Key: path, Err: err}
	}
	return h, nil
}

// ReadAll returns every stored history in the database's native row order,
// which is the order keys were first written. Callers must not rely on it
// being sorted.
func (s *Store) ReadAll(ctx context.Context) ([]FileHistory, error) {
	db, ok, err := s.openExisting(ctx)
	if err != nil || !ok {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT path, data FROM history ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("read all: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []FileHistory
	for rows.Next() {
		var (
			path string
			data []byte
		)
		if err := rows.Scan(&path, &data); err != nil {
			return nil, fmt.Errorf("read all: scan: %w", err)
		}
		h, err := decodeHistory(data)
		if err != nil {
			return nil, &CorruptRecordError{Key: path, Err: err}
		}
		out = append(out, FileHistory{Path: path, History: h})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read all: %w", err)
	}
	return out, nil
}

// openExisting opens the database only if its file exists, so reads never
// create the store.
func (s *Store) openExisting(ctx context.Context) (*sql.DB, bool, error) {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, &UnavailableError{Path: s.path, Err: err}
	}
	db, err := openDB(ctx, s.path)
	if err != nil {
		return nil, false, err
	}
	return db, true, nil
}

func validateEntry(e Entry) error {
	if strings.TrimSpace(e.Path) == "" {
		return fmt.Errorf("append: path is required")
	}
	if e.Snapshot.Count < 0 {
		return fmt.Errorf("append %q: negative count %d", e.Path, e.Snapshot.Count)
	}
	return nil
}

// appendEntry performs the read-append-write cycle for one key inside a
// single transaction.
func appendEntry(ctx context.Context, db *sql.DB, e Entry) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("append %q: begin: %w", e.Path, err)
	}
	defer func() { _ = tx.Rollback() }()

	var (
		h    History
		data []byte
	)
	err = tx.QueryRowContext(ctx, `SELECT data FROM history WHERE path = ?`, e.Path).Scan(&data)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("append %q: read: %w", e.Path, err)
	default:
		h, err = decodeHistory(data)
		if err != nil {
			return &CorruptRecordError{Key: e.Path, Err: err}
		}
	}

	h = append(h, e.Snapshot)
	encoded, err := encodeHistory(h)
	if err != nil {
		return fmt.Errorf("append %q: %w", e.Path, err)
	}

	// Upsert keeps the original rowid so ReadAll order stays stable.
	_, err = tx.ExecContext(ctx,
		`INSERT INTO history (path, data) VALUES (?, ?)
		 ON CONFLICT(path) DO UPDATE SET data = excluded.data`,
		e.Path, encoded,
	)
	if err != nil {
		return fmt.Errorf("append %q: write: %w", e.Path, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("append %q: commit: %w", e.Path, err)
	}
	return nil
}
