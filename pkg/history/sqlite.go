package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
	path TEXT PRIMARY KEY,
	data BLOB NOT NULL
);`

// openDB opens the database at path, creating the file and schema when
// missing. The returned handle must be closed by the caller.
func openDB(ctx context.Context, path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &UnavailableError{Path: path, Err: fmt.Errorf("create directory: %w", err)}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &UnavailableError{Path: path, Err: err}
	}

	// SQLite works best with a single writer connection.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &UnavailableError{Path: path, Err: err}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, &UnavailableError{Path: path, Err: fmt.Errorf("migrate: %w", err)}
	}
	return db, nil
}
