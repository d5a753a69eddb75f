// Package journal persists run history to a local SQLite database so
// past scans and their disposals can be reviewed after the fact.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/dbsmedya/godedupe/internal/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id             TEXT PRIMARY KEY,
	root           TEXT NOT NULL,
	recursive      INTEGER NOT NULL,
	protected_dir  TEXT NOT NULL DEFAULT '',
	started_at     TIMESTAMP NOT NULL,
	completed_at   TIMESTAMP,
	groups_found   INTEGER NOT NULL DEFAULT 0,
	files_disposed INTEGER NOT NULL DEFAULT 0,
	warnings       INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS disposals (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL REFERENCES runs(id),
	path        TEXT NOT NULL,
	size        INTEGER NOT NULL,
	reason      TEXT NOT NULL,
	disposed_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_disposals_run_id ON disposals(run_id);
`

// RunSummary is one row of run history.
type RunSummary struct {
	ID            string
	Root          string
	Recursive     bool
	ProtectedDir  string
	StartedAt     time.Time
	CompletedAt   sql.NullTime
	GroupsFound   int
	FilesDisposed int
	Warnings      int
}

// DisposalEntry is one recorded disposal within a run.
type DisposalEntry struct {
	Path       string
	Size       int64
	Reason     string
	DisposedAt time.Time
}

// Journal records runs and their disposals. One Journal tracks at most
// one active run at a time.
type Journal struct {
	db     *sql.DB
	runID  string
	logger *logger.Logger

	now func() time.Time
}

// Open opens (creating if needed) the journal database at path. Empty
// path selects the default location under the user data directory.
func Open(path string, log *logger.Logger) (*Journal, error) {
	if path == "" {
		var err error
		path, err = defaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to locate journal path: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}
	// SQLite serializes writers; a single connection avoids lock errors.
	db.SetMaxOpenConns(1)

	j, err := NewWithDB(db, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

// NewWithDB wraps an existing database handle and ensures the schema
// exists. Used by Open and by tests.
func NewWithDB(db *sql.DB, log *logger.Logger) (*Journal, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}
	return &Journal{db: db, logger: log, now: time.Now}, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// RunID returns the id of the active run, empty before Begin.
func (j *Journal) RunID() string {
	return j.runID
}

// Begin records the start of a run and makes it the active run.
func (j *Journal) Begin(ctx context.Context, root string, recursive bool, protectedDir string) error {
	id := uuid.NewString()
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO runs (id, root, recursive, protected_dir, started_at) VALUES (?, ?, ?, ?, ?)`,
		id, root, recursive, protectedDir, j.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record run start: %w", err)
	}
	j.runID = id
	j.logger.Debugw("Journal run started", "run_id", id, "root", root)
	return nil
}

// Disposal records one successful disposal under the active run.
func (j *Journal) Disposal(ctx context.Context, path string, size int64, reason string) error {
	if j.runID == "" {
		return fmt.Errorf("no active run")
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO disposals (run_id, path, size, reason, disposed_at) VALUES (?, ?, ?, ?, ?)`,
		j.runID, path, size, reason, j.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record disposal: %w", err)
	}
	return nil
}

// Complete marks the active run finished with its final counters.
func (j *Journal) Complete(ctx context.Context, groups, disposed, warnings int) error {
	if j.runID == "" {
		return fmt.Errorf("no active run")
	}
	_, err := j.db.ExecContext(ctx,
		`UPDATE runs SET completed_at = ?, groups_found = ?, files_disposed = ?, warnings = ? WHERE id = ?`,
		j.now().UTC(), groups, disposed, warnings, j.runID)
	if err != nil {
		return fmt.Errorf("failed to record run completion: %w", err)
	}
	j.logger.Debugw("Journal run completed", "run_id", j.runID, "files_disposed", disposed)
	j.runID = ""
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (j *Journal) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, root, recursive, protected_dir, started_at, completed_at,
		        groups_found, files_disposed, warnings
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Root, &r.Recursive, &r.ProtectedDir,
			&r.StartedAt, &r.CompletedAt, &r.GroupsFound, &r.FilesDisposed, &r.Warnings); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read run rows: %w", err)
	}
	return runs, nil
}

// Disposals returns the disposals recorded for one run, oldest first.
func (j *Journal) Disposals(ctx context.Context, runID string) ([]DisposalEntry, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT path, size, reason, disposed_at FROM disposals WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query disposals: %w", err)
	}
	defer rows.Close()

	var entries []DisposalEntry
	for rows.Next() {
		var e DisposalEntry
		if err := rows.Scan(&e.Path, &e.Size, &e.Reason, &e.DisposedAt); err != nil {
			return nil, fmt.Errorf("failed to scan disposal row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read disposal rows: %w", err)
	}
	return entries, nil
}

// defaultPath returns the journal location under the user data
// directory, creating nothing.
func defaultPath() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "godedupe", "journal.db"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "godedupe", "journal.db"), nil
}
