package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"deadwood/internal/remover"
)

// Journal records every applied removal in a local SQLite database so a
// destructive edit can always be reviewed after the fact.
type Journal struct {
	db *sql.DB
}

// Entry is one journaled removal.
type Entry struct {
	ID        int64
	Filepath  string
	Name      string
	StartLine int
	EndLine   int
	Content   string
	RemovedAt time.Time
}

// Open creates or opens the journal database at path.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	j := &Journal{db: db}
	if err := j.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return j, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) initSchema() error {
	query := `CREATE TABLE IF NOT EXISTS removals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filepath TEXT NOT NULL,
		name TEXT NOT NULL,
		start_line INTEGER NOT NULL,
		end_line INTEGER NOT NULL,
		content TEXT NOT NULL,
		removed_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_removals_file ON removals(filepath);`

	_, err := j.db.Exec(query)
	return err
}

// Record journals one removal against the file it was cut from.
func (j *Journal) Record(ctx context.Context, filepath string, r remover.Removal) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO removals (filepath, name, start_line, end_line, content, removed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		filepath, r.Boundary.Name, r.Boundary.StartLine, r.Boundary.EndLine, r.Text, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record removal of %s: %w", r.Boundary.Name, err)
	}
	return nil
}

// Recent returns the newest entries, optionally filtered to one file.
func (j *Journal) Recent(ctx context.Context, filepath string, limit int) ([]Entry, error) {
	query := `SELECT id, filepath, name, start_line, end_line, content, removed_at
		FROM removals`
	args := []interface{}{}
	if filepath != "" {
		query += ` WHERE filepath = ?`
		args = append(args, filepath)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Filepath, &e.Name, &e.StartLine, &e.EndLine, &e.Content, &e.RemovedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
