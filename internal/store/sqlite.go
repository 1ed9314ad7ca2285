package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/amishk599/coldreach/internal/model"
)

// SQLiteStore keeps a history of generated email drafts in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the drafts table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS drafts (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		url        TEXT NOT NULL,
		job_title  TEXT NOT NULL,
		email      TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating drafts table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// SaveDraft records one generated email for the given URL and job title.
func (s *SQLiteStore) SaveDraft(url, jobTitle, email string) error {
	_, err := s.db.Exec(
		"INSERT INTO drafts (url, job_title, email, created_at) VALUES (?, ?, ?, ?)",
		url, jobTitle, email, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("saving draft for %q: %w", jobTitle, err)
	}
	return nil
}

// ListDrafts returns the most recent drafts, newest first, up to limit.
func (s *SQLiteStore) ListDrafts(limit int) ([]model.Draft, error) {
	rows, err := s.db.Query(
		"SELECT id, url, job_title, email, created_at FROM drafts ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}
	defer rows.Close()

	var drafts []model.Draft
	for rows.Next() {
		var d model.Draft
		if err := rows.Scan(&d.ID, &d.URL, &d.JobTitle, &d.Email, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning draft row: %w", err)
		}
		drafts = append(drafts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating drafts: %w", err)
	}
	return drafts, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
