package server

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// A RenderStore keeps each session's most recent render so that the raw-HTML
// endpoint can serve it without sharing state across sessions.
type RenderStore struct {
	db *sql.DB
}

// OpenStore opens (and creates if needed) a render store at path. An empty
// path opens a private in-memory database that lives as long as the store.
func OpenStore(path string) (*RenderStore, error) {
	if path == "" {
		path = "file:mdpage-renders?mode=memory&cache=shared"
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening render store: %w", err)
	}
	// A single connection keeps the shared in-memory database alive and
	// serializes writers.
	db.SetMaxOpenConns(1)

	const schema = `CREATE TABLE IF NOT EXISTS renders (
		session    TEXT PRIMARY KEY,
		html       TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing render store: %w", err)
	}
	return &RenderStore{db: db}, nil
}

// Put records html as the most recent render for session.
func (s *RenderStore) Put(session, html string) error {
	_, err := s.db.Exec(`INSERT INTO renders (session, html, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(session) DO UPDATE SET html = excluded.html, updated_at = excluded.updated_at`,
		session, html, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("storing render: %w", err)
	}
	return nil
}

// Get returns the most recent render for session, if any.
func (s *RenderStore) Get(session string) (string, bool, error) {
	var html string
	err := s.db.QueryRow(`SELECT html FROM renders WHERE session = ?`, session).Scan(&html)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("loading render: %w", err)
	}
	return html, true, nil
}

// Close releases the underlying database.
func (s *RenderStore) Close() error {
	return s.db.Close()
}
