// Package wordfreq keeps word usage statistics for "used word" style rules.
// It is a collaborator of the check core with one contract: calls are plain
// bounded queries that never block a check pass on background work.
package wordfreq

import (
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

//go:embed schema.sql
var schemaSQL string

// WordCount is one word's usage count within the current session.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Store records word usage in SQLite. Each Store instance owns one session,
// so concurrent runs over different documents do not mix their counts.
type Store struct {
	db        *sql.DB
	path      string
	sessionID string
}

// Open opens the statistics database at path, creating the schema when
// missing, and starts a fresh session. Use ":memory:" for an in-memory
// database.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open word statistics database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping word statistics database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	s := &Store{db: db, path: path, sessionID: uuid.New().String()}
	if _, err := db.Exec(`INSERT INTO sessions (id) VALUES (?)`, s.sessionID); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SessionID returns the id of the session this store records into.
func (s *Store) SessionID() string {
	return s.sessionID
}

// Record adds n occurrences of word to the current session.
func (s *Store) Record(word string, n int) error {
	if n <= 0 {
		return nil
	}
	_, err := s.db.Exec(`
		INSERT INTO word_counts (session_id, word, count) VALUES (?, ?, ?)
		ON CONFLICT (session_id, word) DO UPDATE SET count = count + excluded.count`,
		s.sessionID, word, n)
	if err != nil {
		return fmt.Errorf("failed to record %q: %w", word, err)
	}
	return nil
}

// RecordAll adds a batch of counts in one transaction.
func (s *Store) RecordAll(counts map[string]int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO word_counts (session_id, word, count) VALUES (?, ?, ?)
		ON CONFLICT (session_id, word) DO UPDATE SET count = count + excluded.count`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for word, n := range counts {
		if n <= 0 {
			continue
		}
		if _, err := stmt.Exec(s.sessionID, word, n); err != nil {
			return fmt.Errorf("failed to record %q: %w", word, err)
		}
	}
	return tx.Commit()
}

// Count returns the session count for one word.
func (s *Store) Count(word string) (int, error) {
	var n int
	err := s.db.QueryRow(`
		SELECT count FROM word_counts WHERE session_id = ? AND word = ?`,
		s.sessionID, word).Scan(&n)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count %q: %w", word, err)
	}
	return n, nil
}

// Top returns the n most used words of the session, most used first; ties
// break alphabetically so the result is deterministic.
func (s *Store) Top(n int) ([]WordCount, error) {
	rows, err := s.db.Query(`
		SELECT word, count FROM word_counts
		WHERE session_id = ?
		ORDER BY count DESC, word ASC
		LIMIT ?`, s.sessionID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query top words: %w", err)
	}
	defer rows.Close()

	var out []WordCount
	for rows.Next() {
		var wc WordCount
		if err := rows.Scan(&wc.Word, &wc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan word count: %w", err)
		}
		out = append(out, wc)
	}
	return out, rows.Err()
}
