package storage

import (
	"database/sql"
	"errors"
	"sync"
	"time"
)

// SQLiteStore keeps blobs in the kv table created by the database
// migrations.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLite wraps an initialized database.
func NewSQLite(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get returns the value stored under key, or nil if there is none.
func (s *SQLiteStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value []byte
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

// Put replaces the value stored under key.
func (s *SQLiteStore) Put(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stmt, err := s.db.Prepare(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(key, data, time.Now().Unix())
	return err
}

// Close is a no-op; the database is owned by the caller.
func (s *SQLiteStore) Close() error { return nil }

// DB exposes the underlying database for other tables such as metrics.
func (s *SQLiteStore) DB() *sql.DB { return s.db }
