package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// PreferenceStore handles key/value user preferences
type PreferenceStore struct {
	db *DB
}

// NewPreferenceStore creates a new preference store
func NewPreferenceStore(db *DB) *PreferenceStore {
	return &PreferenceStore{db: db}
}

// Set upserts a preference value.
func (s *PreferenceStore) Set(key, value string) error {
	_, err := s.db.conn.Exec(`
		INSERT OR REPLACE INTO user_preferences (key, value, updated_at)
		VALUES (?, ?, ?)
	`, key, value, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}

// Get returns the stored value, or "" with ok=false when the key is absent.
func (s *PreferenceStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.conn.QueryRow(
		"SELECT value FROM user_preferences WHERE key = ?", key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %s: %w", key, err)
	}
	return value, true, nil
}

// Delete removes a preference.
func (s *PreferenceStore) Delete(key string) error {
	_, err := s.db.conn.Exec("DELETE FROM user_preferences WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("delete preference %s: %w", key, err)
	}
	return nil
}
