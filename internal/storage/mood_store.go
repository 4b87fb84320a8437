package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moodtracker/moodtracker/internal/core"
)

// DateFormat is the calendar-date layout used for date-keyed lookups.
const DateFormat = "2006-01-02"

// retentionPeriod is how long mood entries are kept before cleanup.
const retentionPeriod = 2 * 365 * 24 * time.Hour

// MoodStore handles mood entry persistence
type MoodStore struct {
	db *DB
}

// NewMoodStore creates a new mood store
func NewMoodStore(db *DB) *MoodStore {
	return &MoodStore{db: db}
}

// Create inserts a new mood entry. The ID, date and timestamps are filled
// in when absent. Entries are immutable once saved; there is no update path.
func (s *MoodStore) Create(entry *core.MoodEntry) error {
	now := time.Now()
	nowMillis := now.UnixMilli()

	if entry.ID == "" {
		entry.ID = core.EntryID(uuid.New().String())
	}
	if entry.Timestamp == 0 {
		entry.Timestamp = nowMillis
	}
	if entry.Date == "" {
		entry.Date = now.Format(DateFormat)
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}
	entry.CreatedAt = nowMillis
	entry.UpdatedAt = nowMillis

	tags, err := json.Marshal(entry.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	_, err = s.db.conn.Exec(`
		INSERT INTO mood_entries (
		    id, date, timestamp, emoji, mood_type, intensity, note, tags,
		    created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID, entry.Date, entry.Timestamp, entry.Emoji, entry.MoodType,
		entry.Intensity, nullableString(entry.Note), string(tags),
		entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert mood entry: %w", err)
	}

	return nil
}

// List returns entries newest-first. A limit <= 0 returns all entries.
func (s *MoodStore) List(limit int) ([]*core.MoodEntry, error) {
	query := `
		SELECT id, date, timestamp, emoji, mood_type, intensity, note, tags,
		       created_at, updated_at
		FROM mood_entries
		ORDER BY timestamp DESC
	`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.conn.Query(query+" LIMIT ?", limit)
	} else {
		rows, err = s.db.conn.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("query mood entries: %w", err)
	}
	defer rows.Close()

	return s.scanEntries(rows)
}

// GetByDate returns the effective entry for a calendar date: the newest by
// timestamp, or nil if the date has no entries.
func (s *MoodStore) GetByDate(date string) (*core.MoodEntry, error) {
	rows, err := s.db.conn.Query(`
		SELECT id, date, timestamp, emoji, mood_type, intensity, note, tags,
		       created_at, updated_at
		FROM mood_entries
		WHERE date = ?
		ORDER BY timestamp DESC
		LIMIT 1
	`, date)
	if err != nil {
		return nil, fmt.Errorf("query mood entry by date: %w", err)
	}
	defer rows.Close()

	entries, err := s.scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries[0], nil
}

// ListSince returns entries created at or after the cutoff (epoch millis),
// newest-first by timestamp.
func (s *MoodStore) ListSince(cutoffMillis int64) ([]*core.MoodEntry, error) {
	rows, err := s.db.conn.Query(`
		SELECT id, date, timestamp, emoji, mood_type, intensity, note, tags,
		       created_at, updated_at
		FROM mood_entries
		WHERE created_at >= ?
		ORDER BY timestamp DESC
	`, cutoffMillis)
	if err != nil {
		return nil, fmt.Errorf("query weekly entries: %w", err)
	}
	defer rows.Close()

	return s.scanEntries(rows)
}

// ListWeekly returns the trailing 7-day window, newest-first.
func (s *MoodStore) ListWeekly() ([]*core.MoodEntry, error) {
	cutoff := time.Now().Add(-7 * 24 * time.Hour).UnixMilli()
	return s.ListSince(cutoff)
}

// Count returns the total number of stored entries.
func (s *MoodStore) Count() (int, error) {
	var count int
	err := s.db.conn.QueryRow("SELECT COUNT(*) FROM mood_entries").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count mood entries: %w", err)
	}
	return count, nil
}

// MostCommonMood returns the glyph with the highest entry count. Ties break
// lexicographically by glyph so the result is deterministic. Returns the
// default glyph when no entries exist.
func (s *MoodStore) MostCommonMood() (string, error) {
	var emoji string
	err := s.db.conn.QueryRow(`
		SELECT emoji FROM mood_entries
		GROUP BY emoji
		ORDER BY COUNT(*) DESC, emoji ASC
		LIMIT 1
	`).Scan(&emoji)
	if err == sql.ErrNoRows {
		return "😊", nil
	}
	if err != nil {
		return "", fmt.Errorf("query most common mood: %w", err)
	}
	return emoji, nil
}

// AverageIntensity returns the mean intensity over all entries, 0 when empty.
func (s *MoodStore) AverageIntensity() (float64, error) {
	var avg sql.NullFloat64
	err := s.db.conn.QueryRow("SELECT AVG(intensity) FROM mood_entries").Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("query average intensity: %w", err)
	}
	return avg.Float64, nil
}

// StreakCount walks backward day-by-day from today and counts consecutive
// days with an entry. A missing entry for today does not break the streak;
// the first missing prior day does.
func (s *MoodStore) StreakCount() (int, error) {
	today := time.Now().Format(DateFormat)
	current := time.Now()
	streak := 0

	for {
		dateStr := current.Format(DateFormat)
		entry, err := s.GetByDate(dateStr)
		if err != nil {
			return 0, err
		}

		if entry != nil {
			streak++
			current = current.AddDate(0, 0, -1)
			continue
		}

		// Today without an entry doesn't end the streak yet
		if dateStr == today {
			current = current.AddDate(0, 0, -1)
			continue
		}
		break
	}

	return streak, nil
}

// CleanupOldEntries removes entries older than the retention period and
// returns how many were deleted.
func (s *MoodStore) CleanupOldEntries() (int64, error) {
	cutoff := time.Now().Add(-retentionPeriod).UnixMilli()
	res, err := s.db.conn.Exec("DELETE FROM mood_entries WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup old entries: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (s *MoodStore) scanEntries(rows *sql.Rows) ([]*core.MoodEntry, error) {
	var entries []*core.MoodEntry

	for rows.Next() {
		entry := &core.MoodEntry{}
		var note sql.NullString
		var tags string

		err := rows.Scan(
			&entry.ID, &entry.Date, &entry.Timestamp, &entry.Emoji,
			&entry.MoodType, &entry.Intensity, &note, &tags,
			&entry.CreatedAt, &entry.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan mood entry: %w", err)
		}

		entry.Note = note.String
		if err := json.Unmarshal([]byte(tags), &entry.Tags); err != nil {
			entry.Tags = []string{}
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
