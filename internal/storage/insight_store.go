package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moodtracker/moodtracker/internal/core"
)

// InsightStore handles AI insight persistence
type InsightStore struct {
	db *DB
}

// NewInsightStore creates a new insight store
func NewInsightStore(db *DB) *InsightStore {
	return &InsightStore{db: db}
}

// Create persists a generated insight and returns its ID.
func (s *InsightStore) Create(text, category, dateRange string) (core.InsightID, error) {
	id := core.InsightID(uuid.New().String())
	_, err := s.db.conn.Exec(`
		INSERT INTO ai_insights (id, insight_text, insight_type, date_range, created_at, is_read)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, text, category, dateRange, time.Now().UnixMilli(), false)
	if err != nil {
		return "", fmt.Errorf("insert insight: %w", err)
	}
	return id, nil
}

// List returns insights newest-first, capped at limit.
func (s *InsightStore) List(limit int) ([]*core.Insight, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := s.db.conn.Query(`
		SELECT id, insight_text, insight_type, date_range, created_at, is_read
		FROM ai_insights
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query insights: %w", err)
	}
	defer rows.Close()

	var insights []*core.Insight
	for rows.Next() {
		insight := &core.Insight{}
		err := rows.Scan(
			&insight.ID, &insight.Text, &insight.Category,
			&insight.DateRange, &insight.CreatedAt, &insight.IsRead,
		)
		if err != nil {
			return nil, fmt.Errorf("scan insight: %w", err)
		}
		insights = append(insights, insight)
	}

	return insights, rows.Err()
}

// MarkRead flips the read flag on an insight.
func (s *InsightStore) MarkRead(id core.InsightID) error {
	res, err := s.db.conn.Exec("UPDATE ai_insights SET is_read = ? WHERE id = ?", true, id)
	if err != nil {
		return fmt.Errorf("mark insight read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return core.ErrInsightNotFound
	}
	return nil
}
