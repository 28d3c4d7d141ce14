package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/campuswell/pulse/moods"
)

// MoodRepository persists mood entries and help-request notifications.
type MoodRepository struct {
	db *sql.DB
}

// NewMoodRepository wraps an existing *sql.DB connection.
func NewMoodRepository(db *sql.DB) *MoodRepository {
	return &MoodRepository{db: db}
}

func (r *MoodRepository) InsertEntry(ctx context.Context, entry moods.Entry) error {
	const query = `INSERT INTO mood_logs (id, user_id, score, notes, created_at)
                   VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.Score, entry.Note, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres: insert mood: %w", err)
	}
	return nil
}

func (r *MoodRepository) ListEntriesByUser(ctx context.Context, userID string) ([]moods.Entry, error) {
	const query = `SELECT id, user_id, score, COALESCE(notes, ''), created_at
                   FROM mood_logs WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres: list moods: %w", err)
	}
	defer rows.Close()

	var entries []moods.Entry
	for rows.Next() {
		var entry moods.Entry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Score, &entry.Note, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan mood: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list moods: %w", err)
	}
	return entries, nil
}

func (r *MoodRepository) ListHelpRequests(ctx context.Context) ([]moods.HelpRequest, error) {
	const query = `SELECT id, user_id, message, type, created_at
                   FROM notifications WHERE type = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, moods.HelpRequestType)
	if err != nil {
		return nil, fmt.Errorf("postgres: list help requests: %w", err)
	}
	defer rows.Close()

	var reqs []moods.HelpRequest
	for rows.Next() {
		var req moods.HelpRequest
		if err := rows.Scan(&req.ID, &req.UserID, &req.Message, &req.Type, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan help request: %w", err)
		}
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list help requests: %w", err)
	}
	return reqs, nil
}

func (r *MoodRepository) InsertHelpRequest(ctx context.Context, req moods.HelpRequest) error {
	const query = `INSERT INTO notifications (id, user_id, message, type, created_at)
                   VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query,
		req.ID, req.UserID, req.Message, req.Type, req.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres: insert help request: %w", err)
	}
	return nil
}
