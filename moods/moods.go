// Package moods is the mood-log collaborator that sits behind the access
// gate. It consumes the request identity the auth middleware resolves and
// never touches credentials itself.
package moods

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidScore = errors.New("moods: score must be between 1 and 10")
	ErrInvalidInput = errors.New("moods: missing required input")
)

// HelpRequestType labels staff notifications raised from the mood page.
const HelpRequestType = "Help Request from student"

// Entry is a single mood log, always scoped to the user who created it.
type Entry struct {
	ID        string
	UserID    string
	Score     int
	Note      string
	CreatedAt time.Time
}

// HelpRequest is a notification dispatched to staff.
type HelpRequest struct {
	ID        string
	UserID    string
	Message   string
	Type      string
	CreatedAt time.Time
}

// Repository persists mood entries and help requests.
type Repository interface {
	InsertEntry(ctx context.Context, entry Entry) error
	ListEntriesByUser(ctx context.Context, userID string) ([]Entry, error)
	InsertHelpRequest(ctx context.Context, req HelpRequest) error
	ListHelpRequests(ctx context.Context) ([]HelpRequest, error)
}

// Service validates and records mood activity for an identified user.
type Service struct {
	repo  Repository
	now   func() time.Time
	newID func() string
}

// NewService builds a Service over the given repository.
func NewService(repo Repository) (*Service, error) {
	if repo == nil {
		return nil, ErrInvalidInput
	}
	return &Service{repo: repo, now: time.Now, newID: uuid.NewString}, nil
}

// SetNowFunc injects a deterministic clock for tests.
func (s *Service) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Log records a mood score (1..10) with an optional note.
func (s *Service) Log(ctx context.Context, userID string, score int, note string) (Entry, error) {
	if userID == "" {
		return Entry{}, ErrInvalidInput
	}
	if score < 1 || score > 10 {
		return Entry{}, ErrInvalidScore
	}
	entry := Entry{
		ID:        s.newID(),
		UserID:    userID,
		Score:     score,
		Note:      strings.TrimSpace(note),
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.InsertEntry(ctx, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// History lists the user's mood entries, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]Entry, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListEntriesByUser(ctx, userID)
}

// RequestHelp raises a staff notification on the user's behalf.
func (s *Service) RequestHelp(ctx context.Context, userID, message string) (HelpRequest, error) {
	message = strings.TrimSpace(message)
	if userID == "" || message == "" {
		return HelpRequest{}, ErrInvalidInput
	}
	req := HelpRequest{
		ID:        s.newID(),
		UserID:    userID,
		Message:   message,
		Type:      HelpRequestType,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.InsertHelpRequest(ctx, req); err != nil {
		return HelpRequest{}, err
	}
	return req, nil
}

// HelpQueue lists open help requests for staff triage.
func (s *Service) HelpQueue(ctx context.Context) ([]HelpRequest, error) {
	return s.repo.ListHelpRequests(ctx)
}

// Schema the collaborator needs, applied through postgres.ApplyMigrations.
const (
	DefaultMoodTableSchema = `CREATE TABLE IF NOT EXISTS mood_logs (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES users(id),
    score INTEGER NOT NULL,
    notes TEXT,
    created_at TIMESTAMPTZ NOT NULL
);`

	DefaultNotificationTableSchema = `CREATE TABLE IF NOT EXISTS notifications (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES users(id),
    message TEXT NOT NULL,
    type TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);`
)
