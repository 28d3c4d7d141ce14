package moods

import (
	"time"

	"github.com/campuswell/pulse/auth"
	"github.com/campuswell/pulse/httpx"
)

// Handlers exposes the mood log over HTTP. Every route is mounted behind
// the access gate, so the request identity is always present.
type Handlers struct {
	svc *Service
}

// NewHandlers wraps the mood service.
func NewHandlers(svc *Service) *Handlers {
	return &Handlers{svc: svc}
}

type entryRequest struct {
	Score int    `json:"score" form:"score"`
	Notes string `json:"notes" form:"notes"`
}

type entryResponse struct {
	ID        string    `json:"id"`
	Score     int       `json:"score"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type helpRequestBody struct {
	Message string `json:"message" form:"message"`
}

type helpRequestResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// List returns the caller's mood history, newest first.
func (h *Handlers) List(c httpx.Context) error {
	identity, _ := auth.IdentityFromContext(c.Request().Context())
	entries, err := h.svc.History(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	out := make([]entryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entryResponse{
			ID:        entry.ID,
			Score:     entry.Score,
			Notes:     entry.Note,
			CreatedAt: entry.CreatedAt,
		})
	}
	return c.JSON(httpx.StatusOK, out)
}

// Create logs a mood entry for the caller.
func (h *Handlers) Create(c httpx.Context) error {
	var req entryRequest
	if err := c.Bind(&req); err != nil {
		return ErrInvalidInput
	}
	identity, _ := auth.IdentityFromContext(c.Request().Context())
	entry, err := h.svc.Log(c.Request().Context(), identity.ID, req.Score, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(httpx.StatusCreated, entryResponse{
		ID:        entry.ID,
		Score:     entry.Score,
		Notes:     entry.Note,
		CreatedAt: entry.CreatedAt,
	})
}

// Help raises a staff notification on the caller's behalf.
func (h *Handlers) Help(c httpx.Context) error {
	var req helpRequestBody
	if err := c.Bind(&req); err != nil {
		return ErrInvalidInput
	}
	identity, _ := auth.IdentityFromContext(c.Request().Context())
	created, err := h.svc.RequestHelp(c.Request().Context(), identity.ID, req.Message)
	if err != nil {
		return err
	}
	return c.JSON(httpx.StatusCreated, helpRequestResponse{
		ID:        created.ID,
		UserID:    created.UserID,
		Message:   created.Message,
		Type:      created.Type,
		CreatedAt: created.CreatedAt,
	})
}

// HelpQueue lists open help requests. Mounted staff-only.
func (h *Handlers) HelpQueue(c httpx.Context) error {
	reqs, err := h.svc.HelpQueue(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]helpRequestResponse, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, helpRequestResponse{
			ID:        req.ID,
			UserID:    req.UserID,
			Message:   req.Message,
			Type:      req.Type,
			CreatedAt: req.CreatedAt,
		})
	}
	return c.JSON(httpx.StatusOK, out)
}
