package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pulseai/server/store"
)

// SessionUpdateRequest is the body of PATCH /api/sessions/:session_id.
// Absent fields are left untouched.
type SessionUpdateRequest struct {
	Problem *string `json:"problem,omitempty"`
	Pinned  *bool   `json:"pinned,omitempty"`
}

// ListSessions returns up to 100 sessions, pinned first, newest first
// within each group.
// GET /api/sessions
func (h *Handler) ListSessions(c echo.Context) error {
	ctx := c.Request().Context()

	sessions, err := h.store.FindAll(ctx)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, sessions)
}

// GetSession returns a single session.
// GET /api/sessions/:session_id
func (h *Handler) GetSession(c echo.Context) error {
	ctx := c.Request().Context()

	session, err := h.store.FindByID(ctx, c.Param("session_id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, session)
}

// UpdateSession applies a rename and/or pin change.
// PATCH /api/sessions/:session_id
func (h *Handler) UpdateSession(c echo.Context) error {
	ctx := c.Request().Context()

	var req SessionUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	session, err := h.store.Update(ctx, c.Param("session_id"), store.SessionPatch{
		Problem: req.Problem,
		Pinned:  req.Pinned,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, session)
}

// DeleteSession removes a session and confirms the deleted ID.
// DELETE /api/sessions/:session_id
func (h *Handler) DeleteSession(c echo.Context) error {
	ctx := c.Request().Context()

	id := c.Param("session_id")
	if err := h.store.Delete(ctx, id); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Session deleted successfully",
		"id":      id,
	})
}
