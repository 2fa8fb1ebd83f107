package api

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pulseai/server/chat"
)

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Name      string `json:"name"`
	Problem   string `json:"problem,omitempty"`
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// Chat runs one conversation turn: without a session_id it creates a new
// session, with one it appends to the existing conversation.
// POST /api/chat
func (h *Handler) Chat(c echo.Context) error {
	ctx := c.Request().Context()

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	session, err := h.chat.Converse(ctx, chat.TurnRequest{
		Name:      req.Name,
		Problem:   req.Problem,
		Message:   req.Message,
		SessionID: req.SessionID,
	})
	if err != nil {
		return errorJSON(c, err)
	}

	log.Printf("chat turn completed for session %s (%d messages)", session.ID, len(session.Messages))
	return c.JSON(http.StatusOK, session)
}
