// Package api provides HTTP handlers for the chat backend.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pulseai/server/chat"
	"github.com/pulseai/server/config"
	"github.com/pulseai/server/store"
)

// Handler handles HTTP requests.
type Handler struct {
	chat   *chat.Service
	store  store.Store
	config *config.Config
}

// NewHandler creates a new handler.
func NewHandler(chatSvc *chat.Service, store store.Store, config *config.Config) *Handler {
	return &Handler{
		chat:   chatSvc,
		store:  store,
		config: config,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Health)

	e.POST("/api/chat", h.Chat)
	e.GET("/api/sessions", h.ListSessions)
	e.GET("/api/sessions/:session_id", h.GetSession)
	e.PATCH("/api/sessions/:session_id", h.UpdateSession)
	e.DELETE("/api/sessions/:session_id", h.DeleteSession)
}

// Health returns API status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Pulse AI API is running",
		"status":  "healthy",
	})
}
