package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pulseai/server/domain"
)

// errorJSON maps domain failures to HTTP responses. Upstream and store
// errors carry safe, fixed messages; anything outside the known set is
// logged and generalized.
func errorJSON(c echo.Context, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": ve.Error()})
	case errors.Is(err, domain.ErrInvalidID):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid session ID format"})
	case errors.Is(err, domain.ErrNoValidFields):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No valid updates provided"})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Session not found"})
	case errors.Is(err, domain.ErrUpstreamTimeout):
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "AI service request timed out. Please try again."})
	case errors.Is(err, domain.ErrEmptyResponse), errors.Is(err, domain.ErrUpstream):
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate AI response. Please try again."})
	case errors.Is(err, domain.ErrStoreUnavailable):
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection not available"})
	default:
		log.Printf("ERROR: unexpected error: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}
