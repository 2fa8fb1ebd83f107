// Package store defines the session storage interface and implementations.
package store

import (
	"context"

	"github.com/pulseai/server/domain"
)

// SessionPatch carries the optional fields of a partial update. Nil fields
// are left untouched.
type SessionPatch struct {
	Problem *string
	Pinned  *bool
}

// Store defines the interface for session persistence. Malformed IDs fail
// with domain.ErrInvalidID before any storage access; well-formed IDs that
// match nothing fail with domain.ErrNotFound.
type Store interface {
	// Insert stores a new session and returns the assigned ID.
	Insert(ctx context.Context, session *domain.Session) (string, error)

	// FindAll returns up to 100 sessions, pinned first, newest first
	// within each group.
	FindAll(ctx context.Context) ([]domain.Session, error)

	// FindByID retrieves a single session.
	FindByID(ctx context.Context, id string) (*domain.Session, error)

	// Update applies a partial update and returns the updated session.
	// Fails with domain.ErrNoValidFields when the patch is empty.
	Update(ctx context.Context, id string, patch SessionPatch) (*domain.Session, error)

	// UpdateConversation overwrites the turn fields of an existing
	// session, preserving its ID and pinned flag.
	UpdateConversation(ctx context.Context, id string, session *domain.Session) error

	// Delete removes a session.
	Delete(ctx context.Context, id string) error

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}
