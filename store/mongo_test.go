package store

import (
	"context"
	"errors"
	"testing"

	"github.com/pulseai/server/domain"
)

// ID syntax is checked before any query is issued, so these paths need no
// live server.

func TestFindByIDInvalidID(t *testing.T) {
	s := &MongoStore{}
	_, err := s.FindByID(context.Background(), "not-an-object-id")
	if !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestUpdateInvalidID(t *testing.T) {
	s := &MongoStore{}
	pinned := true
	_, err := s.Update(context.Background(), "short", SessionPatch{Pinned: &pinned})
	if !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestUpdateNoValidFields(t *testing.T) {
	s := &MongoStore{}
	_, err := s.Update(context.Background(), "65a000000000000000000001", SessionPatch{})
	if !errors.Is(err, domain.ErrNoValidFields) {
		t.Fatalf("expected ErrNoValidFields, got %v", err)
	}
}

func TestDeleteInvalidID(t *testing.T) {
	s := &MongoStore{}
	err := s.Delete(context.Background(), "zzzzzzzzzzzzzzzzzzzzzzzz")
	if !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestUpdateConversationInvalidID(t *testing.T) {
	s := &MongoStore{}
	err := s.UpdateConversation(context.Background(), "", &domain.Session{})
	if !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}
