// Package helpers provides shared test fixtures.
package helpers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/pulseai/server/domain"
	"github.com/pulseai/server/store"
)

// MemStore is an in-memory store.Store for handler and service tests. It
// mirrors the Mongo store's contract, including the 24-hex-char ID syntax
// check and the pinned/timestamp list order.
type MemStore struct {
	mu       sync.Mutex
	seq      int
	sessions map[string]domain.Session
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{sessions: make(map[string]domain.Session)}
}

func validID(id string) bool {
	if len(id) != 24 {
		return false
	}
	for _, r := range id {
		ok := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
		if !ok {
			return false
		}
	}
	return true
}

// Insert stores a new session under a generated 24-hex-char ID.
func (m *MemStore) Insert(_ context.Context, session *domain.Session) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	id := fmt.Sprintf("%024x", m.seq)
	s := *session
	s.ID = id
	m.sessions[id] = s
	return id, nil
}

// FindAll returns up to 100 sessions, pinned first, newest first within
// each group.
func (m *MemStore) FindAll(_ context.Context) ([]domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if len(out) > 100 {
		out = out[:100]
	}
	return out, nil
}

// FindByID retrieves a single session.
func (m *MemStore) FindByID(_ context.Context, id string) (*domain.Session, error) {
	if !validID(id) {
		return nil, domain.ErrInvalidID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

// Update applies a partial update and returns the updated session.
func (m *MemStore) Update(_ context.Context, id string, patch store.SessionPatch) (*domain.Session, error) {
	if !validID(id) {
		return nil, domain.ErrInvalidID
	}
	if patch.Problem == nil && patch.Pinned == nil {
		return nil, domain.ErrNoValidFields
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Problem != nil {
		s.Problem = *patch.Problem
	}
	if patch.Pinned != nil {
		s.Pinned = *patch.Pinned
	}
	m.sessions[id] = s
	return &s, nil
}

// UpdateConversation overwrites the turn fields of an existing session.
func (m *MemStore) UpdateConversation(_ context.Context, id string, session *domain.Session) error {
	if !validID(id) {
		return domain.ErrInvalidID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Problem = session.Problem
	s.AdditionalInfo = session.AdditionalInfo
	s.AIResponse = session.AIResponse
	s.Messages = session.Messages
	s.Timestamp = session.Timestamp
	m.sessions[id] = s
	return nil
}

// Delete removes a session.
func (m *MemStore) Delete(_ context.Context, id string) error {
	if !validID(id) {
		return domain.ErrInvalidID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

// Close is a no-op.
func (m *MemStore) Close(context.Context) error { return nil }
