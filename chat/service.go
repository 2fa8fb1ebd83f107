// Package chat implements the conversation turn flow: validate the patient
// input, load prior history, call the model, append the new turn, persist.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pulseai/server/config"
	"github.com/pulseai/server/domain"
	"github.com/pulseai/server/store"
	"github.com/pulseai/server/textutil"
)

// Generator produces assistant text for a user turn given prior history.
type Generator interface {
	Generate(ctx context.Context, history []domain.Message, userText string) (string, error)
}

// Service assembles conversation turns.
type Service struct {
	store     store.Store
	generator Generator
	cfg       *config.Config
}

// New creates a chat service.
func New(st store.Store, gen Generator, cfg *config.Config) *Service {
	return &Service{store: st, generator: gen, cfg: cfg}
}

// TurnRequest is one patient turn. SessionID is empty for a new
// conversation.
type TurnRequest struct {
	Name      string
	Problem   string
	Message   string
	SessionID string
}

// Converse runs one turn and returns the stored session. Validation happens
// before any store or upstream call. A turn appends exactly one user entry
// and one assistant entry to the history.
func (s *Service) Converse(ctx context.Context, req TurnRequest) (*domain.Session, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	var history []domain.Message
	var existing *domain.Session
	if req.SessionID != "" {
		sess, err := s.store.FindByID(ctx, req.SessionID)
		if err != nil {
			return nil, err
		}
		existing = sess
		history = sess.Messages
	}

	userText := buildUserTurn(req)

	reply, err := s.generator.Generate(ctx, history, userText)
	if err != nil {
		return nil, err
	}
	reply = textutil.CleanMarkdown(reply)

	problem := strings.TrimSpace(req.Problem)
	if problem == "" {
		problem = domain.PlaceholderProblem
	}

	messages := make([]domain.Message, 0, len(history)+2)
	messages = append(messages, history...)
	messages = append(messages,
		domain.Message{Role: domain.RoleUser, Content: userText},
		domain.Message{Role: domain.RoleAssistant, Content: reply},
	)

	session := &domain.Session{
		PatientName:    req.Name,
		Problem:        problem,
		AdditionalInfo: req.Message,
		AIResponse:     reply,
		Messages:       messages,
		Timestamp:      time.Now().UTC(),
	}

	if existing != nil {
		session.ID = existing.ID
		session.Pinned = existing.Pinned
		if err := s.store.UpdateConversation(ctx, existing.ID, session); err != nil {
			return nil, err
		}
		return session, nil
	}

	id, err := s.store.Insert(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = id
	return session, nil
}

func (s *Service) validate(req TurnRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len(req.Name) > s.cfg.MaxNameLength {
		return &domain.ValidationError{Field: "name", Reason: fmt.Sprintf("must be at most %d characters", s.cfg.MaxNameLength)}
	}
	if len(req.Problem) > s.cfg.MaxProblemLength {
		return &domain.ValidationError{Field: "problem", Reason: fmt.Sprintf("must be at most %d characters", s.cfg.MaxProblemLength)}
	}
	if strings.TrimSpace(req.Message) == "" {
		return &domain.ValidationError{Field: "message", Reason: "must not be empty"}
	}
	if len(req.Message) > s.cfg.MaxMessageLength {
		return &domain.ValidationError{Field: "message", Reason: fmt.Sprintf("must be at most %d characters", s.cfg.MaxMessageLength)}
	}
	return nil
}

// buildUserTurn formats the outbound user-turn text. The problem line is
// included only when the patient supplied one.
func buildUserTurn(req TurnRequest) string {
	var b strings.Builder
	b.WriteString("Patient Name: ")
	b.WriteString(req.Name)
	if p := strings.TrimSpace(req.Problem); p != "" {
		b.WriteString("\nProblem: ")
		b.WriteString(p)
	}
	b.WriteString("\nAdditional Information: ")
	b.WriteString(req.Message)
	return b.String()
}
