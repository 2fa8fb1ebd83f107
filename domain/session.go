// Package domain defines the core domain models for the chat backend.
package domain

import "time"

// Roles for conversation messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// PlaceholderProblem is stored when the patient does not name a complaint.
const PlaceholderProblem = "No specific disease mentioned"

// Message is a single entry in a session's conversation history.
type Message struct {
	Role    string `json:"role" bson:"role"`
	Content string `json:"content" bson:"content"`
}

// Session is the persisted record of one patient's conversation thread.
// Messages is append-only: every completed turn adds exactly one user entry
// followed by one assistant entry, so its length is always even. AIResponse
// duplicates the most recent assistant content for the response shape.
type Session struct {
	ID             string    `json:"id"`
	PatientName    string    `json:"patient_name"`
	Problem        string    `json:"problem"`
	AdditionalInfo string    `json:"additional_info"`
	AIResponse     string    `json:"ai_response"`
	Messages       []Message `json:"messages"`
	Timestamp      time.Time `json:"timestamp"`
	Pinned         bool      `json:"pinned"`
}
