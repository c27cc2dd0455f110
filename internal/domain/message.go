// Package domain defines the core entities of the thesis-advisory app.
package domain

import (
	"time"
)

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderUser    Sender = "user"
	SenderAdvisor Sender = "advisor"
)

// Message is a single entry in a conversation log. Messages are append-only:
// once created they are never edited, deleted or reordered.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Counterpart is the advisor identity a conversation is held with.
// It is fixed for the lifetime of the conversation.
type Counterpart struct {
	Name      string `json:"name"`
	AvatarRef string `json:"avatarRef,omitempty"`
	Specialty string `json:"specialty,omitempty"`
}
