// Package domain contains core concepts of the threaded messaging engine.
// This file defines Message records and the rows derived from them.
// No storage, network, or UI logic should be added here.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is the canonical record owned by the message store.
// ParentID is uuid.Nil for roots. ThreadID is the ID of the root and never changes.
// ReceiverID is uuid.Nil for broadcast and thread-root variants.
type Message struct {
	ID         uuid.UUID
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	ParentID   uuid.UUID
	ThreadID   uuid.UUID
	Content    string
	CreatedAt  time.Time
	Edited     bool
	Read       bool
}

func (m Message) IsRoot() bool {
	return m.ParentID == uuid.Nil
}

func (m Message) HasReceiver() bool {
	return m.ReceiverID != uuid.Nil
}

// Involves reports whether the user is the sender or the receiver.
func (m Message) Involves(userID uuid.UUID) bool {
	return m.SenderID == userID || (m.HasReceiver() && m.ReceiverID == userID)
}

// Notification is written once per created message, for its receiver.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	MessageID uuid.UUID
	CreatedAt time.Time
}

// MessageHistory keeps the content a message had before an edit.
type MessageHistory struct {
	ID         uuid.UUID
	MessageID  uuid.UUID
	OldContent string
	EditedAt   time.Time
}

// MessageView is a message with its sender and receiver resolved.
// Receiver is nil when the message has no receiver or the account is gone.
type MessageView struct {
	Message
	Sender   User
	Receiver *User
}
