// Package domain contains core concepts of the threaded messaging engine.
// This file defines the User identity referenced by messages.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity a message can be sent from or addressed to.
// Accounts are created and removed by the account lifecycle, never by the engine itself.
type User struct {
	ID        uuid.UUID
	Username  string
	CreatedAt time.Time
}
