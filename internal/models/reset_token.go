package models

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetToken is a single-use credential permitting one password
// change. Rows are kept after use for audit; Used is never reset to false.
type PasswordResetToken struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Token     string    `json:"-" db:"token"` // Only exposed once, at issuance
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	Used      bool      `json:"used" db:"used"`
}

// Valid reports whether the token is still consumable at the given instant.
// A token is invalid at its exact expiry instant.
func (t *PasswordResetToken) Valid(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}
