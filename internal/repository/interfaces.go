// Package repository provides persistence for users, password reset tokens
// and job applications, with PostgreSQL and in-memory implementations.
package repository

import (
	"context"

	"github.com/google/uuid"

	"jobtracker/internal/models"
)

// UserRepository persists accounts.
type UserRepository interface {
	// Create inserts the user. Returns models.ErrDuplicateEmail when the
	// email is already registered.
	Create(ctx context.Context, user *models.User) error
	// GetByEmail looks up a user by lowercase email. Returns
	// models.ErrNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByID returns models.ErrNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ResetTokenRepository persists password reset tokens. Multi-step mutations
// run inside a single transaction so partial effects are never visible.
type ResetTokenRepository interface {
	// Issue marks every unused token belonging to t.UserID as used and
	// inserts t, atomically.
	Issue(ctx context.Context, t *models.PasswordResetToken) error
	// GetByToken looks up a token by its raw value. Returns
	// models.ErrNotFound when absent.
	GetByToken(ctx context.Context, token string) (*models.PasswordResetToken, error)
	// Consume marks the token used and sets the owning user's password hash,
	// atomically. Returns models.ErrInvalidResetToken if the token is no
	// longer consumable (already used, expired, or gone).
	Consume(ctx context.Context, tokenID, userID uuid.UUID, passwordHash string) error
}

// ApplicationRepository persists job applications. Every read and mutation
// is scoped to the owning user; records of other users behave as absent.
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	// GetByID returns models.ErrNotFound both when the id does not exist and
	// when it belongs to a different user.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Application, error)
	// ListByUser returns the user's applications ordered by date_applied
	// descending, ties broken by insertion order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Application, error)
	// Update persists app scoped to app.UserID. Returns models.ErrNotFound
	// when no owned row matches.
	Update(ctx context.Context, app *models.Application) error
	// Delete is scoped like GetByID; deleting an already-deleted id returns
	// models.ErrNotFound.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
