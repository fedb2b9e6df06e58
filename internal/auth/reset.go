package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"jobtracker/internal/models"
	"jobtracker/internal/repository"
)

// resetTokenBytes is the entropy of a raw reset token before encoding.
const resetTokenBytes = 32

// ResetManager owns the password-reset token lifecycle: issuance,
// read-only validation, and single-use consumption.
type ResetManager struct {
	tokens repository.ResetTokenRepository
	ttl    time.Duration
}

// NewResetManager creates a ResetManager issuing tokens valid for ttl.
func NewResetManager(tokens repository.ResetTokenRepository, ttl time.Duration) *ResetManager {
	return &ResetManager{tokens: tokens, ttl: ttl}
}

// Issue generates a new random URL-safe token for the user, invalidating
// all previously issued unused tokens. The raw token is only ever exposed
// here, at issuance.
func (m *ResetManager) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	now := time.Now().UTC()
	record := &models.PasswordResetToken{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.tokens.Issue(ctx, record); err != nil {
		return "", err
	}
	return token, nil
}

// Validate checks a token without consuming it, for the "verify before
// showing the reset form" endpoint. Absent, used, or expired tokens yield
// models.ErrInvalidResetToken.
func (m *ResetManager) Validate(ctx context.Context, token string) (uuid.UUID, error) {
	record, err := m.lookup(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}
	return record.UserID, nil
}

// Consume re-validates the token, hashes the new password, and atomically
// updates the owner's password hash while marking the token used. A token
// consumes exactly once; racing consumers lose inside the repository
// transaction.
func (m *ResetManager) Consume(ctx context.Context, token, newPassword string) error {
	record, err := m.lookup(ctx, token)
	if err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return m.tokens.Consume(ctx, record.ID, record.UserID, hash)
}

func (m *ResetManager) lookup(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	record, err := m.tokens.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidResetToken
		}
		return nil, err
	}
	if !record.Valid(time.Now().UTC()) {
		return nil, models.ErrInvalidResetToken
	}
	return record, nil
}
