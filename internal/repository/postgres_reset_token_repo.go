package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobtracker/internal/models"
)

// PostgresResetTokenRepository implements ResetTokenRepository on a pgx pool.
type PostgresResetTokenRepository struct {
	db *pgxpool.Pool
}

// NewPostgresResetTokenRepository creates a new PostgresResetTokenRepository instance
func NewPostgresResetTokenRepository(db *pgxpool.Pool) *PostgresResetTokenRepository {
	return &PostgresResetTokenRepository{db: db}
}

func (r *PostgresResetTokenRepository) Issue(ctx context.Context, t *models.PasswordResetToken) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// At most one valid token per user: retire every earlier unused token.
	_, err = tx.Exec(ctx,
		`UPDATE password_reset_tokens SET used = TRUE WHERE user_id = $1 AND used = FALSE`,
		t.UserID)
	if err != nil {
		return fmt.Errorf("invalidate prior tokens: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO password_reset_tokens (id, user_id, token, created_at, expires_at, used)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.UserID, t.Token, t.CreatedAt, t.ExpiresAt, t.Used)
	if err != nil {
		return fmt.Errorf("insert reset token: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PostgresResetTokenRepository) GetByToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, token, created_at, expires_at, used
		 FROM password_reset_tokens WHERE token = $1`,
		token).Scan(&t.ID, &t.UserID, &t.Token, &t.CreatedAt, &t.ExpiresAt, &t.Used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("select reset token: %w", err)
	}
	return &t, nil
}

func (r *PostgresResetTokenRepository) Consume(ctx context.Context, tokenID, userID uuid.UUID, passwordHash string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// The conditional update revalidates inside the transaction, so two
	// racing consumers cannot both succeed.
	tag, err := tx.Exec(ctx,
		`UPDATE password_reset_tokens SET used = TRUE
		 WHERE id = $1 AND used = FALSE AND expires_at > now()`,
		tokenID)
	if err != nil {
		return fmt.Errorf("mark token used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrInvalidResetToken
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET password_hash = $1 WHERE id = $2`,
		passwordHash, userID)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return tx.Commit(ctx)
}
