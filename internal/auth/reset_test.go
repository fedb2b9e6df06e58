package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtracker/internal/models"
	"jobtracker/internal/repository"
)

func newResetFixture(t *testing.T, ttl time.Duration) (*ResetManager, *repository.MemoryUserRepository, uuid.UUID) {
	t.Helper()

	users := repository.NewMemoryUserRepository()
	tokens := repository.NewMemoryResetTokenRepository(users)

	hash, err := HashPassword("original1")
	require.NoError(t, err)
	user := &models.User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		Name:         "Alice",
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, users.Create(context.Background(), user))

	return NewResetManager(tokens, ttl), users, user.ID
}

func TestResetManager_IssueReturnsURLSafeToken(t *testing.T) {
	manager, _, userID := newResetFixture(t, time.Hour)

	token, err := manager.Issue(context.Background(), userID)
	require.NoError(t, err)

	// 32 bytes of entropy base64url-encoded without padding.
	assert.Len(t, token, 43)
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")
	assert.NotContains(t, token, "=")
}

func TestResetManager_ReissueInvalidatesPrior(t *testing.T) {
	manager, _, userID := newResetFixture(t, time.Hour)
	ctx := context.Background()

	first, err := manager.Issue(ctx, userID)
	require.NoError(t, err)
	second, err := manager.Issue(ctx, userID)
	require.NoError(t, err)

	_, err = manager.Validate(ctx, first)
	assert.ErrorIs(t, err, models.ErrInvalidResetToken)

	got, err := manager.Validate(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestResetManager_ValidateDoesNotConsume(t *testing.T) {
	manager, _, userID := newResetFixture(t, time.Hour)
	ctx := context.Background()

	token, err := manager.Issue(ctx, userID)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		got, err := manager.Validate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	}
}

func TestResetManager_ConsumeUpdatesPasswordOnce(t *testing.T) {
	manager, users, userID := newResetFixture(t, time.Hour)
	ctx := context.Background()

	token, err := manager.Issue(ctx, userID)
	require.NoError(t, err)

	require.NoError(t, manager.Consume(ctx, token, "brand-new-pass"))

	user, err := users.GetByID(ctx, userID)
	require.NoError(t, err)
	assert.True(t, CheckPassword("brand-new-pass", user.PasswordHash))
	assert.False(t, CheckPassword("original1", user.PasswordHash))

	// A consumed token never consumes again, even with a correct password.
	err = manager.Consume(ctx, token, "another-pass")
	assert.ErrorIs(t, err, models.ErrInvalidResetToken)

	user, err = users.GetByID(ctx, userID)
	require.NoError(t, err)
	assert.True(t, CheckPassword("brand-new-pass", user.PasswordHash))
}

func TestResetManager_ExpiredToken(t *testing.T) {
	manager, _, userID := newResetFixture(t, -time.Second)
	ctx := context.Background()

	token, err := manager.Issue(ctx, userID)
	require.NoError(t, err)

	_, err = manager.Validate(ctx, token)
	assert.ErrorIs(t, err, models.ErrInvalidResetToken)

	err = manager.Consume(ctx, token, "brand-new-pass")
	assert.ErrorIs(t, err, models.ErrInvalidResetToken)
}

func TestResetManager_UnknownToken(t *testing.T) {
	manager, _, _ := newResetFixture(t, time.Hour)
	ctx := context.Background()

	_, err := manager.Validate(ctx, "no-such-token")
	assert.ErrorIs(t, err, models.ErrInvalidResetToken)

	err = manager.Consume(ctx, "no-such-token", "brand-new-pass")
	assert.ErrorIs(t, err, models.ErrInvalidResetToken)
}
