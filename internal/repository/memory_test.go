package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtracker/internal/models"
)

func newUser(email string) *models.User {
	return &models.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		CreatedAt:    time.Now().UTC(),
	}
}

func newApplication(userID uuid.UUID, company, dateApplied string) *models.Application {
	date, _ := time.Parse("2006-01-02", dateApplied)
	now := time.Now().UTC()
	return &models.Application{
		ID:          uuid.New(),
		UserID:      userID,
		Company:     company,
		Position:    "Engineer",
		Status:      models.StatusApplied,
		DateApplied: date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestMemoryUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("a@example.com")))
	err := repo.Create(ctx, newUser("a@example.com"))
	assert.ErrorIs(t, err, models.ErrDuplicateEmail)
}

func TestMemoryUserRepository_GetByEmail(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user := newUser("a@example.com")
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = repo.GetByEmail(ctx, "b@example.com")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryApplicationRepository_OwnershipScoping(t *testing.T) {
	repo := NewMemoryApplicationRepository()
	ctx := context.Background()

	owner := uuid.New()
	other := uuid.New()
	app := newApplication(owner, "Acme", "2024-01-15")
	require.NoError(t, repo.Create(ctx, app))

	// The owner sees the record.
	got, err := repo.GetByID(ctx, owner, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Company)

	// Another user cannot read, update, or delete it, and cannot tell it
	// apart from a missing record.
	_, err = repo.GetByID(ctx, other, app.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	stolen := *app
	stolen.UserID = other
	stolen.Company = "Hijacked"
	assert.ErrorIs(t, repo.Update(ctx, &stolen), models.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, other, app.ID), models.ErrNotFound)

	// Owner's record is untouched.
	got, err = repo.GetByID(ctx, owner, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Company)
}

func TestMemoryApplicationRepository_ListOrdering(t *testing.T) {
	repo := NewMemoryApplicationRepository()
	ctx := context.Background()
	userID := uuid.New()

	for _, date := range []string{"2024-01-01", "2024-03-01", "2024-02-01"} {
		require.NoError(t, repo.Create(ctx, newApplication(userID, date, date)))
	}

	apps, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, apps, 3)
	assert.Equal(t, "2024-03-01", apps[0].Company)
	assert.Equal(t, "2024-02-01", apps[1].Company)
	assert.Equal(t, "2024-01-01", apps[2].Company)
}

func TestMemoryApplicationRepository_ListOrderingTies(t *testing.T) {
	repo := NewMemoryApplicationRepository()
	ctx := context.Background()
	userID := uuid.New()

	// Same date: insertion order wins.
	for _, company := range []string{"First", "Second", "Third"} {
		require.NoError(t, repo.Create(ctx, newApplication(userID, company, "2024-01-01")))
	}

	apps, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, apps, 3)
	assert.Equal(t, "First", apps[0].Company)
	assert.Equal(t, "Second", apps[1].Company)
	assert.Equal(t, "Third", apps[2].Company)
}

func TestMemoryApplicationRepository_DeleteIdempotentFailure(t *testing.T) {
	repo := NewMemoryApplicationRepository()
	ctx := context.Background()
	userID := uuid.New()

	app := newApplication(userID, "Acme", "2024-01-15")
	require.NoError(t, repo.Create(ctx, app))

	require.NoError(t, repo.Delete(ctx, userID, app.ID))
	assert.ErrorIs(t, repo.Delete(ctx, userID, app.ID), models.ErrNotFound)
}

func TestMemoryResetTokenRepository_IssueRetiresPrior(t *testing.T) {
	users := NewMemoryUserRepository()
	user := newUser("a@example.com")
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, user))

	repo := NewMemoryResetTokenRepository(users)
	now := time.Now().UTC()

	first := &models.PasswordResetToken{
		ID: uuid.New(), UserID: user.ID, Token: "first",
		CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}
	second := &models.PasswordResetToken{
		ID: uuid.New(), UserID: user.ID, Token: "second",
		CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, repo.Issue(ctx, first))
	require.NoError(t, repo.Issue(ctx, second))

	got, err := repo.GetByToken(ctx, "first")
	require.NoError(t, err)
	assert.True(t, got.Used)

	got, err = repo.GetByToken(ctx, "second")
	require.NoError(t, err)
	assert.False(t, got.Used)
}

func TestMemoryResetTokenRepository_ConsumeIsAtomic(t *testing.T) {
	users := NewMemoryUserRepository()
	user := newUser("a@example.com")
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, user))

	repo := NewMemoryResetTokenRepository(users)
	now := time.Now().UTC()
	token := &models.PasswordResetToken{
		ID: uuid.New(), UserID: user.ID, Token: "tok",
		CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, repo.Issue(ctx, token))

	require.NoError(t, repo.Consume(ctx, token.ID, user.ID, "new-hash"))

	got, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)

	// Second consume fails and leaves the hash alone.
	err = repo.Consume(ctx, token.ID, user.ID, "other-hash")
	assert.ErrorIs(t, err, models.ErrInvalidResetToken)

	got, err = users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)
}
