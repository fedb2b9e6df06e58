package application

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

func newService() *Service {
	return NewService(repository.NewMemoryApplicationRepository())
}

func validInput() CreateInput {
	return CreateInput{
		Company:     "Acme",
		Position:    "Engineer",
		Status:      models.StatusApplied,
		DateApplied: "2024-01-15",
	}
}

func TestService_Create(t *testing.T) {
	svc := newService()
	userID := uuid.New()

	app, err := svc.Create(context.Background(), userID, CreateInput{
		Company:     "Acme",
		Position:    "Engineer",
		Status:      models.StatusApplied,
		DateApplied: "2024-01-15",
		JobURL:      "https://acme.example.com/jobs/1",
		Location:    "Remote",
		SalaryRange: "100k-120k",
		Notes:       "Referred by Bob",
	})
	require.NoError(t, err)

	assert.Equal(t, userID, app.UserID)
	assert.Equal(t, "2024-01-15", app.DateApplied.Format(DateLayout))
	assert.Equal(t, "Referred by Bob", app.Notes)
	assert.False(t, app.CreatedAt.IsZero())
	assert.Equal(t, app.CreatedAt, app.UpdatedAt)
}

func TestService_Create_MissingFields(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	userID := uuid.New()

	tests := []struct {
		name   string
		mutate func(*CreateInput)
		field  string
	}{
		{"company", func(in *CreateInput) { in.Company = "" }, "company"},
		{"position", func(in *CreateInput) { in.Position = "" }, "position"},
		{"status", func(in *CreateInput) { in.Status = "" }, "status"},
		{"date_applied", func(in *CreateInput) { in.DateApplied = "" }, "date_applied"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := svc.Create(ctx, userID, in)
			var validationErr *models.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Contains(t, validationErr.Error(), tt.field)
		})
	}
}

func TestService_Create_BadDate(t *testing.T) {
	svc := newService()
	in := validInput()
	in.DateApplied = "15/01/2024"

	_, err := svc.Create(context.Background(), uuid.New(), in)
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "date_applied", validationErr.Field)
}

func TestService_Update_Partial(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	userID := uuid.New()

	app, err := svc.Create(ctx, userID, validInput())
	require.NoError(t, err)

	status := models.StatusInterview
	notes := "On-site scheduled"
	updated, err := svc.Update(ctx, userID, app.ID, UpdateInput{
		Status: &status,
		Notes:  &notes,
	})
	require.NoError(t, err)

	// Supplied fields change, the rest stay.
	assert.Equal(t, models.StatusInterview, updated.Status)
	assert.Equal(t, "On-site scheduled", updated.Notes)
	assert.Equal(t, "Acme", updated.Company)
	assert.Equal(t, "Engineer", updated.Position)
}

func TestService_Update_EmptyPatchRefreshesUpdatedAt(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	userID := uuid.New()

	app, err := svc.Create(ctx, userID, validInput())
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	updated, err := svc.Update(ctx, userID, app.ID, UpdateInput{})
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(app.UpdatedAt))
	assert.Equal(t, app.Company, updated.Company)
}

func TestService_Update_BadDate(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	userID := uuid.New()

	app, err := svc.Create(ctx, userID, validInput())
	require.NoError(t, err)

	bad := "not-a-date"
	_, err = svc.Update(ctx, userID, app.ID, UpdateInput{DateApplied: &bad})
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "date_applied", validationErr.Field)
}

func TestService_CrossUserAccess(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	owner := uuid.New()
	other := uuid.New()

	app, err := svc.Create(ctx, owner, validInput())
	require.NoError(t, err)

	_, err = svc.Get(ctx, other, app.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	status := models.StatusOffer
	_, err = svc.Update(ctx, other, app.ID, UpdateInput{Status: &status})
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, other, app.ID), models.ErrNotFound)

	got, err := svc.Get(ctx, owner, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApplied, got.Status)
}

func TestService_Stats_Empty(t *testing.T) {
	svc := newService()

	stats, err := svc.Stats(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0.0, stats.ResponseRate)
	assert.Empty(t, stats.ByStatus)
	assert.NotNil(t, stats.ByStatus)
}

func TestService_Stats(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	userID := uuid.New()

	for _, status := range []string{
		models.StatusApplied,
		models.StatusApplied,
		models.StatusInterview,
		models.StatusOffer,
	} {
		in := validInput()
		in.Status = status
		_, err := svc.Create(ctx, userID, in)
		require.NoError(t, err)
	}

	stats, err := svc.Stats(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 50.0, stats.ResponseRate)
	assert.Equal(t, map[string]int{
		models.StatusApplied:   2,
		models.StatusInterview: 1,
		models.StatusOffer:     1,
	}, stats.ByStatus)
}

func TestService_Stats_RoundsHalfUp(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	userID := uuid.New()

	// 1 response out of 3: 33.333...% rounds to 33.3.
	for _, status := range []string{models.StatusApplied, models.StatusApplied, models.StatusRejected} {
		in := validInput()
		in.Status = status
		_, err := svc.Create(ctx, userID, in)
		require.NoError(t, err)
	}

	stats, err := svc.Stats(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 33.3, stats.ResponseRate)
}

func TestService_Stats_UnknownStatusCounts(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	userID := uuid.New()

	in := validInput()
	in.Status = "Ghosted"
	_, err := svc.Create(ctx, userID, in)
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Ghosted": 1}, stats.ByStatus)
	assert.Equal(t, 100.0, stats.ResponseRate)
}

func TestService_List_Ordering(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	userID := uuid.New()

	for _, date := range []string{"2024-01-01", "2024-03-01", "2024-02-01"} {
		in := validInput()
		in.Company = date
		in.DateApplied = date
		_, err := svc.Create(ctx, userID, in)
		require.NoError(t, err)
	}

	apps, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, apps, 3)
	assert.Equal(t, "2024-03-01", apps[0].Company)
	assert.Equal(t, "2024-02-01", apps[1].Company)
	assert.Equal(t, "2024-01-01", apps[2].Company)
}
