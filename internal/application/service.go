// Package application implements the job-application domain: validation,
// ownership-scoped CRUD delegation, and dashboard statistics.
package application

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"jobtracker/internal/models"
	"jobtracker/internal/repository"
)

// DateLayout is the wire format for calendar dates (ISO 8601).
const DateLayout = "2006-01-02"

// CreateInput carries the fields of a create request. Company, Position,
// Status and DateApplied are required.
type CreateInput struct {
	Company     string
	Position    string
	Status      string
	DateApplied string
	JobURL      string
	Location    string
	SalaryRange string
	Notes       string
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Company     *string
	Position    *string
	Status      *string
	DateApplied *string
	JobURL      *string
	Location    *string
	SalaryRange *string
	Notes       *string
}

// Stats holds derived counts over one user's applications.
type Stats struct {
	Total        int
	ResponseRate float64
	ByStatus     map[string]int
}

// Service implements application operations over a repository. All
// operations are scoped to the calling user's id.
type Service struct {
	repo repository.ApplicationRepository
}

// NewService creates a new application Service.
func NewService(repo repository.ApplicationRepository) *Service {
	return &Service{repo: repo}
}

// Create validates required fields and persists a new application owned by
// userID. A missing required field yields a ValidationError naming it.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*models.Application, error) {
	required := []struct {
		field string
		value string
	}{
		{"company", in.Company},
		{"position", in.Position},
		{"date_applied", in.DateApplied},
		{"status", in.Status},
	}
	for _, f := range required {
		if f.value == "" {
			return nil, &models.ValidationError{Field: f.field}
		}
	}

	dateApplied, err := time.Parse(DateLayout, in.DateApplied)
	if err != nil {
		return nil, &models.ValidationError{Field: "date_applied", Reason: "must be a date in YYYY-MM-DD format"}
	}

	now := time.Now().UTC()
	app := &models.Application{
		ID:          uuid.New(),
		UserID:      userID,
		Company:     in.Company,
		Position:    in.Position,
		Status:      in.Status,
		DateApplied: dateApplied,
		JobURL:      in.JobURL,
		Location:    in.Location,
		SalaryRange: in.SalaryRange,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// Get returns the application scoped to userID.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*models.Application, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// List returns the user's applications, most recent date_applied first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]models.Application, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update applies a partial update. Only non-nil fields change; updated_at
// is refreshed on every successful call, including an empty patch.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, in UpdateInput) (*models.Application, error) {
	app, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if in.Company != nil {
		app.Company = *in.Company
	}
	if in.Position != nil {
		app.Position = *in.Position
	}
	if in.Status != nil {
		app.Status = *in.Status
	}
	if in.DateApplied != nil {
		dateApplied, err := time.Parse(DateLayout, *in.DateApplied)
		if err != nil {
			return nil, &models.ValidationError{Field: "date_applied", Reason: "must be a date in YYYY-MM-DD format"}
		}
		app.DateApplied = dateApplied
	}
	if in.JobURL != nil {
		app.JobURL = *in.JobURL
	}
	if in.Location != nil {
		app.Location = *in.Location
	}
	if in.SalaryRange != nil {
		app.SalaryRange = *in.SalaryRange
	}
	if in.Notes != nil {
		app.Notes = *in.Notes
	}
	app.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// Delete removes the application scoped to userID. Deleting an
// already-deleted id returns models.ErrNotFound.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

// Stats derives counts over the user's applications. ResponseRate is the
// percentage with a status other than "Applied", rounded half-up to one
// decimal, and 0 when there are no applications. ByStatus only contains
// statuses in use.
func (s *Service) Stats(ctx context.Context, userID uuid.UUID) (*Stats, error) {
	apps, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Total:    len(apps),
		ByStatus: map[string]int{},
	}
	responses := 0
	for _, app := range apps {
		stats.ByStatus[app.Status]++
		if app.Status != models.StatusApplied {
			responses++
		}
	}
	if stats.Total > 0 {
		rate := float64(responses) / float64(stats.Total) * 100
		stats.ResponseRate = math.Round(rate*10) / 10
	}
	return stats, nil
}
