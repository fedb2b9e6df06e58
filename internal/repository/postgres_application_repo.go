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

// PostgresApplicationRepository implements ApplicationRepository on a pgx pool.
type PostgresApplicationRepository struct {
	db *pgxpool.Pool
}

// NewPostgresApplicationRepository creates a new PostgresApplicationRepository instance
func NewPostgresApplicationRepository(db *pgxpool.Pool) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, user_id, company, position, status, date_applied,
	job_url, location, salary_range, notes, created_at, updated_at`

func (r *PostgresApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (`+applicationColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		app.ID, app.UserID, app.Company, app.Position, app.Status, app.DateApplied,
		app.JobURL, app.Location, app.SalaryRange, app.Notes, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1 AND user_id = $2`,
		id, userID).Scan(
		&app.ID, &app.UserID, &app.Company, &app.Position, &app.Status, &app.DateApplied,
		&app.JobURL, &app.Location, &app.SalaryRange, &app.Notes, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("select application: %w", err)
	}
	return &app, nil
}

func (r *PostgresApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE user_id = $1
		 ORDER BY date_applied DESC, created_at ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("select applications: %w", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		var app models.Application
		if err := rows.Scan(
			&app.ID, &app.UserID, &app.Company, &app.Position, &app.Status, &app.DateApplied,
			&app.JobURL, &app.Location, &app.SalaryRange, &app.Notes, &app.CreatedAt, &app.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *PostgresApplicationRepository) Update(ctx context.Context, app *models.Application) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE applications SET
			company = $1, position = $2, status = $3, date_applied = $4,
			job_url = $5, location = $6, salary_range = $7, notes = $8, updated_at = $9
		 WHERE id = $10 AND user_id = $11`,
		app.Company, app.Position, app.Status, app.DateApplied,
		app.JobURL, app.Location, app.SalaryRange, app.Notes, app.UpdatedAt,
		app.ID, app.UserID)
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM applications WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
