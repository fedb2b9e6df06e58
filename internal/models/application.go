package models

import (
	"time"

	"github.com/google/uuid"
)

// Application statuses commonly used by clients. Status is free text; the
// system does not reject values outside this list.
const (
	StatusApplied     = "Applied"
	StatusPhoneScreen = "Phone Screen"
	StatusInterview   = "Interview"
	StatusOffer       = "Offer"
	StatusRejected    = "Rejected"
)

// Application represents a tracked job application owned by a single user.
type Application struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Company     string    `json:"company" db:"company"`
	Position    string    `json:"position" db:"position"`
	Status      string    `json:"status" db:"status"`
	DateApplied time.Time `json:"date_applied" db:"date_applied"`
	JobURL      string    `json:"job_url" db:"job_url"`
	Location    string    `json:"location" db:"location"`
	SalaryRange string    `json:"salary_range" db:"salary_range"`
	Notes       string    `json:"notes" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
