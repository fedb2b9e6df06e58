package dto

// CreateApplicationRequest represents the request payload for creating a
// job application. Company, position, status and date_applied are required;
// date_applied must be an ISO 8601 calendar date (YYYY-MM-DD).
type CreateApplicationRequest struct {
	Company     string `json:"company" validate:"required"`
	Position    string `json:"position" validate:"required"`
	Status      string `json:"status" validate:"required"`
	DateApplied string `json:"date_applied" validate:"required"`
	JobURL      string `json:"job_url,omitempty"`
	Location    string `json:"location,omitempty"`
	SalaryRange string `json:"salary_range,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// UpdateApplicationRequest represents a partial update. Only fields present
// in the payload are changed.
type UpdateApplicationRequest struct {
	Company     *string `json:"company,omitempty"`
	Position    *string `json:"position,omitempty"`
	Status      *string `json:"status,omitempty"`
	DateApplied *string `json:"date_applied,omitempty"`
	JobURL      *string `json:"job_url,omitempty"`
	Location    *string `json:"location,omitempty"`
	SalaryRange *string `json:"salary_range,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// ApplicationPayload represents application data in API responses
type ApplicationPayload struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Status      string `json:"status"`
	DateApplied string `json:"date_applied"`
	JobURL      string `json:"job_url"`
	Location    string `json:"location"`
	SalaryRange string `json:"salary_range"`
	Notes       string `json:"notes"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ApplicationResponse wraps a single application
type ApplicationResponse struct {
	Success     bool               `json:"success"`
	Application ApplicationPayload `json:"application"`
}

// ApplicationsResponse wraps the caller's application list
type ApplicationsResponse struct {
	Success      bool                 `json:"success"`
	Applications []ApplicationPayload `json:"applications"`
}
