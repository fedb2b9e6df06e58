package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"jobtracker/internal/application"
	"jobtracker/internal/dto"
	"jobtracker/internal/middleware"
	"jobtracker/internal/models"
	"jobtracker/internal/utils"
)

// ApplicationHandler handles the ownership-scoped application CRUD and the
// stats endpoint.
type ApplicationHandler struct {
	svc    *application.Service
	logger *zap.Logger
}

// NewApplicationHandler creates a new ApplicationHandler instance
func NewApplicationHandler(svc *application.Service, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, logger: logger}
}

// List returns all of the caller's applications, most recent first.
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	apps, err := h.svc.List(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	payloads := make([]dto.ApplicationPayload, 0, len(apps))
	for i := range apps {
		payloads = append(payloads, toApplicationPayload(&apps[i]))
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ApplicationsResponse{
		Success:      true,
		Applications: payloads,
	})
}

// Create adds a new application owned by the caller.
func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req dto.CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	app, err := h.svc.Create(r.Context(), userID, application.CreateInput{
		Company:     req.Company,
		Position:    req.Position,
		Status:      req.Status,
		DateApplied: req.DateApplied,
		JobURL:      req.JobURL,
		Location:    req.Location,
		SalaryRange: req.SalaryRange,
		Notes:       req.Notes,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.ApplicationResponse{
		Success:     true,
		Application: toApplicationPayload(app),
	})
}

// Get returns a single application. Records owned by other users are
// indistinguishable from absent ones.
func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	id, err := parseID(r)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Application not found")
		return
	}

	app, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ApplicationResponse{
		Success:     true,
		Application: toApplicationPayload(app),
	})
}

// Update applies a partial update; only fields present in the payload
// change.
func (h *ApplicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	id, err := parseID(r)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Application not found")
		return
	}

	var req dto.UpdateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	app, err := h.svc.Update(r.Context(), userID, id, application.UpdateInput{
		Company:     req.Company,
		Position:    req.Position,
		Status:      req.Status,
		DateApplied: req.DateApplied,
		JobURL:      req.JobURL,
		Location:    req.Location,
		SalaryRange: req.SalaryRange,
		Notes:       req.Notes,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ApplicationResponse{
		Success:     true,
		Application: toApplicationPayload(app),
	})
}

// Delete removes an application. Repeated deletion returns 404.
func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	id, err := parseID(r)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Application not found")
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		h.writeError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "Application deleted successfully",
	})
}

// Stats returns the caller's dashboard statistics.
func (h *ApplicationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	stats, err := h.svc.Stats(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.StatsResponse{
		Success: true,
		Stats: dto.StatsPayload{
			Total:        stats.Total,
			ResponseRate: stats.ResponseRate,
			ByStatus:     stats.ByStatus,
		},
	})
}

func (h *ApplicationHandler) writeError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		utils.WriteErrorResponse(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, models.ErrNotFound):
		utils.WriteErrorResponse(w, http.StatusNotFound, "Application not found")
	default:
		h.logger.Error("application request failed", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}

func parseID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

func toApplicationPayload(app *models.Application) dto.ApplicationPayload {
	return dto.ApplicationPayload{
		ID:          app.ID.String(),
		Company:     app.Company,
		Position:    app.Position,
		Status:      app.Status,
		DateApplied: app.DateApplied.Format(application.DateLayout),
		JobURL:      app.JobURL,
		Location:    app.Location,
		SalaryRange: app.SalaryRange,
		Notes:       app.Notes,
		CreatedAt:   app.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   app.UpdatedAt.Format(time.RFC3339),
	}
}
