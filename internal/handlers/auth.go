package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jobtracker/internal/auth"
	"jobtracker/internal/dto"
	"jobtracker/internal/middleware"
	"jobtracker/internal/models"
	"jobtracker/internal/repository"
	"jobtracker/internal/utils"
)

// AuthHandler handles registration, login and the current-user endpoint.
type AuthHandler struct {
	users  repository.UserRepository
	issuer *auth.TokenIssuer
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(users repository.UserRepository, issuer *auth.TokenIssuer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, issuer: issuer, logger: logger}
}

// Register creates a new account and returns it with a bearer token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Name, email, and password are required")
		return
	}
	if len(req.Password) < auth.MinPasswordLength {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		h.internalError(w, "hash password", err)
		return
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			utils.WriteErrorResponse(w, http.StatusConflict, "Email already registered")
			return
		}
		h.internalError(w, "create user", err)
		return
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		h.internalError(w, "issue token", err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.AuthResponse{
		Success: true,
		User:    toUserResponse(user),
		Token:   token,
	})
}

// Login authenticates with email and password. Unknown emails and wrong
// passwords are answered identically.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Email or password is incorrect")
			return
		}
		h.internalError(w, "lookup user", err)
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Email or password is incorrect")
		return
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		h.internalError(w, "issue token", err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.AuthResponse{
		Success: true,
		User:    toUserResponse(user),
		Token:   token,
	})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "User not authenticated")
			return
		}
		h.internalError(w, "lookup user", err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.CurrentUserResponse{
		Success: true,
		User:    toUserResponse(user),
	})
}

func (h *AuthHandler) internalError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, zap.Error(err))
	utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error")
}

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
