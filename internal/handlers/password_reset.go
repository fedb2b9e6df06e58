package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"jobtracker/internal/auth"
	"jobtracker/internal/dto"
	"jobtracker/internal/mail"
	"jobtracker/internal/models"
	"jobtracker/internal/repository"
	"jobtracker/internal/utils"
)

// PasswordResetHandler handles the forgot/verify/reset password flow. All
// three endpoints are unauthenticated by design: a user who forgot their
// password cannot present a valid bearer token.
type PasswordResetHandler struct {
	users  repository.UserRepository
	reset  *auth.ResetManager
	mailer mail.Mailer
	logger *zap.Logger
}

// NewPasswordResetHandler creates a new PasswordResetHandler instance
func NewPasswordResetHandler(users repository.UserRepository, reset *auth.ResetManager, mailer mail.Mailer, logger *zap.Logger) *PasswordResetHandler {
	return &PasswordResetHandler{users: users, reset: reset, mailer: mailer, logger: logger}
}

const forgotPasswordMessage = "If that email is registered, a password reset link has been sent"

// ForgotPassword issues a reset token and emails it. The response is the
// same whether or not the account exists and whether or not the email could
// be delivered, so responses cannot be used to enumerate accounts.
func (h *PasswordResetHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Email is required")
		return
	}

	if user, err := h.users.GetByEmail(r.Context(), req.Email); err == nil {
		token, err := h.reset.Issue(r.Context(), user.ID)
		if err != nil {
			h.logger.Error("issue reset token", zap.Error(err))
		} else if err := h.mailer.SendPasswordReset(user.Email, token); err != nil {
			// Best-effort delivery: the token stands, the failure stays
			// server-side.
			h.logger.Warn("send reset email", zap.Error(err))
		}
	} else if !errors.Is(err, models.ErrNotFound) {
		h.logger.Error("lookup user for reset", zap.Error(err))
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: forgotPasswordMessage,
	})
}

// VerifyResetToken checks a token without consuming it, so clients can
// validate a reset link before showing the form.
func (h *PasswordResetHandler) VerifyResetToken(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyResetTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Token == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Token is required")
		return
	}

	if _, err := h.reset.Validate(r.Context(), req.Token); err != nil {
		if errors.Is(err, models.ErrInvalidResetToken) {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid or expired reset token")
			return
		}
		h.logger.Error("validate reset token", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "Token is valid",
	})
}

// ResetPassword consumes a reset token and sets the new password. The
// password update and the token's used flag commit in one transaction.
func (h *PasswordResetHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Token == "" || req.NewPassword == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Token and new password are required")
		return
	}
	if len(req.NewPassword) < auth.MinPasswordLength {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	}

	if err := h.reset.Consume(r.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, models.ErrInvalidResetToken) {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid or expired reset token")
			return
		}
		h.logger.Error("consume reset token", zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "Password has been reset successfully",
	})
}
