package dto

// ForgotPasswordRequest represents the request to start a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyResetTokenRequest represents the read-only token check performed
// before showing the reset form
type VerifyResetTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// ResetPasswordRequest represents the request to consume a reset token
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// MessageResponse represents a plain success message
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
