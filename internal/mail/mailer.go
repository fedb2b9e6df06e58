// Package mail sends transactional email over SMTP. Delivery is
// best-effort; callers decide whether a failure is fatal.
package mail

import (
	"fmt"
	"net/smtp"

	"jobtracker/internal/config"
)

// Mailer delivers password reset messages.
type Mailer interface {
	SendPasswordReset(to, token string) error
}

// SMTPMailer sends email through a plain-auth SMTP relay.
type SMTPMailer struct {
	config *config.EmailConfig
}

// NewSMTPMailer creates a new SMTPMailer instance
func NewSMTPMailer(cfg *config.EmailConfig) *SMTPMailer {
	return &SMTPMailer{config: cfg}
}

// SendPasswordReset sends the reset link for the given raw token.
func (m *SMTPMailer) SendPasswordReset(to, token string) error {
	subject := "Password Reset Request"
	body := fmt.Sprintf(`Hello,

You requested to reset your JobTracker password.

Open the link below to choose a new password:

%s?token=%s

This link will expire in 1 hour. If you didn't request this, please ignore
this email.

Best regards,
%s
`, m.config.ResetBaseURL, token, m.config.FromName)

	return m.send(to, subject, body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	if m.config.SMTPUsername == "" || m.config.SMTPPassword == "" {
		return fmt.Errorf("email credentials not configured")
	}

	auth := smtp.PlainAuth("", m.config.SMTPUsername, m.config.SMTPPassword, m.config.SMTPHost)

	fromEmail := m.config.FromEmail
	if fromEmail == "" {
		fromEmail = m.config.SMTPUsername
	}

	message := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"\r\n"+
			"%s\r\n",
		m.config.FromName, fromEmail, to, subject, body))

	addr := m.config.SMTPHost + ":" + m.config.SMTPPort
	if err := smtp.SendMail(addr, auth, fromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
