package service

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/openfeed/openfeed-backend/internal/config"
)

// EmailSender defines the outbound email operations used by the services.
type EmailSender interface {
	SendPasswordResetEmail(toEmail, toName, token string) error
}

// EmailService sends transactional email through SendGrid.
type EmailService struct {
	cfg *config.EmailSettings
}

// NewEmailService creates a new EmailService from the application's email
// settings. The SendGrid API key must be configured.
func NewEmailService(cfg *config.EmailSettings) (*EmailService, error) {
	if cfg.SendGridAPIKey == "" {
		return nil, fmt.Errorf("sendgrid API key not configured")
	}
	return &EmailService{cfg: cfg}, nil
}

// SendPasswordResetEmail sends a password reset email to the specified user.
func (s *EmailService) SendPasswordResetEmail(toEmail, toName, token string) error {
	resetURL := fmt.Sprintf("%s?token=%s", s.cfg.ResetURLBase, token)

	from := mail.NewEmail(s.cfg.FromName, s.cfg.FromAddress)
	to := mail.NewEmail(toName, toEmail)
	subject := "Password Reset Request"
	plainTextContent := fmt.Sprintf("Please use the following link to reset your password: %s", resetURL)
	htmlContent := fmt.Sprintf("<strong>Please use the following link to reset your password:</strong> <a href=\"%s\">Reset Password</a>", resetURL)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
	client := sendgrid.NewSendClient(s.cfg.SendGridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		log.Error().Err(err).Msg("Failed to send password reset email")
		return err
	}
	log.Info().Int("status_code", response.StatusCode).Msg("Password reset email sent")
	return nil
}
