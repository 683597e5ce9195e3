package email

import (
	"bytes"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

type EmailService struct {
	client       *resend.Client
	from         string
	fromName     string
	templatesDir string
}

func NewEmailService() *EmailService {
	return &EmailService{
		client:       resend.NewClient(os.Getenv("RESEND_API_KEY")),
		from:         os.Getenv("EMAIL_FROM_ADDRESS"),
		fromName:     os.Getenv("EMAIL_FROM_NAME"),
		templatesDir: "pkg/email/templates",
	}
}

func (s *EmailService) SendWelcomeEmail(email, fullName string) error {
	templateData := map[string]interface{}{
		"FullName": fullName,
		"Email":    email,
		"Year":     time.Now().Year(),
	}

	html, err := s.parseTemplate("welcome.html", templateData)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Welcome to Memorabox!",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		zap.L().Error("failed to send welcome email", zap.String("email", email), zap.Error(err))
		return err
	}

	zap.L().Info("welcome email sent", zap.String("email", email), zap.String("id", resp.Id))
	return nil
}

func (s *EmailService) SendPasswordResetEmail(email string, resetToken string) error {
	resetLink := os.Getenv("FRONTEND_URL") + "/reset-password?token=" + resetToken

	templateData := map[string]interface{}{
		"ResetLink": resetLink,
		"Email":     email,
		"Year":      time.Now().Year(),
	}

	html, err := s.parseTemplate("reset-password.html", templateData)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Reset Your Password - Memorabox",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		zap.L().Error("failed to send reset password email", zap.String("email", email), zap.Error(err))
		return err
	}

	zap.L().Info("reset password email sent", zap.String("email", email), zap.String("id", resp.Id))
	return nil
}

func (s *EmailService) parseTemplate(templateName string, data interface{}) (string, error) {
	templatePath := filepath.Join(s.templatesDir, templateName)

	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", err
	}

	return body.String(), nil
}
