package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type Config struct {
	APIKey   string
	From     string
	FromName string
}

// Registration is the data rendered into the confirmation email.
type Registration struct {
	Email    string
	Username string
	Title    string
	Location string
	Date     time.Time
}

type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *zap.Logger
}

// NewEmailService returns a service that sends through Resend. Without an
// API key messages are only logged.
func NewEmailService(cfg Config, logger *zap.Logger) *EmailService {
	s := &EmailService{
		from:     cfg.From,
		fromName: cfg.FromName,
		logger:   logger.With(zap.String("component", "email")),
	}
	if cfg.APIKey != "" {
		s.client = resend.NewClient(cfg.APIKey)
	}
	return s
}

func (s *EmailService) Enabled() bool {
	return s.client != nil
}

func (s *EmailService) SendRegistrationConfirmation(ctx context.Context, reg Registration) error {
	html, err := s.parseTemplate("registration.html", map[string]interface{}{
		"Username": reg.Username,
		"Title":    reg.Title,
		"Location": reg.Location,
		"Date":     reg.Date.UTC().Format("Monday, 02 Jan 2006 15:04 MST"),
		"Year":     time.Now().Year(),
	})
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.sender(),
		To:      []string{reg.Email},
		Subject: fmt.Sprintf("Registration confirmed: %s", reg.Title),
		Html:    html,
	}

	if s.client == nil {
		s.logger.Info("email delivery disabled, skipping send",
			zap.String("to", reg.Email),
			zap.String("subject", params.Subject))
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send registration email to %s: %w", reg.Email, err)
	}

	s.logger.Info("registration email sent",
		zap.String("to", reg.Email),
		zap.String("id", resp.Id))
	return nil
}

func (s *EmailService) sender() string {
	if s.fromName == "" {
		return s.from
	}
	return s.fromName + " <" + s.from + ">"
}

func (s *EmailService) parseTemplate(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
