package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// =============================================================================
// SMTP Email Service Implementation
// =============================================================================

// SMTPEmailService sends emails via SMTP.
//
// This implementation works with Mailhog in development (no authentication)
// and any standard SMTP relay in production.
type SMTPEmailService struct {
	config    SMTPConfig
	templates *template.Template
	logger    *slog.Logger

	// sendMail is smtp.SendMail outside tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPEmailService creates a new SMTP-based email service using the
// embedded HTML templates.
//
//	emailService, err := email.NewSMTPEmailService(
//	    email.SMTPConfig{Host: "localhost", Port: 1025},
//	    logger,
//	)
func NewSMTPEmailService(config SMTPConfig, logger *slog.Logger) (*SMTPEmailService, error) {
	if config.From == "" {
		config.From = DefaultFromEmail
	}
	if config.FromName == "" {
		config.FromName = DefaultFromName
	}

	templates, err := template.New("email").Funcs(emailTemplateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &SMTPEmailService{
		config:    config,
		templates: templates,
		logger:    logger,
		sendMail:  smtp.SendMail,
	}, nil
}

// =============================================================================
// EmailService Interface Implementation
// =============================================================================

// SendUpcomingInspectionEmail sends the automatic reminder.
func (s *SMTPEmailService) SendUpcomingInspectionEmail(ctx context.Context, to, clientName string, due time.Time) error {
	return s.sendReminder(ctx, to, "Upcoming fire safety inspection",
		clientName, UpcomingInspectionMessage(clientName, due), due)
}

// SendManualReminderEmail sends an operator-triggered reminder.
func (s *SMTPEmailService) SendManualReminderEmail(ctx context.Context, to, clientName string, due time.Time) error {
	return s.sendReminder(ctx, to, "Reminder: fire safety inspection due",
		clientName, ManualReminderMessage(clientName, due), due)
}

// SendReportReadyEmail notifies a client contact that their inspection report is ready.
func (s *SMTPEmailService) SendReportReadyEmail(ctx context.Context, to, clientName, reportURL string) error {
	message := ReportReadyMessage(clientName)
	data := map[string]interface{}{
		"ClientName": clientName,
		"Message":    message,
		"ReportURL":  reportURL,
		"FromName":   s.config.FromName,
	}

	htmlBody, err := s.renderTemplate("report_ready.html", data)
	if err != nil {
		return fmt.Errorf("failed to render report ready email template: %w", err)
	}

	textBody := fmt.Sprintf(`Hello %s,

%s You can download it here:

%s

Thanks,
%s
`, clientName, message, reportURL, s.config.FromName)

	return s.send(ctx, Email{
		To:       to,
		Subject:  "Your fire safety inspection report is ready",
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
}

// =============================================================================
// Internal Methods
// =============================================================================

func (s *SMTPEmailService) sendReminder(ctx context.Context, to, subject, clientName, message string, due time.Time) error {
	data := map[string]interface{}{
		"Title":      subject,
		"ClientName": clientName,
		"Message":    message,
		"DueDate":    due.Format(DateLayout),
		"FromName":   s.config.FromName,
	}

	htmlBody, err := s.renderTemplate("reminder.html", data)
	if err != nil {
		return fmt.Errorf("failed to render reminder email template: %w", err)
	}

	textBody := fmt.Sprintf(`Hello %s,

%s

Please make sure pump rooms, electrical rooms and refuge areas are accessible on the day of the visit.

Thanks,
%s
`, clientName, message, s.config.FromName)

	return s.send(ctx, Email{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
}

// send sends an email via SMTP.
func (s *SMTPEmailService) send(ctx context.Context, email Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if email.To == "" {
		return fmt.Errorf("failed to send email: no recipient")
	}

	msg := s.buildMessage(email)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	// Mailhog needs no auth.
	var auth smtp.Auth
	if s.config.Username != "" && s.config.Password != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	if err := s.sendMail(addr, auth, s.config.From, []string{email.To}, msg); err != nil {
		s.logger.Error("failed to send email",
			"to", email.To,
			"subject", email.Subject,
			"error", err,
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("email sent",
		"to", email.To,
		"subject", email.Subject,
	)

	return nil
}

// buildMessage constructs the raw multipart/alternative message.
func (s *SMTPEmailService) buildMessage(email Email) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s <%s>\r\n", s.config.FromName, s.config.From)
	fmt.Fprintf(&buf, "To: %s\r\n", email.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", email.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")

	boundary := "===============FIREAUDIT_BOUNDARY==============="
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary)

	for _, part := range []struct{ contentType, body string }{
		{"text/plain", email.TextBody},
		{"text/html", email.HTMLBody},
	} {
		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		fmt.Fprintf(&buf, "Content-Type: %s; charset=utf-8\r\n", part.contentType)
		buf.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
		buf.WriteString(strings.ReplaceAll(part.body, "\n", "\r\n"))
		buf.WriteString("\r\n")
	}

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)
	return buf.Bytes()
}

func (s *SMTPEmailService) renderTemplate(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func emailTemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"currentYear": func() int {
			return time.Now().Year()
		},
	}
}

var _ EmailService = (*SMTPEmailService)(nil)
