// Package email sends reminder and report notifications to client contacts.
package email

import (
	"context"
	"fmt"
	"time"
)

// =============================================================================
// Interface Definition
// =============================================================================

// EmailService defines the interface for sending client notifications.
//
// All methods are context-aware for timeout and cancellation support.
type EmailService interface {
	// SendUpcomingInspectionEmail tells a client contact their routine
	// inspection falls due soon. Sent by the automatic reminder sweep.
	SendUpcomingInspectionEmail(ctx context.Context, to, clientName string, due time.Time) error

	// SendManualReminderEmail is the operator-triggered variant of the
	// upcoming inspection reminder.
	SendManualReminderEmail(ctx context.Context, to, clientName string, due time.Time) error

	// SendReportReadyEmail delivers a link to a generated inspection report.
	SendReportReadyEmail(ctx context.Context, to, clientName, reportURL string) error
}

// =============================================================================
// Email Data Types
// =============================================================================

// Email represents a single email message.
type Email struct {
	To       string // Recipient email address
	Subject  string // Email subject line
	HTMLBody string // HTML content of the email
	TextBody string // Plain text fallback content
}

// =============================================================================
// Configuration Types
// =============================================================================

// SMTPConfig holds SMTP server configuration.
type SMTPConfig struct {
	Host     string // SMTP server hostname (e.g., "localhost" for Mailhog)
	Port     int    // SMTP server port (e.g., 1025 for Mailhog)
	Username string // SMTP authentication username (empty for Mailhog)
	Password string // SMTP authentication password (empty for Mailhog)
	From     string // Default sender email address
	FromName string // Default sender display name
}

const (
	// DefaultFromEmail is the default sender email for notifications.
	DefaultFromEmail = "noreply@fireaudit.app"

	// DefaultFromName is the default sender display name.
	DefaultFromName = "Fire Audit"
)

// DateLayout is how due dates are written in messages and notification logs.
const DateLayout = "02 Jan 2006"

// =============================================================================
// Message Text
// =============================================================================

// The one-line messages below are both the lead sentence of the email and
// the text recorded in the notification log.

// UpcomingInspectionMessage is the automatic reminder text.
func UpcomingInspectionMessage(clientName string, due time.Time) string {
	return fmt.Sprintf("Routine Inspection for %s is due on %s. Please schedule.", clientName, due.Format(DateLayout))
}

// ManualReminderMessage is the operator reminder text.
func ManualReminderMessage(clientName string, due time.Time) string {
	return fmt.Sprintf("Reminder: Inspection for %s is due on %s", clientName, due.Format(DateLayout))
}

// ReportReadyMessage is the report delivery text.
func ReportReadyMessage(clientName string) string {
	return fmt.Sprintf("The fire safety inspection report for %s is ready.", clientName)
}
