package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies a message sent to a client contact.
type NotificationType string

const (
	NotificationManualReminder     NotificationType = "Manual Reminder"
	NotificationUpcomingInspection NotificationType = "Upcoming Inspection"
	NotificationUrgentAction       NotificationType = "Urgent Action"
	NotificationReportGenerated    NotificationType = "Report Generated"
)

// IsValid returns true if the type is a recognized value.
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationManualReminder, NotificationUpcomingInspection,
		NotificationUrgentAction, NotificationReportGenerated:
		return true
	}
	return false
}

// NotificationStatus is the delivery outcome of a notification.
type NotificationStatus string

const (
	NotificationSent   NotificationStatus = "Sent"
	NotificationFailed NotificationStatus = "Failed"
)

// NotificationLog is the persisted record of one notification attempt.
type NotificationLog struct {
	ID           uuid.UUID
	ClientID     uuid.UUID
	InspectionID *uuid.UUID
	Type         NotificationType
	Recipient    string
	Message      string
	Status       NotificationStatus
	Metadata     json.RawMessage // Optional: due date, error text
	CreatedAt    time.Time
}

// ReminderRunResult summarizes an automatic reminder sweep.
type ReminderRunResult struct {
	Candidates int // Clients due within the reminder window
	Sent       int // Reminders delivered
	Skipped    int // Already reminded for the same due date
	Failed     int // Delivery failures (logged as Failed)
}
