// Package service contains the business logic layer.
//
// This file implements the notification service: inspection reminders and
// report delivery emails, each attempt recorded in the notification log.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/DukeRupert/fireaudit/internal/domain"
	"github.com/DukeRupert/fireaudit/internal/email"
	"github.com/DukeRupert/fireaudit/internal/metrics"
	"github.com/DukeRupert/fireaudit/internal/repository"
	"github.com/DukeRupert/fireaudit/internal/schedule"
	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

// =============================================================================
// Interface Definition
// =============================================================================

// NotificationService defines the interface for client notifications.
type NotificationService interface {
	// SendManualReminder emails the client about its scheduled inspection.
	// Returns domain.EINVALID if the client has no scheduled date.
	SendManualReminder(ctx context.Context, clientID uuid.UUID) (*domain.NotificationLog, error)

	// RunAutoReminders emails every client whose inspection falls due within
	// the reminder window, at most once per client and due date.
	RunAutoReminders(ctx context.Context) (*domain.ReminderRunResult, error)

	// SendReportReady emails the client a link to a generated report.
	SendReportReady(ctx context.Context, client *domain.Client, inspectionID uuid.UUID, reportURL string) error

	// ListByClient returns the most recent notifications of a client.
	ListByClient(ctx context.Context, clientID uuid.UUID, limit int32) ([]domain.NotificationLog, error)
}

// =============================================================================
// Implementation
// =============================================================================

type notificationService struct {
	store  repository.Store
	email  email.EmailService
	clock  schedule.Clock
	loc    *time.Location
	logger *slog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(
	store repository.Store,
	emailService email.EmailService,
	clock schedule.Clock,
	loc *time.Location,
	logger *slog.Logger,
) NotificationService {
	return &notificationService{
		store:  store,
		email:  emailService,
		clock:  clock,
		loc:    loc,
		logger: logger,
	}
}

// reminderMetadata is stored with reminder logs. DueDate is what the
// once-per-due-date check matches on.
type reminderMetadata struct {
	DueDate string `json:"due_date"`
	Error   string `json:"error,omitempty"`
}

type reportMetadata struct {
	ReportURL string `json:"report_url,omitempty"`
	Error     string `json:"error,omitempty"`
}

// =============================================================================
// Reminders
// =============================================================================

func (s *notificationService) SendManualReminder(ctx context.Context, clientID uuid.UUID) (*domain.NotificationLog, error) {
	const op = "notification.send_manual_reminder"

	row, err := s.store.GetClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "client", clientID.String())
		}
		return nil, domain.Internal(err, op, "failed to get client")
	}
	client, err := rowToClient(row, s.loc)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to decode client")
	}
	if client.NextInspectionDate == nil {
		return nil, domain.Invalid(op, "Client has no scheduled inspection date")
	}

	due := *client.NextInspectionDate
	sendErr := s.email.SendManualReminderEmail(ctx, client.Email, client.Name, due)

	log, err := s.logReminder(ctx, client, domain.NotificationManualReminder,
		email.ManualReminderMessage(client.Name, due), due, sendErr)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to record notification")
	}
	if sendErr != nil {
		return log, domain.Internal(sendErr, op, "failed to send reminder")
	}
	return log, nil
}

func (s *notificationService) RunAutoReminders(ctx context.Context) (*domain.ReminderRunResult, error) {
	const op = "notification.run_auto_reminders"

	today := civilDate(s.clock.Now().In(s.loc), time.UTC)
	rows, err := s.store.ListClientsDueBetween(ctx, repository.ListClientsDueBetweenParams{
		FromDate: today,
		ToDate:   today.AddDate(0, 0, schedule.Window),
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list clients due for inspection")
	}

	result := &domain.ReminderRunResult{Candidates: len(rows)}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		client, err := rowToClient(row, s.loc)
		if err != nil {
			s.logger.Error("skipping undecodable client", "client_id", row.ID, "error", err)
			result.Failed++
			continue
		}
		due := *client.NextInspectionDate

		sent, err := s.store.HasNotificationForDate(ctx, repository.HasNotificationForDateParams{
			ClientID: client.ID,
			Type:     string(domain.NotificationUpcomingInspection),
			DueDate:  due.Format(time.DateOnly),
		})
		if err != nil {
			return result, domain.Internal(err, op, "failed to check notification history")
		}
		if sent {
			result.Skipped++
			continue
		}

		sendErr := s.email.SendUpcomingInspectionEmail(ctx, client.Email, client.Name, due)
		if _, err := s.logReminder(ctx, client, domain.NotificationUpcomingInspection,
			email.UpcomingInspectionMessage(client.Name, due), due, sendErr); err != nil {
			return result, domain.Internal(err, op, "failed to record notification")
		}

		if sendErr != nil {
			result.Failed++
			continue
		}
		result.Sent++
	}

	s.logger.Info("automatic reminders processed",
		"candidates", result.Candidates,
		"sent", result.Sent,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return result, nil
}

// logReminder records one reminder attempt and its metric.
func (s *notificationService) logReminder(
	ctx context.Context,
	client *domain.Client,
	typ domain.NotificationType,
	message string,
	due time.Time,
	sendErr error,
) (*domain.NotificationLog, error) {
	meta := reminderMetadata{DueDate: due.Format(time.DateOnly)}
	if sendErr != nil {
		meta.Error = sendErr.Error()
	}
	return s.record(ctx, client, nil, typ, message, meta, sendErr)
}

// =============================================================================
// Report delivery
// =============================================================================

func (s *notificationService) SendReportReady(ctx context.Context, client *domain.Client, inspectionID uuid.UUID, reportURL string) error {
	const op = "notification.send_report_ready"

	sendErr := s.email.SendReportReadyEmail(ctx, client.Email, client.Name, reportURL)

	meta := reportMetadata{ReportURL: reportURL}
	if sendErr != nil {
		meta.Error = sendErr.Error()
	}
	if _, err := s.record(ctx, client, &inspectionID, domain.NotificationReportGenerated,
		email.ReportReadyMessage(client.Name), meta, sendErr); err != nil {
		return domain.Internal(err, op, "failed to record notification")
	}
	if sendErr != nil {
		return domain.Internal(sendErr, op, "failed to send report email")
	}
	return nil
}

// =============================================================================
// History
// =============================================================================

func (s *notificationService) ListByClient(ctx context.Context, clientID uuid.UUID, limit int32) ([]domain.NotificationLog, error) {
	const op = "notification.list"

	limit, _ = normalizePage(limit, 0)
	rows, err := s.store.ListNotificationLogsByClient(ctx, repository.ListNotificationLogsByClientParams{
		ClientID: clientID,
		Limit:    limit,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list notifications")
	}

	logs := make([]domain.NotificationLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, rowToNotificationLog(row))
	}
	return logs, nil
}

// =============================================================================
// Helpers
// =============================================================================

func (s *notificationService) record(
	ctx context.Context,
	client *domain.Client,
	inspectionID *uuid.UUID,
	typ domain.NotificationType,
	message string,
	metadata any,
	sendErr error,
) (*domain.NotificationLog, error) {
	status := domain.NotificationSent
	if sendErr != nil {
		status = domain.NotificationFailed
	}

	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}

	row, err := s.store.CreateNotificationLog(ctx, repository.CreateNotificationLogParams{
		ClientID:     client.ID,
		InspectionID: domain.ToNullUUID(inspectionID),
		Type:         string(typ),
		Recipient:    client.Email,
		Message:      message,
		Status:       string(status),
		Metadata:     pqtype.NullRawMessage{RawMessage: raw, Valid: true},
	})
	if err != nil {
		return nil, err
	}

	metrics.ReminderAttempted(string(typ), string(status))
	if sendErr != nil {
		s.logger.Warn("notification failed",
			"client_id", client.ID,
			"type", typ,
			"error", sendErr,
		)
	} else {
		s.logger.Info("notification sent", "client_id", client.ID, "type", typ)
	}

	log := rowToNotificationLog(row)
	return &log, nil
}
