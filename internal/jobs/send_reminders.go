package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DukeRupert/fireaudit/internal/service"
	"github.com/DukeRupert/fireaudit/internal/worker"
)

// SendRemindersHandler runs the automatic reminder sweep. The payload only
// records when the sweep was requested; "today" is taken from the service
// clock when the job runs.
type SendRemindersHandler struct {
	notifications service.NotificationService
	logger        *slog.Logger
}

// NewSendRemindersHandler creates a new handler for reminder sweeps.
func NewSendRemindersHandler(notifications service.NotificationService, logger *slog.Logger) *SendRemindersHandler {
	return &SendRemindersHandler{notifications: notifications, logger: logger}
}

// Type returns the job type identifier.
func (h *SendRemindersHandler) Type() string {
	return worker.JobTypeSendReminders
}

// Handle executes the reminder sweep. Individual delivery failures are
// recorded per client and do not fail the job.
func (h *SendRemindersHandler) Handle(ctx context.Context, payload []byte) error {
	result, err := h.notifications.RunAutoReminders(ctx)
	if err != nil {
		return fmt.Errorf("run reminders: %w", err)
	}

	h.logger.Info("reminder sweep finished",
		"candidates", result.Candidates,
		"sent", result.Sent,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return nil
}

var _ worker.JobHandler = (*SendRemindersHandler)(nil)
