// Package jobs holds the background job handlers run by the worker.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/DukeRupert/fireaudit/internal/domain"
	"github.com/DukeRupert/fireaudit/internal/service"
	"github.com/DukeRupert/fireaudit/internal/worker"
	"github.com/google/uuid"
)

// GenerateReportHandler renders and stores the reports of a submitted
// inspection, then optionally emails the client a link to the PDF.
type GenerateReportHandler struct {
	reports       service.ReportService
	notifications service.NotificationService
	notify        bool
	logger        *slog.Logger
}

// NewGenerateReportHandler creates a new handler for report generation jobs.
func NewGenerateReportHandler(
	reports service.ReportService,
	notifications service.NotificationService,
	notify bool,
	logger *slog.Logger,
) *GenerateReportHandler {
	return &GenerateReportHandler{
		reports:       reports,
		notifications: notifications,
		notify:        notify,
		logger:        logger,
	}
}

// Type returns the job type identifier.
func (h *GenerateReportHandler) Type() string {
	return worker.JobTypeGenerateReport
}

// Handle executes the report generation job.
func (h *GenerateReportHandler) Handle(ctx context.Context, payload []byte) error {
	var p worker.GenerateReportPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return worker.NewPermanentError(fmt.Errorf("invalid payload: %w", err))
	}
	if p.InspectionID == uuid.Nil {
		return worker.NewPermanentError(fmt.Errorf("invalid payload: missing inspection_id"))
	}

	h.logger.Info("generating report", "inspection_id", p.InspectionID)

	out, err := h.reports.Generate(ctx, p.InspectionID)
	if err != nil {
		if domain.ErrorCode(err) == domain.ENOTFOUND {
			return worker.NewPermanentError(err)
		}
		return fmt.Errorf("generate report: %w", err)
	}

	if !h.notify {
		return nil
	}

	// The files are stored at this point; a failed email is recorded in the
	// notification log and must not trigger regeneration.
	url, err := h.reports.URL(ctx, p.InspectionID, domain.ReportFormatPDF)
	if err != nil {
		h.logger.Warn("report link unavailable", "inspection_id", p.InspectionID, "error", err)
		return nil
	}
	if err := h.notifications.SendReportReady(ctx, &out.Data.Client, p.InspectionID, url); err != nil {
		h.logger.Warn("report email failed", "inspection_id", p.InspectionID, "error", err)
	}
	return nil
}

var _ worker.JobHandler = (*GenerateReportHandler)(nil)
