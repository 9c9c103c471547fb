package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/DukeRupert/fireaudit/internal/domain"
	"github.com/DukeRupert/fireaudit/internal/service"
)

// ReportHandler serves generated inspection reports.
type ReportHandler struct {
	reportService service.ReportService
	logger        *slog.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// RegisterRoutes registers report routes.
func (h *ReportHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/inspections/{id}/report", h.Download)
	mux.HandleFunc("GET /api/inspections/{id}/report/url", h.URL)
}

// reportFormat reads the format query parameter, defaulting to PDF.
func reportFormat(r *http.Request, op string) (domain.ReportFormat, error) {
	format := domain.ReportFormat(r.URL.Query().Get("format"))
	if format == "" {
		return domain.ReportFormatPDF, nil
	}
	if !format.IsValid() {
		return "", domain.Invalid(op, "Invalid format: must be 'pdf' or 'xlsx'")
	}
	return format, nil
}

// Download streams a report file.
// GET /api/inspections/{id}/report?format=pdf|xlsx
func (h *ReportHandler) Download(w http.ResponseWriter, r *http.Request) {
	const op = "handler.report.download"

	id, err := pathUUID(r, op, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	format, err := reportFormat(r, op)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	reader, info, err := h.reportService.Open(r.Context(), id, format)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", format.ContentType())
	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	filename := fmt.Sprintf("inspection-%s.%s", id.String()[:8], format.FileExtension())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("failed to stream report", "error", err, "inspection_id", id)
		return
	}

	h.logger.Info("report downloaded", "inspection_id", id, "format", format)
}

// URL returns a shareable link to a report file.
// GET /api/inspections/{id}/report/url?format=pdf|xlsx
func (h *ReportHandler) URL(w http.ResponseWriter, r *http.Request) {
	const op = "handler.report.url"

	id, err := pathUUID(r, op, "id")
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	format, err := reportFormat(r, op)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	url, err := h.reportService.URL(r.Context(), id, format)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url, "format": format.String()})
}
