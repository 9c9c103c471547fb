// Package service contains the business logic layer.
//
// This file implements the report service: assembling report data from an
// inspection and its client, rendering every report format and keeping the
// files in storage.
package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/DukeRupert/fireaudit/internal/compliance"
	"github.com/DukeRupert/fireaudit/internal/domain"
	"github.com/DukeRupert/fireaudit/internal/metrics"
	"github.com/DukeRupert/fireaudit/internal/report"
	"github.com/DukeRupert/fireaudit/internal/repository"
	"github.com/DukeRupert/fireaudit/internal/schedule"
	"github.com/DukeRupert/fireaudit/internal/storage"
	"github.com/google/uuid"
)

// ReportLinkExpiry is how long presigned report links stay valid.
const ReportLinkExpiry = 7 * 24 * time.Hour

// =============================================================================
// Interface Definition
// =============================================================================

// ReportService defines operations for generating and serving reports.
type ReportService interface {
	// PrepareReportData aggregates all data needed for report generation.
	PrepareReportData(ctx context.Context, inspectionID uuid.UUID) (*domain.ReportData, error)

	// Generate renders every report format for an inspection, stores the
	// files and records them. Regenerating replaces the previous files.
	Generate(ctx context.Context, inspectionID uuid.UUID) (*GeneratedReport, error)

	// Open streams a stored report file. The caller must close the reader.
	// Returns domain.ENOTFOUND if the report has not been generated.
	Open(ctx context.Context, inspectionID uuid.UUID, format domain.ReportFormat) (io.ReadCloser, storage.ObjectInfo, error)

	// URL returns a shareable link to a stored report file.
	URL(ctx context.Context, inspectionID uuid.UUID, format domain.ReportFormat) (string, error)
}

// GeneratedReport is the outcome of Generate.
type GeneratedReport struct {
	Report *domain.Report
	Data   *domain.ReportData
}

// =============================================================================
// Implementation
// =============================================================================

type reportService struct {
	store      repository.Store
	storage    storage.Storage
	generators []report.Generator
	clock      schedule.Clock
	loc        *time.Location
	logger     *slog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(
	store repository.Store,
	storage storage.Storage,
	generators []report.Generator,
	clock schedule.Clock,
	loc *time.Location,
	logger *slog.Logger,
) ReportService {
	return &reportService{
		store:      store,
		storage:    storage,
		generators: generators,
		clock:      clock,
		loc:        loc,
		logger:     logger,
	}
}

// =============================================================================
// PrepareReportData
// =============================================================================

func (s *reportService) PrepareReportData(ctx context.Context, inspectionID uuid.UUID) (*domain.ReportData, error) {
	const op = "report.prepare"

	row, err := s.store.GetInspection(ctx, inspectionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "inspection", inspectionID.String())
		}
		return nil, domain.Internal(err, op, "failed to get inspection")
	}
	inspection, err := getRowToInspection(row)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to decode inspection")
	}

	clientRow, err := s.store.GetClient(ctx, inspection.ClientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "client", inspection.ClientID.String())
		}
		return nil, domain.Internal(err, op, "failed to get client")
	}
	client, err := rowToClient(clientRow, s.loc)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to decode client")
	}

	return &domain.ReportData{
		Inspection:  *inspection,
		Client:      *client,
		Narrative:   compliance.Summary(inspection.Findings),
		GeneratedAt: s.clock.Now().In(s.loc),
	}, nil
}

// =============================================================================
// Generate
// =============================================================================

func (s *reportService) Generate(ctx context.Context, inspectionID uuid.UUID) (*GeneratedReport, error) {
	const op = "report.generate"

	data, err := s.PrepareReportData(ctx, inspectionID)
	if err != nil {
		return nil, err
	}

	keys := make(map[domain.ReportFormat]string, len(s.generators))
	for _, gen := range s.generators {
		format := gen.Format()

		var buf bytes.Buffer
		size, err := gen.Generate(ctx, data, &buf)
		if err != nil {
			return nil, domain.Internal(err, op, fmt.Sprintf("failed to render %s report", format))
		}

		key := storage.ReportKey(data.Client.ID, inspectionID, format)
		if err := s.storage.Put(ctx, key, &buf, format.ContentType()); err != nil {
			return nil, domain.Internal(err, op, fmt.Sprintf("failed to store %s report", format))
		}
		keys[format] = key

		metrics.ReportGenerated(format.String())
		s.logger.Info("report rendered",
			"inspection_id", inspectionID,
			"format", format,
			"key", key,
			"bytes", size,
		)
	}

	row, err := s.store.CreateReport(ctx, repository.CreateReportParams{
		InspectionID:   inspectionID,
		PdfStorageKey:  domain.ToNullString(keys[domain.ReportFormatPDF]),
		XlsxStorageKey: domain.ToNullString(keys[domain.ReportFormatXLSX]),
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to record report")
	}

	return &GeneratedReport{Report: rowToReport(row), Data: data}, nil
}

// =============================================================================
// Download
// =============================================================================

func (s *reportService) Open(ctx context.Context, inspectionID uuid.UUID, format domain.ReportFormat) (io.ReadCloser, storage.ObjectInfo, error) {
	const op = "report.open"

	key, err := s.storageKey(ctx, op, inspectionID, format)
	if err != nil {
		return nil, storage.ObjectInfo{}, err
	}

	rc, info, err := s.storage.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ObjectInfo{}, domain.NotFound(op, "report file", key)
		}
		return nil, storage.ObjectInfo{}, domain.Internal(err, op, "failed to open report")
	}
	return rc, info, nil
}

func (s *reportService) URL(ctx context.Context, inspectionID uuid.UUID, format domain.ReportFormat) (string, error) {
	const op = "report.url"

	key, err := s.storageKey(ctx, op, inspectionID, format)
	if err != nil {
		return "", err
	}

	url, err := s.storage.URL(ctx, key, ReportLinkExpiry)
	if err != nil {
		return "", domain.Internal(err, op, "failed to build report link")
	}
	return url, nil
}

func (s *reportService) storageKey(ctx context.Context, op string, inspectionID uuid.UUID, format domain.ReportFormat) (string, error) {
	if !format.IsValid() {
		return "", domain.Invalid(op, fmt.Sprintf("Unsupported report format %q", format))
	}

	row, err := s.store.GetReportByInspection(ctx, inspectionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.NotFound(op, "report", inspectionID.String())
		}
		return "", domain.Internal(err, op, "failed to get report")
	}

	key := rowToReport(row).StorageKey(format)
	if key == "" {
		return "", domain.NotFound(op, "report", inspectionID.String())
	}
	return key, nil
}
