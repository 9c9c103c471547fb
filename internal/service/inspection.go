// Package service contains the business logic layer.
//
// This file implements the inspection service: seeding, previewing and
// submitting fire-safety inspections.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/DukeRupert/fireaudit/internal/cache"
	"github.com/DukeRupert/fireaudit/internal/compliance"
	"github.com/DukeRupert/fireaudit/internal/domain"
	"github.com/DukeRupert/fireaudit/internal/metrics"
	"github.com/DukeRupert/fireaudit/internal/repository"
	"github.com/DukeRupert/fireaudit/internal/schedule"
	"github.com/DukeRupert/fireaudit/internal/worker"
	"github.com/google/uuid"
)

// =============================================================================
// Interface Definition
// =============================================================================

// InspectionService defines the interface for inspection-related operations.
type InspectionService interface {
	// Start returns a blank findings record seeded from the client's structure.
	Start(ctx context.Context, clientID uuid.UUID) (*InspectionDraft, error)

	// Preview scores a findings record without storing it.
	Preview(findings domain.Findings) InspectionPreview

	// Submit validates, scores and stores an inspection, advances the
	// client's next inspection date and queues report generation, all in
	// one transaction.
	Submit(ctx context.Context, params domain.SubmitInspectionParams) (*domain.SubmitInspectionResult, error)

	// GetByID retrieves an inspection with its client name.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Inspection, error)

	// List retrieves a page of inspections, newest first. When
	// params.ClientID is set only that client's inspections are returned.
	List(ctx context.Context, params domain.ListInspectionsParams) (*domain.ListInspectionsResult, error)
}

// InspectionDraft is the starting point of a new inspection.
type InspectionDraft struct {
	Client   *domain.Client  `json:"client"`
	Findings domain.Findings `json:"findings"`
}

// InspectionPreview is the live result of a findings record being edited.
type InspectionPreview struct {
	Score         int                     `json:"score"`
	CriticalCount int                     `json:"critical_count"`
	Status        domain.InspectionStatus `json:"status"`
	ResultLine    string                  `json:"result_line"`
	Narrative     string                  `json:"narrative"`
}

// =============================================================================
// Implementation
// =============================================================================

type inspectionService struct {
	store  repository.Store
	cache  cache.Cache
	clock  schedule.Clock
	loc    *time.Location
	logger *slog.Logger
}

// NewInspectionService creates a new InspectionService.
func NewInspectionService(
	store repository.Store,
	c cache.Cache,
	clock schedule.Clock,
	loc *time.Location,
	logger *slog.Logger,
) InspectionService {
	return &inspectionService{
		store:  store,
		cache:  c,
		clock:  clock,
		loc:    loc,
		logger: logger,
	}
}

// =============================================================================
// Start / Preview
// =============================================================================

func (s *inspectionService) Start(ctx context.Context, clientID uuid.UUID) (*InspectionDraft, error) {
	const op = "inspection.start"

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
	client.SchedulingStatus = schedule.StatusOf(client.NextInspectionDate, s.clock.Now().In(s.loc))

	return &InspectionDraft{
		Client:   client,
		Findings: compliance.NewFindings(client.Structure),
	}, nil
}

func (s *inspectionService) Preview(findings domain.Findings) InspectionPreview {
	result := compliance.Compute(findings)
	return InspectionPreview{
		Score:         result.Score,
		CriticalCount: result.CriticalCount,
		Status:        result.Status(),
		ResultLine:    compliance.ResultLine(result),
		Narrative:     compliance.Summary(findings),
	}
}

// =============================================================================
// Submit
// =============================================================================

func (s *inspectionService) Submit(ctx context.Context, params domain.SubmitInspectionParams) (*domain.SubmitInspectionResult, error) {
	const op = "inspection.submit"

	if params.InspectorID == uuid.Nil {
		return nil, domain.NewValidationError(op, "inspector_id", "Inspector is required")
	}

	clientRow, err := s.store.GetClient(ctx, params.ClientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "client", params.ClientID.String())
		}
		return nil, domain.Internal(err, op, "failed to get client")
	}
	client, err := rowToClient(clientRow, s.loc)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to decode client")
	}

	// The structure may have changed since the draft was started.
	params.Findings = compliance.ReconcileFloors(params.Findings, client.Structure)

	if err := compliance.ValidateSubmission(params.Findings); err != nil {
		return nil, err
	}

	result := compliance.Compute(params.Findings)
	status := result.Status()

	findings, err := json.Marshal(params.Findings)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to encode findings")
	}

	next := schedule.NextInspectionDate(s.clock.Now().In(s.loc))

	var (
		row repository.Inspection
		job repository.Job
	)
	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		var err error
		row, err = q.CreateInspection(ctx, repository.CreateInspectionParams{
			ClientID:            params.ClientID,
			InspectorID:         params.InspectorID,
			Status:              status.String(),
			ComplianceScore:     int32(result.Score),
			CriticalIssuesCount: int32(result.CriticalCount),
			Findings:            findings,
			Summary:             compliance.ResultLine(result),
		})
		if err != nil {
			return err
		}

		n, err := q.UpdateClientNextInspection(ctx, repository.UpdateClientNextInspectionParams{
			ID:                 params.ClientID,
			NextInspectionDate: sql.NullTime{Time: civilDate(next, time.UTC), Valid: true},
		})
		if err != nil {
			return err
		}
		if n == 0 {
			return sql.ErrNoRows
		}

		job, err = worker.EnqueueGenerateReport(ctx, q, row.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "client", params.ClientID.String())
		}
		return nil, domain.Internal(err, op, "failed to store inspection")
	}

	inspection, err := rowToInspection(row, "")
	if err != nil {
		return nil, domain.Internal(err, op, "failed to decode inspection")
	}

	invalidateDashboard(ctx, s.cache, s.logger)
	metrics.InspectionSubmitted(status.String(), result.Score, result.CriticalCount)

	s.logger.Info("inspection submitted",
		"inspection_id", inspection.ID,
		"client_id", inspection.ClientID,
		"score", result.Score,
		"critical_count", result.CriticalCount,
		"status", status,
		"next_inspection_date", next.Format(time.DateOnly),
		"report_job_id", job.ID,
	)

	return &domain.SubmitInspectionResult{
		Inspection:         inspection,
		NextInspectionDate: next,
		ReportJobQueued:    true,
	}, nil
}

// =============================================================================
// Read
// =============================================================================

func (s *inspectionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Inspection, error) {
	const op = "inspection.get"

	row, err := s.store.GetInspection(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "inspection", id.String())
		}
		return nil, domain.Internal(err, op, "failed to get inspection")
	}

	inspection, err := getRowToInspection(row)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to decode inspection")
	}
	return inspection, nil
}

func (s *inspectionService) List(ctx context.Context, params domain.ListInspectionsParams) (*domain.ListInspectionsResult, error) {
	const op = "inspection.list"

	limit, offset := normalizePage(params.Limit, params.Offset)
	result := &domain.ListInspectionsResult{Limit: limit, Offset: offset}

	if params.ClientID != nil {
		client, err := s.store.GetClient(ctx, *params.ClientID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, domain.NotFound(op, "client", params.ClientID.String())
			}
			return nil, domain.Internal(err, op, "failed to get client")
		}

		total, err := s.store.CountInspectionsByClient(ctx, client.ID)
		if err != nil {
			return nil, domain.Internal(err, op, "failed to count inspections")
		}
		rows, err := s.store.ListInspectionsByClient(ctx, repository.ListInspectionsByClientParams{
			ClientID: client.ID,
			Limit:    limit,
			Offset:   offset,
		})
		if err != nil {
			return nil, domain.Internal(err, op, "failed to list inspections")
		}

		result.Total = total
		result.Inspections = make([]domain.Inspection, 0, len(rows))
		for _, row := range rows {
			inspection, err := rowToInspection(row, client.Name)
			if err != nil {
				return nil, domain.Internal(err, op, "failed to decode inspection")
			}
			result.Inspections = append(result.Inspections, *inspection)
		}
		return result, nil
	}

	total, err := s.store.CountInspections(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to count inspections")
	}
	rows, err := s.store.ListInspections(ctx, repository.ListInspectionsParams{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list inspections")
	}

	result.Total = total
	result.Inspections = make([]domain.Inspection, 0, len(rows))
	for _, row := range rows {
		inspection, err := listRowToInspection(row)
		if err != nil {
			return nil, domain.Internal(err, op, "failed to decode inspection")
		}
		result.Inspections = append(result.Inspections, *inspection)
	}
	return result, nil
}
