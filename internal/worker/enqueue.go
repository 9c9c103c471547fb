package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DukeRupert/fireaudit/internal/repository"
	"github.com/google/uuid"
)

// Job type constants - these must match the JobHandler.Type() values
const (
	JobTypeGenerateReport = "generate_report"
	JobTypeSendReminders  = "send_reminders"
)

// Priority constants for job scheduling
const (
	PriorityLow    = 0
	PriorityNormal = 10
	PriorityHigh   = 20
)

// GenerateReportPayload is the payload for report generation jobs.
// Every supported format is rendered for the inspection.
type GenerateReportPayload struct {
	InspectionID uuid.UUID `json:"inspection_id"`
}

// SendRemindersPayload is the payload for automatic reminder sweeps.
type SendRemindersPayload struct {
	RequestedAt time.Time `json:"requested_at"`
}

// Enqueuer is the part of the repository needed to queue jobs. Both the
// plain queries and a transaction-scoped Querier satisfy it, so a job can be
// enqueued atomically with the write that triggers it.
type Enqueuer interface {
	EnqueueJob(ctx context.Context, arg repository.EnqueueJobParams) (repository.Job, error)
}

// EnqueueOption is a functional option for customizing job enqueue parameters.
type EnqueueOption func(*repository.EnqueueJobParams)

// WithPriority sets the job priority.
func WithPriority(priority int32) EnqueueOption {
	return func(p *repository.EnqueueJobParams) {
		p.Priority = priority
	}
}

// WithMaxAttempts sets the maximum number of retry attempts.
func WithMaxAttempts(attempts int32) EnqueueOption {
	return func(p *repository.EnqueueJobParams) {
		p.MaxAttempts = attempts
	}
}

// WithDelay schedules the job to run after a delay.
func WithDelay(delay time.Duration) EnqueueOption {
	return func(p *repository.EnqueueJobParams) {
		p.ScheduledAt = time.Now().Add(delay)
	}
}

// EnqueueJob is a generic helper for enqueuing jobs with custom options.
func EnqueueJob(
	ctx context.Context,
	q Enqueuer,
	jobType string,
	payload interface{},
	opts ...EnqueueOption,
) (repository.Job, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return repository.Job{}, fmt.Errorf("marshal payload: %w", err)
	}

	params := repository.EnqueueJobParams{
		JobType:     jobType,
		Payload:     payloadJSON,
		Priority:    PriorityNormal,
		MaxAttempts: 3,
		ScheduledAt: time.Now(),
	}
	for _, opt := range opts {
		opt(&params)
	}

	job, err := q.EnqueueJob(ctx, params)
	if err != nil {
		return repository.Job{}, fmt.Errorf("enqueue job: %w", err)
	}

	return job, nil
}

// EnqueueGenerateReport enqueues rendering of the PDF and spreadsheet for a
// submitted inspection.
func EnqueueGenerateReport(
	ctx context.Context,
	q Enqueuer,
	inspectionID uuid.UUID,
	opts ...EnqueueOption,
) (repository.Job, error) {
	return EnqueueJob(ctx, q, JobTypeGenerateReport, GenerateReportPayload{InspectionID: inspectionID}, opts...)
}

// EnqueueSendReminders enqueues an automatic reminder sweep. Sweeps are
// low priority and never retried; the next tick runs a fresh one.
func EnqueueSendReminders(ctx context.Context, q Enqueuer, opts ...EnqueueOption) (repository.Job, error) {
	opts = append([]EnqueueOption{WithPriority(PriorityLow), WithMaxAttempts(1)}, opts...)
	return EnqueueJob(ctx, q, JobTypeSendReminders, SendRemindersPayload{RequestedAt: time.Now().UTC()}, opts...)
}
