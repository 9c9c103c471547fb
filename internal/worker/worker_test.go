package worker

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/fireaudit/internal/repository"
)

var jobColumns = []string{
	"id", "job_type", "payload", "status", "priority", "attempts", "max_attempts",
	"error_message", "scheduled_at", "started_at", "completed_at", "created_at",
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubHandler struct {
	jobType string
	err     error
	got     []byte
}

func (h *stubHandler) Type() string { return h.jobType }

func (h *stubHandler) Handle(_ context.Context, payload []byte) error {
	h.got = payload
	return h.err
}

func TestConfig_Validate(t *testing.T) {
	valid := DefaultConfig()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid default config", mutate: func(*Config) {}},
		{name: "concurrency too low", mutate: func(c *Config) { c.Concurrency = 0 }, wantErr: true},
		{name: "concurrency too high", mutate: func(c *Config) { c.Concurrency = 101 }, wantErr: true},
		{name: "poll interval too short", mutate: func(c *Config) { c.PollInterval = 500 * time.Millisecond }, wantErr: true},
		{name: "job timeout too short", mutate: func(c *Config) { c.JobTimeout = 0 }, wantErr: true},
		{name: "stale threshold too short", mutate: func(c *Config) { c.StaleJobThreshold = 30 * time.Second }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsPermanent(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"permanent error", NewPermanentError(context.Canceled), true},
		{"wrapped permanent error", fmt.Errorf("render: %w", NewPermanentError(errors.New("bad payload"))), true},
		{"regular error", context.Canceled, false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPermanent(tt.err))
		})
	}
}

func newMockWorker(t *testing.T) (*Worker, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	w, err := New(db, repository.New(db), DefaultConfig(), testLogger())
	require.NoError(t, err)
	return w, mock
}

func expectDequeue(mock sqlmock.Sqlmock, id uuid.UUID, jobType string, payload string) {
	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("name: DequeueJob")).
		WillReturnRows(sqlmock.NewRows(jobColumns).AddRow(
			id.String(), jobType, []byte(payload), "pending", 10, 0, 3, nil, now, nil, nil, now,
		))
	mock.ExpectExec(regexp.QuoteMeta("name: UpdateJobStarted")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

func TestProcessNextJob_Completed(t *testing.T) {
	w, mock := newMockWorker(t)
	h := &stubHandler{jobType: JobTypeGenerateReport}
	w.Register(h)

	id := uuid.New()
	expectDequeue(mock, id, JobTypeGenerateReport, `{"inspection_id":"x"}`)
	mock.ExpectExec(regexp.QuoteMeta("name: UpdateJobCompleted")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, w.processNextJob(context.Background(), testLogger()))
	assert.JSONEq(t, `{"inspection_id":"x"}`, string(h.got))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessNextJob_Failures(t *testing.T) {
	tests := []struct {
		name          string
		register      *stubHandler
		wantPermanent bool
	}{
		{"retryable", &stubHandler{jobType: JobTypeSendReminders, err: errors.New("smtp down")}, false},
		{"permanent", &stubHandler{jobType: JobTypeSendReminders, err: NewPermanentError(errors.New("bad payload"))}, true},
		{"no handler", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, mock := newMockWorker(t)
			if tt.register != nil {
				w.Register(tt.register)
			}

			id := uuid.New()
			expectDequeue(mock, id, JobTypeSendReminders, `{}`)
			mock.ExpectExec(regexp.QuoteMeta("name: UpdateJobFailed")).
				WithArgs(id, sqlmock.AnyArg(), tt.wantPermanent).
				WillReturnResult(sqlmock.NewResult(0, 1))

			err := w.processNextJob(context.Background(), testLogger())
			assert.ErrorContains(t, err, "execute job")
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProcessNextJob_Empty(t *testing.T) {
	w, mock := newMockWorker(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("name: DequeueJob")).
		WillReturnRows(sqlmock.NewRows(jobColumns))
	mock.ExpectRollback()

	err := w.processNextJob(context.Background(), testLogger())
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDrain_ProcessesBacklog(t *testing.T) {
	w, mock := newMockWorker(t)
	h := &stubHandler{jobType: JobTypeGenerateReport}
	w.Register(h)

	for range 2 {
		id := uuid.New()
		expectDequeue(mock, id, JobTypeGenerateReport, `{}`)
		mock.ExpectExec(regexp.QuoteMeta("name: UpdateJobCompleted")).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("name: DequeueJob")).
		WillReturnRows(sqlmock.NewRows(jobColumns))
	mock.ExpectRollback()

	w.drain(context.Background(), testLogger())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDrain_StopsWhenStopped(t *testing.T) {
	w, mock := newMockWorker(t)
	close(w.stopCh)

	w.drain(context.Background(), testLogger())

	require.NoError(t, mock.ExpectationsWereMet())
}

type fakeQueue struct {
	mu      sync.Mutex
	pending bool
	jobs    []repository.EnqueueJobParams
}

func (q *fakeQueue) EnqueueJob(_ context.Context, arg repository.EnqueueJobParams) (repository.Job, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, arg)
	return repository.Job{ID: uuid.New(), JobType: arg.JobType, Payload: arg.Payload}, nil
}

func (q *fakeQueue) HasPendingJob(_ context.Context, _ string) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending, nil
}

func (q *fakeQueue) count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

func TestEnqueueGenerateReport(t *testing.T) {
	q := &fakeQueue{}
	id := uuid.New()

	job, err := EnqueueGenerateReport(context.Background(), q, id, WithPriority(PriorityHigh))
	require.NoError(t, err)
	assert.Equal(t, JobTypeGenerateReport, job.JobType)

	require.Len(t, q.jobs, 1)
	params := q.jobs[0]
	assert.Equal(t, int32(PriorityHigh), params.Priority)
	assert.Equal(t, int32(3), params.MaxAttempts)

	var payload GenerateReportPayload
	require.NoError(t, json.Unmarshal(params.Payload, &payload))
	assert.Equal(t, id, payload.InspectionID)
}

func TestEnqueueSendReminders(t *testing.T) {
	q := &fakeQueue{}

	before := time.Now()
	_, err := EnqueueSendReminders(context.Background(), q, WithDelay(time.Hour))
	require.NoError(t, err)

	params := q.jobs[0]
	assert.Equal(t, JobTypeSendReminders, params.JobType)
	assert.Equal(t, int32(PriorityLow), params.Priority)
	assert.Equal(t, int32(1), params.MaxAttempts)
	assert.True(t, params.ScheduledAt.After(before.Add(59*time.Minute)))
}

func TestEnqueueIfIdle(t *testing.T) {
	enqueue := func(ctx context.Context, q Enqueuer) error {
		_, err := EnqueueSendReminders(ctx, q)
		return err
	}

	q := &fakeQueue{pending: true}
	require.NoError(t, enqueueIfIdle(context.Background(), q, JobTypeSendReminders, enqueue))
	assert.Zero(t, q.count())

	q.pending = false
	require.NoError(t, enqueueIfIdle(context.Background(), q, JobTypeSendReminders, enqueue))
	assert.Equal(t, 1, q.count())
}

func TestRunPeriodic_StopsOnCancel(t *testing.T) {
	q := &fakeQueue{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		RunPeriodic(ctx, q, JobTypeSendReminders, time.Hour, func(ctx context.Context, q Enqueuer) error {
			_, err := EnqueueSendReminders(ctx, q)
			return err
		}, testLogger())
		close(done)
	}()

	require.Eventually(t, func() bool { return q.count() == 1 }, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunPeriodic did not return after cancel")
	}
	assert.Equal(t, 1, q.count())
}
