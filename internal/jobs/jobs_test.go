package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DukeRupert/fireaudit/internal/domain"
	"github.com/DukeRupert/fireaudit/internal/service"
	"github.com/DukeRupert/fireaudit/internal/storage"
	"github.com/DukeRupert/fireaudit/internal/worker"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeReports struct {
	generated []uuid.UUID
	err       error
	urlErr    error
}

func (f *fakeReports) PrepareReportData(ctx context.Context, id uuid.UUID) (*domain.ReportData, error) {
	return nil, errors.New("not used")
}

func (f *fakeReports) Generate(ctx context.Context, id uuid.UUID) (*service.GeneratedReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.generated = append(f.generated, id)
	return &service.GeneratedReport{
		Report: &domain.Report{InspectionID: id},
		Data: &domain.ReportData{
			Client: domain.Client{Name: "Harbour View", Email: "office@example.com"},
		},
	}, nil
}

func (f *fakeReports) Open(ctx context.Context, id uuid.UUID, format domain.ReportFormat) (io.ReadCloser, storage.ObjectInfo, error) {
	return nil, storage.ObjectInfo{}, errors.New("not used")
}

func (f *fakeReports) URL(ctx context.Context, id uuid.UUID, format domain.ReportFormat) (string, error) {
	if f.urlErr != nil {
		return "", f.urlErr
	}
	return "https://files.example/" + id.String() + "." + string(format), nil
}

type fakeNotifications struct {
	reportReady []string
	sweeps      int
	err         error
}

func (f *fakeNotifications) SendManualReminder(ctx context.Context, id uuid.UUID) (*domain.NotificationLog, error) {
	return nil, errors.New("not used")
}

func (f *fakeNotifications) RunAutoReminders(ctx context.Context) (*domain.ReminderRunResult, error) {
	f.sweeps++
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ReminderRunResult{Candidates: 3, Sent: 2, Skipped: 1}, nil
}

func (f *fakeNotifications) SendReportReady(ctx context.Context, client *domain.Client, id uuid.UUID, url string) error {
	f.reportReady = append(f.reportReady, url)
	return f.err
}

func (f *fakeNotifications) ListByClient(ctx context.Context, id uuid.UUID, limit int32) ([]domain.NotificationLog, error) {
	return nil, nil
}

func TestGenerateReportHandler(t *testing.T) {
	id := uuid.New()
	payload := []byte(`{"inspection_id":"` + id.String() + `"}`)

	tests := []struct {
		name          string
		payload       []byte
		reports       *fakeReports
		notifications *fakeNotifications
		notify        bool
		wantErr       bool
		permanent     bool
		wantEmails    int
	}{
		{
			name:          "generates and emails",
			payload:       payload,
			reports:       &fakeReports{},
			notifications: &fakeNotifications{},
			notify:        true,
			wantEmails:    1,
		},
		{
			name:          "emails disabled",
			payload:       payload,
			reports:       &fakeReports{},
			notifications: &fakeNotifications{},
		},
		{
			name:          "email failure does not fail the job",
			payload:       payload,
			reports:       &fakeReports{},
			notifications: &fakeNotifications{err: errors.New("smtp down")},
			notify:        true,
			wantEmails:    1,
		},
		{
			name:          "link failure skips the email",
			payload:       payload,
			reports:       &fakeReports{urlErr: errors.New("presign failed")},
			notifications: &fakeNotifications{},
			notify:        true,
		},
		{
			name:          "malformed payload",
			payload:       []byte(`{not json`),
			reports:       &fakeReports{},
			notifications: &fakeNotifications{},
			wantErr:       true,
			permanent:     true,
		},
		{
			name:          "missing inspection id",
			payload:       []byte(`{}`),
			reports:       &fakeReports{},
			notifications: &fakeNotifications{},
			wantErr:       true,
			permanent:     true,
		},
		{
			name:          "deleted inspection",
			payload:       payload,
			reports:       &fakeReports{err: domain.NotFound("report.prepare", "inspection", id.String())},
			notifications: &fakeNotifications{},
			wantErr:       true,
			permanent:     true,
		},
		{
			name:          "storage failure is retried",
			payload:       payload,
			reports:       &fakeReports{err: domain.Internal(errors.New("timeout"), "report.generate", "failed to store pdf report")},
			notifications: &fakeNotifications{},
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewGenerateReportHandler(tt.reports, tt.notifications, tt.notify, testLogger())
			assert.Equal(t, worker.JobTypeGenerateReport, h.Type())

			err := h.Handle(context.Background(), tt.payload)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.permanent, worker.IsPermanent(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []uuid.UUID{id}, tt.reports.generated)
			assert.Len(t, tt.notifications.reportReady, tt.wantEmails)
		})
	}
}

func TestSendRemindersHandler(t *testing.T) {
	n := &fakeNotifications{}
	h := NewSendRemindersHandler(n, testLogger())
	assert.Equal(t, worker.JobTypeSendReminders, h.Type())

	require.NoError(t, h.Handle(context.Background(), []byte(`{"requested_at":"2024-03-15T04:30:00Z"}`)))
	assert.Equal(t, 1, n.sweeps)

	n.err = errors.New("connection reset")
	err := h.Handle(context.Background(), nil)
	require.Error(t, err)
	assert.False(t, worker.IsPermanent(err))
}
