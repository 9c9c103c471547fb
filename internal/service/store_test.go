package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/DukeRupert/fireaudit/internal/repository"
	"github.com/google/uuid"
)

// fakeStore is an in-memory repository.Store. ExecTx restores a snapshot
// when the callback fails, so rollback behavior can be asserted.
type fakeStore struct {
	mu sync.Mutex
	state

	now time.Time

	// Injected failures.
	errEnqueue    error
	errCreateLog  error
	errListClient error
}

type state struct {
	clients       map[uuid.UUID]repository.Client
	inspections   []repository.Inspection
	notifications []repository.NotificationLog
	reports       map[uuid.UUID]repository.Report
	jobs          []repository.Job
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		state: state{
			clients: make(map[uuid.UUID]repository.Client),
			reports: make(map[uuid.UUID]repository.Report),
		},
		now: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
	}
}

func (s state) clone() state {
	c := state{
		clients:       make(map[uuid.UUID]repository.Client, len(s.clients)),
		inspections:   append([]repository.Inspection(nil), s.inspections...),
		notifications: append([]repository.NotificationLog(nil), s.notifications...),
		reports:       make(map[uuid.UUID]repository.Report, len(s.reports)),
		jobs:          append([]repository.Job(nil), s.jobs...),
	}
	for k, v := range s.clients {
		c.clients[k] = v
	}
	for k, v := range s.reports {
		c.reports[k] = v
	}
	return c
}

func (f *fakeStore) ExecTx(ctx context.Context, fn func(repository.Querier) error) error {
	f.mu.Lock()
	snapshot := f.state.clone()
	f.mu.Unlock()

	if err := fn(f); err != nil {
		f.mu.Lock()
		f.state = snapshot
		f.mu.Unlock()
		return err
	}
	return nil
}

// addClient seeds a client row directly.
func (f *fakeStore) addClient(c repository.Client) repository.Client {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Structure == nil {
		c.Structure = json.RawMessage(`{}`)
	}
	c.CreatedAt, c.UpdatedAt = f.now, f.now
	f.clients[c.ID] = c
	return c
}

// =============================================================================
// Clients
// =============================================================================

func (f *fakeStore) CountClients(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.clients)), nil
}

func (f *fakeStore) CreateClient(ctx context.Context, arg repository.CreateClientParams) (repository.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := repository.Client{
		ID:                 uuid.New(),
		Name:               arg.Name,
		Address:            arg.Address,
		Phone:              arg.Phone,
		Email:              arg.Email,
		Type:               arg.Type,
		Structure:          arg.Structure,
		NextInspectionDate: arg.NextInspectionDate,
		CreatedAt:          f.now,
		UpdatedAt:          f.now,
	}
	f.clients[c.ID] = c
	return c, nil
}

func (f *fakeStore) GetClient(ctx context.Context, id uuid.UUID) (repository.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clients[id]
	if !ok {
		return repository.Client{}, sql.ErrNoRows
	}
	return c, nil
}

func (f *fakeStore) sortedClients(keep func(repository.Client) bool, less func(a, b repository.Client) bool) []repository.Client {
	var out []repository.Client
	for _, c := range f.clients {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func byName(a, b repository.Client) bool { return a.Name < b.Name }

func byDueDate(a, b repository.Client) bool {
	if !a.NextInspectionDate.Time.Equal(b.NextInspectionDate.Time) {
		return a.NextInspectionDate.Time.Before(b.NextInspectionDate.Time)
	}
	return a.Name < b.Name
}

func (f *fakeStore) ListClients(ctx context.Context, arg repository.ListClientsParams) ([]repository.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errListClient != nil {
		return nil, f.errListClient
	}
	all := f.sortedClients(func(repository.Client) bool { return true }, byName)
	return page(all, arg.Limit, arg.Offset), nil
}

func (f *fakeStore) ListClientsDueBetween(ctx context.Context, arg repository.ListClientsDueBetweenParams) ([]repository.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errListClient != nil {
		return nil, f.errListClient
	}
	from, to := dateOnly(arg.FromDate), dateOnly(arg.ToDate)
	return f.sortedClients(func(c repository.Client) bool {
		if !c.NextInspectionDate.Valid {
			return false
		}
		d := dateOnly(c.NextInspectionDate.Time)
		return !d.Before(from) && !d.After(to)
	}, byDueDate), nil
}

func (f *fakeStore) ListScheduledClients(ctx context.Context) ([]repository.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errListClient != nil {
		return nil, f.errListClient
	}
	return f.sortedClients(func(c repository.Client) bool { return c.NextInspectionDate.Valid }, byDueDate), nil
}

func (f *fakeStore) UpdateClient(ctx context.Context, arg repository.UpdateClientParams) (repository.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clients[arg.ID]
	if !ok {
		return repository.Client{}, sql.ErrNoRows
	}
	c.Name, c.Address, c.Phone, c.Email, c.Type, c.Structure =
		arg.Name, arg.Address, arg.Phone, arg.Email, arg.Type, arg.Structure
	c.UpdatedAt = f.now
	f.clients[c.ID] = c
	return c, nil
}

func (f *fakeStore) UpdateClientNextInspection(ctx context.Context, arg repository.UpdateClientNextInspectionParams) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clients[arg.ID]
	if !ok {
		return 0, nil
	}
	c.NextInspectionDate = arg.NextInspectionDate
	f.clients[c.ID] = c
	return 1, nil
}

// =============================================================================
// Inspections
// =============================================================================

func (f *fakeStore) CountInspections(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.inspections)), nil
}

func (f *fakeStore) CountInspectionsByClient(ctx context.Context, clientID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, i := range f.inspections {
		if i.ClientID == clientID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) CreateInspection(ctx context.Context, arg repository.CreateInspectionParams) (repository.Inspection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := repository.Inspection{
		ID:                  uuid.New(),
		ClientID:            arg.ClientID,
		InspectorID:         arg.InspectorID,
		Status:              arg.Status,
		ComplianceScore:     arg.ComplianceScore,
		CriticalIssuesCount: arg.CriticalIssuesCount,
		Findings:            arg.Findings,
		Summary:             arg.Summary,
		CreatedAt:           f.now.Add(time.Duration(len(f.inspections)) * time.Minute),
	}
	f.inspections = append(f.inspections, i)
	return i, nil
}

func (f *fakeStore) GetInspection(ctx context.Context, id uuid.UUID) (repository.GetInspectionRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, i := range f.inspections {
		if i.ID == id {
			return repository.GetInspectionRow{
				ID:                  i.ID,
				ClientID:            i.ClientID,
				InspectorID:         i.InspectorID,
				Status:              i.Status,
				ComplianceScore:     i.ComplianceScore,
				CriticalIssuesCount: i.CriticalIssuesCount,
				Findings:            i.Findings,
				Summary:             i.Summary,
				CreatedAt:           i.CreatedAt,
				ClientName:          f.clients[i.ClientID].Name,
			}, nil
		}
	}
	return repository.GetInspectionRow{}, sql.ErrNoRows
}

func (f *fakeStore) newestInspections(keep func(repository.Inspection) bool) []repository.Inspection {
	var out []repository.Inspection
	for idx := len(f.inspections) - 1; idx >= 0; idx-- {
		if keep(f.inspections[idx]) {
			out = append(out, f.inspections[idx])
		}
	}
	return out
}

func (f *fakeStore) InspectionStats(ctx context.Context) (repository.InspectionStatsRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var row repository.InspectionStatsRow
	for _, i := range f.inspections {
		row.Total++
		switch i.Status {
		case "Completed":
			row.Completed++
		case "Action Required":
			row.ActionRequired++
			row.CriticalOpen += int64(i.CriticalIssuesCount)
		}
	}
	return row, nil
}

func (f *fakeStore) ListInspections(ctx context.Context, arg repository.ListInspectionsParams) ([]repository.ListInspectionsRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := page(f.newestInspections(func(repository.Inspection) bool { return true }), arg.Limit, arg.Offset)
	rows := make([]repository.ListInspectionsRow, 0, len(all))
	for _, i := range all {
		rows = append(rows, repository.ListInspectionsRow{
			ID:                  i.ID,
			ClientID:            i.ClientID,
			InspectorID:         i.InspectorID,
			Status:              i.Status,
			ComplianceScore:     i.ComplianceScore,
			CriticalIssuesCount: i.CriticalIssuesCount,
			Findings:            i.Findings,
			Summary:             i.Summary,
			CreatedAt:           i.CreatedAt,
			ClientName:          f.clients[i.ClientID].Name,
		})
	}
	return rows, nil
}

func (f *fakeStore) ListInspectionsByClient(ctx context.Context, arg repository.ListInspectionsByClientParams) ([]repository.Inspection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.newestInspections(func(i repository.Inspection) bool { return i.ClientID == arg.ClientID })
	return page(all, arg.Limit, arg.Offset), nil
}

// =============================================================================
// Notifications
// =============================================================================

func (f *fakeStore) CreateNotificationLog(ctx context.Context, arg repository.CreateNotificationLogParams) (repository.NotificationLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errCreateLog != nil {
		return repository.NotificationLog{}, f.errCreateLog
	}
	n := repository.NotificationLog{
		ID:           uuid.New(),
		ClientID:     arg.ClientID,
		InspectionID: arg.InspectionID,
		Type:         arg.Type,
		Recipient:    arg.Recipient,
		Message:      arg.Message,
		Status:       arg.Status,
		Metadata:     arg.Metadata,
		CreatedAt:    f.now,
	}
	f.notifications = append(f.notifications, n)
	return n, nil
}

func (f *fakeStore) HasNotificationForDate(ctx context.Context, arg repository.HasNotificationForDateParams) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.ClientID != arg.ClientID || n.Type != arg.Type || n.Status != "Sent" || !n.Metadata.Valid {
			continue
		}
		var meta struct {
			DueDate string `json:"due_date"`
		}
		if json.Unmarshal(n.Metadata.RawMessage, &meta) == nil && meta.DueDate == arg.DueDate {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ListNotificationLogsByClient(ctx context.Context, arg repository.ListNotificationLogsByClientParams) ([]repository.NotificationLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []repository.NotificationLog
	for idx := len(f.notifications) - 1; idx >= 0 && int32(len(out)) < arg.Limit; idx-- {
		if f.notifications[idx].ClientID == arg.ClientID {
			out = append(out, f.notifications[idx])
		}
	}
	return out, nil
}

// =============================================================================
// Reports
// =============================================================================

func (f *fakeStore) CreateReport(ctx context.Context, arg repository.CreateReportParams) (repository.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[arg.InspectionID]
	if !ok {
		r = repository.Report{ID: uuid.New(), InspectionID: arg.InspectionID}
	}
	r.PdfStorageKey, r.XlsxStorageKey, r.CreatedAt = arg.PdfStorageKey, arg.XlsxStorageKey, f.now
	f.reports[arg.InspectionID] = r
	return r, nil
}

func (f *fakeStore) GetReportByInspection(ctx context.Context, inspectionID uuid.UUID) (repository.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[inspectionID]
	if !ok {
		return repository.Report{}, sql.ErrNoRows
	}
	return r, nil
}

// =============================================================================
// Jobs
// =============================================================================

func (f *fakeStore) EnqueueJob(ctx context.Context, arg repository.EnqueueJobParams) (repository.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errEnqueue != nil {
		return repository.Job{}, f.errEnqueue
	}
	j := repository.Job{
		ID:          uuid.New(),
		JobType:     arg.JobType,
		Payload:     arg.Payload,
		Status:      "pending",
		Priority:    arg.Priority,
		MaxAttempts: arg.MaxAttempts,
		ScheduledAt: arg.ScheduledAt,
		CreatedAt:   f.now,
	}
	f.jobs = append(f.jobs, j)
	return j, nil
}

func (f *fakeStore) DequeueJob(ctx context.Context) (repository.Job, error) {
	return repository.Job{}, sql.ErrNoRows
}

func (f *fakeStore) HasPendingJob(ctx context.Context, jobType string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, j := range f.jobs {
		if j.JobType == jobType && j.Status == "pending" {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) RecoverStaleJobs(ctx context.Context, thresholdSeconds float64) (int64, error) {
	return 0, nil
}

func (f *fakeStore) UpdateJobCompleted(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeStore) UpdateJobFailed(ctx context.Context, arg repository.UpdateJobFailedParams) error {
	return nil
}

func (f *fakeStore) UpdateJobStarted(ctx context.Context, id uuid.UUID) error { return nil }

// =============================================================================
// Helpers
// =============================================================================

func page[T any](all []T, limit, offset int32) []T {
	if int(offset) >= len(all) {
		return nil
	}
	end := min(int(offset+limit), len(all))
	return all[offset:end]
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var _ repository.Store = (*fakeStore)(nil)
