package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DukeRupert/fireaudit/internal/compliance"
	"github.com/DukeRupert/fireaudit/internal/domain"
	"github.com/DukeRupert/fireaudit/internal/worker"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInspectionService(store *fakeStore, c *memCache) InspectionService {
	return NewInspectionService(store, c, testClock(), testLoc, testLogger())
}

func TestInspectionService_Start(t *testing.T) {
	store := newFakeStore()
	svc := newTestInspectionService(store, newMemCache())
	row := seedClient(store, "Harbour View", nil)

	draft, err := svc.Start(context.Background(), row.ID)
	require.NoError(t, err)

	assert.Equal(t, "Harbour View", draft.Client.Name)
	require.Len(t, draft.Findings.Floors, 6)
	assert.Equal(t, "B1", draft.Findings.Floors[0].Name)
	assert.NotNil(t, draft.Findings.Floors[0].Hydrant)
	assert.NotNil(t, draft.Findings.Floors[3].RefugeArea, "Floor 2 is a refuge floor")
	assert.Nil(t, draft.Findings.Floors[0].Sprinkler)
	assert.Len(t, draft.Findings.Pumps, 4)
	assert.Equal(t, []string{
		compliance.PumpMainHydrant, compliance.PumpJockeyHydrant, compliance.PumpBooster, compliance.PumpDiesel,
	}, compliance.UnresolvedPumps(draft.Findings))

	_, err = svc.Start(context.Background(), uuid.New())
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestInspectionService_Preview(t *testing.T) {
	svc := newTestInspectionService(newFakeStore(), newMemCache())

	f := passingFindings()
	preview := svc.Preview(f)
	assert.Equal(t, 100, preview.Score)
	assert.Zero(t, preview.CriticalCount)
	assert.Equal(t, domain.InspectionStatusCompleted, preview.Status)
	assert.Contains(t, preview.Narrative, "FINAL CONCLUSION: COMPLIANT")
	assert.Equal(t, "Inspection completed. Score: 100%. 0 critical issues identified.", preview.ResultLine)

	f.Pumps[0].Status = domain.PumpNotWorking
	preview = svc.Preview(f)
	assert.Less(t, preview.Score, 100)
	assert.Equal(t, 1, preview.CriticalCount)
	assert.Equal(t, domain.InspectionStatusActionRequired, preview.Status)
}

func TestInspectionService_Submit(t *testing.T) {
	store, c := newFakeStore(), newMemCache()
	svc := newTestInspectionService(store, c)
	row := seedClient(store, "Harbour View", ptr(day(2024, 3, 1)))
	inspector := uuid.New()

	findings := passingFindings()
	findings.Floors[1].Extinguisher = domain.ExtinguisherCheck{
		Status:   domain.ExtinguisherExpired,
		PhotoURL: "https://photos.example/ground.jpg",
	}

	result, err := svc.Submit(context.Background(), domain.SubmitInspectionParams{
		ClientID:    row.ID,
		InspectorID: inspector,
		Findings:    findings,
	})
	require.NoError(t, err)

	want := compliance.Compute(findings)
	insp := result.Inspection
	assert.Equal(t, want.Score, insp.ComplianceScore)
	assert.Equal(t, want.CriticalCount, insp.CriticalIssuesCount)
	assert.Equal(t, want.Status(), insp.Status)
	assert.Equal(t, compliance.ResultLine(want), insp.Summary)
	assert.Equal(t, inspector, insp.InspectorID)

	// 15 Mar + 3 months is Saturday 15 Jun, moved to Monday.
	assert.Equal(t, "2024-06-17", result.NextInspectionDate.Format("2006-01-02"))
	assert.True(t, result.ReportJobQueued)

	stored := store.clients[row.ID]
	require.True(t, stored.NextInspectionDate.Valid)
	assert.Equal(t, day(2024, 6, 17), stored.NextInspectionDate.Time)

	require.Len(t, store.jobs, 1)
	assert.Equal(t, worker.JobTypeGenerateReport, store.jobs[0].JobType)
	var payload worker.GenerateReportPayload
	require.NoError(t, json.Unmarshal(store.jobs[0].Payload, &payload))
	assert.Equal(t, insp.ID, payload.InspectionID)

	assert.Equal(t, 1, c.deletes, "dashboard invalidated")

	got, err := svc.GetByID(context.Background(), insp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Harbour View", got.ClientName)
	assert.Equal(t, domain.ExtinguisherExpired, got.Findings.Floors[1].Extinguisher.Status)
}

func TestInspectionService_Submit_ReconcilesFloors(t *testing.T) {
	store := newFakeStore()
	svc := newTestInspectionService(store, newMemCache())
	row := seedClient(store, "Harbour View", nil)

	current := passingFindings()
	var wantNames []string
	for _, floor := range current.Floors {
		wantNames = append(wantNames, floor.Name)
	}

	// Draft taken against an older layout: Terrace missing, Floor 9 no longer exists.
	draft := passingFindings()
	last := len(draft.Floors) - 1
	terrace := draft.Floors[last].Name
	draft.Floors = append(draft.Floors[:last:last], domain.FloorFinding{
		Name: "Floor 9",
		Extinguisher: domain.ExtinguisherCheck{
			Status:   domain.ExtinguisherExpired,
			PhotoURL: "https://photos.example/floor9.jpg",
		},
	})

	result, err := svc.Submit(context.Background(), domain.SubmitInspectionParams{
		ClientID:    row.ID,
		InspectorID: uuid.New(),
		Findings:    draft,
	})
	require.NoError(t, err)

	var gotNames []string
	for _, floor := range result.Inspection.Findings.Floors {
		gotNames = append(gotNames, floor.Name)
	}
	assert.Equal(t, wantNames, gotNames)

	added := result.Inspection.Findings.Floors[len(gotNames)-1]
	assert.Equal(t, terrace, added.Name)
	assert.Equal(t, domain.ExtinguisherOK, added.Extinguisher.Status)

	want := compliance.Compute(current)
	assert.Equal(t, want.Score, result.Inspection.ComplianceScore)
	assert.Equal(t, want.CriticalCount, result.Inspection.CriticalIssuesCount)
}

func TestInspectionService_Submit_Preconditions(t *testing.T) {
	tests := []struct {
		name   string
		params func(clientID uuid.UUID) domain.SubmitInspectionParams
		code   string
		field  string
	}{
		{
			name: "unresolved pump",
			params: func(id uuid.UUID) domain.SubmitInspectionParams {
				f := passingFindings()
				f.Pumps[2].Status = domain.PumpNotApplicable
				return domain.SubmitInspectionParams{ClientID: id, InspectorID: uuid.New(), Findings: f}
			},
			code:  domain.EINVALID,
			field: "pumps",
		},
		{
			name: "missing remarks",
			params: func(id uuid.UUID) domain.SubmitInspectionParams {
				f := passingFindings()
				f.Remarks = "   "
				return domain.SubmitInspectionParams{ClientID: id, InspectorID: uuid.New(), Findings: f}
			},
			code:  domain.EINVALID,
			field: "remarks",
		},
		{
			name: "failed item without photo",
			params: func(id uuid.UUID) domain.SubmitInspectionParams {
				f := passingFindings()
				f.Floors[0].Hydrant.Valve = domain.ValveLeaking
				return domain.SubmitInspectionParams{ClientID: id, InspectorID: uuid.New(), Findings: f}
			},
			code:  domain.EINVALID,
			field: "photos",
		},
		{
			name: "missing inspector",
			params: func(id uuid.UUID) domain.SubmitInspectionParams {
				return domain.SubmitInspectionParams{ClientID: id, Findings: passingFindings()}
			},
			code:  domain.EINVALID,
			field: "inspector_id",
		},
		{
			name: "unknown client",
			params: func(uuid.UUID) domain.SubmitInspectionParams {
				return domain.SubmitInspectionParams{ClientID: uuid.New(), InspectorID: uuid.New(), Findings: passingFindings()}
			},
			code: domain.ENOTFOUND,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			svc := newTestInspectionService(store, newMemCache())
			row := seedClient(store, "Harbour View", nil)

			_, err := svc.Submit(context.Background(), tt.params(row.ID))
			require.Error(t, err)
			assert.Equal(t, tt.code, domain.ErrorCode(err))

			if tt.field != "" {
				var ve *domain.ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Contains(t, ve.Fields, tt.field)
			}

			assert.Empty(t, store.inspections)
			assert.Empty(t, store.jobs)
			assert.False(t, store.clients[row.ID].NextInspectionDate.Valid)
		})
	}
}

func TestInspectionService_Submit_RollsBackOnEnqueueFailure(t *testing.T) {
	store := newFakeStore()
	store.errEnqueue = errors.New("queue unavailable")
	svc := newTestInspectionService(store, newMemCache())
	row := seedClient(store, "Harbour View", nil)

	_, err := svc.Submit(context.Background(), domain.SubmitInspectionParams{
		ClientID:    row.ID,
		InspectorID: uuid.New(),
		Findings:    passingFindings(),
	})
	require.Error(t, err)
	assert.Equal(t, domain.EINTERNAL, domain.ErrorCode(err))

	assert.Empty(t, store.inspections, "inspection rolled back")
	assert.False(t, store.clients[row.ID].NextInspectionDate.Valid, "next date rolled back")
}

func TestInspectionService_List(t *testing.T) {
	store := newFakeStore()
	svc := newTestInspectionService(store, newMemCache())
	a := seedClient(store, "Alpha", nil)
	b := seedClient(store, "Bravo", nil)

	for _, id := range []uuid.UUID{a.ID, b.ID, a.ID} {
		_, err := svc.Submit(context.Background(), domain.SubmitInspectionParams{
			ClientID:    id,
			InspectorID: uuid.New(),
			Findings:    passingFindings(),
		})
		require.NoError(t, err)
	}

	all, err := svc.List(context.Background(), domain.ListInspectionsParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)
	require.Len(t, all.Inspections, 3)
	assert.Equal(t, "Alpha", all.Inspections[0].ClientName, "newest first")
	assert.Equal(t, "Bravo", all.Inspections[1].ClientName)

	byClient, err := svc.List(context.Background(), domain.ListInspectionsParams{ClientID: &a.ID, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), byClient.Total)
	require.Len(t, byClient.Inspections, 1)
	assert.Equal(t, "Alpha", byClient.Inspections[0].ClientName)
	assert.True(t, byClient.HasMore())

	_, err = svc.List(context.Background(), domain.ListInspectionsParams{ClientID: ptr(uuid.New())})
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))

	_, err = svc.GetByID(context.Background(), uuid.New())
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}
