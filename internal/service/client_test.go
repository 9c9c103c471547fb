package service

import (
	"context"
	"errors"
	"testing"

	"github.com/DukeRupert/fireaudit/internal/domain"
	"github.com/DukeRupert/fireaudit/internal/schedule"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClientService(store *fakeStore, c *memCache) ClientService {
	return NewClientService(store, c, testClock(), testLoc, testLogger())
}

func validCreateParams() domain.CreateClientParams {
	return domain.CreateClientParams{
		Name:    "Sea Breeze CHS",
		Address: "12 Marine Drive, Mumbai",
		Phone:   "+91 98200-12345",
		Email:   "secretary@seabreeze.example",
		Type:    domain.ClientTypeResidential,
		Structure: domain.Structure{
			Basements:     1,
			Podiums:       1,
			Floors:        2,
			Rooms:         []string{"Pump Room", "Lift Room", "Pump Room"},
			Systems:       []string{domain.SystemHydrantValve},
			HasRefugeArea: true,
			RefugeFloors:  []string{"Floor 2", "B1", "Floor 9"},
		},
	}
}

func TestClientService_Create(t *testing.T) {
	store, c := newFakeStore(), newMemCache()
	svc := newTestClientService(store, c)

	client, err := svc.Create(context.Background(), validCreateParams())
	require.NoError(t, err)

	assert.Equal(t, "Sea Breeze CHS", client.Name)
	assert.Equal(t, []string{"B1", "Ground", "P1", "Floor 2", "Floor 3", "Terrace"}, client.Structure.FloorLabels)
	assert.Equal(t, []string{"Floor 2"}, client.Structure.RefugeFloors, "refuge floors pruned to existing residential labels")
	assert.Equal(t, []string{"Pump Room", "Lift Room"}, client.Structure.Rooms)
	assert.Nil(t, client.NextInspectionDate)
	assert.Equal(t, schedule.StatusNone, client.SchedulingStatus)
	assert.Equal(t, 1, c.deletes, "dashboard invalidated")
}

func TestClientService_Create_Office(t *testing.T) {
	svc := newTestClientService(newFakeStore(), newMemCache())

	params := validCreateParams()
	params.Type = domain.ClientTypeOffice
	params.NextInspectionDate = ptr(testNow.AddDate(0, 0, 3))

	client, err := svc.Create(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, []string{"Ground"}, client.Structure.FloorLabels)
	assert.False(t, client.Structure.HasRefugeArea)
	assert.Empty(t, client.Structure.RefugeFloors)
	require.NotNil(t, client.NextInspectionDate)
	assert.Equal(t, "2024-03-18", client.NextInspectionDate.Format("2006-01-02"))
	assert.Equal(t, schedule.StatusUpcoming, client.SchedulingStatus)
}

func TestClientService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*domain.CreateClientParams)
		field   string
		message string
	}{
		{
			name:    "missing name",
			modify:  func(p *domain.CreateClientParams) { p.Name = "  " },
			field:   "name",
			message: "Please enter the client name",
		},
		{
			name:    "missing address",
			modify:  func(p *domain.CreateClientParams) { p.Address = "" },
			field:   "address",
			message: "Please enter the full address",
		},
		{
			name:    "short phone",
			modify:  func(p *domain.CreateClientParams) { p.Phone = "98200 123" },
			field:   "phone",
			message: "Please enter a valid phone number (min 10 digits)",
		},
		{
			name:    "phone with letters",
			modify:  func(p *domain.CreateClientParams) { p.Phone = "98200abc12345" },
			field:   "phone",
			message: "Please enter a valid phone number (min 10 digits)",
		},
		{
			name:    "phone padded with separators",
			modify:  func(p *domain.CreateClientParams) { p.Phone = "98-20-0-1-2" },
			field:   "phone",
			message: "Please enter a valid phone number (min 10 digits)",
		},
		{
			name:    "bad email",
			modify:  func(p *domain.CreateClientParams) { p.Email = "secretary@seabreeze" },
			field:   "email",
			message: "Please enter a valid email address",
		},
		{
			name:   "unknown type",
			modify: func(p *domain.CreateClientParams) { p.Type = "Warehouse" },
			field:  "type",
		},
		{
			name:   "negative floors",
			modify: func(p *domain.CreateClientParams) { p.Structure.Floors = -1 },
			field:  "structure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			svc := newTestClientService(store, newMemCache())

			params := validCreateParams()
			tt.modify(&params)

			_, err := svc.Create(context.Background(), params)
			require.Error(t, err)
			assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			require.Contains(t, ve.Fields, tt.field)
			if tt.message != "" {
				assert.Equal(t, tt.message, ve.Fields[tt.field])
			}

			n, _ := store.CountClients(context.Background())
			assert.Zero(t, n, "nothing stored")
		})
	}
}

func TestClientService_GetByID(t *testing.T) {
	store := newFakeStore()
	svc := newTestClientService(store, newMemCache())

	overdue := day(2024, 3, 1)
	row := seedClient(store, "Harbour View", &overdue)

	client, err := svc.GetByID(context.Background(), row.ID)
	require.NoError(t, err)
	assert.Equal(t, "Harbour View", client.Name)
	assert.Equal(t, schedule.StatusUrgent, client.SchedulingStatus)
	assert.Equal(t, testLoc, client.NextInspectionDate.Location(), "dates are read in the service location")
	assert.Equal(t, 1, client.NextInspectionDate.Day())

	_, err = svc.GetByID(context.Background(), uuid.New())
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestClientService_List(t *testing.T) {
	store := newFakeStore()
	svc := newTestClientService(store, newMemCache())

	seedClient(store, "Charlie", ptr(day(2024, 3, 15)))
	seedClient(store, "Alpha", nil)
	seedClient(store, "Bravo", ptr(day(2024, 3, 10)))

	result, err := svc.List(context.Background(), domain.ListClientsParams{Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.Total)
	assert.True(t, result.HasMore())
	require.Len(t, result.Clients, 2)
	assert.Equal(t, "Alpha", result.Clients[0].Name)
	assert.Equal(t, schedule.StatusNone, result.Clients[0].SchedulingStatus)
	assert.Equal(t, "Bravo", result.Clients[1].Name)
	assert.Equal(t, schedule.StatusPending, result.Clients[1].SchedulingStatus)

	result, err = svc.List(context.Background(), domain.ListClientsParams{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, result.Clients, 1)
	assert.Equal(t, schedule.StatusDueToday, result.Clients[0].SchedulingStatus)
}

func TestClientService_List_DefaultPage(t *testing.T) {
	svc := newTestClientService(newFakeStore(), newMemCache())

	result, err := svc.List(context.Background(), domain.ListClientsParams{Limit: 500, Offset: -3})
	require.NoError(t, err)
	assert.Equal(t, int32(maxPageSize), result.Limit)
	assert.Equal(t, int32(0), result.Offset)
	assert.Empty(t, result.Clients)
}

func TestClientService_Update(t *testing.T) {
	store, c := newFakeStore(), newMemCache()
	svc := newTestClientService(store, c)
	row := seedClient(store, "Harbour View", nil)

	client, err := svc.Update(context.Background(), domain.UpdateClientParams{
		ID:      row.ID,
		Name:    "Harbour View CHS",
		Address: row.Address,
		Phone:   row.Phone,
		Email:   row.Email,
		Type:    domain.ClientTypeResidential,
		Structure: domain.Structure{
			Floors:        1,
			FloorLabels:   []string{"ignored"},
			HasRefugeArea: true,
			RefugeFloors:  []string{"Floor 2", "Terrace"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Harbour View CHS", client.Name)
	assert.Equal(t, []string{"Ground", "Floor 1", "Terrace"}, client.Structure.FloorLabels)
	assert.Equal(t, []string{"Terrace"}, client.Structure.RefugeFloors)
	assert.Equal(t, 1, c.deletes)

	_, err = svc.Update(context.Background(), domain.UpdateClientParams{
		ID:      uuid.New(),
		Name:    "Ghost",
		Address: "Nowhere",
		Phone:   "0000000000",
		Email:   "ghost@example.com",
		Type:    domain.ClientTypeOffice,
	})
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestClientService_SetNextInspection(t *testing.T) {
	store, c := newFakeStore(), newMemCache()
	svc := newTestClientService(store, c)
	row := seedClient(store, "Harbour View", nil)

	require.NoError(t, svc.SetNextInspection(context.Background(), row.ID, ptr(testNow.AddDate(0, 0, 30))))
	got, err := svc.GetByID(context.Background(), row.ID)
	require.NoError(t, err)
	require.NotNil(t, got.NextInspectionDate)
	assert.Equal(t, "2024-04-14", got.NextInspectionDate.Format("2006-01-02"))

	require.NoError(t, svc.SetNextInspection(context.Background(), row.ID, nil))
	got, err = svc.GetByID(context.Background(), row.ID)
	require.NoError(t, err)
	assert.Nil(t, got.NextInspectionDate)
	assert.Equal(t, 2, c.deletes)

	err = svc.SetNextInspection(context.Background(), uuid.New(), nil)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}
