package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/DukeRupert/fireaudit/internal/compliance"
	"github.com/DukeRupert/fireaudit/internal/domain"
	"github.com/DukeRupert/fireaudit/internal/repository"
	"github.com/DukeRupert/fireaudit/internal/schedule"
)

var (
	testLoc = time.FixedZone("IST", 5*60*60+30*60)

	// Friday 15 March 2024, 10:00 local.
	testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, testLoc)
)

func testClock() schedule.Clock {
	return schedule.ClockFunc(func() time.Time { return testNow })
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// day returns UTC midnight of a date, the way DATE columns come back.
func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// =============================================================================
// Cache
// =============================================================================

type memCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	deletes int
}

func newMemCache() *memCache {
	return &memCache{items: make(map[string][]byte)}
}

func (c *memCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dst)
}

func (c *memCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = data
	return nil
}

func (c *memCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
	c.deletes++
	return nil
}

// =============================================================================
// Email
// =============================================================================

type sentEmail struct {
	Kind       string
	To         string
	ClientName string
	Due        time.Time
	URL        string
}

type fakeEmail struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (e *fakeEmail) record(m sentEmail) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.sent = append(e.sent, m)
	return nil
}

func (e *fakeEmail) SendUpcomingInspectionEmail(ctx context.Context, to, clientName string, due time.Time) error {
	return e.record(sentEmail{Kind: "upcoming", To: to, ClientName: clientName, Due: due})
}

func (e *fakeEmail) SendManualReminderEmail(ctx context.Context, to, clientName string, due time.Time) error {
	return e.record(sentEmail{Kind: "manual", To: to, ClientName: clientName, Due: due})
}

func (e *fakeEmail) SendReportReadyEmail(ctx context.Context, to, clientName, reportURL string) error {
	return e.record(sentEmail{Kind: "report", To: to, ClientName: clientName, URL: reportURL})
}

// =============================================================================
// Fixtures
// =============================================================================

func residentialStructure() domain.Structure {
	return compliance.NormalizeStructure(domain.ClientTypeResidential, domain.Structure{
		Basements:     1,
		Floors:        3,
		Rooms:         []string{"Pump Room"},
		Systems:       []string{domain.SystemHydrantValve, domain.SystemFireAlarm},
		HasRefugeArea: true,
		RefugeFloors:  []string{"Floor 2"},
	})
}

// seedClient stores a residential client with an optional next date.
func seedClient(store *fakeStore, name string, next *time.Time) repository.Client {
	raw, _ := json.Marshal(residentialStructure())
	row := repository.Client{
		Name:      name,
		Address:   "12 Marine Drive, Mumbai",
		Phone:     "+91 98200 12345",
		Email:     "office@example.com",
		Type:      string(domain.ClientTypeResidential),
		Structure: raw,
	}
	if next != nil {
		row.NextInspectionDate.Time, row.NextInspectionDate.Valid = *next, true
	}
	return store.addClient(row)
}

// passingFindings is a submittable record with every pump resolved.
func passingFindings() domain.Findings {
	f := compliance.NewFindings(residentialStructure())
	for i := range f.Pumps {
		f.Pumps[i].Status = domain.PumpAutoWorking
	}
	f.Remarks = "All equipment inspected."
	return f
}

func ptr[T any](v T) *T { return &v }
