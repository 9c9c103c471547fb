// Package service contains the business logic layer.
//
// This file implements the client service: registering buildings, keeping
// their floor structure consistent, and scheduling their next inspection.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/DukeRupert/fireaudit/internal/cache"
	"github.com/DukeRupert/fireaudit/internal/compliance"
	"github.com/DukeRupert/fireaudit/internal/domain"
	"github.com/DukeRupert/fireaudit/internal/repository"
	"github.com/DukeRupert/fireaudit/internal/schedule"
	"github.com/google/uuid"
)

// =============================================================================
// Interface Definition
// =============================================================================

// ClientService defines the interface for client-related operations.
type ClientService interface {
	// Create registers a client. Floor labels are generated from the
	// structure counts. Returns a *domain.ValidationError for invalid input.
	Create(ctx context.Context, params domain.CreateClientParams) (*domain.Client, error)

	// GetByID retrieves a client annotated with its scheduling status.
	// Returns domain.ENOTFOUND if the client does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)

	// List retrieves a page of clients ordered by name.
	List(ctx context.Context, params domain.ListClientsParams) (*domain.ListClientsResult, error)

	// Update replaces a client's details and structure. Floor labels are
	// regenerated and refuge floors pruned to labels that still exist.
	Update(ctx context.Context, params domain.UpdateClientParams) (*domain.Client, error)

	// SetNextInspection overrides the scheduled date; nil unschedules.
	SetNextInspection(ctx context.Context, id uuid.UUID, date *time.Time) error
}

// =============================================================================
// Implementation
// =============================================================================

type clientService struct {
	store  repository.Store
	cache  cache.Cache
	clock  schedule.Clock
	loc    *time.Location
	logger *slog.Logger
}

// NewClientService creates a new ClientService. loc decides which calendar
// day "today" is when classifying due dates.
func NewClientService(
	store repository.Store,
	c cache.Cache,
	clock schedule.Clock,
	loc *time.Location,
	logger *slog.Logger,
) ClientService {
	return &clientService{
		store:  store,
		cache:  c,
		clock:  clock,
		loc:    loc,
		logger: logger,
	}
}

// =============================================================================
// Create
// =============================================================================

func (s *clientService) Create(ctx context.Context, params domain.CreateClientParams) (*domain.Client, error) {
	const op = "client.create"

	if err := validateClient(op, params.Name, params.Address, params.Phone, params.Email, params.Type); err != nil {
		return nil, err
	}

	structure, err := s.encodeStructure(op, params.Type, params.Structure)
	if err != nil {
		return nil, err
	}

	var next sql.NullTime
	if params.NextInspectionDate != nil {
		next = sql.NullTime{Time: civilDate(*params.NextInspectionDate, time.UTC), Valid: true}
	}

	row, err := s.store.CreateClient(ctx, repository.CreateClientParams{
		Name:               strings.TrimSpace(params.Name),
		Address:            strings.TrimSpace(params.Address),
		Phone:              strings.TrimSpace(params.Phone),
		Email:              strings.TrimSpace(params.Email),
		Type:               string(params.Type),
		Structure:          structure,
		NextInspectionDate: next,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to create client")
	}

	client, err := s.toClient(row)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to decode client")
	}

	invalidateDashboard(ctx, s.cache, s.logger)

	s.logger.Info("client created",
		"client_id", client.ID,
		"type", client.Type,
		"floors", len(client.Structure.FloorLabels),
	)

	return client, nil
}

// =============================================================================
// GetByID
// =============================================================================

func (s *clientService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	const op = "client.get"

	row, err := s.store.GetClient(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "client", id.String())
		}
		return nil, domain.Internal(err, op, "failed to get client")
	}

	client, err := s.toClient(row)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to decode client")
	}
	return client, nil
}

// =============================================================================
// List
// =============================================================================

func (s *clientService) List(ctx context.Context, params domain.ListClientsParams) (*domain.ListClientsResult, error) {
	const op = "client.list"

	limit, offset := normalizePage(params.Limit, params.Offset)

	total, err := s.store.CountClients(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to count clients")
	}

	rows, err := s.store.ListClients(ctx, repository.ListClientsParams{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list clients")
	}

	clients := make([]domain.Client, 0, len(rows))
	for _, row := range rows {
		client, err := s.toClient(row)
		if err != nil {
			return nil, domain.Internal(err, op, "failed to decode client")
		}
		clients = append(clients, *client)
	}

	return &domain.ListClientsResult{
		Clients: clients,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}, nil
}

// =============================================================================
// Update
// =============================================================================

func (s *clientService) Update(ctx context.Context, params domain.UpdateClientParams) (*domain.Client, error) {
	const op = "client.update"

	if err := validateClient(op, params.Name, params.Address, params.Phone, params.Email, params.Type); err != nil {
		return nil, err
	}

	structure, err := s.encodeStructure(op, params.Type, params.Structure)
	if err != nil {
		return nil, err
	}

	row, err := s.store.UpdateClient(ctx, repository.UpdateClientParams{
		ID:        params.ID,
		Name:      strings.TrimSpace(params.Name),
		Address:   strings.TrimSpace(params.Address),
		Phone:     strings.TrimSpace(params.Phone),
		Email:     strings.TrimSpace(params.Email),
		Type:      string(params.Type),
		Structure: structure,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "client", params.ID.String())
		}
		return nil, domain.Internal(err, op, "failed to update client")
	}

	client, err := s.toClient(row)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to decode client")
	}

	invalidateDashboard(ctx, s.cache, s.logger)

	s.logger.Info("client updated", "client_id", client.ID)
	return client, nil
}

// =============================================================================
// SetNextInspection
// =============================================================================

func (s *clientService) SetNextInspection(ctx context.Context, id uuid.UUID, date *time.Time) error {
	const op = "client.set_next_inspection"

	var next sql.NullTime
	if date != nil {
		next = sql.NullTime{Time: civilDate(*date, time.UTC), Valid: true}
	}

	n, err := s.store.UpdateClientNextInspection(ctx, repository.UpdateClientNextInspectionParams{
		ID:                 id,
		NextInspectionDate: next,
	})
	if err != nil {
		return domain.Internal(err, op, "failed to update next inspection date")
	}
	if n == 0 {
		return domain.NotFound(op, "client", id.String())
	}

	invalidateDashboard(ctx, s.cache, s.logger)

	s.logger.Info("next inspection date set", "client_id", id, "date", date)
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

func (s *clientService) toClient(row repository.Client) (*domain.Client, error) {
	client, err := rowToClient(row, s.loc)
	if err != nil {
		return nil, err
	}
	client.SchedulingStatus = schedule.StatusOf(client.NextInspectionDate, s.clock.Now().In(s.loc))
	return client, nil
}

// encodeStructure normalizes the structure for the client type and encodes it
// for storage.
func (s *clientService) encodeStructure(op string, t domain.ClientType, in domain.Structure) (json.RawMessage, error) {
	if in.Basements < 0 || in.Podiums < 0 || in.Floors < 0 {
		return nil, domain.NewValidationError(op, "structure", "Floor counts must not be negative")
	}

	normalized := compliance.NormalizeStructure(t, in)
	raw, err := json.Marshal(normalized)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to encode structure")
	}
	return raw, nil
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s-]{10,}$`)
)

// minPhoneDigits is the shortest accepted phone number, counting digits only.
const minPhoneDigits = 10

func validateClient(op, name, address, phone, email string, t domain.ClientType) error {
	ve := &domain.ValidationError{Op: op}

	name = strings.TrimSpace(name)
	switch {
	case name == "":
		ve.Add("name", "Please enter the client name")
	case len(name) > 255:
		ve.Add("name", "Name must be 255 characters or less")
	}
	if strings.TrimSpace(address) == "" {
		ve.Add("address", "Please enter the full address")
	}
	if !validPhone(phone) {
		ve.Add("phone", "Please enter a valid phone number (min 10 digits)")
	}
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		ve.Add("email", "Please enter a valid email address")
	}
	if !t.IsValid() {
		ve.Add("type", "Client type must be Society/Residential or Office/Store")
	}

	return ve.OrNil()
}

func validPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if !phonePattern.MatchString(phone) {
		return false
	}
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= minPhoneDigits
}

// Page size bounds for list operations.
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func normalizePage(limit, offset int32) (int32, int32) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
