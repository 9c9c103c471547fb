// Package domain contains core business types and interfaces.
//
// This file defines the Client domain type: a building whose fire-safety
// equipment is inspected on a recurring schedule.
package domain

import (
	"slices"
	"time"

	"github.com/DukeRupert/fireaudit/internal/schedule"
	"github.com/google/uuid"
)

// =============================================================================
// Client Type
// =============================================================================

// ClientType distinguishes multi-storey residential societies from single
// level offices and stores.
type ClientType string

const (
	ClientTypeResidential ClientType = "Society/Residential"
	ClientTypeOffice      ClientType = "Office/Store"
)

// IsValid returns true if the type is a recognized value.
func (t ClientType) IsValid() bool {
	return t == ClientTypeResidential || t == ClientTypeOffice
}

// =============================================================================
// Installed Systems and Rooms
// =============================================================================

// Optional fire-safety system names. Clients may also carry custom system
// names; those are scored with the default system weight.
const (
	SystemFireAlarm    = "Fire Alarm System"
	SystemHydrantValve = "Hydrant Valve"
	SystemHoseReel     = "Hose Reel Drum"
	SystemSprinkler    = "Sprinkler System"
)

// OptionalSystems lists the systems offered when registering a client.
var OptionalSystems = []string{
	SystemFireAlarm,
	SystemHydrantValve,
	SystemHoseReel,
	SystemSprinkler,
}

// DefaultRooms lists the rooms pre-selected when registering a client.
var DefaultRooms = []string{
	"Lift Room",
	"Meter Room",
	"Pump Room",
	"Electrical Panel / Electrical Room",
	"Server Room",
}

// =============================================================================
// Structure
// =============================================================================

// Structure describes the physical layout of a client building.
//
// FloorLabels is derived from the three counts and must never be edited
// independently of them; see compliance.NormalizeStructure.
type Structure struct {
	Basements     int      `json:"basements"`
	Podiums       int      `json:"podiums"`
	Floors        int      `json:"floors"`
	FloorLabels   []string `json:"structure_map"`
	Rooms         []string `json:"rooms"`
	Systems       []string `json:"systems"`
	HasRefugeArea bool     `json:"has_refuge_area"`
	RefugeFloors  []string `json:"refuge_floors,omitempty"`
}

// HasSystem returns true if the named system is installed.
func (s Structure) HasSystem(name string) bool {
	return slices.Contains(s.Systems, name)
}

// HasHydrant returns true if either half of the hydrant system is installed.
func (s Structure) HasHydrant() bool {
	return s.HasSystem(SystemHydrantValve) || s.HasSystem(SystemHoseReel)
}

// HasSprinkler returns true if a sprinkler system is installed.
func (s Structure) HasSprinkler() bool {
	return s.HasSystem(SystemSprinkler)
}

// IsRefugeFloor returns true if the floor label is a designated refuge area.
func (s Structure) IsRefugeFloor(label string) bool {
	return slices.Contains(s.RefugeFloors, label)
}

// =============================================================================
// Client Domain Type
// =============================================================================

// Client represents a building registered for recurring fire-safety inspections.
type Client struct {
	ID                 uuid.UUID  // Unique identifier
	Name               string     // Building or society name
	Address            string     // Full postal address
	Phone              string     // Contact phone
	Email              string     // Contact email (reminder recipient)
	Type               ClientType // Residential society or office/store
	Structure          Structure  // Floors, rooms and installed systems
	NextInspectionDate *time.Time // Nil means unscheduled
	CreatedAt          time.Time  // When client was created
	UpdatedAt          time.Time  // When client was last modified

	// Computed fields (not stored in database, populated by services)
	SchedulingStatus schedule.Status // Urgency of NextInspectionDate relative to now
}

// IsScheduled returns true if the client has a next inspection date.
func (c *Client) IsScheduled() bool {
	return c.NextInspectionDate != nil
}

// =============================================================================
// Client Service Parameters
// =============================================================================

// CreateClientParams contains parameters for registering a client.
// Floor labels are generated by the service; any supplied in Structure are ignored.
type CreateClientParams struct {
	Name               string
	Address            string
	Phone              string
	Email              string
	Type               ClientType
	Structure          Structure
	NextInspectionDate *time.Time // Optional: first scheduled inspection
}

// UpdateClientParams contains parameters for updating a client.
type UpdateClientParams struct {
	ID        uuid.UUID
	Name      string
	Address   string
	Phone     string
	Email     string
	Type      ClientType
	Structure Structure
}

// ListClientsParams contains parameters for listing clients.
type ListClientsParams struct {
	Limit  int32 // Max results to return
	Offset int32 // Number of results to skip
}

// =============================================================================
// List Result with Pagination
// =============================================================================

// ListClientsResult contains the result of a paginated client list query.
type ListClientsResult struct {
	Clients []Client // The client results
	Total   int64    // Total number of clients (for pagination)
	Limit   int32    // Number of results requested
	Offset  int32    // Number of results skipped
}

// HasMore returns true if there are more results available.
func (r *ListClientsResult) HasMore() bool {
	return int64(r.Offset+r.Limit) < r.Total
}

// CurrentPage returns the current page number (1-indexed).
func (r *ListClientsResult) CurrentPage() int {
	if r.Limit == 0 {
		return 1
	}
	return int(r.Offset/r.Limit) + 1
}
