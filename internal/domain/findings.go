// Package domain contains core business types and interfaces.
//
// This file defines the Findings record: the structured, per-inspection set
// of floor, room, system and pump checks. Every item status is a closed
// string enum; unknown values are rejected when decoding JSON so the
// compliance engine only ever sees statuses it has a rule for.
package domain

import "fmt"

// =============================================================================
// Findings
// =============================================================================

// Findings is the full record of an inspection's checked items.
// It is stored opaquely as JSON and re-parsed by report views.
type Findings struct {
	Floors  []FloorFinding  `json:"floors"`
	Rooms   []RoomFinding   `json:"rooms"`
	Systems []SystemFinding `json:"systems"`
	Pumps   []PumpFinding   `json:"pumps"`
	Remarks string          `json:"remarks"`
}

// FloorFinding holds the checks for one floor label of the client structure.
// Optional checks are nil unless the client has the corresponding system
// installed (or, for the refuge check, the floor is a designated refuge).
type FloorFinding struct {
	Name         string            `json:"name"`
	Extinguisher ExtinguisherCheck `json:"extinguisher"`
	Hydrant      *HydrantCheck     `json:"hydrant,omitempty"`
	Sprinkler    *SprinklerCheck   `json:"sprinkler,omitempty"`
	Alarm        *AlarmCheck       `json:"alarm,omitempty"`
	RefugeArea   *RefugeCheck      `json:"refuge_area,omitempty"`
}

// ExtinguisherType is a kind of portable extinguisher counted on a floor or in a room.
type ExtinguisherType string

const (
	ExtinguisherABC               ExtinguisherType = "ABC"
	ExtinguisherCO2               ExtinguisherType = "CO2"
	ExtinguisherABCModular        ExtinguisherType = "ABC Modular"
	ExtinguisherCleanAgent        ExtinguisherType = "Clean Agent"
	ExtinguisherCleanAgentModular ExtinguisherType = "Clean Agent Modular"
	ExtinguisherFM200             ExtinguisherType = "FM-200"
	ExtinguisherWater             ExtinguisherType = "Water Type"
)

// ExtinguisherCheck is the floor-level extinguisher check.
type ExtinguisherCheck struct {
	Status   ExtinguisherStatus       `json:"status"`
	Types    map[ExtinguisherType]int `json:"types,omitempty"`
	PhotoURL string                   `json:"photo_url,omitempty"`
}

// HydrantCheck covers the landing valve and hose reel on a floor.
// An empty Valve or Hose means that half of the check was not recorded.
type HydrantCheck struct {
	Valve         ValveStatus `json:"valve,omitempty"`
	ValvePhotoURL string      `json:"valve_photo_url,omitempty"`
	Hose          HoseStatus  `json:"hose,omitempty"`
	HosePhotoURL  string      `json:"hose_photo_url,omitempty"`
}

// SprinklerCheck is the per-floor sprinkler check.
type SprinklerCheck struct {
	Status   SprinklerStatus `json:"status"`
	PhotoURL string          `json:"photo_url,omitempty"`
}

// AlarmCheck is the per-floor fire alarm check.
type AlarmCheck struct {
	Status   AlarmStatus `json:"status"`
	PhotoURL string      `json:"photo_url,omitempty"`
}

// RefugeCheck is the accessibility check for a designated refuge floor.
type RefugeCheck struct {
	Status   RefugeStatus `json:"status"`
	PhotoURL string       `json:"photo_url,omitempty"`
}

// RoomFinding holds the checks for one named room (lift room, meter room, ...).
type RoomFinding struct {
	Name                  string                `json:"name"`
	Housekeeping          HousekeepingStatus    `json:"housekeeping"`
	HousekeepingPhotoURL  string                `json:"housekeeping_photo_url,omitempty"`
	Accessibility         AccessibilityStatus   `json:"accessibility"`
	AccessibilityPhotoURL string                `json:"accessibility_photo_url,omitempty"`
	Extinguisher          RoomExtinguisherCheck `json:"extinguisher"`
	Remarks               string                `json:"remarks"`
}

// RoomExtinguisherCheck is the in-room extinguisher presence check.
type RoomExtinguisherCheck struct {
	Status   RoomExtinguisherStatus   `json:"status"`
	Types    map[ExtinguisherType]int `json:"types,omitempty"`
	PhotoURL string                   `json:"photo_url,omitempty"`
}

// SystemFinding is the overall status of one installed fire-safety system.
type SystemFinding struct {
	Name     string       `json:"name"`
	Status   SystemStatus `json:"status"`
	Notes    string       `json:"notes"`
	PhotoURL string       `json:"photo_url,omitempty"`
}

// PumpFinding is the working status of one pump role.
type PumpFinding struct {
	Name     string     `json:"name"`
	Status   PumpStatus `json:"status"`
	Pressure string     `json:"pressure"`
	Remarks  string     `json:"remarks"`
	PhotoURL string     `json:"photo_url,omitempty"`
}

// =============================================================================
// Item Statuses
// =============================================================================

// ExtinguisherStatus is the status of a floor extinguisher check.
type ExtinguisherStatus string

const (
	ExtinguisherOK           ExtinguisherStatus = "OK"
	ExtinguisherPressureLow  ExtinguisherStatus = "Pressure Low"
	ExtinguisherExpired      ExtinguisherStatus = "Expired"
	ExtinguisherNotAvailable ExtinguisherStatus = "Not Available"
)

func (s ExtinguisherStatus) IsValid() bool {
	switch s {
	case ExtinguisherOK, ExtinguisherPressureLow, ExtinguisherExpired, ExtinguisherNotAvailable:
		return true
	}
	return false
}

func (s *ExtinguisherStatus) UnmarshalText(text []byte) error {
	return parseStatus("extinguisher", text, s)
}

// ValveStatus is the status of a hydrant landing valve.
type ValveStatus string

const (
	ValveOK            ValveStatus = "OK"
	ValveLeaking       ValveStatus = "Leaking"
	ValveJam           ValveStatus = "Jam"
	ValveLugsMissing   ValveStatus = "Lugs / Wheel Missing"
	ValveNotApplicable ValveStatus = "N/A"
)

func (s ValveStatus) IsValid() bool {
	switch s {
	case ValveOK, ValveLeaking, ValveJam, ValveLugsMissing, ValveNotApplicable:
		return true
	}
	return false
}

// UnmarshalText accepts an empty value for an unrecorded valve.
func (s *ValveStatus) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = ""
		return nil
	}
	return parseStatus("hydrant valve", text, s)
}

// HoseStatus is the status of a hose reel drum.
type HoseStatus string

const (
	HoseOK            HoseStatus = "OK"
	HoseLeaking       HoseStatus = "Leaking"
	HoseJammed        HoseStatus = "Jammed / Stuck"
	HoseDamaged       HoseStatus = "Damaged"
	HoseMissing       HoseStatus = "Missing"
	HoseNotAvailable  HoseStatus = "Not Available"
	HoseNotApplicable HoseStatus = "N/A"
)

func (s HoseStatus) IsValid() bool {
	switch s {
	case HoseOK, HoseLeaking, HoseJammed, HoseDamaged, HoseMissing, HoseNotAvailable, HoseNotApplicable:
		return true
	}
	return false
}

// UnmarshalText accepts an empty value for an unrecorded hose reel.
func (s *HoseStatus) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = ""
		return nil
	}
	return parseStatus("hose reel", text, s)
}

// SprinklerStatus is the status of a floor sprinkler check.
type SprinklerStatus string

const (
	SprinklerOK            SprinklerStatus = "OK"
	SprinklerLeaking       SprinklerStatus = "Leaking"
	SprinklerPainted       SprinklerStatus = "Painted"
	SprinklerNotApplicable SprinklerStatus = "N/A"
)

func (s SprinklerStatus) IsValid() bool {
	switch s {
	case SprinklerOK, SprinklerLeaking, SprinklerPainted, SprinklerNotApplicable:
		return true
	}
	return false
}

func (s *SprinklerStatus) UnmarshalText(text []byte) error {
	return parseStatus("sprinkler", text, s)
}

// AlarmStatus is the status of a floor alarm check.
type AlarmStatus string

const (
	AlarmOK            AlarmStatus = "OK"
	AlarmFault         AlarmStatus = "Fault"
	AlarmNotApplicable AlarmStatus = "N/A"
)

func (s AlarmStatus) IsValid() bool {
	switch s {
	case AlarmOK, AlarmFault, AlarmNotApplicable:
		return true
	}
	return false
}

func (s *AlarmStatus) UnmarshalText(text []byte) error {
	return parseStatus("alarm", text, s)
}

// RefugeStatus is the accessibility status of a refuge area.
type RefugeStatus string

const (
	RefugeOpen       RefugeStatus = "Open"
	RefugeLocked     RefugeStatus = "Locked"
	RefugeObstructed RefugeStatus = "Obstructed / Occupied"
)

func (s RefugeStatus) IsValid() bool {
	switch s {
	case RefugeOpen, RefugeLocked, RefugeObstructed:
		return true
	}
	return false
}

func (s *RefugeStatus) UnmarshalText(text []byte) error {
	return parseStatus("refuge area", text, s)
}

// HousekeepingStatus is the housekeeping status of a room.
type HousekeepingStatus string

const (
	HousekeepingGood HousekeepingStatus = "Good"
	HousekeepingPoor HousekeepingStatus = "Poor"
)

func (s HousekeepingStatus) IsValid() bool {
	return s == HousekeepingGood || s == HousekeepingPoor
}

func (s *HousekeepingStatus) UnmarshalText(text []byte) error {
	return parseStatus("housekeeping", text, s)
}

// AccessibilityStatus is the access status of a room's panels or equipment.
type AccessibilityStatus string

const (
	AccessibilityClear      AccessibilityStatus = "Clear"
	AccessibilityObstructed AccessibilityStatus = "Obstructed"
)

func (s AccessibilityStatus) IsValid() bool {
	return s == AccessibilityClear || s == AccessibilityObstructed
}

func (s *AccessibilityStatus) UnmarshalText(text []byte) error {
	return parseStatus("accessibility", text, s)
}

// RoomExtinguisherStatus is the in-room extinguisher presence status.
type RoomExtinguisherStatus string

const (
	RoomExtinguisherAvailable RoomExtinguisherStatus = "Available"
	RoomExtinguisherMissing   RoomExtinguisherStatus = "Missing"
)

func (s RoomExtinguisherStatus) IsValid() bool {
	return s == RoomExtinguisherAvailable || s == RoomExtinguisherMissing
}

func (s *RoomExtinguisherStatus) UnmarshalText(text []byte) error {
	return parseStatus("room extinguisher", text, s)
}

// SystemStatus is the overall status of an installed system.
type SystemStatus string

const (
	SystemSatisfactory   SystemStatus = "Satisfactory"
	SystemNeedsAttention SystemStatus = "Needs Attention"
	SystemNotOperational SystemStatus = "Not Operational"
	SystemDoesNotExist   SystemStatus = "Does Not Exist"
)

func (s SystemStatus) IsValid() bool {
	switch s {
	case SystemSatisfactory, SystemNeedsAttention, SystemNotOperational, SystemDoesNotExist:
		return true
	}
	return false
}

func (s *SystemStatus) UnmarshalText(text []byte) error {
	return parseStatus("system", text, s)
}

// PumpStatus is the working status of a pump.
// PumpNotApplicable doubles as the "not yet inspected" sentinel.
type PumpStatus string

const (
	PumpAutoWorking   PumpStatus = "Auto (Working)"
	PumpManualWorking PumpStatus = "Manual (Working)"
	PumpNotWorking    PumpStatus = "Not Working"
	PumpNotApplicable PumpStatus = "N/A"
	PumpDoesNotExist  PumpStatus = "Does Not Exist"
)

func (s PumpStatus) IsValid() bool {
	switch s {
	case PumpAutoWorking, PumpManualWorking, PumpNotWorking, PumpNotApplicable, PumpDoesNotExist:
		return true
	}
	return false
}

// IsWorking reports whether the pump runs, in either auto or manual mode.
func (s PumpStatus) IsWorking() bool {
	return s == PumpAutoWorking || s == PumpManualWorking
}

func (s *PumpStatus) UnmarshalText(text []byte) error {
	return parseStatus("pump", text, s)
}

// parseStatus decodes text into a closed status enum, rejecting unknown values.
func parseStatus[T interface {
	~string
	IsValid() bool
}](kind string, text []byte, dst *T) error {
	v := T(text)
	if !v.IsValid() {
		return fmt.Errorf("unknown %s status %q", kind, string(text))
	}
	*dst = v
	return nil
}
