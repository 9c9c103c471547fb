package compliance

import (
	"fmt"
	"slices"
	"strings"

	"github.com/DukeRupert/fireaudit/internal/domain"
)

// Fixed floor labels that bracket every residential structure.
const (
	GroundLabel  = "Ground"
	TerraceLabel = "Terrace"
)

// FloorLabels returns the ordered floor labels of a building: basements
// B1..Bn, Ground, podiums P1..Pm, residential floors numbered on from the
// last podium, then Terrace. Negative counts are treated as zero.
//
//	FloorLabels(2, 1, 3) = [B1 B2 Ground P1 Floor 2 Floor 3 Floor 4 Terrace]
func FloorLabels(basements, podiums, floors int) []string {
	basements, podiums, floors = max(basements, 0), max(podiums, 0), max(floors, 0)

	labels := make([]string, 0, basements+podiums+floors+2)
	for i := 1; i <= basements; i++ {
		labels = append(labels, fmt.Sprintf("B%d", i))
	}
	labels = append(labels, GroundLabel)
	for i := 1; i <= podiums; i++ {
		labels = append(labels, fmt.Sprintf("P%d", i))
	}
	for i := 1; i <= floors; i++ {
		labels = append(labels, fmt.Sprintf("Floor %d", i+podiums))
	}
	return append(labels, TerraceLabel)
}

// IsResidentialFloor reports whether label names a residential floor (or
// the terrace), the only labels that may be designated refuge areas.
func IsResidentialFloor(label string) bool {
	return label != GroundLabel && !strings.HasPrefix(label, "B") && !strings.HasPrefix(label, "P")
}

// NormalizeStructure regenerates the derived parts of a structure: floor
// labels from the counts (a single Ground floor for offices and stores), and
// refuge floors pruned to residential labels that still exist.
func NormalizeStructure(clientType domain.ClientType, s domain.Structure) domain.Structure {
	s.Basements, s.Podiums, s.Floors = max(s.Basements, 0), max(s.Podiums, 0), max(s.Floors, 0)

	if clientType == domain.ClientTypeResidential {
		s.FloorLabels = FloorLabels(s.Basements, s.Podiums, s.Floors)
	} else {
		s.FloorLabels = []string{GroundLabel}
		s.HasRefugeArea = false
	}

	var refuge []string
	if s.HasRefugeArea {
		for _, f := range s.RefugeFloors {
			if IsResidentialFloor(f) && slices.Contains(s.FloorLabels, f) && !slices.Contains(refuge, f) {
				refuge = append(refuge, f)
			}
		}
	}
	s.RefugeFloors = refuge
	s.Rooms = dedupe(s.Rooms)
	s.Systems = dedupe(s.Systems)
	return s
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// Pump role names.
const (
	PumpMainHydrant     = "Main Pump - Hydrant"
	PumpJockeyHydrant   = "Jockey Pump - Hydrant"
	PumpMainSprinkler   = "Main Pump - Sprinkler"
	PumpJockeySprinkler = "Jockey Pump - Sprinkler"
	PumpBooster         = "Booster Pump"
	PumpDiesel          = "Diesel Pump"
)

// PumpsFor derives the pump roles relevant to the installed systems. Each
// pump starts unresolved (N/A) and must be given a status before submission.
func PumpsFor(s domain.Structure) []domain.PumpFinding {
	var names []string
	if s.HasHydrant() {
		names = append(names, PumpMainHydrant, PumpJockeyHydrant)
	}
	if s.HasSprinkler() {
		names = append(names, PumpMainSprinkler, PumpJockeySprinkler)
	}
	if s.HasHydrant() || s.HasSprinkler() {
		names = append(names, PumpBooster, PumpDiesel)
	}

	pumps := make([]domain.PumpFinding, 0, len(names))
	for _, name := range names {
		pumps = append(pumps, domain.PumpFinding{Name: name, Status: domain.PumpNotApplicable})
	}
	return pumps
}

// NewFindings seeds a blank findings record for a client structure: every
// floor, room and system starts in its passing state and pumps start
// unresolved.
func NewFindings(s domain.Structure) domain.Findings {
	f := domain.Findings{
		Floors:  make([]domain.FloorFinding, 0, len(s.FloorLabels)),
		Rooms:   make([]domain.RoomFinding, 0, len(s.Rooms)),
		Systems: make([]domain.SystemFinding, 0, len(s.Systems)),
		Pumps:   PumpsFor(s),
	}
	for _, label := range s.FloorLabels {
		f.Floors = append(f.Floors, NewFloorFinding(s, label))
	}
	for _, room := range s.Rooms {
		f.Rooms = append(f.Rooms, domain.RoomFinding{
			Name:          room,
			Housekeeping:  domain.HousekeepingGood,
			Accessibility: domain.AccessibilityClear,
			Extinguisher: domain.RoomExtinguisherCheck{
				Status: domain.RoomExtinguisherAvailable,
				Types:  map[domain.ExtinguisherType]int{domain.ExtinguisherABC: 1},
			},
		})
	}
	for _, sys := range s.Systems {
		f.Systems = append(f.Systems, domain.SystemFinding{Name: sys, Status: domain.SystemSatisfactory})
	}
	return f
}

// NewFloorFinding returns the default, all-OK entry for one floor label.
func NewFloorFinding(s domain.Structure, label string) domain.FloorFinding {
	floor := domain.FloorFinding{
		Name: label,
		Extinguisher: domain.ExtinguisherCheck{
			Status: domain.ExtinguisherOK,
			Types:  map[domain.ExtinguisherType]int{domain.ExtinguisherABC: 1},
		},
	}
	if s.HasHydrant() {
		floor.Hydrant = &domain.HydrantCheck{Valve: domain.ValveOK, Hose: domain.HoseOK}
	}
	if s.HasSprinkler() {
		floor.Sprinkler = &domain.SprinklerCheck{Status: domain.SprinklerOK}
	}
	if s.HasSystem(domain.SystemFireAlarm) {
		floor.Alarm = &domain.AlarmCheck{Status: domain.AlarmOK}
	}
	if s.IsRefugeFloor(label) {
		floor.RefugeArea = &domain.RefugeCheck{Status: domain.RefugeOpen}
	}
	return floor
}

// ReconcileFloors aligns the floor entries of f with the structure's current
// floor labels: entries for labels that no longer exist are dropped, new
// labels get default entries, and the result follows the label order.
func ReconcileFloors(f domain.Findings, s domain.Structure) domain.Findings {
	existing := make(map[string]domain.FloorFinding, len(f.Floors))
	for _, floor := range f.Floors {
		existing[floor.Name] = floor
	}

	floors := make([]domain.FloorFinding, 0, len(s.FloorLabels))
	for _, label := range s.FloorLabels {
		if floor, ok := existing[label]; ok {
			floors = append(floors, floor)
			continue
		}
		floors = append(floors, NewFloorFinding(s, label))
	}
	f.Floors = floors
	return f
}
