// Package compliance holds the fire-safety inspection rules: the structure
// generator that seeds a findings record, the weighted compliance score, the
// narrative summary and the submission preconditions.
//
// Everything here is pure and linear in the number of checked items, cheap
// enough to recompute on every edit of a findings record.
package compliance

import (
	"math"

	"github.com/DukeRupert/fireaudit/internal/domain"
)

// Category is a weighted equipment category.
type Category string

const (
	CategoryFireAlarm    Category = "Fire Alarm System"
	CategoryPumps        Category = "Pumps"
	CategorySprinkler    Category = "Sprinkler System"
	CategoryHydrant      Category = "Hydrant System"
	CategoryExtinguisher Category = "Fire Extinguisher"
	CategoryHousekeeping Category = "Housekeeping"
)

// Weights are the fixed category weights. Hydrant checks are split evenly
// between the landing valve and the hose reel.
var Weights = map[Category]float64{
	CategoryFireAlarm:    5,
	CategoryPumps:        5,
	CategorySprinkler:    4,
	CategoryHydrant:      3,
	CategoryExtinguisher: 3,
	CategoryHousekeeping: 1,
}

const (
	// RefugeWeight applies to each refuge-area check; it is not a category.
	RefugeWeight = 5.0

	// DefaultSystemWeight applies to installed systems whose name is not a
	// weighted category.
	DefaultSystemWeight = 3.0
)

// Result is the outcome of scoring a findings record.
type Result struct {
	Score         int `json:"score"`          // 0-100
	CriticalCount int `json:"critical_count"` // Safety-relevant failures
}

// Status derives the inspection status from the critical count.
func (r Result) Status() domain.InspectionStatus {
	return domain.StatusFor(r.CriticalCount)
}

// tally accumulates weights and critical issues while walking a record.
type tally struct {
	total    float64
	obtained float64
	critical int
}

// check counts one item of weight w, obtained when pass is true.
func (t *tally) check(w float64, pass, critical bool) {
	t.total += w
	if pass {
		t.obtained += w
	}
	if critical {
		t.critical++
	}
}

// Compute scores a findings record. The score is the rounded percentage of
// applicable weight found satisfactory; a record with no applicable checks
// scores 100.
func Compute(f domain.Findings) Result {
	var t tally

	for _, floor := range f.Floors {
		scoreFloor(&t, floor)
	}
	for _, sys := range f.Systems {
		scoreSystem(&t, sys)
	}
	for _, pump := range f.Pumps {
		scorePump(&t, pump)
	}
	for _, room := range f.Rooms {
		scoreRoom(&t, room)
	}

	score := 100
	if t.total > 0 {
		score = int(math.Round(t.obtained / t.total * 100))
	}
	return Result{Score: score, CriticalCount: t.critical}
}

func scoreFloor(t *tally, floor domain.FloorFinding) {
	ext := Weights[CategoryExtinguisher]
	switch floor.Extinguisher.Status {
	case domain.ExtinguisherOK:
		t.check(ext, true, false)
	case domain.ExtinguisherExpired, domain.ExtinguisherNotAvailable:
		t.check(ext, false, true)
	case domain.ExtinguisherPressureLow:
		t.check(ext, false, false)
	default:
		t.check(ext, false, false)
	}

	if h := floor.Hydrant; h != nil {
		half := Weights[CategoryHydrant] / 2
		switch h.Valve {
		case "":
			// valve not recorded
		case domain.ValveOK:
			t.check(half, true, false)
		case domain.ValveLeaking, domain.ValveJam, domain.ValveLugsMissing:
			t.check(half, false, true)
		case domain.ValveNotApplicable:
			t.check(half, false, false)
		default:
			t.check(half, false, false)
		}

		switch h.Hose {
		case "":
			// hose not recorded
		case domain.HoseOK:
			t.check(half, true, false)
		case domain.HoseLeaking, domain.HoseJammed, domain.HoseDamaged:
			t.check(half, false, true)
		case domain.HoseMissing, domain.HoseNotAvailable, domain.HoseNotApplicable:
			t.check(half, false, false)
		default:
			t.check(half, false, false)
		}
	}

	if s := floor.Sprinkler; s != nil {
		w := Weights[CategorySprinkler]
		switch s.Status {
		case domain.SprinklerNotApplicable:
			// not applicable on this floor
		case domain.SprinklerOK:
			t.check(w, true, false)
		case domain.SprinklerLeaking:
			t.check(w, false, true)
		case domain.SprinklerPainted:
			t.check(w, false, false)
		default:
			t.check(w, false, false)
		}
	}

	if a := floor.Alarm; a != nil {
		w := Weights[CategoryFireAlarm]
		switch a.Status {
		case domain.AlarmNotApplicable:
			// not applicable on this floor
		case domain.AlarmOK:
			t.check(w, true, false)
		case domain.AlarmFault:
			t.check(w, false, true)
		default:
			t.check(w, false, false)
		}
	}

	if r := floor.RefugeArea; r != nil {
		switch r.Status {
		case domain.RefugeOpen:
			t.check(RefugeWeight, true, false)
		case domain.RefugeLocked, domain.RefugeObstructed:
			t.check(RefugeWeight, false, true)
		default:
			t.check(RefugeWeight, false, true)
		}
	}
}

func scoreSystem(t *tally, sys domain.SystemFinding) {
	w, ok := Weights[Category(sys.Name)]
	if !ok {
		w = DefaultSystemWeight
	}

	switch sys.Status {
	case domain.SystemDoesNotExist:
		// contributes nothing
	case domain.SystemSatisfactory:
		t.check(w, true, false)
	case domain.SystemNotOperational:
		t.check(w, false, true)
	case domain.SystemNeedsAttention:
		t.check(w, false, false)
	default:
		t.check(w, false, false)
	}
}

func scorePump(t *tally, pump domain.PumpFinding) {
	w := Weights[CategoryPumps]
	switch pump.Status {
	case domain.PumpNotApplicable, domain.PumpDoesNotExist:
		// unresolved or absent pumps are skipped
	case domain.PumpAutoWorking, domain.PumpManualWorking:
		t.check(w, true, false)
	case domain.PumpNotWorking:
		t.check(w, false, true)
	default:
		t.check(w, false, false)
	}
}

func scoreRoom(t *tally, room domain.RoomFinding) {
	t.check(Weights[CategoryHousekeeping], room.Housekeeping == domain.HousekeepingGood, false)

	ext := Weights[CategoryExtinguisher]
	switch room.Extinguisher.Status {
	case domain.RoomExtinguisherAvailable:
		t.check(ext, true, false)
	case domain.RoomExtinguisherMissing:
		t.check(ext, false, true)
	default:
		// anything other than Available counts as missing
		t.check(ext, false, true)
	}
}
