package compliance

import (
	"fmt"
	"strings"

	"github.com/DukeRupert/fireaudit/internal/domain"
)

// maxListedPhotos caps how many missing-photo items are named in an error.
const maxListedPhotos = 5

// UnresolvedPumps returns the names of pumps still carrying the initial N/A
// sentinel. Compute silently skips such pumps, so submission must reject them.
func UnresolvedPumps(f domain.Findings) []string {
	var names []string
	for _, p := range f.Pumps {
		if p.Status == domain.PumpNotApplicable {
			names = append(names, p.Name)
		}
	}
	return names
}

// MissingPhotos lists failed items that lack photo evidence.
func MissingPhotos(f domain.Findings) []string {
	var missing []string
	add := func(format string, args ...any) {
		missing = append(missing, fmt.Sprintf(format, args...))
	}

	for _, fl := range f.Floors {
		if s := fl.Extinguisher.Status; s != domain.ExtinguisherOK && s != domain.ExtinguisherNotAvailable && fl.Extinguisher.PhotoURL == "" {
			add("%s: Extinguisher (%s)", fl.Name, s)
		}
		if h := fl.Hydrant; h != nil {
			if h.Valve != "" && h.Valve != domain.ValveOK && h.Valve != domain.ValveNotApplicable && h.ValvePhotoURL == "" {
				add("%s: Hydrant Valve (%s)", fl.Name, h.Valve)
			}
			if h.Hose != "" && h.Hose != domain.HoseOK && h.Hose != domain.HoseNotApplicable && h.Hose != domain.HoseNotAvailable && h.HosePhotoURL == "" {
				add("%s: Hose Reel (%s)", fl.Name, h.Hose)
			}
		}
		if s := fl.Sprinkler; s != nil && s.Status != domain.SprinklerOK && s.Status != domain.SprinklerNotApplicable && s.PhotoURL == "" {
			add("%s: Sprinkler (%s)", fl.Name, s.Status)
		}
		if a := fl.Alarm; a != nil && a.Status != domain.AlarmOK && a.Status != domain.AlarmNotApplicable && a.PhotoURL == "" {
			add("%s: Alarm (%s)", fl.Name, a.Status)
		}
		if r := fl.RefugeArea; r != nil && r.Status != domain.RefugeOpen && r.PhotoURL == "" {
			add("%s: Refuge Area (%s)", fl.Name, r.Status)
		}
	}

	for _, p := range f.Pumps {
		if p.Status == domain.PumpNotWorking && p.PhotoURL == "" {
			add("Pump: %s (Not Working)", p.Name)
		}
	}

	for _, s := range f.Systems {
		if (s.Status == domain.SystemNeedsAttention || s.Status == domain.SystemNotOperational) && s.PhotoURL == "" {
			add("System: %s (%s)", s.Name, s.Status)
		}
	}

	for _, r := range f.Rooms {
		if r.Extinguisher.Status == domain.RoomExtinguisherMissing && r.Extinguisher.PhotoURL == "" {
			add("Room %s: Extinguisher Missing", r.Name)
		}
	}

	return missing
}

// InvalidStatuses lists items whose status is not one of the recognized
// values. Records decoded from JSON never have any; records built in code might.
func InvalidStatuses(f domain.Findings) []string {
	var bad []string
	for _, fl := range f.Floors {
		if !fl.Extinguisher.Status.IsValid() {
			bad = append(bad, fl.Name+": extinguisher")
		}
		if h := fl.Hydrant; h != nil {
			if h.Valve != "" && !h.Valve.IsValid() {
				bad = append(bad, fl.Name+": hydrant valve")
			}
			if h.Hose != "" && !h.Hose.IsValid() {
				bad = append(bad, fl.Name+": hose reel")
			}
		}
		if s := fl.Sprinkler; s != nil && !s.Status.IsValid() {
			bad = append(bad, fl.Name+": sprinkler")
		}
		if a := fl.Alarm; a != nil && !a.Status.IsValid() {
			bad = append(bad, fl.Name+": alarm")
		}
		if r := fl.RefugeArea; r != nil && !r.Status.IsValid() {
			bad = append(bad, fl.Name+": refuge area")
		}
	}
	for _, r := range f.Rooms {
		if !r.Housekeeping.IsValid() || !r.Accessibility.IsValid() || !r.Extinguisher.Status.IsValid() {
			bad = append(bad, "room "+r.Name)
		}
	}
	for _, s := range f.Systems {
		if !s.Status.IsValid() {
			bad = append(bad, "system "+s.Name)
		}
	}
	for _, p := range f.Pumps {
		if !p.Status.IsValid() {
			bad = append(bad, "pump "+p.Name)
		}
	}
	return bad
}

// ValidateSubmission checks the preconditions a findings record must meet
// before it is scored and stored: recognized statuses, every pump resolved,
// overall remarks present, and photo evidence for every failed item.
func ValidateSubmission(f domain.Findings) error {
	const op = "inspection.validate"
	ve := &domain.ValidationError{Op: op}

	if bad := InvalidStatuses(f); len(bad) > 0 {
		ve.Add("findings", "Unrecognized status for: "+strings.Join(bad, ", "))
	}
	if pumps := UnresolvedPumps(f); len(pumps) > 0 {
		ve.Add("pumps", "Please select a status for the following pumps: "+strings.Join(pumps, ", "))
	}
	if strings.TrimSpace(f.Remarks) == "" {
		ve.Add("remarks", "Please provide overall remarks for the inspection.")
	}
	if missing := MissingPhotos(f); len(missing) > 0 {
		msg := "Mandatory photos missing for failed items: " + strings.Join(missing[:min(len(missing), maxListedPhotos)], "; ")
		if len(missing) > maxListedPhotos {
			msg += fmt.Sprintf(" ...and %d more", len(missing)-maxListedPhotos)
		}
		ve.Add("photos", msg)
	}

	return ve.OrNil()
}
