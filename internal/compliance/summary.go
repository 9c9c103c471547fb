package compliance

import (
	"fmt"
	"strings"

	"github.com/DukeRupert/fireaudit/internal/domain"
)

// positiveThreshold is the critical issue count at which the "other systems
// satisfactory" sentence is no longer emitted.
const positiveThreshold = 5

// Narrative is the classified content of a summary before rendering.
type Narrative struct {
	Critical     []string
	Observations []string
}

// Compliant reports whether no critical issue was found.
func (n Narrative) Compliant() bool {
	return len(n.Critical) == 0
}

// Analyze classifies the findings into critical issues and observations.
//
// These triggers are deliberately separate from Compute's: a pressure-low
// extinguisher or missing hose reel is critical here but only a deduction in
// the score, while a not-available extinguisher is critical only there.
func Analyze(f domain.Findings) Narrative {
	var n Narrative

	for _, floor := range f.Floors {
		switch floor.Extinguisher.Status {
		case domain.ExtinguisherExpired, domain.ExtinguisherPressureLow:
			n.critical("Fire extinguishers on %s were found to be %s.", floor.Name, lower(floor.Extinguisher.Status))
		}
		if h := floor.Hydrant; h != nil {
			switch h.Valve {
			case domain.ValveLeaking, domain.ValveJam:
				n.critical("Hydrant valves on %s are %s.", floor.Name, lower(h.Valve))
			}
			switch h.Hose {
			case domain.HoseDamaged, domain.HoseMissing:
				n.critical("Hose reels on %s are %s.", floor.Name, lower(h.Hose))
			}
		}
		if a := floor.Alarm; a != nil && a.Status == domain.AlarmFault {
			n.critical("Fire alarm system on %s shows a fault condition.", floor.Name)
		}
		if r := floor.RefugeArea; r != nil {
			switch r.Status {
			case domain.RefugeLocked, domain.RefugeObstructed:
				n.critical("Refuge area on %s is %s, posing a serious safety risk.", floor.Name, lower(r.Status))
			}
		}
	}

	for _, pump := range f.Pumps {
		if pump.Status == domain.PumpNotWorking {
			n.critical("The %s is currently not working and requires immediate repair.", pump.Name)
		}
	}

	for _, sys := range f.Systems {
		switch sys.Status {
		case domain.SystemNotOperational:
			n.critical("The %s is reported as Not Operational.", sys.Name)
		case domain.SystemNeedsAttention:
			n.observe("The %s requires maintenance attention.", sys.Name)
		}
	}

	for _, room := range f.Rooms {
		if room.Extinguisher.Status == domain.RoomExtinguisherMissing {
			n.critical("Fire extinguisher missing in %s.", room.Name)
		}
		if room.Housekeeping == domain.HousekeepingPoor {
			n.observe("Housekeeping in %s needs improvement to reduce fire load.", room.Name)
		}
		if room.Accessibility == domain.AccessibilityObstructed {
			n.observe("Access to electrical panels/servers in %s is obstructed.", room.Name)
		}
	}

	return n
}

func (n *Narrative) critical(format string, args ...any) {
	n.Critical = append(n.Critical, fmt.Sprintf(format, args...))
}

func (n *Narrative) observe(format string, args ...any) {
	n.Observations = append(n.Observations, fmt.Sprintf(format, args...))
}

func lower[T ~string](s T) string {
	return strings.ToLower(string(s))
}

// Summary renders the compliance narrative used to pre-fill inspection
// remarks: critical issues, observations, a positive statement when the
// premises are not badly broken, and a final conclusion.
func Summary(f domain.Findings) string {
	return Analyze(f).String()
}

// String renders the narrative as newline-separated paragraphs.
func (n Narrative) String() string {
	var parts []string

	if len(n.Critical) > 0 {
		parts = append(parts, "During the inspection, the following critical fire safety deficiencies were observed:")
		for _, issue := range n.Critical {
			parts = append(parts, "• "+issue)
		}
		parts = append(parts, "These issues pose a life safety risk and require immediate corrective action.", "\n")
	}

	if len(n.Observations) > 0 {
		parts = append(parts, "The following observations were also noted which require attention:")
		for _, obs := range n.Observations {
			parts = append(parts, "• "+obs)
		}
		parts = append(parts, "\n")
	}

	if len(n.Critical) < positiveThreshold {
		parts = append(parts,
			"Other fire safety systems including available extinguishers, hydrants, and pumps were found to be in satisfactory working condition at the time of inspection.",
			"\n",
		)
	}

	if n.Compliant() {
		parts = append(parts,
			"FINAL CONCLUSION: COMPLIANT",
			"Based on the above observations, the premises are considered compliant with fire safety requirements at the time of inspection.",
		)
	} else {
		parts = append(parts,
			"FINAL CONCLUSION: NON-COMPLIANT",
			"Based on the above observations, the premises are currently non-compliant with fire safety requirements and require corrective measures.",
		)
	}

	return strings.Join(parts, "\n")
}

// ResultLine is the one-line summary stored with a submitted inspection.
func ResultLine(r Result) string {
	return fmt.Sprintf("Inspection completed. Score: %d%%. %d critical issues identified.", r.Score, r.CriticalCount)
}
