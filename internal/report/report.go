// Package report renders generated inspection reports: a narrative PDF and
// an inspection matrix spreadsheet.
package report

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/DukeRupert/fireaudit/internal/domain"
)

// =============================================================================
// Generator Interface
// =============================================================================

// Generator defines the interface for report generators.
type Generator interface {
	// Generate creates a report and writes it to the provided writer.
	// Returns the number of bytes written and any error.
	Generate(ctx context.Context, data *domain.ReportData, w io.Writer) (int64, error)

	// Format returns the output format of this generator.
	Format() domain.ReportFormat
}

// Generators returns one generator per supported format.
func Generators() []Generator {
	return []Generator{NewPDFGenerator(), NewXLSXGenerator()}
}

// =============================================================================
// Colors
// =============================================================================

// BrandColors defines the color palette for reports.
var BrandColors = struct {
	Red        string // Header bars and critical findings
	Amber      string // Observations
	Green      string // Satisfactory items
	TextDark   string
	TextMuted  string
	Border     string
	Background string
}{
	Red:        "#B91C1C",
	Amber:      "#D97706",
	Green:      "#15803D",
	TextDark:   "#1F2937",
	TextMuted:  "#6B7280",
	Border:     "#E5E7EB",
	Background: "#F9FAFB",
}

// HexToRGB converts "#RRGGBB" (or "RRGGBB") to RGB components.
// Malformed input yields black.
func HexToRGB(hex string) (r, g, b int) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if len(hex) != 6 || err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF)
}

// =============================================================================
// Item Rows
// =============================================================================

// Tone is the display classification of a checked item.
type Tone int

const (
	ToneOK      Tone = iota // Satisfactory
	ToneFailed              // Deficient in any way
	ToneSkipped             // N/A, absent or not recorded
)

// Color returns the display color of the tone.
func (t Tone) Color() string {
	switch t {
	case ToneOK:
		return BrandColors.Green
	case ToneFailed:
		return BrandColors.Red
	default:
		return BrandColors.TextMuted
	}
}

// Row is one checked item flattened for tabular output.
type Row struct {
	Area   string // Floor label, room name, "Systems" or "Pumps"
	Item   string
	Status string
	Notes  string
	Tone   Tone
}

// Rows flattens a findings record into display rows, in record order:
// floors, rooms, systems, pumps.
func Rows(f domain.Findings) []Row {
	var rows []Row

	for _, floor := range f.Floors {
		rows = append(rows, Row{Area: floor.Name, Item: "Extinguisher",
			Status: string(floor.Extinguisher.Status), Notes: extinguisherTypes(floor.Extinguisher.Types),
			Tone: tone(floor.Extinguisher.Status == domain.ExtinguisherOK, false)})

		if h := floor.Hydrant; h != nil {
			rows = append(rows,
				Row{Area: floor.Name, Item: "Hydrant Valve", Status: orDash(string(h.Valve)),
					Tone: tone(h.Valve == domain.ValveOK, h.Valve == "" || h.Valve == domain.ValveNotApplicable)},
				Row{Area: floor.Name, Item: "Hose Reel", Status: orDash(string(h.Hose)),
					Tone: tone(h.Hose == domain.HoseOK, h.Hose == "" || h.Hose == domain.HoseNotApplicable)},
			)
		}
		if s := floor.Sprinkler; s != nil {
			rows = append(rows, Row{Area: floor.Name, Item: "Sprinkler", Status: string(s.Status),
				Tone: tone(s.Status == domain.SprinklerOK, s.Status == domain.SprinklerNotApplicable)})
		}
		if a := floor.Alarm; a != nil {
			rows = append(rows, Row{Area: floor.Name, Item: "Fire Alarm", Status: string(a.Status),
				Tone: tone(a.Status == domain.AlarmOK, a.Status == domain.AlarmNotApplicable)})
		}
		if r := floor.RefugeArea; r != nil {
			rows = append(rows, Row{Area: floor.Name, Item: "Refuge Area", Status: string(r.Status),
				Tone: tone(r.Status == domain.RefugeOpen, false)})
		}
	}

	for _, room := range f.Rooms {
		rows = append(rows,
			Row{Area: room.Name, Item: "Housekeeping", Status: string(room.Housekeeping),
				Notes: room.Remarks, Tone: tone(room.Housekeeping == domain.HousekeepingGood, false)},
			Row{Area: room.Name, Item: "Accessibility", Status: string(room.Accessibility),
				Tone: tone(room.Accessibility == domain.AccessibilityClear, false)},
			Row{Area: room.Name, Item: "Extinguisher", Status: string(room.Extinguisher.Status),
				Notes: extinguisherTypes(room.Extinguisher.Types),
				Tone:  tone(room.Extinguisher.Status == domain.RoomExtinguisherAvailable, false)},
		)
	}

	for _, sys := range f.Systems {
		rows = append(rows, Row{Area: "Systems", Item: sys.Name, Status: string(sys.Status), Notes: sys.Notes,
			Tone: tone(sys.Status == domain.SystemSatisfactory, sys.Status == domain.SystemDoesNotExist)})
	}

	for _, pump := range f.Pumps {
		notes := pump.Remarks
		if pump.Pressure != "" {
			notes = joinNonEmpty("; ", "Pressure "+pump.Pressure, pump.Remarks)
		}
		rows = append(rows, Row{Area: "Pumps", Item: pump.Name, Status: string(pump.Status), Notes: notes,
			Tone: tone(pump.Status.IsWorking(),
				pump.Status == domain.PumpNotApplicable || pump.Status == domain.PumpDoesNotExist)})
	}

	return rows
}

func tone(ok, skipped bool) Tone {
	switch {
	case skipped:
		return ToneSkipped
	case ok:
		return ToneOK
	default:
		return ToneFailed
	}
}

// extinguisherTypes renders counts in a stable order, e.g. "ABC x2, CO2 x1".
func extinguisherTypes(types map[domain.ExtinguisherType]int) string {
	var parts []string
	for _, t := range extinguisherTypeOrder {
		if n := types[t]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s x%d", t, n))
		}
	}
	return joinNonEmpty(", ", parts...)
}

var extinguisherTypeOrder = []domain.ExtinguisherType{
	domain.ExtinguisherABC,
	domain.ExtinguisherCO2,
	domain.ExtinguisherABCModular,
	domain.ExtinguisherCleanAgent,
	domain.ExtinguisherCleanAgentModular,
	domain.ExtinguisherFM200,
	domain.ExtinguisherWater,
}

func joinNonEmpty(sep string, parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// =============================================================================
// Text Formatting Helpers
// =============================================================================

// FormatDate formats a date for display in reports.
func FormatDate(t interface{ Format(string) string }) string {
	return t.Format("02 Jan 2006")
}

// FormatDateTime formats a datetime for display in reports.
func FormatDateTime(t interface{ Format(string) string }) string {
	return t.Format("02 Jan 2006 15:04")
}
