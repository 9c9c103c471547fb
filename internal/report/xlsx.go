package report

import (
	"context"
	"fmt"
	"io"

	"github.com/DukeRupert/fireaudit/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the inspection matrix workbook.
const (
	SheetSummary = "Summary"
	SheetFloors  = "Floors"
	SheetRooms   = "Rooms"
	SheetSystems = "Systems"
	SheetPumps   = "Pumps"
)

// XLSXGenerator writes the inspection matrix: one sheet per section of the
// findings record, one row per floor, room, system or pump.
type XLSXGenerator struct{}

// NewXLSXGenerator creates a new spreadsheet generator.
func NewXLSXGenerator() *XLSXGenerator {
	return &XLSXGenerator{}
}

// Format returns the output format of this generator.
func (g *XLSXGenerator) Format() domain.ReportFormat {
	return domain.ReportFormatXLSX
}

// cell is a value with the tone used to color it.
type cell struct {
	value any
	tone  Tone
}

// tonePlain marks cells that carry no status, such as names and remarks.
const tonePlain Tone = -1

func plain(v any) cell { return cell{value: v, tone: tonePlain} }

// sheet is one tabular section of the workbook.
type sheet struct {
	name    string
	headers []string
	widths  []float64
	rows    [][]cell
}

// Generate creates the workbook and writes it to w.
func (g *XLSXGenerator) Generate(ctx context.Context, data *domain.ReportData, w io.Writer) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()

	styles, err := newStyles(f)
	if err != nil {
		return 0, err
	}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return 0, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeSheet(f, styles, summarySheet(data)); err != nil {
		return 0, err
	}

	findings := data.Inspection.Findings
	for _, s := range []sheet{floorsSheet(findings), roomsSheet(findings), systemsSheet(findings), pumpsSheet(findings)} {
		if _, err := f.NewSheet(s.name); err != nil {
			return 0, fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}
		if err := writeSheet(f, styles, s); err != nil {
			return 0, err
		}
	}
	f.SetActiveSheet(0)

	n, err := f.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("xlsx output error: %w", err)
	}
	return n, nil
}

// =============================================================================
// Sheets
// =============================================================================

func summarySheet(data *domain.ReportData) sheet {
	next := ""
	if data.Client.NextInspectionDate != nil {
		next = FormatDate(*data.Client.NextInspectionDate)
	}
	status := cell{value: string(data.Inspection.Status), tone: ToneOK}
	if data.Inspection.Status == domain.InspectionStatusActionRequired {
		status.tone = ToneFailed
	}

	return sheet{
		name:    SheetSummary,
		headers: []string{"Field", "Value"},
		widths:  []float64{24, 80},
		rows: [][]cell{
			{plain("Client"), plain(data.Client.Name)},
			{plain("Address"), plain(data.Client.Address)},
			{plain("Client Type"), plain(string(data.Client.Type))},
			{plain("Inspected"), plain(FormatDateTime(data.Inspection.CreatedAt))},
			{plain("Inspector"), plain(data.Inspection.InspectorID.String())},
			{plain("Compliance Score"), plain(data.Inspection.ComplianceScore)},
			{plain("Critical Issues"), plain(data.Inspection.CriticalIssuesCount)},
			{plain("Status"), status},
			{plain("Next Inspection"), plain(next)},
			{plain("Summary"), plain(data.Inspection.Summary)},
			{plain("Remarks"), plain(data.Inspection.Findings.Remarks)},
		},
	}
}

func floorsSheet(f domain.Findings) sheet {
	s := sheet{
		name:    SheetFloors,
		headers: []string{"Floor", "Extinguisher", "Extinguisher Types", "Hydrant Valve", "Hose Reel", "Sprinkler", "Fire Alarm", "Refuge Area"},
		widths:  []float64{14, 16, 28, 22, 18, 14, 14, 24},
	}
	for _, floor := range f.Floors {
		row := []cell{
			plain(floor.Name),
			{value: string(floor.Extinguisher.Status), tone: tone(floor.Extinguisher.Status == domain.ExtinguisherOK, false)},
			plain(extinguisherTypes(floor.Extinguisher.Types)),
			plain(""), plain(""), plain(""), plain(""), plain(""),
		}
		if h := floor.Hydrant; h != nil {
			row[3] = cell{value: string(h.Valve), tone: tone(h.Valve == domain.ValveOK, h.Valve == "" || h.Valve == domain.ValveNotApplicable)}
			row[4] = cell{value: string(h.Hose), tone: tone(h.Hose == domain.HoseOK, h.Hose == "" || h.Hose == domain.HoseNotApplicable)}
		}
		if sp := floor.Sprinkler; sp != nil {
			row[5] = cell{value: string(sp.Status), tone: tone(sp.Status == domain.SprinklerOK, sp.Status == domain.SprinklerNotApplicable)}
		}
		if a := floor.Alarm; a != nil {
			row[6] = cell{value: string(a.Status), tone: tone(a.Status == domain.AlarmOK, a.Status == domain.AlarmNotApplicable)}
		}
		if r := floor.RefugeArea; r != nil {
			row[7] = cell{value: string(r.Status), tone: tone(r.Status == domain.RefugeOpen, false)}
		}
		s.rows = append(s.rows, row)
	}
	return s
}

func roomsSheet(f domain.Findings) sheet {
	s := sheet{
		name:    SheetRooms,
		headers: []string{"Room", "Housekeeping", "Accessibility", "Extinguisher", "Extinguisher Types", "Remarks"},
		widths:  []float64{34, 14, 14, 14, 28, 40},
	}
	for _, room := range f.Rooms {
		s.rows = append(s.rows, []cell{
			plain(room.Name),
			{value: string(room.Housekeeping), tone: tone(room.Housekeeping == domain.HousekeepingGood, false)},
			{value: string(room.Accessibility), tone: tone(room.Accessibility == domain.AccessibilityClear, false)},
			{value: string(room.Extinguisher.Status), tone: tone(room.Extinguisher.Status == domain.RoomExtinguisherAvailable, false)},
			plain(extinguisherTypes(room.Extinguisher.Types)),
			plain(room.Remarks),
		})
	}
	return s
}

func systemsSheet(f domain.Findings) sheet {
	s := sheet{
		name:    SheetSystems,
		headers: []string{"System", "Status", "Notes"},
		widths:  []float64{28, 18, 50},
	}
	for _, sys := range f.Systems {
		s.rows = append(s.rows, []cell{
			plain(sys.Name),
			{value: string(sys.Status), tone: tone(sys.Status == domain.SystemSatisfactory, sys.Status == domain.SystemDoesNotExist)},
			plain(sys.Notes),
		})
	}
	return s
}

func pumpsSheet(f domain.Findings) sheet {
	s := sheet{
		name:    SheetPumps,
		headers: []string{"Pump", "Status", "Pressure", "Remarks"},
		widths:  []float64{26, 18, 14, 40},
	}
	for _, pump := range f.Pumps {
		s.rows = append(s.rows, []cell{
			plain(pump.Name),
			{value: string(pump.Status), tone: tone(pump.Status.IsWorking(),
				pump.Status == domain.PumpNotApplicable || pump.Status == domain.PumpDoesNotExist)},
			plain(pump.Pressure),
			plain(pump.Remarks),
		})
	}
	return s
}

// =============================================================================
// Writing
// =============================================================================

type styles struct {
	header int
	tones  map[Tone]int
}

func newStyles(f *excelize.File) (styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{BrandColors.Red}, Pattern: 1},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return styles{}, fmt.Errorf("failed to create header style: %w", err)
	}

	s := styles{header: header, tones: make(map[Tone]int)}
	for _, t := range []Tone{ToneOK, ToneFailed, ToneSkipped} {
		id, err := f.NewStyle(&excelize.Style{
			Font:   &excelize.Font{Color: t.Color(), Bold: t == ToneFailed},
			Border: border,
		})
		if err != nil {
			return styles{}, fmt.Errorf("failed to create cell style: %w", err)
		}
		s.tones[t] = id
	}
	plainStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: BrandColors.TextDark}, Border: border})
	if err != nil {
		return styles{}, fmt.Errorf("failed to create cell style: %w", err)
	}
	s.tones[tonePlain] = plainStyle
	return s, nil
}

func writeSheet(f *excelize.File, st styles, s sheet) error {
	for col, header := range s.headers {
		name, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(s.name, name, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", name, err)
		}
		if err := f.SetCellStyle(s.name, name, name, st.header); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for i, width := range s.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(s.name, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for r, row := range s.rows {
		for c, v := range row {
			name, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(s.name, name, v.value); err != nil {
				return fmt.Errorf("failed to set cell %s!%s: %w", s.name, name, err)
			}
			if err := f.SetCellStyle(s.name, name, name, st.tones[v.tone]); err != nil {
				return fmt.Errorf("failed to set cell style: %w", err)
			}
		}
	}

	if err := f.SetPanes(s.name, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("failed to freeze header row: %w", err)
	}
	return nil
}
