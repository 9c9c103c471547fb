package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/DukeRupert/fireaudit/internal/domain"
	"github.com/go-pdf/fpdf"
)

// =============================================================================
// PDF Generator
// =============================================================================

// PDFGenerator generates the narrative inspection report.
type PDFGenerator struct {
	// Page dimensions (A4 in mm)
	pageWidth  float64
	pageHeight float64
	margin     float64

	contentWidth float64
}

// NewPDFGenerator creates a new PDF generator with default settings.
func NewPDFGenerator() *PDFGenerator {
	margin := 15.0
	pageWidth := 210.0
	return &PDFGenerator{
		pageWidth:    pageWidth,
		pageHeight:   297.0,
		margin:       margin,
		contentWidth: pageWidth - (2 * margin),
	}
}

// Format returns the output format of this generator.
func (g *PDFGenerator) Format() domain.ReportFormat {
	return domain.ReportFormatPDF
}

// pdfDoc pairs the document with its UTF-8 to cp1252 translator, which the
// core Helvetica font requires.
type pdfDoc struct {
	*fpdf.Fpdf
	tr func(string) string
}

// Generate creates a PDF report and writes it to the provided writer.
func (g *PDFGenerator) Generate(ctx context.Context, data *domain.ReportData, w io.Writer) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	f := fpdf.New("P", "mm", "A4", "")
	pdf := &pdfDoc{Fpdf: f, tr: f.UnicodeTranslatorFromDescriptor("")}

	pdf.SetTitle("Fire Safety Inspection Report - "+data.Client.Name, true)
	pdf.SetCreator("Fire Audit", true)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetFooterFunc(func() {
		g.addFooter(pdf, data)
	})

	pdf.AddPage()
	g.addHeader(pdf, data)
	g.addResult(pdf, data)
	g.addNarrative(pdf, data)
	g.addFindings(pdf, data)
	g.addRemarks(pdf, data)

	if err := pdf.Error(); err != nil {
		return 0, fmt.Errorf("pdf generation error: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return 0, fmt.Errorf("pdf output error: %w", err)
	}

	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// =============================================================================
// Sections
// =============================================================================

func (g *PDFGenerator) addHeader(pdf *pdfDoc, data *domain.ReportData) {
	r, gr, b := HexToRGB(BrandColors.Red)
	pdf.SetFillColor(r, gr, b)
	pdf.Rect(0, 0, g.pageWidth, 40, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(g.margin, 12)
	pdf.Cell(0, 10, "Fire Safety Inspection Report")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetXY(g.margin, 24)
	pdf.Cell(0, 8, pdf.tr(data.Client.Name))

	g.resetText(pdf)
	pdf.SetXY(g.margin, 50)
	pdf.SetFont("Helvetica", "", 10)

	g.addLabelValue(pdf, "Address", data.Client.Address)
	g.addLabelValue(pdf, "Client Type", string(data.Client.Type))
	g.addLabelValue(pdf, "Contact", strings.TrimSpace(data.Client.Phone+"  "+data.Client.Email))
	g.addLabelValue(pdf, "Inspected", FormatDateTime(data.Inspection.CreatedAt))
	g.addLabelValue(pdf, "Inspector", data.Inspection.InspectorID.String())
	if data.Client.NextInspectionDate != nil {
		g.addLabelValue(pdf, "Next Due", FormatDate(*data.Client.NextInspectionDate))
	}
	pdf.Ln(6)
}

func (g *PDFGenerator) addResult(pdf *pdfDoc, data *domain.ReportData) {
	g.addSectionHeader(pdf, "Result")

	color := BrandColors.Green
	if data.Inspection.Status == domain.InspectionStatusActionRequired {
		color = BrandColors.Red
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(245, 245, 245)
	pdf.CellFormat(60, 8, "Compliance Score", "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 8, "Critical Issues", "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 8, "Status", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(60, 12, fmt.Sprintf("%d%%", data.Inspection.ComplianceScore), "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 12, fmt.Sprintf("%d", data.Inspection.CriticalIssuesCount), "1", 0, "C", false, 0, "")
	r, gr, b := HexToRGB(color)
	pdf.SetTextColor(r, gr, b)
	pdf.CellFormat(60, 12, string(data.Inspection.Status), "1", 1, "C", false, 0, "")
	g.resetText(pdf)

	if data.Inspection.Summary != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(g.contentWidth, 5, pdf.tr(data.Inspection.Summary), "", "L", false)
	}
	pdf.Ln(6)
}

func (g *PDFGenerator) addNarrative(pdf *pdfDoc, data *domain.ReportData) {
	if data.Narrative == "" {
		return
	}
	g.addSectionHeader(pdf, "Observations")

	pdf.SetFont("Helvetica", "", 10)
	for _, para := range strings.Split(data.Narrative, "\n\n") {
		pdf.MultiCell(g.contentWidth, 5, pdf.tr(para), "", "L", false)
		pdf.Ln(3)
	}
	pdf.Ln(3)
}

func (g *PDFGenerator) addFindings(pdf *pdfDoc, data *domain.ReportData) {
	rows := Rows(data.Inspection.Findings)
	if len(rows) == 0 {
		return
	}

	if pdf.GetY() > 200 {
		pdf.AddPage()
	}
	g.addSectionHeader(pdf, "Checked Items")

	widths := []float64{35, 45, 40, g.contentWidth - 120}
	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(245, 245, 245)
		for i, h := range []string{"Area", "Item", "Status", "Notes"} {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}
	header()

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		if pdf.GetY() > g.pageHeight-30 {
			pdf.AddPage()
			header()
			pdf.SetFont("Helvetica", "", 9)
		}
		pdf.CellFormat(widths[0], 6, pdf.tr(row.Area), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, pdf.tr(row.Item), "1", 0, "L", false, 0, "")

		r, gr, b := HexToRGB(row.Tone.Color())
		pdf.SetTextColor(r, gr, b)
		pdf.CellFormat(widths[2], 6, pdf.tr(row.Status), "1", 0, "L", false, 0, "")
		g.resetText(pdf)

		pdf.CellFormat(widths[3], 6, pdf.tr(truncate(row.Notes, 45)), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

func (g *PDFGenerator) addRemarks(pdf *pdfDoc, data *domain.ReportData) {
	remarks := strings.TrimSpace(data.Inspection.Findings.Remarks)
	if remarks == "" {
		return
	}
	if pdf.GetY() > 240 {
		pdf.AddPage()
	}
	g.addSectionHeader(pdf, "Inspector Remarks")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(g.contentWidth, 5, pdf.tr(remarks), "", "L", false)
}

// =============================================================================
// Helper Methods
// =============================================================================

func (g *PDFGenerator) addSectionHeader(pdf *pdfDoc, title string) {
	r, gr, b := HexToRGB(BrandColors.Red)
	pdf.SetDrawColor(r, gr, b)
	pdf.SetLineWidth(0.5)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(r, gr, b)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)

	pdf.Line(g.margin, pdf.GetY(), g.pageWidth-g.margin, pdf.GetY())
	pdf.Ln(5)

	g.resetText(pdf)
	pdf.SetLineWidth(0.2)
}

func (g *PDFGenerator) addLabelValue(pdf *pdfDoc, label, value string) {
	if value == "" {
		return
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(30, 6, label+":")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(g.contentWidth-30, 6, pdf.tr(value), "", "L", false)
}

func (g *PDFGenerator) addFooter(pdf *pdfDoc, data *domain.ReportData) {
	pdf.SetY(-15)

	r, gr, b := HexToRGB(BrandColors.Border)
	pdf.SetDrawColor(r, gr, b)
	pdf.Line(g.margin, pdf.GetY()-3, g.pageWidth-g.margin, pdf.GetY()-3)

	r, gr, b = HexToRGB(BrandColors.TextMuted)
	pdf.SetTextColor(r, gr, b)
	pdf.SetFont("Helvetica", "", 8)

	pdf.Cell(0, 10, "Generated: "+FormatDateTime(data.GeneratedAt))

	pdf.SetX(-g.margin - 30)
	pdf.CellFormat(30, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
}

func (g *PDFGenerator) resetText(pdf *pdfDoc) {
	r, gr, b := HexToRGB(BrandColors.TextDark)
	pdf.SetTextColor(r, gr, b)
}

func truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen-3]) + "..."
}
