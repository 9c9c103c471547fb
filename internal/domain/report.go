// Package domain contains core business types and interfaces.
//
// This file defines the Report domain types for the generated PDF report and
// the inspection matrix spreadsheet.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Report Format
// =============================================================================

// ReportFormat represents the output format of a report.
type ReportFormat string

const (
	// ReportFormatPDF is the narrative inspection report.
	ReportFormatPDF ReportFormat = "pdf"

	// ReportFormatXLSX is the floor/pump/room/system matrix spreadsheet.
	ReportFormatXLSX ReportFormat = "xlsx"
)

// String returns the string representation of the format.
func (f ReportFormat) String() string {
	return string(f)
}

// IsValid returns true if the format is a recognized value.
func (f ReportFormat) IsValid() bool {
	switch f {
	case ReportFormatPDF, ReportFormatXLSX:
		return true
	}
	return false
}

// ContentType returns the MIME content type for the format.
func (f ReportFormat) ContentType() string {
	switch f {
	case ReportFormatPDF:
		return "application/pdf"
	case ReportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// FileExtension returns the file extension for the format.
func (f ReportFormat) FileExtension() string {
	return string(f)
}

// =============================================================================
// Report Domain Type
// =============================================================================

// Report represents the generated files of one inspection.
type Report struct {
	ID             uuid.UUID // Unique identifier
	InspectionID   uuid.UUID // Inspection this report was generated from
	PDFStorageKey  string    // Storage key for the PDF (empty if not generated)
	XLSXStorageKey string    // Storage key for the matrix (empty if not generated)
	GeneratedAt    time.Time // When report was generated
}

// StorageKey returns the storage key for the given format, or "" if that
// format was not generated.
func (r *Report) StorageKey(format ReportFormat) string {
	switch format {
	case ReportFormatPDF:
		return r.PDFStorageKey
	case ReportFormatXLSX:
		return r.XLSXStorageKey
	}
	return ""
}

// ReportData aggregates everything a generator needs.
// It is populated by the report job before passing to generators.
type ReportData struct {
	Inspection  Inspection
	Client      Client
	Narrative   string    // Compliance narrative derived from the findings
	GeneratedAt time.Time // Timestamp printed on the report
}
