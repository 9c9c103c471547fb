// Package domain contains core business types and interfaces.
//
// This file defines the Inspection domain type and related types for
// recording fire-safety audits of client buildings.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Inspection Status
// =============================================================================

// InspectionStatus is the outcome of a submitted inspection.
// The literal values are consumed verbatim by dashboards and reports.
type InspectionStatus string

const (
	// InspectionStatusCompleted indicates no critical issue was found,
	// regardless of the compliance score.
	InspectionStatusCompleted InspectionStatus = "Completed"

	// InspectionStatusActionRequired indicates at least one critical issue.
	InspectionStatusActionRequired InspectionStatus = "Action Required"
)

// String returns the string representation of the status.
func (s InspectionStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a recognized value.
func (s InspectionStatus) IsValid() bool {
	return s == InspectionStatusCompleted || s == InspectionStatusActionRequired
}

// StatusFor derives the inspection status from its critical issue count.
func StatusFor(criticalCount int) InspectionStatus {
	if criticalCount > 0 {
		return InspectionStatusActionRequired
	}
	return InspectionStatusCompleted
}

// =============================================================================
// Inspection Domain Type
// =============================================================================

// Inspection is one completed audit of a client. Inspections are immutable
// once created.
type Inspection struct {
	ID                  uuid.UUID        // Unique identifier
	ClientID            uuid.UUID        // Audited building
	InspectorID         uuid.UUID        // Inspector who submitted the audit
	Status              InspectionStatus // Derived from CriticalIssuesCount
	ComplianceScore     int              // Weighted score, 0-100
	CriticalIssuesCount int              // Number of critical deficiencies
	Findings            Findings         // Structured checked items
	Summary             string           // One-line result summary
	CreatedAt           time.Time        // Submission time

	// Computed fields (not stored in database, populated by queries)
	ClientName string
}

// =============================================================================
// Inspection Service Parameters
// =============================================================================

// SubmitInspectionParams contains the parameters for submitting an inspection.
type SubmitInspectionParams struct {
	ClientID    uuid.UUID
	InspectorID uuid.UUID
	Findings    Findings
}

// SubmitInspectionResult is returned after a successful submission.
type SubmitInspectionResult struct {
	Inspection         *Inspection
	NextInspectionDate time.Time
	ReportJobQueued    bool
}

// ListInspectionsParams contains parameters for listing inspections.
type ListInspectionsParams struct {
	ClientID *uuid.UUID // Optional: restrict to one client
	Limit    int32      // Max results to return
	Offset   int32      // Number of results to skip
}

// =============================================================================
// List Result with Pagination
// =============================================================================

// ListInspectionsResult contains the result of a paginated inspection list query.
type ListInspectionsResult struct {
	Inspections []Inspection // The inspection results
	Total       int64        // Total number of inspections (for pagination)
	Limit       int32        // Number of results requested
	Offset      int32        // Number of results skipped
}

// HasMore returns true if there are more results available.
func (r *ListInspectionsResult) HasMore() bool {
	return int64(r.Offset+r.Limit) < r.Total
}

// HasPrevious returns true if there are previous results available.
func (r *ListInspectionsResult) HasPrevious() bool {
	return r.Offset > 0
}

// CurrentPage returns the current page number (1-indexed).
func (r *ListInspectionsResult) CurrentPage() int {
	if r.Limit == 0 {
		return 1
	}
	return int(r.Offset/r.Limit) + 1
}

// TotalPages returns the total number of pages.
func (r *ListInspectionsResult) TotalPages() int {
	if r.Limit == 0 {
		return 1
	}
	pages := r.Total / int64(r.Limit)
	if r.Total%int64(r.Limit) > 0 {
		pages++
	}
	return int(pages)
}
