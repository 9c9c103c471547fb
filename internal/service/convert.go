package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/DukeRupert/fireaudit/internal/domain"
	"github.com/DukeRupert/fireaudit/internal/repository"
)

// Row conversion shared by the services. Dates stored as DATE come back as
// UTC midnight; they are re-anchored to the service location so calendar
// comparisons see the stored day.

// civilDate returns midnight of t's calendar date in loc.
func civilDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func rowToClient(row repository.Client, loc *time.Location) (*domain.Client, error) {
	var structure domain.Structure
	if len(row.Structure) > 0 {
		if err := json.Unmarshal(row.Structure, &structure); err != nil {
			return nil, fmt.Errorf("decode structure of client %s: %w", row.ID, err)
		}
	}

	client := &domain.Client{
		ID:        row.ID,
		Name:      row.Name,
		Address:   row.Address,
		Phone:     row.Phone,
		Email:     row.Email,
		Type:      domain.ClientType(row.Type),
		Structure: structure,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.NextInspectionDate.Valid {
		due := civilDate(row.NextInspectionDate.Time, loc)
		client.NextInspectionDate = &due
	}
	return client, nil
}

func rowToInspection(row repository.Inspection, clientName string) (*domain.Inspection, error) {
	var findings domain.Findings
	if err := json.Unmarshal(row.Findings, &findings); err != nil {
		return nil, fmt.Errorf("decode findings of inspection %s: %w", row.ID, err)
	}

	return &domain.Inspection{
		ID:                  row.ID,
		ClientID:            row.ClientID,
		InspectorID:         row.InspectorID,
		Status:              domain.InspectionStatus(row.Status),
		ComplianceScore:     int(row.ComplianceScore),
		CriticalIssuesCount: int(row.CriticalIssuesCount),
		Findings:            findings,
		Summary:             row.Summary,
		CreatedAt:           row.CreatedAt,
		ClientName:          clientName,
	}, nil
}

func getRowToInspection(row repository.GetInspectionRow) (*domain.Inspection, error) {
	return rowToInspection(repository.Inspection{
		ID:                  row.ID,
		ClientID:            row.ClientID,
		InspectorID:         row.InspectorID,
		Status:              row.Status,
		ComplianceScore:     row.ComplianceScore,
		CriticalIssuesCount: row.CriticalIssuesCount,
		Findings:            row.Findings,
		Summary:             row.Summary,
		CreatedAt:           row.CreatedAt,
	}, row.ClientName)
}

func listRowToInspection(row repository.ListInspectionsRow) (*domain.Inspection, error) {
	return rowToInspection(repository.Inspection{
		ID:                  row.ID,
		ClientID:            row.ClientID,
		InspectorID:         row.InspectorID,
		Status:              row.Status,
		ComplianceScore:     row.ComplianceScore,
		CriticalIssuesCount: row.CriticalIssuesCount,
		Findings:            row.Findings,
		Summary:             row.Summary,
		CreatedAt:           row.CreatedAt,
	}, row.ClientName)
}

func rowToNotificationLog(row repository.NotificationLog) domain.NotificationLog {
	n := domain.NotificationLog{
		ID:           row.ID,
		ClientID:     row.ClientID,
		InspectionID: domain.NullUUIDPtr(row.InspectionID),
		Type:         domain.NotificationType(row.Type),
		Recipient:    row.Recipient,
		Message:      row.Message,
		Status:       domain.NotificationStatus(row.Status),
		CreatedAt:    row.CreatedAt,
	}
	if row.Metadata.Valid {
		n.Metadata = row.Metadata.RawMessage
	}
	return n
}

func rowToReport(row repository.Report) *domain.Report {
	return &domain.Report{
		ID:             row.ID,
		InspectionID:   row.InspectionID,
		PDFStorageKey:  domain.NullStringValue(row.PdfStorageKey),
		XLSXStorageKey: domain.NullStringValue(row.XlsxStorageKey),
		GeneratedAt:    row.CreatedAt,
	}
}
