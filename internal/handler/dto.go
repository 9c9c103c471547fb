package handler

import (
	"encoding/json"
	"time"

	"github.com/DukeRupert/fireaudit/internal/domain"
	"github.com/DukeRupert/fireaudit/internal/schedule"
	"github.com/google/uuid"
)

// =============================================================================
// Response Types
// =============================================================================

type clientResponse struct {
	ID                 uuid.UUID         `json:"id"`
	Name               string            `json:"name"`
	Address            string            `json:"address"`
	Phone              string            `json:"phone"`
	Email              string            `json:"email"`
	Type               domain.ClientType `json:"type"`
	Structure          domain.Structure  `json:"structure"`
	NextInspectionDate *Date             `json:"next_inspection_date"`
	SchedulingStatus   schedule.Status   `json:"scheduling_status"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

func newClientResponse(c *domain.Client) clientResponse {
	return clientResponse{
		ID:                 c.ID,
		Name:               c.Name,
		Address:            c.Address,
		Phone:              c.Phone,
		Email:              c.Email,
		Type:               c.Type,
		Structure:          c.Structure,
		NextInspectionDate: toDate(c.NextInspectionDate),
		SchedulingStatus:   c.SchedulingStatus,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

type inspectionResponse struct {
	ID                  uuid.UUID               `json:"id"`
	ClientID            uuid.UUID               `json:"client_id"`
	ClientName          string                  `json:"client_name,omitempty"`
	InspectorID         uuid.UUID               `json:"inspector_id"`
	Status              domain.InspectionStatus `json:"status"`
	ComplianceScore     int                     `json:"compliance_score"`
	CriticalIssuesCount int                     `json:"critical_issues_count"`
	Summary             string                  `json:"summary"`
	Findings            *domain.Findings        `json:"findings,omitempty"`
	CreatedAt           time.Time               `json:"created_at"`
}

// newInspectionResponse omits the findings record from list views.
func newInspectionResponse(i *domain.Inspection, withFindings bool) inspectionResponse {
	resp := inspectionResponse{
		ID:                  i.ID,
		ClientID:            i.ClientID,
		ClientName:          i.ClientName,
		InspectorID:         i.InspectorID,
		Status:              i.Status,
		ComplianceScore:     i.ComplianceScore,
		CriticalIssuesCount: i.CriticalIssuesCount,
		Summary:             i.Summary,
		CreatedAt:           i.CreatedAt,
	}
	if withFindings {
		f := i.Findings
		resp.Findings = &f
	}
	return resp
}

type notificationResponse struct {
	ID           uuid.UUID                 `json:"id"`
	ClientID     uuid.UUID                 `json:"client_id"`
	InspectionID *uuid.UUID                `json:"inspection_id,omitempty"`
	Type         domain.NotificationType   `json:"type"`
	Recipient    string                    `json:"recipient"`
	Message      string                    `json:"message"`
	Status       domain.NotificationStatus `json:"status"`
	Metadata     json.RawMessage           `json:"metadata,omitempty"`
	CreatedAt    time.Time                 `json:"created_at"`
}

func newNotificationResponse(n *domain.NotificationLog) notificationResponse {
	return notificationResponse{
		ID:           n.ID,
		ClientID:     n.ClientID,
		InspectionID: n.InspectionID,
		Type:         n.Type,
		Recipient:    n.Recipient,
		Message:      n.Message,
		Status:       n.Status,
		Metadata:     n.Metadata,
		CreatedAt:    n.CreatedAt,
	}
}

type pageResponse[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Limit   int32 `json:"limit"`
	Offset  int32 `json:"offset"`
	HasMore bool  `json:"has_more"`
}

// =============================================================================
// Request Types
// =============================================================================

type clientRequest struct {
	Name               string            `json:"name"`
	Address            string            `json:"address"`
	Phone              string            `json:"phone"`
	Email              string            `json:"email"`
	Type               domain.ClientType `json:"type"`
	Structure          domain.Structure  `json:"structure"`
	NextInspectionDate *Date             `json:"next_inspection_date"`
}

type nextInspectionRequest struct {
	Date *Date `json:"date"`
}

type submitInspectionRequest struct {
	ClientID    uuid.UUID       `json:"client_id"`
	InspectorID uuid.UUID       `json:"inspector_id"`
	Findings    domain.Findings `json:"findings"`
}

type submitInspectionResponse struct {
	Inspection         inspectionResponse `json:"inspection"`
	NextInspectionDate Date               `json:"next_inspection_date"`
	ReportJobQueued    bool               `json:"report_job_queued"`
}
