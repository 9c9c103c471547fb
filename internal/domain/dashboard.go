package domain

import (
	"time"

	"github.com/DukeRupert/fireaudit/internal/schedule"
	"github.com/google/uuid"
)

// DashboardStats are the headline numbers of the compliance dashboard.
type DashboardStats struct {
	TotalInspections int64 `json:"total_inspections"`
	ComplianceRate   int   `json:"compliance_rate"` // Completed / total, percent
	ActionRequired   int64 `json:"action_required"`
	CriticalOpen     int64 `json:"critical_open"` // Sum of criticals over Action Required inspections
}

// ActionItem is one client entry in a dashboard action list.
type ActionItem struct {
	ClientID           uuid.UUID       `json:"client_id"`
	ClientName         string          `json:"client_name"`
	Address            string          `json:"address"`
	NextInspectionDate time.Time       `json:"next_inspection_date"`
	Status             schedule.Status `json:"status"`
	OverdueDays        int             `json:"overdue_days,omitempty"`
}

// ActionLists buckets scheduled clients by urgency.
type ActionLists struct {
	Urgent   []ActionItem `json:"urgent"`
	Pending  []ActionItem `json:"pending"`
	Upcoming []ActionItem `json:"upcoming"`
}

// Dashboard is the full dashboard payload.
type Dashboard struct {
	Stats       DashboardStats `json:"stats"`
	Actions     ActionLists    `json:"actions"`
	GeneratedAt time.Time      `json:"generated_at"`
}
