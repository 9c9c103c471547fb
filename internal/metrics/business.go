package metrics

// InspectionSubmitted records one stored inspection.
func InspectionSubmitted(status string, score, criticalCount int) {
	InspectionsSubmitted.WithLabelValues(status).Inc()
	ComplianceScore.Observe(float64(score))
	CriticalIssuesTotal.Add(float64(criticalCount))
}

// ReminderAttempted records a reminder email with its delivery status.
func ReminderAttempted(notificationType, status string) {
	RemindersSent.WithLabelValues(notificationType, status).Inc()
}

// ReportGenerated records one rendered report file.
func ReportGenerated(format string) {
	ReportsGenerated.WithLabelValues(format).Inc()
}

// DashboardCache records the outcome of a dashboard cache lookup.
func DashboardCache(result string) {
	DashboardCacheRequests.WithLabelValues(result).Inc()
}
