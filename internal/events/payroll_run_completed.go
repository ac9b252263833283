package events

import "time"

const PayrollRunCompletedTopic = "hr.payroll.run.completed.v1"

type PayrollRunCompletedEvent struct {
	EventType       string    `json:"event_type"`
	SessionID       string    `json:"session_id"`
	PeriodYearMonth string    `json:"period_year_month"`
	TotalEmployees  int       `json:"total_employees"`
	ProcessedCount  int       `json:"processed_count"`
	ErrorCount      int       `json:"error_count"`
	OccurredAt      time.Time `json:"occurred_at"`
}
