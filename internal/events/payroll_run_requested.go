package events

import "time"

const PayrollRunRequestedTopic = "hr.payroll.run.requested.v1"

type PayrollRunRequestedEvent struct {
	EventType       string    `json:"event_type"`
	SessionID       string    `json:"session_id"`
	PeriodYearMonth string    `json:"period_year_month"`
	RequestedBy     string    `json:"requested_by"`
	OccurredAt      time.Time `json:"occurred_at"`
}
