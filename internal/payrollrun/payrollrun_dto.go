package payrollrun

import "encoding/json"

type StartRunRequest struct {
	PeriodYearMonth string `json:"period" binding:"required"`
}

type StartRunResponse struct {
	SessionID       string `json:"session_id"`
	PeriodYearMonth string `json:"period"`
	Status          string `json:"status"`
}

type SessionStatusResponse struct {
	SessionID       string  `json:"session_id"`
	PeriodYearMonth string  `json:"period"`
	Status          string  `json:"status"`
	TotalEmployees  int     `json:"total_employees"`
	ProcessedCount  int     `json:"processed_count"`
	Error           *string `json:"error,omitempty"`
}

type ResultResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	Status        string          `json:"status"`
	ProcessedData json.RawMessage `json:"processed_data,omitempty"`
	Error         *string         `json:"error,omitempty"`
}
