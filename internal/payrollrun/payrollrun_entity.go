package payrollrun

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	SessionStatusProcessing = "PROCESSING"
	SessionStatusCompleted  = "COMPLETED"
	SessionStatusError      = "ERROR"

	ResultStatusCompleted = "COMPLETED"
	ResultStatusError     = "ERROR"
)

// ProcessingSession tracks one batch run over a single period. ProcessedCount
// moves regardless of per-employee success; Status flips to ERROR only on an
// orchestrator-level fault, never on an individual employee's failure.
type ProcessingSession struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PeriodYearMonth string    `gorm:"type:varchar(7);not null;index"`
	Status          string    `gorm:"type:varchar(20);not null;default:'PROCESSING'"`
	TotalEmployees  int       `gorm:"type:int;not null;default:0"`
	ProcessedCount  int       `gorm:"type:int;not null;default:0"`
	ErrorMessage    *string   `gorm:"type:varchar(500)"`

	StartedAt  time.Time
	FinishedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ProcessingSession) TableName() string {
	return "payroll_processing_sessions"
}

// ProcessingResult is the per-employee outcome of a batch run, keeping the
// full computed payload for audit and replay.
type ProcessingResult struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmployeeID    uuid.UUID       `gorm:"type:uuid;not null"`
	Status        string          `gorm:"type:varchar(20);not null"`
	ProcessedData json.RawMessage `gorm:"type:jsonb"`
	ErrorMessage  *string         `gorm:"type:varchar(500)"`

	CreatedAt time.Time
}

func (ProcessingResult) TableName() string {
	return "payroll_processing_results"
}
