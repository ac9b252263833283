package payroll

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft      = "DRAFT"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusApproved   = "APPROVED"
	StatusPaid       = "PAID"

	PeriodStatusDraft      = "DRAFT"
	PeriodStatusProcessing = "PROCESSING"
	PeriodStatusCompleted  = "COMPLETED"
)

// PayrollPeriod is one unique date range over which pay is aggregated,
// e.g. the 26th of the prior month through the 25th.
type PayrollPeriod struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StartDate time.Time `gorm:"type:date;not null;uniqueIndex:uq_payroll_periods_range"`
	EndDate   time.Time `gorm:"type:date;not null;uniqueIndex:uq_payroll_periods_range"`
	Status    string    `gorm:"type:varchar(20);not null;default:'DRAFT'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Payroll is the computed output, at most one row per employee and period.
// Recomputation overwrites through an upsert, never duplicates.
type Payroll struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payrolls_employee_period"`
	PayrollPeriodID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payrolls_employee_period"`

	RegularHours      float64 `gorm:"type:numeric(7,2);not null;default:0"`
	RegularHourlyRate float64 `gorm:"type:numeric(12,4);not null;default:0"`
	BasePay           float64 `gorm:"type:numeric(12,2);not null;default:0"`

	OvertimeHoursByType json.RawMessage `gorm:"type:jsonb"`
	OvertimeRatesByType json.RawMessage `gorm:"type:jsonb"`
	OvertimePayByType   json.RawMessage `gorm:"type:jsonb"`
	TotalOvertimeHours  float64         `gorm:"type:numeric(7,2);not null;default:0"`
	TotalOvertimePay    float64         `gorm:"type:numeric(12,2);not null;default:0"`

	Allowances      json.RawMessage `gorm:"type:jsonb"`
	TotalAllowances float64         `gorm:"type:numeric(12,2);not null;default:0"`
	Deductions      json.RawMessage `gorm:"type:jsonb"`
	TotalDeductions float64         `gorm:"type:numeric(12,2);not null;default:0"`

	SickLeaveDays     float64 `gorm:"type:numeric(5,1);not null;default:0"`
	BusinessLeaveDays float64 `gorm:"type:numeric(5,1);not null;default:0"`
	AnnualLeaveDays   float64 `gorm:"type:numeric(5,1);not null;default:0"`
	UnpaidLeaveDays   float64 `gorm:"type:numeric(5,1);not null;default:0"`
	Holidays          float64 `gorm:"type:numeric(5,1);not null;default:0"`

	TotalWorkingDays float64 `gorm:"type:numeric(5,1);not null;default:0"`
	TotalPresent     float64 `gorm:"type:numeric(5,1);not null;default:0"`
	TotalAbsent      float64 `gorm:"type:numeric(5,1);not null;default:0"`
	TotalLateMinutes int     `gorm:"type:int;not null;default:0"`
	EarlyDepartures  int     `gorm:"type:int;not null;default:0"`

	NetPayable float64 `gorm:"type:numeric(12,2);not null;default:0"`
	Status     string  `gorm:"type:varchar(20);not null;default:'DRAFT'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
