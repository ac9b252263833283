package overtime

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPendingResponse    = "PENDING_RESPONSE"
	StatusPending            = "PENDING"
	StatusApproved           = "APPROVED"
	StatusRejected           = "REJECTED"
	StatusDeclinedByEmployee = "DECLINED_BY_EMPLOYEE"

	ResponseApprove = "APPROVE"
	ResponseDecline = "DECLINE"
)

// OvertimeRequest contributes hours only when status is APPROVED and the
// employee responded APPROVE. Every other state counts as zero.
type OvertimeRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_overtime_employee_date"`
	Date       time.Time `gorm:"type:date;not null;index:idx_overtime_employee_date"`

	StartTime       string `gorm:"type:varchar(5);not null"`
	EndTime         string `gorm:"type:varchar(5);not null"`
	DurationMinutes int    `gorm:"type:int;not null;default:0"`

	IsDayOffOvertime   bool `gorm:"not null;default:false"`
	IsInsideShiftHours bool `gorm:"not null;default:false"`

	Status           string  `gorm:"type:varchar(30);not null;default:'PENDING_RESPONSE'"`
	EmployeeResponse *string `gorm:"type:varchar(10)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// Payable reports whether the request is in the one state that contributes
// overtime hours.
func (o OvertimeRequest) Payable() bool {
	return o.Status == StatusApproved &&
		o.EmployeeResponse != nil &&
		*o.EmployeeResponse == ResponseApprove
}

// WindowOn anchors the requested overtime window to its calendar date.
func (o OvertimeRequest) WindowOn(date time.Time) (time.Time, time.Time) {
	return atClock(date, o.StartTime), atClock(date, o.EndTime)
}

func atClock(date time.Time, clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}
