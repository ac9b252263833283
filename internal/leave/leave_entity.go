package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusSubmitted = "SUBMITTED"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCanceled  = "CANCELLED"

	TypeAnnual   = "ANNUAL"
	TypeSick     = "SICK"
	TypeBusiness = "BUSINESS"
	TypeUnpaid   = "UNPAID"

	FormatFullDay = "FULL_DAY"
	FormatHalfDay = "HALF_DAY"
)

type Leave struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_employee_dates"`

	LeaveType   string    `gorm:"type:varchar(30);not null;default:'ANNUAL'"`
	LeaveFormat string    `gorm:"type:varchar(20);not null;default:'FULL_DAY'"`
	StartDate   time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	EndDate     time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`

	// FullDayCount is 0.5 for HALF_DAY requests regardless of the recorded
	// span, otherwise the number of days in the range.
	FullDayCount float64 `gorm:"type:numeric(5,1);not null;default:1"`

	Reason string `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectionReason *string    `gorm:"type:text"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ApprovedAt *time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}
