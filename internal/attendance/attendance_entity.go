package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	PeriodTypeRegular  = "REGULAR"
	PeriodTypeOvertime = "OVERTIME"

	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

// TimeEntry is the raw per-date attendance fact consumed by classification.
// Capture (face detection, geofencing) happens upstream; the engine only
// reads completed pairs.
type TimeEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_time_entries_employee_date"`
	Date       time.Time `gorm:"type:date;not null;index:idx_time_entries_employee_date"`
	PeriodType string    `gorm:"type:varchar(10);not null;default:'REGULAR'"`

	ClockIn  *time.Time
	ClockOut *time.Time

	RegularHours  float64 `gorm:"type:numeric(5,2);not null;default:0"`
	OvertimeHours float64 `gorm:"type:numeric(5,2);not null;default:0"`

	Status string `gorm:"type:varchar(20);not null;default:'IN_PROGRESS'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
