package shift

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	AdjustmentStatusPending  = "PENDING"
	AdjustmentStatusApproved = "APPROVED"
	AdjustmentStatusRejected = "REJECTED"
)

// Shift is a named work window. Times use the "15:04" wall-clock format and
// WorkDays is a comma-separated weekday set (0=Sunday .. 6=Saturday).
type Shift struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code      string    `gorm:"type:varchar(30);not null;uniqueIndex"`
	Name      string    `gorm:"type:varchar(100);not null"`
	StartTime string    `gorm:"type:varchar(5);not null"`
	EndTime   string    `gorm:"type:varchar(5);not null"`
	WorkDays  string    `gorm:"type:varchar(20);not null;default:'1,2,3,4,5'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveOn reports whether the shift schedules work on the given weekday.
func (s Shift) ActiveOn(wd time.Weekday) bool {
	for _, part := range strings.Split(s.WorkDays, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if time.Weekday(d) == wd {
			return true
		}
	}
	return false
}

// WindowOn anchors the shift's wall-clock window to a calendar date.
func (s Shift) WindowOn(date time.Time) (time.Time, time.Time) {
	start := atClock(date, s.StartTime)
	end := atClock(date, s.EndTime)
	return start, end
}

func atClock(date time.Time, clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

// ShiftAdjustment overrides an employee's default shift for exactly one date
// when approved.
type ShiftAdjustment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_shift_adjustments_employee_date"`
	Date       time.Time `gorm:"type:date;not null;index:idx_shift_adjustments_employee_date"`
	ShiftCode  string    `gorm:"type:varchar(30);not null"`
	Status     string    `gorm:"type:varchar(20);not null;default:'PENDING'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
