package holiday

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Holiday is a read-only calendar entry. ShiftOffsets maps a shift code to a
// day offset for shift patterns that observe the holiday on a shifted
// calendar day (their workweek differs from the default).
type Holiday struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Date time.Time `gorm:"type:date;not null;uniqueIndex"`
	Name string    `gorm:"type:varchar(100);not null"`

	ShiftOffsets json.RawMessage `gorm:"type:jsonb"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OffsetFor returns the holiday date as observed by the given shift.
func (h Holiday) OffsetFor(shiftCode string) time.Time {
	if len(h.ShiftOffsets) == 0 {
		return h.Date
	}
	var offsets map[string]int
	if err := json.Unmarshal(h.ShiftOffsets, &offsets); err != nil {
		return h.Date
	}
	if days, ok := offsets[shiftCode]; ok {
		return h.Date.AddDate(0, 0, days)
	}
	return h.Date
}
