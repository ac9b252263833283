package settings

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PayrollSettings is the single current settings row. The document is a
// typed structure serialized to one JSONB column and deserialized exactly
// once at the resolver boundary.
type PayrollSettings struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Version  int             `gorm:"type:int;not null;default:1"`
	Current  bool            `gorm:"not null;default:true;index"`
	Document json.RawMessage `gorm:"type:jsonb;not null"`

	UpdatedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Document is the full settings payload, keyed by employee type.
type Document struct {
	EmployeeTypes map[string]TypeSettings `json:"employee_types"`
	Rounding      RoundingPolicy          `json:"rounding"`
	Period        PeriodRules             `json:"period"`
}

type TypeSettings struct {
	OvertimeRates  OvertimeRates    `json:"overtime_rates"`
	Allowances     Allowances       `json:"allowances"`
	SocialSecurity SocialSecurity   `json:"social_security"`
	TaxAmount      float64          `json:"tax_amount"`
	Probation      *ProbationConfig `json:"probation,omitempty"`
}

// OvertimeRates carries the five bucket multipliers applied on top of the
// regular hourly rate.
type OvertimeRates struct {
	WorkdayOutside  float64 `json:"workday_outside"`
	WeekendInside   float64 `json:"weekend_inside"`
	WeekendOutside  float64 `json:"weekend_outside"`
	HolidayRegular  float64 `json:"holiday_regular"`
	HolidayOvertime float64 `json:"holiday_overtime"`
}

type Allowances struct {
	Transportation float64 `json:"transportation"`
	Meal           float64 `json:"meal"`
	Housing        float64 `json:"housing"`
}

type SocialSecurity struct {
	Rate    float64 `json:"rate"`
	MinBase float64 `json:"min_base"`
	MaxBase float64 `json:"max_base"`
}

type ProbationConfig struct {
	BasePayAdjustmentRate float64 `json:"base_pay_adjustment_rate"`
	OvertimeEligible      bool    `json:"overtime_eligible"`
	AllowancesEligible    bool    `json:"allowances_eligible"`
}

// RoundingPolicy governs overtime minute handling: contributions under
// MinimumMinutes are discarded, the rest rounded to RoundToMinutes.
type RoundingPolicy struct {
	MinimumMinutes int `json:"minimum_minutes"`
	RoundToMinutes int `json:"round_to_minutes"`
}

type PeriodRules struct {
	// StartDay is the day of the prior month the payroll period opens on,
	// e.g. 26 for a 26th-to-25th cycle.
	StartDay      int     `json:"start_day"`
	StandardHours float64 `json:"standard_hours"`
	DailyHours    float64 `json:"daily_hours"`
}
