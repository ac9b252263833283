package payroll

import "go-payroll/internal/timeclass"

type CalculatePayrollRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
}

// BucketAmounts is the stable five-key wire shape shared by overtime hours,
// rates, and pay.
type BucketAmounts struct {
	WorkdayOutside  float64 `json:"workdayOutside"`
	WeekendInside   float64 `json:"weekendInside"`
	WeekendOutside  float64 `json:"weekendOutside"`
	HolidayRegular  float64 `json:"holidayRegular"`
	HolidayOvertime float64 `json:"holidayOvertime"`
}

// Total sums all five buckets.
func (b BucketAmounts) Total() float64 {
	return b.WorkdayOutside + b.WeekendInside + b.WeekendOutside + b.HolidayRegular + b.HolidayOvertime
}

func bucketAmountsFromMap(m map[timeclass.Bucket]float64) BucketAmounts {
	return BucketAmounts{
		WorkdayOutside:  m[timeclass.BucketWorkdayOutside],
		WeekendInside:   m[timeclass.BucketWeekendInside],
		WeekendOutside:  m[timeclass.BucketWeekendOutside],
		HolidayRegular:  m[timeclass.BucketHolidayRegular],
		HolidayOvertime: m[timeclass.BucketHolidayOvertime],
	}
}

type AllowanceAmounts struct {
	Transportation float64 `json:"transportation"`
	Meal           float64 `json:"meal"`
	Housing        float64 `json:"housing"`
}

func (a AllowanceAmounts) Total() float64 {
	return a.Transportation + a.Meal + a.Housing
}

type DeductionAmounts struct {
	SocialSecurity       float64 `json:"socialSecurity"`
	Tax                  float64 `json:"tax"`
	UnpaidLeaveDeduction float64 `json:"unpaidLeaveDeduction"`
}

func (d DeductionAmounts) Total() float64 {
	return d.SocialSecurity + d.Tax + d.UnpaidLeaveDeduction
}

// PayrollResult is the flat, fully-typed calculation output. Its JSON field
// names are a stable wire contract consumed by persistence, reports, and the
// admin UI.
type PayrollResult struct {
	RegularHours        float64          `json:"regularHours"`
	OvertimeHoursByType BucketAmounts    `json:"overtimeHoursByType"`
	OvertimeRatesByType BucketAmounts    `json:"overtimeRatesByType"`
	OvertimePayByType   BucketAmounts    `json:"overtimePayByType"`
	TotalOvertimeHours  float64          `json:"totalOvertimeHours"`
	TotalOvertimePay    float64          `json:"totalOvertimePay"`
	BasePay             float64          `json:"basePay"`
	RegularHourlyRate   float64          `json:"regularHourlyRate"`
	Allowances          AllowanceAmounts `json:"allowances"`
	TotalAllowances     float64          `json:"totalAllowances"`
	Deductions          DeductionAmounts `json:"deductions"`
	TotalDeductions     float64          `json:"totalDeductions"`
	SickLeaveDays       float64          `json:"sickLeaveDays"`
	BusinessLeaveDays   float64          `json:"businessLeaveDays"`
	AnnualLeaveDays     float64          `json:"annualLeaveDays"`
	UnpaidLeaveDays     float64          `json:"unpaidLeaveDays"`
	Holidays            float64          `json:"holidays"`
	TotalWorkingDays    float64          `json:"totalWorkingDays"`
	TotalPresent        float64          `json:"totalPresent"`
	TotalAbsent         float64          `json:"totalAbsent"`
	TotalLateMinutes    int              `json:"totalLateMinutes"`
	EarlyDepartures     int              `json:"earlyDepartures"`
	NetPayable          float64          `json:"netPayable"`
	Status              string           `json:"status"`
}

type PayrollResponse struct {
	ID              string        `json:"id"`
	EmployeeID      string        `json:"employee_id"`
	PayrollPeriodID string        `json:"payroll_period_id"`
	PeriodStart     string        `json:"period_start"`
	PeriodEnd       string        `json:"period_end"`
	Result          PayrollResult `json:"result"`
}
