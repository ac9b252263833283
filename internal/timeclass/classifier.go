package timeclass

import (
	"time"

	"go-payroll/internal/overtime"
	"go-payroll/internal/settings"
	"go-payroll/internal/shift"
)

// DayInput is everything classification needs for one employee-date.
type DayInput struct {
	Date     time.Time
	Day      shift.ResolvedDay
	ClockIn  *time.Time
	ClockOut *time.Time
	Overtime *overtime.OvertimeRequest
}

// DayResult attributes the worked time of one date to regular hours and at
// most one overtime bucket per window segment.
type DayResult struct {
	RegularHours   float64
	OvertimeHours  map[Bucket]float64
	LateMinutes    int
	EarlyDeparture bool
}

// ClassifyDay splits a date's worked time into regular hours and the five
// overtime buckets. Hours inside an approved overtime window are overtime;
// hours inside the shift window on a workday are regular; presence on a
// weekly-off or holiday without an approved request yields zero overtime.
func ClassifyDay(in DayInput, policy settings.RoundingPolicy) DayResult {
	result := DayResult{OvertimeHours: ZeroHours()}

	if in.ClockIn == nil || in.ClockOut == nil {
		return result
	}
	workStart, workEnd := *in.ClockIn, *in.ClockOut
	if !workEnd.After(workStart) {
		return result
	}

	shiftStart, shiftEnd := in.Day.Shift.WindowOn(in.Date)

	var otStart, otEnd time.Time
	hasOvertime := in.Overtime != nil && in.Overtime.Payable()
	if hasOvertime {
		otStart, otEnd = in.Overtime.WindowOn(in.Date)
	}

	switch in.Day.DayType {
	case shift.DayTypeWorkday:
		regularMinutes := overlapMinutes(workStart, workEnd, shiftStart, shiftEnd)
		var otMinutes float64
		if hasOvertime {
			otMinutes = overlapMinutes(workStart, workEnd, otStart, otEnd)
			// The approved window wins where it intersects the shift.
			regularMinutes -= overlapMinutes(
				maxTime(workStart, shiftStart), minTime(workEnd, shiftEnd),
				otStart, otEnd,
			)
		}
		result.RegularHours = regularMinutes / 60
		result.OvertimeHours[BucketWorkdayOutside] = roundOvertime(otMinutes, policy) / 60

		if workStart.After(shiftStart) {
			result.LateMinutes = int(workStart.Sub(shiftStart).Minutes())
		}
		if workEnd.Before(shiftEnd) {
			result.EarlyDeparture = true
		}

	case shift.DayTypeWeeklyOff:
		if !hasOvertime {
			return result
		}
		inside, outside := splitByShiftWindow(workStart, workEnd, otStart, otEnd, shiftStart, shiftEnd)
		result.OvertimeHours[BucketWeekendInside] = roundOvertime(inside, policy) / 60
		result.OvertimeHours[BucketWeekendOutside] = roundOvertime(outside, policy) / 60

	case shift.DayTypeHoliday:
		if !hasOvertime {
			return result
		}
		inside, outside := splitByShiftWindow(workStart, workEnd, otStart, otEnd, shiftStart, shiftEnd)
		result.OvertimeHours[BucketHolidayRegular] = roundOvertime(inside, policy) / 60
		result.OvertimeHours[BucketHolidayOvertime] = roundOvertime(outside, policy) / 60
	}

	return result
}

// splitByShiftWindow intersects the worked time with the approved overtime
// window, then splits it into the minutes inside and beyond the normal shift
// window.
func splitByShiftWindow(workStart, workEnd, otStart, otEnd, shiftStart, shiftEnd time.Time) (inside, outside float64) {
	coveredStart := maxTime(workStart, otStart)
	coveredEnd := minTime(workEnd, otEnd)
	total := overlapMinutes(coveredStart, coveredEnd, otStart, otEnd)
	if total <= 0 {
		return 0, 0
	}

	inside = overlapMinutes(coveredStart, coveredEnd, shiftStart, shiftEnd)
	outside = total - inside
	return inside, outside
}

// roundOvertime applies the configured minimum threshold and rounding
// increment to an overtime contribution, in minutes.
func roundOvertime(minutes float64, policy settings.RoundingPolicy) float64 {
	if minutes <= 0 {
		return 0
	}
	if minutes < float64(policy.MinimumMinutes) {
		return 0
	}
	if policy.RoundToMinutes <= 0 {
		return minutes
	}
	increment := float64(policy.RoundToMinutes)
	steps := int(minutes/increment + 0.5)
	return float64(steps) * increment
}

func overlapMinutes(aStart, aEnd, bStart, bEnd time.Time) float64 {
	start := maxTime(aStart, bStart)
	end := minTime(aEnd, bEnd)
	if !end.After(start) {
		return 0
	}
	return end.Sub(start).Minutes()
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
