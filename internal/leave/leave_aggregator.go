package leave

import (
	"time"

	"go-payroll/internal/holiday"
)

// Summary holds the per-period day counts consumed by the payroll engine.
type Summary struct {
	PaidLeaveDays   float64
	UnpaidLeaveDays float64
	HolidayDays     float64
	SickDays        float64
	BusinessDays    float64
	AnnualDays      float64
}

// Aggregate converts approved leave requests and the holiday calendar,
// clipped to [periodStart, periodEnd], into day counts. A HALF_DAY request
// always counts 0.5 regardless of its recorded span, and UNPAID leave always
// lands in the unpaid bucket. Leave days falling on a holiday are not
// counted again as leave. A full-day span counts every calendar day it covers
// except holidays: requests are filed against the calendar, so weekly-off
// days inside the span consume leave balance like any other day.
func Aggregate(leaves []Leave, holidays []holiday.Holiday, periodStart, periodEnd time.Time) Summary {
	var sum Summary

	holidaySet := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		if !h.Date.Before(periodStart) && !h.Date.After(periodEnd) {
			holidaySet[h.Date.Format("2006-01-02")] = true
			sum.HolidayDays++
		}
	}

	for _, l := range leaves {
		if l.Status != StatusApproved {
			continue
		}

		days := countLeaveDays(l, holidaySet, periodStart, periodEnd)
		if days == 0 {
			continue
		}

		switch l.LeaveType {
		case TypeUnpaid:
			sum.UnpaidLeaveDays += days
			continue
		case TypeSick:
			sum.SickDays += days
		case TypeBusiness:
			sum.BusinessDays += days
		default:
			sum.AnnualDays += days
		}
		sum.PaidLeaveDays += days
	}

	return sum
}

// ApprovedDates returns the set of dates (keyed "2006-01-02") inside
// [periodStart, periodEnd] covered by an approved FULL_DAY request. Attendance
// recorded on such a date must not be counted again as presence; the leave
// day wins. Half-day requests are excluded: the employee works the other half
// and that attendance still counts.
func ApprovedDates(leaves []Leave, periodStart, periodEnd time.Time) map[string]bool {
	dates := make(map[string]bool)
	for _, l := range leaves {
		if l.Status != StatusApproved || l.LeaveFormat == FormatHalfDay {
			continue
		}
		start := maxDate(l.StartDate, periodStart)
		end := minDate(l.EndDate, periodEnd)
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			dates[d.Format("2006-01-02")] = true
		}
	}
	return dates
}

func countLeaveDays(l Leave, holidaySet map[string]bool, periodStart, periodEnd time.Time) float64 {
	start := maxDate(l.StartDate, periodStart)
	end := minDate(l.EndDate, periodEnd)
	if start.After(end) {
		return 0
	}

	if l.LeaveFormat == FormatHalfDay {
		if holidaySet[start.Format("2006-01-02")] {
			return 0
		}
		return 0.5
	}

	var days float64
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if holidaySet[d.Format("2006-01-02")] {
			continue
		}
		days++
	}
	return days
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
