package timeclass

import (
	"context"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	"go-payroll/internal/holiday"
	"go-payroll/internal/leave"
	"go-payroll/internal/overtime"
	"go-payroll/internal/settings"
	"go-payroll/internal/shift"

	"go.uber.org/zap"
)

// PeriodResult aggregates per-date classification over a payroll period.
type PeriodResult struct {
	RegularHours      float64
	OvertimeHours     map[Bucket]float64
	PresentDays       float64
	ScheduledWorkdays float64
	LateMinutes       int
	EarlyDepartures   int
}

//go:generate mockgen -source=period.go -destination=mock/classifier_mock.go -package=mock
type Classifier interface {
	ClassifyPeriod(
		ctx context.Context,
		emp *employee.Employee,
		entries []attendance.TimeEntry,
		otRequests []overtime.OvertimeRequest,
		leaves []leave.Leave,
		holidays []holiday.Holiday,
		policy settings.RoundingPolicy,
		periodStart, periodEnd time.Time,
	) (PeriodResult, error)
}

type classifier struct {
	shiftResolver shift.Resolver
	logger        *zap.Logger
}

func NewClassifier(shiftResolver shift.Resolver, logger ...*zap.Logger) Classifier {
	l := zap.L().Named("timeclass.classifier")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timeclass.classifier")
	}
	return &classifier{shiftResolver: shiftResolver, logger: l}
}

func (c *classifier) ClassifyPeriod(
	ctx context.Context,
	emp *employee.Employee,
	entries []attendance.TimeEntry,
	otRequests []overtime.OvertimeRequest,
	leaves []leave.Leave,
	holidays []holiday.Holiday,
	policy settings.RoundingPolicy,
	periodStart, periodEnd time.Time,
) (PeriodResult, error) {
	result := PeriodResult{OvertimeHours: ZeroHours()}

	leaveDates := leave.ApprovedDates(leaves, periodStart, periodEnd)

	entriesByDate := make(map[string]attendance.TimeEntry, len(entries))
	for _, e := range entries {
		entriesByDate[e.Date.Format("2006-01-02")] = e
	}
	otByDate := make(map[string]overtime.OvertimeRequest, len(otRequests))
	for _, o := range otRequests {
		otByDate[o.Date.Format("2006-01-02")] = o
	}

	for date := periodStart; !date.After(periodEnd); date = date.AddDate(0, 0, 1) {
		day, err := c.shiftResolver.ResolveDay(ctx, emp, date, holidays)
		if err != nil {
			// No resolvable shift means no date in the period can be
			// classified; the whole calculation is off.
			return PeriodResult{}, err
		}

		key := date.Format("2006-01-02")
		in := DayInput{Date: date, Day: day}
		// A date covered by an approved full-day leave is a leave day,
		// never a presence day: clock pairs and overtime recorded on it
		// are ignored so the same date is not counted twice.
		if !leaveDates[key] {
			if entry, ok := entriesByDate[key]; ok {
				in.ClockIn = entry.ClockIn
				in.ClockOut = entry.ClockOut
			}
			if ot, ok := otByDate[key]; ok {
				in.Overtime = &ot
			}
		}

		dayResult := ClassifyDay(in, policy)

		result.RegularHours += dayResult.RegularHours
		for b, h := range dayResult.OvertimeHours {
			result.OvertimeHours[b] += h
		}
		result.LateMinutes += dayResult.LateMinutes
		if dayResult.EarlyDeparture {
			result.EarlyDepartures++
		}

		if day.DayType == shift.DayTypeWorkday {
			result.ScheduledWorkdays++
			if in.ClockIn != nil && in.ClockOut != nil {
				result.PresentDays++
			}
		}
	}

	return result, nil
}
