package payroll

import (
	"context"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	"go-payroll/internal/holiday"
	"go-payroll/internal/leave"
	"go-payroll/internal/overtime"
	"go-payroll/internal/settings"
	"go-payroll/internal/timeclass"

	"go.uber.org/zap"
)

// Engine turns one employee's raw period facts into a PayrollResult. All
// arithmetic is pure CPU work; the only I/O is reading the holiday calendar,
// approved overtime, and the settings snapshot.
//
//go:generate mockgen -source=payroll_engine.go -destination=mock/payroll_engine_mock.go -package=mock
type Engine interface {
	Calculate(
		ctx context.Context,
		emp *employee.Employee,
		entries []attendance.TimeEntry,
		leaves []leave.Leave,
		periodStart, periodEnd time.Time,
	) (PayrollResult, error)
}

type engine struct {
	classifier       timeclass.Classifier
	settingsResolver settings.Resolver
	holidayRepo      holiday.Repository
	overtimeRepo     overtime.Repository
	logger           *zap.Logger
}

func NewEngine(
	classifier timeclass.Classifier,
	settingsResolver settings.Resolver,
	holidayRepo holiday.Repository,
	overtimeRepo overtime.Repository,
	logger ...*zap.Logger,
) Engine {
	l := zap.L().Named("payroll.engine")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.engine")
	}
	return &engine{
		classifier:       classifier,
		settingsResolver: settingsResolver,
		holidayRepo:      holidayRepo,
		overtimeRepo:     overtimeRepo,
		logger:           l,
	}
}

func (e *engine) Calculate(
	ctx context.Context,
	emp *employee.Employee,
	entries []attendance.TimeEntry,
	leaves []leave.Leave,
	periodStart, periodEnd time.Time,
) (PayrollResult, error) {
	rates, err := e.settingsResolver.Resolve(ctx, emp.EmployeeType)
	if err != nil {
		return PayrollResult{}, err
	}

	holidays, err := e.holidayRepo.FindInRange(ctx, periodStart, periodEnd)
	if err != nil {
		return PayrollResult{}, err
	}

	otRequests, err := e.overtimeRepo.FindPayableByEmployeeAndRange(ctx, emp.ID.String(), periodStart, periodEnd)
	if err != nil {
		return PayrollResult{}, err
	}

	classified, err := e.classifier.ClassifyPeriod(ctx, emp, entries, otRequests, leaves, holidays, rates.Rounding, periodStart, periodEnd)
	if err != nil {
		return PayrollResult{}, err
	}

	leaveSummary := leave.Aggregate(leaves, holidays, periodStart, periodEnd)

	result := buildResult(emp, rates, classified, leaveSummary)

	if emp.EmployeeType == employee.TypeProbation && rates.Type.Probation != nil {
		result = ApplyProbation(result, *rates.Type.Probation)
	}

	e.logger.Debug("payroll calculated",
		zap.String("employee_id", emp.ID.String()),
		zap.String("period_start", periodStart.Format("2006-01-02")),
		zap.String("period_end", periodEnd.Format("2006-01-02")),
		zap.Float64("net_payable", result.NetPayable),
	)

	return result, nil
}

func buildResult(
	emp *employee.Employee,
	rates settings.ResolvedRates,
	classified timeclass.PeriodResult,
	leaveSummary leave.Summary,
) PayrollResult {
	hourlyRate := regularHourlyRate(emp, rates.Period)

	otHours := bucketAmountsFromMap(classified.OvertimeHours)
	otRates := BucketAmounts{
		WorkdayOutside:  rates.Type.OvertimeRates.WorkdayOutside,
		WeekendInside:   rates.Type.OvertimeRates.WeekendInside,
		WeekendOutside:  rates.Type.OvertimeRates.WeekendOutside,
		HolidayRegular:  rates.Type.OvertimeRates.HolidayRegular,
		HolidayOvertime: rates.Type.OvertimeRates.HolidayOvertime,
	}
	otPay := BucketAmounts{
		WorkdayOutside:  otHours.WorkdayOutside * hourlyRate * otRates.WorkdayOutside,
		WeekendInside:   otHours.WeekendInside * hourlyRate * otRates.WeekendInside,
		WeekendOutside:  otHours.WeekendOutside * hourlyRate * otRates.WeekendOutside,
		HolidayRegular:  otHours.HolidayRegular * hourlyRate * otRates.HolidayRegular,
		HolidayOvertime: otHours.HolidayOvertime * hourlyRate * otRates.HolidayOvertime,
	}

	basePay := hourlyRate * classified.RegularHours

	allowances := AllowanceAmounts{
		Transportation: rates.Type.Allowances.Transportation,
		Meal:           rates.Type.Allowances.Meal,
		Housing:        rates.Type.Allowances.Housing,
	}

	ss := rates.Type.SocialSecurity
	deductions := DeductionAmounts{
		SocialSecurity:       clamp(basePay, ss.MinBase, ss.MaxBase) * ss.Rate,
		Tax:                  rates.Type.TaxAmount,
		UnpaidLeaveDeduction: leaveSummary.UnpaidLeaveDays * hourlyRate * rates.Period.DailyHours,
	}

	totalAbsent := classified.ScheduledWorkdays - classified.PresentDays - leaveSummary.PaidLeaveDays - leaveSummary.UnpaidLeaveDays
	if totalAbsent < 0 {
		totalAbsent = 0
	}

	result := PayrollResult{
		RegularHours:        classified.RegularHours,
		OvertimeHoursByType: otHours,
		OvertimeRatesByType: otRates,
		OvertimePayByType:   otPay,
		TotalOvertimeHours:  otHours.Total(),
		TotalOvertimePay:    otPay.Total(),
		BasePay:             basePay,
		RegularHourlyRate:   hourlyRate,
		Allowances:          allowances,
		TotalAllowances:     allowances.Total(),
		Deductions:          deductions,
		TotalDeductions:     deductions.Total(),
		SickLeaveDays:       leaveSummary.SickDays,
		BusinessLeaveDays:   leaveSummary.BusinessDays,
		AnnualLeaveDays:     leaveSummary.AnnualDays,
		UnpaidLeaveDays:     leaveSummary.UnpaidLeaveDays,
		Holidays:            leaveSummary.HolidayDays,
		TotalWorkingDays:    classified.PresentDays + leaveSummary.PaidLeaveDays + leaveSummary.HolidayDays,
		TotalPresent:        classified.PresentDays,
		TotalAbsent:         totalAbsent,
		TotalLateMinutes:    classified.LateMinutes,
		EarlyDepartures:     classified.EarlyDepartures,
		Status:              StatusDraft,
	}
	result.NetPayable = result.BasePay + result.TotalOvertimePay + result.TotalAllowances - result.TotalDeductions

	return result
}

func regularHourlyRate(emp *employee.Employee, period settings.PeriodRules) float64 {
	if emp.SalaryBasis == employee.SalaryBasisHourly {
		return emp.BaseSalary
	}
	if period.StandardHours <= 0 {
		return 0
	}
	return emp.BaseSalary / period.StandardHours
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
