package payroll_test

import (
	"context"
	"testing"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	"go-payroll/internal/holiday"
	"go-payroll/internal/leave"
	"go-payroll/internal/overtime"
	"go-payroll/internal/payroll"
	"go-payroll/internal/settings"
	settingserrors "go-payroll/internal/settings/errors"
	"go-payroll/internal/shift"
	"go-payroll/internal/timeclass"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeClassifier struct {
	classifyPeriodFn func(ctx context.Context, emp *employee.Employee, entries []attendance.TimeEntry, otRequests []overtime.OvertimeRequest, leaves []leave.Leave, holidays []holiday.Holiday, policy settings.RoundingPolicy, periodStart, periodEnd time.Time) (timeclass.PeriodResult, error)
}

func (f *fakeClassifier) ClassifyPeriod(ctx context.Context, emp *employee.Employee, entries []attendance.TimeEntry, otRequests []overtime.OvertimeRequest, leaves []leave.Leave, holidays []holiday.Holiday, policy settings.RoundingPolicy, periodStart, periodEnd time.Time) (timeclass.PeriodResult, error) {
	if f.classifyPeriodFn != nil {
		return f.classifyPeriodFn(ctx, emp, entries, otRequests, leaves, holidays, policy, periodStart, periodEnd)
	}
	return timeclass.PeriodResult{OvertimeHours: timeclass.ZeroHours()}, nil
}

type fakeSettingsResolver struct {
	resolveFn func(ctx context.Context, employeeType string) (settings.ResolvedRates, error)
}

func (f *fakeSettingsResolver) Resolve(ctx context.Context, employeeType string) (settings.ResolvedRates, error) {
	if f.resolveFn != nil {
		return f.resolveFn(ctx, employeeType)
	}
	return settings.ResolvedRates{}, nil
}

func (f *fakeSettingsResolver) CurrentDocument(ctx context.Context) (settings.Document, int, error) {
	return settings.SystemDefaults(), 1, nil
}

func (f *fakeSettingsResolver) UpdateDocument(ctx context.Context, actorID string, doc settings.Document) (settings.Document, error) {
	return doc, nil
}

type fakeHolidayRepository struct {
	findInRangeFn func(ctx context.Context, startDate, endDate time.Time) ([]holiday.Holiday, error)
}

func (f *fakeHolidayRepository) FindInRange(ctx context.Context, startDate, endDate time.Time) ([]holiday.Holiday, error) {
	if f.findInRangeFn != nil {
		return f.findInRangeFn(ctx, startDate, endDate)
	}
	return nil, nil
}

type fakeOvertimeRepository struct {
	findPayableFn func(ctx context.Context, employeeID string, startDate, endDate time.Time) ([]overtime.OvertimeRequest, error)
}

func (f *fakeOvertimeRepository) FindPayableByEmployeeAndRange(ctx context.Context, employeeID string, startDate, endDate time.Time) ([]overtime.OvertimeRequest, error) {
	if f.findPayableFn != nil {
		return f.findPayableFn(ctx, employeeID, startDate, endDate)
	}
	return nil, nil
}

type workdayShiftResolver struct{}

func (workdayShiftResolver) ResolveDay(_ context.Context, _ *employee.Employee, _ time.Time, _ []holiday.Holiday) (shift.ResolvedDay, error) {
	s, _ := shift.CatalogShift("DAY")
	return shift.ResolvedDay{Shift: s, DayType: shift.DayTypeWorkday}, nil
}

func fulltimeRates() settings.ResolvedRates {
	return settings.ResolvedRates{
		Type: settings.TypeSettings{
			OvertimeRates: settings.OvertimeRates{
				WorkdayOutside:  1.5,
				WeekendInside:   1.0,
				WeekendOutside:  3.0,
				HolidayRegular:  2.0,
				HolidayOvertime: 3.0,
			},
			Allowances: settings.Allowances{
				Transportation: 1000,
				Meal:           600,
			},
			SocialSecurity: settings.SocialSecurity{
				Rate:    0.05,
				MinBase: 1650,
				MaxBase: 15000,
			},
			TaxAmount: 200,
		},
		Rounding: settings.RoundingPolicy{MinimumMinutes: 30, RoundToMinutes: 30},
		Period:   settings.PeriodRules{StartDay: 26, StandardHours: 160, DailyHours: 8},
		Version:  1,
	}
}

func classifiedHours(regular float64, bucket timeclass.Bucket, overtimeHours float64) timeclass.PeriodResult {
	hours := timeclass.ZeroHours()
	if bucket != "" {
		hours[bucket] = overtimeHours
	}
	return timeclass.PeriodResult{
		RegularHours:      regular,
		OvertimeHours:     hours,
		PresentDays:       20,
		ScheduledWorkdays: 20,
	}
}

func newTestEngine(classified timeclass.PeriodResult, rates settings.ResolvedRates) payroll.Engine {
	return payroll.NewEngine(
		&fakeClassifier{
			classifyPeriodFn: func(_ context.Context, _ *employee.Employee, _ []attendance.TimeEntry, _ []overtime.OvertimeRequest, _ []leave.Leave, _ []holiday.Holiday, _ settings.RoundingPolicy, _, _ time.Time) (timeclass.PeriodResult, error) {
				return classified, nil
			},
		},
		&fakeSettingsResolver{
			resolveFn: func(_ context.Context, _ string) (settings.ResolvedRates, error) {
				return rates, nil
			},
		},
		&fakeHolidayRepository{},
		&fakeOvertimeRepository{},
	)
}

func TestEngine_Calculate(t *testing.T) {
	ctx := context.Background()
	periodStart := time.Date(2026, 6, 26, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2026, 7, 25, 0, 0, 0, 0, time.UTC)

	t.Run("fulltime monthly with workday overtime", func(t *testing.T) {
		emp := &employee.Employee{
			ID:           uuid.New(),
			EmployeeType: employee.TypeFulltime,
			SalaryBasis:  employee.SalaryBasisMonthly,
			BaseSalary:   10000,
		}
		engine := newTestEngine(classifiedHours(160, timeclass.BucketWorkdayOutside, 5), fulltimeRates())

		result, err := engine.Calculate(ctx, emp, nil, nil, periodStart, periodEnd)

		assert.NoError(t, err)
		assert.Equal(t, 62.5, result.RegularHourlyRate)
		assert.Equal(t, 10000.0, result.BasePay)
		assert.Equal(t, 468.75, result.OvertimePayByType.WorkdayOutside)
		assert.Equal(t, 468.75, result.TotalOvertimePay)
		assert.Equal(t, 1600.0, result.TotalAllowances)
		assert.Equal(t, 500.0, result.Deductions.SocialSecurity)
		assert.Equal(t, 200.0, result.Deductions.Tax)
		assert.Equal(t, payroll.StatusDraft, result.Status)

		expectedNet := result.BasePay + result.TotalOvertimePay + result.TotalAllowances - result.TotalDeductions
		assert.Equal(t, expectedNet, result.NetPayable)
	})

	t.Run("hourly basis uses the stored rate directly", func(t *testing.T) {
		emp := &employee.Employee{
			ID:           uuid.New(),
			EmployeeType: employee.TypeParttime,
			SalaryBasis:  employee.SalaryBasisHourly,
			BaseSalary:   40,
		}
		engine := newTestEngine(classifiedHours(80, "", 0), fulltimeRates())

		result, err := engine.Calculate(ctx, emp, nil, nil, periodStart, periodEnd)

		assert.NoError(t, err)
		assert.Equal(t, 40.0, result.RegularHourlyRate)
		assert.Equal(t, 3200.0, result.BasePay)
	})

	t.Run("social security base is clamped", func(t *testing.T) {
		t.Run("above maximum", func(t *testing.T) {
			emp := &employee.Employee{
				ID:           uuid.New(),
				EmployeeType: employee.TypeFulltime,
				SalaryBasis:  employee.SalaryBasisMonthly,
				BaseSalary:   40000,
			}
			engine := newTestEngine(classifiedHours(160, "", 0), fulltimeRates())

			result, err := engine.Calculate(ctx, emp, nil, nil, periodStart, periodEnd)

			assert.NoError(t, err)
			assert.Equal(t, 750.0, result.Deductions.SocialSecurity)
		})

		t.Run("below minimum", func(t *testing.T) {
			emp := &employee.Employee{
				ID:           uuid.New(),
				EmployeeType: employee.TypeFulltime,
				SalaryBasis:  employee.SalaryBasisMonthly,
				BaseSalary:   1000,
			}
			engine := newTestEngine(classifiedHours(160, "", 0), fulltimeRates())

			result, err := engine.Calculate(ctx, emp, nil, nil, periodStart, periodEnd)

			assert.NoError(t, err)
			assert.Equal(t, 82.5, result.Deductions.SocialSecurity)
		})
	})

	t.Run("unpaid leave deduction uses daily hours", func(t *testing.T) {
		emp := &employee.Employee{
			ID:           uuid.New(),
			EmployeeType: employee.TypeFulltime,
			SalaryBasis:  employee.SalaryBasisMonthly,
			BaseSalary:   10000,
		}
		engine := newTestEngine(classifiedHours(152, "", 0), fulltimeRates())

		unpaid := leave.Leave{
			LeaveType:   leave.TypeUnpaid,
			LeaveFormat: leave.FormatFullDay,
			StartDate:   time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			Status:      leave.StatusApproved,
		}

		result, err := engine.Calculate(ctx, emp, nil, []leave.Leave{unpaid}, periodStart, periodEnd)

		assert.NoError(t, err)
		// 1 day x 62.5/h x 8h
		assert.Equal(t, 500.0, result.Deductions.UnpaidLeaveDeduction)
		assert.Equal(t, 1.0, result.UnpaidLeaveDays)
	})

	t.Run("probation adjustment is applied for probation employees", func(t *testing.T) {
		emp := &employee.Employee{
			ID:           uuid.New(),
			EmployeeType: employee.TypeProbation,
			SalaryBasis:  employee.SalaryBasisMonthly,
			BaseSalary:   10000,
		}
		rates := fulltimeRates()
		rates.Type.Probation = &settings.ProbationConfig{
			BasePayAdjustmentRate: 0.9,
			OvertimeEligible:      true,
			AllowancesEligible:    true,
		}
		engine := newTestEngine(classifiedHours(160, timeclass.BucketWorkdayOutside, 5), rates)

		result, err := engine.Calculate(ctx, emp, nil, nil, periodStart, periodEnd)

		assert.NoError(t, err)
		assert.Equal(t, 9000.0, result.BasePay)
		assert.Equal(t, 468.75, result.TotalOvertimePay)
	})

	t.Run("missing settings for type is fatal", func(t *testing.T) {
		emp := &employee.Employee{
			ID:           uuid.New(),
			EmployeeType: employee.TypeFulltime,
			SalaryBasis:  employee.SalaryBasisMonthly,
			BaseSalary:   10000,
		}
		engine := payroll.NewEngine(
			&fakeClassifier{},
			&fakeSettingsResolver{
				resolveFn: func(_ context.Context, _ string) (settings.ResolvedRates, error) {
					return settings.ResolvedRates{}, settingserrors.ErrMissingOvertimeRatesForType
				},
			},
			&fakeHolidayRepository{},
			&fakeOvertimeRepository{},
		)

		_, err := engine.Calculate(ctx, emp, nil, nil, periodStart, periodEnd)

		assert.ErrorIs(t, err, settingserrors.ErrMissingOvertimeRatesForType)
	})

	t.Run("total working days counts presence leave and holidays", func(t *testing.T) {
		emp := &employee.Employee{
			ID:           uuid.New(),
			EmployeeType: employee.TypeFulltime,
			SalaryBasis:  employee.SalaryBasisMonthly,
			BaseSalary:   10000,
		}
		classified := timeclass.PeriodResult{
			RegularHours:      144,
			OvertimeHours:     timeclass.ZeroHours(),
			PresentDays:       18,
			ScheduledWorkdays: 20,
		}
		engine := payroll.NewEngine(
			&fakeClassifier{
				classifyPeriodFn: func(_ context.Context, _ *employee.Employee, _ []attendance.TimeEntry, _ []overtime.OvertimeRequest, _ []leave.Leave, _ []holiday.Holiday, _ settings.RoundingPolicy, _, _ time.Time) (timeclass.PeriodResult, error) {
					return classified, nil
				},
			},
			&fakeSettingsResolver{
				resolveFn: func(_ context.Context, _ string) (settings.ResolvedRates, error) {
					return fulltimeRates(), nil
				},
			},
			&fakeHolidayRepository{
				findInRangeFn: func(_ context.Context, _, _ time.Time) ([]holiday.Holiday, error) {
					return []holiday.Holiday{{Date: time.Date(2026, 7, 17, 0, 0, 0, 0, time.UTC)}}, nil
				},
			},
			&fakeOvertimeRepository{},
		)

		annual := leave.Leave{
			LeaveType:   leave.TypeAnnual,
			LeaveFormat: leave.FormatFullDay,
			StartDate:   time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC),
			Status:      leave.StatusApproved,
		}

		result, err := engine.Calculate(ctx, emp, nil, []leave.Leave{annual}, periodStart, periodEnd)

		assert.NoError(t, err)
		assert.Equal(t, 1.0, result.Holidays)
		assert.Equal(t, 1.0, result.AnnualLeaveDays)
		// 18 present + 1 paid leave + 1 holiday
		assert.Equal(t, 20.0, result.TotalWorkingDays)
		// 20 scheduled - 18 present - 1 paid leave
		assert.Equal(t, 1.0, result.TotalAbsent)
	})

	t.Run("clock pair on an approved leave day is not counted twice", func(t *testing.T) {
		// Monday, a single-workday period.
		monday := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)
		emp := &employee.Employee{
			ID:           uuid.New(),
			EmployeeType: employee.TypeFulltime,
			SalaryBasis:  employee.SalaryBasisMonthly,
			BaseSalary:   10000,
		}
		engine := payroll.NewEngine(
			timeclass.NewClassifier(workdayShiftResolver{}),
			&fakeSettingsResolver{
				resolveFn: func(_ context.Context, _ string) (settings.ResolvedRates, error) {
					return fulltimeRates(), nil
				},
			},
			&fakeHolidayRepository{},
			&fakeOvertimeRepository{},
		)

		clockIn := time.Date(2026, 7, 6, 9, 0, 0, 0, time.UTC)
		clockOut := time.Date(2026, 7, 6, 17, 0, 0, 0, time.UTC)
		entries := []attendance.TimeEntry{{
			EmployeeID: emp.ID,
			Date:       monday,
			ClockIn:    &clockIn,
			ClockOut:   &clockOut,
			Status:     attendance.StatusCompleted,
		}}
		leaves := []leave.Leave{{
			EmployeeID:  emp.ID,
			LeaveType:   leave.TypeAnnual,
			LeaveFormat: leave.FormatFullDay,
			StartDate:   monday,
			EndDate:     monday,
			Status:      leave.StatusApproved,
		}}

		result, err := engine.Calculate(ctx, emp, entries, leaves, monday, monday)

		assert.NoError(t, err)
		assert.Equal(t, 1.0, result.AnnualLeaveDays)
		assert.Equal(t, 0.0, result.TotalPresent)
		assert.Equal(t, 0.0, result.RegularHours)
		assert.Equal(t, 1.0, result.TotalWorkingDays)
		assert.Equal(t, 0.0, result.TotalAbsent)
	})
}
