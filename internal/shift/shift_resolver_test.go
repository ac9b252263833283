package shift_test

import (
	"context"
	"testing"
	"time"

	"go-payroll/internal/employee"
	"go-payroll/internal/holiday"
	"go-payroll/internal/shared/cache"
	"go-payroll/internal/shift"
	shifterrors "go-payroll/internal/shift/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeShiftRepository struct {
	findByCodeCalls int

	findByCodeFn             func(ctx context.Context, code string) (*shift.Shift, error)
	findApprovedAdjustmentFn func(ctx context.Context, employeeID string, date time.Time) (*shift.ShiftAdjustment, error)
}

func (f *fakeShiftRepository) FindByCode(ctx context.Context, code string) (*shift.Shift, error) {
	f.findByCodeCalls++
	if f.findByCodeFn != nil {
		return f.findByCodeFn(ctx, code)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeShiftRepository) FindApprovedAdjustment(ctx context.Context, employeeID string, date time.Time) (*shift.ShiftAdjustment, error) {
	if f.findApprovedAdjustmentFn != nil {
		return f.findApprovedAdjustmentFn(ctx, employeeID, date)
	}
	return nil, gorm.ErrRecordNotFound
}

func dayEmployee() *employee.Employee {
	return &employee.Employee{ID: uuid.New(), ShiftCode: "DAY"}
}

func TestResolveDay(t *testing.T) {
	ctx := context.Background()
	// Wednesday.
	workday := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	// Saturday.
	saturday := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)

	t.Run("workday on an active weekday", func(t *testing.T) {
		resolver := shift.NewResolver(&fakeShiftRepository{}, cache.NewMemoryCache())

		day, err := resolver.ResolveDay(ctx, dayEmployee(), workday, nil)

		assert.NoError(t, err)
		assert.Equal(t, shift.DayTypeWorkday, day.DayType)
		assert.Equal(t, "DAY", day.Shift.Code)
		assert.Equal(t, "09:00", day.Shift.StartTime)
	})

	t.Run("weekly off outside the work days", func(t *testing.T) {
		resolver := shift.NewResolver(&fakeShiftRepository{}, cache.NewMemoryCache())

		day, err := resolver.ResolveDay(ctx, dayEmployee(), saturday, nil)

		assert.NoError(t, err)
		assert.Equal(t, shift.DayTypeWeeklyOff, day.DayType)
	})

	t.Run("holiday wins over workday", func(t *testing.T) {
		resolver := shift.NewResolver(&fakeShiftRepository{}, cache.NewMemoryCache())
		holidays := []holiday.Holiday{{Date: workday, Name: "Founding Day"}}

		day, err := resolver.ResolveDay(ctx, dayEmployee(), workday, holidays)

		assert.NoError(t, err)
		assert.Equal(t, shift.DayTypeHoliday, day.DayType)
		assert.Equal(t, "Founding Day", day.HolidayName)
	})

	t.Run("shift specific holiday offset", func(t *testing.T) {
		resolver := shift.NewResolver(&fakeShiftRepository{}, cache.NewMemoryCache())
		holidays := []holiday.Holiday{{
			Date:         workday,
			Name:         "Founding Day",
			ShiftOffsets: []byte(`{"DAY": 1}`),
		}}

		onDate, err := resolver.ResolveDay(ctx, dayEmployee(), workday, holidays)
		assert.NoError(t, err)
		assert.Equal(t, shift.DayTypeWorkday, onDate.DayType)

		observed, err := resolver.ResolveDay(ctx, dayEmployee(), workday.AddDate(0, 0, 1), holidays)
		assert.NoError(t, err)
		assert.Equal(t, shift.DayTypeHoliday, observed.DayType)
	})

	t.Run("approved adjustment overrides exactly its date", func(t *testing.T) {
		emp := dayEmployee()
		repo := &fakeShiftRepository{
			findApprovedAdjustmentFn: func(_ context.Context, employeeID string, date time.Time) (*shift.ShiftAdjustment, error) {
				if employeeID == emp.ID.String() && date.Equal(workday) {
					return &shift.ShiftAdjustment{
						EmployeeID: emp.ID,
						Date:       workday,
						ShiftCode:  "LATE",
						Status:     shift.AdjustmentStatusApproved,
					}, nil
				}
				return nil, gorm.ErrRecordNotFound
			},
		}
		resolver := shift.NewResolver(repo, cache.NewMemoryCache())

		adjusted, err := resolver.ResolveDay(ctx, emp, workday, nil)
		assert.NoError(t, err)
		assert.Equal(t, "LATE", adjusted.Shift.Code)
		assert.Equal(t, "13:00", adjusted.Shift.StartTime)

		nextDay, err := resolver.ResolveDay(ctx, emp, workday.AddDate(0, 0, 1), nil)
		assert.NoError(t, err)
		assert.Equal(t, "DAY", nextDay.Shift.Code)
	})

	t.Run("storage shift is cached after the first lookup", func(t *testing.T) {
		custom := &shift.Shift{
			ID:        uuid.New(),
			Code:      "NIGHT",
			Name:      "Night Shift",
			StartTime: "22:00",
			EndTime:   "06:00",
			WorkDays:  "1,2,3,4,5",
		}
		repo := &fakeShiftRepository{
			findByCodeFn: func(_ context.Context, code string) (*shift.Shift, error) {
				if code == "NIGHT" {
					return custom, nil
				}
				return nil, gorm.ErrRecordNotFound
			},
		}
		resolver := shift.NewResolver(repo, cache.NewMemoryCache())
		emp := &employee.Employee{ID: uuid.New(), ShiftCode: "NIGHT"}

		_, err := resolver.ResolveDay(ctx, emp, workday, nil)
		assert.NoError(t, err)
		_, err = resolver.ResolveDay(ctx, emp, workday.AddDate(0, 0, 1), nil)
		assert.NoError(t, err)

		assert.Equal(t, 1, repo.findByCodeCalls)
	})

	t.Run("negative employee without a shift", func(t *testing.T) {
		resolver := shift.NewResolver(&fakeShiftRepository{}, cache.NewMemoryCache())
		emp := &employee.Employee{ID: uuid.New()}

		_, err := resolver.ResolveDay(ctx, emp, workday, nil)

		assert.ErrorIs(t, err, shifterrors.ErrShiftNotAssigned)
	})

	t.Run("negative unknown shift code", func(t *testing.T) {
		resolver := shift.NewResolver(&fakeShiftRepository{}, cache.NewMemoryCache())
		emp := &employee.Employee{ID: uuid.New(), ShiftCode: "GHOST"}

		_, err := resolver.ResolveDay(ctx, emp, workday, nil)

		assert.ErrorIs(t, err, shifterrors.ErrShiftNotAssigned)
	})
}
