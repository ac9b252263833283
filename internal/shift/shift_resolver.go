package shift

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-payroll/internal/employee"
	"go-payroll/internal/holiday"
	"go-payroll/internal/shared/cache"
	shifterrors "go-payroll/internal/shift/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DayType string

const (
	DayTypeWorkday   DayType = "workday"
	DayTypeWeeklyOff DayType = "weekly_off"
	DayTypeHoliday   DayType = "holiday"
)

const (
	shiftCacheKeyPrefix = "shifts:code:"
	shiftCacheTTL       = 5 * time.Minute
)

// ResolvedDay is the shift window in force for one employee-date plus its
// day-type classification.
type ResolvedDay struct {
	Shift       Shift
	DayType     DayType
	HolidayName string
}

//go:generate mockgen -source=shift_resolver.go -destination=mock/shift_resolver_mock.go -package=mock
type Resolver interface {
	ResolveDay(ctx context.Context, emp *employee.Employee, date time.Time, holidays []holiday.Holiday) (ResolvedDay, error)
}

type resolver struct {
	repo   Repository
	cache  cache.Cache
	logger *zap.Logger
}

func NewResolver(repo Repository, c cache.Cache, logger ...*zap.Logger) Resolver {
	l := zap.L().Named("shift.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("shift.resolver")
	}
	return &resolver{repo: repo, cache: c, logger: l}
}

func (r *resolver) ResolveDay(ctx context.Context, emp *employee.Employee, date time.Time, holidays []holiday.Holiday) (ResolvedDay, error) {
	shiftCode := emp.ShiftCode

	adj, err := r.repo.FindApprovedAdjustment(ctx, emp.ID.String(), date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return ResolvedDay{}, err
	}
	if err == nil && adj != nil {
		// An approved adjustment overrides the default strictly for its
		// own date.
		shiftCode = adj.ShiftCode
	}

	if shiftCode == "" {
		return ResolvedDay{}, shifterrors.ErrShiftNotAssigned
	}

	s, err := r.resolveShift(ctx, shiftCode)
	if err != nil {
		return ResolvedDay{}, err
	}

	for _, h := range holidays {
		observed := h.OffsetFor(s.Code)
		if sameDate(observed, date) {
			return ResolvedDay{Shift: s, DayType: DayTypeHoliday, HolidayName: h.Name}, nil
		}
	}

	if !s.ActiveOn(date.Weekday()) {
		return ResolvedDay{Shift: s, DayType: DayTypeWeeklyOff}, nil
	}

	return ResolvedDay{Shift: s, DayType: DayTypeWorkday}, nil
}

// resolveShift looks a shift up by code: static catalog, then cache, then
// storage. ResolveDay is called once per employee-date so the lookup has to
// stay cheap.
func (r *resolver) resolveShift(ctx context.Context, code string) (Shift, error) {
	if s, ok := CatalogShift(code); ok {
		return s, nil
	}

	cacheKey := shiftCacheKeyPrefix + code
	if r.cache != nil {
		if raw, ok := r.cache.Get(ctx, cacheKey); ok {
			var s Shift
			if json.Unmarshal(raw, &s) == nil {
				return s, nil
			}
		}
	}

	s, err := r.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Warn("shift code not resolvable", zap.String("shift_code", code))
			return Shift{}, shifterrors.ErrShiftNotAssigned
		}
		return Shift{}, err
	}

	if r.cache != nil {
		if raw, err := json.Marshal(s); err == nil {
			r.cache.Set(ctx, cacheKey, raw, shiftCacheTTL)
		}
	}

	return *s, nil
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
