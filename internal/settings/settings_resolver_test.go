package settings_test

import (
	"context"
	"encoding/json"
	"testing"

	"go-payroll/internal/employee"
	"go-payroll/internal/settings"
	settingserrors "go-payroll/internal/settings/errors"
	"go-payroll/internal/shared/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeSettingsRepository struct {
	row *settings.PayrollSettings

	findCurrentCalls int
	createFn         func(ctx context.Context, s *settings.PayrollSettings) error
}

func (f *fakeSettingsRepository) FindCurrent(ctx context.Context) (*settings.PayrollSettings, error) {
	f.findCurrentCalls++
	if f.row == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.row, nil
}

func (f *fakeSettingsRepository) Create(ctx context.Context, s *settings.PayrollSettings) error {
	if f.createFn != nil {
		return f.createFn(ctx, s)
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.row = s
	return nil
}

func (f *fakeSettingsRepository) Update(ctx context.Context, s *settings.PayrollSettings) error {
	f.row = s
	return nil
}

func storedDefaults(t *testing.T) *settings.PayrollSettings {
	t.Helper()
	raw, err := json.Marshal(settings.SystemDefaults())
	assert.NoError(t, err)
	return &settings.PayrollSettings{ID: uuid.New(), Version: 3, Current: true, Document: raw}
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("returns typed rates for a known type", func(t *testing.T) {
		repo := &fakeSettingsRepository{row: storedDefaults(t)}
		resolver := settings.NewResolver(repo, cache.NewMemoryCache())

		rates, err := resolver.Resolve(ctx, employee.TypeFulltime)

		assert.NoError(t, err)
		assert.Equal(t, 1.5, rates.Type.OvertimeRates.WorkdayOutside)
		assert.Equal(t, 160.0, rates.Period.StandardHours)
		assert.Equal(t, 3, rates.Version)
	})

	t.Run("meal allowance differs by employee type", func(t *testing.T) {
		repo := &fakeSettingsRepository{row: storedDefaults(t)}
		resolver := settings.NewResolver(repo, cache.NewMemoryCache())

		fulltime, err := resolver.Resolve(ctx, employee.TypeFulltime)
		assert.NoError(t, err)
		parttime, err := resolver.Resolve(ctx, employee.TypeParttime)
		assert.NoError(t, err)

		assert.Equal(t, 600.0, fulltime.Type.Allowances.Meal)
		assert.Equal(t, 300.0, parttime.Type.Allowances.Meal)
	})

	t.Run("negative unknown employee type", func(t *testing.T) {
		repo := &fakeSettingsRepository{row: storedDefaults(t)}
		resolver := settings.NewResolver(repo, cache.NewMemoryCache())

		_, err := resolver.Resolve(ctx, "CONTRACTOR")

		assert.ErrorIs(t, err, settingserrors.ErrMissingOvertimeRatesForType)
	})

	t.Run("negative incomplete rates for type", func(t *testing.T) {
		doc := settings.SystemDefaults()
		ts := doc.EmployeeTypes[employee.TypeFulltime]
		ts.OvertimeRates.HolidayOvertime = 0
		doc.EmployeeTypes[employee.TypeFulltime] = ts
		raw, err := json.Marshal(doc)
		assert.NoError(t, err)

		repo := &fakeSettingsRepository{row: &settings.PayrollSettings{ID: uuid.New(), Version: 1, Current: true, Document: raw}}
		resolver := settings.NewResolver(repo, cache.NewMemoryCache())

		_, err = resolver.Resolve(ctx, employee.TypeFulltime)

		assert.ErrorIs(t, err, settingserrors.ErrMissingOvertimeRatesForType)
	})

	t.Run("seeds system defaults when nothing is stored", func(t *testing.T) {
		repo := &fakeSettingsRepository{}
		resolver := settings.NewResolver(repo, cache.NewMemoryCache())

		rates, err := resolver.Resolve(ctx, employee.TypeProbation)

		assert.NoError(t, err)
		assert.NotNil(t, rates.Type.Probation)
		assert.Equal(t, 0.9, rates.Type.Probation.BasePayAdjustmentRate)
		assert.NotNil(t, repo.row)
	})

	t.Run("second read is served from cache", func(t *testing.T) {
		repo := &fakeSettingsRepository{row: storedDefaults(t)}
		resolver := settings.NewResolver(repo, cache.NewMemoryCache())

		_, err := resolver.Resolve(ctx, employee.TypeFulltime)
		assert.NoError(t, err)
		reads := repo.findCurrentCalls

		_, err = resolver.Resolve(ctx, employee.TypeParttime)
		assert.NoError(t, err)

		assert.Equal(t, reads, repo.findCurrentCalls)
	})
}

func TestResolver_UpdateDocument(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("bumps version and invalidates the cache", func(t *testing.T) {
		repo := &fakeSettingsRepository{row: storedDefaults(t)}
		c := cache.NewMemoryCache()
		resolver := settings.NewResolver(repo, c)

		// Warm the cache with the old rates.
		_, err := resolver.Resolve(ctx, employee.TypeFulltime)
		assert.NoError(t, err)

		doc := settings.SystemDefaults()
		ts := doc.EmployeeTypes[employee.TypeFulltime]
		ts.OvertimeRates.WorkdayOutside = 2.0
		doc.EmployeeTypes[employee.TypeFulltime] = ts

		_, err = resolver.UpdateDocument(ctx, actorID, doc)
		assert.NoError(t, err)
		assert.Equal(t, 4, repo.row.Version)

		rates, err := resolver.Resolve(ctx, employee.TypeFulltime)
		assert.NoError(t, err)
		assert.Equal(t, 2.0, rates.Type.OvertimeRates.WorkdayOutside)
		assert.Equal(t, 4, rates.Version)
	})

	t.Run("negative empty document", func(t *testing.T) {
		repo := &fakeSettingsRepository{row: storedDefaults(t)}
		resolver := settings.NewResolver(repo, cache.NewMemoryCache())

		_, err := resolver.UpdateDocument(ctx, actorID, settings.Document{})

		assert.ErrorIs(t, err, settingserrors.ErrInvalidSettingsDocument)
	})

	t.Run("negative incomplete rates rejected", func(t *testing.T) {
		repo := &fakeSettingsRepository{row: storedDefaults(t)}
		resolver := settings.NewResolver(repo, cache.NewMemoryCache())

		doc := settings.SystemDefaults()
		ts := doc.EmployeeTypes[employee.TypeParttime]
		ts.OvertimeRates.WeekendInside = 0
		doc.EmployeeTypes[employee.TypeParttime] = ts

		_, err := resolver.UpdateDocument(ctx, actorID, doc)

		assert.ErrorIs(t, err, settingserrors.ErrMissingOvertimeRatesForType)
	})

	t.Run("negative inverted contribution base", func(t *testing.T) {
		repo := &fakeSettingsRepository{row: storedDefaults(t)}
		resolver := settings.NewResolver(repo, cache.NewMemoryCache())

		doc := settings.SystemDefaults()
		ts := doc.EmployeeTypes[employee.TypeFulltime]
		ts.SocialSecurity.MinBase = 20000
		doc.EmployeeTypes[employee.TypeFulltime] = ts

		_, err := resolver.UpdateDocument(ctx, actorID, doc)

		assert.ErrorIs(t, err, settingserrors.ErrInvalidSettingsDocument)
	})
}
