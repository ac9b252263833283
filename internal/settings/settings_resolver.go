package settings

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-payroll/internal/shared/cache"

	settingserrors "go-payroll/internal/settings/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	documentCacheKey = "settings:payroll:current"
	documentCacheTTL = 2 * time.Minute
)

// ResolvedRates is the typed settings snapshot handed to one calculation.
type ResolvedRates struct {
	Type     TypeSettings
	Rounding RoundingPolicy
	Period   PeriodRules
	Version  int
}

//go:generate mockgen -source=settings_resolver.go -destination=mock/settings_resolver_mock.go -package=mock
type Resolver interface {
	Resolve(ctx context.Context, employeeType string) (ResolvedRates, error)
	CurrentDocument(ctx context.Context) (Document, int, error)
	UpdateDocument(ctx context.Context, actorID string, doc Document) (Document, error)
}

type resolver struct {
	repo   Repository
	cache  cache.Cache
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewResolver(repo Repository, c cache.Cache, logger ...*zap.Logger) Resolver {
	l := zap.L().Named("settings.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("settings.resolver")
	}
	return &resolver{repo: repo, cache: c, sf: &singleflight.Group{}, logger: l}
}

func (r *resolver) Resolve(ctx context.Context, employeeType string) (ResolvedRates, error) {
	doc, version, err := r.loadDocument(ctx)
	if err != nil {
		return ResolvedRates{}, err
	}

	ts, ok := doc.EmployeeTypes[employeeType]
	if !ok {
		r.logger.Warn("settings missing employee type", zap.String("employee_type", employeeType))
		return ResolvedRates{}, settingserrors.ErrMissingOvertimeRatesForType
	}
	if !hasCompleteRates(ts.OvertimeRates) {
		r.logger.Warn("settings have incomplete overtime rates", zap.String("employee_type", employeeType))
		return ResolvedRates{}, settingserrors.ErrMissingOvertimeRatesForType
	}

	return ResolvedRates{
		Type:     ts,
		Rounding: doc.Rounding,
		Period:   doc.Period,
		Version:  version,
	}, nil
}

func (r *resolver) CurrentDocument(ctx context.Context) (Document, int, error) {
	return r.loadDocument(ctx)
}

func (r *resolver) UpdateDocument(ctx context.Context, actorID string, doc Document) (Document, error) {
	if err := validateDocument(doc); err != nil {
		return Document{}, err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return Document{}, err
	}

	row, err := r.repo.FindCurrent(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return Document{}, err
		}
		row = &PayrollSettings{Version: 0, Current: true}
	}

	row.Version++
	row.Document = raw
	if actorUUID, parseErr := uuid.Parse(actorID); parseErr == nil {
		row.UpdatedBy = &actorUUID
	}

	if row.ID == uuid.Nil {
		err = r.repo.Create(ctx, row)
	} else {
		err = r.repo.Update(ctx, row)
	}
	if err != nil {
		return Document{}, err
	}

	// Stale rates must never feed a calculation after an update.
	if r.cache != nil {
		r.cache.Invalidate(ctx, documentCacheKey)
	}

	r.logger.Info("payroll settings updated",
		zap.Int("version", row.Version),
		zap.String("actor_id", actorID),
	)
	return doc, nil
}

type cachedDocument struct {
	Version  int      `json:"version"`
	Document Document `json:"document"`
}

func (r *resolver) loadDocument(ctx context.Context) (Document, int, error) {
	if r.cache != nil {
		if raw, ok := r.cache.Get(ctx, documentCacheKey); ok {
			var cached cachedDocument
			if json.Unmarshal(raw, &cached) == nil {
				return cached.Document, cached.Version, nil
			}
		}
	}

	v, err, _ := r.sf.Do(documentCacheKey, func() (interface{}, error) {
		row, err := r.repo.FindCurrent(ctx)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			seeded, seedErr := r.seedDefaults(ctx)
			if seedErr != nil {
				return nil, seedErr
			}
			row = seeded
		}

		var doc Document
		if err := json.Unmarshal(row.Document, &doc); err != nil {
			return nil, settingserrors.ErrMissingOvertimeRatesForType
		}

		cached := cachedDocument{Version: row.Version, Document: doc}
		if r.cache != nil {
			if raw, err := json.Marshal(cached); err == nil {
				r.cache.Set(ctx, documentCacheKey, raw, documentCacheTTL)
			}
		}
		return cached, nil
	})
	if err != nil {
		return Document{}, 0, err
	}

	cached := v.(cachedDocument)
	return cached.Document, cached.Version, nil
}

func (r *resolver) seedDefaults(ctx context.Context) (*PayrollSettings, error) {
	raw, err := json.Marshal(SystemDefaults())
	if err != nil {
		return nil, err
	}

	row := &PayrollSettings{Version: 1, Current: true, Document: raw}
	if err := r.repo.Create(ctx, row); err != nil {
		// A concurrent reader may have seeded first; fall back to theirs.
		if existing, findErr := r.repo.FindCurrent(ctx); findErr == nil {
			return existing, nil
		}
		return nil, err
	}

	r.logger.Info("seeded payroll settings with system defaults")
	return row, nil
}

func hasCompleteRates(rates OvertimeRates) bool {
	return rates.WorkdayOutside > 0 &&
		rates.WeekendInside > 0 &&
		rates.WeekendOutside > 0 &&
		rates.HolidayRegular > 0 &&
		rates.HolidayOvertime > 0
}

func validateDocument(doc Document) error {
	if len(doc.EmployeeTypes) == 0 {
		return settingserrors.ErrInvalidSettingsDocument
	}
	for _, ts := range doc.EmployeeTypes {
		if !hasCompleteRates(ts.OvertimeRates) {
			return settingserrors.ErrMissingOvertimeRatesForType
		}
		if ts.SocialSecurity.MinBase > ts.SocialSecurity.MaxBase {
			return settingserrors.ErrInvalidSettingsDocument
		}
	}
	if doc.Rounding.RoundToMinutes < 0 || doc.Rounding.MinimumMinutes < 0 {
		return settingserrors.ErrInvalidSettingsDocument
	}
	if doc.Period.StandardHours <= 0 || doc.Period.DailyHours <= 0 {
		return settingserrors.ErrInvalidSettingsDocument
	}
	if doc.Period.StartDay < 1 || doc.Period.StartDay > 28 {
		return settingserrors.ErrInvalidSettingsDocument
	}
	return nil
}
