package holiday

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	FindInRange(ctx context.Context, startDate, endDate time.Time) ([]Holiday, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindInRange(ctx context.Context, startDate, endDate time.Time) ([]Holiday, error) {
	var holidays []Holiday
	// Widened by one day on each side so shift-offset variants near the
	// period boundary are not missed.
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", startDate.AddDate(0, 0, -1), endDate.AddDate(0, 0, 1)).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}
