package settings

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=settings_repo.go -destination=mock/settings_repo_mock.go -package=mock
type Repository interface {
	FindCurrent(ctx context.Context) (*PayrollSettings, error)
	Create(ctx context.Context, s *PayrollSettings) error
	Update(ctx context.Context, s *PayrollSettings) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindCurrent(ctx context.Context) (*PayrollSettings, error) {
	var s PayrollSettings
	err := r.db.WithContext(ctx).
		Where("current = ?", true).
		Order("version DESC").
		First(&s).Error
	return &s, err
}

func (r *repository) Create(ctx context.Context, s *PayrollSettings) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) Update(ctx context.Context, s *PayrollSettings) error {
	return r.db.WithContext(ctx).Save(s).Error
}
