package shift

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=shift_repo.go -destination=mock/shift_repo_mock.go -package=mock
type Repository interface {
	FindByCode(ctx context.Context, code string) (*Shift, error)
	FindApprovedAdjustment(ctx context.Context, employeeID string, date time.Time) (*ShiftAdjustment, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByCode(ctx context.Context, code string) (*Shift, error) {
	var s Shift
	err := r.db.WithContext(ctx).First(&s, "code = ?", code).Error
	return &s, err
}

func (r *repository) FindApprovedAdjustment(ctx context.Context, employeeID string, date time.Time) (*ShiftAdjustment, error) {
	var adj ShiftAdjustment
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format("2006-01-02")).
		Where("status = ?", AdjustmentStatusApproved).
		First(&adj).Error
	return &adj, err
}
