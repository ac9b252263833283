package overtime

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=overtime_repo.go -destination=mock/overtime_repo_mock.go -package=mock
type Repository interface {
	FindPayableByEmployeeAndRange(ctx context.Context, employeeID string, startDate, endDate time.Time) ([]OvertimeRequest, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindPayableByEmployeeAndRange(ctx context.Context, employeeID string, startDate, endDate time.Time) ([]OvertimeRequest, error) {
	var requests []OvertimeRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date BETWEEN ? AND ?", startDate, endDate).
		Where("status = ?", StatusApproved).
		Where("employee_response = ?", ResponseApprove).
		Order("date ASC").
		Find(&requests).Error
	return requests, err
}
