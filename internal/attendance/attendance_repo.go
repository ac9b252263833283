package attendance

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	FindByEmployeeAndRange(ctx context.Context, employeeID string, startDate, endDate time.Time) ([]TimeEntry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByEmployeeAndRange(ctx context.Context, employeeID string, startDate, endDate time.Time) ([]TimeEntry, error) {
	var entries []TimeEntry
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date BETWEEN ? AND ?", startDate, endDate).
		Order("date ASC").
		Find(&entries).Error
	return entries, err
}
