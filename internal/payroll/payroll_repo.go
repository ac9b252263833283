package payroll

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	FindPeriodByRange(ctx context.Context, startDate, endDate time.Time) (*PayrollPeriod, error)
	FindPeriodByID(ctx context.Context, id string) (*PayrollPeriod, error)
	CreatePeriod(ctx context.Context, p *PayrollPeriod) error
	UpdatePeriodStatus(ctx context.Context, id, status string) error

	Upsert(ctx context.Context, p *Payroll) error
	FindByID(ctx context.Context, id string) (*Payroll, error)
	FindByEmployeeAndPeriod(ctx context.Context, employeeID, periodID string) (*Payroll, error)
	FindAllByPeriod(ctx context.Context, periodID string) ([]Payroll, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds a copy of the repository to the caller's transaction, so every
// statement issued through it commits or rolls back with that transaction.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	txdb, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{})
	if err != nil {
		return r
	}
	return &repository{db: txdb}
}

func (r *repository) FindPeriodByRange(ctx context.Context, startDate, endDate time.Time) (*PayrollPeriod, error) {
	var p PayrollPeriod
	err := r.db.WithContext(ctx).
		Where("start_date = ?", startDate.Format("2006-01-02")).
		Where("end_date = ?", endDate.Format("2006-01-02")).
		First(&p).Error
	return &p, err
}

func (r *repository) FindPeriodByID(ctx context.Context, id string) (*PayrollPeriod, error) {
	var p PayrollPeriod
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) CreatePeriod(ctx context.Context, p *PayrollPeriod) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) UpdatePeriodStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&PayrollPeriod{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Upsert writes the computed row, overwriting any existing result for the
// same (employee_id, payroll_period_id). The unique constraint is the only
// concurrency guard the table needs.
func (r *repository) Upsert(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}, {Name: "payroll_period_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"regular_hours", "regular_hourly_rate", "base_pay",
				"overtime_hours_by_type", "overtime_rates_by_type", "overtime_pay_by_type",
				"total_overtime_hours", "total_overtime_pay",
				"allowances", "total_allowances",
				"deductions", "total_deductions",
				"sick_leave_days", "business_leave_days", "annual_leave_days", "unpaid_leave_days",
				"holidays", "total_working_days", "total_present", "total_absent",
				"total_late_minutes", "early_departures",
				"net_payable", "status", "updated_at",
			}),
		}).
		Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindByEmployeeAndPeriod(ctx context.Context, employeeID, periodID string) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("payroll_period_id = ?", periodID).
		First(&p).Error
	return &p, err
}

func (r *repository) FindAllByPeriod(ctx context.Context, periodID string) ([]Payroll, error) {
	var payrolls []Payroll
	err := r.db.WithContext(ctx).
		Where("payroll_period_id = ?", periodID).
		Order("created_at ASC").
		Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&Payroll{}).
		Where("id = ?", id).
		Update("status", status).Error
}
