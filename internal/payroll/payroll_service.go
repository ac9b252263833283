package payroll

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	"go-payroll/internal/leave"

	employeeerrors "go-payroll/internal/employee/errors"
	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	CalculateForEmployee(ctx context.Context, req CalculatePayrollRequest) (PayrollResponse, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	GetAllByPeriod(ctx context.Context, periodID string) ([]PayrollResponse, error)
	Approve(ctx context.Context, id string) (PayrollResponse, error)
	MarkPaid(ctx context.Context, id string) (PayrollResponse, error)
}

type service struct {
	db             *sql.DB
	repo           Repository
	employeeRepo   employee.Repository
	attendanceRepo attendance.Repository
	leaveRepo      leave.Repository
	engine         Engine
	logger         *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	attendanceRepo attendance.Repository,
	leaveRepo leave.Repository,
	engine Engine,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:             db,
		repo:           repo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		engine:         engine,
		logger:         l,
	}
}

// CalculateForEmployee runs one employee's calculation inline and persists
// the result. Re-running for the same employee and period overwrites the
// previous row.
func (s *service) CalculateForEmployee(ctx context.Context, req CalculatePayrollRequest) (PayrollResponse, error) {
	periodStart, periodEnd, err := parsePeriod(req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return PayrollResponse{}, err
	}

	emp, err := s.employeeRepo.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return PayrollResponse{}, err
	}

	entries, err := s.attendanceRepo.FindByEmployeeAndRange(ctx, req.EmployeeID, periodStart, periodEnd)
	if err != nil {
		return PayrollResponse{}, err
	}
	leaves, err := s.leaveRepo.FindApprovedByEmployeeAndRange(ctx, req.EmployeeID, periodStart, periodEnd)
	if err != nil {
		return PayrollResponse{}, err
	}

	result, err := s.engine.Calculate(ctx, emp, entries, leaves, periodStart, periodEnd)
	if err != nil {
		return PayrollResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	period, err := s.ensurePeriod(ctx, qtx, periodStart, periodEnd)
	if err != nil {
		return PayrollResponse{}, err
	}

	row, err := toEntity(emp.ID.String(), period.ID.String(), result)
	if err != nil {
		return PayrollResponse{}, err
	}
	if err := qtx.Upsert(ctx, row); err != nil {
		return PayrollResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll calculated",
		zap.String("employee_id", req.EmployeeID),
		zap.String("payroll_period_id", period.ID.String()),
	)

	return toResponse(row, period), nil
}

// ensurePeriod finds or creates the period row for the range. Two callers
// racing on the same new range both survive: the loser of the unique
// constraint re-reads the winner's row.
func (s *service) ensurePeriod(ctx context.Context, qtx Repository, startDate, endDate time.Time) (*PayrollPeriod, error) {
	period, err := qtx.FindPeriodByRange(ctx, startDate, endDate)
	if err == nil {
		return period, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := &PayrollPeriod{
		StartDate: startDate,
		EndDate:   endDate,
		Status:    PeriodStatusDraft,
	}
	if err := qtx.CreatePeriod(ctx, created); err != nil {
		if isUniqueViolation(err, "uq_payroll_periods_range") {
			return qtx.FindPeriodByRange(ctx, startDate, endDate)
		}
		return nil, err
	}
	return created, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	period, err := s.repo.FindPeriodByID(ctx, row.PayrollPeriodID.String())
	if err != nil {
		return PayrollResponse{}, err
	}
	return toResponse(row, period), nil
}

func (s *service) GetAllByPeriod(ctx context.Context, periodID string) ([]PayrollResponse, error) {
	period, err := s.repo.FindPeriodByID(ctx, periodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrPeriodNotFound
		}
		return nil, err
	}
	rows, err := s.repo.FindAllByPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	responses := make([]PayrollResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, toResponse(&rows[i], period))
	}
	return responses, nil
}

func (s *service) Approve(ctx context.Context, id string) (PayrollResponse, error) {
	return s.transition(ctx, id, StatusApproved, map[string]bool{
		StatusDraft:     true,
		StatusCompleted: true,
	})
}

func (s *service) MarkPaid(ctx context.Context, id string) (PayrollResponse, error) {
	return s.transition(ctx, id, StatusPaid, map[string]bool{
		StatusApproved: true,
	})
}

func (s *service) transition(ctx context.Context, id, target string, allowedFrom map[string]bool) (PayrollResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	if !allowedFrom[row.Status] {
		return PayrollResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	if err := qtx.UpdateStatus(ctx, id, target); err != nil {
		return PayrollResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	row.Status = target
	period, err := s.repo.FindPeriodByID(ctx, row.PayrollPeriodID.String())
	if err != nil {
		return PayrollResponse{}, err
	}
	return toResponse(row, period), nil
}

func parsePeriod(start, end string) (time.Time, time.Time, error) {
	periodStart, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	periodEnd, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	if periodEnd.Before(periodStart) {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidDateRange
	}
	return periodStart, periodEnd, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}
