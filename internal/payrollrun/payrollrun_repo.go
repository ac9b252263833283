package payrollrun

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payrollrun_repo.go -destination=mock/payrollrun_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateSession(ctx context.Context, s *ProcessingSession) error
	FindSessionByID(ctx context.Context, id string) (*ProcessingSession, error)
	FindRunningSessionByPeriod(ctx context.Context, periodYearMonth string) (*ProcessingSession, error)
	SetSessionTotal(ctx context.Context, id string, totalEmployees int) error
	IncrementProcessedCount(ctx context.Context, id string) error
	FinishSession(ctx context.Context, id, status string, errorMessage *string) error

	CreateResult(ctx context.Context, r *ProcessingResult) error
	ListResultsBySession(ctx context.Context, sessionID string) ([]ProcessingResult, error)
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

func (r *repository) CreateSession(ctx context.Context, s *ProcessingSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindSessionByID(ctx context.Context, id string) (*ProcessingSession, error) {
	var s ProcessingSession
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) FindRunningSessionByPeriod(ctx context.Context, periodYearMonth string) (*ProcessingSession, error) {
	var s ProcessingSession
	err := r.db.WithContext(ctx).
		Where("period_year_month = ?", periodYearMonth).
		Where("status = ?", SessionStatusProcessing).
		First(&s).Error
	return &s, err
}

func (r *repository) SetSessionTotal(ctx context.Context, id string, totalEmployees int) error {
	return r.db.WithContext(ctx).
		Model(&ProcessingSession{}).
		Where("id = ?", id).
		Update("total_employees", totalEmployees).Error
}

// IncrementProcessedCount is a single atomic UPDATE so concurrent writers
// never lose a count.
func (r *repository) IncrementProcessedCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&ProcessingSession{}).
		Where("id = ?", id).
		Update("processed_count", gorm.Expr("processed_count + 1")).Error
}

func (r *repository) FinishSession(ctx context.Context, id, status string, errorMessage *string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&ProcessingSession{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        status,
			"error_message": errorMessage,
			"finished_at":   &now,
		}).Error
}

func (r *repository) CreateResult(ctx context.Context, res *ProcessingResult) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *repository) ListResultsBySession(ctx context.Context, sessionID string) ([]ProcessingResult, error) {
	var results []ProcessingResult
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&results).Error
	return results, err
}
