package payrollrun

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	"go-payroll/internal/settings"
	"go-payroll/internal/shared/contextutil"

	payrollrunerrors "go-payroll/internal/payrollrun/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payrollrun_service.go -destination=mock/payrollrun_service_mock.go -package=mock
type Service interface {
	StartRun(ctx context.Context, actorID string, req StartRunRequest) (StartRunResponse, error)
	RunBatch(ctx context.Context, sessionID string) error
	GetStatus(ctx context.Context, sessionID string) (SessionStatusResponse, error)
	ListResults(ctx context.Context, sessionID string) ([]ResultResponse, error)
	WatchProgress(sessionID string) (<-chan Progress, func())
	ResetSession(ctx context.Context, sessionID string) (SessionStatusResponse, error)
}

type service struct {
	db               *sql.DB
	repo             Repository
	employeeRepo     employee.Repository
	payrollService   payroll.Service
	settingsResolver settings.Resolver
	outbox           kafka.OutboxRepository
	broker           *ProgressBroker
	logger           *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	payrollService payroll.Service,
	settingsResolver settings.Resolver,
	outbox kafka.OutboxRepository,
	broker *ProgressBroker,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payrollrun.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrollrun.service")
	}
	return &service{
		db:               db,
		repo:             repo,
		employeeRepo:     employeeRepo,
		payrollService:   payrollService,
		settingsResolver: settingsResolver,
		outbox:           outbox,
		broker:           broker,
		logger:           l,
	}
}

// StartRun opens a session and enqueues the run request through the outbox,
// in one transaction. The worker picks it up asynchronously.
func (s *service) StartRun(ctx context.Context, actorID string, req StartRunRequest) (StartRunResponse, error) {
	if _, err := time.Parse("2006-01", req.PeriodYearMonth); err != nil {
		return StartRunResponse{}, payrollrunerrors.ErrInvalidPeriodFormat
	}

	_, err := s.repo.FindRunningSessionByPeriod(ctx, req.PeriodYearMonth)
	if err == nil {
		return StartRunResponse{}, payrollrunerrors.ErrSessionAlreadyRunning
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return StartRunResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StartRunResponse{}, err
	}
	defer tx.Rollback()

	session := &ProcessingSession{
		PeriodYearMonth: req.PeriodYearMonth,
		Status:          SessionStatusProcessing,
		StartedAt:       time.Now().UTC(),
	}
	if err := s.repo.WithTx(tx).CreateSession(ctx, session); err != nil {
		return StartRunResponse{}, err
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.PayrollRunRequestedEvent{
		EventType:       "payroll_run_requested",
		SessionID:       session.ID.String(),
		PeriodYearMonth: req.PeriodYearMonth,
		RequestedBy:     actorID,
		OccurredAt:      time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return StartRunResponse{}, err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "payroll_run",
		AggregateID:   session.ID.String(),
		EventType:     event.EventType,
		Topic:         events.PayrollRunRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("create payroll run outbox persist failed",
			zap.String("session_id", session.ID.String()),
			zap.Error(err),
		)
		return StartRunResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return StartRunResponse{}, err
	}

	s.logger.Info("payroll run requested",
		zap.String("session_id", session.ID.String()),
		zap.String("period", req.PeriodYearMonth),
		zap.String("requested_by", actorID),
	)

	return StartRunResponse{
		SessionID:       session.ID.String(),
		PeriodYearMonth: req.PeriodYearMonth,
		Status:          session.Status,
	}, nil
}

// RunBatch drives the calculation for every active employee in the session's
// period. A failing employee is recorded and skipped; the batch never aborts
// on one employee. Only an orchestrator-level fault flips the session to
// ERROR.
func (s *service) RunBatch(ctx context.Context, sessionID string) error {
	session, err := s.repo.FindSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return payrollrunerrors.ErrSessionNotFound
		}
		return err
	}
	if session.Status != SessionStatusProcessing {
		s.logger.Warn("skipping batch for non-running session",
			zap.String("session_id", sessionID),
			zap.String("status", session.Status),
		)
		return nil
	}

	doc, _, err := s.settingsResolver.CurrentDocument(ctx)
	if err != nil {
		return s.failSession(ctx, session, fmt.Errorf("read payroll settings: %w", err))
	}

	periodStart, periodEnd, err := periodBounds(session.PeriodYearMonth, doc.Period.StartDay)
	if err != nil {
		return s.failSession(ctx, session, err)
	}

	employees, err := s.employeeRepo.FindAllActive(ctx)
	if err != nil {
		return s.failSession(ctx, session, fmt.Errorf("list active employees: %w", err))
	}

	session.TotalEmployees = len(employees)
	if err := s.repo.SetSessionTotal(ctx, sessionID, len(employees)); err != nil {
		return s.failSession(ctx, session, err)
	}

	errorCount := 0
	for i := range employees {
		emp := &employees[i]

		result := s.processEmployee(ctx, emp.ID.String(), periodStart, periodEnd)
		result.SessionID = session.ID
		result.EmployeeID = emp.ID
		if result.Status == ResultStatusError {
			errorCount++
		}

		if err := s.repo.CreateResult(ctx, &result); err != nil {
			s.logger.Error("persist processing result failed",
				zap.String("session_id", sessionID),
				zap.String("employee_id", emp.ID.String()),
				zap.Error(err),
			)
		}
		if err := s.repo.IncrementProcessedCount(ctx, sessionID); err != nil {
			s.logger.Error("increment processed count failed",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
		}

		tick := Progress{
			SessionID:      sessionID,
			Status:         SessionStatusProcessing,
			TotalEmployees: len(employees),
			ProcessedCount: i + 1,
			EmployeeID:     emp.ID.String(),
		}
		if result.ErrorMessage != nil {
			tick.Error = *result.ErrorMessage
		}
		s.broker.Publish(tick)
	}

	if err := s.repo.FinishSession(ctx, sessionID, SessionStatusCompleted, nil); err != nil {
		return err
	}

	s.broker.Publish(Progress{
		SessionID:      sessionID,
		Status:         SessionStatusCompleted,
		TotalEmployees: len(employees),
		ProcessedCount: len(employees),
	})

	s.enqueueCompleted(ctx, session, len(employees), errorCount)

	s.logger.Info("payroll batch completed",
		zap.String("session_id", sessionID),
		zap.String("period", session.PeriodYearMonth),
		zap.Int("total_employees", len(employees)),
		zap.Int("error_count", errorCount),
	)

	return nil
}

// processEmployee isolates one employee's calculation, converting both
// errors and panics into an ERROR result instead of letting them escape.
func (s *service) processEmployee(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (result ProcessingResult) {
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("panic: %v", r)
			s.logger.Error("employee calculation panicked",
				zap.String("employee_id", employeeID),
				zap.Any("panic", r),
			)
			result = ProcessingResult{Status: ResultStatusError, ErrorMessage: &msg}
		}
	}()

	resp, err := s.payrollService.CalculateForEmployee(ctx, payroll.CalculatePayrollRequest{
		EmployeeID:  employeeID,
		PeriodStart: periodStart.Format("2006-01-02"),
		PeriodEnd:   periodEnd.Format("2006-01-02"),
	})
	if err != nil {
		msg := err.Error()
		s.logger.Warn("employee calculation failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return ProcessingResult{Status: ResultStatusError, ErrorMessage: &msg}
	}

	data, err := json.Marshal(resp.Result)
	if err != nil {
		msg := err.Error()
		return ProcessingResult{Status: ResultStatusError, ErrorMessage: &msg}
	}

	return ProcessingResult{Status: ResultStatusCompleted, ProcessedData: data}
}

func (s *service) failSession(ctx context.Context, session *ProcessingSession, cause error) error {
	msg := cause.Error()
	if len(msg) > 500 {
		msg = msg[:500]
	}
	if err := s.repo.FinishSession(ctx, session.ID.String(), SessionStatusError, &msg); err != nil {
		s.logger.Error("mark session error failed",
			zap.String("session_id", session.ID.String()),
			zap.Error(err),
		)
	}
	s.broker.Publish(Progress{
		SessionID:      session.ID.String(),
		Status:         SessionStatusError,
		TotalEmployees: session.TotalEmployees,
		ProcessedCount: session.ProcessedCount,
		Error:          msg,
	})
	s.logger.Error("payroll batch failed",
		zap.String("session_id", session.ID.String()),
		zap.Error(cause),
	)
	return cause
}

func (s *service) enqueueCompleted(ctx context.Context, session *ProcessingSession, total, errorCount int) {
	event := events.PayrollRunCompletedEvent{
		EventType:       "payroll_run_completed",
		SessionID:       session.ID.String(),
		PeriodYearMonth: session.PeriodYearMonth,
		TotalEmployees:  total,
		ProcessedCount:  total,
		ErrorCount:      errorCount,
		OccurredAt:      time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal run completed event failed", zap.Error(err))
		return
	}

	if err := s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		AggregateType: "payroll_run",
		AggregateID:   session.ID.String(),
		EventType:     event.EventType,
		Topic:         events.PayrollRunCompletedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("create run completed outbox persist failed",
			zap.String("session_id", session.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *service) GetStatus(ctx context.Context, sessionID string) (SessionStatusResponse, error) {
	session, err := s.repo.FindSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SessionStatusResponse{}, payrollrunerrors.ErrSessionNotFound
		}
		return SessionStatusResponse{}, err
	}
	return toStatusResponse(session), nil
}

func (s *service) ListResults(ctx context.Context, sessionID string) ([]ResultResponse, error) {
	if _, err := s.repo.FindSessionByID(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollrunerrors.ErrSessionNotFound
		}
		return nil, err
	}

	results, err := s.repo.ListResultsBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	responses := make([]ResultResponse, 0, len(results))
	for _, r := range results {
		responses = append(responses, ResultResponse{
			ID:            r.ID.String(),
			EmployeeID:    r.EmployeeID.String(),
			Status:        r.Status,
			ProcessedData: r.ProcessedData,
			Error:         r.ErrorMessage,
		})
	}
	return responses, nil
}

func (s *service) WatchProgress(sessionID string) (<-chan Progress, func()) {
	return s.broker.Subscribe(sessionID)
}

// ResetSession is the administrative escape hatch for a stuck run: it closes
// a PROCESSING session as ERROR so a new run can start for the period.
func (s *service) ResetSession(ctx context.Context, sessionID string) (SessionStatusResponse, error) {
	session, err := s.repo.FindSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SessionStatusResponse{}, payrollrunerrors.ErrSessionNotFound
		}
		return SessionStatusResponse{}, err
	}
	if session.Status != SessionStatusProcessing {
		return SessionStatusResponse{}, payrollrunerrors.ErrSessionNotRunning
	}

	msg := "session reset by administrator"
	if err := s.repo.FinishSession(ctx, sessionID, SessionStatusError, &msg); err != nil {
		return SessionStatusResponse{}, err
	}

	s.logger.Warn("processing session reset",
		zap.String("session_id", sessionID),
		zap.String("period", session.PeriodYearMonth),
	)

	session.Status = SessionStatusError
	session.ErrorMessage = &msg
	return toStatusResponse(session), nil
}

func toStatusResponse(s *ProcessingSession) SessionStatusResponse {
	return SessionStatusResponse{
		SessionID:       s.ID.String(),
		PeriodYearMonth: s.PeriodYearMonth,
		Status:          s.Status,
		TotalEmployees:  s.TotalEmployees,
		ProcessedCount:  s.ProcessedCount,
		Error:           s.ErrorMessage,
	}
}

// periodBounds maps "YYYY-MM" to the pay period it names. With startDay 26
// the July period runs June 26 through July 25; startDay 1 means the plain
// calendar month.
func periodBounds(periodYearMonth string, startDay int) (time.Time, time.Time, error) {
	anchor, err := time.Parse("2006-01", periodYearMonth)
	if err != nil {
		return time.Time{}, time.Time{}, payrollrunerrors.ErrInvalidPeriodFormat
	}

	if startDay <= 1 {
		start := anchor
		end := anchor.AddDate(0, 1, -1)
		return start, end, nil
	}

	start := time.Date(anchor.Year(), anchor.Month(), startDay, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	end := time.Date(anchor.Year(), anchor.Month(), startDay-1, 0, 0, 0, 0, time.UTC)
	return start, end, nil
}
