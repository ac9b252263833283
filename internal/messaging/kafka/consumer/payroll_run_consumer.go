package consumer

import (
	"context"
	"encoding/json"

	"go-payroll/internal/events"
	"go-payroll/internal/payrollrun"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumePayrollRunRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	runService payrollrun.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_run")
	log.Info("payroll run consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll run consumer stopped")
				return
			}
			log.Error("fetch payroll run message failed", zap.Error(err))
			continue
		}

		var event events.PayrollRunRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payroll_run_requested event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		// RunBatch records per-employee failures itself; an error here is an
		// orchestrator-level fault already persisted on the session, so the
		// message is committed either way to avoid redelivery loops.
		if err := runService.RunBatch(ctx, event.SessionID); err != nil {
			log.Error("payroll batch run failed",
				zap.String("session_id", event.SessionID),
				zap.String("period", event.PeriodYearMonth),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll run message failed", zap.Error(err))
			continue
		}

		log.Info("payroll run message processed",
			zap.String("session_id", event.SessionID),
			zap.String("period", event.PeriodYearMonth),
		)
	}
}
