package kafka_test

import (
	"context"
	"testing"
	"time"

	"go-payroll/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validEvent() kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            uuid.NewString(),
		AggregateType: "payroll_run",
		AggregateID:   uuid.NewString(),
		EventType:     "payroll_run_requested",
		Topic:         "hr.payroll.run.requested.v1",
		Payload:       []byte(`{"session_id":"abc"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestOutboxRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects an undeliverable event before touching storage", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := kafka.NewOutboxRepository(db)

		event := validEvent()
		event.Topic = ""

		err = repo.Create(ctx, event)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("writes through the provided transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO outbox_events").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := db.Begin()
		assert.NoError(t, err)

		repo := kafka.NewOutboxRepository(db)
		err = repo.WithTx(tx).Create(ctx, validEvent())
		assert.NoError(t, err)

		assert.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		event := validEvent()
		event.Status = "queued"

		err := kafka.ValidateOutboxEvent(event)

		assert.Error(t, err)
	})
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	id := uuid.NewString()
	aggregateID := uuid.NewString()
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "aggregate_type", "aggregate_id", "event_type",
		"topic", "payload", "status", "retry_count", "next_retry_at",
	}).AddRow(
		id, "payroll_run", aggregateID, "payroll_run_requested",
		"hr.payroll.run.requested.v1", []byte(`{}`), kafka.OutboxStatusFailed, 2, now,
	)
	mock.ExpectQuery("FROM outbox_events").WillReturnRows(rows)

	repo := kafka.NewOutboxRepository(db)
	events, err := repo.ListPending(context.Background(), 50)

	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, id, events[0].ID)
	assert.Equal(t, "hr.payroll.run.requested.v1", events[0].Topic)
	assert.Equal(t, 2, events[0].RetryCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
