package payroll_test

import (
	"context"
	"testing"

	"go-payroll/internal/payroll"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Two separate mock connections: the repository is built on one, the
// transaction opened on the other. The query must reach the transaction's
// connection and never the pooled one.
func TestRepository_WithTx_RoutesThroughTransaction(t *testing.T) {
	baseDB, baseMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer baseDB.Close()

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txDB.Close()

	base, err := gorm.Open(postgres.New(postgres.Config{Conn: baseDB}), &gorm.Config{})
	assert.NoError(t, err)
	repo := payroll.NewRepository(base)

	id := uuid.New()
	txMock.ExpectBegin()
	txMock.ExpectQuery(`SELECT (.+) FROM "payrolls"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))
	txMock.ExpectCommit()

	tx, err := txDB.Begin()
	assert.NoError(t, err)

	found, err := repo.WithTx(tx).FindByID(context.Background(), id.String())
	assert.NoError(t, err)
	assert.Equal(t, id, found.ID)

	assert.NoError(t, tx.Commit())
	assert.NoError(t, txMock.ExpectationsWereMet())
	assert.NoError(t, baseMock.ExpectationsWereMet())
}
