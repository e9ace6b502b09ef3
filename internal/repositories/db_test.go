package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"catalog/internal/common"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

var (
	setLockTimeoutSQL = regexp.QuoteMeta(`SELECT set_config('lock_timeout', $1, true)`)
	updateRatingSQL   = regexp.QuoteMeta(`UPDATE products SET rating = $1 WHERE id = $2`)
	lockProductSQL    = regexp.QuoteMeta(`SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`)
)

type StoreTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	store   Store
	context context.Context
}

func (suite *StoreTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.store = NewPgStore(mock, 2*time.Second, zap.NewNop())
	suite.context = context.Background()
}

func (suite *StoreTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (suite *StoreTestSuite) expectBegin() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(setLockTimeoutSQL).WithArgs("2000ms").
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
}

func (suite *StoreTestSuite) TestWithTx_Commit() {
	suite.expectBegin()
	suite.mock.ExpectExec(updateRatingSQL).WithArgs(4.0, int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	err := suite.store.WithTx(suite.context, func(tx Store) error {
		return tx.Products().UpdateRating(suite.context, 7, 4.0)
	})
	assert.NoError(suite.T(), err)
}

func (suite *StoreTestSuite) TestWithTx_RollbackOnError() {
	suite.expectBegin()
	suite.mock.ExpectExec(updateRatingSQL).WithArgs(4.0, int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	suite.mock.ExpectRollback()

	err := suite.store.WithTx(suite.context, func(tx Store) error {
		return tx.Products().UpdateRating(suite.context, 7, 4.0)
	})
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))
}

func (suite *StoreTestSuite) TestWithTx_NestedJoinsOuter() {
	suite.expectBegin()
	suite.mock.ExpectExec(updateRatingSQL).WithArgs(3.5, int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	err := suite.store.WithTx(suite.context, func(tx Store) error {
		return tx.WithTx(suite.context, func(inner Store) error {
			return inner.Products().UpdateRating(suite.context, 1, 3.5)
		})
	})
	assert.NoError(suite.T(), err)
}

func (suite *StoreTestSuite) TestWithTx_LockTimeoutIsBusy() {
	suite.expectBegin()
	suite.mock.ExpectQuery(lockProductSQL).WithArgs(int64(7)).
		WillReturnError(&pgconn.PgError{Code: "55P03", Message: "canceling statement due to lock timeout"})
	suite.mock.ExpectRollback()

	err := suite.store.WithTx(suite.context, func(tx Store) error {
		_, err := tx.Products().LockForUpdate(suite.context, 7)
		return err
	})
	assert.True(suite.T(), errors.Is(err, common.ErrBusy))
	assert.True(suite.T(), common.IsRetryable(err))
}

func (suite *StoreTestSuite) TestWithTx_RollbackOnPanic() {
	suite.expectBegin()
	suite.mock.ExpectRollback()

	assert.Panics(suite.T(), func() {
		_ = suite.store.WithTx(suite.context, func(tx Store) error {
			panic("boom")
		})
	})
}

func (suite *StoreTestSuite) TestWithTx_BeginFails() {
	suite.mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	called := false
	err := suite.store.WithTx(suite.context, func(tx Store) error {
		called = true
		return nil
	})
	assert.Error(suite.T(), err)
	assert.False(suite.T(), called)
}

func TestFormatLockTimeout(t *testing.T) {
	assert.Equal(t, "2000ms", formatLockTimeout(2*time.Second))
	assert.Equal(t, "250ms", formatLockTimeout(250*time.Millisecond))
}
