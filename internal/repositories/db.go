package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// DBTX is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock pools.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxBeginner is a DBTX that can open transactions.
type TxBeginner interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store is the transactional entity store consumed by the services.
type Store interface {
	Categories() CategoryRepository
	Products() ProductRepository
	Users() UserRepository
	Ratings() RatingRepository
	Reviews() ReviewRepository

	// WithTx runs fn inside one transaction. Any error returned by fn, a panic, or a
	// cancelled ctx rolls the whole transaction back. Calls nested inside fn join the
	// outer transaction.
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

type scanner interface {
	Scan(dest ...any) error
}

type pgStore struct {
	pool        TxBeginner
	db          DBTX
	inTx        bool
	lockTimeout time.Duration
	logger      *zap.Logger
}

// NewPgStore builds a Store over a pgx pool. lockTimeout bounds how long a transaction waits
// for a row lock before failing Busy.
func NewPgStore(pool TxBeginner, lockTimeout time.Duration, logger *zap.Logger) Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &pgStore{pool: pool, db: pool, lockTimeout: lockTimeout, logger: logger}
}

func (s *pgStore) Categories() CategoryRepository { return NewCategoryRepo(s.db) }
func (s *pgStore) Products() ProductRepository    { return NewProductRepo(s.db) }
func (s *pgStore) Users() UserRepository          { return NewUserRepo(s.db) }
func (s *pgStore) Ratings() RatingRepository      { return NewRatingRepo(s.db) }
func (s *pgStore) Reviews() ReviewRepository      { return NewReviewRepo(s.db) }

func (s *pgStore) WithTx(ctx context.Context, fn func(tx Store) error) (err error) {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return mapError(err, "", nil)
	}

	defer func() {
		if p := recover(); p != nil {
			s.rollback(tx)
			panic(p)
		}
		if err != nil {
			s.rollback(tx)
		}
	}()

	if s.lockTimeout > 0 {
		// set_config is used because SET does not accept bind parameters.
		if _, err = tx.Exec(ctx, `SELECT set_config('lock_timeout', $1, true)`, formatLockTimeout(s.lockTimeout)); err != nil {
			return mapError(err, "", nil)
		}
	}

	txStore := &pgStore{pool: s.pool, db: tx, inTx: true, lockTimeout: s.lockTimeout, logger: s.logger}
	if err = fn(txStore); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return mapError(err, "", nil)
	}
	return nil
}

func (s *pgStore) rollback(tx pgx.Tx) {
	// The caller's ctx may already be cancelled; rollback must still reach the server.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
		s.logger.Warn("transaction rollback failed", zap.Error(err))
	}
}

func formatLockTimeout(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}
