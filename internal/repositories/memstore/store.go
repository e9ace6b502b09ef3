// Package memstore is an in-memory repositories.Store. Transactions are serialized by a
// single writer slot and run against a private copy of the data that replaces the
// committed copy only when the transaction succeeds.
package memstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"catalog/internal/common"
	"catalog/internal/models"
	"catalog/internal/repositories"
)

var errLockTimeout = errors.New("memstore: lock wait timeout")

type state struct {
	categories map[int64]models.Category
	products   map[int64]models.Product
	users      map[int64]models.User
	ratings    map[int64]models.Rating
	reviews    map[int64]models.Review

	nextCategory int64
	nextProduct  int64
	nextUser     int64
	nextRating   int64
	nextReview   int64
}

func newState() *state {
	return &state{
		categories: map[int64]models.Category{},
		products:   map[int64]models.Product{},
		users:      map[int64]models.User{},
		ratings:    map[int64]models.Rating{},
		reviews:    map[int64]models.Review{},
	}
}

func (s *state) clone() *state {
	c := *s
	c.categories = cloneMap(s.categories)
	c.products = cloneMap(s.products)
	c.users = cloneMap(s.users)
	c.ratings = cloneMap(s.ratings)
	c.reviews = cloneMap(s.reviews)
	return &c
}

func cloneMap[V any](m map[int64]V) map[int64]V {
	out := make(map[int64]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type db struct {
	mu          sync.RWMutex
	committed   *state
	writer      chan struct{}
	lockTimeout time.Duration
	now         func() time.Time
}

// Store implements repositories.Store. The zero value is not usable; call New.
type Store struct {
	db *db
	tx *state
}

// New returns an empty store. lockTimeout bounds how long WithTx waits for the writer
// slot before failing Busy.
func New(lockTimeout time.Duration) *Store {
	if lockTimeout <= 0 {
		lockTimeout = 2 * time.Second
	}
	return &Store{db: &db{
		committed:   newState(),
		writer:      make(chan struct{}, 1),
		lockTimeout: lockTimeout,
		now:         func() time.Time { return time.Now().UTC() },
	}}
}

func (s *Store) Categories() repositories.CategoryRepository { return &categoryRepo{s: s} }
func (s *Store) Products() repositories.ProductRepository    { return &productRepo{s: s} }
func (s *Store) Users() repositories.UserRepository          { return &userRepo{s: s} }
func (s *Store) Ratings() repositories.RatingRepository      { return &ratingRepo{s: s} }
func (s *Store) Reviews() repositories.ReviewRepository      { return &reviewRepo{s: s} }

func (s *Store) WithTx(ctx context.Context, fn func(tx repositories.Store) error) error {
	if s.tx != nil {
		return fn(s)
	}

	if err := s.db.acquire(ctx); err != nil {
		return err
	}
	defer s.db.release()

	s.db.mu.RLock()
	work := s.db.committed.clone()
	s.db.mu.RUnlock()

	if err := fn(&Store{db: s.db, tx: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.db.mu.Lock()
	s.db.committed = work
	s.db.mu.Unlock()
	return nil
}

func (d *db) acquire(ctx context.Context) error {
	timer := time.NewTimer(d.lockTimeout)
	defer timer.Stop()

	select {
	case d.writer <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return common.Busy(errLockTimeout)
	}
}

func (d *db) release() {
	<-d.writer
}

// read runs fn against the transaction's view, or a consistent snapshot of committed data.
func (s *Store) read(fn func(st *state) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return fn(s.db.committed)
}

// write runs fn inside the current transaction, or in its own single-statement transaction.
func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	return s.WithTx(ctx, func(tx repositories.Store) error {
		return fn(tx.(*Store).tx)
	})
}
