package handlers

import (
	"context"
	"time"

	"catalog/internal/common"
	"catalog/internal/config"
	"catalog/internal/observability/metrics"

	"github.com/cenkalti/backoff/v4"
)

// Retrier re-runs mutations that failed with a Busy error. Any other failure stops it at once.
type Retrier struct {
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
}

func NewRetrier(cfg config.RetryConfig) *Retrier {
	return &Retrier{
		maxAttempts:     cfg.MaxAttempts,
		initialInterval: cfg.InitialInterval,
		maxInterval:     cfg.MaxInterval,
	}
}

func (r *Retrier) Do(ctx context.Context, operation string, fn func() error) error {
	if r == nil || r.maxAttempts <= 1 {
		return fn()
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = r.initialInterval
	exp.MaxInterval = r.maxInterval
	exp.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(r.maxAttempts-1)), ctx)

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		if !common.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)

	if attempt > 1 {
		outcome := "recovered"
		if common.IsRetryable(err) {
			outcome = "exhausted"
		} else if err != nil {
			outcome = "failed"
		}
		metrics.ObserveBusyRetry(operation, outcome)
	}
	return err
}
