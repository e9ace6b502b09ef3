package background

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"catalog/internal/caching"
	"catalog/internal/services"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

const (
	JobRatingReconcile = "rating-reconcile"
	JobScopeCacheFlush = "category-scope-cache-flush"
)

// JobScheduler runs the catalog's periodic maintenance jobs.
type JobScheduler struct {
	scheduler gocron.Scheduler
	reviewSvc services.ReviewService
	cacheSvc  caching.CacheService
	logger    *zap.Logger
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

// NewJobScheduler creates a scheduler with the rating reconciliation job registered at
// reconcileInterval and a category scope cache flush at scopeFlushInterval.
func NewJobScheduler(reviewSvc services.ReviewService, cacheSvc caching.CacheService,
	reconcileInterval, scopeFlushInterval time.Duration, logger *zap.Logger) (*JobScheduler, error) {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		reviewSvc: reviewSvc,
		cacheSvc:  cacheSvc,
		logger:    logger,
		jobs:      make(map[string]gocron.Job),
	}

	if err := js.AddJob(JobRatingReconcile, reconcileInterval, js.reconcileRatings); err != nil {
		return nil, err
	}
	if err := js.AddJob(JobScopeCacheFlush, scopeFlushInterval, js.flushScopeCache); err != nil {
		return nil, err
	}
	logger.Info("registered background jobs", zap.Int("count", len(js.jobs)))

	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	js.logger.Info("starting background job scheduler")
	js.scheduler.Start()
}

// Stop waits for running jobs and stops the scheduler
func (js *JobScheduler) Stop() error {
	js.logger.Info("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// reconcileRatings recomputes every product's rating so the stored value matches its active ratings.
func (js *JobScheduler) reconcileRatings(ctx context.Context) error {
	start := time.Now()
	n, err := js.reviewSvc.RecomputeAll(ctx)
	if err != nil {
		js.logger.Error("rating reconciliation failed", zap.Int("products_done", n), zap.Error(err))
		return err
	}
	js.logger.Info("rating reconciliation completed",
		zap.Int("changed", n), zap.Duration("duration", time.Since(start)))
	return nil
}

func (js *JobScheduler) flushScopeCache(ctx context.Context) error {
	if err := js.cacheSvc.InvalidateCategoryScopes(ctx); err != nil {
		js.logger.Warn("category scope cache flush failed", zap.Error(err))
		return err
	}
	return nil
}

// AddJob registers a singleton duration job. task receives a context that is cancelled when the
// scheduler shuts down.
func (js *JobScheduler) AddJob(name string, interval time.Duration, task func(ctx context.Context) error) error {
	if interval <= 0 {
		return fmt.Errorf("job %s: interval must be positive", name)
	}

	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("job %s: %w", name, err)
	}

	js.jobs[name] = job
	return nil
}

// RunNow triggers a registered job outside its schedule.
func (js *JobScheduler) RunNow(name string) error {
	js.mu.RLock()
	job, ok := js.jobs[name]
	js.mu.RUnlock()
	if !ok {
		return fmt.Errorf("job %s is not registered", name)
	}
	return job.RunNow()
}

// RemoveJob removes a job from the scheduler
func (js *JobScheduler) RemoveJob(name string) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobs[name]; exists {
		err := js.scheduler.RemoveJob(job.ID())
		delete(js.jobs, name)
		return err
	}
	return nil
}

// JobNames returns the registered job names in order.
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
