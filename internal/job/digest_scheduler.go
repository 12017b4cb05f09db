// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"product-pulse-service/internal/app/service"
	"product-pulse-service/pkg/locker"
)

// DigestScheduler runs the periodic feed-sync and broadcast cycle with
// distributed locking to ensure only one instance executes it at a time.
type DigestScheduler struct {
	syncService *service.SyncService
	interval    time.Duration
	timeout     time.Duration
	logger      *zap.Logger
	locker      locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// DigestConfig holds digest scheduler configuration.
type DigestConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// NewDigestScheduler creates a new DigestScheduler with distributed locking
// support.
func NewDigestScheduler(
	syncSvc *service.SyncService,
	cfg DigestConfig,
	logger *zap.Logger,
	locker locker.DistributedLocker,
) *DigestScheduler {
	return &DigestScheduler{
		syncService: syncSvc,
		interval:    cfg.Interval,
		timeout:     cfg.Timeout,
		logger:      logger,
		locker:      locker,
	}
}

// Start begins the background digest job.
func (s *DigestScheduler) Start(runOnStartup bool) {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting digest scheduler",
		zap.Duration("interval", s.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	s.wg.Add(1)
	go s.run(runOnStartup)
}

// Stop gracefully stops the scheduler.
func (s *DigestScheduler) Stop() {
	s.logger.Info("stopping digest scheduler")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("digest scheduler stopped")
}

// run is the main loop of the scheduler.
func (s *DigestScheduler) run(runOnStartup bool) {
	defer s.wg.Done()

	// Run immediately if configured
	if runOnStartup {
		s.executeCycle()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.executeCycle()
		}
	}
}

// executeCycle performs one sync-and-broadcast cycle with distributed locking
// and timeout.
//
// Locking behavior:
//   - Lock TTL = interval duration (cooldown model, not timeout)
//   - Success: Lock held for full interval to prevent duplicate cycles
//   - Failure: Lock released immediately to allow retry by another instance
func (s *DigestScheduler) executeCycle() {
	const lockKey = "digest:scheduler:lock"

	// Try to acquire lock with interval-based TTL (cooldown model)
	acquired, err := s.locker.Acquire(s.ctx, lockKey, s.interval)
	if err != nil {
		s.logger.Error("failed to acquire distributed lock", zap.Error(err))

		return
	}
	if !acquired {
		s.logger.Debug("another instance is running the digest cycle, skipping execution")

		return
	}

	// Lock acquired - run the cycle with timeout
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	results := s.syncService.SyncAll(ctx)

	totalPosts := 0
	totalVideos := 0
	feedsFailed := 0
	hasError := false

	for _, r := range results {
		if r.Error != nil {
			feedsFailed++
			hasError = true
			s.logger.Warn("feed sync failed",
				zap.String("provider", r.Provider),
				zap.Error(r.Error),
			)
			continue
		}
		totalPosts += r.Posts
		totalVideos += r.Videos
	}

	if err := s.syncService.BroadcastDigests(ctx); err != nil {
		hasError = true
		s.logger.Warn("digest broadcast failed", zap.Error(err))
	}

	if hasError {
		// Release lock immediately on error (allow immediate retry)
		if err := s.locker.Release(s.ctx, lockKey); err != nil {
			s.logger.Error("failed to release lock after cycle error", zap.Error(err))
		}
		s.logger.Info("digest cycle completed with errors, lock released for retry",
			zap.Int("posts_synced", totalPosts),
			zap.Int("videos_synced", totalVideos),
			zap.Int("feeds_failed", feedsFailed),
		)
	} else {
		// Lock will expire naturally after interval (cooldown period)
		s.logger.Info("digest cycle completed, lock held for cooldown",
			zap.Int("posts_synced", totalPosts),
			zap.Int("videos_synced", totalVideos),
			zap.Duration("cooldown", s.interval),
		)
	}
}
