package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"product-pulse-service/internal/domain"
	"product-pulse-service/internal/transport/ws"
)

// Broadcaster pushes messages to all realtime subscribers.
// Implementations: internal/transport/ws.Hub
type Broadcaster interface {
	Broadcast(msg ws.Message) int
}

// SyncService runs the feed update cycle: pull all engagement feeds, persist
// the batches, recompute trending content and broadcast digests.
type SyncService struct {
	repo      domain.ContentRepository
	providers []domain.FeedProvider
	content   *ContentService
	hub       Broadcaster
	topPosts  int
	topVideos int
	logger    *zap.Logger
}

// SyncServiceConfig holds digest sizes for the broadcast payloads.
type SyncServiceConfig struct {
	TopPosts  int
	TopVideos int
}

// NewSyncService creates a new SyncService. hub may be nil, which disables
// broadcasting (admin-triggered syncs in tests, for example).
func NewSyncService(
	repo domain.ContentRepository,
	providers []domain.FeedProvider,
	content *ContentService,
	hub Broadcaster,
	cfg SyncServiceConfig,
	logger *zap.Logger,
) *SyncService {
	if cfg.TopPosts <= 0 {
		cfg.TopPosts = 3
	}
	if cfg.TopVideos <= 0 {
		cfg.TopVideos = 2
	}

	return &SyncService{
		repo:      repo,
		providers: providers,
		content:   content,
		hub:       hub,
		topPosts:  cfg.TopPosts,
		topVideos: cfg.TopVideos,
		logger:    logger,
	}
}

// SyncResult holds the outcome of one provider's sync.
type SyncResult struct {
	Provider string
	Posts    int
	Videos   int
	Duration time.Duration
	Error    error
}

// SyncAll pulls every feed concurrently and persists the results. Partial
// failures are allowed: one dead feed must not block the others.
func (s *SyncService) SyncAll(ctx context.Context) []SyncResult {
	results := make([]SyncResult, len(s.providers))
	var wg sync.WaitGroup

	s.logger.Info("starting sync from all feeds",
		zap.Int("feed_count", len(s.providers)),
	)

	for i, provider := range s.providers {
		wg.Add(1)
		go func(idx int, p domain.FeedProvider) {
			defer wg.Done()
			results[idx] = s.syncProvider(ctx, p)
		}(i, provider)
	}

	wg.Wait()

	totalPosts := 0
	totalVideos := 0
	totalErrors := 0
	for _, r := range results {
		if r.Error != nil {
			totalErrors++
			continue
		}
		totalPosts += r.Posts
		totalVideos += r.Videos
	}

	s.logger.Info("sync completed",
		zap.Int("posts_synced", totalPosts),
		zap.Int("videos_synced", totalVideos),
		zap.Int("feeds_failed", totalErrors),
	)

	if totalPosts > 0 || totalVideos > 0 {
		s.content.InvalidateCache(ctx)
	}

	return results
}

// RunCycle is the full digest cycle: sync all feeds, then broadcast the
// refreshed trending sets and a high-engagement digest to subscribers.
func (s *SyncService) RunCycle(ctx context.Context) error {
	s.SyncAll(ctx)
	return s.BroadcastDigests(ctx)
}

// BroadcastDigests recomputes the trending sets from the store and pushes
// them to all subscribers, followed by a digest of the strongest content.
func (s *SyncService) BroadcastDigests(ctx context.Context) error {
	if s.hub == nil {
		return nil
	}

	now := time.Now()

	posts, err := s.repo.AllPosts(ctx)
	if err != nil {
		s.logger.Error("digest post load failed", zap.Error(err))
		return err
	}
	videos, err := s.repo.AllVideos(ctx)
	if err != nil {
		s.logger.Error("digest video load failed", zap.Error(err))
		return err
	}

	trendingPosts := domain.TrendingPosts(posts, domain.DefaultTrendingLimit, now)
	trendingVideos := domain.TrendingVideos(videos, domain.DefaultTrendingLimit, now)

	s.hub.Broadcast(ws.NewMessage(ws.KindTrendingSocialMedia, ws.NewTrendingPostsPayload(trendingPosts, now)))
	s.hub.Broadcast(ws.NewMessage(ws.KindTrendingVideos, ws.NewTrendingVideosPayload(trendingVideos, now)))

	digestPosts := trendingPosts
	if len(digestPosts) > s.topPosts {
		digestPosts = digestPosts[:s.topPosts]
	}
	digestVideos := trendingVideos
	if len(digestVideos) > s.topVideos {
		digestVideos = digestVideos[:s.topVideos]
	}

	s.hub.Broadcast(ws.NewMessage(ws.KindHighEngagement, ws.NewHighEngagementPayload(digestPosts, digestVideos, now)))

	s.logger.Info("digests broadcast",
		zap.Int("trending_posts", len(trendingPosts)),
		zap.Int("trending_videos", len(trendingVideos)),
	)

	return nil
}

// NotifyCatalogUpdates pushes catalog change counts (new products, price and
// availability updates) to subscribers. Zero counts are skipped.
func (s *SyncService) NotifyCatalogUpdates(newProducts, priceUpdates, availabilityUpdates int) {
	if s.hub == nil {
		return
	}

	if newProducts > 0 {
		s.hub.Broadcast(ws.NewMessage(ws.KindNewProducts, ws.NewProductsPayload(newProducts)))
	}
	if priceUpdates > 0 {
		s.hub.Broadcast(ws.NewMessage(ws.KindPriceUpdates, ws.PriceUpdatesPayload(priceUpdates)))
	}
	if availabilityUpdates > 0 {
		s.hub.Broadcast(ws.NewMessage(ws.KindAvailabilityUpdates, ws.AvailabilityUpdatesPayload(availabilityUpdates)))
	}
}

// syncProvider fetches and upserts one feed's batch.
func (s *SyncService) syncProvider(ctx context.Context, provider domain.FeedProvider) SyncResult {
	start := time.Now()
	result := SyncResult{
		Provider: provider.Name(),
	}

	s.logger.Debug("syncing feed", zap.String("feed", provider.Name()))

	batch, err := provider.Fetch(ctx)
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		s.logger.Warn("feed fetch failed",
			zap.String("feed", provider.Name()),
			zap.Error(err),
		)
		return result
	}

	if len(batch.Posts) > 0 {
		if err := s.repo.BulkUpsertPosts(ctx, batch.Posts); err != nil {
			result.Error = err
			result.Duration = time.Since(start)
			s.logger.Error("post upsert failed",
				zap.String("feed", provider.Name()),
				zap.Error(err),
			)
			return result
		}
	}
	if len(batch.Videos) > 0 {
		if err := s.repo.BulkUpsertVideos(ctx, batch.Videos); err != nil {
			result.Error = err
			result.Duration = time.Since(start)
			s.logger.Error("video upsert failed",
				zap.String("feed", provider.Name()),
				zap.Error(err),
			)
			return result
		}
	}

	result.Posts = len(batch.Posts)
	result.Videos = len(batch.Videos)
	result.Duration = time.Since(start)

	s.logger.Info("feed sync completed",
		zap.String("feed", provider.Name()),
		zap.Int("posts", result.Posts),
		zap.Int("videos", result.Videos),
		zap.Duration("duration", result.Duration),
	)

	return result
}

// SyncProvider syncs a single named feed. Returns nil when the feed is
// unknown.
func (s *SyncService) SyncProvider(ctx context.Context, providerName string) (*SyncResult, error) {
	for _, p := range s.providers {
		if p.Name() == providerName {
			result := s.syncProvider(ctx, p)
			return &result, result.Error
		}
	}
	return nil, nil
}

// GetProviderNames returns the names of all registered feeds.
func (s *SyncService) GetProviderNames() []string {
	names := make([]string, len(s.providers))
	for i, p := range s.providers {
		names[i] = p.Name()
	}
	return names
}
