// Package service provides application use cases.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"product-pulse-service/internal/domain"
)

// ContentService answers ranked and trending content queries. Results can be
// cached; the cache is optional and a nil Cache disables it.
type ContentService struct {
	repo       domain.ContentRepository
	cache      domain.Cache
	cacheTTL   time.Duration
	postLimit  int
	videoLimit int
	logger     *zap.Logger
}

// ContentServiceConfig holds the tunables for ContentService.
type ContentServiceConfig struct {
	CacheTTL   time.Duration
	PostLimit  int
	VideoLimit int
}

// NewContentService creates a new ContentService. cache may be nil.
func NewContentService(repo domain.ContentRepository, cache domain.Cache, cfg ContentServiceConfig, logger *zap.Logger) *ContentService {
	if cfg.PostLimit <= 0 {
		cfg.PostLimit = domain.DefaultPostLimit
	}
	if cfg.VideoLimit <= 0 {
		cfg.VideoLimit = domain.DefaultVideoLimit
	}

	return &ContentService{
		repo:       repo,
		cache:      cache,
		cacheTTL:   cfg.CacheTTL,
		postLimit:  cfg.PostLimit,
		videoLimit: cfg.VideoLimit,
		logger:     logger,
	}
}

// RankedPostsForProduct returns a product's posts ranked by engagement.
func (s *ContentService) RankedPostsForProduct(ctx context.Context, productID string, limit int) (*domain.RankedPosts, error) {
	if limit <= 0 {
		limit = s.postLimit
	}

	cacheKey := fmt.Sprintf("product:%s:posts:%d", productID, limit)
	var cached domain.RankedPosts
	if s.readCache(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	posts, err := s.repo.PostsByProduct(ctx, productID)
	if err != nil {
		s.logger.Error("loading product posts failed",
			zap.String("product_id", productID),
			zap.Error(err),
		)
		return nil, err
	}

	result := domain.RankPosts(posts, limit, time.Now())
	s.writeCache(ctx, cacheKey, result)

	return &result, nil
}

// RankedVideosForProduct returns a product's video reviews ranked by impact.
func (s *ContentService) RankedVideosForProduct(ctx context.Context, productID string, limit int) (*domain.RankedVideos, error) {
	if limit <= 0 {
		limit = s.videoLimit
	}

	cacheKey := fmt.Sprintf("product:%s:videos:%d", productID, limit)
	var cached domain.RankedVideos
	if s.readCache(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	videos, err := s.repo.VideosByProduct(ctx, productID)
	if err != nil {
		s.logger.Error("loading product videos failed",
			zap.String("product_id", productID),
			zap.Error(err),
		)
		return nil, err
	}

	result := domain.RankVideos(videos, limit, time.Now())
	s.writeCache(ctx, cacheKey, result)

	return &result, nil
}

// MostImpactfulVideo returns the single strongest video review for a
// product, or nil when the product has none.
func (s *ContentService) MostImpactfulVideo(ctx context.Context, productID string) (*domain.VideoReview, error) {
	videos, err := s.repo.VideosByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	return domain.MostImpactfulVideo(videos, time.Now()), nil
}

// TrendingPosts returns the catalog-wide trending posts. A non-positive
// limit falls back to the domain trending default.
func (s *ContentService) TrendingPosts(ctx context.Context, limit int) ([]*domain.SocialPost, error) {
	posts, err := s.repo.AllPosts(ctx)
	if err != nil {
		s.logger.Error("loading posts for trending failed", zap.Error(err))
		return nil, err
	}

	return domain.TrendingPosts(posts, limit, time.Now()), nil
}

// TrendingVideos returns the catalog-wide trending videos. A non-positive
// limit falls back to the domain trending default.
func (s *ContentService) TrendingVideos(ctx context.Context, limit int) ([]*domain.VideoReview, error) {
	videos, err := s.repo.AllVideos(ctx)
	if err != nil {
		s.logger.Error("loading videos for trending failed", zap.Error(err))
		return nil, err
	}

	return domain.TrendingVideos(videos, limit, time.Now()), nil
}

// Counts returns the stored post and video totals.
func (s *ContentService) Counts(ctx context.Context) (int64, int64, error) {
	return s.repo.Counts(ctx)
}

// InvalidateCache drops all cached ranked results. Called after every sync
// so stale rankings do not outlive fresh data.
func (s *ContentService) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Clear(ctx); err != nil {
		s.logger.Warn("cache invalidation failed", zap.Error(err))
	}
}

// readCache loads a cached JSON value into out. Returns false on miss,
// disabled cache or any error; cache trouble never fails a query.
func (s *ContentService) readCache(ctx context.Context, key string, out interface{}) bool {
	if s.cache == nil {
		return false
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("cache entry undecodable, dropping",
			zap.String("key", key),
			zap.Error(err),
		)
		_ = s.cache.Delete(ctx, key)
		return false
	}

	return true
}

func (s *ContentService) writeCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Warn("cache write failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
