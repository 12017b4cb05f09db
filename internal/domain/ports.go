package domain

import (
	"context"
	"time"
)

// ContentRepository defines the persistence operations the core needs.
// Implementations: internal/infra/postgres/repository.go
type ContentRepository interface {
	// PostsByProduct returns all social posts attached to a product.
	PostsByProduct(ctx context.Context, productID string) ([]*SocialPost, error)

	// AllPosts returns every social post in the store (trending scope).
	AllPosts(ctx context.Context) ([]*SocialPost, error)

	// VideosByProduct returns all video reviews attached to a product.
	VideosByProduct(ctx context.Context, productID string) ([]*VideoReview, error)

	// AllVideos returns every video review in the store (trending scope).
	AllVideos(ctx context.Context) ([]*VideoReview, error)

	// BulkUpsertPosts creates or updates posts in a batch, keyed by
	// provider_id + external_id.
	BulkUpsertPosts(ctx context.Context, posts []*SocialPost) error

	// BulkUpsertVideos creates or updates videos in a batch, keyed by
	// provider_id + external_id.
	BulkUpsertVideos(ctx context.Context, videos []*VideoReview) error

	// Counts returns the number of stored posts and videos.
	Counts(ctx context.Context) (posts int64, videos int64, err error)
}

// FeedBatch holds one fetch from an engagement feed provider.
type FeedBatch struct {
	Posts  []*SocialPost
	Videos []*VideoReview
}

// FeedProvider defines the interface for external engagement feeds.
// Implementations: internal/infra/provider/socialfeed, internal/infra/provider/videofeed
type FeedProvider interface {
	// Name returns the unique identifier for this provider.
	Name() string

	// Fetch retrieves the latest content batch from the provider.
	Fetch(ctx context.Context) (*FeedBatch, error)

	// HealthCheck verifies the provider is accessible.
	HealthCheck(ctx context.Context) error
}

// Cache defines the interface for caching ranked results.
// Implementations: internal/infra/redis/cache.go (optional)
type Cache interface {
	// Get retrieves a value by key. Returns nil if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Clear removes all cached values.
	Clear(ctx context.Context) error
}
