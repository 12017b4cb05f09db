package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"product-pulse-service/internal/domain"
)

// Repository implements domain.ContentRepository using PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// PostsByProduct returns all social posts attached to a product.
func (r *Repository) PostsByProduct(ctx context.Context, productID string) ([]*domain.SocialPost, error) {
	var models []SocialPostModel
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("loading posts for product %s: %w", productID, err)
	}

	return postsToDomain(models), nil
}

// AllPosts returns every social post in the store.
func (r *Repository) AllPosts(ctx context.Context) ([]*domain.SocialPost, error) {
	var models []SocialPostModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("loading posts: %w", err)
	}

	return postsToDomain(models), nil
}

// VideosByProduct returns all video reviews attached to a product.
func (r *Repository) VideosByProduct(ctx context.Context, productID string) ([]*domain.VideoReview, error) {
	var models []VideoReviewModel
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("loading videos for product %s: %w", productID, err)
	}

	return videosToDomain(models), nil
}

// AllVideos returns every video review in the store.
func (r *Repository) AllVideos(ctx context.Context) ([]*domain.VideoReview, error) {
	var models []VideoReviewModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("loading videos: %w", err)
	}

	return videosToDomain(models), nil
}

// BulkUpsertPosts creates or updates posts in a batch, keyed by
// provider_id + external_id.
func (r *Repository) BulkUpsertPosts(ctx context.Context, posts []*domain.SocialPost) error {
	if len(posts) == 0 {
		return nil
	}

	now := time.Now().UTC()
	models := make([]*SocialPostModel, len(posts))
	for i, p := range posts {
		models[i] = PostFromDomain(p)
		models[i].UpdatedAt = now
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "provider_id"}, {Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"product_id", "platform", "author", "verified", "content", "url", "tags",
			"likes", "comments", "shares", "views", "saves", "followers",
			"posted_at", "updated_at",
		}),
	}).CreateInBatches(models, 100).Error
	if err != nil {
		return fmt.Errorf("bulk upserting posts: %w", err)
	}

	// Propagate database-generated fields back to the domain objects
	for i, m := range models {
		posts[i].ID = m.ID
		posts[i].CreatedAt = m.CreatedAt
		posts[i].UpdatedAt = m.UpdatedAt
	}

	return nil
}

// BulkUpsertVideos creates or updates videos in a batch, keyed by
// provider_id + external_id.
func (r *Repository) BulkUpsertVideos(ctx context.Context, videos []*domain.VideoReview) error {
	if len(videos) == 0 {
		return nil
	}

	now := time.Now().UTC()
	models := make([]*VideoReviewModel, len(videos))
	for i, v := range videos {
		models[i] = VideoFromDomain(v)
		models[i].UpdatedAt = now
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "provider_id"}, {Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"product_id", "platform", "title", "channel", "thumbnail", "url",
			"view_count", "like_count", "comment_count", "share_count", "subscribers",
			"duration_seconds", "quality", "published_at", "updated_at",
		}),
	}).CreateInBatches(models, 100).Error
	if err != nil {
		return fmt.Errorf("bulk upserting videos: %w", err)
	}

	for i, m := range models {
		videos[i].ID = m.ID
		videos[i].CreatedAt = m.CreatedAt
		videos[i].UpdatedAt = m.UpdatedAt
	}

	return nil
}

// Counts returns the number of stored posts and videos. Used by the admin
// stats endpoint.
func (r *Repository) Counts(ctx context.Context) (posts int64, videos int64, err error) {
	if err = r.db.WithContext(ctx).Model(&SocialPostModel{}).Count(&posts).Error; err != nil {
		return 0, 0, fmt.Errorf("counting posts: %w", err)
	}
	if err = r.db.WithContext(ctx).Model(&VideoReviewModel{}).Count(&videos).Error; err != nil {
		return 0, 0, fmt.Errorf("counting videos: %w", err)
	}

	return posts, videos, nil
}

func postsToDomain(models []SocialPostModel) []*domain.SocialPost {
	posts := make([]*domain.SocialPost, len(models))
	for i := range models {
		posts[i] = models[i].ToDomain()
	}
	return posts
}

func videosToDomain(models []VideoReviewModel) []*domain.VideoReview {
	videos := make([]*domain.VideoReview, len(models))
	for i := range models {
		videos[i] = models[i].ToDomain()
	}
	return videos
}
