package postgres

import (
	"time"

	"product-pulse-service/internal/domain"

	"github.com/lib/pq"
)

// SocialPostModel is the GORM model for the social_posts table.
//
// Engagement columns are pointers: NULL means the feed never reported the
// counter, which the domain treats differently from a zero.
type SocialPostModel struct {
	ID         string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID  string         `gorm:"type:varchar(100);not null;index"`
	ProviderID string         `gorm:"type:varchar(50);not null;index:idx_post_provider_external,unique"`
	ExternalID string         `gorm:"type:varchar(100);not null;index:idx_post_provider_external,unique"`
	Platform   string         `gorm:"type:varchar(50);not null;index"`
	Author     string         `gorm:"type:varchar(200)"`
	Verified   bool           `gorm:"default:false"`
	Content    string         `gorm:"type:text"`
	URL        string         `gorm:"type:varchar(500)"`
	Tags       pq.StringArray `gorm:"type:text[]"`

	// Engagement counters (NULL = not provided)
	Likes     *int
	Comments  *int
	Shares    *int
	Views     *int
	Saves     *int
	Followers *int

	PostedAt  *time.Time `gorm:"index"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
}

// TableName returns the table name for SocialPostModel.
func (SocialPostModel) TableName() string {
	return "social_posts"
}

// ToDomain converts SocialPostModel to domain.SocialPost.
func (m *SocialPostModel) ToDomain() *domain.SocialPost {
	return &domain.SocialPost{
		ID:         m.ID,
		ProductID:  m.ProductID,
		ProviderID: m.ProviderID,
		ExternalID: m.ExternalID,
		Platform:   m.Platform,
		Author:     m.Author,
		Verified:   m.Verified,
		Content:    m.Content,
		URL:        m.URL,
		Tags:       m.Tags,
		Likes:      m.Likes,
		Comments:   m.Comments,
		Shares:     m.Shares,
		Views:      m.Views,
		Saves:      m.Saves,
		Followers:  m.Followers,
		PostedAt:   timeOrZero(m.PostedAt),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// PostFromDomain creates a SocialPostModel from domain.SocialPost.
func PostFromDomain(p *domain.SocialPost) *SocialPostModel {
	return &SocialPostModel{
		ID:         p.ID,
		ProductID:  p.ProductID,
		ProviderID: p.ProviderID,
		ExternalID: p.ExternalID,
		Platform:   p.Platform,
		Author:     p.Author,
		Verified:   p.Verified,
		Content:    p.Content,
		URL:        p.URL,
		Tags:       p.Tags,
		Likes:      p.Likes,
		Comments:   p.Comments,
		Shares:     p.Shares,
		Views:      p.Views,
		Saves:      p.Saves,
		Followers:  p.Followers,
		PostedAt:   timePtrOrNil(p.PostedAt),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// VideoReviewModel is the GORM model for the video_reviews table.
type VideoReviewModel struct {
	ID         string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID  string `gorm:"type:varchar(100);not null;index"`
	ProviderID string `gorm:"type:varchar(50);not null;index:idx_video_provider_external,unique"`
	ExternalID string `gorm:"type:varchar(100);not null;index:idx_video_provider_external,unique"`
	Platform   string `gorm:"type:varchar(50);not null;index"`
	Title      string `gorm:"type:varchar(500)"`
	Channel    string `gorm:"type:varchar(200)"`
	Thumbnail  string `gorm:"type:varchar(500)"`
	URL        string `gorm:"type:varchar(500)"`

	// Engagement counters (NULL = not provided)
	ViewCount    *int
	LikeCount    *int
	CommentCount *int
	ShareCount   *int
	Subscribers  *int

	DurationSeconds int     `gorm:"default:0"`
	Quality         float64 `gorm:"type:decimal(3,1);default:0"`

	PublishedAt *time.Time `gorm:"index"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
}

// TableName returns the table name for VideoReviewModel.
func (VideoReviewModel) TableName() string {
	return "video_reviews"
}

// ToDomain converts VideoReviewModel to domain.VideoReview.
func (m *VideoReviewModel) ToDomain() *domain.VideoReview {
	return &domain.VideoReview{
		ID:              m.ID,
		ProductID:       m.ProductID,
		ProviderID:      m.ProviderID,
		ExternalID:      m.ExternalID,
		Platform:        m.Platform,
		Title:           m.Title,
		Channel:         m.Channel,
		Thumbnail:       m.Thumbnail,
		URL:             m.URL,
		ViewCount:       m.ViewCount,
		LikeCount:       m.LikeCount,
		CommentCount:    m.CommentCount,
		ShareCount:      m.ShareCount,
		Subscribers:     m.Subscribers,
		DurationSeconds: m.DurationSeconds,
		Quality:         m.Quality,
		PublishedAt:     timeOrZero(m.PublishedAt),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// VideoFromDomain creates a VideoReviewModel from domain.VideoReview.
func VideoFromDomain(v *domain.VideoReview) *VideoReviewModel {
	return &VideoReviewModel{
		ID:              v.ID,
		ProductID:       v.ProductID,
		ProviderID:      v.ProviderID,
		ExternalID:      v.ExternalID,
		Platform:        v.Platform,
		Title:           v.Title,
		Channel:         v.Channel,
		Thumbnail:       v.Thumbnail,
		URL:             v.URL,
		ViewCount:       v.ViewCount,
		LikeCount:       v.LikeCount,
		CommentCount:    v.CommentCount,
		ShareCount:      v.ShareCount,
		Subscribers:     v.Subscribers,
		DurationSeconds: v.DurationSeconds,
		Quality:         v.Quality,
		PublishedAt:     timePtrOrNil(v.PublishedAt),
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

// timePtrOrNil maps the domain's zero-value "unknown" timestamp to NULL.
func timePtrOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
