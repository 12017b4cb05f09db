// Package ws implements the realtime broadcast channel: a subscriber hub and
// the typed message envelopes pushed through it.
package ws

import (
	"fmt"
	"time"

	"product-pulse-service/internal/domain"
)

// Message kinds pushed to subscribers.
const (
	KindNewProducts         = "new_products"
	KindPriceUpdates        = "price_updates"
	KindAvailabilityUpdates = "availability_updates"
	KindTrendingSocialMedia = "trending_social_media"
	KindTrendingVideos      = "trending_videos"
	KindHighEngagement      = "high_engagement_digest"
	KindSystemNotification  = "system_notification"
)

// contentPreviewLen caps post content in digest payloads.
const contentPreviewLen = 100

// Message is the envelope every broadcast frame uses. Timestamp is epoch
// milliseconds.
type Message struct {
	Kind      string      `json:"kind"`
	Payload   interface{} `json:"payload"`
	Timestamp int64       `json:"timestamp"`
}

// NewMessage builds an envelope stamped with the current time.
func NewMessage(kind string, payload interface{}) Message {
	return Message{
		Kind:      kind,
		Payload:   payload,
		Timestamp: time.Now().UnixMilli(),
	}
}

// SystemNotification is the payload for system_notification messages.
type SystemNotification struct {
	Text string `json:"text"`
}

// UpdateCounts is the payload for the catalog update kinds (new_products,
// price_updates, availability_updates): a count plus a human-readable line.
type UpdateCounts struct {
	Count   int    `json:"count"`
	Message string `json:"message"`
}

// NewProductsPayload builds the new_products payload.
func NewProductsPayload(count int) UpdateCounts {
	return UpdateCounts{
		Count:   count,
		Message: fmt.Sprintf("%d new products available", count),
	}
}

// PriceUpdatesPayload builds the price_updates payload.
func PriceUpdatesPayload(count int) UpdateCounts {
	return UpdateCounts{
		Count:   count,
		Message: fmt.Sprintf("%d products have updated prices", count),
	}
}

// AvailabilityUpdatesPayload builds the availability_updates payload.
func AvailabilityUpdatesPayload(count int) UpdateCounts {
	return UpdateCounts{
		Count:   count,
		Message: fmt.Sprintf("%d products have updated availability", count),
	}
}

// PostDigestItem is one post in a trending or high-engagement digest:
// identity, a truncated content preview, and the engagement snapshot the
// score was computed from.
type PostDigestItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Platform  string  `json:"platform"`
	Author    string  `json:"author"`
	Content   string  `json:"content"`
	URL       string  `json:"url,omitempty"`
	Likes     int     `json:"likes"`
	Comments  int     `json:"comments"`
	Shares    int     `json:"shares"`
	Views     int     `json:"views"`
	Score     float64 `json:"score"`
}

// VideoDigestItem is one video in a trending or high-engagement digest,
// with the view/like snapshot and the thumbnail passed through.
type VideoDigestItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Platform  string  `json:"platform"`
	Title     string  `json:"title"`
	Channel   string  `json:"channel"`
	Thumbnail string  `json:"thumbnail,omitempty"`
	URL       string  `json:"url,omitempty"`
	Views     int     `json:"views"`
	Likes     int     `json:"likes"`
	Score     float64 `json:"score"`
}

// TrendingPostsPayload is the payload for trending_social_media messages.
type TrendingPostsPayload struct {
	Count   int              `json:"count"`
	Posts   []PostDigestItem `json:"posts"`
	Message string           `json:"message"`
}

// NewTrendingPostsPayload builds the trending_social_media payload, scoring
// at now.
func NewTrendingPostsPayload(posts []*domain.SocialPost, now time.Time) TrendingPostsPayload {
	items := PostDigest(posts, now)
	return TrendingPostsPayload{
		Count:   len(items),
		Posts:   items,
		Message: fmt.Sprintf("%d trending social media posts", len(items)),
	}
}

// TrendingVideosPayload is the payload for trending_videos messages.
type TrendingVideosPayload struct {
	Count   int               `json:"count"`
	Videos  []VideoDigestItem `json:"videos"`
	Message string            `json:"message"`
}

// NewTrendingVideosPayload builds the trending_videos payload, scoring at now.
func NewTrendingVideosPayload(videos []*domain.VideoReview, now time.Time) TrendingVideosPayload {
	items := VideoDigest(videos, now)
	return TrendingVideosPayload{
		Count:   len(items),
		Videos:  items,
		Message: fmt.Sprintf("%d trending video reviews", len(items)),
	}
}

// HighEngagementPayload is the payload for high_engagement_digest messages:
// the strongest posts and videos from the latest update cycle.
type HighEngagementPayload struct {
	Posts   []PostDigestItem  `json:"posts"`
	Videos  []VideoDigestItem `json:"videos"`
	Message string            `json:"message"`
}

// NewHighEngagementPayload builds the high_engagement_digest payload,
// scoring at now.
func NewHighEngagementPayload(posts []*domain.SocialPost, videos []*domain.VideoReview, now time.Time) HighEngagementPayload {
	p := PostDigest(posts, now)
	v := VideoDigest(videos, now)
	return HighEngagementPayload{
		Posts:   p,
		Videos:  v,
		Message: fmt.Sprintf("top %d posts and %d videos by engagement", len(p), len(v)),
	}
}

// PostDigest converts ranked posts into digest items, scoring at now.
func PostDigest(posts []*domain.SocialPost, now time.Time) []PostDigestItem {
	items := make([]PostDigestItem, len(posts))
	for i, p := range posts {
		m := p.Metrics()
		items[i] = PostDigestItem{
			ID:        p.ID,
			ProductID: p.ProductID,
			Platform:  p.Platform,
			Author:    p.Author,
			Content:   truncate(p.Content, contentPreviewLen),
			URL:       p.URL,
			Likes:     m.Likes,
			Comments:  m.Comments,
			Shares:    m.Shares,
			Views:     m.Views,
			Score:     domain.ScorePost(p, now),
		}
	}
	return items
}

// VideoDigest converts ranked videos into digest items, scoring at now.
func VideoDigest(videos []*domain.VideoReview, now time.Time) []VideoDigestItem {
	items := make([]VideoDigestItem, len(videos))
	for i, v := range videos {
		m := v.Metrics()
		items[i] = VideoDigestItem{
			ID:        v.ID,
			ProductID: v.ProductID,
			Platform:  v.Platform,
			Title:     truncate(v.Title, contentPreviewLen),
			Channel:   v.Channel,
			Thumbnail: v.Thumbnail,
			URL:       v.URL,
			Views:     m.Views,
			Likes:     m.Likes,
			Score:     domain.ScoreVideo(v, now),
		}
	}
	return items
}

// truncate cuts s to max runes and appends an ellipsis when it was longer.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
