package videofeed

import (
	"time"

	"product-pulse-service/internal/domain"
)

// Response represents the JSON response from the video feed.
type Response struct {
	Videos     []VideoItem `json:"videos"`
	Pagination Pagination  `json:"pagination"`
}

// VideoItem represents a single video review from the feed. Counter fields
// are pointers so that an omitted counter stays distinguishable from zero
// and can be estimated downstream.
type VideoItem struct {
	ID        string `json:"id"`
	Product   string `json:"product_id"`
	Platform  string `json:"platform"`
	Title     string `json:"title"`
	Channel   string `json:"channel"`
	Thumbnail string `json:"thumbnail"`
	URL       string `json:"url"`

	ViewCount    *int `json:"view_count"`
	LikeCount    *int `json:"like_count"`
	CommentCount *int `json:"comment_count"`
	ShareCount   *int `json:"share_count"`
	Subscribers  *int `json:"subscribers"`

	DurationSeconds int     `json:"duration_seconds"`
	Quality         float64 `json:"quality"`

	// Epoch milliseconds; 0 = unknown
	PublishedAt int64 `json:"published_at"`
}

// Pagination holds pagination info.
type Pagination struct {
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// ToDomain converts VideoItem to domain.VideoReview.
func (v *VideoItem) ToDomain(providerID string) *domain.VideoReview {
	return &domain.VideoReview{
		ProviderID:      providerID,
		ExternalID:      v.ID,
		ProductID:       v.Product,
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
		PublishedAt:     msToTime(v.PublishedAt),
	}
}

func msToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
