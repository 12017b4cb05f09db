package dto

import (
	"time"

	"product-pulse-service/internal/app/service"
	"product-pulse-service/internal/domain"
)

// PostResponse represents a single social post in the response.
type PostResponse struct {
	ID         string   `json:"id"`
	ProductID  string   `json:"product_id"`
	ProviderID string   `json:"provider_id"`
	ExternalID string   `json:"external_id"`
	Platform   string   `json:"platform"`
	Author     string   `json:"author,omitempty"`
	Verified   bool     `json:"verified"`
	Content    string   `json:"content,omitempty"`
	URL        string   `json:"url,omitempty"`
	Tags       []string `json:"tags,omitempty"`

	// Engagement counters (omitted when the feed never reported them)
	Likes    *int `json:"likes,omitempty"`
	Comments *int `json:"comments,omitempty"`
	Shares   *int `json:"shares,omitempty"`
	Views    *int `json:"views,omitempty"`
	Saves    *int `json:"saves,omitempty"`

	Score    float64 `json:"score"`
	Reach    int     `json:"reach"`
	PostedAt string  `json:"posted_at,omitempty"`
}

// FromDomainPost converts domain.SocialPost to PostResponse, scoring at now.
func FromDomainPost(p *domain.SocialPost, now time.Time) PostResponse {
	resp := PostResponse{
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
		Score:      domain.ScorePost(p, now),
		Reach:      p.Reach(),
	}
	if !p.PostedAt.IsZero() {
		resp.PostedAt = p.PostedAt.Format(time.RFC3339)
	}
	return resp
}

// VideoResponse represents a single video review in the response.
type VideoResponse struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	ProviderID string `json:"provider_id"`
	ExternalID string `json:"external_id"`
	Platform   string `json:"platform"`
	Title      string `json:"title,omitempty"`
	Channel    string `json:"channel,omitempty"`
	Thumbnail  string `json:"thumbnail,omitempty"`
	URL        string `json:"url,omitempty"`

	ViewCount    *int `json:"view_count,omitempty"`
	LikeCount    *int `json:"like_count,omitempty"`
	CommentCount *int `json:"comment_count,omitempty"`
	ShareCount   *int `json:"share_count,omitempty"`

	DurationSeconds int     `json:"duration_seconds,omitempty"`
	Quality         float64 `json:"quality,omitempty"`
	Score           float64 `json:"score"`
	PublishedAt     string  `json:"published_at,omitempty"`
}

// FromDomainVideo converts domain.VideoReview to VideoResponse, scoring at
// now.
func FromDomainVideo(v *domain.VideoReview, now time.Time) VideoResponse {
	resp := VideoResponse{
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
		DurationSeconds: v.DurationSeconds,
		Quality:         v.Quality,
		Score:           domain.ScoreVideo(v, now),
	}
	if !v.PublishedAt.IsZero() {
		resp.PublishedAt = v.PublishedAt.Format(time.RFC3339)
	}
	return resp
}

// RankedPostsResponse represents a ranked post set with aggregates.
type RankedPostsResponse struct {
	Posts        []PostResponse         `json:"posts"`
	TotalReach   int                    `json:"total_reach"`
	TopPlatforms []domain.PlatformCount `json:"top_platforms"`
}

// FromRankedPosts converts domain.RankedPosts to RankedPostsResponse.
func FromRankedPosts(r *domain.RankedPosts, now time.Time) RankedPostsResponse {
	posts := make([]PostResponse, len(r.Posts))
	for i, p := range r.Posts {
		posts[i] = FromDomainPost(p, now)
	}

	return RankedPostsResponse{
		Posts:        posts,
		TotalReach:   r.TotalReach,
		TopPlatforms: r.TopPlatforms,
	}
}

// RankedVideosResponse represents a ranked video set with aggregates.
type RankedVideosResponse struct {
	Videos       []VideoResponse        `json:"videos"`
	TotalViews   int                    `json:"total_views"`
	TopPlatforms []domain.PlatformCount `json:"top_platforms"`
}

// FromRankedVideos converts domain.RankedVideos to RankedVideosResponse.
func FromRankedVideos(r *domain.RankedVideos, now time.Time) RankedVideosResponse {
	videos := make([]VideoResponse, len(r.Videos))
	for i, v := range r.Videos {
		videos[i] = FromDomainVideo(v, now)
	}

	return RankedVideosResponse{
		Videos:       videos,
		TotalViews:   r.TotalViews,
		TopPlatforms: r.TopPlatforms,
	}
}

// TrendingPostsResponse represents the catalog-wide trending posts.
type TrendingPostsResponse struct {
	Posts []PostResponse `json:"posts"`
}

// TrendingVideosResponse represents the catalog-wide trending videos.
type TrendingVideosResponse struct {
	Videos []VideoResponse `json:"videos"`
}

// SyncResultResponse represents the response for a single feed's sync.
type SyncResultResponse struct {
	Provider string `json:"provider"`
	Posts    int    `json:"posts"`
	Videos   int    `json:"videos"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

// SyncResponse represents the response for sync all operation.
type SyncResponse struct {
	Results []SyncResultResponse `json:"results"`
	Summary SyncSummary          `json:"summary"`
}

// SyncSummary holds summary of sync operation.
type SyncSummary struct {
	PostsSynced  int `json:"posts_synced"`
	VideosSynced int `json:"videos_synced"`
	FeedsOK      int `json:"feeds_ok"`
	FeedsFail    int `json:"feeds_fail"`
}

// FromSyncResults converts service.SyncResult slice to SyncResponse.
func FromSyncResults(results []service.SyncResult) SyncResponse {
	resp := SyncResponse{
		Results: make([]SyncResultResponse, len(results)),
	}

	for i, r := range results {
		errMsg := ""
		if r.Error != nil {
			errMsg = r.Error.Error()
			resp.Summary.FeedsFail++
		} else {
			resp.Summary.PostsSynced += r.Posts
			resp.Summary.VideosSynced += r.Videos
			resp.Summary.FeedsOK++
		}

		resp.Results[i] = SyncResultResponse{
			Provider: r.Provider,
			Posts:    r.Posts,
			Videos:   r.Videos,
			Duration: r.Duration.String(),
			Error:    errMsg,
		}
	}

	return resp
}

// StatsResponse represents the admin stats endpoint payload.
type StatsResponse struct {
	TotalPosts  int64 `json:"total_posts"`
	TotalVideos int64 `json:"total_videos"`
	Subscribers int   `json:"subscribers"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
