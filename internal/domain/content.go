// Package domain contains the core business logic and entities.
// This package has no external dependencies (only stdlib).
package domain

import (
	"time"
)

// ContentType discriminates the two content variants.
type ContentType string

const (
	ContentTypeSocialPost  ContentType = "social_post"
	ContentTypeVideoReview ContentType = "video_review"
)

// SocialPost is a social-media post attached to a product. The product itself
// lives in the external catalog store; ProductID is an opaque reference.
//
// Engagement counters are pointers because the source feeds distinguish
// "metric not provided" (nil) from a legitimate zero. Normalization into a
// fully-populated PostMetrics happens in Metrics, never inline in formulas.
type SocialPost struct {
	ID         string   `json:"id"`
	ProductID  string   `json:"product_id"`
	ProviderID string   `json:"provider_id"`
	ExternalID string   `json:"external_id"`
	Platform   string   `json:"platform"`
	Author     string   `json:"author"`
	Verified   bool     `json:"verified"`
	Content    string   `json:"content"`
	URL        string   `json:"url,omitempty"`
	Tags       []string `json:"tags,omitempty"`

	// Engagement counters (nil = not provided by the feed)
	Likes     *int `json:"likes,omitempty"`
	Comments  *int `json:"comments,omitempty"`
	Shares    *int `json:"shares,omitempty"`
	Views     *int `json:"views,omitempty"`
	Saves     *int `json:"saves,omitempty"`
	Followers *int `json:"followers,omitempty"` // author follower count

	PostedAt  time.Time `json:"posted_at"` // zero value = unknown
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostMetrics is the fully-populated engagement snapshot of a post.
// Absent counters resolve to zero.
type PostMetrics struct {
	Likes    int
	Comments int
	Shares   int
	Views    int
	Saves    int
}

// Metrics normalizes the post's engagement counters. Missing fields default
// to zero; explicit zeros are preserved.
func (p *SocialPost) Metrics() PostMetrics {
	return PostMetrics{
		Likes:    intOrZero(p.Likes),
		Comments: intOrZero(p.Comments),
		Shares:   intOrZero(p.Shares),
		Views:    intOrZero(p.Views),
		Saves:    intOrZero(p.Saves),
	}
}

// Reach estimates the audience a single post reached: the view count when
// available and nonzero, otherwise likes*5.
func (p *SocialPost) Reach() int {
	m := p.Metrics()
	if m.Views > 0 {
		return m.Views
	}
	return m.Likes * 5
}

// AgeDays returns the post age in fractional days at the given instant.
// Negative ages (clock skew, future-dated items) clamp to zero.
func (p *SocialPost) AgeDays(now time.Time) float64 {
	return ageDays(p.PostedAt, now)
}

// VideoReview is a video review of a product hosted on an external platform.
type VideoReview struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	ProviderID string `json:"provider_id"`
	ExternalID string `json:"external_id"`
	Platform   string `json:"platform"`
	Title      string `json:"title"`
	Channel    string `json:"channel"`
	Thumbnail  string `json:"thumbnail,omitempty"`
	URL        string `json:"url,omitempty"`

	// Engagement counters (nil = not provided by the feed)
	ViewCount    *int `json:"view_count,omitempty"`
	LikeCount    *int `json:"like_count,omitempty"`
	CommentCount *int `json:"comment_count,omitempty"`
	ShareCount   *int `json:"share_count,omitempty"`
	Subscribers  *int `json:"subscribers,omitempty"` // channel subscriber count

	DurationSeconds int     `json:"duration_seconds,omitempty"`
	Quality         float64 `json:"quality,omitempty"` // editorial 0-5 score, 0 = unrated

	PublishedAt time.Time `json:"published_at"` // zero value = unknown
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VideoMetrics is the fully-populated engagement snapshot of a video.
// Like, comment and share counts the feed did not provide are estimated from
// the view count at typical platform ratios (3%, 0.2%, 0.5%). An explicit
// zero is kept as zero; only a nil field triggers estimation.
type VideoMetrics struct {
	Views       int
	Likes       int
	Comments    int
	Shares      int
	Subscribers int
}

// Estimation ratios applied to the view count when a counter is missing.
const (
	likeRatioDefault    = 0.03
	commentRatioDefault = 0.002
	shareRatioDefault   = 0.005
)

// Metrics normalizes the video's engagement counters, estimating missing
// interaction counts from views.
func (v *VideoReview) Metrics() VideoMetrics {
	views := intOrZero(v.ViewCount)
	return VideoMetrics{
		Views:       views,
		Likes:       intOrEstimate(v.LikeCount, views, likeRatioDefault),
		Comments:    intOrEstimate(v.CommentCount, views, commentRatioDefault),
		Shares:      intOrEstimate(v.ShareCount, views, shareRatioDefault),
		Subscribers: intOrZero(v.Subscribers),
	}
}

// AgeDays returns the video age in fractional days at the given instant.
func (v *VideoReview) AgeDays(now time.Time) float64 {
	return ageDays(v.PublishedAt, now)
}

// PlatformCount pairs a platform name with the number of items seen on it.
type PlatformCount struct {
	Platform string `json:"platform"`
	Count    int    `json:"count"`
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func intOrEstimate(v *int, views int, ratio float64) int {
	if v != nil {
		return *v
	}
	return int(float64(views) * ratio)
}

func ageDays(ts, now time.Time) float64 {
	if ts.IsZero() {
		return 0
	}
	days := now.Sub(ts).Hours() / 24
	if days < 0 {
		return 0
	}
	return days
}

// IntPtr returns a pointer to v. Convenience for feeds and tests building
// optional engagement counters.
func IntPtr(v int) *int {
	return &v
}
