package domain

import "time"

// Trending thresholds: the catalog-wide feeds only consider recent content,
// and videos need a minimum audience before they can trend.
const (
	trendingWindowDays = 30
	trendingMinViews   = 1000

	// DefaultTrendingLimit is the fallback result size for the catalog-wide
	// trending queries. Wider than the per-product ranking defaults.
	DefaultTrendingLimit = 10
)

// TrendingPosts filters the catalog-wide post set to the trending window and
// returns the top limit posts by engagement score. Posts with no timestamp
// are excluded: without a posting date there is no way to tell recent
// chatter from stale imports.
func TrendingPosts(posts []*SocialPost, limit int, now time.Time) []*SocialPost {
	cutoff := now.AddDate(0, 0, -trendingWindowDays)

	recent := make([]*SocialPost, 0, len(posts))
	for _, p := range posts {
		if p.PostedAt.IsZero() || p.PostedAt.Before(cutoff) {
			continue
		}
		recent = append(recent, p)
	}

	if limit <= 0 {
		limit = DefaultTrendingLimit
	}
	return topByScore(recent, limit, func(p *SocialPost) float64 {
		return ScorePost(p, now)
	})
}

// TrendingVideos filters the catalog-wide video set to the trending window
// plus a minimum view threshold and returns the top limit videos by impact
// score. Videos with no publish date pass the recency filter unconditionally.
func TrendingVideos(videos []*VideoReview, limit int, now time.Time) []*VideoReview {
	cutoff := now.AddDate(0, 0, -trendingWindowDays)

	recent := make([]*VideoReview, 0, len(videos))
	for _, v := range videos {
		if v.Metrics().Views < trendingMinViews {
			continue
		}
		if !v.PublishedAt.IsZero() && v.PublishedAt.Before(cutoff) {
			continue
		}
		recent = append(recent, v)
	}

	if limit <= 0 {
		limit = DefaultTrendingLimit
	}
	return topByScore(recent, limit, func(v *VideoReview) float64 {
		return ScoreVideo(v, now)
	})
}
