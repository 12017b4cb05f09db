package domain

import (
	"sort"
	"time"
)

// Default truncation limits for ranked result sets.
const (
	DefaultPostLimit  = 10
	DefaultVideoLimit = 5

	topPostPlatforms  = 5
	topVideoPlatforms = 3
)

// RankedPosts holds a product's posts ordered by engagement score, plus
// aggregates computed over the whole input set (not just the returned slice).
type RankedPosts struct {
	Posts        []*SocialPost   `json:"posts"`
	TotalReach   int             `json:"total_reach"`
	TopPlatforms []PlatformCount `json:"top_platforms"`
}

// RankedVideos is the video counterpart of RankedPosts.
type RankedVideos struct {
	Videos       []*VideoReview  `json:"videos"`
	TotalViews   int             `json:"total_views"`
	TopPlatforms []PlatformCount `json:"top_platforms"`
}

// RankPosts scores every post, stable-sorts by descending score and returns
// the top limit posts. Aggregates (total reach, per-platform counts) cover
// all input posts. Empty input yields an empty result, never an error.
func RankPosts(posts []*SocialPost, limit int, now time.Time) RankedPosts {
	if limit <= 0 {
		limit = DefaultPostLimit
	}

	top := topByScore(posts, limit, func(p *SocialPost) float64 {
		return ScorePost(p, now)
	})

	totalReach := 0
	counts := map[string]int{}
	for _, p := range posts {
		totalReach += p.Reach()
		counts[p.Platform]++
	}

	return RankedPosts{
		Posts:        top,
		TotalReach:   totalReach,
		TopPlatforms: topPlatforms(counts, topPostPlatforms),
	}
}

// RankVideos scores every video, stable-sorts by descending score and
// returns the top limit videos. Total views and per-platform counts cover
// all input videos.
func RankVideos(videos []*VideoReview, limit int, now time.Time) RankedVideos {
	if limit <= 0 {
		limit = DefaultVideoLimit
	}

	top := topByScore(videos, limit, func(v *VideoReview) float64 {
		return ScoreVideo(v, now)
	})

	totalViews := 0
	counts := map[string]int{}
	for _, v := range videos {
		totalViews += v.Metrics().Views
		counts[v.Platform]++
	}

	return RankedVideos{
		Videos:       top,
		TotalViews:   totalViews,
		TopPlatforms: topPlatforms(counts, topVideoPlatforms),
	}
}

// MostImpactfulVideo returns the single highest-scoring video, or nil for
// empty input.
func MostImpactfulVideo(videos []*VideoReview, now time.Time) *VideoReview {
	top := topByScore(videos, 1, func(v *VideoReview) float64 {
		return ScoreVideo(v, now)
	})
	if len(top) == 0 {
		return nil
	}
	return top[0]
}

// topByScore stable-sorts items by descending score and truncates to limit.
// The stable sort keeps the original relative order of equal scores.
func topByScore[T any](items []T, limit int, score func(T) float64) []T {
	type scored struct {
		item  T
		score float64
	}

	ranked := make([]scored, len(items))
	for i, it := range items {
		ranked[i] = scored{item: it, score: score(it)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if limit > len(ranked) {
		limit = len(ranked)
	}

	top := make([]T, limit)
	for i := range top {
		top[i] = ranked[i].item
	}
	return top
}

// topPlatforms converts a platform→count map into a slice sorted by
// descending count (platform name breaks ties for a deterministic order),
// truncated to limit.
func topPlatforms(counts map[string]int, limit int) []PlatformCount {
	out := make([]PlatformCount, 0, len(counts))
	for platform, count := range counts {
		out = append(out, PlatformCount{Platform: platform, Count: count})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Platform < out[j].Platform
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
