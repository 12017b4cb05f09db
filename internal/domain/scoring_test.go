package domain

import (
	"math"
	"testing"
	"time"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= floatTolerance*math.Max(1, math.Abs(b))
}

// scoringNow returns a fixed UTC reference instant so age arithmetic in the
// tables stays exact (AddDate across DST would skew fractional-day ages).
func scoringNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func TestScorePost(t *testing.T) {
	now := scoringNow()

	tests := []struct {
		name     string
		post     *SocialPost
		expected float64
	}{
		{
			name: "fresh post on unknown platform",
			post: &SocialPost{
				Platform: "mastodon",
				Likes:    IntPtr(100),
				Comments: IntPtr(10),
				Shares:   IntPtr(5),
				Views:    IntPtr(1000),
				Saves:    IntPtr(20),
				PostedAt: now,
				// Sum: 100*1 + 10*3 + 5*5 + 1000*0.1 + 20*2 = 295
				// Reach: default 100 → multiplier 0.5
				// Recency: age 0 → 1.0
			},
			expected: 295 * 0.5,
		},
		{
			name: "fresh post on instagram",
			post: &SocialPost{
				Platform: "instagram",
				Likes:    IntPtr(200),
				PostedAt: now,
				// Sum: 200
				// Reach: 1200 → 0.5 + 1100/2900
			},
			expected: 200 * (0.5 + 1100.0/2900.0),
		},
		{
			name: "missing counters default to zero",
			post: &SocialPost{
				Platform: "mastodon",
				Shares:   IntPtr(10),
				PostedAt: now,
				// Sum: 10*5 = 50, reach 0.5
			},
			expected: 25,
		},
		{
			name: "30 day old post hits the recency floor",
			post: &SocialPost{
				Platform: "mastodon",
				Likes:    IntPtr(100),
				PostedAt: now.AddDate(0, 0, -30),
				// Sum 100, reach 0.5, recency max(0.5, 1-(30/30)*0.5) = 0.5
			},
			expected: 100 * 0.5 * 0.5,
		},
		{
			name: "ancient post never drops below half weight",
			post: &SocialPost{
				Platform: "mastodon",
				Likes:    IntPtr(100),
				PostedAt: now.AddDate(-2, 0, 0),
			},
			expected: 100 * 0.5 * 0.5,
		},
		{
			name: "no timestamp skips recency",
			post: &SocialPost{
				Platform: "mastodon",
				Likes:    IntPtr(100),
			},
			expected: 50,
		},
		{
			name:     "empty post",
			post:     &SocialPost{Platform: "mastodon"},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ScorePost(tt.post, now)
			if !almostEqual(score, tt.expected) {
				t.Errorf("ScorePost() = %v, want %v", score, tt.expected)
			}
		})
	}
}

func TestScorePost_Nil(t *testing.T) {
	if score := ScorePost(nil, time.Now()); score != 0 {
		t.Errorf("ScorePost(nil) = %v, want 0", score)
	}
}

// Identical posts except for the share count: more shares must always score
// strictly higher.
func TestScorePost_ShareMonotonicity(t *testing.T) {
	now := scoringNow()
	postedAt := now.AddDate(0, 0, -10)

	base := &SocialPost{
		Platform: "twitter",
		Likes:    IntPtr(500),
		Shares:   IntPtr(10),
		PostedAt: postedAt,
	}
	boosted := &SocialPost{
		Platform: "twitter",
		Likes:    IntPtr(500),
		Shares:   IntPtr(11),
		PostedAt: postedAt,
	}

	if ScorePost(boosted, now) <= ScorePost(base, now) {
		t.Errorf("post with more shares must score strictly higher: %v <= %v",
			ScorePost(boosted, now), ScorePost(base, now))
	}
}

// A 60-day-old post must land between 50%% and 100%% of an identical fresh
// post's score; the post recency floor is 0.5.
func TestScorePost_RecencyDecayBounds(t *testing.T) {
	now := scoringNow()

	fresh := &SocialPost{Platform: "reddit", Likes: IntPtr(1000), PostedAt: now}
	old := &SocialPost{Platform: "reddit", Likes: IntPtr(1000), PostedAt: now.AddDate(0, 0, -60)}

	freshScore := ScorePost(fresh, now)
	oldScore := ScorePost(old, now)

	if oldScore < freshScore*0.5-floatTolerance || oldScore > freshScore {
		t.Errorf("old post score %v outside [%v, %v]", oldScore, freshScore*0.5, freshScore)
	}
}

func TestScoreVideo(t *testing.T) {
	now := scoringNow()

	tests := []struct {
		name     string
		video    *VideoReview
		expected float64
	}{
		{
			name: "fresh mid-length video on unknown platform",
			video: &VideoReview{
				Platform:        "peertube",
				ViewCount:       IntPtr(10000),
				LikeCount:       IntPtr(500),
				CommentCount:    IntPtr(50),
				ShareCount:      IntPtr(20),
				Subscribers:     IntPtr(100000),
				DurationSeconds: 600, // 10 min, optimal range
				PublishedAt:     now,
				// Sum: 10000 + 500*10 + 50*30 + 20*50 + 100000*0.01 = 18500
				// Duration 1.0, reach 0.7, no quality, recency 1.0
			},
			expected: 18500 * 0.7,
		},
		{
			name: "short video penalized",
			video: &VideoReview{
				Platform:        "peertube",
				ViewCount:       IntPtr(1000),
				LikeCount:       IntPtr(0),
				CommentCount:    IntPtr(0),
				ShareCount:      IntPtr(0),
				DurationSeconds: 60, // 1 min → factor 0.8 + 1/15
				PublishedAt:     now,
			},
			expected: 1000 * (0.8 + 1.0/15.0) * 0.7,
		},
		{
			name: "very long video floors at 0.7",
			video: &VideoReview{
				Platform:        "peertube",
				ViewCount:       IntPtr(1000),
				LikeCount:       IntPtr(0),
				CommentCount:    IntPtr(0),
				ShareCount:      IntPtr(0),
				DurationSeconds: 3 * 3600, // 180 min → penalty capped at 0.3
				PublishedAt:     now,
			},
			expected: 1000 * 0.7 * 0.7,
		},
		{
			name: "quality factor applied when rated",
			video: &VideoReview{
				Platform:     "peertube",
				ViewCount:    IntPtr(1000),
				LikeCount:    IntPtr(0),
				CommentCount: IntPtr(0),
				ShareCount:   IntPtr(0),
				Quality:      5, // 0.7 + (5/5)*0.6 = 1.3
				PublishedAt:  now,
			},
			expected: 1000 * 0.7 * 1.3,
		},
		{
			name: "youtube reach multiplier",
			video: &VideoReview{
				Platform:     "YouTube",
				ViewCount:    IntPtr(1000),
				LikeCount:    IntPtr(0),
				CommentCount: IntPtr(0),
				ShareCount:   IntPtr(0),
				PublishedAt:  now,
				// Reach 2300 → 0.7 + (2200/2900)*0.6
			},
			expected: 1000 * (0.7 + 2200.0/2900.0*0.6),
		},
		{
			name: "old video floors at 60 percent recency",
			video: &VideoReview{
				Platform:     "peertube",
				ViewCount:    IntPtr(1000),
				LikeCount:    IntPtr(0),
				CommentCount: IntPtr(0),
				ShareCount:   IntPtr(0),
				PublishedAt:  now.AddDate(0, 0, -200),
			},
			expected: 1000 * 0.7 * 0.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ScoreVideo(tt.video, now)
			if !almostEqual(score, tt.expected) {
				t.Errorf("ScoreVideo() = %v, want %v", score, tt.expected)
			}
		})
	}
}

func TestScoreVideo_Nil(t *testing.T) {
	if score := ScoreVideo(nil, time.Now()); score != 0 {
		t.Errorf("ScoreVideo(nil) = %v, want 0", score)
	}
}

// A video with no like count is scored as if 3%% of viewers liked it; an
// explicit matching count must produce the identical score.
func TestScoreVideo_FallbackEstimation(t *testing.T) {
	now := scoringNow()

	estimated := &VideoReview{
		Platform:    "vimeo",
		ViewCount:   IntPtr(10000),
		PublishedAt: now,
	}
	explicit := &VideoReview{
		Platform:     "vimeo",
		ViewCount:    IntPtr(10000),
		LikeCount:    IntPtr(300), // 3% of 10000
		CommentCount: IntPtr(20),  // 0.2%
		ShareCount:   IntPtr(50),  // 0.5%
		PublishedAt:  now,
	}

	if s1, s2 := ScoreVideo(estimated, now), ScoreVideo(explicit, now); !almostEqual(s1, s2) {
		t.Errorf("estimated score %v != explicit score %v", s1, s2)
	}
}

// An explicit zero like count is a real signal and must not be replaced by
// the estimation ratio.
func TestScoreVideo_ExplicitZeroNotEstimated(t *testing.T) {
	now := scoringNow()

	zero := &VideoReview{
		Platform:    "vimeo",
		ViewCount:   IntPtr(10000),
		LikeCount:   IntPtr(0),
		PublishedAt: now,
	}
	missing := &VideoReview{
		Platform:    "vimeo",
		ViewCount:   IntPtr(10000),
		PublishedAt: now,
	}

	if ScoreVideo(zero, now) >= ScoreVideo(missing, now) {
		t.Errorf("explicit zero likes must score lower than estimated likes")
	}
}

func TestScoreVideo_RecencyDecayBounds(t *testing.T) {
	now := scoringNow()

	fresh := &VideoReview{Platform: "twitch", ViewCount: IntPtr(50000), PublishedAt: now}
	old := &VideoReview{Platform: "twitch", ViewCount: IntPtr(50000), PublishedAt: now.AddDate(0, 0, -120)}

	freshScore := ScoreVideo(fresh, now)
	oldScore := ScoreVideo(old, now)

	if oldScore < freshScore*0.6-floatTolerance || oldScore > freshScore {
		t.Errorf("old video score %v outside [%v, %v]", oldScore, freshScore*0.6, freshScore)
	}
}

func TestPostReachMultiplier(t *testing.T) {
	tests := []struct {
		platform string
		expected float64
	}{
		{"facebook", 0.5 + 2800.0/2900.0},
		{"instagram", 0.5 + 1100.0/2900.0},
		{"twitter", 0.5 + 250.0/2900.0},
		{"mastodon", 0.5}, // unknown → default reach 100
		{"TikTok", 0.5 + 900.0/2900.0}, // case-insensitive lookup
	}

	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			if got := PostReachMultiplier(tt.platform); !almostEqual(got, tt.expected) {
				t.Errorf("PostReachMultiplier(%q) = %v, want %v", tt.platform, got, tt.expected)
			}
		})
	}
}

func TestVideoReachMultiplier(t *testing.T) {
	tests := []struct {
		platform string
		expected float64
	}{
		{"facebook", 0.7 + 2800.0/2900.0*0.6},
		{"twitch", 0.7 + 40.0/2900.0*0.6},
		{"unknowntube", 0.7}, // unknown → default reach 100
	}

	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			if got := VideoReachMultiplier(tt.platform); !almostEqual(got, tt.expected) {
				t.Errorf("VideoReachMultiplier(%q) = %v, want %v", tt.platform, got, tt.expected)
			}
		})
	}
}

// An unknown platform must be indistinguishable from one with reach score
// exactly at the table minimum.
func TestReachMultiplier_UnknownPlatformDefault(t *testing.T) {
	if a, b := PostReachMultiplier("mastodon"), PostReachMultiplier("bluesky"); a != b {
		t.Errorf("unknown platforms must share the default multiplier: %v != %v", a, b)
	}
	if got := PostReachMultiplier("mastodon"); got != 0.5 {
		t.Errorf("default post multiplier = %v, want 0.5", got)
	}
	if got := VideoReachMultiplier("mastodon"); got != 0.7 {
		t.Errorf("default video multiplier = %v, want 0.7", got)
	}
}

func TestDurationFactor(t *testing.T) {
	tests := []struct {
		name     string
		minutes  float64
		expected float64
	}{
		{"zero length", 0, 0.8},
		{"ninety seconds", 1.5, 0.8 + 1.5/15},
		{"optimal lower bound", 3, 1.0},
		{"optimal upper bound", 15, 1.0},
		{"thirty minutes", 30, 1 - 15.0/60.0},
		{"three hours capped", 180, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := durationFactor(tt.minutes); !almostEqual(got, tt.expected) {
				t.Errorf("durationFactor(%v) = %v, want %v", tt.minutes, got, tt.expected)
			}
		})
	}
}
