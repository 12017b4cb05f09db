package domain

import "time"

// Engagement weights for social posts. Comments and shares signal deeper
// engagement than passive likes or views; the ordering shares > comments >
// saves > likes > views is deliberate.
const (
	postLikeWeight    = 1.0
	postCommentWeight = 3.0
	postShareWeight   = 5.0
	postViewWeight    = 0.1
	postSaveWeight    = 2.0
)

// Engagement weights for video reviews. Same ordering rationale as posts;
// the subscriber weight rewards established channels without letting them
// dominate.
const (
	videoViewWeight       = 1.0
	videoLikeWeight       = 10.0
	videoCommentWeight    = 30.0
	videoShareWeight      = 50.0
	videoSubscriberWeight = 0.01
)

// ScorePost computes the engagement score of a social post at the given
// instant. Deterministic for the same post and now; pure, no I/O.
//
// Weighted engagement sum, scaled by the platform reach multiplier, then by
// a recency factor: full weight the day of posting, linear decay to a 0.5
// floor at 30+ days. Posts with no timestamp skip the recency factor.
func ScorePost(p *SocialPost, now time.Time) float64 {
	if p == nil {
		return 0
	}

	m := p.Metrics()
	score := float64(m.Likes)*postLikeWeight +
		float64(m.Comments)*postCommentWeight +
		float64(m.Shares)*postShareWeight +
		float64(m.Views)*postViewWeight +
		float64(m.Saves)*postSaveWeight

	score *= PostReachMultiplier(p.Platform)

	if !p.PostedAt.IsZero() {
		score *= postRecencyFactor(p.AgeDays(now))
	}

	return score
}

// ScoreVideo computes the impact score of a video review at the given
// instant. Deterministic for the same video and now; pure, no I/O.
//
// Weighted engagement sum (missing counters estimated from views, see
// VideoMetrics), then multiplicative factors in order: duration quality,
// platform reach, editorial quality, recency.
func ScoreVideo(v *VideoReview, now time.Time) float64 {
	if v == nil {
		return 0
	}

	m := v.Metrics()
	score := float64(m.Views)*videoViewWeight +
		float64(m.Likes)*videoLikeWeight +
		float64(m.Comments)*videoCommentWeight +
		float64(m.Shares)*videoShareWeight +
		float64(m.Subscribers)*videoSubscriberWeight

	if v.DurationSeconds > 0 {
		score *= durationFactor(float64(v.DurationSeconds) / 60)
	}

	score *= VideoReachMultiplier(v.Platform)

	if v.Quality > 0 {
		// 0-5 editorial score scaled to [0.7, 1.3]
		score *= 0.7 + (v.Quality/5)*0.6
	}

	if !v.PublishedAt.IsZero() {
		score *= videoRecencyFactor(v.AgeDays(now))
	}

	return score
}

// postRecencyFactor decays linearly from 1.0 at age zero to the 0.5 floor at
// 30+ days. Old posts are never penalized below half weight.
func postRecencyFactor(ageDays float64) float64 {
	f := 1 - (ageDays/30)*0.5
	if f < 0.5 {
		return 0.5
	}
	return f
}

// videoRecencyFactor decays linearly to a 0.6 floor at 90+ days. The
// constants differ from the post curve on purpose: video reviews stay
// relevant longer than social chatter.
func videoRecencyFactor(ageDays float64) float64 {
	f := 1 - (ageDays/90)*0.4
	if f < 0.6 {
		return 0.6
	}
	return f
}

// durationFactor penalizes very short and very long videos. 3-15 minutes is
// the optimal range (factor 1.0); under 3 minutes scales 0.8-1.0, over 15
// minutes decays to a 0.7 floor.
func durationFactor(minutes float64) float64 {
	switch {
	case minutes < 3:
		return 0.8 + minutes/15
	case minutes > 15:
		penalty := (minutes - 15) / 60
		if penalty > 0.3 {
			penalty = 0.3
		}
		return 1 - penalty
	default:
		return 1.0
	}
}
