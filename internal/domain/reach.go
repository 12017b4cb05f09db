package domain

import "strings"

// Platform reach scores, in millions of monthly active users. Posts and
// videos keep separate tables: the video platforms are a different set and
// video scores are less sensitive to platform size.
var postPlatformReach = map[string]int{
	"instagram": 1200,
	"tiktok":    1000,
	"youtube":   2300,
	"facebook":  2900,
	"twitter":   350,
	"pinterest": 450,
	"reddit":    430,
	"linkedin":  850,
}

var videoPlatformReach = map[string]int{
	"youtube":     2300,
	"tiktok":      1000,
	"instagram":   1200,
	"facebook":    2900,
	"vimeo":       260,
	"twitch":      140,
	"dailymotion": 300,
}

const (
	defaultReach = 100 // unknown platforms
	minReach     = 100
	maxReach     = 3000
)

// PostReachMultiplier maps a platform's audience size to a score multiplier
// in the range [0.5, 1.5]. Lookup is case-insensitive; unknown platforms get
// the default reach and land on the bottom of the range.
func PostReachMultiplier(platform string) float64 {
	return 0.5 + reachFraction(postPlatformReach, platform)
}

// VideoReachMultiplier is the video variant, rescaled to [0.7, 1.3].
func VideoReachMultiplier(platform string) float64 {
	return 0.7 + reachFraction(videoPlatformReach, platform)*0.6
}

// reachFraction normalizes a platform's reach score to [0, 1], clamping at
// the maxReach ceiling.
func reachFraction(table map[string]int, platform string) float64 {
	reach, ok := table[strings.ToLower(platform)]
	if !ok {
		reach = defaultReach
	}
	if reach > maxReach {
		reach = maxReach
	}
	return float64(reach-minReach) / float64(maxReach-minReach)
}
