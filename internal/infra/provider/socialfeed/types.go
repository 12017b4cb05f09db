package socialfeed

import (
	"time"

	"product-pulse-service/internal/domain"
)

// Response represents the JSON response from the social feed.
type Response struct {
	Posts      []PostItem `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

// PostItem represents a single social post from the feed. Engagement fields
// are pointers: the feed omits counters it does not track, and that absence
// must survive into the domain model.
type PostItem struct {
	ID       string   `json:"id"`
	Product  string   `json:"product_id"`
	Platform string   `json:"platform"`
	Author   string   `json:"author"`
	Verified bool     `json:"verified"`
	Content  string   `json:"content"`
	URL      string   `json:"url"`
	Tags     []string `json:"tags"`

	Likes     *int `json:"likes"`
	Comments  *int `json:"comments"`
	Shares    *int `json:"shares"`
	Views     *int `json:"views"`
	Saves     *int `json:"saves"`
	Followers *int `json:"followers"`

	// Epoch milliseconds; 0 = unknown
	PostedAt int64 `json:"posted_at"`
}

// Pagination holds pagination info.
type Pagination struct {
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// ToDomain converts PostItem to domain.SocialPost.
func (p *PostItem) ToDomain(providerID string) *domain.SocialPost {
	return &domain.SocialPost{
		ProviderID: providerID,
		ExternalID: p.ID,
		ProductID:  p.Product,
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
		PostedAt:   msToTime(p.PostedAt),
	}
}

// msToTime converts epoch milliseconds to a UTC time. 0 maps to the zero
// value, which downstream treats as "date unknown".
func msToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
