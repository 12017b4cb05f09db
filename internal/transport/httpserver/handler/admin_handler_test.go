package handler

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gofiber/fiber/v2"

	"product-pulse-service/internal/app/service"
	"product-pulse-service/internal/domain"
	"product-pulse-service/internal/transport/ws"
	"product-pulse-service/internal/validator"
)

type stubRepo struct {
	mu     sync.Mutex
	posts  []*domain.SocialPost
	videos []*domain.VideoReview
}

func (r *stubRepo) PostsByProduct(_ context.Context, productID string) ([]*domain.SocialPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.SocialPost
	for _, p := range r.posts {
		if p.ProductID == productID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubRepo) AllPosts(_ context.Context) ([]*domain.SocialPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.SocialPost(nil), r.posts...), nil
}

func (r *stubRepo) VideosByProduct(_ context.Context, productID string) ([]*domain.VideoReview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.VideoReview
	for _, v := range r.videos {
		if v.ProductID == productID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *stubRepo) AllVideos(_ context.Context) ([]*domain.VideoReview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.VideoReview(nil), r.videos...), nil
}

func (r *stubRepo) BulkUpsertPosts(_ context.Context, posts []*domain.SocialPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts = append(r.posts, posts...)
	return nil
}

func (r *stubRepo) BulkUpsertVideos(_ context.Context, videos []*domain.VideoReview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.videos = append(r.videos, videos...)
	return nil
}

func (r *stubRepo) Counts(_ context.Context) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.posts)), int64(len(r.videos)), nil
}

type stubFeed struct {
	batch *domain.FeedBatch
}

func (f *stubFeed) Name() string { return "stubfeed" }

func (f *stubFeed) Fetch(context.Context) (*domain.FeedBatch, error) { return f.batch, nil }

func (f *stubFeed) HealthCheck(context.Context) error { return nil }

type recordHub struct {
	mu       sync.Mutex
	messages []ws.Message
}

func (h *recordHub) Broadcast(msg ws.Message) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, msg)
	return 1
}

func (h *recordHub) kinds() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.messages))
	for i, m := range h.messages {
		out[i] = m.Kind
	}
	return out
}

// Manual sync must push the refreshed digests to subscribers, not only
// persist the feed batches.
func TestAdminHandler_SyncAll_BroadcastsDigests(t *testing.T) {
	now := time.Now()
	feed := &stubFeed{batch: &domain.FeedBatch{
		Posts: []*domain.SocialPost{{
			ID:         "p1",
			ProviderID: "stubfeed",
			ExternalID: "ext-p1",
			ProductID:  "prod-1",
			Platform:   "instagram",
			Likes:      domain.IntPtr(500),
			PostedAt:   now.AddDate(0, 0, -1),
		}},
		Videos: []*domain.VideoReview{{
			ID:          "v1",
			ProviderID:  "stubfeed",
			ExternalID:  "ext-v1",
			ProductID:   "prod-1",
			Platform:    "youtube",
			ViewCount:   domain.IntPtr(5000),
			PublishedAt: now.AddDate(0, 0, -2),
		}},
	}}

	repo := &stubRepo{}
	hub := &recordHub{}
	logger := zap.NewNop()

	contentSvc := service.NewContentService(repo, nil, service.ContentServiceConfig{}, logger)
	syncSvc := service.NewSyncService(repo, []domain.FeedProvider{feed}, contentSvc, hub,
		service.SyncServiceConfig{}, logger)

	h := NewAdminHandler(syncSvc, contentSvc, ws.NewHub(logger), validator.New(), logger)

	app := fiber.New()
	app.Post("/api/v1/admin/sync", h.SyncAll)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/v1/admin/sync", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	kinds := hub.kinds()
	assert.Contains(t, kinds, ws.KindTrendingSocialMedia)
	assert.Contains(t, kinds, ws.KindTrendingVideos)
	assert.Contains(t, kinds, ws.KindHighEngagement)
}
