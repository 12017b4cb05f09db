// Package videofeed implements the video review feed client.
package videofeed

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"product-pulse-service/internal/domain"
	"product-pulse-service/internal/infra/provider"
)

// Endpoint is the API path for the video feed's reviews endpoint.
const Endpoint = "/api/videos"

// Client implements domain.FeedProvider for the video review feed.
type Client struct {
	name   string
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
}

// New creates a new video feed client.
func New(cfg provider.ClientConfig, logger *zap.Logger) *Client {
	return &Client{
		name:   "videofeed",
		client: provider.NewRestyClient(cfg),
		cb:     provider.NewCircuitBreaker[*resty.Response]("videofeed", cfg.CB),
		logger: logger,
	}
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return c.name
}

// Fetch retrieves the latest video reviews from the feed.
func (c *Client) Fetch(ctx context.Context) (*domain.FeedBatch, error) {
	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		var result Response
		r, err := c.client.R().
			SetContext(ctx).
			SetResult(&result).
			Get(Endpoint)
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, fmt.Errorf("videofeed returned status %d", r.StatusCode())
		}

		return r, nil
	})

	if err != nil {
		c.logger.Warn("videofeed fetch failed",
			zap.Error(err),
			zap.String("state", c.cb.State().String()),
		)

		return nil, fmt.Errorf("fetching from videofeed: %w", err)
	}

	result := resp.Result().(*Response)
	videos := make([]*domain.VideoReview, 0, len(result.Videos))
	for _, item := range result.Videos {
		videos = append(videos, item.ToDomain(c.name))
	}

	c.logger.Info("videofeed fetch completed",
		zap.Int("count", len(videos)),
	)

	return &domain.FeedBatch{Videos: videos}, nil
}

// HealthCheck verifies the feed is accessible.
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("health check returned status %d", resp.StatusCode())
	}

	return nil
}
