// Package socialfeed implements the social engagement feed client.
package socialfeed

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"product-pulse-service/internal/domain"
	"product-pulse-service/internal/infra/provider"
)

// Endpoint is the API path for the social feed's posts endpoint.
const Endpoint = "/api/posts"

// Client implements domain.FeedProvider for the social post feed.
type Client struct {
	name   string
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
}

// New creates a new social feed client.
func New(cfg provider.ClientConfig, logger *zap.Logger) *Client {
	return &Client{
		name:   "socialfeed",
		client: provider.NewRestyClient(cfg),
		cb:     provider.NewCircuitBreaker[*resty.Response]("socialfeed", cfg.CB),
		logger: logger,
	}
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return c.name
}

// Fetch retrieves the latest posts from the social feed.
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
			return nil, fmt.Errorf("socialfeed returned status %d", r.StatusCode())
		}

		return r, nil
	})

	if err != nil {
		c.logger.Warn("socialfeed fetch failed",
			zap.Error(err),
			zap.String("state", c.cb.State().String()),
		)

		return nil, fmt.Errorf("fetching from socialfeed: %w", err)
	}

	result := resp.Result().(*Response)
	posts := make([]*domain.SocialPost, 0, len(result.Posts))
	for _, item := range result.Posts {
		posts = append(posts, item.ToDomain(c.name))
	}

	c.logger.Info("socialfeed fetch completed",
		zap.Int("count", len(posts)),
	)

	return &domain.FeedBatch{Posts: posts}, nil
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
