package socialfeed

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"product-pulse-service/internal/domain"
	"product-pulse-service/internal/infra/provider"
)

const testEndpoint = "https://socialfeed.example.com/api/posts"

func newTestClient() *Client {
	cfg := provider.ClientConfig{
		BaseURL: "https://socialfeed.example.com",
		Timeout: 5 * time.Second,
		Retry: provider.RetryConfig{
			MaxAttempts: 3,
			WaitTime:    100 * time.Millisecond,
			MaxWaitTime: 500 * time.Millisecond,
		},
		CB: provider.CBConfig{
			MaxRequests:  5,
			Interval:     60 * time.Second,
			Timeout:      15 * time.Second,
			FailureRatio: 0.6,
		},
	}
	client := New(cfg, zap.NewNop())

	httpmock.ActivateNonDefault(client.client.GetClient())

	return client
}

func mockSuccessResponse() Response {
	return Response{
		Posts: []PostItem{
			{
				ID:       "post-1",
				Product:  "prod-42",
				Platform: "instagram",
				Author:   "style_maven",
				Verified: true,
				Content:  "This jacket is unreal, wore it all week",
				Tags:     []string{"fashion"},
				Likes:    domain.IntPtr(340),
				Comments: domain.IntPtr(12),
				Views:    domain.IntPtr(9100),
				PostedAt: 1718445600000,
			},
			{
				ID:       "post-2",
				Product:  "prod-42",
				Platform: "tiktok",
				Author:   "gadget_guy",
				Content:  "unboxing time",
				Likes:    domain.IntPtr(55),
				// Comments/Views omitted by the feed, must stay nil
			},
		},
		Pagination: Pagination{
			Total:   2,
			Page:    1,
			PerPage: 10,
		},
	}
}

func TestSocialFeed_Fetch_Success(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewJsonResponderOrPanic(200, mockSuccessResponse()))

	client := newTestClient()
	batch, err := client.Fetch(context.Background())

	require.NoError(t, err)
	require.NotNil(t, batch)
	require.Len(t, batch.Posts, 2)
	assert.Empty(t, batch.Videos)

	first := batch.Posts[0]
	assert.Equal(t, "socialfeed", first.ProviderID)
	assert.Equal(t, "post-1", first.ExternalID)
	assert.Equal(t, "prod-42", first.ProductID)
	assert.Equal(t, "instagram", first.Platform)
	assert.True(t, first.Verified)
	require.NotNil(t, first.Likes)
	assert.Equal(t, 340, *first.Likes)
	assert.Equal(t, time.UnixMilli(1718445600000).UTC(), first.PostedAt)

	second := batch.Posts[1]
	assert.Nil(t, second.Comments, "omitted counters must stay nil")
	assert.Nil(t, second.Views)
	assert.True(t, second.PostedAt.IsZero(), "missing posted_at maps to zero time")
}

func TestSocialFeed_Fetch_EmptyResponse(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewJsonResponderOrPanic(200, Response{}))

	client := newTestClient()
	batch, err := client.Fetch(context.Background())

	require.NoError(t, err)
	assert.Empty(t, batch.Posts)
}

func TestSocialFeed_Fetch_HTTPError(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	tests := []struct {
		name       string
		statusCode int
	}{
		{"400 Bad Request", 400},
		{"404 Not Found", 404},
		{"500 Internal Server Error", 500},
		{"503 Service Unavailable", 503},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpmock.Reset()
			httpmock.RegisterResponder("GET", testEndpoint,
				httpmock.NewStringResponder(tt.statusCode, "Error"))

			client := newTestClient()
			batch, err := client.Fetch(context.Background())

			require.Error(t, err)
			assert.Nil(t, batch)
			assert.Contains(t, err.Error(), fmt.Sprintf("status %d", tt.statusCode))
		})
	}
}

func TestSocialFeed_Fetch_NetworkError(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewErrorResponder(fmt.Errorf("network error: connection refused")))

	client := newTestClient()
	batch, err := client.Fetch(context.Background())

	require.Error(t, err)
	assert.Nil(t, batch)
	assert.Contains(t, err.Error(), "fetching from socialfeed")
}

func TestSocialFeed_CircuitBreaker_Opens(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewStringResponder(500, "Internal Server Error"))

	client := newTestClient()

	for i := 0; i < 5; i++ {
		_, err := client.Fetch(context.Background())
		require.Error(t, err)
	}

	// CB should be open now and fail fast without an HTTP round trip
	start := time.Now()
	_, err := client.Fetch(context.Background())
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
	assert.Less(t, elapsed.Milliseconds(), int64(100))
}

func TestSocialFeed_HealthCheck(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://socialfeed.example.com/health",
		httpmock.NewStringResponder(200, "ok"))

	client := newTestClient()
	assert.NoError(t, client.HealthCheck(context.Background()))
}
