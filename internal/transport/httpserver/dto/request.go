// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

// RankedContentRequest represents the query parameters for ranked content
// endpoints.
type RankedContentRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// TrendingRequest represents the query parameters for trending endpoints.
type TrendingRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// NotifyRequest represents the body of the catalog update notification
// endpoint. All counts are optional; zero counts produce no broadcast.
type NotifyRequest struct {
	NewProducts         int `json:"new_products" validate:"omitempty,min=0"`
	PriceUpdates        int `json:"price_updates" validate:"omitempty,min=0"`
	AvailabilityUpdates int `json:"availability_updates" validate:"omitempty,min=0"`
}
