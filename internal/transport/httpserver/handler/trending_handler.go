package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"product-pulse-service/internal/app/service"
	"product-pulse-service/internal/transport/httpserver/dto"
	"product-pulse-service/internal/validator"
)

// TrendingHandler serves the catalog-wide trending endpoints.
type TrendingHandler struct {
	service   *service.ContentService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewTrendingHandler creates a new TrendingHandler.
func NewTrendingHandler(svc *service.ContentService, v *validator.Validator, logger *zap.Logger) *TrendingHandler {
	return &TrendingHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// TrendingPosts handles GET /api/v1/trending/posts
func (h *TrendingHandler) TrendingPosts(c *fiber.Ctx) error {
	req, ok := h.parseLimit(c)
	if !ok {
		return nil
	}

	posts, err := h.service.TrendingPosts(c.Context(), req.Limit)
	if err != nil {
		h.logger.Error("trending posts failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to compute trending posts",
			Code:  "INTERNAL_ERROR",
		})
	}

	now := time.Now()
	resp := dto.TrendingPostsResponse{Posts: make([]dto.PostResponse, len(posts))}
	for i, p := range posts {
		resp.Posts[i] = dto.FromDomainPost(p, now)
	}

	return c.JSON(resp)
}

// TrendingVideos handles GET /api/v1/trending/videos
func (h *TrendingHandler) TrendingVideos(c *fiber.Ctx) error {
	req, ok := h.parseLimit(c)
	if !ok {
		return nil
	}

	videos, err := h.service.TrendingVideos(c.Context(), req.Limit)
	if err != nil {
		h.logger.Error("trending videos failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to compute trending videos",
			Code:  "INTERNAL_ERROR",
		})
	}

	now := time.Now()
	resp := dto.TrendingVideosResponse{Videos: make([]dto.VideoResponse, len(videos))}
	for i, v := range videos {
		resp.Videos[i] = dto.FromDomainVideo(v, now)
	}

	return c.JSON(resp)
}

func (h *TrendingHandler) parseLimit(c *fiber.Ctx) (dto.TrendingRequest, bool) {
	var req dto.TrendingRequest
	if err := c.QueryParser(&req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
		return req, false
	}

	if err := h.validator.Validate(&req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
		return req, false
	}

	return req, true
}
