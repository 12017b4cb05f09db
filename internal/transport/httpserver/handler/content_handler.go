// Package handler provides HTTP handlers for the API.
package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"product-pulse-service/internal/app/service"
	"product-pulse-service/internal/transport/httpserver/dto"
	"product-pulse-service/internal/validator"
)

// ContentHandler serves per-product ranked content endpoints.
type ContentHandler struct {
	service   *service.ContentService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(svc *service.ContentService, v *validator.Validator, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// RankedPosts handles GET /api/v1/products/:id/posts
func (h *ContentHandler) RankedPosts(c *fiber.Ctx) error {
	productID := c.Params("id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "product id is required",
			Code:  "MISSING_PRODUCT_ID",
		})
	}

	req, ok := h.parseLimit(c)
	if !ok {
		return nil
	}

	result, err := h.service.RankedPostsForProduct(c.Context(), productID, req.Limit)
	if err != nil {
		h.logger.Error("ranked posts failed", zap.String("product_id", productID), zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to rank posts",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.FromRankedPosts(result, time.Now()))
}

// RankedVideos handles GET /api/v1/products/:id/videos
func (h *ContentHandler) RankedVideos(c *fiber.Ctx) error {
	productID := c.Params("id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "product id is required",
			Code:  "MISSING_PRODUCT_ID",
		})
	}

	req, ok := h.parseLimit(c)
	if !ok {
		return nil
	}

	result, err := h.service.RankedVideosForProduct(c.Context(), productID, req.Limit)
	if err != nil {
		h.logger.Error("ranked videos failed", zap.String("product_id", productID), zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to rank videos",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.FromRankedVideos(result, time.Now()))
}

// MostImpactfulVideo handles GET /api/v1/products/:id/videos/top
func (h *ContentHandler) MostImpactfulVideo(c *fiber.Ctx) error {
	productID := c.Params("id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "product id is required",
			Code:  "MISSING_PRODUCT_ID",
		})
	}

	video, err := h.service.MostImpactfulVideo(c.Context(), productID)
	if err != nil {
		h.logger.Error("most impactful video failed", zap.String("product_id", productID), zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to find top video",
			Code:  "INTERNAL_ERROR",
		})
	}

	if video == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "product has no video reviews",
			Code:  "NOT_FOUND",
		})
	}

	return c.JSON(dto.FromDomainVideo(video, time.Now()))
}

// parseLimit reads and validates the limit query parameter. On failure the
// 400 response is already written and ok is false.
func (h *ContentHandler) parseLimit(c *fiber.Ctx) (dto.RankedContentRequest, bool) {
	var req dto.RankedContentRequest
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
