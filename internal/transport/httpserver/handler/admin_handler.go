package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"product-pulse-service/internal/app/service"
	"product-pulse-service/internal/transport/httpserver/dto"
	"product-pulse-service/internal/transport/ws"
	"product-pulse-service/internal/validator"
)

// AdminHandler serves the administrative sync and broadcast endpoints.
type AdminHandler struct {
	syncService    *service.SyncService
	contentService *service.ContentService
	hub            *ws.Hub
	validator      *validator.Validator
	logger         *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	syncSvc *service.SyncService,
	contentSvc *service.ContentService,
	hub *ws.Hub,
	v *validator.Validator,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		syncService:    syncSvc,
		contentService: contentSvc,
		hub:            hub,
		validator:      v,
		logger:         logger,
	}
}

// SyncAll handles POST /api/v1/admin/sync
// It pulls all configured feeds, broadcasts the refreshed digests, and
// reports per-feed results.
func (h *AdminHandler) SyncAll(c *fiber.Ctx) error {
	h.logger.Info("manual sync triggered")

	results := h.syncService.SyncAll(c.Context())

	if err := h.syncService.BroadcastDigests(c.Context()); err != nil {
		h.logger.Warn("digest broadcast after manual sync failed", zap.Error(err))
	}

	return c.JSON(dto.FromSyncResults(results))
}

// SyncProvider handles POST /api/v1/admin/sync/:provider
func (h *AdminHandler) SyncProvider(c *fiber.Ctx) error {
	providerName := c.Params("provider")

	result, err := h.syncService.SyncProvider(c.Context(), providerName)
	if err != nil {
		h.logger.Error("provider sync failed",
			zap.String("provider", providerName),
			zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "sync failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	if result == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "unknown feed provider: " + providerName,
			Code:  "PROVIDER_NOT_FOUND",
		})
	}

	return c.JSON(dto.FromSyncResults([]service.SyncResult{*result}))
}

// Providers handles GET /api/v1/admin/providers
func (h *AdminHandler) Providers(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"providers": h.syncService.GetProviderNames(),
	})
}

// Notify handles POST /api/v1/admin/notify
// It fans catalog change notices out to connected subscribers.
func (h *AdminHandler) Notify(c *fiber.Ctx) error {
	var req dto.NotifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	h.syncService.NotifyCatalogUpdates(req.NewProducts, req.PriceUpdates, req.AvailabilityUpdates)

	return c.JSON(fiber.Map{
		"status":      "sent",
		"subscribers": h.hub.SubscriberCount(),
	})
}

// Stats handles GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	posts, videos, err := h.contentService.Counts(c.Context())
	if err != nil {
		h.logger.Error("stats query failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to load stats",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.StatsResponse{
		TotalPosts:  posts,
		TotalVideos: videos,
		Subscribers: h.hub.SubscriberCount(),
	})
}
