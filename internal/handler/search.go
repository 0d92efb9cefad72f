package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/byunchangill/youtube-hot-finder/internal/middleware"
	"github.com/byunchangill/youtube-hot-finder/internal/model"
	"github.com/byunchangill/youtube-hot-finder/internal/service"
)

type SearchHandler struct {
	svc *service.SearchService
}

func NewSearchHandler(svc *service.SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// SearchChannel handles POST /api/search/channel
func (h *SearchHandler) SearchChannel(c fiber.Ctx) error {
	var req model.ChannelSearchRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	handle, errMsg := middleware.ValidateKeyword(req.Handle)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "handle is required")
	}

	channels, err := h.svc.SearchChannels(c.Context(), handle)
	if err != nil {
		return respondServiceError(c, err)
	}
	Metrics.SearchesTotal.WithLabelValues("channel").Inc()

	return c.JSON(fiber.Map{
		"count":    len(channels),
		"channels": channels,
	})
}

// SearchKeyword handles POST /api/search/keyword
func (h *SearchHandler) SearchKeyword(c fiber.Ctx) error {
	var req model.KeywordSearchRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	keyword, errMsg := middleware.ValidateKeyword(req.Keyword)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	region, errMsg := middleware.ValidateRegionCode(req.RegionCode)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	criteria := model.SearchCriteria{
		Query:             keyword,
		Order:             req.Order,
		MaxResults:        req.MaxResults,
		RegionCode:        region,
		RelevanceLanguage: req.RelevanceLanguage,
	}

	videos, err := h.svc.SearchVideos(c.Context(), criteria, req.Filters)
	if err != nil {
		return respondServiceError(c, err)
	}
	Metrics.SearchesTotal.WithLabelValues("keyword").Inc()

	return c.JSON(fiber.Map{
		"count":  len(videos),
		"videos": videos,
	})
}

// Suggestions handles POST /api/suggestions
func (h *SearchHandler) Suggestions(c fiber.Ctx) error {
	var req model.SuggestionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	query, errMsg := middleware.ValidateKeyword(req.Query)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	suggestions, err := h.svc.Suggestions(c.Context(), query)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"suggestions": suggestions})
}

// Stats handles GET /api/stats
func (h *SearchHandler) Stats(c fiber.Ctx) error {
	stats, err := h.svc.Stats(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load search stats")
	}
	return c.JSON(stats)
}

// ValidateKey handles GET /api/validate-key
func (h *SearchHandler) ValidateKey(c fiber.Ctx) error {
	valid := h.svc.ValidateCredential(c.Context())
	return c.JSON(fiber.Map{"valid": valid})
}
