package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/byunchangill/youtube-hot-finder/internal/middleware"
	"github.com/byunchangill/youtube-hot-finder/internal/model"
	"github.com/byunchangill/youtube-hot-finder/internal/service"
)

type VideoHandler struct {
	svc *service.SearchService
}

func NewVideoHandler(svc *service.SearchService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// Trending handles GET /api/trending?regionCode=KR&categoryId=10
func (h *VideoHandler) Trending(c fiber.Ctx) error {
	region, errMsg := middleware.ValidateRegionCode(fiber.Query[string](c, "regionCode"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	category := fiber.Query[string](c, "categoryId")

	videos, err := h.svc.GetTrendingVideos(c.Context(), region, category)
	if err != nil {
		return respondServiceError(c, err)
	}
	Metrics.SearchesTotal.WithLabelValues("trending").Inc()

	return c.JSON(fiber.Map{
		"count":  len(videos),
		"videos": videos,
	})
}

// Popular handles POST /api/popular — trending scored, ranked and filtered.
func (h *VideoHandler) Popular(c fiber.Ctx) error {
	var req model.PopularRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	region, errMsg := middleware.ValidateRegionCode(req.RegionCode)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	videos, err := h.svc.GetPopularVideos(c.Context(), region, req.CategoryID, req.MaxResults, req.Filters)
	if err != nil {
		return respondServiceError(c, err)
	}
	Metrics.SearchesTotal.WithLabelValues("popular").Inc()

	return c.JSON(fiber.Map{
		"count":  len(videos),
		"videos": videos,
	})
}

// GetByID handles GET /api/videos/:videoId
func (h *VideoHandler) GetByID(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateVideoID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	video, err := h.svc.GetVideoDetails(c.Context(), videoID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(video)
}
