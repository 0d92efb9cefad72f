package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/byunchangill/youtube-hot-finder/internal/middleware"
	"github.com/byunchangill/youtube-hot-finder/internal/service"
)

type ChannelHandler struct {
	svc *service.SearchService
}

func NewChannelHandler(svc *service.SearchService) *ChannelHandler {
	return &ChannelHandler{svc: svc}
}

// GetByID handles GET /api/channels/:channelId
func (h *ChannelHandler) GetByID(c fiber.Ctx) error {
	channelID, errMsg := middleware.ValidateChannelID(c.Params("channelId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	channel, err := h.svc.GetChannelDetails(c.Context(), channelID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(channel)
}
