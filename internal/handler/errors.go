package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/byunchangill/youtube-hot-finder/internal/middleware"
	"github.com/byunchangill/youtube-hot-finder/internal/service"
	"github.com/byunchangill/youtube-hot-finder/internal/youtube"
)

// respondServiceError maps classified pipeline errors onto the API error
// contract. Upstream failures never surface as 500s: the caller can tell
// a broken credential (401), an exhausted pool (429) and a flaky provider
// (502) apart.
func respondServiceError(c fiber.Ctx, err error) error {
	var (
		valErr   *youtube.ValidationError
		credErr  *youtube.CredentialError
		quotaErr *youtube.QuotaError
	)

	switch {
	case errors.As(err, &valErr):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", valErr.Error())
	case errors.As(err, &credErr):
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "CREDENTIAL_INVALID",
			"The API credential was rejected by the provider")
	case errors.As(err, &quotaErr):
		return middleware.ErrorResponse(c, fiber.StatusTooManyRequests, "QUOTA_EXCEEDED",
			"Daily API quota exhausted, try again later")
	case errors.Is(err, service.ErrNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Resource not found")
	}

	var (
		transientErr *youtube.TransientError
		netErr       *youtube.NetworkError
	)
	if errors.As(err, &transientErr) || errors.As(err, &netErr) {
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "UPSTREAM_ERROR",
			"The video platform API is unavailable")
	}

	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR",
		"Internal server error")
}
