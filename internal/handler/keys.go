package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/byunchangill/youtube-hot-finder/internal/middleware"
	"github.com/byunchangill/youtube-hot-finder/internal/model"
	"github.com/byunchangill/youtube-hot-finder/internal/repository"
	"github.com/byunchangill/youtube-hot-finder/internal/service"
	"github.com/byunchangill/youtube-hot-finder/pkg/hash"
)

// KeyHandler exposes the credential pool admin surface. Secrets never
// leave the server in full; list responses carry a fingerprint instead.
type KeyHandler struct {
	svc *service.CredentialService
}

func NewKeyHandler(svc *service.CredentialService) *KeyHandler {
	return &KeyHandler{svc: svc}
}

// keyView is the outward shape of a pool credential.
type keyView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Fingerprint string `json:"fingerprint"`
	QuotaUsed   int    `json:"quotaUsed"`
	IsActive    bool   `json:"isActive"`
}

func toKeyView(c model.Credential) keyView {
	return keyView{
		ID:          c.ID,
		Name:        c.Name,
		Fingerprint: hash.SecretFingerprint(c.Key),
		QuotaUsed:   c.QuotaUsed,
		IsActive:    c.IsActive,
	}
}

// Create handles POST /api/keys
func (h *KeyHandler) Create(c fiber.Ctx) error {
	var req model.KeyCreateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	name, errMsg := middleware.ValidateKeyName(req.Name)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	secret, errMsg := middleware.ValidateKeySecret(req.APIKey)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	cred, err := h.svc.Create(c.Context(), name, secret)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateSecret) {
			return middleware.ErrorResponse(c, fiber.StatusConflict, "DUPLICATE_KEY", "This API key is already registered")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register key")
	}

	return c.Status(fiber.StatusCreated).JSON(toKeyView(*cred))
}

// List handles GET /api/keys
func (h *KeyHandler) List(c fiber.Ctx) error {
	creds, err := h.svc.List(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list keys")
	}

	views := make([]keyView, 0, len(creds))
	for _, cred := range creds {
		views = append(views, toKeyView(cred))
	}
	return c.JSON(fiber.Map{
		"count": len(views),
		"keys":  views,
	})
}

// Delete handles DELETE /api/keys/:id — deactivation, the row stays.
func (h *KeyHandler) Delete(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "id must be a positive integer")
	}

	if err := h.svc.Remove(c.Context(), id); err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Key not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to remove key")
	}

	return c.JSON(fiber.Map{"success": true})
}

// Usage handles GET /api/keys/usage
func (h *KeyHandler) Usage(c fiber.Ctx) error {
	usage, err := h.svc.UsageStats(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load usage stats")
	}
	return c.JSON(fiber.Map{"usage": usage})
}

// Status handles GET /api/keys/status
func (h *KeyHandler) Status(c fiber.Ctx) error {
	status, err := h.svc.Status(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load pool status")
	}
	return c.JSON(status)
}

// Reset handles POST /api/keys/reset — zero every quota counter.
func (h *KeyHandler) Reset(c fiber.Ctx) error {
	n, err := h.svc.Reset(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to reset quota counters")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"reset":   n,
	})
}
