package handlers

import (
	"crypto/subtle"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/wardiya/storefront/internal/config"
	"github.com/wardiya/storefront/internal/dto"
	"github.com/wardiya/storefront/internal/upstream"
)

// RevalidateHandler lets the upstream CMS bust the catalog read cache ahead
// of its revalidation window, guarded by a shared-secret query parameter.
type RevalidateHandler struct {
	client *upstream.Client
	secret string
}

func NewRevalidateHandler(client *upstream.Client, cfg *config.Config) *RevalidateHandler {
	return &RevalidateHandler{client: client, secret: cfg.RevalidateSecret}
}

func (h *RevalidateHandler) Revalidate(c *fiber.Ctx) error {
	provided := c.Query("secret")
	if subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid revalidation secret",
		})
	}

	h.client.InvalidateCache()
	slog.Info("catalog cache invalidated by revalidation trigger")
	return c.JSON(fiber.Map{"revalidated": true})
}
