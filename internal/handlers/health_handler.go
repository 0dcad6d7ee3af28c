package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wardiya/storefront/internal/upstream"
)

type HealthHandler struct {
	client *upstream.Client
}

func NewHealthHandler(client *upstream.Client) *HealthHandler {
	return &HealthHandler{client: client}
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	upstreamStatus := "ok"
	if err := h.client.Ping(c.UserContext()); err != nil {
		upstreamStatus = "unreachable"
	}
	return c.JSON(fiber.Map{
		"status":    "ok",
		"upstream":  upstreamStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
