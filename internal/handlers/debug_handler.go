package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wardiya/storefront/internal/debuglog"
)

// DebugHandler exposes the development log sink. Routes are only mounted in
// development, and the sink itself is inert everywhere else.
type DebugHandler struct {
	sink *debuglog.Sink
}

func NewDebugHandler(sink *debuglog.Sink) *DebugHandler {
	return &DebugHandler{sink: sink}
}

func (h *DebugHandler) Logs(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"entries": h.sink.Entries(),
		"visible": h.sink.Visible(),
	})
}

func (h *DebugHandler) ClearLogs(c *fiber.Ctx) error {
	h.sink.Clear()
	return c.JSON(fiber.Map{"message": "Logs cleared"})
}

func (h *DebugHandler) SetVisible(c *fiber.Ctx) error {
	var req struct {
		Visible bool `json:"visible"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}
	h.sink.SetVisible(req.Visible)
	return c.JSON(fiber.Map{"visible": h.sink.Visible()})
}
