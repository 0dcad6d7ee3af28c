package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/wardiya/storefront/internal/dto"
	"github.com/wardiya/storefront/internal/upstream"
)

// upstreamError maps an upstream failure on a user-facing action to a
// response. Definitive upstream rejections pass their message through
// verbatim; transport failures become a generic retryable answer.
func upstreamError(c *fiber.Ctx, err error) error {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status < 400 || status > 599 {
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(dto.ErrorResponse{
			Error: true, Message: apiErr.Message,
		})
	}
	if errors.Is(err, upstream.ErrUnreachable) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "Could not reach the store, please try again",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

// logSwallowed records a background/display fetch failure that degrades to
// empty output instead of erroring the page.
func logSwallowed(c *fiber.Ctx, msg string, err error) {
	slog.Warn(msg, "path", c.Path(), "error", err)
}
