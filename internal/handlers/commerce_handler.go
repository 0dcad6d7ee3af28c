package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wardiya/storefront/internal/commerce"
	"github.com/wardiya/storefront/internal/dto"
	"github.com/wardiya/storefront/internal/middleware"
)

// CommerceHandler exposes the cart and favorites stores. Mutations answer
// with the optimistic state immediately; the background confirmation
// settles on its own and raises a notice on rollback.
type CommerceHandler struct{}

func NewCommerceHandler() *CommerceHandler {
	return &CommerceHandler{}
}

func (h *CommerceHandler) GetCart(c *fiber.Ctx) error {
	v := middleware.Visitor(c)
	return c.JSON(dto.CartResponse{
		Items:         v.Cart.Items(),
		Count:         v.Cart.Count(),
		TotalQuantity: v.Cart.TotalQuantity(),
	})
}

func (h *CommerceHandler) AddToCart(c *fiber.Ctx) error {
	v := middleware.Visitor(c)
	var req dto.CartAddRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := req.Canonical()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	if err := h.applied(v.Cart.Add(c.UserContext(), product, req.Quantity)); err != nil {
		return localRejection(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(dto.CartResponse{
		Items:         v.Cart.Items(),
		Count:         v.Cart.Count(),
		TotalQuantity: v.Cart.TotalQuantity(),
	})
}

func (h *CommerceHandler) UpdateCartItem(c *fiber.Ctx) error {
	v := middleware.Visitor(c)
	var req dto.CartUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.applied(v.Cart.Update(c.UserContext(), c.Params("productId"), req.Quantity)); err != nil {
		return localRejection(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(dto.CartResponse{
		Items:         v.Cart.Items(),
		Count:         v.Cart.Count(),
		TotalQuantity: v.Cart.TotalQuantity(),
	})
}

func (h *CommerceHandler) RemoveCartItem(c *fiber.Ctx) error {
	v := middleware.Visitor(c)
	if err := h.applied(v.Cart.Remove(c.UserContext(), c.Params("productId"))); err != nil {
		return localRejection(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"count": v.Cart.Count()})
}

func (h *CommerceHandler) ClearCart(c *fiber.Ctx) error {
	v := middleware.Visitor(c)
	if err := h.applied(v.Cart.Clear(c.UserContext())); err != nil {
		return localRejection(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"count": v.Cart.Count()})
}

func (h *CommerceHandler) GetFavorites(c *fiber.Ctx) error {
	v := middleware.Visitor(c)
	return c.JSON(dto.FavoritesResponse{
		Items: v.Favorites.Items(),
		Count: v.Favorites.Count(),
	})
}

func (h *CommerceHandler) AddFavorite(c *fiber.Ctx) error {
	v := middleware.Visitor(c)
	var req dto.FavoriteAddRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	product, err := req.Canonical()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	if err := h.applied(v.Favorites.Add(c.UserContext(), product)); err != nil {
		return localRejection(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(dto.FavoritesResponse{
		Items: v.Favorites.Items(),
		Count: v.Favorites.Count(),
	})
}

func (h *CommerceHandler) RemoveFavorite(c *fiber.Ctx) error {
	v := middleware.Visitor(c)
	if err := h.applied(v.Favorites.Remove(c.UserContext(), c.Params("productId"))); err != nil {
		return localRejection(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"count": v.Favorites.Count()})
}

func (h *CommerceHandler) ClearFavorites(c *fiber.Ctx) error {
	v := middleware.Visitor(c)
	if err := h.applied(v.Favorites.Clear(c.UserContext())); err != nil {
		return localRejection(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"count": v.Favorites.Count()})
}

// Notifications drains the visitor's pending notices (rollback alerts,
// login-required rejections) for the frontend toast layer.
func (h *CommerceHandler) Notifications(c *fiber.Ctx) error {
	v := middleware.Visitor(c)
	return c.JSON(fiber.Map{"notifications": v.Notices.Drain()})
}

// applied peeks at an operation result without waiting for the background
// confirmation: local rejections (login required, invalid quantity) settle
// synchronously and surface here, anything else is already applied
// optimistically.
func (h *CommerceHandler) applied(results <-chan commerce.OpResult) error {
	select {
	case res := <-results:
		if errors.Is(res.Err, commerce.ErrLoginRequired) ||
			errors.Is(res.Err, commerce.ErrInvalidQuantity) ||
			errors.Is(res.Err, commerce.ErrNotInCart) {
			return res.Err
		}
		return nil
	default:
		return nil
	}
}

func localRejection(c *fiber.Ctx, err error) error {
	if errors.Is(err, commerce.ErrLoginRequired) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Please log in first",
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: err.Error(),
	})
}
