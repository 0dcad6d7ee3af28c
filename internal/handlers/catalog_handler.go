package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wardiya/storefront/internal/content"
	"github.com/wardiya/storefront/internal/dto"
	"github.com/wardiya/storefront/internal/middleware"
	"github.com/wardiya/storefront/internal/models"
	"github.com/wardiya/storefront/internal/upstream"
)

// CatalogHandler serves display-ready catalog and hero data. Each section
// degrades to empty output on failure; a broken section never errors the
// whole page.
type CatalogHandler struct {
	client *upstream.Client
}

func NewCatalogHandler(client *upstream.Client) *CatalogHandler {
	return &CatalogHandler{client: client}
}

func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	lang := middleware.ActiveLang(c)
	query := upstream.ProductQuery{
		Page:       c.QueryInt("page", 1),
		Limit:      c.QueryInt("limit", 24),
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
		CategoryID: c.Query("category"),
		OccasionID: c.Query("occasion"),
		BestSeller: c.QueryBool("bestSeller"),
		Special:    c.QueryBool("specialGift"),
		Search:     c.Query("search"),
	}

	page, err := h.client.GetProducts(c.UserContext(), query)
	if err != nil {
		logSwallowed(c, "products fetch failed", err)
		return c.JSON(fiber.Map{
			"data":       []content.DisplayProduct{},
			"pagination": models.Pagination{CurrentPage: query.Page},
		})
	}

	return c.JSON(fiber.Map{
		"data":       content.ProductsDisplay(page.Data, lang),
		"pagination": page.Pagination,
	})
}

func (h *CatalogHandler) Product(c *fiber.Ctx) error {
	product, err := h.client.GetProduct(c.UserContext(), c.Params("slug"))
	if err != nil {
		if upstream.IsRejection(err) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Product not found",
			})
		}
		logSwallowed(c, "product fetch failed", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "Could not reach the store, please try again",
		})
	}
	return c.JSON(content.ProductDisplay(*product, middleware.ActiveLang(c)))
}

func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.client.GetCategories(c.UserContext())
	if err != nil {
		logSwallowed(c, "categories fetch failed", err)
		categories = nil
	}
	return c.JSON(fiber.Map{"data": content.CategoriesDisplay(categories, middleware.ActiveLang(c))})
}

func (h *CatalogHandler) Occasions(c *fiber.Ctx) error {
	occasions, err := h.client.GetOccasions(c.UserContext())
	if err != nil {
		logSwallowed(c, "occasions fetch failed", err)
		occasions = nil
	}
	return c.JSON(fiber.Map{"data": content.OccasionsDisplay(occasions, middleware.ActiveLang(c))})
}

func (h *CatalogHandler) Hero(c *fiber.Ctx) error {
	slides, err := h.client.FetchHeroSlides(c.UserContext(), time.Now())
	if err != nil {
		logSwallowed(c, "hero assembly failed", err)
		slides = nil
	}
	return c.JSON(fiber.Map{"data": content.SlidesDisplay(slides, middleware.ActiveLang(c))})
}
