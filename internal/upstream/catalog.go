package upstream

import (
	"context"
	"net/url"
	"strconv"

	"github.com/wardiya/storefront/internal/models"
)

// ProductQuery mirrors the upstream pagination/filter parameters.
type ProductQuery struct {
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
	CategoryID string
	OccasionID string
	BestSeller bool
	Special    bool
	Search     string
}

func (q ProductQuery) encode() string {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		v.Set("sortOrder", q.SortOrder)
	}
	if q.CategoryID != "" {
		v.Set("category", q.CategoryID)
	}
	if q.OccasionID != "" {
		v.Set("occasion", q.OccasionID)
	}
	if q.BestSeller {
		v.Set("bestSeller", "true")
	}
	if q.Special {
		v.Set("specialGift", "true")
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if encoded := v.Encode(); encoded != "" {
		return "?" + encoded
	}
	return ""
}

func (c *Client) GetProducts(ctx context.Context, q ProductQuery) (*models.ProductPage, error) {
	var page models.ProductPage
	if err := c.getCached(ctx, "/products"+q.encode(), c.catalogTTL, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetProduct fetches one product by slug (or id, the upstream accepts both).
func (c *Client) GetProduct(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := c.getCached(ctx, "/products/"+url.PathEscape(slug), c.catalogTTL, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.getCached(ctx, "/categories", c.catalogTTL, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) GetOccasions(ctx context.Context) ([]models.Occasion, error) {
	var occasions []models.Occasion
	if err := c.getCached(ctx, "/occasions", c.heroTTL, &occasions); err != nil {
		return nil, err
	}
	return occasions, nil
}

func (c *Client) GetPromotions(ctx context.Context) ([]models.Promotion, error) {
	var promotions []models.Promotion
	if err := c.getCached(ctx, "/promotions", c.heroTTL, &promotions); err != nil {
		return nil, err
	}
	return promotions, nil
}
