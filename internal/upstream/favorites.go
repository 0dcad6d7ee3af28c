package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/wardiya/storefront/internal/models"
)

func (c *Client) GetFavorites(ctx context.Context, token string) ([]models.FavoriteItem, error) {
	var items []models.FavoriteItem
	if err := c.do(ctx, http.MethodGet, "/favorites", token, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) AddFavorite(ctx context.Context, token string, item models.FavoriteItem) (models.FavoriteItem, error) {
	var confirmed models.FavoriteItem
	if err := c.do(ctx, http.MethodPost, "/favorites", token, item, &confirmed); err != nil {
		return models.FavoriteItem{}, err
	}
	return confirmed, nil
}

func (c *Client) RemoveFavorite(ctx context.Context, token, productID string) error {
	return c.do(ctx, http.MethodDelete, "/favorites/"+url.PathEscape(productID), token, nil, nil)
}

func (c *Client) ClearFavorites(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, "/favorites", token, nil, nil)
}
