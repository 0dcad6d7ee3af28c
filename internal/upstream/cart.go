package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/wardiya/storefront/internal/models"
)

func (c *Client) GetCart(ctx context.Context, token string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := c.do(ctx, http.MethodGet, "/cart", token, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart upserts a cart line with an absolute quantity. The response is
// the authoritative row.
func (c *Client) AddToCart(ctx context.Context, token string, item models.CartItem) (models.CartItem, error) {
	var confirmed models.CartItem
	if err := c.do(ctx, http.MethodPost, "/cart/items", token, item, &confirmed); err != nil {
		return models.CartItem{}, err
	}
	return confirmed, nil
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

func (c *Client) UpdateCartItem(ctx context.Context, token, productID string, quantity int) (models.CartItem, error) {
	var confirmed models.CartItem
	path := "/cart/items/" + url.PathEscape(productID)
	if err := c.do(ctx, http.MethodPut, path, token, updateCartRequest{Quantity: quantity}, &confirmed); err != nil {
		return models.CartItem{}, err
	}
	return confirmed, nil
}

func (c *Client) RemoveCartItem(ctx context.Context, token, productID string) error {
	return c.do(ctx, http.MethodDelete, "/cart/items/"+url.PathEscape(productID), token, nil, nil)
}

func (c *Client) ClearCart(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, "/cart", token, nil, nil)
}
