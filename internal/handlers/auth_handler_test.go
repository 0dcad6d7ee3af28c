package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardiya/storefront/internal/config"
	"github.com/wardiya/storefront/internal/debuglog"
	"github.com/wardiya/storefront/internal/session"
	"github.com/wardiya/storefront/internal/upstream"
)

func TestSessionBootstrapPayload(t *testing.T) {
	cfg := &config.Config{
		UpstreamAPIURL:    "http://127.0.0.1:1", // never dialed
		UpstreamTimeout:   time.Second,
		CatalogRevalidate: time.Minute,
		HeroRevalidate:    time.Minute,
		RecaptchaSiteKey:  "site-key-1",
	}
	client, err := upstream.New(cfg, debuglog.New(false))
	require.NoError(t, err)
	visitor := session.NewVisitor("v1", client)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("visitor", visitor)
		return c.Next()
	})
	app.Get("/session", NewAuthHandler(cfg).Session)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/session", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		IsAuthenticated  bool   `json:"isAuthenticated"`
		IsLoading        bool   `json:"isLoading"`
		RecaptchaSiteKey string `json:"recaptchaSiteKey"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, "site-key-1", body.RecaptchaSiteKey, "the signup form reads the site key from the bootstrap")
	assert.False(t, body.IsLoading)
	assert.False(t, body.IsAuthenticated)
}
