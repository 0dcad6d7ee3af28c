package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wardiya/storefront/internal/content"
)

// Lang resolves the active UI language once per request: explicit ?lang
// query, then the persisted preference cookie, then Accept-Language.
// Handlers read it from locals instead of re-deriving it ad hoc.
func Lang() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tag := c.Query("lang")
		if tag == "" {
			tag = c.Cookies("lang")
		}
		if tag == "" {
			tag = c.Get("Accept-Language")
		}
		c.Locals("lang", content.ParseLang(tag))
		return c.Next()
	}
}

// ActiveLang extracts the resolved language from context locals.
func ActiveLang(c *fiber.Ctx) content.Lang {
	if lang, ok := c.Locals("lang").(content.Lang); ok {
		return lang
	}
	return content.Arabic
}
