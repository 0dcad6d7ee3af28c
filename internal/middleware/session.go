package middleware

import (
	"time"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/wardiya/storefront/internal/dto"
	"github.com/wardiya/storefront/internal/session"
)

// Session verifies the signed visitor cookie. Visitors arriving without a
// valid cookie get a fresh identity instead of an error; every request ends
// up with a visitor id in locals.
func Session(m *session.Manager) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: m.Secret()},
		TokenLookup: "cookie:" + session.CookieName,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			id := m.NewVisitorID()
			token, signErr := m.IssueToken(id)
			if signErr != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
					Error: true, Message: "Internal server error",
				})
			}
			setSessionCookie(c, token, m.TTL())
			c.Locals("visitor_id", id)
			return c.Next()
		},
	})
}

// AttachVisitor resolves the visitor id (from a fresh identity or the
// verified cookie) into the visitor's stores.
func AttachVisitor(m *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.Locals("visitor_id").(string)
		if id == "" {
			if token, ok := c.Locals("user").(*jwt.Token); ok {
				if sub, err := token.Claims.GetSubject(); err == nil {
					id = sub
				}
			}
		}
		if id == "" {
			// Unverifiable cookie that also failed reissue; treat as a
			// new visit.
			id = m.NewVisitorID()
			if token, err := m.IssueToken(id); err == nil {
				setSessionCookie(c, token, m.TTL())
			}
		}
		c.Locals("visitor", m.Get(id))
		return c.Next()
	}
}

// Visitor extracts the visitor stores from Fiber context locals.
func Visitor(c *fiber.Ctx) *session.Visitor {
	if v, ok := c.Locals("visitor").(*session.Visitor); ok {
		return v
	}
	return nil
}

func setSessionCookie(c *fiber.Ctx, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
