package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wardiya/storefront/internal/config"
	"github.com/wardiya/storefront/internal/dto"
	"github.com/wardiya/storefront/internal/middleware"
	"github.com/wardiya/storefront/internal/session"
)

type AuthHandler struct {
	recaptchaSiteKey string
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{recaptchaSiteKey: cfg.RecaptchaSiteKey}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	v := middleware.Visitor(c)
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := v.Session.Signup(c.UserContext(), req.Name, req.Email, req.Password, req.CaptchaToken); err != nil {
		return upstreamError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":              "Account created, verification code sent",
		"awaitingVerification": true,
	})
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	v := middleware.Visitor(c)
	var req dto.VerifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := v.Session.VerifyEmail(c.UserContext(), req.Email, req.Code); err != nil {
		return upstreamError(c, err)
	}

	h.loadCollections(c, v)
	return c.JSON(v.Session.Snapshot())
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	v := middleware.Visitor(c)
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := v.Session.Login(c.UserContext(), req.Email, req.Password); err != nil {
		return upstreamError(c, err)
	}

	h.loadCollections(c, v)
	return c.JSON(v.Session.Snapshot())
}

func (h *AuthHandler) RequestPhoneLogin(c *fiber.Ctx) error {
	v := middleware.Visitor(c)
	var req dto.PhoneLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := v.Session.RequestPhoneLogin(c.UserContext(), req.Phone); err != nil {
		return upstreamError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Verification code sent"})
}

func (h *AuthHandler) VerifyPhoneLogin(c *fiber.Ctx) error {
	v := middleware.Visitor(c)
	var req dto.VerifyPhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := v.Session.VerifyPhoneLogin(c.UserContext(), req.Phone, req.Code); err != nil {
		if errors.Is(err, session.ErrNoPendingPhoneLogin) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Request a login code for this number first",
			})
		}
		return upstreamError(c, err)
	}

	h.loadCollections(c, v)
	return c.JSON(v.Session.Snapshot())
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	v := middleware.Visitor(c)
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := v.Session.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password reset code sent"})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	v := middleware.Visitor(c)
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := v.Session.ResetPassword(c.UserContext(), req.Email, req.Code, req.NewPassword); err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}

// Session returns the frontend bootstrap payload: the session snapshot plus
// the configuration the signup form needs.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	snap := middleware.Visitor(c).Session.Snapshot()
	return c.JSON(fiber.Map{
		"isAuthenticated":  snap.IsAuthenticated,
		"isLoading":        snap.IsLoading,
		"user":             snap.User,
		"recaptchaSiteKey": h.recaptchaSiteKey,
	})
}

// CheckAuthStatus re-validates the session; the OAuth callback lands here
// after the provider redirect.
func (h *AuthHandler) CheckAuthStatus(c *fiber.Ctx) error {
	v := middleware.Visitor(c)
	v.Session.CheckAuthStatus(c.UserContext())
	if v.Session.IsAuthenticated() {
		h.loadCollections(c, v)
	}
	return c.JSON(v.Session.Snapshot())
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	v := middleware.Visitor(c)
	v.Session.Logout(c.UserContext())
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// loadCollections pulls the upstream cart and favorites after a login so
// the local caches start from the authoritative collections. Failures are
// non-fatal; the stores stay empty and fill on first mutation.
func (h *AuthHandler) loadCollections(c *fiber.Ctx, v *session.Visitor) {
	ctx := c.UserContext()
	if err := v.Cart.Load(ctx); err != nil {
		logSwallowed(c, "cart load after login failed", err)
	}
	if err := v.Favorites.Load(ctx); err != nil {
		logSwallowed(c, "favorites load after login failed", err)
	}
}
