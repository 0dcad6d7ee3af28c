package upstream

import (
	"context"
	"net/http"

	"github.com/wardiya/storefront/internal/debuglog"
	"github.com/wardiya/storefront/internal/models"
)

// AuthResponse is the upstream answer to any operation that issues
// credentials.
type AuthResponse struct {
	AccessToken string      `json:"accessToken"`
	User        models.User `json:"user"`
}

type signupRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	CaptchaToken string `json:"captchaToken"`
}

// Signup registers an account. Credentials are not issued until the email
// is verified.
func (c *Client) Signup(ctx context.Context, name, email, password, captchaToken string) error {
	req := signupRequest{Name: name, Email: email, Password: password, CaptchaToken: captchaToken}
	return c.do(ctx, http.MethodPost, "/auth/signup", "", req, nil)
}

type verifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (c *Client) VerifyEmail(ctx context.Context, email, code string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/verify-email", "", verifyEmailRequest{Email: email, Code: code}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type phoneRequest struct {
	Phone string `json:"phone"`
}

// RequestPhoneLogin asks the upstream to send a one-time code. The second
// step is VerifyPhoneLogin.
func (c *Client) RequestPhoneLogin(ctx context.Context, phone string) error {
	return c.do(ctx, http.MethodPost, "/auth/phone/request", "", phoneRequest{Phone: phone}, nil)
}

type verifyPhoneRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

func (c *Client) VerifyPhoneLogin(ctx context.Context, phone, code string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/phone/verify", "", verifyPhoneRequest{Phone: phone, Code: code}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/password/forgot", "", map[string]string{"email": email}, nil)
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

func (c *Client) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/auth/password/reset", "", resetPasswordRequest{Email: email, Code: code, NewPassword: newPassword}, nil)
}

// Me re-validates the token and returns the current profile.
func (c *Client) Me(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &user); err != nil {
		return nil, err
	}
	c.record("auth/me", user, debuglog.KindAuth)
	return &user, nil
}

// Logout revokes the token upstream. Local state is already cleared by the
// time this is called; failures here are best-effort.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}
