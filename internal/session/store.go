// Package session owns per-visitor authentication state. The store is the
// single source of truth for "am I authenticated"; commerce stores read the
// token through it but never write it.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wardiya/storefront/internal/models"
	"github.com/wardiya/storefront/internal/upstream"
)

type State int

const (
	StateAnonymous State = iota
	StateChecking
	StateAuthenticated
)

var (
	// ErrLoginRequired is the local rejection for operations that need an
	// authenticated session. No network call is made.
	ErrLoginRequired = errors.New("login required")

	// ErrNoPendingPhoneLogin rejects a phone verification that was not
	// preceded by a code request for the same number.
	ErrNoPendingPhoneLogin = errors.New("no pending phone login for this number")
)

// AuthAPI is the slice of the upstream client the store depends on.
type AuthAPI interface {
	Signup(ctx context.Context, name, email, password, captchaToken string) error
	VerifyEmail(ctx context.Context, email, code string) (*upstream.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*upstream.AuthResponse, error)
	RequestPhoneLogin(ctx context.Context, phone string) error
	VerifyPhoneLogin(ctx context.Context, phone, code string) (*upstream.AuthResponse, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	Me(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, token string) error
}

// Snapshot is the derived session state handed to the frontend.
type Snapshot struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	IsLoading       bool         `json:"isLoading"`
	User            *models.User `json:"user"`
}

type Store struct {
	mu  sync.Mutex
	api AuthAPI

	state State
	token string
	user  *models.User

	// gen invalidates in-flight identity fetches: logout or a newer login
	// bumps it, so a stale response cannot resurrect old state.
	gen uint64

	awaitingEmail string
	pendingPhones map[string]time.Time

	logoutHooks []func()
}

// New returns a store in the bootstrap (checking) state; CheckAuthStatus
// settles it. A persisted token from the visitor's previous visit may be
// seeded with SetToken before the first check.
func New(api AuthAPI) *Store {
	return &Store{
		api:           api,
		state:         StateChecking,
		pendingPhones: make(map[string]time.Time),
	}
}

// SetToken seeds a persisted token ahead of the bootstrap check.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		IsAuthenticated: s.state == StateAuthenticated,
		IsLoading:       s.state == StateChecking,
		User:            s.user,
	}
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateAuthenticated
}

// Token returns the access token for authenticated calls. The second return
// is false for anonymous sessions, which callers must treat as a local
// failure without a network round-trip.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated || s.token == "" {
		return "", false
	}
	return s.token, true
}

// AwaitingVerification returns the email of a signup whose verification is
// still pending, if any.
func (s *Store) AwaitingVerification() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awaitingEmail, s.awaitingEmail != ""
}

// Signup registers an account. On success the session stays unauthenticated
// and waits for email verification; the upstream's message on failure is
// passed through verbatim.
func (s *Store) Signup(ctx context.Context, name, email, password, captchaToken string) error {
	if err := s.api.Signup(ctx, name, email, password, captchaToken); err != nil {
		return err
	}
	s.mu.Lock()
	s.awaitingEmail = email
	s.mu.Unlock()
	return nil
}

// VerifyEmail completes signup: the upstream issues credentials and the
// session becomes authenticated.
func (s *Store) VerifyEmail(ctx context.Context, email, code string) error {
	resp, err := s.api.VerifyEmail(ctx, email, code)
	if err != nil {
		return err
	}
	s.adopt(resp)
	s.mu.Lock()
	s.awaitingEmail = ""
	s.mu.Unlock()
	return nil
}

func (s *Store) Login(ctx context.Context, email, password string) error {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	s.adopt(resp)
	return nil
}

// RequestPhoneLogin is step one of the two-step phone flow.
func (s *Store) RequestPhoneLogin(ctx context.Context, phone string) error {
	if err := s.api.RequestPhoneLogin(ctx, phone); err != nil {
		return err
	}
	s.mu.Lock()
	s.pendingPhones[phone] = time.Now()
	s.mu.Unlock()
	return nil
}

// VerifyPhoneLogin is step two. A verify without a preceding request for the
// same number is rejected locally, before any network call.
func (s *Store) VerifyPhoneLogin(ctx context.Context, phone, code string) error {
	s.mu.Lock()
	_, pending := s.pendingPhones[phone]
	s.mu.Unlock()
	if !pending {
		return ErrNoPendingPhoneLogin
	}

	resp, err := s.api.VerifyPhoneLogin(ctx, phone, code)
	if err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.pendingPhones, phone)
	s.mu.Unlock()
	s.adopt(resp)
	return nil
}

// RequestPasswordReset never mutates session state.
func (s *Store) RequestPasswordReset(ctx context.Context, email string) error {
	return s.api.RequestPasswordReset(ctx, email)
}

// ResetPassword never mutates session state.
func (s *Store) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	return s.api.ResetPassword(ctx, email, code, newPassword)
}

// CheckAuthStatus re-validates the current token and reloads the user. It is
// idempotent and safe to call concurrently: a response that arrives after a
// logout or a newer login is discarded. Any failure settles the session
// anonymous (fail closed), never authenticated-by-assumption.
func (s *Store) CheckAuthStatus(ctx context.Context) {
	s.mu.Lock()
	token := s.token
	if token == "" {
		s.clearLocked()
		s.mu.Unlock()
		return
	}
	if tokenExpired(token) {
		s.clearLocked()
		s.mu.Unlock()
		return
	}
	if s.state != StateAuthenticated {
		s.state = StateChecking
	}
	gen := s.gen
	s.mu.Unlock()

	user, err := s.api.Me(ctx, token)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		// Superseded by logout or a newer login; drop this result.
		return
	}
	if err != nil {
		slog.Warn("auth check failed, session falls back to anonymous", "error", err)
		s.clearLocked()
		return
	}
	s.user = user
	s.state = StateAuthenticated
}

// Logout clears token and user synchronously; upstream revocation runs in
// the background and its outcome cannot resurrect the session.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	token := s.token
	s.clearLocked()
	hooks := make([]func(), len(s.logoutHooks))
	copy(hooks, s.logoutHooks)
	s.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}

	if token != "" {
		go func() {
			if err := s.api.Logout(context.WithoutCancel(ctx), token); err != nil {
				slog.Warn("upstream logout failed", "error", err)
			}
		}()
	}
}

// OnLogout registers a hook run after the session is cleared; the commerce
// stores use it to discard their collections.
func (s *Store) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logoutHooks = append(s.logoutHooks, fn)
}

func (s *Store) adopt(resp *upstream.AuthResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.token = resp.AccessToken
	user := resp.User
	s.user = &user
	s.state = StateAuthenticated
}

// clearLocked resets to anonymous. Callers hold s.mu.
func (s *Store) clearLocked() {
	s.gen++
	s.token = ""
	s.user = nil
	s.state = StateAnonymous
}

// tokenExpired inspects a JWT's exp claim without verifying the signature
// (the upstream owns the key). Opaque or claimless tokens are left for the
// upstream to judge.
func tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Now().After(exp.Time)
}
