package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/wardiya/storefront/internal/commerce"
	"github.com/wardiya/storefront/internal/upstream"
)

// CookieName is the httpOnly visitor session cookie set by the gateway.
const CookieName = "sf_session"

var ErrInvalidSessionToken = errors.New("invalid session token")

// Visitor bundles the per-visitor stores. Optimistic cart/favorites state
// lives here between requests of the same visit.
type Visitor struct {
	ID        string
	Session   *Store
	Cart      *commerce.Cart
	Favorites *commerce.Favorites
	Notices   *commerce.MemoryNotifier
}

// NewVisitor builds the store bundle for one visitor and settles the session
// bootstrap before the bundle is handed out. A visitor with no persisted
// token resolves locally with zero network calls, so nobody is ever left in
// the loading state.
func NewVisitor(id string, client *upstream.Client) *Visitor {
	notices := commerce.NewMemoryNotifier()
	sess := New(client)
	cart := commerce.NewCart(client, sess, notices)
	favorites := commerce.NewFavorites(client, sess, notices)
	sess.OnLogout(func() {
		cart.Reset()
		favorites.Reset()
	})
	sess.CheckAuthStatus(context.Background())
	return &Visitor{
		ID:        id,
		Session:   sess,
		Cart:      cart,
		Favorites: favorites,
		Notices:   notices,
	}
}

// Manager materializes visitors from the session cookie and keeps their
// stores in a TTL registry, evicted after the session lifetime.
type Manager struct {
	mu       sync.Mutex
	secret   []byte
	ttl      time.Duration
	visitors *gocache.Cache
	build    func(id string) *Visitor
}

func NewManager(secret string, ttl time.Duration, build func(id string) *Visitor) *Manager {
	return &Manager{
		secret:   []byte(secret),
		ttl:      ttl,
		visitors: gocache.New(ttl, 30*time.Minute),
		build:    build,
	}
}

// Get returns the visitor's stores, creating them on first sight. The TTL
// is refreshed on every access so active visits never expire mid-session.
func (m *Manager) Get(id string) *Visitor {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cached, ok := m.visitors.Get(id); ok {
		v := cached.(*Visitor)
		m.visitors.Set(id, v, m.ttl)
		return v
	}
	v := m.build(id)
	m.visitors.Set(id, v, m.ttl)
	return v
}

// NewVisitorID mints an id for a visitor arriving without a valid cookie.
func (m *Manager) NewVisitorID() string {
	return uuid.NewString()
}

// IssueToken signs the session cookie value for a visitor id.
func (m *Manager) IssueToken(visitorID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": visitorID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseVisitorID verifies a session cookie value and extracts the visitor id.
func (m *Manager) ParseVisitorID(tokenString string) (string, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSessionToken
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidSessionToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidSessionToken
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidSessionToken
	}
	return sub, nil
}

// TTL exposes the session lifetime for cookie expiry.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Secret exposes the signing key for the route-level JWT middleware.
func (m *Manager) Secret() []byte {
	return m.secret
}

// VisitorFromToken resolves a cookie value to the visitor's stores.
func (m *Manager) VisitorFromToken(tokenString string) (*Visitor, error) {
	id, err := m.ParseVisitorID(tokenString)
	if err != nil {
		return nil, err
	}
	return m.Get(id), nil
}
