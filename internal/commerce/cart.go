// Package commerce holds the per-visitor cart and favorites caches of the
// upstream collections. Mutations are optimistic: local state changes
// immediately, the upstream call confirms in the background, and a failure
// rolls the local change back and raises a user-visible notice.
package commerce

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/wardiya/storefront/internal/content"
	"github.com/wardiya/storefront/internal/models"
	"github.com/wardiya/storefront/internal/upstream"
)

var (
	ErrLoginRequired   = errors.New("login required")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrNotInCart       = errors.New("product is not in the cart")
)

// TokenSource is how the stores read the session's token; they never write
// auth state.
type TokenSource interface {
	Token() (string, bool)
}

// CartAPI is the slice of the upstream client the cart depends on.
type CartAPI interface {
	GetCart(ctx context.Context, token string) ([]models.CartItem, error)
	AddToCart(ctx context.Context, token string, item models.CartItem) (models.CartItem, error)
	UpdateCartItem(ctx context.Context, token, productID string, quantity int) (models.CartItem, error)
	RemoveCartItem(ctx context.Context, token, productID string) error
	ClearCart(ctx context.Context, token string) error
}

// OpResult reports the settled outcome of a two-phase mutation. The channel
// it arrives on always receives exactly one value, so callers may ignore it
// or wait, never leak.
type OpResult struct {
	ID         uuid.UUID
	Err        error
	RolledBack bool
}

type Cart struct {
	mu     sync.Mutex
	api    CartAPI
	tokens TokenSource
	notify Notifier

	items map[string]models.CartItem
	// seq is a per-product operation counter. A background confirmation
	// only touches state while its captured sequence is still the newest
	// for that product, so late arrivals cannot clobber newer mutations.
	seq map[string]uint64
}

func NewCart(api CartAPI, tokens TokenSource, notify Notifier) *Cart {
	return &Cart{
		api:    api,
		tokens: tokens,
		notify: notify,
		items:  make(map[string]models.CartItem),
		seq:    make(map[string]uint64),
	}
}

// Count is the number of distinct cart lines.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// TotalQuantity sums quantities across lines, for the cart badge.
func (c *Cart) TotalQuantity() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.CartItem, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item)
	}
	return out
}

func (c *Cart) Get(productID string) (models.CartItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[productID]
	return item, ok
}

// Add puts a product in the cart, incrementing the quantity when the line
// already exists.
func (c *Cart) Add(ctx context.Context, p models.Product, quantity int) <-chan OpResult {
	if quantity < 1 {
		return c.rejectLocally(NoticeInvalid, content.T("error.generic", content.Arabic), ErrInvalidQuantity)
	}
	token, ok := c.tokens.Token()
	if !ok {
		return c.rejectLocally(NoticeLoginRequired, content.T("auth.loginRequired", content.Arabic), ErrLoginRequired)
	}

	c.mu.Lock()
	prev, existed := c.items[p.ID]
	item := models.CartItemFromProduct(p, quantity)
	if existed {
		item = prev
		item.Quantity += quantity
	}
	c.items[p.ID] = item
	c.seq[p.ID]++
	seq := c.seq[p.ID]
	c.mu.Unlock()

	ch := make(chan OpResult, 1)
	go func() {
		confirmed, err := c.api.AddToCart(context.WithoutCancel(ctx), token, item)
		if err != nil {
			rolledBack := c.restore(p.ID, seq, prev, existed)
			c.notifyFailure(err)
			ch <- OpResult{ID: uuid.New(), Err: err, RolledBack: rolledBack}
			return
		}
		c.reconcile(p.ID, seq, confirmed)
		ch <- OpResult{ID: uuid.New()}
	}()
	return ch
}

// Update sets an absolute quantity for an existing line. Quantities below 1
// never reach the upstream.
func (c *Cart) Update(ctx context.Context, productID string, quantity int) <-chan OpResult {
	if quantity < 1 {
		return c.rejectLocally(NoticeInvalid, content.T("error.generic", content.Arabic), ErrInvalidQuantity)
	}
	token, ok := c.tokens.Token()
	if !ok {
		return c.rejectLocally(NoticeLoginRequired, content.T("auth.loginRequired", content.Arabic), ErrLoginRequired)
	}

	c.mu.Lock()
	prev, existed := c.items[productID]
	if !existed {
		c.mu.Unlock()
		return settled(OpResult{ID: uuid.New(), Err: ErrNotInCart})
	}
	item := prev
	item.Quantity = quantity
	c.items[productID] = item
	c.seq[productID]++
	seq := c.seq[productID]
	c.mu.Unlock()

	ch := make(chan OpResult, 1)
	go func() {
		confirmed, err := c.api.UpdateCartItem(context.WithoutCancel(ctx), token, productID, quantity)
		if err != nil {
			rolledBack := c.restore(productID, seq, prev, true)
			c.notifyFailure(err)
			ch <- OpResult{ID: uuid.New(), Err: err, RolledBack: rolledBack}
			return
		}
		c.reconcile(productID, seq, confirmed)
		ch <- OpResult{ID: uuid.New()}
	}()
	return ch
}

// Remove deletes a line. Removing an absent product is a safe no-op with no
// network call.
func (c *Cart) Remove(ctx context.Context, productID string) <-chan OpResult {
	token, ok := c.tokens.Token()
	if !ok {
		return c.rejectLocally(NoticeLoginRequired, content.T("auth.loginRequired", content.Arabic), ErrLoginRequired)
	}

	c.mu.Lock()
	prev, existed := c.items[productID]
	if !existed {
		c.mu.Unlock()
		return settled(OpResult{ID: uuid.New()})
	}
	delete(c.items, productID)
	c.seq[productID]++
	seq := c.seq[productID]
	c.mu.Unlock()

	ch := make(chan OpResult, 1)
	go func() {
		if err := c.api.RemoveCartItem(context.WithoutCancel(ctx), token, productID); err != nil {
			rolledBack := c.restore(productID, seq, prev, true)
			c.notifyFailure(err)
			ch <- OpResult{ID: uuid.New(), Err: err, RolledBack: rolledBack}
			return
		}
		ch <- OpResult{ID: uuid.New()}
	}()
	return ch
}

// Clear empties the cart optimistically; on failure every line whose
// sequence was not advanced by a newer operation is restored.
func (c *Cart) Clear(ctx context.Context) <-chan OpResult {
	token, ok := c.tokens.Token()
	if !ok {
		return c.rejectLocally(NoticeLoginRequired, content.T("auth.loginRequired", content.Arabic), ErrLoginRequired)
	}

	c.mu.Lock()
	snapshot := make(map[string]models.CartItem, len(c.items))
	seqs := make(map[string]uint64, len(c.items))
	for id, item := range c.items {
		snapshot[id] = item
		c.seq[id]++
		seqs[id] = c.seq[id]
	}
	c.items = make(map[string]models.CartItem)
	c.mu.Unlock()

	ch := make(chan OpResult, 1)
	go func() {
		if err := c.api.ClearCart(context.WithoutCancel(ctx), token); err != nil {
			c.mu.Lock()
			rolledBack := false
			for id, item := range snapshot {
				if c.seq[id] == seqs[id] {
					c.items[id] = item
					rolledBack = true
				}
			}
			c.mu.Unlock()
			c.notifyFailure(err)
			ch <- OpResult{ID: uuid.New(), Err: err, RolledBack: rolledBack}
			return
		}
		ch <- OpResult{ID: uuid.New()}
	}()
	return ch
}

// Load replaces the local collection with the upstream's, on login or page
// bootstrap.
func (c *Cart) Load(ctx context.Context) error {
	token, ok := c.tokens.Token()
	if !ok {
		return ErrLoginRequired
	}
	items, err := c.api.GetCart(ctx, token)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]models.CartItem, len(items))
	for _, item := range items {
		c.items[item.ProductID] = item
		c.seq[item.ProductID]++
	}
	return nil
}

// Reset discards local state without touching the upstream; wired to logout.
func (c *Cart) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id := range c.items {
		c.seq[id]++
	}
	c.items = make(map[string]models.CartItem)
}

// restore rolls a product back to its pre-optimistic value unless a newer
// operation has touched it since. Reports whether anything was restored.
func (c *Cart) restore(productID string, seq uint64, prev models.CartItem, existed bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq[productID] != seq {
		return false
	}
	if existed {
		c.items[productID] = prev
	} else {
		delete(c.items, productID)
	}
	return true
}

// reconcile adopts the authoritative row from a confirmation, again only
// while no newer local operation has been applied.
func (c *Cart) reconcile(productID string, seq uint64, confirmed models.CartItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq[productID] != seq {
		return
	}
	if confirmed.ProductID == productID && confirmed.Quantity >= 1 {
		c.items[productID] = confirmed
	}
}

func (c *Cart) rejectLocally(kind NoticeKind, message string, err error) <-chan OpResult {
	if c.notify != nil {
		c.notify.Notify(kind, message)
	}
	return settled(OpResult{ID: uuid.New(), Err: err})
}

func (c *Cart) notifyFailure(err error) {
	if c.notify == nil {
		return
	}
	if msg := upstream.RejectionMessage(err); msg != "" {
		c.notify.Notify(NoticeRejected, msg)
		return
	}
	c.notify.Notify(NoticeNetwork, content.T("error.network", content.Arabic))
}

func settled(result OpResult) <-chan OpResult {
	ch := make(chan OpResult, 1)
	ch <- result
	return ch
}
