package commerce

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wardiya/storefront/internal/content"
	"github.com/wardiya/storefront/internal/models"
	"github.com/wardiya/storefront/internal/upstream"
)

// FavoritesAPI is the slice of the upstream client the favorites store
// depends on.
type FavoritesAPI interface {
	GetFavorites(ctx context.Context, token string) ([]models.FavoriteItem, error)
	AddFavorite(ctx context.Context, token string, item models.FavoriteItem) (models.FavoriteItem, error)
	RemoveFavorite(ctx context.Context, token, productID string) error
	ClearFavorites(ctx context.Context, token string) error
}

type Favorites struct {
	mu     sync.Mutex
	api    FavoritesAPI
	tokens TokenSource
	notify Notifier

	items map[string]models.FavoriteItem
	seq   map[string]uint64
}

func NewFavorites(api FavoritesAPI, tokens TokenSource, notify Notifier) *Favorites {
	return &Favorites{
		api:    api,
		tokens: tokens,
		notify: notify,
		items:  make(map[string]models.FavoriteItem),
		seq:    make(map[string]uint64),
	}
}

func (f *Favorites) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

func (f *Favorites) IsPresent(productID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.items[productID]
	return ok
}

func (f *Favorites) Items() []models.FavoriteItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.FavoriteItem, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	return out
}

// Add favorites a product. Adding an already-present product is an
// idempotent no-op: no state change, no network call.
func (f *Favorites) Add(ctx context.Context, p models.Product) <-chan OpResult {
	token, ok := f.tokens.Token()
	if !ok {
		return f.rejectLocally(NoticeLoginRequired, content.T("auth.loginRequired", content.Arabic), ErrLoginRequired)
	}

	f.mu.Lock()
	if _, present := f.items[p.ID]; present {
		f.mu.Unlock()
		return settled(OpResult{ID: uuid.New()})
	}
	item := models.FavoriteFromProduct(p, time.Now())
	f.items[p.ID] = item
	f.seq[p.ID]++
	seq := f.seq[p.ID]
	f.mu.Unlock()

	ch := make(chan OpResult, 1)
	go func() {
		confirmed, err := f.api.AddFavorite(context.WithoutCancel(ctx), token, item)
		if err != nil {
			rolledBack := f.restore(p.ID, seq, models.FavoriteItem{}, false)
			f.notifyFailure(err)
			ch <- OpResult{ID: uuid.New(), Err: err, RolledBack: rolledBack}
			return
		}
		f.reconcile(p.ID, seq, confirmed)
		ch <- OpResult{ID: uuid.New()}
	}()
	return ch
}

// Remove unfavorites a product; absent products are a safe no-op.
func (f *Favorites) Remove(ctx context.Context, productID string) <-chan OpResult {
	token, ok := f.tokens.Token()
	if !ok {
		return f.rejectLocally(NoticeLoginRequired, content.T("auth.loginRequired", content.Arabic), ErrLoginRequired)
	}

	f.mu.Lock()
	prev, existed := f.items[productID]
	if !existed {
		f.mu.Unlock()
		return settled(OpResult{ID: uuid.New()})
	}
	delete(f.items, productID)
	f.seq[productID]++
	seq := f.seq[productID]
	f.mu.Unlock()

	ch := make(chan OpResult, 1)
	go func() {
		if err := f.api.RemoveFavorite(context.WithoutCancel(ctx), token, productID); err != nil {
			rolledBack := f.restore(productID, seq, prev, true)
			f.notifyFailure(err)
			ch <- OpResult{ID: uuid.New(), Err: err, RolledBack: rolledBack}
			return
		}
		ch <- OpResult{ID: uuid.New()}
	}()
	return ch
}

func (f *Favorites) Clear(ctx context.Context) <-chan OpResult {
	token, ok := f.tokens.Token()
	if !ok {
		return f.rejectLocally(NoticeLoginRequired, content.T("auth.loginRequired", content.Arabic), ErrLoginRequired)
	}

	f.mu.Lock()
	snapshot := make(map[string]models.FavoriteItem, len(f.items))
	seqs := make(map[string]uint64, len(f.items))
	for id, item := range f.items {
		snapshot[id] = item
		f.seq[id]++
		seqs[id] = f.seq[id]
	}
	f.items = make(map[string]models.FavoriteItem)
	f.mu.Unlock()

	ch := make(chan OpResult, 1)
	go func() {
		if err := f.api.ClearFavorites(context.WithoutCancel(ctx), token); err != nil {
			f.mu.Lock()
			rolledBack := false
			for id, item := range snapshot {
				if f.seq[id] == seqs[id] {
					f.items[id] = item
					rolledBack = true
				}
			}
			f.mu.Unlock()
			f.notifyFailure(err)
			ch <- OpResult{ID: uuid.New(), Err: err, RolledBack: rolledBack}
			return
		}
		ch <- OpResult{ID: uuid.New()}
	}()
	return ch
}

// Load replaces the local collection with the upstream's.
func (f *Favorites) Load(ctx context.Context) error {
	token, ok := f.tokens.Token()
	if !ok {
		return ErrLoginRequired
	}
	items, err := f.api.GetFavorites(ctx, token)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = make(map[string]models.FavoriteItem, len(items))
	for _, item := range items {
		f.items[item.ProductID] = item
		f.seq[item.ProductID]++
	}
	return nil
}

// Reset discards local state without touching the upstream; wired to logout.
func (f *Favorites) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id := range f.items {
		f.seq[id]++
	}
	f.items = make(map[string]models.FavoriteItem)
}

func (f *Favorites) restore(productID string, seq uint64, prev models.FavoriteItem, existed bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seq[productID] != seq {
		return false
	}
	if existed {
		f.items[productID] = prev
	} else {
		delete(f.items, productID)
	}
	return true
}

func (f *Favorites) reconcile(productID string, seq uint64, confirmed models.FavoriteItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seq[productID] != seq {
		return
	}
	if confirmed.ProductID == productID {
		f.items[productID] = confirmed
	}
}

func (f *Favorites) rejectLocally(kind NoticeKind, message string, err error) <-chan OpResult {
	if f.notify != nil {
		f.notify.Notify(kind, message)
	}
	return settled(OpResult{ID: uuid.New(), Err: err})
}

func (f *Favorites) notifyFailure(err error) {
	if f.notify == nil {
		return
	}
	if msg := upstream.RejectionMessage(err); msg != "" {
		f.notify.Notify(NoticeRejected, msg)
		return
	}
	f.notify.Notify(NoticeNetwork, content.T("error.network", content.Arabic))
}
