package commerce

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardiya/storefront/internal/models"
	"github.com/wardiya/storefront/internal/upstream"
)

type fakeFavoritesAPI struct {
	calls  atomic.Int64
	addFn  func(item models.FavoriteItem) (models.FavoriteItem, error)
	remFn  func(productID string) error
	clrFn  func() error
	getsFn func() ([]models.FavoriteItem, error)
}

func (f *fakeFavoritesAPI) GetFavorites(ctx context.Context, token string) ([]models.FavoriteItem, error) {
	f.calls.Add(1)
	if f.getsFn != nil {
		return f.getsFn()
	}
	return nil, nil
}

func (f *fakeFavoritesAPI) AddFavorite(ctx context.Context, token string, item models.FavoriteItem) (models.FavoriteItem, error) {
	f.calls.Add(1)
	if f.addFn != nil {
		return f.addFn(item)
	}
	return item, nil
}

func (f *fakeFavoritesAPI) RemoveFavorite(ctx context.Context, token, productID string) error {
	f.calls.Add(1)
	if f.remFn != nil {
		return f.remFn(productID)
	}
	return nil
}

func (f *fakeFavoritesAPI) ClearFavorites(ctx context.Context, token string) error {
	f.calls.Add(1)
	if f.clrFn != nil {
		return f.clrFn()
	}
	return nil
}

func authedFavorites(api *fakeFavoritesAPI) (*Favorites, *recordingNotifier) {
	notes := &recordingNotifier{}
	return NewFavorites(api, &fakeTokens{token: "tok"}, notes), notes
}

func TestFavoriteAddAndPresence(t *testing.T) {
	api := &fakeFavoritesAPI{}
	favs, _ := authedFavorites(api)

	res := <-favs.Add(context.Background(), rose)
	require.NoError(t, res.Err)

	assert.Equal(t, 1, favs.Count())
	assert.True(t, favs.IsPresent("p1"))
	assert.False(t, favs.IsPresent("p2"))
}

func TestFavoriteAddIsIdempotent(t *testing.T) {
	api := &fakeFavoritesAPI{}
	favs, _ := authedFavorites(api)

	<-favs.Add(context.Background(), rose)
	calls := api.calls.Load()

	res := <-favs.Add(context.Background(), rose)
	require.NoError(t, res.Err)

	assert.Equal(t, 1, favs.Count(), "re-adding a favorite must not duplicate it")
	assert.Equal(t, calls, api.calls.Load(), "re-adding a favorite must not hit the network")
}

func TestFavoriteAddRollsBackOnFailure(t *testing.T) {
	api := &fakeFavoritesAPI{
		addFn: func(models.FavoriteItem) (models.FavoriteItem, error) {
			return models.FavoriteItem{}, &upstream.APIError{Status: 400, Message: "rejected"}
		},
	}
	favs, notes := authedFavorites(api)

	res := <-favs.Add(context.Background(), rose)

	require.Error(t, res.Err)
	assert.True(t, res.RolledBack)
	assert.Equal(t, 0, favs.Count())
	assert.False(t, favs.IsPresent("p1"))
	require.Len(t, notes.notices, 1)
	assert.Equal(t, NoticeRejected, notes.notices[0].Kind)
}

func TestUnauthenticatedFavoriteMutationsRejected(t *testing.T) {
	api := &fakeFavoritesAPI{}
	favs := NewFavorites(api, &fakeTokens{}, &recordingNotifier{})

	addRes := <-favs.Add(context.Background(), rose)
	remRes := <-favs.Remove(context.Background(), "p1")

	assert.ErrorIs(t, addRes.Err, ErrLoginRequired)
	assert.ErrorIs(t, remRes.Err, ErrLoginRequired)
	assert.Equal(t, int64(0), api.calls.Load())
	assert.Equal(t, 0, favs.Count())
}

func TestFavoriteRemoveAbsentIsNoop(t *testing.T) {
	api := &fakeFavoritesAPI{}
	favs, _ := authedFavorites(api)

	res := <-favs.Remove(context.Background(), "ghost")
	assert.NoError(t, res.Err)
	assert.Equal(t, int64(0), api.calls.Load())
}

func TestFavoriteRemoveRollsBackOnFailure(t *testing.T) {
	api := &fakeFavoritesAPI{}
	favs, _ := authedFavorites(api)
	<-favs.Add(context.Background(), rose)

	api.remFn = func(string) error { return upstream.ErrUnreachable }
	res := <-favs.Remove(context.Background(), "p1")

	require.Error(t, res.Err)
	assert.True(t, res.RolledBack)
	assert.True(t, favs.IsPresent("p1"))
}

func TestFavoritesResetOnLogout(t *testing.T) {
	api := &fakeFavoritesAPI{}
	favs, _ := authedFavorites(api)
	<-favs.Add(context.Background(), rose)
	calls := api.calls.Load()

	favs.Reset()

	assert.Equal(t, 0, favs.Count())
	assert.Equal(t, calls, api.calls.Load())
}

func TestFavoritesLoad(t *testing.T) {
	api := &fakeFavoritesAPI{
		getsFn: func() ([]models.FavoriteItem, error) {
			return []models.FavoriteItem{{ProductID: "p7"}}, nil
		},
	}
	favs, _ := authedFavorites(api)

	require.NoError(t, favs.Load(context.Background()))
	assert.True(t, favs.IsPresent("p7"))
}
